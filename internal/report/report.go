// Package report builds the three read-only summaries of the schedule:
// appointment totals by month and type, the per-contact schedule, and
// customer counts by first-level division. Each report is a plain query
// plus an in-memory row shape; nothing here writes.
package report

import (
	"context"
	"database/sql"
	"time"
)

// Repo runs the report queries.
type Repo struct {
	db *sql.DB
}

// NewRepo returns a report Repo bound to the given database.
func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// MonthTypeCount is one row of the totals report: how many appointments
// of one type start in one calendar month of one year.
type MonthTypeCount struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountsByMonthAndType returns appointment totals grouped by year, month
// and type, ordered chronologically then by type.
func (r *Repo) CountsByMonthAndType(ctx context.Context) ([]MonthTypeCount, error) {
	const q = `SELECT YEAR(starts_at), MONTH(starts_at), type, COUNT(*)
	           FROM appointments
	           GROUP BY YEAR(starts_at), MONTH(starts_at), type
	           ORDER BY 1, 2, 3`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]MonthTypeCount, 0)
	for rows.Next() {
		var row MonthTypeCount
		if err := rows.Scan(&row.Year, &row.Month, &row.Type, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ContactScheduleRow is one appointment on one contact's schedule.
type ContactScheduleRow struct {
	ContactID     uint64    `json:"contact_id"`
	ContactName   string    `json:"contact_name"`
	AppointmentID uint64    `json:"appointment_id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	CustomerID    uint64    `json:"customer_id"`
}

// ScheduleByContact returns every contact's appointments, grouped by
// contact and ordered by start time within each contact. Contacts with no
// appointments do not appear.
func (r *Repo) ScheduleByContact(ctx context.Context) ([]ContactScheduleRow, error) {
	const q = `SELECT c.id, c.name, a.id, a.title, a.type, a.description,
	                  a.starts_at, a.ends_at, a.customer_id
	           FROM appointments a
	           JOIN contacts c ON c.id = a.contact_id
	           ORDER BY c.name, a.starts_at, a.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ContactScheduleRow, 0)
	for rows.Next() {
		var row ContactScheduleRow
		if err := rows.Scan(&row.ContactID, &row.ContactName, &row.AppointmentID,
			&row.Title, &row.Type, &row.Description, &row.Start, &row.End, &row.CustomerID); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DivisionCustomerCount is one row of the division report.
type DivisionCustomerCount struct {
	Division string `json:"division"`
	Country  string `json:"country"`
	Count    int    `json:"count"`
}

// CustomersByDivision returns how many customers live in each first-level
// division that has at least one customer, ordered by country then
// division.
func (r *Repo) CustomersByDivision(ctx context.Context) ([]DivisionCustomerCount, error) {
	const q = `SELECT d.name, co.name, COUNT(*)
	           FROM customers cu
	           JOIN first_level_divisions d ON d.id = cu.division_id
	           JOIN countries co ON co.id = d.country_id
	           GROUP BY d.id, d.name, co.name
	           ORDER BY co.name, d.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]DivisionCustomerCount, 0)
	for rows.Next() {
		var row DivisionCustomerCount
		if err := rows.Scan(&row.Division, &row.Country, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

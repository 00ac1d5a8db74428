package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/avelik/schedesk/internal/model"
)

// AppointmentRepo provides CRUD, conflict and schedule queries for
// appointments. All DATETIME columns are stored in UTC and scanned into
// time.Time via parseTime on the driver DSN.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

const appointmentColumns = `id, title, description, location, type,
	starts_at, ends_at, customer_id, user_id, contact_id`

func scanAppointments(rows *sql.Rows) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Location, &a.Type,
			&a.Start, &a.End, &a.CustomerID, &a.UserID, &a.ContactID); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Select returns appointments ordered by start time. A nil filter selects
// every row; otherwise the filter restricts rows to one calendar year and
// one month or week within it, both computed from starts_at.
func (r *AppointmentRepo) Select(ctx context.Context, f *Filter) ([]*model.Appointment, error) {
	q := `SELECT ` + appointmentColumns + ` FROM appointments`
	args := []interface{}{}
	if f != nil {
		switch f.Field {
		case FilterWeek:
			q += ` WHERE YEAR(starts_at) = ? AND WEEK(starts_at, 0) = ?`
		default:
			q += ` WHERE YEAR(starts_at) = ? AND MONTH(starts_at) = ?`
		}
		args = append(args, f.Year, f.Value)
	}
	q += ` ORDER BY starts_at, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// Insert stores a new appointment and returns the generated id.
func (r *AppointmentRepo) Insert(ctx context.Context, a *model.Appointment) (uint64, error) {
	const q = `INSERT INTO appointments
	           (title, description, location, type, starts_at, ends_at, customer_id, user_id, contact_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Title, a.Description, a.Location, a.Type,
		a.Start.UTC(), a.End.UTC(), a.CustomerID, a.UserID, a.ContactID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites every attribute of the appointment row and returns the
// affected row count.
func (r *AppointmentRepo) Update(ctx context.Context, a *model.Appointment) (int64, error) {
	const q = `UPDATE appointments SET title = ?, description = ?, location = ?, type = ?,
	           starts_at = ?, ends_at = ?, customer_id = ?, user_id = ?, contact_id = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Title, a.Description, a.Location, a.Type,
		a.Start.UTC(), a.End.UTC(), a.CustomerID, a.UserID, a.ContactID, a.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the appointment row and returns the affected row count.
func (r *AppointmentRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByCustomer removes every appointment belonging to the customer and
// returns how many rows were removed. Used as the cascade step before a
// customer delete; the two statements run outside a shared transaction, so
// a customer delete that fails afterwards leaves the appointments gone.
func (r *AppointmentRepo) DeleteByCustomer(ctx context.Context, customerID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE customer_id = ?`, customerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountOverlapping reports how many existing appointments for the same
// customer collide with the candidate. Intervals are closed on both ends:
// an appointment ending exactly when the candidate starts still counts.
// When the candidate carries a nonzero id its own row is excluded, so an
// update that keeps the original slot does not conflict with itself.
func (r *AppointmentRepo) CountOverlapping(ctx context.Context, a *model.Appointment) (int, error) {
	q := `SELECT COUNT(*) FROM appointments
	      WHERE customer_id = ? AND starts_at <= ? AND ends_at >= ?`
	args := []interface{}{a.CustomerID, a.End.UTC(), a.Start.UTC()}
	if a.ID != 0 {
		q += ` AND id <> ?`
		args = append(args, a.ID)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Upcoming returns the user's appointments starting within the window
// beginning at now. The sign-in alert uses a 15 minute window.
func (r *AppointmentRepo) Upcoming(ctx context.Context, userID uint64, now time.Time, window time.Duration) ([]*model.Appointment, error) {
	q := `SELECT ` + appointmentColumns + ` FROM appointments
	      WHERE user_id = ? AND starts_at BETWEEN ? AND ?
	      ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, userID, now.UTC(), now.UTC().Add(window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// DistinctYears returns the calendar years that have at least one
// appointment, ascending. The filter pickers are populated from this.
func (r *AppointmentRepo) DistinctYears(ctx context.Context) ([]int, error) {
	return r.distinctInts(ctx, `SELECT DISTINCT YEAR(starts_at) FROM appointments ORDER BY 1`)
}

// DistinctMonths returns the months within a year that have appointments.
func (r *AppointmentRepo) DistinctMonths(ctx context.Context, year int) ([]int, error) {
	return r.distinctInts(ctx,
		`SELECT DISTINCT MONTH(starts_at) FROM appointments WHERE YEAR(starts_at) = ? ORDER BY 1`, year)
}

// DistinctWeeks returns the weeks within a year that have appointments,
// using the same WEEK() mode as the filter query.
func (r *AppointmentRepo) DistinctWeeks(ctx context.Context, year int) ([]int, error) {
	return r.distinctInts(ctx,
		`SELECT DISTINCT WEEK(starts_at, 0) FROM appointments WHERE YEAR(starts_at) = ? ORDER BY 1`, year)
}

func (r *AppointmentRepo) distinctInts(ctx context.Context, q string, args ...interface{}) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]int, 0)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

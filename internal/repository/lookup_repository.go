package repository

import (
	"context"
	"database/sql"

	"github.com/avelik/schedesk/internal/model"
)

// LookupRepo serves the read-only reference tables that populate form
// selectors: contacts, users, countries and first-level divisions. Rows
// are never written through this repository.
type LookupRepo struct {
	db *sql.DB
}

// NewLookupRepo returns a new LookupRepo bound to the given database.
func NewLookupRepo(db *sql.DB) *LookupRepo { return &LookupRepo{db: db} }

// Contacts returns all contacts ordered by name.
func (r *LookupRepo) Contacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email FROM contacts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Contact, 0)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Users returns all users ordered by username, id and username only.
func (r *LookupRepo) Users(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Countries returns all countries ordered by name.
func (r *LookupRepo) Countries(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Country, 0)
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DivisionsByCountry returns the first-level divisions of one country
// ordered by name. The customer form narrows its division selector with
// this when a country is picked.
func (r *LookupRepo) DivisionsByCountry(ctx context.Context, countryID uint64) ([]model.Division, error) {
	const q = `SELECT id, name, country_id FROM first_level_divisions WHERE country_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, countryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Division, 0)
	for rows.Next() {
		var d model.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.CountryID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DivisionCountry returns the country id a division belongs to, used to
// pre-select the country when editing an existing customer.
func (r *LookupRepo) DivisionCountry(ctx context.Context, divisionID uint64) (uint64, error) {
	var countryID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT country_id FROM first_level_divisions WHERE id = ? LIMIT 1`,
		divisionID).Scan(&countryID)
	if err == sql.ErrNoRows {
		return 0, err
	}
	return countryID, err
}

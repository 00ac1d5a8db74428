package repository

import (
	"context"
	"database/sql"

	"github.com/avelik/schedesk/internal/model"
)

// CustomerRepo provides CRUD operations for customers. Customers are the
// owning side of appointments: deleting a customer requires deleting its
// appointments first, which is the caller's responsibility (see
// AppointmentRepo.DeleteByCustomer).
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Select returns all customers ordered by id. Customers carry no schedule
// column, so the filter is accepted for interface conformance and ignored.
func (r *CustomerRepo) Select(ctx context.Context, _ *Filter) ([]*model.Customer, error) {
	const q = `SELECT id, name, address, postal_code, phone, division_id
	           FROM customers ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.PostalCode, &c.Phone, &c.DivisionID); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Insert stores a new customer and returns the generated id. A zero id
// with a nil error means the insert did not take effect.
func (r *CustomerRepo) Insert(ctx context.Context, c *model.Customer) (uint64, error) {
	const q = `INSERT INTO customers (name, address, postal_code, phone, division_id)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Address, c.PostalCode, c.Phone, c.DivisionID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites every attribute of the customer row and returns the
// affected row count.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) (int64, error) {
	const q = `UPDATE customers SET name = ?, address = ?, postal_code = ?, phone = ?, division_id = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Address, c.PostalCode, c.Phone, c.DivisionID, c.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the customer row and returns the affected row count.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

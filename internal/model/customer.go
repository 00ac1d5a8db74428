package model

// Customer represents a client of the business.  A customer owns zero or
// more appointments by reference; the link is enforced at the application
// layer (deleting a customer deletes its appointments first), not by the
// database.
//
// Fields:
//  ID         – primary key identifier (0 = not yet persisted).
//  Name       – customer name.
//  Address    – street address.
//  PostalCode – postal code.
//  Phone      – phone number.
//  DivisionID – first-level division the customer belongs to.
type Customer struct {
	Record
	Name       string
	Address    string
	PostalCode string
	Phone      string
	DivisionID uint64
}

// Fields returns the attribute descriptors in declaration order.  The order
// determines which field a validation failure reports first.
func (c *Customer) Fields() []Field {
	return []Field{
		TextField("name", &c.Name),
		TextField("address", &c.Address),
		TextField("postalCode", &c.PostalCode),
		TextField("phone", &c.Phone),
		RefField("divisionId", &c.DivisionID),
	}
}

// Copy returns a detached copy for use as an edit-session working record.
func (c *Customer) Copy() *Customer {
	cp := *c
	return &cp
}

// ApplyChanges merges every attribute of src into c, keeping c's identity as
// the canonical row.  All fields are copied so no stale value survives the
// merge.
func (c *Customer) ApplyChanges(src *Customer) {
	c.Name = src.Name
	c.Address = src.Address
	c.PostalCode = src.PostalCode
	c.Phone = src.Phone
	c.DivisionID = src.DivisionID
}

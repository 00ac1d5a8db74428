package model

// Lookup entities are populated from the store and never created, edited or
// deleted by the application.  They exist so foreign keys on customers and
// appointments can be resolved to display names.

// Contact is a company contact an appointment can be assigned to.
type Contact struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is an operator account appointments are scheduled by.  The full
// credential row lives in the repository layer; this shape is what the
// scheduling core needs for display and reference checks.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Country is a top-level geographic lookup.
type Country struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Division is a first-level division within a country.  Customers reference
// divisions; divisions reference countries.
type Division struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CountryID uint64 `json:"country_id"`
}

package repository

// Filter field selectors. They name the MySQL date function applied to the
// appointment start column.
const (
	FilterMonth = "MONTH"
	FilterWeek  = "WEEK"
)

// Filter narrows an appointment select to one calendar year and one month
// or week within it. A nil *Filter selects everything. Repositories whose
// entities carry no schedule column accept and ignore it.
type Filter struct {
	Year  int
	Field string // FilterMonth or FilterWeek
	Value int
}

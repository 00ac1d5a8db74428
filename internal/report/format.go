package report

import (
	"fmt"
	"strings"
	"time"
)

// The Format helpers render report rows as plain text for the ?format=text
// variant of the report endpoints. They are pure functions over already
// fetched rows so they can be tested without a database.

// FormatCounts renders the month/type totals, one line per row.
func FormatCounts(rows []MonthTypeCount) string {
	if len(rows) == 0 {
		return "no appointments\n"
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%d %s  %-24s %d\n", r.Year, time.Month(r.Month), r.Type, r.Count)
	}
	return b.String()
}

// FormatSchedule renders the per-contact schedule with a heading per
// contact. Rows must already be grouped by contact, as ScheduleByContact
// returns them.
func FormatSchedule(rows []ContactScheduleRow) string {
	if len(rows) == 0 {
		return "no appointments\n"
	}
	var b strings.Builder
	var current uint64
	for _, r := range rows {
		if r.ContactID != current {
			current = r.ContactID
			fmt.Fprintf(&b, "%s:\n", r.ContactName)
		}
		fmt.Fprintf(&b, "  #%d %s (%s) %s - %s customer %d\n",
			r.AppointmentID, r.Title, r.Type,
			r.Start.UTC().Format("2006-01-02 15:04"),
			r.End.UTC().Format("2006-01-02 15:04"),
			r.CustomerID)
	}
	return b.String()
}

// FormatDivisions renders the customers-per-division totals.
func FormatDivisions(rows []DivisionCustomerCount) string {
	if len(rows) == 0 {
		return "no customers\n"
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s / %-24s %d\n", r.Country, r.Division, r.Count)
	}
	return b.String()
}

package model

import (
	"errors"
	"fmt"
	"time"
)

// Business hours in the business timezone.  An appointment may start or end
// at any time from 08:00 up to 22:00; 22:00 itself is allowed only exactly
// on the hour.
const (
	BusinessOpenHour  = 8
	BusinessCloseHour = 22
)

// ErrStartAfterEnd reports an appointment whose start timestamp is later
// than its end timestamp.
var ErrStartAfterEnd = errors.New("appointment start is after its end")

// ErrCrossesDayBoundary reports an appointment whose start and end fall on
// different calendar days in the business timezone.
var ErrCrossesDayBoundary = errors.New("appointment start and end are not on the same day")

// OutOfBusinessHoursError reports which timestamp field falls outside
// business hours.
type OutOfBusinessHoursError struct {
	Field string
}

func (e *OutOfBusinessHoursError) Error() string {
	return fmt.Sprintf("field %q is outside business hours (%02d:00-%02d:00)",
		e.Field, BusinessOpenHour, BusinessCloseHour)
}

// Appointment is a scheduled meeting with a customer.  Start and End are
// stored as instants; business-hour and same-day rules are evaluated in the
// configured business timezone, not the storage or display timezone.
//
// Fields:
//  ID          – primary key identifier (0 = not yet persisted).
//  Title       – short summary of the appointment.
//  Description – free-form details.
//  Location    – where the appointment takes place.
//  Type        – appointment category, used by reports.
//  Start       – when the appointment begins.
//  End         – when the appointment ends (never before Start).
//  CustomerID  – customer the appointment is for.
//  UserID      – user who scheduled it.
//  ContactID   – contact assigned to it.
type Appointment struct {
	Record
	Title       string
	Description string
	Location    string
	Type        string
	Start       time.Time
	End         time.Time
	CustomerID  uint64
	UserID      uint64
	ContactID   uint64
}

// Fields returns the attribute descriptors in declaration order.
func (a *Appointment) Fields() []Field {
	return []Field{
		TextField("title", &a.Title),
		TextField("description", &a.Description),
		TextField("location", &a.Location),
		TextField("type", &a.Type),
		TimeField("start", &a.Start),
		TimeField("end", &a.End),
		RefField("customerId", &a.CustomerID),
		RefField("userId", &a.UserID),
		RefField("contactId", &a.ContactID),
	}
}

// Copy returns a detached copy for use as an edit-session working record.
func (a *Appointment) Copy() *Appointment {
	cp := *a
	return &cp
}

// ApplyChanges merges every attribute of src into a.
func (a *Appointment) ApplyChanges(src *Appointment) {
	a.Title = src.Title
	a.Description = src.Description
	a.Location = src.Location
	a.Type = src.Type
	a.Start = src.Start
	a.End = src.End
	a.CustomerID = src.CustomerID
	a.UserID = src.UserID
	a.ContactID = src.ContactID
}

// ValidateBusiness applies the appointment-specific rules after the generic
// tier has passed.  Each step short-circuits on the first failure: business
// hours for start, business hours for end, start-after-end on the raw
// instants, then the same-day rule on the business-timezone dates.
func (a *Appointment) ValidateBusiness(tz *time.Location) error {
	start := a.Start.In(tz)
	end := a.End.In(tz)
	if err := checkBusinessHours(start, "start"); err != nil {
		return err
	}
	if err := checkBusinessHours(end, "end"); err != nil {
		return err
	}
	if a.Start.After(a.End) {
		return ErrStartAfterEnd
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return ErrCrossesDayBoundary
	}
	return nil
}

// checkBusinessHours verifies that t (already in the business timezone)
// falls within [08:00, 22:00].  The upper bound is inclusive only at
// exactly the top of the hour.
func checkBusinessHours(t time.Time, field string) error {
	h, m := t.Hour(), t.Minute()
	if h < BusinessOpenHour || h > BusinessCloseHour || (h == BusinessCloseHour && m != 0) {
		return &OutOfBusinessHoursError{Field: field}
	}
	return nil
}

// Overlaps reports whether the two appointments' [Start, End] intervals
// intersect, inclusive on both bounds.  The SQL conflict query mirrors this
// predicate; appointments that merely touch at an endpoint still overlap.
func (a *Appointment) Overlaps(other *Appointment) bool {
	return !a.Start.After(other.End) && !a.End.Before(other.Start)
}

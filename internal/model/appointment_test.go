package model

import (
	"errors"
	"testing"
	"time"
)

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("US/Eastern")
	if err != nil {
		t.Fatalf("load US/Eastern: %v", err)
	}
	return loc
}

func validAppointment(loc *time.Location) *Appointment {
	return &Appointment{
		Title:       "Planning",
		Description: "Quarterly planning session",
		Location:    "HQ",
		Type:        "Planning Session",
		Start:       time.Date(2026, 4, 14, 10, 0, 0, 0, loc),
		End:         time.Date(2026, 4, 14, 11, 0, 0, 0, loc),
		CustomerID:  1,
		UserID:      1,
		ContactID:   1,
	}
}

func TestBusinessHoursBounds(t *testing.T) {
	loc := eastern(t)
	v := NewValidator(loc)

	a := validAppointment(loc)
	a.Start = time.Date(2026, 4, 14, 7, 59, 0, 0, loc)
	err := v.Validate(a)
	var hours *OutOfBusinessHoursError
	if !errors.As(err, &hours) || hours.Field != "start" {
		t.Fatalf("expected out-of-hours start, got %v", err)
	}

	// 22:00 exactly is the one inclusive point of the upper bound
	a = validAppointment(loc)
	a.Start = time.Date(2026, 4, 14, 21, 0, 0, 0, loc)
	a.End = time.Date(2026, 4, 14, 22, 0, 0, 0, loc)
	if err := v.Validate(a); err != nil {
		t.Fatalf("expected 22:00 end to be valid, got %v", err)
	}

	a.End = time.Date(2026, 4, 14, 22, 1, 0, 0, loc)
	err = v.Validate(a)
	if !errors.As(err, &hours) || hours.Field != "end" {
		t.Fatalf("expected out-of-hours end, got %v", err)
	}

	// 08:00 opens the day
	a = validAppointment(loc)
	a.Start = time.Date(2026, 4, 14, 8, 0, 0, 0, loc)
	if err := v.Validate(a); err != nil {
		t.Fatalf("expected 08:00 start to be valid, got %v", err)
	}
}

func TestBusinessHoursUseBusinessTimezone(t *testing.T) {
	loc := eastern(t)
	v := NewValidator(loc)
	a := validAppointment(loc)
	// 11:30 UTC is 07:30 Eastern in April: inside hours by the storage
	// clock, outside by the business clock.
	a.Start = time.Date(2026, 4, 14, 11, 30, 0, 0, time.UTC)
	a.End = time.Date(2026, 4, 14, 13, 0, 0, 0, time.UTC)
	err := v.Validate(a)
	var hours *OutOfBusinessHoursError
	if !errors.As(err, &hours) || hours.Field != "start" {
		t.Fatalf("expected business-timezone hours check to fail, got %v", err)
	}
}

func TestStartAfterEnd(t *testing.T) {
	loc := eastern(t)
	v := NewValidator(loc)
	a := validAppointment(loc)
	a.Start = time.Date(2026, 4, 14, 12, 0, 0, 0, loc)
	a.End = time.Date(2026, 4, 14, 11, 0, 0, 0, loc)
	if err := v.Validate(a); !errors.Is(err, ErrStartAfterEnd) {
		t.Fatalf("expected ErrStartAfterEnd, got %v", err)
	}
}

func TestCrossDayUsesBusinessTimezoneDate(t *testing.T) {
	loc := eastern(t)
	v := NewValidator(loc)
	a := validAppointment(loc)
	// Both instants fall on June 10 UTC, but June 9 vs June 10 Eastern.
	a.Start = time.Date(2026, 6, 10, 0, 30, 0, 0, time.UTC)  // 20:30 June 9 Eastern
	a.End = time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC)   // 19:30 June 10 Eastern
	if err := v.Validate(a); !errors.Is(err, ErrCrossesDayBoundary) {
		t.Fatalf("expected ErrCrossesDayBoundary, got %v", err)
	}
}

func TestSameBusinessDayAcrossUTCMidnight(t *testing.T) {
	loc := eastern(t)
	v := NewValidator(loc)
	a := validAppointment(loc)
	// 19:00-21:00 June 9 Eastern spans UTC midnight (23:00 June 9 to
	// 01:00 June 10 UTC) but is one Eastern calendar day.
	a.Start = time.Date(2026, 6, 9, 19, 0, 0, 0, loc)
	a.End = time.Date(2026, 6, 9, 21, 0, 0, 0, loc)
	if err := v.Validate(a); err != nil {
		t.Fatalf("expected same Eastern day to be valid, got %v", err)
	}
}

func TestOverlapsClosedInterval(t *testing.T) {
	loc := eastern(t)
	day := time.Date(2026, 4, 14, 0, 0, 0, 0, loc)
	existing := &Appointment{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"contained", day.Add(10*time.Hour + 30*time.Minute), day.Add(10*time.Hour + 45*time.Minute), true},
		{"touches start", day.Add(9 * time.Hour), day.Add(10 * time.Hour), true},
		{"touches end", day.Add(11 * time.Hour), day.Add(12 * time.Hour), true},
		{"one second after", day.Add(11*time.Hour + time.Second), day.Add(12 * time.Hour), false},
		{"one second before", day.Add(9 * time.Hour), day.Add(10*time.Hour - time.Second), false},
	}
	for _, tc := range cases {
		cand := &Appointment{Start: tc.start, End: tc.end}
		if got := cand.Overlaps(existing); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

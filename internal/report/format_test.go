package report

import (
	"strings"
	"testing"
	"time"
)

func TestFormatCounts(t *testing.T) {
	out := FormatCounts([]MonthTypeCount{
		{Year: 2026, Month: 4, Type: "Planning Session", Count: 3},
		{Year: 2026, Month: 4, Type: "De-Briefing", Count: 1},
	})
	if !strings.Contains(out, "2026 April") {
		t.Fatalf("month name missing: %q", out)
	}
	if !strings.Contains(out, "Planning Session") || !strings.Contains(out, "3") {
		t.Fatalf("row content missing: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", got, out)
	}
}

func TestFormatCountsEmpty(t *testing.T) {
	if out := FormatCounts(nil); out != "no appointments\n" {
		t.Fatalf("unexpected empty rendering: %q", out)
	}
}

func TestFormatScheduleGroupsByContact(t *testing.T) {
	start := time.Date(2026, 4, 14, 10, 0, 0, 0, time.UTC)
	rows := []ContactScheduleRow{
		{ContactID: 1, ContactName: "Anika Costa", AppointmentID: 7, Title: "Kickoff", Type: "Planning Session", Start: start, End: start.Add(time.Hour), CustomerID: 2},
		{ContactID: 1, ContactName: "Anika Costa", AppointmentID: 9, Title: "Review", Type: "De-Briefing", Start: start.Add(24 * time.Hour), End: start.Add(25 * time.Hour), CustomerID: 2},
		{ContactID: 2, ContactName: "Daniel Garcia", AppointmentID: 11, Title: "Intro", Type: "Planning Session", Start: start, End: start.Add(time.Hour), CustomerID: 3},
	}
	out := FormatSchedule(rows)
	if got := strings.Count(out, "Anika Costa:"); got != 1 {
		t.Fatalf("contact heading repeated, got %d: %q", got, out)
	}
	if !strings.Contains(out, "Daniel Garcia:") {
		t.Fatalf("second contact heading missing: %q", out)
	}
	if !strings.Contains(out, "#7 Kickoff") || !strings.Contains(out, "2026-04-14 10:00") {
		t.Fatalf("appointment line wrong: %q", out)
	}
}

func TestFormatDivisions(t *testing.T) {
	out := FormatDivisions([]DivisionCustomerCount{
		{Division: "Alberta", Country: "Canada", Count: 2},
	})
	if !strings.Contains(out, "Canada / Alberta") {
		t.Fatalf("division line wrong: %q", out)
	}
}

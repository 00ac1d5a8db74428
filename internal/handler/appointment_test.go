package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/repository"
)

func queryCtx(t *testing.T, rawQuery string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/appointments?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFilterFromQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  *repository.Filter
		fails bool
	}{
		{name: "no params selects everything", query: "", want: nil},
		{name: "year and month", query: "year=2026&month=4",
			want: &repository.Filter{Year: 2026, Field: repository.FilterMonth, Value: 4}},
		{name: "year and week", query: "year=2026&week=15",
			want: &repository.Filter{Year: 2026, Field: repository.FilterWeek, Value: 15}},
		// WEEK(x, 0) reports days before the year's first Sunday as week 0,
		// so the picker can legitimately offer it.
		{name: "week zero", query: "year=2026&week=0",
			want: &repository.Filter{Year: 2026, Field: repository.FilterWeek, Value: 0}},
		{name: "week out of range", query: "year=2026&week=54", fails: true},
		{name: "year alone", query: "year=2026", fails: true},
		{name: "month without year", query: "month=4", fails: true},
		{name: "month and week together", query: "year=2026&month=4&week=15", fails: true},
		{name: "month out of range", query: "year=2026&month=13", fails: true},
		{name: "non-numeric year", query: "year=twenty&month=4", fails: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := filterFromQuery(queryCtx(t, tc.query))
			if tc.fails {
				if err == nil {
					t.Fatalf("expected rejection, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil filter, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tc.want {
				t.Fatalf("filter = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	c := queryCtx(t, "")
	if got := userIDFromContext(c); got != 0 {
		t.Fatalf("missing claim should yield 0, got %d", got)
	}
	// JWT numeric claims decode as float64.
	c.Set("user_id", float64(42))
	if got := userIDFromContext(c); got != 42 {
		t.Fatalf("float64 claim: got %d", got)
	}
	c.Set("user_id", "7")
	if got := userIDFromContext(c); got != 7 {
		t.Fatalf("string claim: got %d", got)
	}
	c.Set("user_id", "not-a-number")
	if got := userIDFromContext(c); got != 0 {
		t.Fatalf("garbage claim should yield 0, got %d", got)
	}
}

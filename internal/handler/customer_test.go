package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/model"
	"github.com/avelik/schedesk/internal/table"
)

// fakeCustomerRepo backs a table with a fixed row set.
type fakeCustomerRepo struct {
	rows []*model.Customer
}

func (r *fakeCustomerRepo) Select(_ context.Context, _ *table.Filter) ([]*model.Customer, error) {
	out := make([]*model.Customer, 0, len(r.rows))
	for _, cu := range r.rows {
		out = append(out, cu.Copy())
	}
	return out, nil
}

func (r *fakeCustomerRepo) Insert(_ context.Context, _ *model.Customer) (uint64, error) {
	return 0, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, _ *model.Customer) (int64, error) {
	return 0, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, _ uint64) (int64, error) {
	return 0, nil
}

func newTestCustomerHandler(rows ...*model.Customer) *CustomerHandler {
	tbl := table.New(table.Config[*model.Customer]{
		Repo:      &fakeCustomerRepo{rows: rows},
		Validator: model.NewValidator(time.UTC),
		New:       func() *model.Customer { return &model.Customer{} },
	})
	return NewCustomerHandler(tbl)
}

func customerCtx(t *testing.T, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/customers/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/customers/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestGetUnknownCustomerReturnsNotFound(t *testing.T) {
	h := newTestCustomerHandler()
	c, rec := customerCtx(t, http.MethodGet, "99", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetMalformedIDReturnsBadRequest(t *testing.T) {
	h := newTestCustomerHandler()
	for _, id := range []string{"abc", "0", "-4"} {
		c, rec := customerCtx(t, http.MethodGet, id, "")
		if err := h.Get(c); err != nil {
			t.Fatalf("Get(%q): %v", id, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Get(%q): status = %d, want %d", id, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestUpdateUnknownCustomerReturnsNotFound(t *testing.T) {
	h := newTestCustomerHandler()
	c, rec := customerCtx(t, http.MethodPut, "99", `{"name":"Acme"}`)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if h.Table.HasOpenSession() {
		t.Fatal("failed lookup must not leave a session open")
	}
}

func TestDeleteUnknownCustomerReturnsNotFound(t *testing.T) {
	h := newTestCustomerHandler()
	c, rec := customerCtx(t, http.MethodDelete, "99", "")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetKnownCustomerSucceeds(t *testing.T) {
	row := &model.Customer{Record: model.Record{ID: 7}, Name: "Acme", Address: "1 Main St",
		PostalCode: "12345", Phone: "555-0100", DivisionID: 3}
	h := newTestCustomerHandler(row)
	if err := h.Table.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	c, rec := customerCtx(t, http.MethodGet, "7", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Acme"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

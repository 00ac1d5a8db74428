package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/form"
	"github.com/avelik/schedesk/internal/model"
	"github.com/avelik/schedesk/internal/table"
)

// CustomerHandler exposes the customer table over HTTP. Each write request
// opens an edit session against the table, fills the form surface from the
// request body and commits; a rejected commit is cancelled so the request
// never leaves the table's single-flight guard held.
type CustomerHandler struct {
	Table *table.Table[*model.Customer]
}

func NewCustomerHandler(t *table.Table[*model.Customer]) *CustomerHandler {
	return &CustomerHandler{Table: t}
}

type customerReq struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	DivisionID uint64 `json:"division_id"`
}

type customerResp struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	DivisionID uint64 `json:"division_id"`
}

func customerToResp(cu *model.Customer) customerResp {
	return customerResp{
		ID: cu.ID, Name: cu.Name, Address: cu.Address,
		PostalCode: cu.PostalCode, Phone: cu.Phone, DivisionID: cu.DivisionID,
	}
}

func fillCustomerSurface(s *form.Values, req customerReq) {
	s.SetText("name", req.Name)
	s.SetText("address", req.Address)
	s.SetText("postalCode", req.PostalCode)
	s.SetText("phone", req.Phone)
	s.SetRef("divisionId", req.DivisionID)
}

// List returns every customer after refreshing the collection.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Table.Load(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	recs := h.Table.Records()
	out := make([]customerResp, 0, len(recs))
	for _, cu := range recs {
		out = append(out, customerToResp(cu))
	}
	return c.JSON(http.StatusOK, out)
}

// Get renders one customer through a read-only session.
func (h *CustomerHandler) Get(c echo.Context) error {
	cu, err := h.recordFromPath(c)
	if err != nil {
		return pathError(c, err)
	}
	s, err := h.Table.View(cu, form.NewValues())
	if err != nil {
		return commitError(c, err)
	}
	resp := customerToResp(s.Record())
	s.Cancel()
	return c.JSON(http.StatusOK, resp)
}

// Create opens a create session, commits the request body through it and
// returns the stored row with its generated id.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	surface := form.NewValues()
	s, err := h.Table.Add(ctx, surface)
	if err != nil {
		return commitError(c, err)
	}
	fillCustomerSurface(surface, req)
	if err := s.Commit(); err != nil {
		s.Cancel()
		return commitError(c, err)
	}
	return c.JSON(http.StatusCreated, customerToResp(s.Record()))
}

// Update edits an existing customer in place.
func (h *CustomerHandler) Update(c echo.Context) error {
	cu, err := h.recordFromPath(c)
	if err != nil {
		return pathError(c, err)
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	surface := form.NewValues()
	s, err := h.Table.Edit(ctx, cu, surface)
	if err != nil {
		return commitError(c, err)
	}
	fillCustomerSurface(surface, req)
	if err := s.Commit(); err != nil {
		s.Cancel()
		return commitError(c, err)
	}
	return c.JSON(http.StatusOK, customerToResp(cu))
}

// Delete removes the customer and, through the table's cascade hook, all
// of its appointments first.
func (h *CustomerHandler) Delete(c echo.Context) error {
	cu, err := h.recordFromPath(c)
	if err != nil {
		return pathError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Table.Delete(ctx, cu); err != nil {
		return commitError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// recordFromPath resolves :id against the table.  It reports failures as
// sentinel errors for the caller to translate; returning an already-written
// response here would hand callers a nil record with a nil error.
func (h *CustomerHandler) recordFromPath(c echo.Context) (*model.Customer, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, errInvalidID
	}
	cu := h.Table.Get(id)
	if cu == nil {
		// The collection may be stale if the row was created elsewhere.
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := h.Table.Load(ctx); err == nil {
			cu = h.Table.Get(id)
		}
		if cu == nil {
			return nil, table.ErrNotFound
		}
	}
	return cu, nil
}

// reqCtx bounds database work done on behalf of one request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

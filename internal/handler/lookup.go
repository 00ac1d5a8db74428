package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/repository"
)

// LookupHandler serves the read-only reference data that populates form
// selectors. These routes sit behind the response cache middleware since
// the underlying tables change rarely.
type LookupHandler struct {
	Repo *repository.LookupRepo
}

func NewLookupHandler(r *repository.LookupRepo) *LookupHandler {
	return &LookupHandler{Repo: r}
}

// Contacts returns all contacts.
func (h *LookupHandler) Contacts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repo.Contacts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Users returns all users as id/username pairs.
func (h *LookupHandler) Users(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repo.Users(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Countries returns all countries.
func (h *LookupHandler) Countries(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repo.Countries(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Divisions returns the first-level divisions of one country.
func (h *LookupHandler) Divisions(c echo.Context) error {
	countryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || countryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid country id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repo.DivisionsByCountry(ctx, countryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

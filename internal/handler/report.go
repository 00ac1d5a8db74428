package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/report"
)

// ReportHandler serves the three schedule summaries. Each endpoint returns
// JSON by default and plain text with ?format=text.
type ReportHandler struct {
	Repo *report.Repo
}

func NewReportHandler(r *report.Repo) *ReportHandler {
	return &ReportHandler{Repo: r}
}

func wantsText(c echo.Context) bool {
	return c.QueryParam("format") == "text"
}

// CountsByMonthAndType returns appointment totals per month and type.
func (h *ReportHandler) CountsByMonthAndType(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.CountsByMonthAndType(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if wantsText(c) {
		return c.String(http.StatusOK, report.FormatCounts(rows))
	}
	return c.JSON(http.StatusOK, rows)
}

// ContactSchedule returns every contact's appointments grouped by contact.
func (h *ReportHandler) ContactSchedule(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.ScheduleByContact(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if wantsText(c) {
		return c.String(http.StatusOK, report.FormatSchedule(rows))
	}
	return c.JSON(http.StatusOK, rows)
}

// CustomersByDivision returns customer counts per first-level division.
func (h *ReportHandler) CustomersByDivision(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.CustomersByDivision(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if wantsText(c) {
		return c.String(http.StatusOK, report.FormatDivisions(rows))
	}
	return c.JSON(http.StatusOK, rows)
}

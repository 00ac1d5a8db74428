package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/form"
	"github.com/avelik/schedesk/internal/model"
	"github.com/avelik/schedesk/internal/queue"
	"github.com/avelik/schedesk/internal/repository"
	queuepublisher "github.com/avelik/schedesk/internal/service"
	"github.com/avelik/schedesk/internal/table"
)

// upcomingWindow is how far ahead the sign-in alert looks for the user's
// next appointment.
const upcomingWindow = 15 * time.Minute

// AppointmentHandler exposes the appointment table over HTTP, including
// the year/month/week schedule filter and the upcoming-appointments alert
// feed. Successful creates and reschedules are announced on the message
// broker; publish failures are logged by the publisher and never fail the
// request.
type AppointmentHandler struct {
	Table    *table.Table[*model.Appointment]
	Repo     *repository.AppointmentRepo
	QueueURL string
}

func NewAppointmentHandler(t *table.Table[*model.Appointment], r *repository.AppointmentRepo, queueURL string) *AppointmentHandler {
	return &AppointmentHandler{Table: t, Repo: r, QueueURL: queueURL}
}

type appointmentReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CustomerID  uint64    `json:"customer_id"`
	UserID      uint64    `json:"user_id"`
	ContactID   uint64    `json:"contact_id"`
}

type appointmentResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CustomerID  uint64    `json:"customer_id"`
	UserID      uint64    `json:"user_id"`
	ContactID   uint64    `json:"contact_id"`
}

func appointmentToResp(a *model.Appointment) appointmentResp {
	return appointmentResp{
		ID: a.ID, Title: a.Title, Description: a.Description,
		Location: a.Location, Type: a.Type,
		Start: a.Start.UTC(), End: a.End.UTC(),
		CustomerID: a.CustomerID, UserID: a.UserID, ContactID: a.ContactID,
	}
}

func fillAppointmentSurface(s *form.Values, req appointmentReq) {
	s.SetText("title", req.Title)
	s.SetText("description", req.Description)
	s.SetText("location", req.Location)
	s.SetText("type", req.Type)
	s.SetTime("start", req.Start)
	s.SetTime("end", req.End)
	s.SetRef("customerId", req.CustomerID)
	s.SetRef("userId", req.UserID)
	s.SetRef("contactId", req.ContactID)
}

// List returns appointments, optionally narrowed to ?year=YYYY with either
// &month=1..12 or &week=0..53. The chosen filter stays active on the table
// until a request without filter params clears it.
func (h *AppointmentHandler) List(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	h.Table.SetFilter(f)

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Table.Load(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	recs := h.Table.Records()
	out := make([]appointmentResp, 0, len(recs))
	for _, a := range recs {
		out = append(out, appointmentToResp(a))
	}
	return c.JSON(http.StatusOK, out)
}

// Years returns the calendar years that have appointments, for populating
// the filter picker.
func (h *AppointmentHandler) Years(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	years, err := h.Repo.DistinctYears(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, years)
}

// Months returns the months of ?year= that have appointments.
func (h *AppointmentHandler) Months(c echo.Context) error {
	return h.distinctWithin(c, h.Repo.DistinctMonths)
}

// Weeks returns the weeks of ?year= that have appointments.
func (h *AppointmentHandler) Weeks(c echo.Context) error {
	return h.distinctWithin(c, h.Repo.DistinctWeeks)
}

func (h *AppointmentHandler) distinctWithin(c echo.Context, query func(context.Context, int) ([]int, error)) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := query(ctx, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get renders one appointment through a read-only session.
func (h *AppointmentHandler) Get(c echo.Context) error {
	a, err := h.recordFromPath(c)
	if err != nil {
		return pathError(c, err)
	}
	s, err := h.Table.View(a, form.NewValues())
	if err != nil {
		return commitError(c, err)
	}
	resp := appointmentToResp(s.Record())
	s.Cancel()
	return c.JSON(http.StatusOK, resp)
}

// Create schedules a new appointment. The conflict hook rejects commits
// whose interval touches an existing appointment for the same customer.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req appointmentReq
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
	fillAppointmentSurface(surface, req)
	if err := s.Commit(); err != nil {
		s.Cancel()
		return commitError(c, err)
	}
	stored := s.Record()
	h.announce(stored, "created")
	return c.JSON(http.StatusCreated, appointmentToResp(stored))
}

// Update reschedules or otherwise edits an appointment in place.
func (h *AppointmentHandler) Update(c echo.Context) error {
	a, err := h.recordFromPath(c)
	if err != nil {
		return pathError(c, err)
	}
	var req appointmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	surface := form.NewValues()
	s, err := h.Table.Edit(ctx, a, surface)
	if err != nil {
		return commitError(c, err)
	}
	fillAppointmentSurface(surface, req)
	if err := s.Commit(); err != nil {
		s.Cancel()
		return commitError(c, err)
	}
	h.announce(a, "rescheduled")
	return c.JSON(http.StatusOK, appointmentToResp(a))
}

// Delete cancels an appointment.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	a, err := h.recordFromPath(c)
	if err != nil {
		return pathError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Table.Delete(ctx, a); err != nil {
		return commitError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Upcoming returns the authenticated user's appointments starting within
// the next fifteen minutes. An empty list is a valid answer; clients show
// "no upcoming appointments" for it.
func (h *AppointmentHandler) Upcoming(c echo.Context) error {
	uid := userIDFromContext(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	appts, err := h.Repo.Upcoming(ctx, uid, time.Now(), upcomingWindow)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]appointmentResp, 0, len(appts))
	for _, a := range appts {
		out = append(out, appointmentToResp(a))
	}
	return c.JSON(http.StatusOK, out)
}

// announce publishes the scheduled event without blocking the request.
func (h *AppointmentHandler) announce(a *model.Appointment, action string) {
	ev := queue.AppointmentScheduledEvent{
		AppointmentID: a.ID,
		Title:         a.Title,
		Type:          a.Type,
		Location:      a.Location,
		StartsAt:      a.Start.UTC().Format(time.RFC3339),
		EndsAt:        a.End.UTC().Format(time.RFC3339),
		CustomerID:    a.CustomerID,
		UserID:        a.UserID,
		ContactID:     a.ContactID,
		Action:        action,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepublisher.PublishAppointmentScheduled(ctx, h.QueueURL, ev)
	}()
}

// recordFromPath resolves :id against the table, reporting failures as
// sentinel errors for pathError to translate.
func (h *AppointmentHandler) recordFromPath(c echo.Context) (*model.Appointment, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, errInvalidID
	}
	a := h.Table.Get(id)
	if a == nil {
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := h.Table.Load(ctx); err == nil {
			a = h.Table.Get(id)
		}
		if a == nil {
			return nil, table.ErrNotFound
		}
	}
	return a, nil
}

// filterFromQuery builds the schedule filter from query params. year with
// neither month nor week is rejected, as is month and week together.
// Week 0 is accepted on purpose: MySQL's WEEK(x, 0) buckets days before
// the year's first Sunday into week 0, and the weeks picker surfaces that
// value when such appointments exist.
func filterFromQuery(c echo.Context) (*repository.Filter, error) {
	yearStr := c.QueryParam("year")
	monthStr := c.QueryParam("month")
	weekStr := c.QueryParam("week")
	if yearStr == "" && monthStr == "" && weekStr == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, errInvalidFilter
	}
	if (monthStr == "") == (weekStr == "") {
		return nil, errInvalidFilter
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return nil, errInvalidFilter
		}
		return &repository.Filter{Year: year, Field: repository.FilterMonth, Value: m}, nil
	}
	w, err := strconv.Atoi(weekStr)
	if err != nil || w < 0 || w > 53 {
		return nil, errInvalidFilter
	}
	return &repository.Filter{Year: year, Field: repository.FilterWeek, Value: w}, nil
}

// userIDFromContext reads the JWT subject stored by the auth middleware.
func userIDFromContext(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelik/schedesk/internal/model"
	"github.com/avelik/schedesk/internal/repository"
	"github.com/avelik/schedesk/internal/table"
)

// errInvalidFilter rejects malformed ?year=&month=|week= combinations.
var errInvalidFilter = errors.New("filter requires year plus exactly one of month or week")

// errInvalidID rejects path ids that are not positive integers.
var errInvalidID = errors.New("invalid id")

// pathError renders a failed record lookup from the request path.  The
// lookup helpers return sentinels only; they never write the response
// themselves, so a nil record always travels with a non-nil error.
func pathError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, table.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
}

// commitError translates a failed form commit into an HTTP response.
// Validation failures become 422 with the offending field named, slot
// conflicts become 409, everything else is a 500.
func commitError(c echo.Context, err error) error {
	var empty *model.EmptyFieldError
	if errors.As(err, &empty) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "field is required", "field": empty.Field,
		})
	}
	var hours *model.OutOfBusinessHoursError
	if errors.As(err, &hours) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "outside business hours", "field": hours.Field,
		})
	}
	switch {
	case errors.Is(err, model.ErrStartAfterEnd):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "start is after end"})
	case errors.Is(err, model.ErrCrossesDayBoundary):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "appointment crosses a day boundary"})
	case errors.Is(err, repository.ErrOverlappingAppointment):
		return c.JSON(http.StatusConflict, echo.Map{"error": "customer already has an appointment in that slot"})
	case errors.Is(err, table.ErrSessionOpen):
		return c.JSON(http.StatusConflict, echo.Map{"error": "another edit is in progress"})
	case errors.Is(err, table.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
}

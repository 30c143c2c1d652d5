package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/livingroombaithaks/baithak-booking/internal/repository"
)

// AvailabilityHandler serves the seat availability query.  Counts are
// derived per request from the bookings table; the endpoint sits
// behind the response cache so it stays cheap to call repeatedly, at
// the cost of the snapshot being eventually consistent.  Clients must
// treat the numbers as a hint and rely on the create-time check for
// correctness.
type AvailabilityHandler struct {
	EventRepo   *repository.EventRepo
	BookingRepo *repository.BookingRepo
}

// NewAvailabilityHandler constructs an AvailabilityHandler.  All
// dependencies must be non-nil.
func NewAvailabilityHandler(eventRepo *repository.EventRepo, bookingRepo *repository.BookingRepo) *AvailabilityHandler {
	if eventRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{EventRepo: eventRepo, BookingRepo: bookingRepo}
}

// GetAvailability handles GET /v1/events/:id/availability.  It
// returns per-category total/booked/available counts for the event,
// or 404 when the event does not exist.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.EventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	avail, err := h.BookingRepo.AvailabilityForEvent(ctx, ev)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to derive availability"})
	}
	return c.JSON(http.StatusOK, avail)
}

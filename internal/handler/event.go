// Package handler exposes HTTP handlers for the booking API.  This
// file serves the public event feed: the page shell and the booking
// wizard both fetch it independently on load.  All event fields are
// public; there is nothing to sanitize.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/livingroombaithaks/baithak-booking/internal/repository"
)

// EventHandler serves the read-only event feed.
type EventHandler struct {
	EventRepo *repository.EventRepo // access to events and artist lineups
}

// NewEventHandler constructs an EventHandler.  The repository must be
// non-nil.
func NewEventHandler(eventRepo *repository.EventRepo) *EventHandler {
	if eventRepo == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{EventRepo: eventRepo}
}

// ListEvents handles GET /v1/events.  It returns the full feed as a
// JSON array, upcoming first.  Clients locate the single upcoming
// event themselves; an empty array (or one with no upcoming entry) is
// a valid response, not an error.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.EventRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /v1/events/:id.  It returns one event with its
// lineup, or 404 when the ID does not exist.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.EventRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	return c.JSON(http.StatusOK, ev)
}

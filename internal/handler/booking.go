package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/livingroombaithaks/baithak-booking/internal/model"
	"github.com/livingroombaithaks/baithak-booking/internal/queue"
	"github.com/livingroombaithaks/baithak-booking/internal/repository"
	queuepublisher "github.com/livingroombaithaks/baithak-booking/internal/service"
)

// BookingHandler implements booking creation and the admin-side
// payment verification and cancellation transitions.
type BookingHandler struct {
	EventRepo   *repository.EventRepo
	BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(eventRepo *repository.EventRepo, bookingRepo *repository.BookingRepo) *BookingHandler {
	if eventRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{EventRepo: eventRepo, BookingRepo: bookingRepo}
}

// bookingRequest is the submission payload posted by the wizard at
// the final confirmation step.
type bookingRequest struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
	Timestamp     string `json:"timestamp"`
	Event         struct {
		ID uint64 `json:"id"`
	} `json:"event"`
	Seats struct {
		General int `json:"general"`
		Student int `json:"student"`
		Chairs  int `json:"chairs"`
	} `json:"seats"`
	TotalAmount       int              `json:"totalAmount"`
	Attendees         []model.Attendee `json:"attendees"`
	PaymentScreenshot *string          `json:"paymentScreenshot"`
}

// bookingResponse matches the contract the wizard depends on: success
// flag, booking reference on acceptance, human-readable error on
// rejection.
type bookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CreateBooking handles POST /v1/bookings.  The request is validated
// structurally here; the capacity check runs inside the repository
// transaction so it reflects the moment of the write.  A capacity
// conflict yields 409 with success=false and a reason the wizard
// shows before rewinding to seat selection.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bookingResponse{Error: "invalid request body"})
	}
	if msg := validateBookingRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, bookingResponse{Error: msg})
	}

	ctx := c.Request().Context()
	ev, err := h.EventRepo.GetByID(ctx, req.Event.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, bookingResponse{Error: "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, bookingResponse{Error: "failed to load event"})
	}

	main := req.Attendees[0]
	b := &model.Booking{
		BookingRef:        req.BookingID,
		TransactionID:     req.TransactionID,
		EventID:           ev.ID,
		GeneralSeats:      req.Seats.General,
		StudentSeats:      req.Seats.Student,
		Chairs:            req.Seats.Chairs,
		TotalAmount:       req.TotalAmount,
		BookerName:        main.Name,
		BookerWhatsApp:    main.WhatsApp,
		PaymentScreenshot: req.PaymentScreenshot,
	}
	if main.Email != "" {
		email := main.Email
		b.BookerEmail = &email
	}

	if err := h.BookingRepo.Create(ctx, b, req.Attendees); err != nil {
		if ce, ok := repository.IsCapacityError(err); ok {
			return c.JSON(http.StatusConflict, bookingResponse{Error: ce.Error()})
		}
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, bookingResponse{Error: "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, bookingResponse{Error: "failed to create booking"})
	}

	// Best-effort notification; a broker outage must not fail the booking.
	_ = queuepublisher.PublishBookingReceived(ctx, queue.BookingReceivedEvent{
		BookingRef:   b.BookingRef,
		EventID:      ev.ID,
		EventTitle:   ev.Title,
		EventDate:    ev.Date,
		BookerName:   b.BookerName,
		WhatsApp:     b.BookerWhatsApp,
		GeneralSeats: b.GeneralSeats,
		StudentSeats: b.StudentSeats,
		Chairs:       b.Chairs,
		TotalAmount:  b.TotalAmount,
		CreatedAt:    b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})

	return c.JSON(http.StatusCreated, bookingResponse{Success: true, BookingID: b.BookingRef})
}

// validateBookingRequest checks the structural invariants of a
// submission and returns a user-facing message for the first failure.
func validateBookingRequest(req *bookingRequest) string {
	if strings.TrimSpace(req.BookingID) == "" {
		return "bookingId is required"
	}
	if req.Event.ID == 0 {
		return "event id is required"
	}
	if req.Seats.General < 0 || req.Seats.Student < 0 || req.Seats.Chairs < 0 {
		return "seat counts must not be negative"
	}
	totalSeats := req.Seats.General + req.Seats.Student
	if totalSeats == 0 {
		return "at least one seat is required"
	}
	if len(req.Attendees) != totalSeats {
		return "attendee count must match seat count"
	}
	if req.Seats.Chairs > totalSeats {
		return "chairs requested exceed total seats"
	}
	mains := 0
	for i := range req.Attendees {
		a := &req.Attendees[i]
		if strings.TrimSpace(a.Name) == "" {
			return "every attendee needs a name"
		}
		if a.IsMain {
			mains++
		}
	}
	if mains != 1 || !req.Attendees[0].IsMain {
		return "exactly one main attendee is required, listed first"
	}
	if strings.TrimSpace(req.Attendees[0].WhatsApp) == "" {
		return "main attendee WhatsApp number is required"
	}
	return ""
}

// GetBooking handles GET /v1/bookings/:ref (admin).  Returns the
// booking with its attendees for verification workflows.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	ref := c.Param("ref")
	b, attendees, err := h.BookingRepo.GetByRef(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking":   b,
		"attendees": attendees,
	})
}

// VerifyPayment handles POST /v1/bookings/:ref/verify (admin).  The
// body carries {"verified": bool}.  Verification is a payment-status
// transition on an existing booking; seat counts are untouched.
func (h *BookingHandler) VerifyPayment(c echo.Context) error {
	ref := c.Param("ref")
	var body struct {
		Verified bool `json:"verified"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.BookingRepo.SetPaymentVerified(c.Request().Context(), ref, body.Verified); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment status"})
	}
	status := model.PaymentStatusNotVerified
	if body.Verified {
		status = model.PaymentStatusVerified
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookingId":     ref,
		"paymentStatus": status,
	})
}

// CancelBooking handles POST /v1/bookings/:ref/cancel (admin).
// Cancellation frees the booking's seats through the availability
// derivation; the rows themselves are kept for the audit trail.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	ref := c.Param("ref")
	if err := h.BookingRepo.Cancel(c.Request().Context(), ref); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookingId": ref,
		"status":    "cancelled",
	})
}

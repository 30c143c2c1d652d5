package wizard

import (
	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// Step identifies the wizard's position in the six-step flow.
// StepIdle means no booking attempt is in progress.
type Step int

const (
	StepIdle Step = iota
	StepGuidelines
	StepSeats
	StepAttendees
	StepPayment
	StepReview
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "Idle"
	case StepGuidelines:
		return "Guidelines"
	case StepSeats:
		return "Seats"
	case StepAttendees:
		return "Attendees"
	case StepPayment:
		return "Payment"
	case StepReview:
		return "Review"
	case StepConfirmed:
		return "Confirmed"
	}
	return "Unknown"
}

// SeatSelection holds the three category counters chosen on the seat
// step.  Chairs are an add-on on top of general/student seats, never
// a seat of their own.
type SeatSelection struct {
	General int
	Student int
	Chairs  int
}

// Total returns the number of seats (chairs excluded).
func (s SeatSelection) Total() int { return s.General + s.Student }

// AttendeeForm is one slot on the attendee step.  Slot 0 is the main
// contact and the only one whose WhatsApp and email are captured.
// Student and Chair are the per-attendee toggles the validator
// cross-checks against the seat selection.
type AttendeeForm struct {
	Name     string
	WhatsApp string
	Email    string
	Student  bool
	Chair    bool
	IsMain   bool
}

// PaymentProof is an accepted proof-of-payment upload.  PreviewURL is
// a data URL for images only; PDF uploads carry no preview.
type PaymentProof struct {
	FileName   string
	MIMEType   string
	Size       int64
	Data       []byte
	PreviewURL string
}

// Session is the single mutable object a booking attempt lives in.
// It is owned by the Wizard and mutated only through the Wizard's
// transition methods.
type Session struct {
	CurrentStep Step

	// Guidelines acknowledgement gates the Step 1 -> 2 transition.
	Acknowledged bool

	Seats        SeatSelection
	PriceGeneral int
	PriceStudent int
	// TotalAmount is derived from Seats and the prices.  It is
	// recomputed on every seat mutation and never set directly.
	TotalAmount int

	Attendees []AttendeeForm

	// PaymentReference is generated lazily on first entry to the
	// payment step and stable for the rest of the session.
	PaymentReference string
	Proof            *PaymentProof

	// Event is the upcoming event snapshot, fetched once at flow
	// start and reused for display and submission.
	Event *model.Event
	// Availability is the last-known remote seat snapshot.  Always
	// a hint; refreshed at flow start and at the seat-step
	// checkpoint.
	Availability *model.SeatAvailability

	// BookingID is set only in StepConfirmed, from the backend's
	// acceptance response.
	BookingID string
}

// reset clears everything a previous attempt may have left behind,
// keeping only the prices which are re-derived from the event.
func (s *Session) reset(ev *model.Event, avail *model.SeatAvailability) {
	*s = Session{
		CurrentStep:  StepIdle,
		PriceGeneral: defaultPriceGeneral,
		PriceStudent: defaultPriceStudent,
		Event:        ev,
		Availability: avail,
	}
	if ev != nil {
		if ev.TicketPriceGeneral > 0 {
			s.PriceGeneral = ev.TicketPriceGeneral
		}
		if ev.TicketPriceStudent > 0 {
			s.PriceStudent = ev.TicketPriceStudent
		}
	}
}

// recomputeTotal rederives TotalAmount from the current selection.
// Chairs are free.
func (s *Session) recomputeTotal() {
	s.TotalAmount = s.Seats.General*s.PriceGeneral + s.Seats.Student*s.PriceStudent
}

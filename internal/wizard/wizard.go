// Package wizard implements the six-step booking flow: guidelines,
// seat selection, attendee details, payment, review, confirmation.
// One Wizard drives one Session at a time; all mutation goes through
// the Wizard's methods so presentation code never touches the session
// directly.  Seat counts are validated twice against live
// availability: once before leaving the seat step, and implicitly
// again by the backend at submission.
package wizard

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/livingroombaithaks/baithak-booking/internal/availability"
	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// Fixed per-category caps and default prices.  Availability can lower
// the effective cap for a category, never raise it.
const (
	maxGeneralSeats = 10
	maxStudentSeats = 10
	maxChairs       = 5

	defaultPriceGeneral = 1000
	defaultPriceStudent = 500

	// Flow start waits for the event feed, polling until the data
	// arrives or the deadline passes.
	eventPollInterval = 250 * time.Millisecond
	eventPollTimeout  = 5 * time.Second
)

// EventSource supplies the event feed.  The wizard picks the single
// upcoming entry out of whatever is returned.
type EventSource interface {
	Events(ctx context.Context) ([]model.Event, error)
}

// Submitter posts a completed booking to the backend.  A decodable
// rejection must come back as a result with Success=false, not as an
// error; errors mean the transport failed.
type Submitter interface {
	Submit(ctx context.Context, req availability.BookingRequest) (availability.BookingResult, error)
}

// DisplayRefresher is poked after a confirmed booking so the public
// seat-availability widget can refresh.  Best effort only.
type DisplayRefresher interface {
	RefreshAvailability(eventID uint64)
}

// Wizard owns the booking session and enforces every step transition.
// Methods are safe for concurrent use, though the flow itself is
// strictly sequential: a transition that is still resolving blocks
// any other transition from starting.
type Wizard struct {
	mu sync.Mutex

	events  EventSource
	seats   availability.Client
	submit  Submitter
	display DisplayRefresher

	now func() time.Time
	rng *rand.Rand

	session Session

	// starting latches flow entry so a double-tap cannot launch two
	// concurrent starts.  busy does the same for the checkpoint and
	// submission transitions.
	starting bool
	busy     bool

	// epoch increments on every exit/reset.  An async transition
	// that resolves after the user abandoned the flow compares the
	// epoch it captured and no-ops on mismatch.
	epoch uint64
}

// Option adjusts optional Wizard collaborators.
type Option func(*Wizard)

// WithClock overrides the wizard's time source.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithRand overrides the RNG used for payment references.
func WithRand(rng *rand.Rand) Option {
	return func(w *Wizard) { w.rng = rng }
}

// WithDisplayRefresher attaches the public availability widget hook.
func WithDisplayRefresher(d DisplayRefresher) Option {
	return func(w *Wizard) { w.display = d }
}

// New builds a Wizard over the given collaborators.  All three are
// required; options cover the rest.
func New(events EventSource, seats availability.Client, submit Submitter, opts ...Option) *Wizard {
	if events == nil || seats == nil || submit == nil {
		panic("nil collaborator passed to wizard.New")
	}
	w := &Wizard{
		events: events,
		seats:  seats,
		submit: submit,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.session.reset(nil, nil)
	return w
}

// Session returns a copy of the current session for display.  The
// copy shares the event and availability pointers, which callers must
// treat as read-only.
func (w *Wizard) Session() Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// Step reports the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.CurrentStep
}

// Start enters the flow: waits for event data, fetches fresh
// availability, gates on sold-out, resets the session and lands on
// the guidelines step.  Re-entrant calls while a start is already
// resolving return nil and do nothing.
func (w *Wizard) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.starting || w.busy {
		w.mu.Unlock()
		return nil
	}
	if w.session.CurrentStep != StepIdle {
		w.mu.Unlock()
		return nil
	}
	w.starting = true
	epoch := w.epoch
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.starting = false
		w.mu.Unlock()
	}()

	ev, err := w.waitForUpcomingEvent(ctx)
	if err != nil {
		return err
	}

	snap, err := w.seats.Availability(ctx, ev.ID)
	if err != nil {
		return wrapFlowError(KindNetworkError, "could not fetch seat availability, please try again", err)
	}

	if total, known := snap.KnownTotalAvailable(); known && total <= 0 {
		return newFlowError(KindSoldOut, "this baithak is fully booked, join the community channel to hear about the next one")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch != epoch {
		// Abandoned while resolving; drop the result.
		return nil
	}
	w.session.reset(ev, snap)
	w.session.CurrentStep = StepGuidelines
	return nil
}

// waitForUpcomingEvent polls the event feed until an upcoming event
// shows up or the deadline passes.  The feed and the wizard load
// independently, so the first poll usually lands before the feed has
// resolved.
func (w *Wizard) waitForUpcomingEvent(ctx context.Context) (*model.Event, error) {
	deadline := w.now().Add(eventPollTimeout)
	for {
		events, err := w.events.Events(ctx)
		if err == nil {
			for i := range events {
				if events[i].EventStatus == model.EventStatusUpcoming {
					ev := events[i]
					return &ev, nil
				}
			}
		}
		if !w.now().Before(deadline) {
			if err != nil {
				return nil, wrapFlowError(KindDataUnavailable, "event details are taking too long to load, please refresh and try again", err)
			}
			return nil, newFlowError(KindDataUnavailable, "no upcoming baithak is open for booking right now")
		}
		select {
		case <-ctx.Done():
			return nil, wrapFlowError(KindDataUnavailable, "event details are taking too long to load, please refresh and try again", ctx.Err())
		case <-time.After(eventPollInterval):
		}
	}
}

// Exit abandons the flow from any step and returns to Idle.  Exiting
// from the confirmation step additionally pokes the public
// availability display, since a booking just landed.
func (w *Wizard) Exit() {
	w.mu.Lock()
	confirmed := w.session.CurrentStep == StepConfirmed
	var eventID uint64
	if confirmed && w.session.Event != nil {
		eventID = w.session.Event.ID
	}
	w.epoch++
	w.session.reset(nil, nil)
	display := w.display
	w.mu.Unlock()

	if confirmed && display != nil {
		display.RefreshAvailability(eventID)
	}
}

// AcknowledgeGuidelines records the guidelines checkbox.  Unchecking
// it again re-blocks the Step 1 -> 2 transition.
func (w *Wizard) AcknowledgeGuidelines(ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep == StepGuidelines {
		w.session.Acknowledged = ok
	}
}

// Continue advances one step forward, running whatever gate the
// current step imposes.  On the review step it performs the final
// submission.
func (w *Wizard) Continue(ctx context.Context) error {
	w.mu.Lock()
	step := w.session.CurrentStep
	if w.busy || w.starting {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	switch step {
	case StepGuidelines:
		return w.continueFromGuidelines()
	case StepSeats:
		return w.continueFromSeats(ctx)
	case StepAttendees:
		return w.continueFromAttendees()
	case StepPayment:
		return w.continueFromPayment()
	case StepReview:
		return w.Confirm(ctx)
	default:
		return nil
	}
}

// Back steps backward unconditionally.  No-op on steps without a
// predecessor.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy || w.starting {
		return
	}
	switch w.session.CurrentStep {
	case StepSeats:
		w.session.CurrentStep = StepGuidelines
	case StepAttendees:
		w.session.CurrentStep = StepSeats
	case StepPayment:
		w.session.CurrentStep = StepAttendees
	case StepReview:
		w.session.CurrentStep = StepPayment
	}
}

func (w *Wizard) continueFromGuidelines() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepGuidelines {
		return nil
	}
	if !w.session.Acknowledged {
		return newFlowError(KindValidationError, "please read and accept the booking guidelines to continue")
	}
	w.session.CurrentStep = StepSeats
	return nil
}

// continueFromSeats runs the first reconciliation checkpoint: live
// availability is re-fetched, and only if it still accommodates the
// current selection does the flow move on to the attendee step.  On
// conflict the counts reset to zero and the user stays here with a
// per-category explanation.
func (w *Wizard) continueFromSeats(ctx context.Context) error {
	w.mu.Lock()
	if w.busy || w.starting || w.session.CurrentStep != StepSeats {
		w.mu.Unlock()
		return nil
	}
	if w.session.Seats.Total() < 1 {
		w.mu.Unlock()
		return newFlowError(KindValidationError, "select at least one seat to continue")
	}
	if w.session.Event == nil {
		w.mu.Unlock()
		return newFlowError(KindDataUnavailable, "event details are not loaded, please restart the booking")
	}
	w.busy = true
	epoch := w.epoch
	eventID := w.session.Event.ID
	w.mu.Unlock()

	snap, err := w.seats.Availability(ctx, eventID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if w.epoch != epoch || w.session.CurrentStep != StepSeats {
		return nil
	}
	if err != nil {
		return wrapFlowError(KindNetworkError, "could not re-check seat availability, please try again", err)
	}

	if conflicts := seatConflicts(w.session.Seats, snap); len(conflicts) > 0 {
		w.session.Availability = snap
		w.session.Seats = SeatSelection{}
		w.session.recomputeTotal()
		msg := "seat availability changed while you were choosing: " + joinConflicts(conflicts) + ". Your selection has been reset, please pick again."
		return newFlowError(KindAvailabilityChanged, msg)
	}

	w.session.Availability = snap
	w.generateAttendeeForms()
	w.session.CurrentStep = StepAttendees
	return nil
}

// seatConflict describes one category whose live availability fell
// below the user's selection.
type seatConflict struct {
	Category  string
	Selected  int
	Available int
}

func seatConflicts(sel SeatSelection, snap *model.SeatAvailability) []seatConflict {
	var out []seatConflict
	if snap.GeneralSeatsAvailable != nil && sel.General > *snap.GeneralSeatsAvailable {
		out = append(out, seatConflict{"general", sel.General, *snap.GeneralSeatsAvailable})
	}
	if snap.StudentSeatsAvailable != nil && sel.Student > *snap.StudentSeatsAvailable {
		out = append(out, seatConflict{"student", sel.Student, *snap.StudentSeatsAvailable})
	}
	if snap.ChairsAvailable != nil && sel.Chairs > *snap.ChairsAvailable {
		out = append(out, seatConflict{"chair", sel.Chairs, *snap.ChairsAvailable})
	}
	return out
}

func joinConflicts(cs []seatConflict) string {
	msg := ""
	for i, c := range cs {
		if i > 0 {
			msg += ", "
		}
		msg += fmt.Sprintf("only %d %s remaining (you had selected %d)", c.Available, pluralSeats(c.Category, c.Available), c.Selected)
	}
	return msg
}

func pluralSeats(category string, n int) string {
	unit := category + " seat"
	if category == "chair" {
		unit = "chair"
	}
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func (w *Wizard) continueFromAttendees() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepAttendees {
		return nil
	}
	if err := w.validateAttendees(); err != nil {
		return err
	}
	w.ensurePaymentReference()
	w.session.CurrentStep = StepPayment
	return nil
}

// Payment proof is optional, so leaving the payment step has no gate.
func (w *Wizard) continueFromPayment() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepPayment {
		return nil
	}
	w.session.CurrentStep = StepReview
	return nil
}

package wizard

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livingroombaithaks/baithak-booking/internal/availability"
	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// stubEvents serves a canned event feed.
type stubEvents struct {
	events []model.Event
	err    error
	calls  int
}

func (s *stubEvents) Events(_ context.Context) ([]model.Event, error) {
	s.calls++
	return s.events, s.err
}

// stubSeats serves availability snapshots in order, repeating the
// last one once the queue runs out.
type stubSeats struct {
	snaps []*model.SeatAvailability
	err   error
	calls int
}

func (s *stubSeats) Availability(_ context.Context, _ uint64) (*model.SeatAvailability, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.snaps) == 0 {
		return nil, errors.New("stub has no snapshots")
	}
	snap := s.snaps[0]
	if len(s.snaps) > 1 {
		s.snaps = s.snaps[1:]
	}
	return snap, nil
}

// stubSubmit records the submitted payload and answers with a canned
// result.
type stubSubmit struct {
	result availability.BookingResult
	err    error
	got    availability.BookingRequest
	calls  int
}

func (s *stubSubmit) Submit(_ context.Context, req availability.BookingRequest) (availability.BookingResult, error) {
	s.calls++
	s.got = req
	return s.result, s.err
}

type stubDisplay struct {
	refreshed []uint64
}

func (s *stubDisplay) RefreshAvailability(eventID uint64) {
	s.refreshed = append(s.refreshed, eventID)
}

func upcomingEvent() model.Event {
	return model.Event{
		ID:                 7,
		Title:              "An Evening of Hindustani Vocal",
		Date:               "2025-11-16",
		EventStatus:        model.EventStatusUpcoming,
		Artists:            []model.Artist{{Name: "Meeta Gangrade", Genre: "Hindustani Vocal", Category: "Primary"}},
		TicketPriceGeneral: 1000,
		TicketPriceStudent: 500,
		GeneralSeatsTotal:  45,
		StudentSeatsTotal:  5,
		ChairsTotal:        10,
	}
}

func snap(general, student, chairs int) *model.SeatAvailability {
	return &model.SeatAvailability{
		EventID:               7,
		GeneralSeatsAvailable: model.IntPtr(general),
		StudentSeatsAvailable: model.IntPtr(student),
		ChairsAvailable:       model.IntPtr(chairs),
	}
}

func newTestWizard(t *testing.T, seats *stubSeats, submit *stubSubmit, opts ...Option) *Wizard {
	t.Helper()
	events := &stubEvents{events: []model.Event{upcomingEvent()}}
	opts = append(opts, WithRand(rand.New(rand.NewSource(1))))
	return New(events, seats, submit, opts...)
}

// startToSeats drives a fresh wizard to the seat step.
func startToSeats(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Start(context.Background()))
	require.Equal(t, StepGuidelines, w.Step())
	w.AcknowledgeGuidelines(true)
	require.NoError(t, w.Continue(context.Background()))
	require.Equal(t, StepSeats, w.Step())
}

func TestStartEntersGuidelines(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})

	require.NoError(t, w.Start(context.Background()))

	sess := w.Session()
	assert.Equal(t, StepGuidelines, sess.CurrentStep)
	require.NotNil(t, sess.Event)
	assert.Equal(t, uint64(7), sess.Event.ID)
	require.NotNil(t, sess.Availability)
	assert.Equal(t, 1000, sess.PriceGeneral)
	assert.Equal(t, 500, sess.PriceStudent)
}

func TestStartSoldOutStaysIdle(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(0, 0, 0)}}, &stubSubmit{})

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindSoldOut, KindOf(err))
	assert.Equal(t, StepIdle, w.Step())
}

func TestStartNoUpcomingEventTimesOut(t *testing.T) {
	// The clock jumps past the poll deadline on its second reading so
	// the test never sleeps.
	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	readings := 0
	clock := func() time.Time {
		readings++
		if readings == 1 {
			return base
		}
		return base.Add(eventPollTimeout + time.Second)
	}

	events := &stubEvents{events: []model.Event{}}
	w := New(events, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{}, WithClock(clock))

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindDataUnavailable, KindOf(err))
	assert.Equal(t, StepIdle, w.Step())
}

func TestGuidelinesMustBeAcknowledged(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	require.NoError(t, w.Start(context.Background()))

	err := w.Continue(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidationError, KindOf(err))
	assert.Equal(t, StepGuidelines, w.Step())

	w.AcknowledgeGuidelines(true)
	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, StepSeats, w.Step())
}

func TestSeatCountsStayWithinCaps(t *testing.T) {
	// General capped by availability (4), student by the fixed cap
	// (availability unknown), chairs by both their own cap and the
	// seat total.
	avail := &model.SeatAvailability{
		EventID:               7,
		GeneralSeatsAvailable: model.IntPtr(4),
		ChairsAvailable:       model.IntPtr(5),
	}
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{avail}}, &stubSubmit{})
	startToSeats(t, w)

	for i := 0; i < 25; i++ {
		w.IncrementSeat(CategoryGeneral)
		w.IncrementSeat(CategoryStudent)
		w.IncrementSeat(CategoryChairs)
	}
	sess := w.Session()
	assert.Equal(t, 4, sess.Seats.General, "general capped by availability")
	assert.Equal(t, maxStudentSeats, sess.Seats.Student, "unknown availability falls back to the fixed cap")
	assert.Equal(t, maxChairs, sess.Seats.Chairs)

	// Decrement below zero is a no-op.
	for i := 0; i < 30; i++ {
		w.DecrementSeat(CategoryGeneral)
		w.DecrementSeat(CategoryStudent)
		w.DecrementSeat(CategoryChairs)
	}
	sess = w.Session()
	assert.Equal(t, SeatSelection{}, sess.Seats)
	assert.Equal(t, 0, sess.TotalAmount)
}

func TestChairsNeverExceedSeatTotal(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToSeats(t, w)

	// No seats yet: chairs cannot move.
	w.IncrementSeat(CategoryChairs)
	assert.Equal(t, 0, w.Session().Seats.Chairs)

	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryChairs)
	w.IncrementSeat(CategoryChairs)
	w.IncrementSeat(CategoryChairs)
	assert.Equal(t, 2, w.Session().Seats.Chairs, "chairs track the seat total")

	// Dropping a seat pulls the chair count back down.
	w.DecrementSeat(CategoryGeneral)
	assert.Equal(t, 1, w.Session().Seats.Chairs)
}

func TestTotalAmountTracksEveryMutation(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 10, 5)}}, &stubSubmit{})
	startToSeats(t, w)

	check := func() {
		sess := w.Session()
		want := sess.Seats.General*sess.PriceGeneral + sess.Seats.Student*sess.PriceStudent
		assert.Equal(t, want, sess.TotalAmount)
	}

	check() // (0,0)
	actions := []func(){
		func() { w.IncrementSeat(CategoryGeneral) },
		func() { w.IncrementSeat(CategoryGeneral) },
		func() { w.IncrementSeat(CategoryStudent) },
		func() { w.IncrementSeat(CategoryChairs) },
		func() { w.DecrementSeat(CategoryGeneral) },
		func() { w.IncrementSeat(CategoryStudent) },
		func() { w.DecrementSeat(CategoryStudent) },
		func() { w.DecrementSeat(CategoryStudent) },
	}
	for _, act := range actions {
		act()
		check()
	}
	assert.Equal(t, 1000, w.Session().TotalAmount) // 1 general left
}

func TestAttendeeFormGeneration(t *testing.T) {
	pairs := []struct{ general, student int }{
		{1, 0}, {0, 1}, {2, 1}, {5, 5}, {10, 0}, {3, 4},
	}
	for _, p := range pairs {
		w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 10, 5)}}, &stubSubmit{})
		startToSeats(t, w)
		for i := 0; i < p.general; i++ {
			w.IncrementSeat(CategoryGeneral)
		}
		for i := 0; i < p.student; i++ {
			w.IncrementSeat(CategoryStudent)
		}
		require.NoError(t, w.Continue(context.Background()), "pair %+v", p)

		sess := w.Session()
		require.Equal(t, StepAttendees, sess.CurrentStep)
		require.Len(t, sess.Attendees, p.general+p.student, "pair %+v", p)

		mains := 0
		for i, a := range sess.Attendees {
			if a.IsMain {
				mains++
				assert.Equal(t, 0, i, "main attendee must be slot 0")
			}
		}
		assert.Equal(t, 1, mains, "pair %+v", p)
	}
}

func TestSeatCheckpointResetsOnConflict(t *testing.T) {
	seats := &stubSeats{snaps: []*model.SeatAvailability{
		snap(10, 5, 5), // flow start
		snap(1, 5, 5),  // checkpoint: general dropped to 1
	}}
	w := newTestWizard(t, seats, &stubSubmit{})
	startToSeats(t, w)

	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)
	require.Equal(t, 3, w.Session().Seats.General)

	err := w.Continue(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAvailabilityChanged, KindOf(err))
	assert.Contains(t, err.Error(), "only 1 general seat remaining")
	assert.Contains(t, err.Error(), "selected 3")

	sess := w.Session()
	assert.Equal(t, StepSeats, sess.CurrentStep, "user stays on the seat step")
	assert.Equal(t, SeatSelection{}, sess.Seats, "counts reset to zero")
	assert.Equal(t, 0, sess.TotalAmount)
	require.NotNil(t, sess.Availability.GeneralSeatsAvailable)
	assert.Equal(t, 1, *sess.Availability.GeneralSeatsAvailable, "snapshot refreshed")
}

func TestSeatCheckpointPassesWhenStillAvailable(t *testing.T) {
	seats := &stubSeats{snaps: []*model.SeatAvailability{
		snap(10, 5, 5),
		snap(3, 5, 5), // dropped, but still covers the selection
	}}
	w := newTestWizard(t, seats, &stubSubmit{})
	startToSeats(t, w)

	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)

	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, StepAttendees, w.Step())
	assert.Len(t, w.Session().Attendees, 2)
}

func TestStudentToggleCrossCheck(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryStudent)
	w.IncrementSeat(CategoryStudent)
	require.NoError(t, w.Continue(context.Background()))

	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeName(1, "asha rao")
	w.SetAttendeeName(2, "kiran rao")
	w.SetAttendeeContact("9876543210", "")

	// Too few marked: 2 student seats, 1 toggle.
	w.SetAttendeeStudent(1, true)
	err := w.Continue(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidationError, KindOf(err))
	assert.Contains(t, err.Error(), "mark 1 more")
	assert.Equal(t, StepAttendees, w.Step())

	// Too many marked: forced directly into the session since the
	// toggle guard refuses to overshoot through the setter.
	w.mu.Lock()
	w.session.Attendees[0].Student = true
	w.session.Attendees[1].Student = true
	w.session.Attendees[2].Student = true
	w.mu.Unlock()
	err = w.Continue(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidationError, KindOf(err))
	assert.Contains(t, err.Error(), "unmark 1")

	// Matching marks pass.
	w.mu.Lock()
	w.session.Attendees[0].Student = false
	w.mu.Unlock()
	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, StepPayment, w.Step())
}

func TestChairToggleCrossCheck(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryChairs)
	require.NoError(t, w.Continue(context.Background()))

	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeName(1, "asha rao")
	w.SetAttendeeContact("9876543210", "")

	err := w.Continue(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidationError, KindOf(err))
	assert.Contains(t, err.Error(), "chair")

	w.SetAttendeeChair(1, true)
	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, StepPayment, w.Step())
}

func TestAttendeeValidationRequiresNamesAndPhone(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)
	require.NoError(t, w.Continue(context.Background()))

	// Missing names flag both slots.
	err := w.Continue(context.Background())
	require.Error(t, err)
	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindValidationError, fe.Kind)
	assert.Equal(t, []string{"attendee.0.name", "attendee.1.name"}, fe.Fields)

	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeName(1, "   ") // whitespace is not a name
	err = w.Continue(context.Background())
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"attendee.1.name"}, fe.Fields)

	w.SetAttendeeName(1, "asha rao")
	w.SetAttendeeContact("12345", "")
	err = w.Continue(context.Background())
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"attendee.0.whatsapp"}, fe.Fields)

	w.SetAttendeeContact("98765 43210", "meeta@example.com")
	require.NoError(t, w.Continue(context.Background()))

	// Names title-cased and phone canonicalized on acceptance.
	sess := w.Session()
	assert.Equal(t, "Meeta Gangrade", sess.Attendees[0].Name)
	assert.Equal(t, "Asha Rao", sess.Attendees[1].Name)
	assert.Equal(t, "+919876543210", sess.Attendees[0].WhatsApp)
}

func TestSubmissionRejectedRewindsToSeats(t *testing.T) {
	seats := &stubSeats{snaps: []*model.SeatAvailability{
		snap(10, 5, 5), // flow start
		snap(10, 5, 5), // checkpoint
		snap(0, 5, 5),  // refresh after rejection
	}}
	submit := &stubSubmit{result: availability.BookingResult{
		Success: false,
		Error:   "not enough general seats available: requested 2, only 0 left",
	}}
	w := newTestWizard(t, seats, submit)
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	w.IncrementSeat(CategoryGeneral)
	require.NoError(t, w.Continue(context.Background()))
	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeName(1, "asha rao")
	w.SetAttendeeContact("9876543210", "")
	require.NoError(t, w.Continue(context.Background()))
	require.NoError(t, w.Continue(context.Background())) // payment -> review
	require.Equal(t, StepReview, w.Step())

	err := w.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindSubmissionRejected, KindOf(err))
	assert.Contains(t, err.Error(), "not enough general seats")

	sess := w.Session()
	assert.Equal(t, StepSeats, sess.CurrentStep, "rewinds to seat selection, not guidelines")
	require.NotNil(t, sess.Availability.GeneralSeatsAvailable)
	assert.Equal(t, 0, *sess.Availability.GeneralSeatsAvailable, "availability refreshed from the rejection")
}

func TestSubmissionNetworkErrorRewinds(t *testing.T) {
	seats := &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}
	submit := &stubSubmit{err: errors.New("connection refused")}
	w := newTestWizard(t, seats, submit)
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	require.NoError(t, w.Continue(context.Background()))
	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeContact("9876543210", "")
	require.NoError(t, w.Continue(context.Background()))
	require.NoError(t, w.Continue(context.Background()))

	err := w.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetworkError, KindOf(err))
	assert.Equal(t, StepSeats, w.Step(), "unknown outcome rewinds defensively")
}

func TestEndToEndHappyPath(t *testing.T) {
	seats := &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}
	submit := &stubSubmit{result: availability.BookingResult{Success: true, BookingID: "X"}}
	display := &stubDisplay{}
	w := newTestWizard(t, seats, submit, WithDisplayRefresher(display))

	require.NoError(t, w.Dispatch(context.Background(), ActionStart))
	w.AcknowledgeGuidelines(true)
	require.NoError(t, w.Dispatch(context.Background(), ActionContinue))

	require.NoError(t, w.Dispatch(context.Background(), ActionGeneralPlus))
	require.NoError(t, w.Dispatch(context.Background(), ActionGeneralPlus))
	require.NoError(t, w.Dispatch(context.Background(), ActionStudentPlus))
	require.NoError(t, w.Dispatch(context.Background(), ActionChairPlus))
	assert.Equal(t, 2500, w.Session().TotalAmount)

	require.NoError(t, w.Dispatch(context.Background(), ActionContinue))
	require.Equal(t, StepAttendees, w.Step())

	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeName(1, "asha rao")
	w.SetAttendeeName(2, "kiran rao")
	w.SetAttendeeContact("9876543210", "meeta@example.com")
	w.SetAttendeeStudent(1, true)
	w.SetAttendeeChair(2, true)

	require.NoError(t, w.Dispatch(context.Background(), ActionContinue))
	require.Equal(t, StepPayment, w.Step())
	ref := w.PaymentReference()
	assert.True(t, strings.HasPrefix(ref, "LRB"))
	assert.Len(t, ref, 7)

	require.NoError(t, w.Dispatch(context.Background(), ActionContinue))
	require.Equal(t, StepReview, w.Step())

	require.NoError(t, w.Dispatch(context.Background(), ActionConfirm))

	sess := w.Session()
	assert.Equal(t, StepConfirmed, sess.CurrentStep)
	assert.Equal(t, "X", sess.BookingID)

	// The payload carries counts recomputed from the toggles.
	require.Equal(t, 1, submit.calls)
	assert.Equal(t, 2, submit.got.Seats.General)
	assert.Equal(t, 1, submit.got.Seats.Student)
	assert.Equal(t, 1, submit.got.Seats.Chairs)
	assert.Equal(t, 2500, submit.got.TotalAmount)
	assert.Equal(t, ref, submit.got.BookingID)
	assert.Equal(t, uint64(7), submit.got.Event.ID)
	require.Len(t, submit.got.Attendees, 3)
	assert.Equal(t, "Meeta Gangrade", submit.got.Attendees[0].Name)
	assert.Equal(t, "+919876543210", submit.got.Attendees[0].WhatsApp)
	assert.True(t, submit.got.Attendees[0].IsMain)
	assert.Equal(t, model.SeatTypeStudent, submit.got.Attendees[1].SeatType)
	assert.True(t, submit.got.Attendees[2].NeedsChair)
	assert.Nil(t, submit.got.PaymentScreenshot, "no proof attached")

	// Leaving the confirmation pokes the public display and returns
	// to idle.
	w.Exit()
	assert.Equal(t, StepIdle, w.Step())
	assert.Equal(t, []uint64{7}, display.refreshed)
}

func TestExitIsSafeFromAnyStep(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})

	// Idle exit is a no-op.
	w.Exit()
	assert.Equal(t, StepIdle, w.Step())

	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	w.Exit()
	sess := w.Session()
	assert.Equal(t, StepIdle, sess.CurrentStep)
	assert.Equal(t, SeatSelection{}, sess.Seats)
	assert.Nil(t, sess.Event)
}

func TestBackStepsAreUnconditional(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	require.NoError(t, w.Continue(context.Background()))
	require.Equal(t, StepAttendees, w.Step())

	w.Back()
	assert.Equal(t, StepSeats, w.Step())
	// The selection survives going back.
	assert.Equal(t, 1, w.Session().Seats.General)

	w.Back()
	assert.Equal(t, StepGuidelines, w.Step())
	w.Back() // no predecessor
	assert.Equal(t, StepGuidelines, w.Step())
}

func TestDispatchRejectsUnknownAction(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	err := w.Dispatch(context.Background(), Action("teleport"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestZeroSeatsBlocksAdvance(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToSeats(t, w)

	err := w.Continue(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidationError, KindOf(err))
	assert.Equal(t, StepSeats, w.Step())
}

// An unknown category means "no live data yet", never zero: a
// snapshot with general sold out but the student count missing must
// still open the flow.
func TestStartNotSoldOutWhenCategoryUnknown(t *testing.T) {
	avail := &model.SeatAvailability{
		EventID:               7,
		GeneralSeatsAvailable: model.IntPtr(0),
		// student count never loaded
	}
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{avail}}, &stubSubmit{})

	require.NoError(t, w.Start(context.Background()))
	assert.Equal(t, StepGuidelines, w.Step())

	// The known-zero category stays locked; the unknown one falls
	// back to its fixed cap.
	w.AcknowledgeGuidelines(true)
	require.NoError(t, w.Continue(context.Background()))
	assert.True(t, w.CategoryUnavailable(CategoryGeneral))
	assert.Equal(t, 0, w.CategoryCap(CategoryGeneral))
	assert.Equal(t, maxStudentSeats, w.CategoryCap(CategoryStudent))
}

// blockingEvents parks every feed fetch until release is closed, so a
// test can hold a flow start in flight.
type blockingEvents struct {
	events  []model.Event
	entered chan struct{}
	release chan struct{}
	calls   int32
}

func (b *blockingEvents) Events(_ context.Context) ([]model.Event, error) {
	atomic.AddInt32(&b.calls, 1)
	b.entered <- struct{}{}
	<-b.release
	return b.events, nil
}

func TestStartIsSingleFlight(t *testing.T) {
	events := &blockingEvents{
		events:  []model.Event{upcomingEvent()},
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	seats := &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}
	w := New(events, seats, &stubSubmit{}, WithRand(rand.New(rand.NewSource(1))))

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	<-events.entered

	// A second start while the first is resolving is a no-op: no
	// second fetch, no state change.
	require.NoError(t, w.Start(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&events.calls))
	assert.Equal(t, StepIdle, w.Step())

	close(events.release)
	require.NoError(t, <-done)
	assert.Equal(t, StepGuidelines, w.Step())
	assert.Equal(t, int32(1), atomic.LoadInt32(&events.calls))
}

// blockingSeats answers the flow-start fetch immediately and parks
// every later fetch until release is closed.
type blockingSeats struct {
	first   *model.SeatAvailability
	rest    *model.SeatAvailability
	entered chan struct{}
	release chan struct{}
	calls   int32
}

func (s *blockingSeats) Availability(_ context.Context, _ uint64) (*model.SeatAvailability, error) {
	if atomic.AddInt32(&s.calls, 1) == 1 {
		return s.first, nil
	}
	s.entered <- struct{}{}
	<-s.release
	return s.rest, nil
}

// The seat checkpoint carries the same single-flight discipline as
// flow start: while one checkpoint fetch is pending, another continue
// must not launch a second one.
func TestSeatCheckpointIsSingleFlight(t *testing.T) {
	seats := &blockingSeats{
		first:   snap(10, 5, 5),
		rest:    snap(10, 5, 5),
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	events := &stubEvents{events: []model.Event{upcomingEvent()}}
	w := New(events, seats, &stubSubmit{}, WithRand(rand.New(rand.NewSource(1))))
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)

	done := make(chan error, 1)
	go func() { done <- w.Continue(context.Background()) }()
	<-seats.entered

	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&seats.calls), "no second checkpoint fetch launched")
	assert.Equal(t, StepSeats, w.Step())

	close(seats.release)
	require.NoError(t, <-done)
	assert.Equal(t, StepAttendees, w.Step())
	assert.Equal(t, int32(2), atomic.LoadInt32(&seats.calls))
}

func TestCategoryUnavailableDistinguishesZeroFromUnknown(t *testing.T) {
	avail := &model.SeatAvailability{
		EventID:               7,
		GeneralSeatsAvailable: model.IntPtr(0),
		StudentSeatsAvailable: model.IntPtr(3),
		// chairs unknown
	}
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{avail}}, &stubSubmit{})
	startToSeats(t, w)

	assert.True(t, w.CategoryUnavailable(CategoryGeneral), "known zero is sold out")
	assert.False(t, w.CategoryUnavailable(CategoryStudent))
	assert.False(t, w.CategoryUnavailable(CategoryChairs), "unknown is not sold out")

	// Unknown chairs fall back to the fixed cap, not zero.
	w.IncrementSeat(CategoryStudent)
	w.IncrementSeat(CategoryChairs)
	assert.Equal(t, 1, w.Session().Seats.Chairs)
	// Known-zero general cannot move at all.
	w.IncrementSeat(CategoryGeneral)
	assert.Equal(t, 0, w.Session().Seats.General)
}

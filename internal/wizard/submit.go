package wizard

import (
	"context"
	"time"

	"github.com/livingroombaithaks/baithak-booking/internal/availability"
	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// Confirm performs the final submission from the review step.  The
// posted seat counts are recomputed from the attendee toggles rather
// than taken from the seat-step counters; the validator keeps the two
// equal, and the recomputation is the authoritative source in case it
// ever fails to.  The backend independently revalidates capacity and
// may still reject; on rejection (or a transport failure, where the
// true outcome is unknown) the flow rewinds to the seat step with a
// fresh availability snapshot.
func (w *Wizard) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.session.CurrentStep != StepReview || w.busy || w.starting {
		w.mu.Unlock()
		return nil
	}
	if w.session.Event == nil {
		w.mu.Unlock()
		return newFlowError(KindDataUnavailable, "event details are not loaded, please restart the booking")
	}
	w.busy = true
	epoch := w.epoch
	req := w.buildRequestLocked()
	eventID := w.session.Event.ID
	w.mu.Unlock()

	result, err := w.submit.Submit(ctx, req)

	w.mu.Lock()
	w.busy = false
	if w.epoch != epoch || w.session.CurrentStep != StepReview {
		// The user abandoned the flow while the POST was in
		// flight; the outcome only matters to the backend now.
		w.mu.Unlock()
		return nil
	}

	if err == nil && result.Success {
		w.session.BookingID = result.BookingID
		w.session.CurrentStep = StepConfirmed
		w.mu.Unlock()
		return nil
	}

	// Rejected or unknown outcome: rewind to seat selection so the
	// user can adjust counts. Guidelines stay acknowledged and the
	// attendee details survive until the forms regenerate.
	w.session.CurrentStep = StepSeats
	w.mu.Unlock()

	w.refreshAvailability(ctx, eventID, epoch)

	if err != nil {
		return wrapFlowError(KindNetworkError, "could not reach the booking service, please check your seats and try again", err)
	}
	msg := result.Error
	if msg == "" {
		msg = "the booking could not be completed, please check your seats and try again"
	}
	return newFlowError(KindSubmissionRejected, msg)
}

// refreshAvailability updates the session snapshot after a rejected
// or failed submission.  Best effort: a failed refresh just leaves
// the previous snapshot, which the seat-step checkpoint will correct.
func (w *Wizard) refreshAvailability(ctx context.Context, eventID uint64, epoch uint64) {
	snap, err := w.seats.Availability(ctx, eventID)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch == epoch {
		w.session.Availability = snap
	}
}

// buildRequestLocked assembles the booking payload.  Caller holds the
// mutex.
func (w *Wizard) buildRequestLocked() availability.BookingRequest {
	w.ensurePaymentReference()

	var req availability.BookingRequest
	req.BookingID = w.session.PaymentReference
	req.TransactionID = w.session.PaymentReference
	req.Timestamp = w.now().UTC().Format(time.RFC3339)
	req.Event.ID = w.session.Event.ID
	req.TotalAmount = w.session.TotalAmount

	// Counts recomputed from the toggles, not copied from the
	// seat-step counters.
	for _, a := range w.session.Attendees {
		if a.Student {
			req.Seats.Student++
		} else {
			req.Seats.General++
		}
		if a.Chair {
			req.Seats.Chairs++
		}
	}

	req.Attendees = make([]model.Attendee, len(w.session.Attendees))
	for i, a := range w.session.Attendees {
		seatType := model.SeatTypeGeneral
		if a.Student {
			seatType = model.SeatTypeStudent
		}
		req.Attendees[i] = model.Attendee{
			Name:       a.Name,
			WhatsApp:   a.WhatsApp,
			Email:      a.Email,
			SeatType:   seatType,
			NeedsChair: a.Chair,
			IsMain:     a.IsMain,
		}
	}

	if w.session.Proof != nil {
		url := w.session.Proof.PreviewURL
		if url == "" {
			// PDFs carry no preview; encode on the way out.
			url = dataURL(w.session.Proof.MIMEType, w.session.Proof.Data)
		}
		req.PaymentScreenshot = &url
	}
	return req
}

package wizard

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livingroombaithaks/baithak-booking/internal/availability"
	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// startToPayment drives a fresh wizard to the payment step with one
// general seat booked for a single named attendee.
func startToPayment(t *testing.T, w *Wizard) {
	t.Helper()
	startToSeats(t, w)
	w.IncrementSeat(CategoryGeneral)
	require.NoError(t, w.Continue(context.Background()))
	w.SetAttendeeName(0, "meeta gangrade")
	w.SetAttendeeContact("9876543210", "")
	require.NoError(t, w.Continue(context.Background()))
	require.Equal(t, StepPayment, w.Step())
}

func TestPaymentReferenceStableAcrossSteps(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToPayment(t, w)

	ref := w.PaymentReference()
	require.True(t, strings.HasPrefix(ref, "LRB"))

	// Leaving and re-entering the payment step keeps the reference.
	w.Back()
	require.Equal(t, StepAttendees, w.Step())
	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, ref, w.PaymentReference())
}

func TestAttachProofTypeCheck(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToPayment(t, w)

	err := w.AttachProof("notes.txt", "text/plain", []byte("hello"))
	require.Error(t, err)
	assert.Equal(t, KindUploadRejected, KindOf(err))
	assert.Nil(t, w.Session().Proof, "rejected upload is not stored")
}

func TestAttachProofSizeCheck(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToPayment(t, w)

	big := bytes.Repeat([]byte{0xff}, maxProofBytes+1)
	err := w.AttachProof("huge.png", "image/png", big)
	require.Error(t, err)
	assert.Equal(t, KindUploadRejected, KindOf(err))
	assert.Contains(t, err.Error(), "5 MB")
	assert.Nil(t, w.Session().Proof)
}

func TestAttachProofRejectionKeepsPriorProof(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToPayment(t, w)

	require.NoError(t, w.AttachProof("proof.png", "image/png", []byte{0x89, 0x50}))
	first := w.Session().Proof
	require.NotNil(t, first)

	err := w.AttachProof("notes.txt", "text/plain", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, first, w.Session().Proof, "prior valid proof untouched")
}

func TestAttachProofPreviewOnlyForImages(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToPayment(t, w)

	require.NoError(t, w.AttachProof("proof.jpg", "image/jpeg", []byte{0xff, 0xd8}))
	proof := w.Session().Proof
	require.NotNil(t, proof)
	assert.True(t, strings.HasPrefix(proof.PreviewURL, "data:image/jpeg;base64,"))

	require.NoError(t, w.AttachProof("receipt.pdf", "application/pdf", []byte("%PDF-")))
	proof = w.Session().Proof
	require.NotNil(t, proof)
	assert.Empty(t, proof.PreviewURL, "PDF uploads get no preview")
}

func TestProofIsOptionalAndRemovable(t *testing.T) {
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, &stubSubmit{})
	startToPayment(t, w)

	require.NoError(t, w.AttachProof("proof.png", "image/png", []byte{1, 2, 3}))
	w.RemoveProof()
	assert.Nil(t, w.Session().Proof)

	// No proof still advances.
	require.NoError(t, w.Continue(context.Background()))
	assert.Equal(t, StepReview, w.Step())
}

func TestSubmittedProofIsEncoded(t *testing.T) {
	submit := &stubSubmit{result: availability.BookingResult{Success: true, BookingID: "B1"}}
	w := newTestWizard(t, &stubSeats{snaps: []*model.SeatAvailability{snap(10, 5, 5)}}, submit)
	startToPayment(t, w)

	require.NoError(t, w.AttachProof("receipt.pdf", "application/pdf", []byte("%PDF-")))
	require.NoError(t, w.Continue(context.Background()))
	require.NoError(t, w.Confirm(context.Background()))

	require.NotNil(t, submit.got.PaymentScreenshot)
	assert.True(t, strings.HasPrefix(*submit.got.PaymentScreenshot, "data:application/pdf;base64,"))
}

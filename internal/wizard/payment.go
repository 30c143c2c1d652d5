package wizard

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/livingroombaithaks/baithak-booking/internal/utils"
)

// maxProofBytes caps payment-proof uploads at 5 MB.
const maxProofBytes = 5 << 20

// allowedProofTypes is the upload allow-list.  "image/jpg" is not a
// real MIME type but browsers have been seen sending it.
var allowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// ensurePaymentReference generates the session's payment reference on
// first use.  The reference stays stable across re-entries into the
// payment step for the rest of the session.
func (w *Wizard) ensurePaymentReference() {
	if w.session.PaymentReference == "" {
		w.session.PaymentReference = utils.NewPaymentReference(w.rng)
	}
}

// PaymentReference returns the session's payment reference,
// generating it if the payment step has not been reached yet.
func (w *Wizard) PaymentReference() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensurePaymentReference()
	return w.session.PaymentReference
}

// AttachProof validates and stores a proof-of-payment upload.  Type
// is checked before size so the user gets the more actionable message
// first.  A rejected upload changes nothing: a previously accepted
// proof stays attached.
func (w *Wizard) AttachProof(fileName, mimeType string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepPayment {
		return nil
	}

	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if !allowedProofTypes[mt] {
		return newFlowError(KindUploadRejected, "please upload a JPG, PNG or PDF file")
	}
	if int64(len(data)) > maxProofBytes {
		return newFlowError(KindUploadRejected, fmt.Sprintf("file is too large (%.1f MB), the limit is 5 MB", float64(len(data))/(1<<20)))
	}

	proof := &PaymentProof{
		FileName: fileName,
		MIMEType: mt,
		Size:     int64(len(data)),
		Data:     data,
	}
	// Images get an inline preview; PDFs do not.
	if strings.HasPrefix(mt, "image/") {
		proof.PreviewURL = dataURL(mt, data)
	}
	w.session.Proof = proof
	return nil
}

// RemoveProof detaches the current proof, if any.  Upload is optional
// so this never blocks anything.
func (w *Wizard) RemoveProof() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep == StepPayment {
		w.session.Proof = nil
	}
}

func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

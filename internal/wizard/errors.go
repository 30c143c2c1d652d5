package wizard

import "errors"

// ErrorKind classifies everything that can go wrong during a booking
// flow.  Every kind is handled at the step where it occurs and turned
// into a user-facing message; none should escape the wizard as an
// unhandled fault.
type ErrorKind int

const (
	// KindDataUnavailable means the event feed failed to load or
	// timed out.  The flow never starts.
	KindDataUnavailable ErrorKind = iota + 1
	// KindSoldOut means zero seats were available at flow start.
	// The flow never starts.
	KindSoldOut
	// KindAvailabilityChanged means the seat-selection checkpoint
	// found live counts below the user's selection.  Counts are
	// reset and the user stays on the seat step.
	KindAvailabilityChanged
	// KindValidationError covers field-level and allocation-level
	// problems on the attendee step.  Always recoverable in place.
	KindValidationError
	// KindUploadRejected means a payment proof failed the type or
	// size check.  Prior state is untouched.
	KindUploadRejected
	// KindSubmissionRejected means the backend refused the booking,
	// most commonly a late capacity conflict.  The flow rewinds to
	// the seat step with availability refreshed.
	KindSubmissionRejected
	// KindNetworkError covers transport failures on any fetch or
	// post.  For submission it also rewinds, since the true backend
	// state is unknown.
	KindNetworkError
)

func (k ErrorKind) String() string {
	switch k {
	case KindDataUnavailable:
		return "DataUnavailable"
	case KindSoldOut:
		return "SoldOut"
	case KindAvailabilityChanged:
		return "AvailabilityChanged"
	case KindValidationError:
		return "ValidationError"
	case KindUploadRejected:
		return "UploadRejected"
	case KindSubmissionRejected:
		return "SubmissionRejected"
	case KindNetworkError:
		return "NetworkError"
	}
	return "Unknown"
}

// FlowError is the wizard's only error type.  Message is written for
// direct display to the booker; Fields optionally names the attendee
// form fields to highlight, as "attendee.<index>.<field>".
type FlowError struct {
	Kind    ErrorKind
	Message string
	Fields  []string
	cause   error
}

func (e *FlowError) Error() string { return e.Message }

func (e *FlowError) Unwrap() error { return e.cause }

func newFlowError(kind ErrorKind, msg string) *FlowError {
	return &FlowError{Kind: kind, Message: msg}
}

func wrapFlowError(kind ErrorKind, msg string, cause error) *FlowError {
	return &FlowError{Kind: kind, Message: msg, cause: cause}
}

// KindOf extracts the ErrorKind from an error returned by any wizard
// method, or 0 when the error did not originate here.
func KindOf(err error) ErrorKind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

package repository

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the repository layer.  Handlers compare
// with errors.Is and translate to HTTP status codes.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// CapacityError reports that a booking requested more seats than a
// category has left at the moment of the write.  The message is
// user-facing: it drives the wizard's rewind-to-seat-selection path.
type CapacityError struct {
	Category  string // "general", "student" or "chairs"
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough %s seats available: requested %d, only %d left",
		e.Category, e.Requested, e.Available)
}

// IsCapacityError reports whether err is a capacity conflict and
// returns the typed error when it is.
func IsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

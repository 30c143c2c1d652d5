// Package availability provides the seat-availability client the
// booking wizard depends on.  The wizard never talks HTTP directly;
// it holds a Client and re-fetches through it at every checkpoint, so
// tests can substitute a fixed or scripted source.
package availability

import (
	"context"

	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// Client fetches the current per-category seat counts for an event.
// Snapshots are hints: they may be stale the moment they are
// returned, and callers must defer to server-side revalidation before
// committing.
type Client interface {
	Availability(ctx context.Context, eventID uint64) (*model.SeatAvailability, error)
}

// FixedSource is a Client returning the same snapshot on every call.
// It mirrors the development-time mock used before the backend
// existed: 50 seats total, 45 general, 5 student, 10 chairs, nothing
// booked.  Useful for local page work and as a test double.
type FixedSource struct {
	Snapshot model.SeatAvailability
}

// NewFixedSource returns a FixedSource preloaded with the default
// mock counts.
func NewFixedSource() *FixedSource {
	return &FixedSource{Snapshot: model.SeatAvailability{
		TotalSeats:            50,
		GeneralSeatsTotal:     model.IntPtr(45),
		GeneralSeatsBooked:    model.IntPtr(0),
		GeneralSeatsAvailable: model.IntPtr(45),
		StudentSeatsTotal:     model.IntPtr(5),
		StudentSeatsBooked:    model.IntPtr(0),
		StudentSeatsAvailable: model.IntPtr(5),
		ChairsTotal:           model.IntPtr(10),
		ChairsBooked:          model.IntPtr(0),
		ChairsAvailable:       model.IntPtr(10),
	}}
}

// Availability returns a copy of the fixed snapshot so callers cannot
// mutate the source through the returned pointer's fields.
func (s *FixedSource) Availability(_ context.Context, _ uint64) (*model.SeatAvailability, error) {
	snap := s.Snapshot
	return &snap, nil
}

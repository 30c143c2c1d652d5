package model

// SeatAvailability is a point-in-time snapshot of remote seat counts
// for one event.  It is derived on the server by summing non-cancelled
// bookings and is always treated as a hint that may already be stale
// by the time a client acts on it.
//
// Per-category counts are pointers: nil means the category was absent
// from the response ("no live data yet"), which callers must treat as
// effectively unlimited up to the fixed per-category cap.  A present
// zero means sold out.  The two must never be conflated.
type SeatAvailability struct {
	EventID               uint64 `json:"event_id"`
	TotalSeats            int    `json:"total_seats"`
	GeneralSeatsTotal     *int   `json:"general_seats_total,omitempty"`
	GeneralSeatsBooked    *int   `json:"general_seats_booked,omitempty"`
	GeneralSeatsAvailable *int   `json:"general_seats_available,omitempty"`
	StudentSeatsTotal     *int   `json:"student_seats_total,omitempty"`
	StudentSeatsBooked    *int   `json:"student_seats_booked,omitempty"`
	StudentSeatsAvailable *int   `json:"student_seats_available,omitempty"`
	ChairsTotal           *int   `json:"chairs_total,omitempty"`
	ChairsBooked          *int   `json:"chairs_booked,omitempty"`
	ChairsAvailable       *int   `json:"chairs_available,omitempty"`
}

// KnownTotalAvailable sums the general and student available counts.
// known is true only when both categories carried a live count: an
// unknown category stands for capacity up to the fixed cap, so a
// partial sum must never be mistaken for a complete (possibly zero)
// one.  The sold-out gate only trusts the total when known is true.
func (a *SeatAvailability) KnownTotalAvailable() (total int, known bool) {
	known = a.GeneralSeatsAvailable != nil && a.StudentSeatsAvailable != nil
	if a.GeneralSeatsAvailable != nil {
		total += *a.GeneralSeatsAvailable
	}
	if a.StudentSeatsAvailable != nil {
		total += *a.StudentSeatsAvailable
	}
	return total, known
}

// IntPtr is a small helper for building availability snapshots.
func IntPtr(n int) *int { return &n }

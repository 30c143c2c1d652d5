package wizard

// SeatCategory names one of the three counters on the seat step.
type SeatCategory string

const (
	CategoryGeneral SeatCategory = "general"
	CategoryStudent SeatCategory = "student"
	CategoryChairs  SeatCategory = "chairs"
)

// IncrementSeat bumps a category by one if both the fixed cap and the
// last-known availability allow it.  Chairs are additionally capped
// by the number of seats currently selected.  The call is a silent
// no-op when a bound is hit, matching a disabled plus button.
func (w *Wizard) IncrementSeat(cat SeatCategory) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepSeats {
		return
	}
	s := &w.session.Seats
	switch cat {
	case CategoryGeneral:
		if s.General < w.categoryCapLocked(CategoryGeneral) {
			s.General++
		}
	case CategoryStudent:
		if s.Student < w.categoryCapLocked(CategoryStudent) {
			s.Student++
		}
	case CategoryChairs:
		limit := w.categoryCapLocked(CategoryChairs)
		if limit > s.Total() {
			limit = s.Total()
		}
		if s.Chairs < limit {
			s.Chairs++
		}
	}
	// Removing seats elsewhere never happens on increment, but the
	// chair bound depends on the seat total, so re-clamp anyway.
	w.clampChairsLocked()
	w.session.recomputeTotal()
}

// DecrementSeat lowers a category by one, floored at zero.
// Availability never bounds a decrement.
func (w *Wizard) DecrementSeat(cat SeatCategory) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepSeats {
		return
	}
	s := &w.session.Seats
	switch cat {
	case CategoryGeneral:
		if s.General > 0 {
			s.General--
		}
	case CategoryStudent:
		if s.Student > 0 {
			s.Student--
		}
	case CategoryChairs:
		if s.Chairs > 0 {
			s.Chairs--
		}
	}
	w.clampChairsLocked()
	w.session.recomputeTotal()
}

// clampChairsLocked keeps the chair count within the seat total after
// a seat decrement shrinks the pool chairs ride on.
func (w *Wizard) clampChairsLocked() {
	s := &w.session.Seats
	if s.Chairs > s.Total() {
		s.Chairs = s.Total()
	}
}

// CategoryCap reports the effective maximum for a category: the fixed
// cap lowered by live availability when that availability is known.
// Unknown availability leaves the fixed cap in force.
func (w *Wizard) CategoryCap(cat SeatCategory) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.categoryCapLocked(cat)
}

func (w *Wizard) categoryCapLocked(cat SeatCategory) int {
	fixed := 0
	var avail *int
	snap := w.session.Availability
	switch cat {
	case CategoryGeneral:
		fixed = maxGeneralSeats
		if snap != nil {
			avail = snap.GeneralSeatsAvailable
		}
	case CategoryStudent:
		fixed = maxStudentSeats
		if snap != nil {
			avail = snap.StudentSeatsAvailable
		}
	case CategoryChairs:
		fixed = maxChairs
		if snap != nil {
			avail = snap.ChairsAvailable
		}
	}
	// nil availability means no live data yet; the fixed cap holds.
	// A known zero means sold out and the cap collapses to zero.
	if avail != nil && *avail < fixed {
		return *avail
	}
	return fixed
}

// CategoryUnavailable reports whether a category should be flagged
// sold out: live availability known and exactly zero.  This is
// distinct from "count is at the user's chosen max".
func (w *Wizard) CategoryUnavailable(cat SeatCategory) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := w.session.Availability
	if snap == nil {
		return false
	}
	var avail *int
	switch cat {
	case CategoryGeneral:
		avail = snap.GeneralSeatsAvailable
	case CategoryStudent:
		avail = snap.StudentSeatsAvailable
	case CategoryChairs:
		avail = snap.ChairsAvailable
	}
	return avail != nil && *avail == 0
}

package wizard

import (
	"fmt"

	"github.com/livingroombaithaks/baithak-booking/internal/utils"
)

// generateAttendeeForms builds one blank slot per seat.  Slot 0 is
// the main contact.  Regeneration discards prior per-attendee input,
// which is why it only happens on the seat -> attendee transition.
func (w *Wizard) generateAttendeeForms() {
	n := w.session.Seats.Total()
	forms := make([]AttendeeForm, n)
	if n > 0 {
		forms[0].IsMain = true
	}
	w.session.Attendees = forms
}

// SetAttendeeName records a name for one slot.  Normalization to
// title case happens at validation, not here, so the user sees their
// own typing until they try to advance.
func (w *Wizard) SetAttendeeName(i int, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepAttendees || i < 0 || i >= len(w.session.Attendees) {
		return
	}
	w.session.Attendees[i].Name = name
}

// SetAttendeeContact records the main contact's WhatsApp number and
// optional email.  Only slot 0 carries contact details.
func (w *Wizard) SetAttendeeContact(whatsapp, email string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepAttendees || len(w.session.Attendees) == 0 {
		return
	}
	w.session.Attendees[0].WhatsApp = whatsapp
	w.session.Attendees[0].Email = email
}

// SetAttendeeStudent toggles the student designation for one slot.
// The toggle refuses to overshoot the number of student seats chosen
// on the seat step, matching a disabled checkbox.
func (w *Wizard) SetAttendeeStudent(i int, student bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepAttendees || i < 0 || i >= len(w.session.Attendees) {
		return
	}
	if student && w.markedStudentsLocked() >= w.session.Seats.Student {
		return
	}
	w.session.Attendees[i].Student = student
}

// SetAttendeeChair toggles the chair request for one slot, bounded by
// the chair count chosen on the seat step.
func (w *Wizard) SetAttendeeChair(i int, chair bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.CurrentStep != StepAttendees || i < 0 || i >= len(w.session.Attendees) {
		return
	}
	if chair && w.markedChairsLocked() >= w.session.Seats.Chairs {
		return
	}
	w.session.Attendees[i].Chair = chair
}

func (w *Wizard) markedStudentsLocked() int {
	n := 0
	for _, a := range w.session.Attendees {
		if a.Student {
			n++
		}
	}
	return n
}

func (w *Wizard) markedChairsLocked() int {
	n := 0
	for _, a := range w.session.Attendees {
		if a.Chair {
			n++
		}
	}
	return n
}

// validateAttendees enforces field- and allocation-level correctness
// before the attendee step can be left.  Names are title-cased and
// the main contact's phone normalized in place on success; on failure
// nothing already accepted is touched and the offending fields are
// named for highlighting.
func (w *Wizard) validateAttendees() error {
	sel := w.session.Seats
	forms := w.session.Attendees

	if len(forms) != sel.Total() {
		// Forms are regenerated on entry, so this means seat counts
		// were mutated behind the wizard's back.
		return newFlowError(KindValidationError, "attendee details are out of step with your seat selection, please go back and reselect seats")
	}

	var fields []string
	for i := range forms {
		if utils.TitleCase(forms[i].Name) == "" {
			fields = append(fields, fmt.Sprintf("attendee.%d.name", i))
		}
	}
	if len(fields) > 0 {
		return &FlowError{Kind: KindValidationError, Message: "please enter a name for every attendee", Fields: fields}
	}

	phone := utils.NormalizePhone(forms[0].WhatsApp)
	if !utils.ValidatePhone(phone) {
		return &FlowError{
			Kind:    KindValidationError,
			Message: "please enter a valid Indian WhatsApp number (10 digits, starting 6-9)",
			Fields:  []string{"attendee.0.whatsapp"},
		}
	}

	students := 0
	chairs := 0
	for _, a := range forms {
		if a.Student {
			students++
		}
		if a.Chair {
			chairs++
		}
	}
	if students != sel.Student {
		if students < sel.Student {
			return newFlowError(KindValidationError, fmt.Sprintf("you chose %d student seat(s) but only %d attendee(s) are marked as students, please mark %d more", sel.Student, students, sel.Student-students))
		}
		return newFlowError(KindValidationError, fmt.Sprintf("%d attendee(s) are marked as students but you chose only %d student seat(s), please unmark %d", students, sel.Student, students-sel.Student))
	}
	if chairs != sel.Chairs {
		if chairs < sel.Chairs {
			return newFlowError(KindValidationError, fmt.Sprintf("you requested %d chair(s) but only %d attendee(s) are marked as needing one, please mark %d more", sel.Chairs, chairs, sel.Chairs-chairs))
		}
		return newFlowError(KindValidationError, fmt.Sprintf("%d attendee(s) are marked as needing a chair but you requested only %d, please unmark %d", chairs, sel.Chairs, chairs-sel.Chairs))
	}

	// Defensive bounds beyond the per-toggle limits.
	if students > sel.Total() {
		return newFlowError(KindValidationError, "more students marked than seats selected")
	}
	if chairs > len(forms) {
		return newFlowError(KindValidationError, "more chairs requested than attendees")
	}

	// All checks passed; commit the normalized forms.
	for i := range forms {
		forms[i].Name = utils.TitleCase(forms[i].Name)
	}
	forms[0].WhatsApp = phone
	return nil
}

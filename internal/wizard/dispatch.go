package wizard

import (
	"context"
	"fmt"
)

// Action names a UI event the wizard responds to.  Presentation code
// maps clicks to actions and calls Dispatch; it never mutates the
// session itself.  Field input (names, contact details, toggles,
// uploads) goes through the dedicated setter methods since it carries
// payloads an action name cannot.
type Action string

const (
	ActionStart    Action = "start"
	ActionExit     Action = "exit"
	ActionContinue Action = "continue"
	ActionBack     Action = "back"

	ActionGeneralPlus  Action = "general+"
	ActionGeneralMinus Action = "general-"
	ActionStudentPlus  Action = "student+"
	ActionStudentMinus Action = "student-"
	ActionChairPlus    Action = "chair+"
	ActionChairMinus   Action = "chair-"

	ActionConfirm     Action = "confirm"
	ActionRemoveProof Action = "remove_proof"
)

// Dispatch routes an action to its transition.  Unknown actions are
// an error so a typo in the wiring surfaces immediately instead of
// dying silently.
func (w *Wizard) Dispatch(ctx context.Context, action Action) error {
	switch action {
	case ActionStart:
		return w.Start(ctx)
	case ActionExit:
		w.Exit()
		return nil
	case ActionContinue:
		return w.Continue(ctx)
	case ActionBack:
		w.Back()
		return nil
	case ActionGeneralPlus:
		w.IncrementSeat(CategoryGeneral)
		return nil
	case ActionGeneralMinus:
		w.DecrementSeat(CategoryGeneral)
		return nil
	case ActionStudentPlus:
		w.IncrementSeat(CategoryStudent)
		return nil
	case ActionStudentMinus:
		w.DecrementSeat(CategoryStudent)
		return nil
	case ActionChairPlus:
		w.IncrementSeat(CategoryChairs)
		return nil
	case ActionChairMinus:
		w.DecrementSeat(CategoryChairs)
		return nil
	case ActionConfirm:
		return w.Confirm(ctx)
	case ActionRemoveProof:
		w.RemoveProof()
		return nil
	default:
		return fmt.Errorf("unknown wizard action %q", action)
	}
}

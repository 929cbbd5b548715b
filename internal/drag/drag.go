// Package drag implements the drag-to-reschedule interaction as an
// explicit state machine. Transitions are pure; side effects (mouse
// capture, the confirmation modal, the commit call) are requested through
// Effect values and performed by the shell driving the machine.
package drag

import "github.com/dmoraes/agenda/internal/schedule"

// ItemType identifies what kind of card is being dragged.
type ItemType int

const (
	ItemSession ItemType = iota
	ItemBlock
)

// Phase is the coarse state of the interaction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhasePendingConfirm
	PhaseCommitting
)

// State is the full interaction record. The zero value is the Idle
// baseline every exit transition resets to.
type State struct {
	Phase    Phase
	ItemID   int64
	ItemType ItemType

	// Pre-drag placement, kept so a cancelled drag restores cleanly and
	// the confirmation modal can describe the change.
	OriginalDay  schedule.Day
	OriginalTime string

	// Live candidate placement, recomputed on every pointer move. The
	// duration never changes across a reschedule: only the start moves.
	NewDay   schedule.Day
	NewTime  string
	Duration int

	// Vertical offset between the pointer and the card's top edge at grab
	// time, so the card does not jump under the cursor.
	GrabOffsetY int

	// Current pointer position, for the floating preview.
	PointerX int
	PointerY int
}

// Changed reports whether the candidate placement differs from the
// original one.
func (s State) Changed() bool {
	return s.NewDay != s.OriginalDay || s.NewTime != s.OriginalTime
}

// Active reports whether a drag interaction is in progress in any phase.
func (s State) Active() bool {
	return s.Phase != PhaseIdle
}

// Effect tells the shell what side effect a transition requires.
type Effect int

const (
	// EffectNone: nothing to do.
	EffectNone Effect = iota
	// EffectCapturePointer: start listening to global pointer motion.
	EffectCapturePointer
	// EffectReleasePointer: stop listening to pointer motion; the drag
	// ended without a candidate change.
	EffectReleasePointer
	// EffectPromptConfirm: stop listening to pointer motion and surface
	// the confirmation modal for the frozen candidate.
	EffectPromptConfirm
	// EffectCommit: run the persist path for the confirmed candidate.
	EffectCommit
)

// Event is a pointer, keyboard or commit-result input to the machine.
type Event interface{ isDragEvent() }

// Grab starts a drag from a pointer-down on a card.
type Grab struct {
	ItemID   int64
	ItemType ItemType
	Day      schedule.Day
	Time     string
	Duration int
	OffsetY  int
	X, Y     int
}

// Move updates the candidate placement. Day and Time arrive already
// resolved by the geometry layer (snapped, clamped to the window).
type Move struct {
	Day  schedule.Day
	Time string
	X, Y int
}

// Release is the pointer-up that freezes the candidate.
type Release struct{}

// Escape aborts whatever transient phase is active.
type Escape struct{}

// Confirm accepts the pending candidate.
type Confirm struct{}

// Cancel rejects the pending candidate.
type Cancel struct{}

// Committed reports a successful persist.
type Committed struct{}

// CommitFailed reports a failed persist. The state still resets to Idle;
// the grid keeps the stale pre-drag placement until the next reload.
type CommitFailed struct{ Err error }

func (Grab) isDragEvent()         {}
func (Move) isDragEvent()         {}
func (Release) isDragEvent()      {}
func (Escape) isDragEvent()       {}
func (Confirm) isDragEvent()      {}
func (Cancel) isDragEvent()       {}
func (Committed) isDragEvent()    {}
func (CommitFailed) isDragEvent() {}

// Transition applies an event to a state and returns the next state plus
// the effect the shell must perform. Events that do not apply in the
// current phase are ignored; in particular a Grab while a confirmation is
// pending does not start a second drag.
func Transition(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case Grab:
		if s.Phase != PhaseIdle {
			return s, EffectNone
		}
		return State{
			Phase:        PhaseDragging,
			ItemID:       ev.ItemID,
			ItemType:     ev.ItemType,
			OriginalDay:  ev.Day,
			OriginalTime: ev.Time,
			NewDay:       ev.Day,
			NewTime:      ev.Time,
			Duration:     ev.Duration,
			GrabOffsetY:  ev.OffsetY,
			PointerX:     ev.X,
			PointerY:     ev.Y,
		}, EffectCapturePointer

	case Move:
		if s.Phase != PhaseDragging {
			return s, EffectNone
		}
		s.NewDay = ev.Day
		s.NewTime = ev.Time
		s.PointerX = ev.X
		s.PointerY = ev.Y
		return s, EffectNone

	case Release:
		if s.Phase != PhaseDragging {
			return s, EffectNone
		}
		if !s.Changed() {
			return State{}, EffectReleasePointer
		}
		s.Phase = PhasePendingConfirm
		return s, EffectPromptConfirm

	case Escape:
		switch s.Phase {
		case PhaseDragging:
			return State{}, EffectReleasePointer
		case PhasePendingConfirm:
			return State{}, EffectNone
		}
		return s, EffectNone

	case Confirm:
		if s.Phase != PhasePendingConfirm {
			return s, EffectNone
		}
		s.Phase = PhaseCommitting
		return s, EffectCommit

	case Cancel:
		if s.Phase != PhasePendingConfirm {
			return s, EffectNone
		}
		return State{}, EffectNone

	case Committed:
		if s.Phase != PhaseCommitting {
			return s, EffectNone
		}
		return State{}, EffectNone

	case CommitFailed:
		if s.Phase != PhaseCommitting {
			return s, EffectNone
		}
		return State{}, EffectNone
	}
	return s, EffectNone
}

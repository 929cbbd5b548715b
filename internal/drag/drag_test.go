package drag

import (
	"testing"

	"github.com/dmoraes/agenda/internal/schedule"
)

func grabAna() Grab {
	return Grab{
		ItemID:   1,
		ItemType: ItemSession,
		Day:      schedule.Monday,
		Time:     "14:00",
		Duration: 50,
		OffsetY:  1,
		X:        20, Y: 12,
	}
}

// Full happy path: grab a Monday 14:00 session, drag it to 15:30 on the
// same day, release, confirm.
func TestDragAndConfirm(t *testing.T) {
	s, eff := Transition(State{}, grabAna())
	if s.Phase != PhaseDragging {
		t.Fatalf("phase after grab = %d, want PhaseDragging", s.Phase)
	}
	if eff != EffectCapturePointer {
		t.Fatalf("effect after grab = %d, want EffectCapturePointer", eff)
	}
	if s.NewDay != schedule.Monday || s.NewTime != "14:00" {
		t.Fatalf("candidate not seeded from origin: %+v", s)
	}

	s, eff = Transition(s, Move{Day: schedule.Monday, Time: "15:30", X: 20, Y: 30})
	if eff != EffectNone {
		t.Fatalf("effect after move = %d, want EffectNone", eff)
	}
	if !s.Changed() {
		t.Fatal("Changed() = false after moving the candidate")
	}

	s, eff = Transition(s, Release{})
	if s.Phase != PhasePendingConfirm {
		t.Fatalf("phase after release = %d, want PhasePendingConfirm", s.Phase)
	}
	if eff != EffectPromptConfirm {
		t.Fatalf("effect after release = %d, want EffectPromptConfirm", eff)
	}
	// Candidate frozen for the modal.
	if s.NewTime != "15:30" || s.OriginalTime != "14:00" || s.Duration != 50 {
		t.Fatalf("frozen candidate = %+v", s)
	}

	s, eff = Transition(s, Confirm{})
	if s.Phase != PhaseCommitting {
		t.Fatalf("phase after confirm = %d, want PhaseCommitting", s.Phase)
	}
	if eff != EffectCommit {
		t.Fatalf("effect after confirm = %d, want EffectCommit", eff)
	}

	s, _ = Transition(s, Committed{})
	if s != (State{}) {
		t.Fatalf("state after commit = %+v, want zero", s)
	}
}

// Releasing without moving ends the drag silently: no modal, no commit.
func TestReleaseAtOrigin(t *testing.T) {
	s, _ := Transition(State{}, grabAna())
	s, eff := Transition(s, Release{})
	if s != (State{}) {
		t.Errorf("state = %+v, want zero", s)
	}
	if eff != EffectReleasePointer {
		t.Errorf("effect = %d, want EffectReleasePointer", eff)
	}
}

// Moving away and back to the exact origin counts as unchanged.
func TestReleaseAfterRoundTrip(t *testing.T) {
	s, _ := Transition(State{}, grabAna())
	s, _ = Transition(s, Move{Day: schedule.Tuesday, Time: "10:00"})
	s, _ = Transition(s, Move{Day: schedule.Monday, Time: "14:00"})
	s, eff := Transition(s, Release{})
	if s.Active() {
		t.Errorf("state still active after round-trip release: %+v", s)
	}
	if eff != EffectReleasePointer {
		t.Errorf("effect = %d, want EffectReleasePointer", eff)
	}
}

func TestEscape(t *testing.T) {
	t.Run("mid drag", func(t *testing.T) {
		s, _ := Transition(State{}, grabAna())
		s, _ = Transition(s, Move{Day: schedule.Friday, Time: "09:00"})
		s, eff := Transition(s, Escape{})
		if s != (State{}) {
			t.Errorf("state = %+v, want zero", s)
		}
		if eff != EffectReleasePointer {
			t.Errorf("effect = %d, want EffectReleasePointer", eff)
		}
	})

	t.Run("pending confirm", func(t *testing.T) {
		s, _ := Transition(State{}, grabAna())
		s, _ = Transition(s, Move{Day: schedule.Friday, Time: "09:00"})
		s, _ = Transition(s, Release{})
		s, eff := Transition(s, Escape{})
		if s != (State{}) {
			t.Errorf("state = %+v, want zero", s)
		}
		if eff != EffectNone {
			t.Errorf("effect = %d, want EffectNone", eff)
		}
	})

	t.Run("idle is a no-op", func(t *testing.T) {
		s, eff := Transition(State{}, Escape{})
		if s != (State{}) || eff != EffectNone {
			t.Errorf("idle escape = %+v, %d", s, eff)
		}
	})
}

func TestCancelPendingConfirm(t *testing.T) {
	s, _ := Transition(State{}, grabAna())
	s, _ = Transition(s, Move{Day: schedule.Friday, Time: "09:00"})
	s, _ = Transition(s, Release{})
	s, eff := Transition(s, Cancel{})
	if s != (State{}) {
		t.Errorf("state = %+v, want zero", s)
	}
	if eff != EffectNone {
		t.Errorf("effect = %d, want EffectNone", eff)
	}
}

// A second pointer-down while the confirmation modal is up must not start
// a new drag over the frozen candidate.
func TestGrabIgnoredWhilePendingConfirm(t *testing.T) {
	s, _ := Transition(State{}, grabAna())
	s, _ = Transition(s, Move{Day: schedule.Friday, Time: "09:00"})
	s, _ = Transition(s, Release{})

	second := grabAna()
	second.ItemID = 2
	next, eff := Transition(s, second)
	if next != s {
		t.Errorf("state changed by grab during pending confirm: %+v", next)
	}
	if eff != EffectNone {
		t.Errorf("effect = %d, want EffectNone", eff)
	}
}

func TestMoveIgnoredOutsideDragging(t *testing.T) {
	phases := map[string]State{
		"idle":            {},
		"pending confirm": {Phase: PhasePendingConfirm, NewTime: "09:00"},
		"committing":      {Phase: PhaseCommitting, NewTime: "09:00"},
	}
	for name, s := range phases {
		t.Run(name, func(t *testing.T) {
			next, eff := Transition(s, Move{Day: schedule.Monday, Time: "11:00"})
			if next != s || eff != EffectNone {
				t.Errorf("move applied in %s: %+v, %d", name, next, eff)
			}
		})
	}
}

// A failed persist still resets the machine; recovering the stale grid
// placement is the shell's problem, not the machine's.
func TestCommitFailedResets(t *testing.T) {
	s := State{Phase: PhaseCommitting, ItemID: 1, NewDay: schedule.Friday, NewTime: "09:00"}
	s, eff := Transition(s, CommitFailed{Err: schedule.ErrSessionNotFound})
	if s != (State{}) {
		t.Errorf("state = %+v, want zero", s)
	}
	if eff != EffectNone {
		t.Errorf("effect = %d, want EffectNone", eff)
	}
}

func TestBlockDrag(t *testing.T) {
	s, _ := Transition(State{}, Grab{
		ItemID:   7,
		ItemType: ItemBlock,
		Day:      schedule.Monday,
		Time:     "12:00",
		Duration: 60,
	})
	s, _ = Transition(s, Move{Day: schedule.Wednesday, Time: "12:00"})
	s, eff := Transition(s, Release{})
	if s.Phase != PhasePendingConfirm || eff != EffectPromptConfirm {
		t.Fatalf("block drag release = %+v, %d", s, eff)
	}
	if s.ItemType != ItemBlock || s.NewDay != schedule.Wednesday {
		t.Errorf("frozen block candidate = %+v", s)
	}
}

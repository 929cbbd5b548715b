package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/drag"
	"github.com/dmoraes/agenda/internal/timegrid"
	"github.com/dmoraes/agenda/internal/tui/commands"
)

// handleMouseMsg drives the drag state machine from terminal mouse
// events. Pointer capture is structural here: motion events are only
// consulted while the machine is in the dragging phase, so the capture
// and release effects need no listener bookkeeping.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		return m.handleMotion(msg.X, msg.Y)

	case tea.MouseActionRelease:
		return m.handleRelease()
	}
	return m, nil
}

func (m Model) handlePress(x, y int) (tea.Model, tea.Cmd) {
	// A press outside any open menu closes it.
	if m.actionMenu != nil || m.createMenu != nil || m.viewMenu {
		m.actionMenu = nil
		m.createMenu = nil
		m.viewMenu = false
		return m, nil
	}
	// Modal forms and the pending-confirmation dialog ignore grid presses.
	if m.blockForm != nil || m.detail != nil || m.drag.Phase == drag.PhasePendingConfirm {
		return m, nil
	}
	if m.projector.Mode() == calview.ModeMonthly {
		return m, nil
	}

	dayIdx, row, ok := m.hitTest(x, y)
	if !ok {
		return m, nil
	}
	day := m.displayedDays()[dayIdx].Key
	minutes := m.rowStartMinutes(row)

	session, block := m.itemAt(day, minutes)
	if session == nil && block == nil {
		m.createMenu = &createMenuState{
			day:   day,
			start: timegrid.MinutesToTime(timegrid.SnapToGrid(minutes)),
		}
		return m, nil
	}

	// The menu glyph suppresses drag start.
	if m.menuGlyphCell(x, dayIdx) {
		menu := &actionMenuState{}
		if session != nil {
			menu.itemID = session.ID
			menu.itemType = drag.ItemSession
		} else {
			menu.itemID = block.ID
			menu.itemType = drag.ItemBlock
		}
		m.actionMenu = menu
		return m, nil
	}

	var grab drag.Grab
	if session != nil {
		grab = drag.Grab{
			ItemID:   session.ID,
			ItemType: drag.ItemSession,
			Day:      session.Day,
			Time:     session.StartTime,
			Duration: session.Duration,
			OffsetY:  row - m.rowFor(timegrid.TimeToMinutes(session.StartTime)),
			X:        x,
			Y:        y,
		}
	} else {
		start := timegrid.TimeToMinutes(block.Time)
		grab = drag.Grab{
			ItemID:   block.ID,
			ItemType: drag.ItemBlock,
			Day:      block.Day,
			Time:     block.Time,
			Duration: timegrid.TimeToMinutes(block.EndTime) - start,
			OffsetY:  row - m.rowFor(start),
			X:        x,
			Y:        y,
		}
	}

	m.drag, _ = drag.Transition(m.drag, grab)
	return m, nil
}

func (m Model) handleMotion(x, y int) (tea.Model, tea.Cmd) {
	if m.drag.Phase != drag.PhaseDragging {
		return m, nil
	}

	day := m.drag.NewDay
	if m.projector.Mode() == calview.ModeDaily {
		// A single visible column: only the time moves.
		day = m.projector.DailyDay().Key
	} else if x >= gutterWidth {
		if idx := (x - gutterWidth) / m.colWidth; idx < len(m.displayedDays()) {
			day = m.displayedDays()[idx].Key
		}
	}

	// Compensate for the grab point so the card top tracks the pointer.
	row := y - headerLines - m.drag.GrabOffsetY
	newTime := timegrid.MinutesToTime(timegrid.CellToTime(row, m.rowMinutes, m.window))

	m.drag, _ = drag.Transition(m.drag, drag.Move{Day: day, Time: newTime, X: x, Y: y})
	return m, nil
}

func (m Model) handleRelease() (tea.Model, tea.Cmd) {
	next, effect := drag.Transition(m.drag, drag.Release{})
	m.drag = next
	if effect == drag.EffectPromptConfirm {
		// The confirmation modal renders from the pending-confirm phase.
		return m, nil
	}
	return m, nil
}

// startCommit performs the commit effect for a confirmed candidate.
func (m *Model) startCommit() tea.Cmd {
	s := m.drag
	endMin := timegrid.TimeToMinutes(s.NewTime) + s.Duration

	if s.ItemType == drag.ItemBlock {
		return commands.MoveBlock(m.blocks, s.ItemID, s.NewDay, s.NewTime, timegrid.MinutesToTime(endMin))
	}

	date, ok := m.projector.DateFor(s.NewDay)
	if !ok {
		date, _ = m.projector.DateFor(s.OriginalDay)
	}
	return commands.CommitReschedule(m.sessions, s.ItemID, date, s.NewDay, s.NewTime)
}

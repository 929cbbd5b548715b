package tui

import (
	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
)

const (
	// gutterWidth is the "HH:MM " time column on the left.
	gutterWidth = 6
	// headerLines: title bar plus the day-header row.
	headerLines = 2
	// footerLines: status line plus key help.
	footerLines = 2

	defaultColWidth = 14
	minColWidth     = 9
)

// calculateLayout picks the row granularity and column width for the
// current terminal size. Rows shrink to 30- or 60-minute granularity when
// the window does not fit; the 5-minute snap of drops is unaffected.
func (m *Model) calculateLayout() {
	gridRows := m.height - headerLines - footerLines
	if gridRows < 1 {
		gridRows = 1
	}

	m.rowMinutes = 60
	for _, rm := range []int{15, 30, 60} {
		if m.window.Length()/rm <= gridRows {
			m.rowMinutes = rm
			break
		}
	}

	cols := len(m.displayedDays())
	if cols == 0 {
		cols = 1
	}
	m.colWidth = (m.width - gutterWidth) / cols
	if m.colWidth < minColWidth {
		m.colWidth = minColWidth
	}
}

// gridRows returns the number of visible grid rows.
func (m *Model) gridRows() int {
	return m.window.Length() / m.rowMinutes
}

// displayedDays returns the day columns for the active view.
func (m *Model) displayedDays() []calview.DayEntry {
	if m.projector.Mode() == calview.ModeDaily {
		return []calview.DayEntry{m.projector.DailyDay()}
	}
	return m.projector.DisplayedDays(m.weekDays)
}

// hitTest maps a terminal coordinate to a day column and grid row.
func (m *Model) hitTest(x, y int) (dayIdx, row int, ok bool) {
	row = y - headerLines
	if row < 0 || row >= m.gridRows() {
		return 0, 0, false
	}
	if x < gutterWidth {
		return 0, 0, false
	}
	dayIdx = (x - gutterWidth) / m.colWidth
	if dayIdx >= len(m.displayedDays()) {
		return 0, 0, false
	}
	return dayIdx, row, true
}

// rowStartMinutes returns the minute of day at the top edge of a row.
func (m *Model) rowStartMinutes(row int) int {
	return m.window.Start + row*m.rowMinutes
}

// rowFor returns the grid row containing a minute of day.
func (m *Model) rowFor(minutes int) int {
	return (minutes - m.window.Start) / m.rowMinutes
}

// itemAt returns the session or block covering a minute on a day. At most
// one of the results is non-nil; sessions win when both overlap the cell.
func (m *Model) itemAt(day schedule.Day, minutes int) (*schedule.Session, *schedule.TimeBlock) {
	for _, s := range m.index.SessionsOn(day) {
		if covers(s.StartTime, s.EndTime, minutes) {
			s := s
			return &s, nil
		}
	}
	for _, b := range m.index.BlocksOn(day) {
		if covers(b.Time, b.EndTime, minutes) {
			b := b
			return nil, &b
		}
	}
	return nil, nil
}

func covers(start, end string, minutes int) bool {
	return timegrid.TimeToMinutes(start) <= minutes && minutes < timegrid.TimeToMinutes(end)
}

// menuGlyphCell reports whether the x coordinate falls on the card's menu
// glyph (the last cell of the column). A press there opens the action
// menu instead of starting a drag.
func (m *Model) menuGlyphCell(x, dayIdx int) bool {
	colEnd := gutterWidth + (dayIdx+1)*m.colWidth - 1
	return x >= colEnd-1
}

// Package calview computes the ordered set of displayed days and their
// labels for the calendar views, independent of the data underneath.
package calview

import (
	"fmt"
	"time"

	"github.com/dmoraes/agenda/internal/schedule"
)

// Mode is the active calendar view.
type Mode int

const (
	ModeWeek Mode = iota
	ModeDaily
	ModeMonthly
)

// DayEntry describes one displayed day column.
type DayEntry struct {
	Key   schedule.Day
	Label string // localized short weekday name
	Date  string // dd/mm
	Time  time.Time
}

var dayLabels = map[schedule.Day]string{
	schedule.Sunday:    "dom",
	schedule.Monday:    "seg",
	schedule.Tuesday:   "ter",
	schedule.Wednesday: "qua",
	schedule.Thursday:  "qui",
	schedule.Friday:    "sex",
	schedule.Saturday:  "sáb",
}

var monthLabels = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// LabelFor returns the localized short label for a day key.
func LabelFor(d schedule.Day) string {
	return dayLabels[d]
}

// Projector owns the three view cursors. The week offset, the daily date
// and the month cursor are deliberately not synchronized with each other:
// navigating one view leaves the others where they were.
type Projector struct {
	now func() time.Time

	mode       Mode
	weekOffset int
	dailyDate  time.Time
	monthDate  time.Time
}

// New creates a projector with its cursors on "today". The clock is
// injectable for tests; nil means time.Now.
func New(now func() time.Time) *Projector {
	if now == nil {
		now = time.Now
	}
	today := truncateToDay(now())
	return &Projector{
		now:       now,
		dailyDate: today,
		monthDate: today,
	}
}

// Mode returns the active view mode.
func (p *Projector) Mode() Mode {
	return p.mode
}

// SetMode switches the active view. Cursors keep their positions.
func (p *Projector) SetMode(m Mode) {
	p.mode = m
}

// WeekOffset returns the current week offset (0 = the real current week).
func (p *Projector) WeekOffset() int {
	return p.weekOffset
}

// WeekStart returns the Monday of the week at the current offset.
func (p *Projector) WeekStart() time.Time {
	today := truncateToDay(p.now())
	back := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -back)
	return monday.AddDate(0, 0, p.weekOffset*7)
}

// WeekDays returns the 7 entries Monday..Sunday for the week at the
// current offset.
func (p *Projector) WeekDays() []DayEntry {
	monday := p.WeekStart()
	days := make([]DayEntry, 7)
	for i := 0; i < 7; i++ {
		days[i] = entryFor(monday.AddDate(0, 0, i))
	}
	return days
}

// DisplayedDays returns the columns for a weekDays setting of 5 or 7.
// Five days is Monday-Friday; seven rotates to Sunday-first ordering.
// The asymmetry is intentional UI convention.
func (p *Projector) DisplayedDays(n int) []DayEntry {
	week := p.WeekDays()
	if n == 7 {
		out := make([]DayEntry, 0, 7)
		out = append(out, week[6]) // Sunday leads
		out = append(out, week[:6]...)
		return out
	}
	return week[:5]
}

// DailyDay returns the single entry for the daily-view cursor.
func (p *Projector) DailyDay() DayEntry {
	return entryFor(p.dailyDate)
}

// MonthStart returns the first day of the month under the month cursor.
func (p *Projector) MonthStart() time.Time {
	d := p.monthDate
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// MonthDays returns one entry per day of the month under the month cursor.
func (p *Projector) MonthDays() []DayEntry {
	first := p.MonthStart()
	daysIn := first.AddDate(0, 1, -1).Day()
	out := make([]DayEntry, daysIn)
	for i := 0; i < daysIn; i++ {
		out[i] = entryFor(first.AddDate(0, 0, i))
	}
	return out
}

// MonthLabel returns "month year" for the month cursor, localized.
func (p *Projector) MonthLabel() string {
	first := p.MonthStart()
	return fmt.Sprintf("%s %d", monthLabels[int(first.Month())-1], first.Year())
}

// Next advances the cursor of the active view: one day in daily mode, one
// month in monthly mode, one week otherwise.
func (p *Projector) Next() {
	switch p.mode {
	case ModeDaily:
		p.dailyDate = p.dailyDate.AddDate(0, 0, 1)
	case ModeMonthly:
		p.monthDate = p.monthDate.AddDate(0, 1, 0)
	default:
		p.weekOffset++
	}
}

// Prev moves the cursor of the active view backwards.
func (p *Projector) Prev() {
	switch p.mode {
	case ModeDaily:
		p.dailyDate = p.dailyDate.AddDate(0, 0, -1)
	case ModeMonthly:
		p.monthDate = p.monthDate.AddDate(0, -1, 0)
	default:
		p.weekOffset--
	}
}

// Today resets the active view's cursor to the real current date.
func (p *Projector) Today() {
	today := truncateToDay(p.now())
	switch p.mode {
	case ModeDaily:
		p.dailyDate = today
	case ModeMonthly:
		p.monthDate = today
	default:
		p.weekOffset = 0
	}
}

// IsToday compares an entry against the real current date, independent of
// any navigation offset. Used purely for highlighting.
func (p *Projector) IsToday(e DayEntry) bool {
	return sameDay(e.Time, p.now())
}

// DateFor returns the calendar date behind a day key in the currently
// displayed week, which a reschedule commit needs to build an absolute
// timestamp.
func (p *Projector) DateFor(day schedule.Day) (time.Time, bool) {
	if p.mode == ModeDaily {
		e := p.DailyDay()
		return e.Time, e.Key == day
	}
	for _, e := range p.WeekDays() {
		if e.Key == day {
			return e.Time, true
		}
	}
	return time.Time{}, false
}

func entryFor(t time.Time) DayEntry {
	key := schedule.DayOf(t)
	return DayEntry{
		Key:   key,
		Label: dayLabels[key],
		Date:  fmt.Sprintf("%02d/%02d", t.Day(), int(t.Month())),
		Time:  t,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

package schedule

import "github.com/dmoraes/agenda/internal/timegrid"

// HasConflict reports whether a candidate placement overlaps any session
// already on the day. Intervals are half-open: a session ending at 14:50
// does not conflict with one starting at 14:50. Cancelled sessions never
// conflict, and excludeID skips the record being edited (0 excludes
// nothing).
//
// Creation enforces this check; drag reschedule deliberately does not,
// so a professional can double-book on purpose.
func (ix *Index) HasConflict(day Day, startTime string, durationMin int, excludeID int64) bool {
	start := timegrid.TimeToMinutes(startTime)
	end := start + durationMin

	for _, s := range ix.sessions {
		if s.Day != day || s.ID == excludeID || s.IsCancelled() {
			continue
		}
		itemStart := timegrid.TimeToMinutes(s.StartTime)
		itemEnd := timegrid.TimeToMinutes(s.EndTime)
		if start < itemEnd && end > itemStart {
			return true
		}
	}
	return false
}

// Package timegrid provides pure conversions between wall-clock times,
// minute offsets and vertical positions inside the working-day window.
package timegrid

import (
	"fmt"
	"math"
)

// SnapMinutes is the quantization applied to any pointer-derived time value.
const SnapMinutes = 5

// Window is the working-day interval used as the coordinate domain for
// calendar rendering and drop-target mapping. Start and End are minutes
// from midnight, End exclusive.
type Window struct {
	Start int
	End   int
}

// DefaultWindow is the 07:00-19:00 working day.
var DefaultWindow = Window{Start: 7 * 60, End: 19 * 60}

// Length returns the window length in minutes.
func (w Window) Length() int {
	return w.End - w.Start
}

// NewWindow builds a window from "HH:MM" bounds.
func NewWindow(start, end string) Window {
	return Window{Start: TimeToMinutes(start), End: TimeToMinutes(end)}
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Malformed input is a programming error upstream; it returns 0 rather
// than failing so callers are expected to pre-validate.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to zero-padded "HH:MM".
// No range clamping: the caller keeps m inside [0, 1440).
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SnapToGrid rounds m to the nearest multiple of SnapMinutes, ties toward
// the higher multiple. Idempotent.
func SnapToGrid(m int) int {
	return int(math.Round(float64(m)/SnapMinutes)) * SnapMinutes
}

// Placement is a vertical position expressed as percentages of the
// working-day window. Items outside the window yield negative or >100
// values; renderers clip, Placement does not.
type Placement struct {
	Top    float64
	Height float64
}

// PositionFor maps a start/end pair in minutes onto the window.
func PositionFor(startMin, endMin int, w Window) Placement {
	length := float64(w.Length())
	return Placement{
		Top:    float64(startMin-w.Start) / length * 100,
		Height: float64(endMin-startMin) / length * 100,
	}
}

// PixelToTime maps a vertical pixel offset inside a container of the given
// height back to absolute minutes of day. The result is clamped to
// [w.Start, w.End-SnapMinutes] before snapping, so a dragged item can
// never land with its start at or past the window end.
func PixelToTime(pixelY, containerHeight int, w Window) int {
	if containerHeight <= 0 {
		return w.Start
	}
	frac := float64(pixelY) / float64(containerHeight)
	mins := w.Start + int(frac*float64(w.Length()))
	return clampSnap(mins, w)
}

// CellToTime is the terminal-cell specialization of PixelToTime: row is a
// cell offset from the window top, rowMinutes the minutes one cell spans.
func CellToTime(row, rowMinutes int, w Window) int {
	return clampSnap(w.Start+row*rowMinutes, w)
}

func clampSnap(mins int, w Window) int {
	if mins < w.Start {
		mins = w.Start
	}
	if max := w.End - SnapMinutes; mins > max {
		mins = max
	}
	return SnapToGrid(mins)
}

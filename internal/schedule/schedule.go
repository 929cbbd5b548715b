// Package schedule defines the core domain types for agenda: scheduled
// sessions, manual time blocks and the per-day views over them.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmoraes/agenda/internal/timegrid"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrSessionConflict  = errors.New("session conflicts with an existing one")
	ErrSessionNotFound  = errors.New("session not found")
	ErrBlockNotFound    = errors.New("time block not found")
)

// Day is a calendar-grid column identity, one of sunday..saturday.
type Day string

const (
	Sunday    Day = "sunday"
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
)

var weekdayToDay = map[time.Weekday]Day{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// DayOf returns the day key for a point in time. It is a view projection
// derived from the timestamp, never an independent source of truth.
func DayOf(t time.Time) Day {
	return weekdayToDay[t.Weekday()]
}

// Valid returns true if d is one of the seven day keys.
func (d Day) Valid() bool {
	for _, v := range weekdayToDay {
		if v == d {
			return true
		}
	}
	return false
}

// SessionType distinguishes remote from in-office sessions.
type SessionType string

const (
	TypeOnline     SessionType = "online"
	TypePresencial SessionType = "presencial"
)

// PaymentStatus tracks whether a session has been paid.
type PaymentStatus string

const (
	PaymentPago     PaymentStatus = "pago"
	PaymentPendente PaymentStatus = "pendente"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusConfirmado Status = "confirmado"
	StatusPendente   Status = "pendente"
	StatusCancelado  Status = "cancelado"
)

// Session is a scheduled appointment as the calendar sees it: a local
// projection of the backend record, with Day derived from the start
// timestamp and times as local wall-clock "HH:MM" strings.
type Session struct {
	ID            int64
	Day           Day
	Date          time.Time // calendar date behind the day key
	StartTime     string
	EndTime       string
	Duration      int // minutes; EndTime is always StartTime+Duration
	Client        string
	ClientEmail   string
	Type          SessionType
	PaymentStatus PaymentStatus
	Status        Status
}

// IsCancelled returns true if the session has been cancelled.
func (s Session) IsCancelled() bool {
	return s.Status == StatusCancelado
}

// TimeBlock is a manually created non-session reservation (lunch, meeting,
// custom). Blocks are rendered and dragged identically to sessions but
// persist only on the client side.
type TimeBlock struct {
	ID       int64
	Day      Day
	Time     string // start, "HH:MM"
	EndTime  string
	Title    string
	Duration string // display string, e.g. "1h"
	Color    string
	Emoji    string
}

// NewTimeBlock creates a validated time block.
func NewTimeBlock(title string, day Day, start, end string) (*TimeBlock, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := validateTime(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := validateTime(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return nil, ErrEndBeforeStart
	}
	return &TimeBlock{
		Day:      day,
		Time:     start,
		EndTime:  end,
		Title:    title,
		Duration: FormatDuration(timegrid.TimeToMinutes(end) - timegrid.TimeToMinutes(start)),
	}, nil
}

func validateTime(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// FormatDuration renders minutes as a compact display string ("50min",
// "1h", "1h30").
func FormatDuration(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dmin", mins)
	}
	if mins%60 == 0 {
		return fmt.Sprintf("%dh", mins/60)
	}
	return fmt.Sprintf("%dh%02d", mins/60, mins%60)
}

// TimesOverlap reports half-open interval intersection between two
// "HH:MM" ranges: touching boundaries do not overlap.
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

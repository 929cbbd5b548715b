package api

import (
	"fmt"
	"time"

	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
)

// Participant is one attendee of a session as the backend reports it.
type Participant struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// SessionRecord is the authoritative session shape from the backend.
// StartTime is ISO 8601 UTC; either DurationMin or EndTime is set.
type SessionRecord struct {
	ID            int64         `json:"id"`
	StartTime     time.Time     `json:"start_time"`
	DurationMin   int           `json:"duration_min"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	Participants  []Participant `json:"participants"`
	Type          string        `json:"type"`           // "Online" | "In-person"
	PaymentStatus string        `json:"payment_status"` // "Paid" | "Pending"
	PaymentMethod string        `json:"payment_method,omitempty"`
	Price         float64       `json:"price"`
	SessionStatus string        `json:"session_status"` // "Confirmed" | "Pending" | "Cancelled"
	SessionNotes  string        `json:"session_notes"`
	FocusTopic    string        `json:"focus_topic"`
	MeetingURL    string        `json:"meeting_url,omitempty"`
}

// Minutes returns the session duration, preferring duration_min and
// falling back to the end_time difference.
func (r *SessionRecord) Minutes() int {
	if r.DurationMin > 0 {
		return r.DurationMin
	}
	if r.EndTime != nil {
		return int(r.EndTime.Sub(r.StartTime).Minutes())
	}
	return 0
}

// ToSession projects the backend record into the local calendar shape:
// day and wall-clock times in the professional's local time, participants
// collapsed to a display string.
func (r *SessionRecord) ToSession() schedule.Session {
	local := r.StartTime.Local()
	startMin := local.Hour()*60 + local.Minute()
	dur := r.Minutes()

	client, email := displayClient(r.Participants)

	return schedule.Session{
		ID:            r.ID,
		Day:           schedule.DayOf(local),
		Date:          time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location()),
		StartTime:     timegrid.MinutesToTime(startMin),
		EndTime:       timegrid.MinutesToTime(startMin + dur),
		Duration:      dur,
		Client:        client,
		ClientEmail:   email,
		Type:          localType(r.Type),
		PaymentStatus: localPayment(r.PaymentStatus),
		Status:        localStatus(r.SessionStatus),
	}
}

func displayClient(ps []Participant) (name, email string) {
	switch len(ps) {
	case 0:
		return "", ""
	case 1:
		return ps[0].FullName, ps[0].Email
	default:
		// Group sessions collapse to a count.
		return fmt.Sprintf("%d participantes", len(ps)), ""
	}
}

func localType(t string) schedule.SessionType {
	if t == "Online" {
		return schedule.TypeOnline
	}
	return schedule.TypePresencial
}

func localPayment(p string) schedule.PaymentStatus {
	if p == "Paid" {
		return schedule.PaymentPago
	}
	return schedule.PaymentPendente
}

func localStatus(s string) schedule.Status {
	switch s {
	case "Confirmed":
		return schedule.StatusConfirmado
	case "Cancelled":
		return schedule.StatusCancelado
	default:
		return schedule.StatusPendente
	}
}

// UpdatePayload is the full-record update body for PUT /sessions/:id.
// A reschedule is a full update, not a partial patch: every field comes
// from the freshly fetched record except the start time.
type UpdatePayload struct {
	ClientIDs     []int64 `json:"client_ids"`
	StartTime     string  `json:"start_time"` // ISO 8601, local converted to UTC
	DurationMin   int     `json:"duration_min"`
	FocusTopic    string  `json:"focus_topic"`
	SessionNotes  string  `json:"session_notes"`
	Type          string  `json:"type"`
	MeetingURL    string  `json:"meeting_url,omitempty"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Price         float64 `json:"price"`
	SessionStatus string  `json:"session_status"`
}

// ReschedulePayload merges a new local start (calendar date plus "HH:MM")
// into the record's other fields, converting the start to UTC.
func ReschedulePayload(rec *SessionRecord, date time.Time, startTime string) UpdatePayload {
	mins := timegrid.TimeToMinutes(startTime)
	start := time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, time.Local)

	ids := make([]int64, len(rec.Participants))
	for i, p := range rec.Participants {
		ids[i] = p.ID
	}

	return UpdatePayload{
		ClientIDs:     ids,
		StartTime:     start.UTC().Format(time.RFC3339),
		DurationMin:   rec.Minutes(),
		FocusTopic:    rec.FocusTopic,
		SessionNotes:  rec.SessionNotes,
		Type:          rec.Type,
		MeetingURL:    rec.MeetingURL,
		PaymentStatus: rec.PaymentStatus,
		PaymentMethod: rec.PaymentMethod,
		Price:         rec.Price,
		SessionStatus: rec.SessionStatus,
	}
}

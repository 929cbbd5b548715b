// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoraes/agenda/internal/api"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
)

// SessionAPI is the backend surface the calendar needs.
type SessionAPI interface {
	ListSessions(ctx context.Context) ([]schedule.Session, error)
	GetSession(ctx context.Context, id int64) (*api.SessionRecord, error)
	UpdateSession(ctx context.Context, id int64, payload api.UpdatePayload) error
}

// BlockStore is the local time-block storage surface.
type BlockStore interface {
	ListBlocks(ctx context.Context) ([]schedule.TimeBlock, error)
	CreateBlock(ctx context.Context, b *schedule.TimeBlock) error
	DeleteBlock(ctx context.Context, id int64) error
	UpdateBlockPlacement(ctx context.Context, id int64, day schedule.Day, start, end string) error
}

// InitialLoadMsg is sent when sessions and blocks are loaded on mount.
type InitialLoadMsg struct {
	Sessions []schedule.Session
	Blocks   []schedule.TimeBlock
}

// SessionsReloadedMsg is sent after a full refetch.
type SessionsReloadedMsg struct {
	Sessions []schedule.Session
}

// SessionRescheduledMsg is sent when a reschedule commit succeeded.
type SessionRescheduledMsg struct {
	ID    int64
	Day   schedule.Day
	Start string
	End   string
}

// BlockMovedMsg is sent when a block reschedule was stored.
type BlockMovedMsg struct {
	ID    int64
	Day   schedule.Day
	Start string
	End   string
}

// BlockSavedMsg is sent when a new block was stored.
type BlockSavedMsg struct {
	Block schedule.TimeBlock
}

// BlockDeletedMsg is sent when a block was removed.
type BlockDeletedMsg struct {
	ID int64
}

// CommitFailedMsg is sent when a reschedule commit failed. The drag state
// resets regardless; the grid keeps the stale placement.
type CommitFailedMsg struct {
	Err error
}

// ErrMsg is sent when any other operation fails.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadInitial fetches sessions from the API and blocks from the store.
func LoadInitial(sessions SessionAPI, blocks BlockStore) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		ss, err := sessions.ListSessions(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}

		bs, err := blocks.ListBlocks(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return InitialLoadMsg{Sessions: ss, Blocks: bs}
	}
}

// ReloadSessions refetches the authoritative session list.
func ReloadSessions(sessions SessionAPI) tea.Cmd {
	return func() tea.Msg {
		ss, err := sessions.ListSessions(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SessionsReloadedMsg{Sessions: ss}
	}
}

// CommitReschedule persists a confirmed session reschedule. It re-reads
// the authoritative record, merges the new start into the full payload and
// submits it, so fields not tracked locally are preserved.
func CommitReschedule(sessions SessionAPI, id int64, date time.Time, day schedule.Day, startTime string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		record, err := sessions.GetSession(ctx, id)
		if err != nil {
			return CommitFailedMsg{Err: err}
		}

		payload := api.ReschedulePayload(record, date, startTime)
		if err := sessions.UpdateSession(ctx, id, payload); err != nil {
			return CommitFailedMsg{Err: err}
		}

		startMin := timegrid.TimeToMinutes(startTime)
		return SessionRescheduledMsg{
			ID:    id,
			Day:   day,
			Start: startTime,
			End:   timegrid.MinutesToTime(startMin + record.Minutes()),
		}
	}
}

// MoveBlock persists a confirmed block reschedule. Purely local: no
// network call is involved.
func MoveBlock(blocks BlockStore, id int64, day schedule.Day, start, end string) tea.Cmd {
	return func() tea.Msg {
		if err := blocks.UpdateBlockPlacement(context.Background(), id, day, start, end); err != nil {
			return CommitFailedMsg{Err: err}
		}
		return BlockMovedMsg{ID: id, Day: day, Start: start, End: end}
	}
}

// SaveBlock stores a newly created block.
func SaveBlock(blocks BlockStore, b schedule.TimeBlock) tea.Cmd {
	return func() tea.Msg {
		if err := blocks.CreateBlock(context.Background(), &b); err != nil {
			return ErrMsg{Err: err}
		}
		return BlockSavedMsg{Block: b}
	}
}

// DeleteBlock removes a stored block.
func DeleteBlock(blocks BlockStore, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := blocks.DeleteBlock(context.Background(), id); err != nil {
			return ErrMsg{Err: err}
		}
		return BlockDeletedMsg{ID: id}
	}
}

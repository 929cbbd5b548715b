package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoraes/agenda/internal/api"
	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/config"
	"github.com/dmoraes/agenda/internal/drag"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/tui/commands"
)

type fakeAPI struct {
	sessions  []schedule.Session
	records   map[int64]*api.SessionRecord
	updateErr error

	gotUpdateID int64
	gotPayload  api.UpdatePayload
}

func (f *fakeAPI) ListSessions(context.Context) ([]schedule.Session, error) {
	return f.sessions, nil
}

func (f *fakeAPI) GetSession(_ context.Context, id int64) (*api.SessionRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return rec, nil
}

func (f *fakeAPI) UpdateSession(_ context.Context, id int64, payload api.UpdatePayload) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.gotUpdateID = id
	f.gotPayload = payload
	return nil
}

type fakeStore struct {
	blocks  []schedule.TimeBlock
	moveErr error
	nextID  int64
}

func (f *fakeStore) ListBlocks(context.Context) ([]schedule.TimeBlock, error) {
	return f.blocks, nil
}

func (f *fakeStore) CreateBlock(_ context.Context, b *schedule.TimeBlock) error {
	f.nextID++
	b.ID = f.nextID
	f.blocks = append(f.blocks, *b)
	return nil
}

func (f *fakeStore) DeleteBlock(_ context.Context, id int64) error {
	for i, b := range f.blocks {
		if b.ID == id {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return schedule.ErrBlockNotFound
}

func (f *fakeStore) UpdateBlockPlacement(_ context.Context, id int64, day schedule.Day, start, end string) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	for i := range f.blocks {
		if f.blocks[i].ID == id {
			f.blocks[i].Day = day
			f.blocks[i].Time = start
			f.blocks[i].EndTime = end
			return nil
		}
	}
	return schedule.ErrBlockNotFound
}

// Wednesday, 12 March 2025.
func testNow() time.Time {
	return time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local)
}

// A model sized so the grid renders at 15-minute rows and 14-cell
// columns, with one Monday 14:00 session and one Tuesday lunch block.
func testModel(t *testing.T) (Model, *fakeAPI, *fakeStore) {
	t.Helper()

	sessions := []schedule.Session{
		{
			ID: 1, Day: schedule.Monday, StartTime: "14:00", EndTime: "14:50",
			Duration: 50, Client: "Ana Souza", Type: schedule.TypeOnline,
			PaymentStatus: schedule.PaymentPago, Status: schedule.StatusConfirmado,
		},
	}
	blocks := []schedule.TimeBlock{
		{ID: 5, Day: schedule.Tuesday, Time: "12:00", EndTime: "13:00", Title: "Almoço"},
	}

	sapi := &fakeAPI{
		sessions: sessions,
		records: map[int64]*api.SessionRecord{
			1: {
				ID:          1,
				StartTime:   time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local).UTC(),
				DurationMin: 50,
				Participants: []api.Participant{
					{ID: 10, FullName: "Ana Souza", Email: "ana@example.com"},
				},
				Type:          "Online",
				PaymentStatus: "Paid",
				SessionStatus: "Confirmed",
			},
		},
	}
	st := &fakeStore{blocks: blocks, nextID: 5}

	m := *New(config.Default(), sapi, st, testNow)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 76, Height: 60})
	m = next.(Model)
	next, _ = m.Update(commands.InitialLoadMsg{Sessions: sessions, Blocks: blocks})
	return next.(Model), sapi, st
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func release() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// Grid coordinates with the 76x60 test layout: gutter 6 wide, columns 14
// wide, 15-minute rows starting at 07:00 under a 2-line header.
func cellAt(dayIdx, minutes int) (x, y int) {
	x = gutterWidth + dayIdx*defaultColWidth + 1
	y = headerLines + (minutes-420)/15
	return x, y
}

// Dragging the Monday 14:00 session to 15:30, releasing, and confirming
// commits the move and updates the grid without a refetch.
func TestDragRescheduleCommit(t *testing.T) {
	m, sapi, _ := testModel(t)

	x, y := cellAt(0, 14*60) // Monday 14:00
	m, _ = step(t, m, press(x, y))
	if m.drag.Phase != drag.PhaseDragging {
		t.Fatalf("phase after press = %d, want PhaseDragging", m.drag.Phase)
	}
	if m.drag.ItemID != 1 || m.drag.OriginalTime != "14:00" {
		t.Fatalf("drag state = %+v", m.drag)
	}

	_, y = cellAt(0, 15*60+30) // Monday 15:30
	m, _ = step(t, m, motion(x, y))
	if m.drag.NewTime != "15:30" || m.drag.NewDay != schedule.Monday {
		t.Fatalf("candidate = %s %s", m.drag.NewDay, m.drag.NewTime)
	}

	m, _ = step(t, m, release())
	if m.drag.Phase != drag.PhasePendingConfirm {
		t.Fatalf("phase after release = %d, want PhasePendingConfirm", m.drag.Phase)
	}

	m, cmd := step(t, m, key("enter"))
	if m.drag.Phase != drag.PhaseCommitting {
		t.Fatalf("phase after confirm = %d, want PhaseCommitting", m.drag.Phase)
	}
	if cmd == nil {
		t.Fatal("confirm produced no commit command")
	}

	msg := cmd()
	res, ok := msg.(commands.SessionRescheduledMsg)
	if !ok {
		t.Fatalf("commit message = %T (%v)", msg, msg)
	}
	if res.Day != schedule.Monday || res.Start != "15:30" || res.End != "16:20" {
		t.Fatalf("commit result = %+v", res)
	}

	// The update went out as a full record with the merged UTC start.
	if sapi.gotUpdateID != 1 {
		t.Errorf("updated session %d, want 1", sapi.gotUpdateID)
	}
	wantStart := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local).UTC().Format(time.RFC3339)
	if sapi.gotPayload.StartTime != wantStart {
		t.Errorf("payload start = %s, want %s", sapi.gotPayload.StartTime, wantStart)
	}
	if sapi.gotPayload.FocusTopic != sapi.records[1].FocusTopic || sapi.gotPayload.DurationMin != 50 {
		t.Errorf("payload = %+v", sapi.gotPayload)
	}

	m, _ = step(t, m, msg)
	if m.drag.Active() {
		t.Error("drag still active after commit")
	}
	s, _ := m.index.SessionByID(1)
	if s.StartTime != "15:30" || s.EndTime != "16:20" || s.Day != schedule.Monday {
		t.Errorf("index placement = %+v", s)
	}
	if m.statusMsg != "Sessão remarcada" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

// Releasing without moving ends the drag with no confirmation modal.
func TestDragReleaseAtOriginIsSilent(t *testing.T) {
	m, _, _ := testModel(t)

	x, y := cellAt(0, 14*60)
	m, _ = step(t, m, press(x, y))
	m, _ = step(t, m, release())
	if m.drag.Active() {
		t.Errorf("drag state = %+v, want idle", m.drag)
	}
}

// A failed commit resets the drag but leaves the stale pre-drag placement
// in the grid until the next reload.
func TestCommitFailureKeepsStalePlacement(t *testing.T) {
	m, sapi, _ := testModel(t)
	sapi.updateErr = errors.New("backend indisponível")

	x, y := cellAt(0, 14*60)
	m, _ = step(t, m, press(x, y))
	_, y = cellAt(0, 15*60+30)
	m, _ = step(t, m, motion(x, y))
	m, _ = step(t, m, release())
	m, cmd := step(t, m, key("enter"))

	msg := cmd()
	if _, ok := msg.(commands.CommitFailedMsg); !ok {
		t.Fatalf("commit message = %T, want CommitFailedMsg", msg)
	}

	m, _ = step(t, m, msg)
	if m.drag.Active() {
		t.Error("drag still active after failed commit")
	}
	s, _ := m.index.SessionByID(1)
	if s.StartTime != "14:00" {
		t.Errorf("placement = %s, want stale 14:00", s.StartTime)
	}
	if !strings.Contains(m.statusMsg, "Falha ao remarcar") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

// Dragging a block persists through the store, not the API.
func TestDragBlock(t *testing.T) {
	m, _, st := testModel(t)

	x, y := cellAt(1, 12*60) // Tuesday 12:00, the lunch block
	m, _ = step(t, m, press(x, y))
	if m.drag.ItemType != drag.ItemBlock || m.drag.ItemID != 5 {
		t.Fatalf("drag state = %+v", m.drag)
	}

	x, _ = cellAt(3, 0) // Thursday column
	_, y = cellAt(0, 13*60)
	m, _ = step(t, m, motion(x, y))
	m, _ = step(t, m, release())
	m, cmd := step(t, m, key("enter"))

	msg := cmd()
	moved, ok := msg.(commands.BlockMovedMsg)
	if !ok {
		t.Fatalf("commit message = %T", msg)
	}
	if moved.Day != schedule.Thursday || moved.Start != "13:00" || moved.End != "14:00" {
		t.Fatalf("moved = %+v", moved)
	}
	if st.blocks[0].Day != schedule.Thursday {
		t.Errorf("store block = %+v", st.blocks[0])
	}

	m, _ = step(t, m, msg)
	b, _ := m.index.BlockByID(5)
	if b.Day != schedule.Thursday || b.Time != "13:00" {
		t.Errorf("index block = %+v", b)
	}
}

// Escape resolves the topmost transient state only, in fixed priority:
// drag, confirmation, menus, modals.
func TestEscapePriority(t *testing.T) {
	m, _, _ := testModel(t)

	// Pending confirmation outranks an open action menu.
	m.drag = drag.State{Phase: drag.PhasePendingConfirm, ItemID: 1, NewTime: "15:30", OriginalTime: "14:00"}
	m.actionMenu = &actionMenuState{itemID: 1}

	m, _ = step(t, m, key("esc"))
	if m.drag.Active() {
		t.Fatal("drag not cleared by first escape")
	}
	if m.actionMenu == nil {
		t.Fatal("action menu consumed by the drag's escape")
	}

	m, _ = step(t, m, key("esc"))
	if m.actionMenu != nil {
		t.Fatal("action menu not cleared by second escape")
	}

	// Detail modal yields before the view menu.
	m.detail = &detailState{block: &schedule.TimeBlock{Title: "Almoço"}}
	m.viewMenu = true
	m, _ = step(t, m, key("esc"))
	if m.detail != nil {
		t.Fatal("detail not cleared")
	}
	if !m.viewMenu {
		t.Fatal("view menu consumed by the detail's escape")
	}
}

// A pointer-down while the confirmation modal is up must not start a
// second drag.
func TestPressIgnoredWhilePendingConfirm(t *testing.T) {
	m, _, _ := testModel(t)
	m.drag = drag.State{Phase: drag.PhasePendingConfirm, ItemID: 1, NewTime: "15:30", OriginalTime: "14:00"}

	x, y := cellAt(1, 12*60)
	m, _ = step(t, m, press(x, y))
	if m.drag.Phase != drag.PhasePendingConfirm || m.drag.ItemID != 1 {
		t.Errorf("drag state = %+v", m.drag)
	}
}

func TestCancelPendingConfirm(t *testing.T) {
	m, _, _ := testModel(t)

	x, y := cellAt(0, 14*60)
	m, _ = step(t, m, press(x, y))
	_, y = cellAt(0, 15*60+30)
	m, _ = step(t, m, motion(x, y))
	m, _ = step(t, m, release())

	m, cmd := step(t, m, key("n"))
	if m.drag.Active() {
		t.Errorf("drag state = %+v, want idle", m.drag)
	}
	if cmd != nil {
		t.Error("cancel produced a command")
	}
	s, _ := m.index.SessionByID(1)
	if s.StartTime != "14:00" {
		t.Errorf("placement = %s, want original 14:00", s.StartTime)
	}
}

// Clicking an empty slot opens the create menu with the snapped start.
func TestPressEmptySlotOpensCreateMenu(t *testing.T) {
	m, _, _ := testModel(t)

	x, y := cellAt(1, 10*60) // Tuesday 10:00, empty
	m, _ = step(t, m, press(x, y))
	if m.createMenu == nil {
		t.Fatal("create menu not opened")
	}
	if m.createMenu.day != schedule.Tuesday || m.createMenu.start != "10:00" {
		t.Errorf("create menu = %+v", m.createMenu)
	}
	if m.drag.Active() {
		t.Error("empty-slot press started a drag")
	}
}

// The menu glyph on a card opens the action menu instead of dragging.
func TestPressMenuGlyphOpensActionMenu(t *testing.T) {
	m, _, _ := testModel(t)

	// Last cell of Monday's column, on the 14:00 session row.
	x := gutterWidth + defaultColWidth - 1
	_, y := cellAt(0, 14*60)
	m, _ = step(t, m, press(x, y))
	if m.actionMenu == nil {
		t.Fatal("action menu not opened")
	}
	if m.actionMenu.itemID != 1 || m.actionMenu.itemType != drag.ItemSession {
		t.Errorf("action menu = %+v", m.actionMenu)
	}
	if m.drag.Active() {
		t.Error("glyph press started a drag")
	}
}

func TestCreateBlockFlow(t *testing.T) {
	m, _, st := testModel(t)

	x, y := cellAt(2, 9*60) // Wednesday 09:00, empty
	m, _ = step(t, m, press(x, y))
	m, _ = step(t, m, key("enter")) // create menu → block form
	if m.blockForm == nil {
		t.Fatal("block form not opened")
	}

	for _, r := range "Estudo" {
		m, _ = step(t, m, key(string(r)))
	}
	m, cmd := step(t, m, key("enter"))
	if m.blockForm != nil {
		t.Fatal("form still open after submit")
	}
	if cmd == nil {
		t.Fatal("submit produced no command")
	}

	msg := cmd()
	saved, ok := msg.(commands.BlockSavedMsg)
	if !ok {
		t.Fatalf("message = %T (%v)", msg, msg)
	}
	// Default duration is 60 minutes.
	if saved.Block.Day != schedule.Wednesday || saved.Block.Time != "09:00" || saved.Block.EndTime != "10:00" {
		t.Fatalf("saved block = %+v", saved.Block)
	}
	if saved.Block.Title != "Estudo" {
		t.Errorf("title = %q", saved.Block.Title)
	}
	if len(st.blocks) != 2 {
		t.Errorf("store has %d blocks, want 2", len(st.blocks))
	}

	m, _ = step(t, m, msg)
	if len(m.index.BlocksOn(schedule.Wednesday)) != 1 {
		t.Error("new block missing from index")
	}
}

func TestDeleteBlockFromActionMenu(t *testing.T) {
	m, _, st := testModel(t)

	m.actionMenu = &actionMenuState{itemID: 5, itemType: drag.ItemBlock}
	m, _ = step(t, m, key("j")) // move to "Excluir bloco"
	m, cmd := step(t, m, key("enter"))
	if cmd == nil {
		t.Fatal("delete produced no command")
	}

	msg := cmd()
	if _, ok := msg.(commands.BlockDeletedMsg); !ok {
		t.Fatalf("message = %T", msg)
	}
	if len(st.blocks) != 0 {
		t.Errorf("store has %d blocks after delete", len(st.blocks))
	}

	m, _ = step(t, m, msg)
	if _, ok := m.index.BlockByID(5); ok {
		t.Error("block still in index")
	}
}

func TestViewMenuSevenDays(t *testing.T) {
	m, _, _ := testModel(t)

	m, _ = step(t, m, key("v"))
	if !m.viewMenu {
		t.Fatal("view menu not opened")
	}
	m, _ = step(t, m, key("j")) // "7 dias"
	m, _ = step(t, m, key("enter"))
	if m.viewMenu {
		t.Fatal("view menu still open")
	}
	if m.weekDays != 7 {
		t.Errorf("weekDays = %d, want 7", m.weekDays)
	}
	days := m.displayedDays()
	if len(days) != 7 || days[0].Key != schedule.Sunday {
		t.Errorf("displayed days = %d starting %s", len(days), days[0].Key)
	}
}

func TestHideCancelledToggle(t *testing.T) {
	m, _, _ := testModel(t)

	m, _ = step(t, m, key("v"))
	m, _ = step(t, m, key("j"))
	m, _ = step(t, m, key("j")) // "Ocultar canceladas"
	m, _ = step(t, m, key("enter"))
	if !m.index.HideCancelled() {
		t.Error("hide-cancelled not enabled")
	}
}

func TestModeKeysAndNavigation(t *testing.T) {
	m, _, _ := testModel(t)

	m, _ = step(t, m, key("d"))
	if m.projector.Mode() != calview.ModeDaily {
		t.Errorf("mode = %d, want daily", m.projector.Mode())
	}
	if len(m.displayedDays()) != 1 {
		t.Errorf("daily view shows %d columns", len(m.displayedDays()))
	}

	m, _ = step(t, m, key("w"))
	m, _ = step(t, m, key("l"))
	if m.projector.WeekOffset() != 1 {
		t.Errorf("offset after l = %d, want 1", m.projector.WeekOffset())
	}
	m, _ = step(t, m, key("t"))
	if m.projector.WeekOffset() != 0 {
		t.Errorf("offset after t = %d, want 0", m.projector.WeekOffset())
	}
}

// Reload rebuilds the session index but keeps local blocks and the
// hide-cancelled setting.
func TestReloadKeepsBlocksAndFilter(t *testing.T) {
	m, _, _ := testModel(t)
	m.index = m.index.WithHideCancelled(true)

	fresh := []schedule.Session{
		{ID: 2, Day: schedule.Friday, StartTime: "09:00", EndTime: "09:50", Duration: 50, Client: "Bruno"},
	}
	m, _ = step(t, m, commands.SessionsReloadedMsg{Sessions: fresh})

	if _, ok := m.index.SessionByID(1); ok {
		t.Error("old session survived the reload")
	}
	if _, ok := m.index.SessionByID(2); !ok {
		t.Error("fresh session missing")
	}
	if _, ok := m.index.BlockByID(5); !ok {
		t.Error("local block lost on reload")
	}
	if !m.index.HideCancelled() {
		t.Error("hide-cancelled filter lost on reload")
	}
}

// In monthly mode the grid takes no pointer interaction.
func TestMonthlyIgnoresPress(t *testing.T) {
	m, _, _ := testModel(t)
	m, _ = step(t, m, key("m"))

	x, y := cellAt(0, 14*60)
	m, _ = step(t, m, press(x, y))
	if m.drag.Active() || m.createMenu != nil || m.actionMenu != nil {
		t.Error("monthly view reacted to a grid press")
	}
}

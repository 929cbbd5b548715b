// Package tui provides the terminal calendar interface for agenda.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/config"
	"github.com/dmoraes/agenda/internal/drag"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
	"github.com/dmoraes/agenda/internal/tui/commands"
	"github.com/dmoraes/agenda/internal/tui/theme"
)

// Block form choices.
var (
	blockEmojis    = []string{"🍽️", "☕", "📋", "🧘", "📞", "✍️"}
	blockDurations = []int{30, 50, 60, 90, 120}
)

// actionMenuState is the per-card contextual menu (opened from the card's
// menu glyph, which suppresses drag start).
type actionMenuState struct {
	itemID   int64
	itemType drag.ItemType
	cursor   int
}

// createMenuState is the menu opened by clicking an empty slot.
type createMenuState struct {
	day   schedule.Day
	start string
	cursor int
}

// blockFormState is the time-block creation modal.
type blockFormState struct {
	title       textinput.Model
	day         schedule.Day
	start       string
	durationIdx int
	emojiIdx    int
	colorIdx    int
	focus       int // 0=title, 1=duration, 2=emoji, 3=color
	emojiPicker bool
}

// detailState is the read-only session/block detail modal.
type detailState struct {
	session *schedule.Session
	block   *schedule.TimeBlock
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	cfg      *config.Config
	sessions commands.SessionAPI
	blocks   commands.BlockStore

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Data
	index   *schedule.Index
	loading bool

	// Views
	projector *calview.Projector
	window    timegrid.Window
	weekDays  int // 5 or 7

	// Drag interaction
	drag drag.State

	// Transient UI, in Escape priority order after the drag states
	actionMenu *actionMenuState
	createMenu *createMenuState
	blockForm  *blockFormState
	detail     *detailState
	viewMenu   bool
	viewCursor int

	// Terminal dimensions and layout
	width      int
	height     int
	rowMinutes int // minutes per grid row
	colWidth   int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model.
func New(cfg *config.Config, sessions commands.SessionAPI, blocks commands.BlockStore, now func() time.Time) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("escuro")
	}

	m := &Model{
		cfg:        cfg,
		sessions:   sessions,
		blocks:     blocks,
		theme:      t,
		styles:     NewStyles(t),
		index:      schedule.NewIndex(nil, nil).WithHideCancelled(cfg.Schedule.HideCancelled),
		projector:  calview.New(now),
		window:     timegrid.NewWindow(cfg.Schedule.DayStart, cfg.Schedule.DayEnd),
		weekDays:   cfg.Schedule.WeekDays,
		loading:    true,
		rowMinutes: 15,
		colWidth:   defaultColWidth,
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadInitial(m.sessions, m.blocks)
}

// Run starts the TUI.
func Run(cfg *config.Config, sessions commands.SessionAPI, blocks commands.BlockStore) error {
	model := New(cfg, sessions, blocks, nil)
	p := tea.NewProgram(*model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// setStatus shows a temporary status message.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(3 * time.Second)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// newBlockForm builds the creation modal for a block starting at the
// clicked slot.
func (m *Model) newBlockForm(day schedule.Day, start string) *blockFormState {
	ti := textinput.New()
	ti.Placeholder = "Título do bloco"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()
	return &blockFormState{
		title:       ti,
		day:         day,
		start:       start,
		durationIdx: 2, // 60 min
	}
}

// blockColors are the selectable card colors for time blocks.
func (m *Model) blockColors() []string {
	return []string{m.theme.Block, m.theme.Online, m.theme.Presencial, m.theme.Pending}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmoraes/agenda/internal/tui/theme"
)

// Styles holds the lipgloss styles derived from the active theme.
type Styles struct {
	Title      lipgloss.Style
	DayHeader  lipgloss.Style
	TodayHead  lipgloss.Style
	Gutter     lipgloss.Style
	EmptyCell  lipgloss.Style
	Online     lipgloss.Style
	Presencial lipgloss.Style
	Cancelled  lipgloss.Style
	Block      lipgloss.Style
	DragGhost  lipgloss.Style
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	MenuItem   lipgloss.Style
	MenuCursor lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	Paid       lipgloss.Style
	Pending    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(theme.Color(t.Accent)).
			Bold(true),
		DayHeader: lipgloss.NewStyle().
			Foreground(theme.Color(t.Fg)).
			Bold(true),
		TodayHead: lipgloss.NewStyle().
			Foreground(theme.Color(t.Bg)).
			Background(theme.Color(t.Accent)).
			Bold(true),
		Gutter: lipgloss.NewStyle().
			Foreground(theme.Color(t.FgMuted)),
		EmptyCell: lipgloss.NewStyle().
			Foreground(theme.Color(t.FgMuted)),
		Online: lipgloss.NewStyle().
			Foreground(theme.Color(t.Bg)).
			Background(theme.Color(t.Online)),
		Presencial: lipgloss.NewStyle().
			Foreground(theme.Color(t.Bg)).
			Background(theme.Color(t.Presencial)),
		Cancelled: lipgloss.NewStyle().
			Foreground(theme.Color(t.FgMuted)).
			Background(theme.Color(t.Cancelled)).
			Strikethrough(true),
		Block: lipgloss.NewStyle().
			Foreground(theme.Color(t.Bg)).
			Background(theme.Color(t.Block)),
		DragGhost: lipgloss.NewStyle().
			Foreground(theme.Color(t.Fg)).
			Background(theme.Color(t.BgSelection)).
			Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Color(t.Accent)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Color(t.Accent)).
			Bold(true),
		MenuItem: lipgloss.NewStyle().
			Foreground(theme.Color(t.Fg)),
		MenuCursor: lipgloss.NewStyle().
			Foreground(theme.Color(t.Bg)).
			Background(theme.Color(t.Accent)),
		Status: lipgloss.NewStyle().
			Foreground(theme.Color(t.FgMuted)),
		StatusErr: lipgloss.NewStyle().
			Foreground(theme.Color(t.Warning)),
		Help: lipgloss.NewStyle().
			Foreground(theme.Color(t.FgMuted)),
		Paid: lipgloss.NewStyle().
			Foreground(theme.Color(t.Paid)),
		Pending: lipgloss.NewStyle().
			Foreground(theme.Color(t.Pending)),
	}
}

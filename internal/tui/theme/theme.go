// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgCard      string `toml:"bg_card"`      // Session/block cards
	BgSelection string `toml:"bg_selection"` // Drag preview, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Gutter times, muted elements
	Accent      string `toml:"accent"`       // Header, today highlight, borders
	Online      string `toml:"online"`       // Online sessions
	Presencial  string `toml:"presencial"`   // In-office sessions
	Block       string `toml:"block"`        // Time blocks
	Paid        string `toml:"paid"`         // Paid badge
	Pending     string `toml:"pending"`      // Pending payment/status badge
	Cancelled   string `toml:"cancelled"`    // Cancelled sessions
	Warning     string `toml:"warning"`      // Status line errors, drag warnings
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from the embedded files. "auto" picks
// between the dark and light palettes from the terminal background.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if name == "" || name == "auto" {
		if termenv.HasDarkBackground() {
			name = "escuro"
		} else {
			name = "claro"
		}
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q", name)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return &t, nil
}

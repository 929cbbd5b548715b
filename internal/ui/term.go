package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI output.
var (
	colorHeader = color.New(color.Bold)

	// Online sessions: cyan, in-office: green
	colorOnline     = color.New(color.FgCyan)
	colorPresencial = color.New(color.FgGreen)

	// Payment states
	colorPaid    = color.New(color.FgGreen)
	colorPending = color.New(color.FgYellow)

	// Cancelled sessions and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Time blocks
	colorBlock = color.New(color.FgMagenta)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Package ui provides the command-line interface for agenda.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmoraes/agenda/internal/api"
	"github.com/dmoraes/agenda/internal/config"
	"github.com/dmoraes/agenda/internal/store"
	"github.com/dmoraes/agenda/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	store  *store.SQLite
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "agenda",
		Short: "Terminal calendar for a practice-management backend",
		Long: `Agenda is a terminal client for managing a professional's session
calendar: a week grid of sessions and time blocks, with mouse
drag-to-reschedule and local time-block storage.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			return tui.Run(a.config, client, st)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.sessionsCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.blocksCmd())

	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store if one was opened.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *App) apiClient() (*api.Client, error) {
	return api.New(a.config.API.BaseURL, a.config.API.Token)
}

func (a *App) openStore() (*store.SQLite, error) {
	if a.store != nil {
		return a.store, nil
	}
	dir := filepath.Dir(a.config.Storage.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	st, err := store.Open(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("agenda %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Run: func(_ *cobra.Command, _ []string) {
			c := a.config
			fmt.Printf("day_start:      %s\n", c.Schedule.DayStart)
			fmt.Printf("day_end:        %s\n", c.Schedule.DayEnd)
			fmt.Printf("week_days:      %d\n", c.Schedule.WeekDays)
			fmt.Printf("hide_cancelled: %t\n", c.Schedule.HideCancelled)
			fmt.Printf("api base_url:   %s\n", c.API.BaseURL)
			fmt.Printf("db_path:        %s\n", c.Storage.DBPath)
			fmt.Printf("theme:          %s\n", c.UI.Theme)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}

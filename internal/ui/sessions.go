package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmoraes/agenda/internal/schedule"
)

func (a *App) sessionsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List sessions from the backend",
		Long: `List the sessions the backend currently reports, grouped by day.

Cancelled sessions are hidden unless --all is given.`,
		Example: `  agenda sessions
  agenda sessions --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}

			sessions, err := client.ListSessions(context.Background())
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			var currentDay schedule.Day
			for _, s := range sessions {
				if !all && s.IsCancelled() {
					continue
				}
				if s.Day != currentDay {
					if currentDay != "" {
						fmt.Println()
					}
					colorHeader.Printf("=== %s %s ===\n", s.Day, s.Date.Format("02/01"))
					currentDay = s.Day
				}
				printSession(s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include cancelled sessions")
	return cmd
}

func printSession(s schedule.Session) {
	typeColor := colorPresencial
	if s.Type == schedule.TypeOnline {
		typeColor = colorOnline
	}

	line := fmt.Sprintf("  #%d %s-%s %s", s.ID, s.StartTime, s.EndTime, s.Client)
	if s.IsCancelled() {
		colorMuted.Println(line + " (cancelada)")
		return
	}
	typeColor.Print(line)

	if s.PaymentStatus == schedule.PaymentPago {
		colorPaid.Println("  [pago]")
	} else {
		colorPending.Println("  [pendente]")
	}
}

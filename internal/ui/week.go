package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmoraes/agenda/internal/calview"
	"github.com/dmoraes/agenda/internal/schedule"
	"github.com/dmoraes/agenda/internal/timegrid"
)

func (a *App) weekCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the week grid",
		Long: `Print an hour-by-hour grid of the week's sessions and time blocks,
the same projection the TUI renders.`,
		Example: `  agenda week
  agenda week --offset=-1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := a.apiClient()
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}

			ctx := context.Background()
			sessions, err := client.ListSessions(ctx)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
			blocks, err := st.ListBlocks(ctx)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}

			index := schedule.NewIndex(sessions, blocks).
				WithHideCancelled(a.config.Schedule.HideCancelled)
			projector := calview.New(nil)
			for i := 0; i < offset; i++ {
				projector.Next()
			}
			for i := 0; i > offset; i-- {
				projector.Prev()
			}

			printWeek(index, projector, a.config.Schedule.WeekDays,
				timegrid.NewWindow(a.config.Schedule.DayStart, a.config.Schedule.DayEnd))
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Week offset (0 = current week)")
	return cmd
}

func printWeek(index *schedule.Index, projector *calview.Projector, weekDays int, window timegrid.Window) {
	days := projector.DisplayedDays(weekDays)

	colWidth := (termWidth() - 6) / len(days)
	if colWidth < 10 {
		colWidth = 10
	}

	// Header
	fmt.Print(strings.Repeat(" ", 6))
	for _, e := range days {
		head := fmt.Sprintf("%s %s", e.Label, e.Date)
		if projector.IsToday(e) {
			colorHeader.Print(pad(head, colWidth))
		} else {
			fmt.Print(pad(head, colWidth))
		}
	}
	fmt.Println()

	for mins := window.Start; mins < window.End; mins += 60 {
		fmt.Print(pad(timegrid.MinutesToTime(mins), 6))
		for _, e := range days {
			fmt.Print(pad(cellFor(index, e.Key, mins), colWidth))
		}
		fmt.Println()
	}
}

func cellFor(index *schedule.Index, day schedule.Day, hourStart int) string {
	for _, s := range index.SessionsOn(day) {
		start := timegrid.TimeToMinutes(s.StartTime)
		if hourStart <= start && start < hourStart+60 {
			return fmt.Sprintf("%s %s", s.StartTime, s.Client)
		}
	}
	for _, b := range index.BlocksOn(day) {
		start := timegrid.TimeToMinutes(b.Time)
		if hourStart <= start && start < hourStart+60 {
			return fmt.Sprintf("%s %s", b.Time, b.Title)
		}
	}
	return "·"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width-1] + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

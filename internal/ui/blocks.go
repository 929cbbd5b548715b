package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmoraes/agenda/internal/schedule"
)

func (a *App) blocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Manage local time blocks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored time blocks",
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			blocks, err := st.ListBlocks(context.Background())
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}
			if len(blocks) == 0 {
				fmt.Println("No time blocks.")
				return nil
			}
			for _, b := range blocks {
				colorBlock.Printf("  #%d %s %s-%s %s %s\n", b.ID, b.Day, b.Time, b.EndTime, b.Emoji, b.Title)
			}
			return nil
		},
	})

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a time block",
		Args:  cobra.ExactArgs(1),
		Example: `  agenda blocks add "Almoço" --day=monday --start=12:00 --end=13:00`,
	}
	var day, start, end string
	addCmd.Flags().StringVar(&day, "day", "monday", "Day key (sunday..saturday)")
	addCmd.Flags().StringVar(&start, "start", "12:00", "Start time (HH:MM)")
	addCmd.Flags().StringVar(&end, "end", "13:00", "End time (HH:MM)")
	addCmd.RunE = func(_ *cobra.Command, args []string) error {
		if !schedule.Day(day).Valid() {
			return fmt.Errorf("invalid day key: %s", day)
		}
		block, err := schedule.NewTimeBlock(args[0], schedule.Day(day), start, end)
		if err != nil {
			return err
		}
		st, err := a.openStore()
		if err != nil {
			return err
		}
		if err := st.CreateBlock(context.Background(), block); err != nil {
			return err
		}
		fmt.Printf("Created block #%d\n", block.ID)
		return nil
	}
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a time block",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid block id: %s", args[0])
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			return st.DeleteBlock(context.Background(), id)
		},
	})

	return cmd
}

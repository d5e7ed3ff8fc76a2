package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an event",
	Long: `Replace an event's fields. Flags you don't pass keep their current
values. The id is shown by 'weekcal search' and in the TUI detail view.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("title", "", "Event title")
	editCmd.Flags().String("date", "", "Event date (YYYY-MM-DD, 'today', weekday names)")
	editCmd.Flags().String("from", "", "Start time (HH:MM)")
	editCmd.Flags().String("to", "", "End time (HH:MM)")
	editCmd.Flags().Bool("all-day", false, "All-day event")
	editCmd.Flags().String("repeat", "", "Recurrence: none, weekly, yearly")
	editCmd.Flags().String("days", "", "Weekdays for weekly recurrence")
	editCmd.Flags().String("notes", "", "Free-form notes")
	editCmd.Flags().String("color", "", "Palette color: color1..color5")
}

func runEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	current, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("no event with id %s", args[0])
	}

	ev, err := eventFromFlags(cmd, current)
	if err != nil {
		return err
	}
	if err := ev.Validate(); err != nil {
		return err
	}

	warnPersist(store.Update(ev))
	fmt.Printf("✓ Updated %q\n", ev.Title)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weekcal/internal/core"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event, or one occurrence of a recurring event",
	Long: `Delete an event. Without --on the whole event is removed, including
every occurrence of a recurring series.

With --on DATE only that occurrence is removed: the series keeps its rule
and the date is recorded as an exception. For a non-recurring event --on
falls back to deleting the event, since its only occurrence is its date.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().String("on", "", "Delete only the occurrence on this date (YYYY-MM-DD)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	id := args[0]
	ev, ok := store.Get(id)
	if !ok {
		// Matches the store's soft not-found policy.
		fmt.Fprintf(os.Stderr, "no event with id %s\n", id)
		return nil
	}

	onStr, _ := cmd.Flags().GetString("on")
	if onStr == "" {
		warnPersist(store.DeleteSeries(id))
		fmt.Printf("✓ Deleted %q\n", ev.Title)
		return nil
	}

	on, err := parseDate(onStr)
	if err != nil {
		return err
	}

	// The recurrence-kind branch belongs to the caller: the store
	// refuses occurrence deletes on one-off events.
	if !ev.Recurring() {
		warnPersist(store.DeleteSeries(id))
		fmt.Printf("✓ Deleted %q (not recurring, removed entirely)\n", ev.Title)
		return nil
	}

	warnPersist(store.DeleteOccurrence(id, core.ISODate(on)))
	fmt.Printf("✓ Deleted the %s occurrence of %q\n", core.ISODate(on), ev.Title)
	return nil
}

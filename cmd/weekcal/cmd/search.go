package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weekcal/internal/core"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search events by title",
	Long: `List stored events whose title contains the query. Matches show
their stored start date only; recurring series are not expanded into
occurrences.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	matches := store.Search(query)
	if len(matches) == 0 {
		fmt.Printf("No events matching %q.\n", query)
		return nil
	}

	for _, e := range matches {
		when := core.ISODate(e.Start)
		if e.AllDay {
			when += " (all day)"
		} else {
			when += e.Start.Format(" 15:04")
		}
		repeat := ""
		if e.Recurring() {
			repeat = fmt.Sprintf(" [%s]", e.Repeat.Type)
		}
		fmt.Printf("%s  %s%s  (id %s)\n", when, e.Title, repeat, e.ID)
	}
	fmt.Printf("Total: %d event(s)\n", len(matches))
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weekcal/internal/ics"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import events from an iCalendar file",
	Long: `Read VEVENTs from an .ics file into the local collection. Events with
an already-known UID replace the stored record. Recurrence rules beyond
weekly/yearly are kept as an inert "custom" tag: the event shows up on
its start date only.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	events, skipped, err := ics.Import(f, viper.GetString("default_color"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	added, replaced := 0, 0
	for _, ev := range events {
		if _, exists := store.Get(ev.ID); exists {
			warnPersist(store.Update(ev))
			replaced++
		} else {
			warnPersist(store.Add(ev))
			added++
		}
	}

	fmt.Printf("✓ Imported %d event(s) (%d new, %d replaced", added+replaced, added, replaced)
	if skipped > 0 {
		fmt.Printf(", %d skipped", skipped)
	}
	fmt.Println(")")
	return nil
}

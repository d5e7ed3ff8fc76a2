package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weekcal/internal/ics"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all events as iCalendar",
	Long: `Write the full event collection as a VCALENDAR document, to stdout or
to the given file. Weekly and yearly series become RRULEs and deleted
occurrences become EXDATEs, so other calendar apps can read them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	doc, err := ics.Export(store.Events())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(args) == 0 {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(args[0], []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	fmt.Printf("✓ Exported %d event(s) to %s\n", store.Len(), args[0])
	return nil
}

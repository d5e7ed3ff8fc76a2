package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weekcal/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive week grid",
	Long:  `Launch an interactive terminal week view for browsing and deleting events.`,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)

	uiCmd.Flags().String("date", "", "Open on the week containing this date")
}

func runUI(cmd *cobra.Command, args []string) error {
	anchor := time.Now()
	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		var err error
		anchor, err = parseDate(dateStr)
		if err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	m := tui.NewModel(store, anchor, viper.GetString("time_format"))

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

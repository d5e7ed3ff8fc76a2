package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weekcal/internal/core"
	"weekcal/internal/storage"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "weekcal",
	Short: "A weekly calendar that lives in your terminal",
	Long: `weekcal keeps a week-at-a-glance calendar on your own disk: a 7-day
grid with 24 hourly rows and an all-day lane, single or recurring events,
and nothing leaving your machine.

Run without a subcommand to print the current week. Use 'weekcal ui' for
the interactive grid.`,
	RunE: printWeek,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/weekcal/config.yaml)")
	rootCmd.PersistentFlags().String("storage", "", "events file (default is $HOME/.local/share/weekcal/events.json)")

	rootCmd.Flags().String("date", "", "Anchor date for the week (YYYY-MM-DD, 'today', 'tomorrow', weekday names)")

	viper.BindPFlag("storage_file", rootCmd.PersistentFlags().Lookup("storage"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "weekcal")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("WEEKCAL")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("storage_file", defaultStoragePath())
	viper.SetDefault("storage_quota", 5_000_000)
	viper.SetDefault("default_color", "color4")
	viper.SetDefault("time_format", "12h")

	// Read config file if it exists
	_ = viper.ReadInConfig()
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "events.json"
	}
	return filepath.Join(home, ".local", "share", "weekcal", "events.json")
}

// openStore loads the persisted collection and wraps it in the store that
// every command mutates through.
func openStore() (*core.Store, error) {
	adapter := storage.New(expandPath(viper.GetString("storage_file")), viper.GetInt64("storage_quota"))
	events, err := adapter.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return core.NewStore(events, adapter), nil
}

// warnPersist reports a failed write-through without failing the command:
// the mutation took effect in memory and the user just needs to know the
// mirror on disk is stale.
func warnPersist(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, storage.ErrQuotaExceeded) {
		fmt.Fprintln(os.Stderr, "warning: storage quota exceeded, the change was not saved. Free up space or raise storage_quota.")
		return
	}
	fmt.Fprintf(os.Stderr, "warning: saving events failed: %v\n", err)
}

func printWeek(cmd *cobra.Command, args []string) error {
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

	week := core.WeekOf(anchor)
	events := store.Events()
	timeLayout := "3:04 PM"
	if viper.GetString("time_format") == "24h" {
		timeLayout = "15:04"
	}

	days := week.Days()
	fmt.Printf("📅 Week of %s – %s\n", days[0].Format("Jan 2"), days[6].Format("Jan 2, 2006"))

	total := 0
	for _, day := range days {
		var lines []string
		for _, e := range core.CellEvents(events, day, core.AllDayRow) {
			lines = append(lines, fmt.Sprintf("  all day   %s", e.Title))
		}
		for hour := 0; hour < core.HoursPerDay; hour++ {
			for _, e := range core.CellEvents(events, day, hour) {
				lines = append(lines, fmt.Sprintf("  %-8s %s (%s)",
					time.Date(0, 1, 1, hour, e.StartMinute(), 0, 0, time.UTC).Format(timeLayout),
					e.Title, formatSpan(e, timeLayout)))
			}
		}
		if len(lines) == 0 {
			continue
		}
		total += len(lines)

		fmt.Println("─────────────────────────────────────────────────")
		marker := ""
		if core.SameDate(day, time.Now()) {
			marker = " • today"
		}
		fmt.Printf("%s%s\n", day.Format("Monday, Jan 2"), marker)
		for _, l := range lines {
			fmt.Println(l)
		}
	}

	fmt.Println("─────────────────────────────────────────────────")
	if total == 0 {
		fmt.Println("No events this week.")
	} else {
		fmt.Printf("Total: %d occurrence(s)\n", total)
	}
	return nil
}

func formatSpan(e core.Event, layout string) string {
	return fmt.Sprintf("%s - %s", e.Start.Format(layout), e.End.Format(layout))
}

// parseDate parses a date string in various formats.
// Supports: YYYY-MM-DD, "today", "tomorrow", "yesterday", weekday names.
func parseDate(s string) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	now := time.Now()
	today := core.DateOf(now)

	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	weekdays := map[string]time.Weekday{
		"sunday": time.Sunday, "sun": time.Sunday,
		"monday": time.Monday, "mon": time.Monday,
		"tuesday": time.Tuesday, "tue": time.Tuesday,
		"wednesday": time.Wednesday, "wed": time.Wednesday,
		"thursday": time.Thursday, "thu": time.Thursday,
		"friday": time.Friday, "fri": time.Friday,
		"saturday": time.Saturday, "sat": time.Saturday,
	}

	dayName := strings.TrimPrefix(s, "next ")
	if wd, ok := weekdays[dayName]; ok {
		daysUntil := int(wd - today.Weekday())
		if daysUntil <= 0 {
			daysUntil += 7
		}
		return today.AddDate(0, 0, daysUntil), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("01-02", s, now.Location()); err == nil {
		return t.AddDate(now.Year(), 0, 0), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s (use YYYY-MM-DD, 'today', 'tomorrow', or weekday names)", s)
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

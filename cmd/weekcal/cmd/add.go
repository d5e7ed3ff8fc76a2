package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weekcal/internal/core"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an event",
	Long: `Add a single or recurring event.

Examples:
  weekcal add --title "Standup" --date monday --from 09:30 --to 09:45 --repeat weekly
  weekcal add --title "Gym" --date 2026-09-02 --from 18:00 --to 19:30 --repeat weekly --days tue,thu
  weekcal add --title "Anniversary" --date 2026-03-10 --all-day --repeat yearly --color color5`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("title", "", "Event title (required)")
	addCmd.Flags().String("date", "today", "Event date (YYYY-MM-DD, 'today', weekday names)")
	addCmd.Flags().String("from", "09:00", "Start time (HH:MM)")
	addCmd.Flags().String("to", "10:00", "End time (HH:MM)")
	addCmd.Flags().Bool("all-day", false, "All-day event (ignores --from/--to)")
	addCmd.Flags().String("repeat", "none", "Recurrence: none, weekly, yearly")
	addCmd.Flags().String("days", "", "Weekdays for weekly recurrence (e.g. mon,wed,fri; default: the event's weekday)")
	addCmd.Flags().String("notes", "", "Free-form notes")
	addCmd.Flags().String("color", "", "Palette color: color1..color5 (default from config)")
	addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ev, err := eventFromFlags(cmd, core.Event{ID: uuid.NewString()})
	if err != nil {
		return err
	}
	if err := ev.Validate(); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Add(ev); err != nil {
		if err == core.ErrDuplicateID {
			return err
		}
		warnPersist(err)
	}

	fmt.Printf("✓ Added %q on %s (id %s)\n", ev.Title, core.ISODate(ev.Start), ev.ID)
	return nil
}

// eventFromFlags plays the entry form's part: it assembles and normalizes
// a full record from the flag set, leaving base as-is for flags the user
// did not pass.
func eventFromFlags(cmd *cobra.Command, base core.Event) (core.Event, error) {
	ev := base
	flags := cmd.Flags()

	if flags.Changed("title") {
		ev.Title, _ = flags.GetString("title")
	}
	if flags.Changed("notes") {
		ev.Notes, _ = flags.GetString("notes")
	}
	if flags.Changed("color") {
		ev.Color, _ = flags.GetString("color")
	}
	if ev.Color == "" {
		ev.Color = viper.GetString("default_color")
	}
	if flags.Changed("all-day") {
		ev.AllDay, _ = flags.GetBool("all-day")
	}

	date := core.DateOf(ev.Start)
	if flags.Changed("date") || ev.Start.IsZero() {
		dateStr, _ := flags.GetString("date")
		var err error
		date, err = parseDate(dateStr)
		if err != nil {
			return ev, err
		}
	}

	if ev.AllDay {
		ev.Start, ev.End = core.AllDaySpan(date)
	} else {
		fromStr, _ := flags.GetString("from")
		toStr, _ := flags.GetString("to")
		if !flags.Changed("from") && !ev.Start.IsZero() {
			fromStr = ev.Start.Format("15:04")
		}
		if !flags.Changed("to") && !ev.End.IsZero() {
			toStr = ev.End.Format("15:04")
		}
		var err error
		if ev.Start, err = atTime(date, fromStr); err != nil {
			return ev, err
		}
		if ev.End, err = atTime(date, toStr); err != nil {
			return ev, err
		}
	}

	if flags.Changed("repeat") || ev.Repeat.Type == "" {
		repeatStr, _ := flags.GetString("repeat")
		rep, err := repeatFromFlag(repeatStr)
		if err != nil {
			return ev, err
		}
		ev.Repeat = rep
	}
	if ev.Repeat.Type == core.RepeatWeekly {
		days := []time.Weekday{ev.Start.Weekday()}
		if flags.Changed("days") {
			daysStr, _ := flags.GetString("days")
			var err error
			if days, err = parseWeekdays(daysStr); err != nil {
				return ev, err
			}
		} else if ev.Repeat.Options != nil && len(ev.Repeat.Options.Days) > 0 {
			days = ev.Repeat.Options.Days
		}
		if ev.Repeat.Options == nil {
			ev.Repeat.Options = &core.RepeatOptions{}
		}
		ev.Repeat.Options.Days = days
	}

	return ev, nil
}

func atTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use HH:MM)", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func repeatFromFlag(s string) (core.Repeat, error) {
	switch core.RepeatType(strings.ToLower(strings.TrimSpace(s))) {
	case core.RepeatNone, "":
		return core.Repeat{Type: core.RepeatNone}, nil
	case core.RepeatWeekly:
		return core.Repeat{Type: core.RepeatWeekly}, nil
	case core.RepeatYearly:
		return core.Repeat{Type: core.RepeatYearly}, nil
	case core.RepeatDaily:
		// Accepted tag; generates no occurrences yet.
		return core.Repeat{Type: core.RepeatDaily}, nil
	case core.RepeatCustom:
		return core.Repeat{Type: core.RepeatCustom}, nil
	default:
		return core.Repeat{}, fmt.Errorf("unknown repeat %q (use none, weekly, yearly)", s)
	}
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
		"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
		"sat": time.Saturday,
	}
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if len(part) > 3 {
			part = part[:3]
		}
		wd, ok := names[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out = append(out, wd)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no weekdays in %q", s)
	}
	return out, nil
}

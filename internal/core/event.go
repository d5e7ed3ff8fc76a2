package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RepeatType tags how an event recurs.
type RepeatType string

const (
	RepeatNone   RepeatType = "none"
	RepeatDaily  RepeatType = "daily"
	RepeatWeekly RepeatType = "weekly"
	RepeatYearly RepeatType = "yearly"
	RepeatCustom RepeatType = "custom"
)

// Only weekly and yearly series generate occurrences beyond the start date.
// "daily" and "custom" are accepted on stored events (e.g. from an ICS
// import) but stay inert until a rule is defined for them.

// RepeatOptions carries the per-type recurrence parameters.
type RepeatOptions struct {
	// Weekdays the series recurs on (weekly only). Empty means the
	// weekday of the event's start.
	Days []time.Weekday `json:"days,omitempty"`
	// Local calendar dates (YYYY-MM-DD) on which an otherwise-recurring
	// occurrence is suppressed. Append-only; never deduplicated.
	Exceptions []string `json:"exceptions,omitempty"`
}

// Repeat describes an event's recurrence rule.
type Repeat struct {
	Type    RepeatType     `json:"type"`
	Options *RepeatOptions `json:"options,omitempty"`
}

// ColorPalette lists the fixed color identifiers events may carry. The
// core treats the value as an opaque grouping tag; surfaces map it to an
// actual color.
var ColorPalette = []string{"color1", "color2", "color3", "color4", "color5"}

// ColorHex maps palette identifiers to their display colors.
var ColorHex = map[string]string{
	"color1": "#FFB3B3",
	"color2": "#FFF5BA",
	"color3": "#B3FFB3",
	"color4": "#B3E0FF",
	"color5": "#E0B3FF",
}

// Event is the unit of schedulable data.
type Event struct {
	// Unique ID, assigned at creation and immutable after.
	ID    string `json:"id"`
	Title string `json:"title"`
	// Local wall-clock timestamps. All-day events span a single date
	// from 00:00:00 to 23:59:59.
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
	Repeat Repeat    `json:"repeat"`
	Notes  string    `json:"notes,omitempty"`
	Color  string    `json:"color"`
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Recurring reports whether the event is a series rather than a one-off.
func (e Event) Recurring() bool {
	return e.Repeat.Type != RepeatNone
}

// Validate applies the entry-form rules: non-blank title, start strictly
// before end for timed events, and a color from the palette. The store
// trusts callers to have run this; it never re-validates.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title cannot be empty")
	}
	if !e.AllDay && !e.Start.Before(e.End) {
		return errors.New("event start must be before its end")
	}
	if _, ok := ColorHex[e.Color]; !ok {
		return fmt.Errorf("unknown color %q (choose one of %s)", e.Color, strings.Join(ColorPalette, ", "))
	}
	return nil
}

// ISODate formats t's local calendar date as YYYY-MM-DD. Exception lists
// and date-keyed operations use this form.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DateOf truncates t to midnight of its local calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same local calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// AllDaySpan returns the start and end timestamps for an all-day event on
// the given date: 00:00:00 through 23:59:59.
func AllDaySpan(date time.Time) (time.Time, time.Time) {
	start := DateOf(date)
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

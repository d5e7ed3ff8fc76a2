// Package ics round-trips the event collection through the iCalendar
// format. Weekly and yearly series map onto RRULEs with EXDATEs for the
// exception list; recurrence shapes the calendar cannot express survive
// import as the inert "custom" tag.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"weekcal/internal/core"
)

// colorProp carries the palette identifier through an ICS round trip.
const colorProp = ical.ComponentProperty("X-WEEKCAL-COLOR")

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// Export serializes the events as a VCALENDAR document.
func Export(events []core.Event) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//weekcal//calendar//EN")

	now := time.Now()
	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now)
		ve.SetSummary(e.Title)
		if e.Notes != "" {
			ve.SetDescription(e.Notes)
		}
		if e.Color != "" {
			ve.AddProperty(colorProp, e.Color)
		}

		if e.AllDay {
			date := core.DateOf(e.Start)
			ve.SetAllDayStartAt(date)
			ve.SetAllDayEndAt(date.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(e.Start)
			ve.SetEndAt(e.End)
		}

		if err := addRecurrence(ve, e); err != nil {
			return "", fmt.Errorf("event %s: %w", e.ID, err)
		}
	}

	return cal.Serialize(), nil
}

func addRecurrence(ve *ical.VEvent, e core.Event) error {
	var opt rrule.ROption

	switch e.Repeat.Type {
	case core.RepeatNone, core.RepeatCustom:
		// none has no rule; custom carries none we could express.
		return nil
	case core.RepeatDaily:
		opt.Freq = rrule.DAILY
	case core.RepeatWeekly:
		opt.Freq = rrule.WEEKLY
		for _, wd := range weeklyDays(e) {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
		}
	case core.RepeatYearly:
		opt.Freq = rrule.YEARLY
	default:
		return fmt.Errorf("unknown repeat type %q", e.Repeat.Type)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return fmt.Errorf("build rrule: %w", err)
	}
	ve.AddProperty(ical.ComponentPropertyRrule, rule.String())

	if e.Repeat.Options != nil {
		for _, ex := range e.Repeat.Options.Exceptions {
			d, err := time.ParseInLocation("2006-01-02", ex, time.Local)
			if err != nil {
				continue
			}
			ve.AddProperty(ical.ComponentPropertyExdate, d.Format("20060102T150405"))
		}
	}
	return nil
}

func weeklyDays(e core.Event) []time.Weekday {
	if e.Repeat.Options != nil && len(e.Repeat.Options.Days) > 0 {
		return e.Repeat.Options.Days
	}
	return []time.Weekday{e.Start.Weekday()}
}

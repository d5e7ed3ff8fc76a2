package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"weekcal/internal/core"
)

var weekdaysFromRRule = map[int]time.Weekday{
	rrule.MO.Day(): time.Monday,
	rrule.TU.Day(): time.Tuesday,
	rrule.WE.Day(): time.Wednesday,
	rrule.TH.Day(): time.Thursday,
	rrule.FR.Day(): time.Friday,
	rrule.SA.Day(): time.Saturday,
	rrule.SU.Day(): time.Sunday,
}

// Import parses a VCALENDAR document into event records. VEVENTs that
// cannot be mapped are skipped rather than failing the whole import; the
// returned count of skipped entries lets the caller report them.
func Import(r io.Reader, defaultColor string) ([]core.Event, int, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse calendar: %w", err)
	}

	var events []core.Event
	skipped := 0
	for _, ve := range cal.Events() {
		ev, err := importVEvent(ve, defaultColor)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	return events, skipped, nil
}

func importVEvent(ve *ical.VEvent, defaultColor string) (core.Event, error) {
	var ev core.Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		ev.ID = p.Value
	} else {
		ev.ID = uuid.NewString()
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if strings.TrimSpace(ev.Title) == "" {
		return ev, errors.New("missing summary")
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Notes = p.Value
	}

	ev.Color = defaultColor
	if p := ve.GetProperty(colorProp); p != nil {
		if _, ok := core.ColorHex[p.Value]; ok {
			ev.Color = p.Value
		}
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return ev, fmt.Errorf("dtstart: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		// DTEND is optional; default to an hour after start.
		end = start.Add(time.Hour)
	}
	ev.Start = start.In(time.Local)
	ev.End = end.In(time.Local)

	if isAllDay(ve) {
		ev.AllDay = true
		ev.Start, ev.End = core.AllDaySpan(ev.Start)
	} else if !ev.Start.Before(ev.End) {
		return ev, errors.New("start not before end")
	}

	ev.Repeat = importRepeat(ve, ev.Start)
	return ev, nil
}

// isAllDay detects DATE-valued starts, either via VALUE=DATE or the bare
// YYYYMMDD form.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// importRepeat maps an RRULE onto the repeat descriptor. Weekly and
// yearly rules become first-class series; FREQ=DAILY keeps its tag, and
// every other shape lands as "custom" so the rule is carried (inert)
// rather than dropped.
func importRepeat(ve *ical.VEvent, start time.Time) core.Repeat {
	p := ve.GetProperty(ical.ComponentPropertyRrule)
	if p == nil || p.Value == "" {
		return core.Repeat{Type: core.RepeatNone}
	}

	opt, err := rrule.StrToROption(p.Value)
	if err != nil {
		return core.Repeat{Type: core.RepeatCustom}
	}

	rep := core.Repeat{Type: core.RepeatCustom}
	switch {
	case opt.Freq == rrule.WEEKLY && opt.Interval <= 1:
		days := make([]time.Weekday, 0, len(opt.Byweekday))
		for _, wd := range opt.Byweekday {
			days = append(days, weekdaysFromRRule[wd.Day()])
		}
		if len(days) == 0 {
			days = []time.Weekday{start.Weekday()}
		}
		rep = core.Repeat{Type: core.RepeatWeekly, Options: &core.RepeatOptions{Days: days}}
	case opt.Freq == rrule.YEARLY && opt.Interval <= 1 && len(opt.Bymonth) == 0 && len(opt.Bymonthday) == 0:
		rep = core.Repeat{Type: core.RepeatYearly}
	case opt.Freq == rrule.DAILY && opt.Interval <= 1:
		rep = core.Repeat{Type: core.RepeatDaily}
	}

	if excs := importExceptions(ve); len(excs) > 0 {
		if rep.Options == nil {
			rep.Options = &core.RepeatOptions{}
		}
		rep.Options.Exceptions = excs
	}
	return rep
}

func importExceptions(ve *ical.VEvent) []string {
	var out []string
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out = append(out, core.ISODate(t.In(time.Local)))
			}
		}
	}
	return out
}

// parseICSTime handles the basic DATE, floating DATE-TIME, and UTC
// DATE-TIME value forms.
func parseICSTime(v string) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}

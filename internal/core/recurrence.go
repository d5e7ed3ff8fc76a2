package core

import "time"

// OccursOn decides whether the event has an occurrence on the given local
// calendar date. Exceptions win over everything, including the base date
// of the series itself.
func (e Event) OccursOn(day time.Time) bool {
	if e.excludedOn(ISODate(day)) {
		return false
	}

	switch e.Repeat.Type {
	case RepeatWeekly:
		// A series never occurs before its own start date, even when
		// the weekday matches.
		if DateOf(day).Before(DateOf(e.Start)) {
			return false
		}
		return e.weeklyDayMatch(day.Weekday())

	case RepeatYearly:
		if DateOf(day).Before(DateOf(e.Start)) {
			return false
		}
		return day.Month() == e.Start.Month() && day.Day() == e.Start.Day()

	default:
		// none, plus the inert daily/custom tags: exact-date match only.
		return SameDate(day, e.Start)
	}
}

// OccupiesHour reports whether the event lands in the (day, hour) grid
// cell. Recurring events inherit the series start's hour on every
// occurrence; all-day events never occupy an hourly row.
func (e Event) OccupiesHour(day time.Time, hour int) bool {
	if e.AllDay {
		return false
	}
	return e.Start.Hour() == hour && e.OccursOn(day)
}

func (e Event) weeklyDayMatch(wd time.Weekday) bool {
	opts := e.Repeat.Options
	if opts == nil || len(opts.Days) == 0 {
		return wd == e.Start.Weekday()
	}
	for _, d := range opts.Days {
		if d == wd {
			return true
		}
	}
	return false
}

func (e Event) excludedOn(iso string) bool {
	if e.Repeat.Options == nil {
		return false
	}
	for _, ex := range e.Repeat.Options.Exceptions {
		if ex == iso {
			return true
		}
	}
	return false
}

package core

import "time"

// AllDayRow is the sentinel hour value addressing the all-day lane of a
// day column instead of one of the 24 hourly rows.
const AllDayRow = -1

// HoursPerDay is the number of hourly rows in a day column.
const HoursPerDay = 24

// Week is the visible 7-day window of the grid, anchored on a Sunday.
type Week struct {
	Start time.Time
}

// WeekOf returns the week containing the given date, rewound to the
// preceding (or same) Sunday at local midnight.
func WeekOf(date time.Time) Week {
	d := DateOf(date)
	return Week{Start: d.AddDate(0, 0, -int(d.Weekday()))}
}

// Next returns the following week.
func (w Week) Next() Week {
	return Week{Start: w.Start.AddDate(0, 0, 7)}
}

// Prev returns the preceding week.
func (w Week) Prev() Week {
	return Week{Start: w.Start.AddDate(0, 0, -7)}
}

// Day returns the i-th date of the week, 0=Sunday through 6=Saturday.
func (w Week) Day(i int) time.Time {
	return w.Start.AddDate(0, 0, i)
}

// Days returns the seven dates of the week in order.
func (w Week) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = w.Day(i)
	}
	return days
}

// Contains reports whether t's calendar date falls inside the week.
func (w Week) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(w.Start) && d.Before(w.Start.AddDate(0, 0, 7))
}

// CellEvents returns the events occupying one grid cell, in storage
// iteration order. hour == AllDayRow addresses the all-day lane; any
// other value addresses that hourly row. The order is the contract:
// it determines left-to-right packing when events overlap.
func CellEvents(events []Event, day time.Time, hour int) []Event {
	var out []Event
	for _, e := range events {
		if hour == AllDayRow {
			if e.AllDay && e.OccursOn(day) {
				out = append(out, e)
			}
			continue
		}
		if e.OccupiesHour(day, hour) {
			out = append(out, e)
		}
	}
	return out
}

// Placement is one event's slot within a cell shared by Count events.
// Each co-occupant gets an equal fraction of the cell width.
type Placement struct {
	Event Event
	Index int
	Count int
}

// Width returns the fractional width of the slot (1/N).
func (p Placement) Width() float64 {
	return 1.0 / float64(p.Count)
}

// Offset returns the fractional left offset of the slot (Index/N).
func (p Placement) Offset() float64 {
	return float64(p.Index) / float64(p.Count)
}

// CellPlacements resolves a cell and assigns packing slots to its events.
func CellPlacements(events []Event, day time.Time, hour int) []Placement {
	cell := CellEvents(events, day, hour)
	placements := make([]Placement, len(cell))
	for i, e := range cell {
		placements[i] = Placement{Event: e, Index: i, Count: len(cell)}
	}
	return placements
}

// Presentation helpers for timed events. Vertical layout is derived from
// the event's minutes, relative to whatever per-hour unit the surface
// renders with.

// StartMinute returns the minute-of-hour the event starts at.
func (e Event) StartMinute() int {
	return e.Start.Minute()
}

// DurationMinutes returns the event length in whole minutes.
func (e Event) DurationMinutes() int {
	return int(e.Duration() / time.Minute)
}

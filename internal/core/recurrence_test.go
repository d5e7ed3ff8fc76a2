package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.Local)
}

func timedEvent(id string, start, end time.Time, rep Repeat) Event {
	return Event{ID: id, Title: id, Start: start, End: end, Repeat: rep, Color: "color1"}
}

func TestOccursOnNonRecurring(t *testing.T) {
	ev := timedEvent("one-off", at(2026, time.September, 2, 10, 0), at(2026, time.September, 2, 11, 30), Repeat{Type: RepeatNone})

	assert.True(t, ev.OccursOn(date(2026, time.September, 2)))
	assert.False(t, ev.OccursOn(date(2026, time.September, 1)))
	assert.False(t, ev.OccursOn(date(2026, time.September, 3)))
	assert.False(t, ev.OccursOn(date(2026, time.September, 9)), "same weekday, different date")
}

func TestOccursOnWeekly(t *testing.T) {
	// Starts Tuesday 2026-09-01.
	ev := timedEvent("standup", at(2026, time.September, 1, 9, 30), at(2026, time.September, 1, 9, 45), Repeat{Type: RepeatWeekly})

	assert.True(t, ev.OccursOn(date(2026, time.September, 1)), "series start")
	assert.True(t, ev.OccursOn(date(2026, time.September, 8)), "next Tuesday")
	assert.True(t, ev.OccursOn(date(2027, time.March, 2)), "a Tuesday far out")
	assert.False(t, ev.OccursOn(date(2026, time.September, 2)), "Wednesday")
	assert.False(t, ev.OccursOn(date(2026, time.August, 25)), "Tuesday before the series started")
}

func TestOccursOnWeeklyExplicitDays(t *testing.T) {
	ev := timedEvent("gym", at(2026, time.September, 1, 18, 0), at(2026, time.September, 1, 19, 0), Repeat{
		Type:    RepeatWeekly,
		Options: &RepeatOptions{Days: []time.Weekday{time.Tuesday, time.Thursday}},
	})

	assert.True(t, ev.OccursOn(date(2026, time.September, 3)), "Thursday")
	assert.True(t, ev.OccursOn(date(2026, time.September, 8)), "Tuesday")
	assert.False(t, ev.OccursOn(date(2026, time.September, 7)), "Monday")
}

func TestOccursOnYearly(t *testing.T) {
	ev := timedEvent("anniversary", at(2024, time.March, 10, 12, 0), at(2024, time.March, 10, 13, 0), Repeat{Type: RepeatYearly})

	assert.True(t, ev.OccursOn(date(2024, time.March, 10)))
	assert.True(t, ev.OccursOn(date(2025, time.March, 10)))
	assert.True(t, ev.OccursOn(date(2026, time.March, 10)))
	assert.False(t, ev.OccursOn(date(2024, time.March, 11)))
	assert.False(t, ev.OccursOn(date(2025, time.April, 10)))
	assert.False(t, ev.OccursOn(date(2023, time.March, 10)), "before the series started")
}

func TestExceptionsOverrideEverything(t *testing.T) {
	ev := timedEvent("standup", at(2026, time.September, 1, 9, 30), at(2026, time.September, 1, 9, 45), Repeat{
		Type:    RepeatWeekly,
		Options: &RepeatOptions{Exceptions: []string{"2026-09-08", "2026-09-01"}},
	})

	assert.False(t, ev.OccursOn(date(2026, time.September, 8)), "excepted occurrence")
	assert.False(t, ev.OccursOn(date(2026, time.September, 1)), "even the base date")
	assert.True(t, ev.OccursOn(date(2026, time.September, 15)), "other Tuesdays unaffected")
}

func TestInertRepeatTags(t *testing.T) {
	for _, typ := range []RepeatType{RepeatDaily, RepeatCustom} {
		ev := timedEvent(string(typ), at(2026, time.September, 2, 8, 0), at(2026, time.September, 2, 9, 0), Repeat{Type: typ})

		assert.True(t, ev.OccursOn(date(2026, time.September, 2)), "start date still matches")
		assert.False(t, ev.OccursOn(date(2026, time.September, 3)), "%s generates no occurrences", typ)
	}
}

func TestOccupiesHour(t *testing.T) {
	ev := timedEvent("standup", at(2026, time.September, 1, 9, 30), at(2026, time.September, 1, 9, 45), Repeat{Type: RepeatWeekly})

	assert.True(t, ev.OccupiesHour(date(2026, time.September, 8), 9), "recurring events keep their start hour")
	assert.False(t, ev.OccupiesHour(date(2026, time.September, 8), 10))
	assert.False(t, ev.OccupiesHour(date(2026, time.September, 7), 9), "wrong day")

	allDay := Event{ID: "holiday", Title: "holiday", AllDay: true, Repeat: Repeat{Type: RepeatNone}, Color: "color2"}
	allDay.Start, allDay.End = AllDaySpan(date(2026, time.September, 8))
	assert.False(t, allDay.OccupiesHour(date(2026, time.September, 8), 0), "all-day events never occupy hourly rows")
	assert.True(t, allDay.OccursOn(date(2026, time.September, 8)))
}

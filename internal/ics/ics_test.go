package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekcal/internal/core"
)

func weeklyStandup() core.Event {
	start := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.Local)
	return core.Event{
		ID:    "standup-1",
		Title: "Standup",
		Start: start,
		End:   start.Add(15 * time.Minute),
		Repeat: core.Repeat{
			Type:    core.RepeatWeekly,
			Options: &core.RepeatOptions{Days: []time.Weekday{time.Tuesday, time.Thursday}, Exceptions: []string{"2026-09-08"}},
		},
		Notes: "daily sync",
		Color: "color2",
	}
}

func TestExportWeeklySeries(t *testing.T) {
	out, err := Export([]core.Event{weeklyStandup()})
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "UID:standup-1")
	assert.Contains(t, out, "SUMMARY:Standup")
	assert.Contains(t, out, "FREQ=WEEKLY")
	assert.Contains(t, out, "TU")
	assert.Contains(t, out, "TH")
	assert.Contains(t, out, "EXDATE:20260908")
	assert.Contains(t, out, "X-WEEKCAL-COLOR:color2")
}

func TestExportAllDay(t *testing.T) {
	day := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.Local)
	ev := core.Event{ID: "holiday", Title: "Holiday", AllDay: true, Repeat: core.Repeat{Type: core.RepeatNone}, Color: "color3"}
	ev.Start, ev.End = core.AllDaySpan(day)

	out, err := Export([]core.Event{ev})
	require.NoError(t, err)

	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260902")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260903")
	assert.NotContains(t, out, "RRULE")
}

func TestExportCustomCarriesNoRule(t *testing.T) {
	start := time.Date(2026, time.September, 2, 8, 0, 0, 0, time.Local)
	ev := core.Event{ID: "odd", Title: "Odd", Start: start, End: start.Add(time.Hour), Repeat: core.Repeat{Type: core.RepeatCustom}, Color: "color1"}

	out, err := Export([]core.Event{ev})
	require.NoError(t, err)
	assert.NotContains(t, out, "RRULE")
}

func TestRoundTrip(t *testing.T) {
	want := weeklyStandup()
	out, err := Export([]core.Event{want})
	require.NoError(t, err)

	got, skipped, err := Import(strings.NewReader(out), "color5")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, got, 1)

	ev := got[0]
	assert.Equal(t, want.ID, ev.ID)
	assert.Equal(t, want.Title, ev.Title)
	assert.Equal(t, want.Notes, ev.Notes)
	assert.Equal(t, "color2", ev.Color, "palette tag survives the trip")
	assert.True(t, want.Start.Equal(ev.Start))
	assert.Equal(t, core.RepeatWeekly, ev.Repeat.Type)
	require.NotNil(t, ev.Repeat.Options)
	assert.ElementsMatch(t, []time.Weekday{time.Tuesday, time.Thursday}, ev.Repeat.Options.Days)
	assert.Equal(t, []string{"2026-09-08"}, ev.Repeat.Options.Exceptions)
}

func TestImportSkipsUnusable(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//other//app//EN",
		"BEGIN:VEVENT",
		"UID:no-summary",
		"DTSTART:20260902T100000",
		"DTEND:20260902T110000",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:ok",
		"SUMMARY:Kept",
		"DTSTART:20260902T100000",
		"DTEND:20260902T110000",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"

	events, skipped, err := Import(strings.NewReader(doc), "color1")
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].ID)
	assert.Equal(t, "color1", events[0].Color, "foreign events get the default color")
}

func TestImportUnsupportedRuleBecomesCustom(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//other//app//EN",
		"BEGIN:VEVENT",
		"UID:biweekly",
		"SUMMARY:Payday",
		"DTSTART:20260904T090000",
		"DTEND:20260904T093000",
		"RRULE:FREQ=WEEKLY;INTERVAL=2;BYDAY=FR",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"

	events, skipped, err := Import(strings.NewReader(doc), "color1")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, events, 1)
	assert.Equal(t, core.RepeatCustom, events[0].Repeat.Type, "intervals we cannot honor stay inert")
}

func TestImportAllDayDateForm(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//other//app//EN",
		"BEGIN:VEVENT",
		"UID:holiday",
		"SUMMARY:Holiday",
		"DTSTART;VALUE=DATE:20260902",
		"DTEND;VALUE=DATE:20260903",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"

	events, _, err := Import(strings.NewReader(doc), "color1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.True(t, ev.AllDay)
	wantStart, wantEnd := core.AllDaySpan(time.Date(2026, time.September, 2, 0, 0, 0, 0, time.Local))
	assert.True(t, wantStart.Equal(ev.Start))
	assert.True(t, wantEnd.Equal(ev.End))
}

func TestImportMissingUIDGetsGenerated(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//other//app//EN",
		"BEGIN:VEVENT",
		"SUMMARY:Anonymous",
		"DTSTART:20260902T100000",
		"DTEND:20260902T110000",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"

	events, _, err := Import(strings.NewReader(doc), "color1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
}

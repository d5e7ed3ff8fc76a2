package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister records every write-through and can be told to fail.
type fakePersister struct {
	saves [][]Event
	err   error
}

func (f *fakePersister) Save(events []Event) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, events)
	return nil
}

func weeklyTuesday(id string) Event {
	return timedEvent(id, at(2026, time.September, 1, 9, 0), at(2026, time.September, 1, 10, 0), Repeat{Type: RepeatWeekly})
}

func TestStoreAdd(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(nil, p)

	ev := weeklyTuesday("ev1")
	require.NoError(t, s.Add(ev))
	assert.Equal(t, 1, s.Len())

	got, ok := s.Get("ev1")
	require.True(t, ok)
	assert.Equal(t, ev, got)

	assert.ErrorIs(t, s.Add(ev), ErrDuplicateID)
	assert.Equal(t, 1, s.Len())
	assert.Len(t, p.saves, 1, "rejected add must not persist")
}

func TestStoreUpdateMissingIsNoOp(t *testing.T) {
	p := &fakePersister{}
	s := NewStore([]Event{weeklyTuesday("ev1")}, p)

	ghost := weeklyTuesday("ghost")
	require.NoError(t, s.Update(ghost))

	assert.Equal(t, 1, s.Len(), "no append on missing id")
	_, ok := s.Get("ghost")
	assert.False(t, ok)
	assert.Empty(t, p.saves, "no-op must not persist")
}

func TestStoreUpdateReplaces(t *testing.T) {
	p := &fakePersister{}
	s := NewStore([]Event{weeklyTuesday("ev1")}, p)

	updated := weeklyTuesday("ev1")
	updated.Title = "renamed"
	require.NoError(t, s.Update(updated))

	got, _ := s.Get("ev1")
	assert.Equal(t, "renamed", got.Title)
	assert.Len(t, p.saves, 1)
}

func TestStoreDeleteSeries(t *testing.T) {
	p := &fakePersister{}
	s := NewStore([]Event{weeklyTuesday("ev1"), weeklyTuesday("ev2")}, p)

	require.NoError(t, s.DeleteSeries("ev1"))
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("ev1")
	assert.False(t, ok)

	require.NoError(t, s.DeleteSeries("ev1"), "absent id is a no-op")
	assert.Equal(t, 1, s.Len())
	assert.Len(t, p.saves, 1)
}

func TestDeleteOccurrencePreservesSeries(t *testing.T) {
	s := NewStore([]Event{weeklyTuesday("standup")}, &fakePersister{})

	// Remove one Tuesday; every other Tuesday must survive.
	require.NoError(t, s.DeleteOccurrence("standup", "2026-09-08"))

	got, ok := s.Get("standup")
	require.True(t, ok)
	assert.False(t, got.OccursOn(date(2026, time.September, 8)))
	assert.True(t, got.OccursOn(date(2026, time.September, 1)))
	assert.True(t, got.OccursOn(date(2026, time.September, 15)))
}

func TestDeleteOccurrenceAppendsWithoutDedup(t *testing.T) {
	s := NewStore([]Event{weeklyTuesday("standup")}, &fakePersister{})

	require.NoError(t, s.DeleteOccurrence("standup", "2026-09-08"))
	require.NoError(t, s.DeleteOccurrence("standup", "2026-09-08"))

	got, _ := s.Get("standup")
	assert.Equal(t, []string{"2026-09-08", "2026-09-08"}, got.Repeat.Options.Exceptions)
	assert.False(t, got.OccursOn(date(2026, time.September, 8)), "still just suppressed")
}

func TestDeleteOccurrenceNonRecurring(t *testing.T) {
	p := &fakePersister{}
	oneOff := timedEvent("lunch", at(2026, time.September, 2, 12, 0), at(2026, time.September, 2, 13, 0), Repeat{Type: RepeatNone})
	s := NewStore([]Event{oneOff}, p)

	assert.ErrorIs(t, s.DeleteOccurrence("lunch", "2026-09-02"), ErrNotRecurring)
	assert.Equal(t, 1, s.Len(), "event untouched")
	assert.Empty(t, p.saves)

	assert.NoError(t, s.DeleteOccurrence("ghost", "2026-09-02"), "absent id is a no-op")
}

func TestMutationsWriteThrough(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(nil, p)

	require.NoError(t, s.Add(weeklyTuesday("ev1")))
	require.NoError(t, s.Update(func() Event { e := weeklyTuesday("ev1"); e.Title = "x"; return e }()))
	require.NoError(t, s.DeleteOccurrence("ev1", "2026-09-08"))
	require.NoError(t, s.DeleteSeries("ev1"))

	require.Len(t, p.saves, 4, "every mutation mirrors the full state")
	assert.Len(t, p.saves[2], 1)
	assert.Empty(t, p.saves[3])
}

func TestPersistFailureLeavesMemoryIntact(t *testing.T) {
	quotaErr := errors.New("quota exceeded")
	p := &fakePersister{err: quotaErr}
	s := NewStore(nil, p)

	err := s.Add(weeklyTuesday("ev1"))
	assert.ErrorIs(t, err, quotaErr, "failure is surfaced, not swallowed")

	// The mutation sticks: memory is authoritative, no rollback, no
	// reload from the (stale) adapter.
	assert.Equal(t, 1, s.Len())
	got, ok := s.Get("ev1")
	require.True(t, ok)
	assert.Equal(t, "ev1", got.Title)
}

func TestSearch(t *testing.T) {
	events := []Event{
		timedEvent("a", at(2026, time.September, 2, 10, 0), at(2026, time.September, 2, 11, 0), Repeat{Type: RepeatNone}),
		timedEvent("b", at(2026, time.September, 3, 10, 0), at(2026, time.September, 3, 11, 0), Repeat{Type: RepeatWeekly}),
	}
	events[0].Title = "Team standup"
	events[1].Title = "Standup retro"
	s := NewStore(events, nil)

	matches := s.Search("standup")
	require.Len(t, matches, 2, "case-insensitive substring match")
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "b", matches[1].ID)

	assert.Empty(t, s.Search("lunch"))
}

func TestEventsReturnsCopy(t *testing.T) {
	s := NewStore([]Event{weeklyTuesday("ev1")}, nil)

	snapshot := s.Events()
	snapshot[0].Title = "mutated"

	got, _ := s.Get("ev1")
	assert.Equal(t, "ev1", got.Title)
}

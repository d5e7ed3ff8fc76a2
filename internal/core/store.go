package core

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateID is returned by Add when the ID is already present.
	// Callers normally guarantee freshness by minting a new uuid.
	ErrDuplicateID = errors.New("event id already exists")

	// ErrNotRecurring is returned by DeleteOccurrence for one-off events.
	// Deleting a single occurrence of a non-recurring event is the same
	// as deleting it outright; callers must choose DeleteSeries instead.
	ErrNotRecurring = errors.New("event does not recur")
)

// Persister mirrors the store's full collection to durable storage after
// every mutation. The in-memory state stays authoritative: a failed save
// is reported but never rolled back.
type Persister interface {
	Save(events []Event) error
}

// Store is the authoritative collection of event records. It is owned by
// the application root and injected into every surface that needs it;
// all mutations go through its methods. Insertion order is preserved and
// is what the grid resolver's packing order falls out of.
type Store struct {
	events    []Event
	persister Persister
}

// NewStore creates a store seeded with an existing collection, typically
// the result of the persistence adapter's Load.
func NewStore(events []Event, p Persister) *Store {
	return &Store{events: events, persister: p}
}

// Events returns a copy of the collection in storage order.
func (s *Store) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.events)
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Event, bool) {
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Add inserts a new record. The returned error is either ErrDuplicateID
// (nothing inserted) or the persist result for the grown collection.
func (s *Store) Add(ev Event) error {
	if _, ok := s.Get(ev.ID); ok {
		return ErrDuplicateID
	}
	s.events = append(s.events, ev)
	return s.persist()
}

// Update replaces the record whose ID matches ev.ID in place. A missing
// ID is a silent no-op: the collection is left untouched and nothing is
// persisted. Callers cannot distinguish "updated" from "nothing matched".
func (s *Store) Update(ev Event) error {
	for i, e := range s.events {
		if e.ID == ev.ID {
			s.events[i] = ev
			return s.persist()
		}
	}
	return nil
}

// DeleteSeries removes the record and, with it, every occurrence the
// series would generate. No-op if the ID is absent.
func (s *Store) DeleteSeries(id string) error {
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// DeleteOccurrence suppresses a single occurrence of a recurring series
// by appending dateISO (YYYY-MM-DD) to its exception list. The list is
// append-only: re-deleting an already-excepted date appends again and
// stays a behavioral no-op. Returns ErrNotRecurring for one-off events;
// a missing ID is a no-op.
func (s *Store) DeleteOccurrence(id, dateISO string) error {
	for i, e := range s.events {
		if e.ID != id {
			continue
		}
		if !e.Recurring() {
			return ErrNotRecurring
		}
		if e.Repeat.Options == nil {
			e.Repeat.Options = &RepeatOptions{}
		}
		e.Repeat.Options.Exceptions = append(e.Repeat.Options.Exceptions, dateISO)
		s.events[i] = e
		return s.persist()
	}
	return nil
}

// Search filters the raw collection by case-insensitive substring match
// on the title. No recurrence expansion: results carry their literal
// stored start dates only.
func (s *Store) Search(query string) []Event {
	q := strings.ToLower(query)
	var out []Event
	for _, e := range s.events {
		if strings.Contains(strings.ToLower(e.Title), q) {
			out = append(out, e)
		}
	}
	return out
}

// persist writes through to the adapter. Memory is already mutated by
// the time this runs; the caller decides what to tell the user about a
// failed save.
func (s *Store) persist() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Save(s.Events())
}

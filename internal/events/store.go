package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/deskcal/internal/logger"
	"github.com/julianstephens/deskcal/internal/models"
	"github.com/julianstephens/deskcal/internal/storage"
)

var (
	// ErrNotFound is returned when an event id does not exist in the store.
	ErrNotFound = errors.New("events: event not found")
	// ErrInvalidImport is returned when an import payload is not an event list.
	ErrInvalidImport = errors.New("events: import payload is not an event list")
)

// ExportVersion tags export envelopes so future format changes stay
// detectable on import.
const ExportVersion = "1.0.0"

// Action names the mutation that triggered a change notification.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionClear  Action = "clear"
	ActionImport Action = "import"
)

// Change describes one committed mutation. Event is set for single-event
// actions, Batch for imports, and Events always carries a snapshot of the
// full collection after the mutation.
type Change struct {
	Action Action
	Event  *models.Event
	Batch  []models.Event
	Events []models.Event
}

// Listener receives change notifications. A listener that panics is logged
// and skipped; it never blocks delivery to other listeners or the mutation
// itself.
type Listener func(Change)

type subscriber struct {
	id int
	fn Listener
}

// Store owns the authoritative in-memory event collection and mirrors every
// mutation to its storage provider. It is not safe for concurrent use; the
// widget drives it from a single goroutine.
type Store struct {
	provider storage.Provider
	clock    func() time.Time

	events    []models.Event
	listeners []subscriber
	nextSub   int
}

// NewStore builds a store backed by the given provider. Missing or
// unreadable stored data yields an empty collection, never an error. A nil
// clock defaults to time.Now.
func NewStore(provider storage.Provider, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	s := &Store{
		provider: provider,
		clock:    clock,
	}
	s.loadEvents()
	return s
}

func (s *Store) loadEvents() {
	var evs []models.Event
	err := s.provider.Get(storage.KeyEvents, &evs)
	switch {
	case err == nil:
		s.events = evs
	case errors.Is(err, storage.ErrNotFound):
		// First run.
	default:
		logger.Warn("stored events unreadable, starting empty", "err", err)
	}
}

// persist mirrors the collection to storage. A failed write is logged and
// otherwise ignored: the in-memory state already reflects the mutation and
// stays authoritative.
func (s *Store) persist() {
	if err := s.provider.Save(storage.KeyEvents, s.events); err != nil {
		logger.Error("failed to persist events", err, "count", len(s.events))
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// newID returns a fresh id guaranteed not to collide with any event already
// in the collection. UUIDv7 combines a millisecond timestamp with random
// bits, so rapid successive calls stay distinct.
func (s *Store) newID() string {
	for {
		var id string
		if v7, err := uuid.NewV7(); err == nil {
			id = v7.String()
		} else {
			id = uuid.New().String()
		}
		if s.indexOf(id) == -1 {
			return id
		}
	}
}

// Add creates an event from the given input, filling defaults and assigning
// identity, and returns the stored copy.
func (s *Store) Add(input models.Event) models.Event {
	now := s.clock()
	ev := models.Event{
		ID:          s.newID(),
		Title:       input.Title,
		Date:        input.Date,
		Time:        input.Time,
		Type:        input.Type,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ev.Type == "" {
		ev.Type = models.TypeTodo
	}

	s.events = append(s.events, ev)
	s.persist()
	s.notify(Change{Action: ActionAdd, Event: &ev})
	return ev
}

// Update merges a patch over the event with the given id. Identity fields
// cannot change; UpdatedAt is always refreshed.
func (s *Store) Update(id string, patch models.EventPatch) (models.Event, error) {
	i := s.indexOf(id)
	if i == -1 {
		return models.Event{}, ErrNotFound
	}

	ev := s.events[i]
	if patch.Title != nil {
		ev.Title = *patch.Title
	}
	if patch.Date != nil {
		ev.Date = *patch.Date
	}
	if patch.Time != nil {
		ev.Time = *patch.Time
	}
	if patch.Type != nil {
		ev.Type = *patch.Type
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.Completed != nil {
		ev.Completed = *patch.Completed
	}
	ev.UpdatedAt = s.clock()

	s.events[i] = ev
	s.persist()
	s.notify(Change{Action: ActionUpdate, Event: &ev})
	return ev, nil
}

// Delete removes the event with the given id and reports whether anything
// was removed.
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i == -1 {
		return false
	}

	removed := s.events[i]
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.persist()
	s.notify(Change{Action: ActionDelete, Event: &removed})
	return true
}

// ToggleComplete flips the completion flag of the event with the given id.
func (s *Store) ToggleComplete(id string) (models.Event, error) {
	i := s.indexOf(id)
	if i == -1 {
		return models.Event{}, ErrNotFound
	}

	completed := !s.events[i].Completed
	return s.Update(id, models.EventPatch{Completed: &completed})
}

// ClearAll empties the collection.
func (s *Store) ClearAll() {
	s.events = nil
	s.persist()
	s.notify(Change{Action: ActionClear})
}

// Import appends copies of the given events with freshly assigned ids and
// timestamps, persisting once for the whole batch. A nil payload is
// rejected with ErrInvalidImport.
func (s *Store) Import(list []models.Event) ([]models.Event, error) {
	if list == nil {
		return nil, ErrInvalidImport
	}

	now := s.clock()
	imported := make([]models.Event, 0, len(list))
	for _, src := range list {
		ev := src
		ev.ID = s.newID()
		ev.CreatedAt = now
		ev.UpdatedAt = now
		if ev.Type == "" {
			ev.Type = models.TypeTodo
		}
		s.events = append(s.events, ev)
		imported = append(imported, ev)
	}

	s.persist()
	s.notify(Change{Action: ActionImport, Batch: imported})
	return imported, nil
}

// Export returns the full collection wrapped in a versioned envelope for
// round-tripping through Import.
func (s *Store) Export() models.EventExport {
	return models.EventExport{
		Events:     s.All(),
		ExportedAt: s.clock(),
		Version:    ExportVersion,
	}
}

// Get returns the event with the given id.
func (s *Store) Get(id string) (models.Event, bool) {
	i := s.indexOf(id)
	if i == -1 {
		return models.Event{}, false
	}
	return s.events[i], true
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []models.Event {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of events in the collection.
func (s *Store) Len() int {
	return len(s.events)
}

// Subscribe registers a listener for change notifications and returns a
// token for Unsubscribe.
func (s *Store) Subscribe(fn Listener) int {
	s.nextSub++
	s.listeners = append(s.listeners, subscriber{id: s.nextSub, fn: fn})
	return s.nextSub
}

// Unsubscribe removes the listener registered under the given token.
func (s *Store) Unsubscribe(token int) {
	for i, sub := range s.listeners {
		if sub.id == token {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Store) notify(c Change) {
	c.Events = s.All()
	for _, sub := range s.listeners {
		s.deliver(sub, c)
	}
}

func (s *Store) deliver(sub subscriber, c Change) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event listener panicked", fmt.Errorf("%v", r), "listener", sub.id, "action", c.Action)
		}
	}()
	sub.fn(c)
}

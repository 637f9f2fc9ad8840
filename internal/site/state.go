// Package site holds the loaded feeds and the pure logic that turns them
// into what a page shows: the content map, the upcoming events, category
// views and detail records.
package site

import (
	"maps"
	"slices"
	"sync"
	"time"

	"visitavigliano/internal/model"
)

// State is the application state shared between the load cycle and page
// requests. The loader is the only writer; requests take a Snapshot.
type State struct {
	mu sync.RWMutex

	contentRows []model.ContentEntry
	content     map[string]model.ContentEntry
	events      []model.Event

	eventsLoaded bool
	contentErr   error
	eventsErr    error

	contentAt time.Time
	eventsAt  time.Time
}

// NewState returns an empty State: no content, no events, nothing loaded.
func NewState() *State {
	return &State{
		content: map[string]model.ContentEntry{},
	}
}

// SetContent replaces the content rows, and the map derived from them,
// after a successful load.
func (s *State) SetContent(rows []model.ContentEntry, at time.Time) {
	content := ContentMap(rows)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentRows = rows
	s.content = content
	s.contentErr = nil
	s.contentAt = at
}

// SetContentError records a failed content load; the previous map stays.
func (s *State) SetContentError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentErr = err
}

// SetEvents replaces the event list after a successful load.
func (s *State) SetEvents(events []model.Event, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.eventsLoaded = true
	s.eventsErr = nil
	s.eventsAt = at
}

// SetEventsError records a failed events load; the previous list stays.
func (s *State) SetEventsError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsErr = err
}

// Snapshot returns a consistent copy for one render pass.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ContentRows:  slices.Clone(s.contentRows),
		Content:      maps.Clone(s.content),
		Events:       slices.Clone(s.events),
		EventsLoaded: s.eventsLoaded,
		ContentErr:   s.contentErr,
		EventsErr:    s.eventsErr,
		ContentAt:    s.contentAt,
		EventsAt:     s.eventsAt,
	}
}

// Snapshot is an immutable view of State.
type Snapshot struct {
	// ContentRows keeps feed order and repeated IDs for page binding;
	// Content is the last-write-wins lookup.
	ContentRows []model.ContentEntry
	Content     map[string]model.ContentEntry
	Events      []model.Event

	// EventsLoaded is false until the first successful events load.
	EventsLoaded bool
	// ContentErr is the last content load failure, cleared by a success.
	// While set, Content is the previous good load.
	ContentErr error
	EventsErr  error

	ContentAt time.Time
	EventsAt  time.Time
}

// EventsUnavailable reports whether the page should show the events
// error placeholder: the last load failed and no earlier load succeeded.
func (s Snapshot) EventsUnavailable() bool {
	return s.EventsErr != nil && !s.EventsLoaded
}

// ContentStale reports whether the last content load failed.
func (s Snapshot) ContentStale() bool {
	return s.ContentErr != nil
}

// Event looks up an event by its ID.
func (s Snapshot) Event(id string) (model.Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}

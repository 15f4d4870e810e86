package event

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/klokku/eventboard/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Store owns the event collection and the active category filter.
// Mutations never fail: edits and deletes of unknown ids are no-ops and
// report applied == false.
type Store interface {
	List(ctx context.Context) []Event
	All(ctx context.Context) []Event
	Get(ctx context.Context, id int) (Event, error)
	Add(ctx context.Context, draft Draft) (Event, Snapshot)
	Edit(ctx context.Context, updated Event) (snapshot Snapshot, applied bool)
	Delete(ctx context.Context, id int) (snapshot Snapshot, applied bool)
	SetFilter(ctx context.Context, category string) Snapshot
	Filter(ctx context.Context) string
	Categories(ctx context.Context) []string
}

type Options struct {
	IdStrategy IdStrategy
	// Categories are always offered by the category selector, before any
	// category that only appears on stored events.
	Categories []string
	Seed       []Event
}

type StoreImpl struct {
	// notifyMu is held from a mutation until its observers are notified,
	// so deliveries follow mutation order.
	notifyMu   sync.Mutex
	mu         sync.RWMutex
	events     []Event
	filter     string
	ids        idAllocator
	categories []string
	eventBus   *event_bus.EventBus
}

func NewStore(eventBus *event_bus.EventBus, opts Options) *StoreImpl {
	events := make([]Event, len(opts.Seed))
	copy(events, opts.Seed)
	return &StoreImpl{
		events:     events,
		filter:     AllCategories,
		ids:        newIdAllocator(opts.IdStrategy, opts.Seed),
		categories: opts.Categories,
		eventBus:   eventBus,
	}
}

func (s *StoreImpl) List(ctx context.Context) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return applyFilter(s.events, s.filter)
}

func (s *StoreImpl) All(ctx context.Context) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyEvents()
}

// Get looks the event up in the unfiltered collection, so events hidden by
// the active filter stay reachable.
func (s *StoreImpl) Get(ctx context.Context, id int) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx != -1 {
		return s.events[idx], nil
	}
	return Event{}, fmt.Errorf("event %d: %w", id, ErrEventNotFound)
}

func (s *StoreImpl) Add(ctx context.Context, draft Draft) (Event, Snapshot) {
	var created Event
	snapshot, _ := s.commit(ctx, "add", func() (int, bool) {
		created = Event{
			Id:       s.ids.next(s.events),
			Date:     draft.Date,
			Title:    draft.Title,
			Category: draft.Category,
		}
		s.events = append(s.events, created)
		log.Debugf("event %d added (%s)", created.Id, created.Title)
		return created.Id, true
	})
	return created, snapshot
}

func (s *StoreImpl) Edit(ctx context.Context, updated Event) (Snapshot, bool) {
	return s.commit(ctx, "edit", func() (int, bool) {
		idx := s.indexOf(updated.Id)
		if idx == -1 {
			log.Debugf("edit of unknown event %d ignored", updated.Id)
			return updated.Id, false
		}
		events := s.copyEvents()
		events[idx] = updated
		s.events = events
		log.Debugf("event %d edited", updated.Id)
		return updated.Id, true
	})
}

func (s *StoreImpl) Delete(ctx context.Context, id int) (Snapshot, bool) {
	return s.commit(ctx, "delete", func() (int, bool) {
		idx := s.indexOf(id)
		if idx == -1 {
			log.Debugf("delete of unknown event %d ignored", id)
			return id, false
		}
		events := make([]Event, 0, len(s.events)-1)
		events = append(events, s.events[:idx]...)
		events = append(events, s.events[idx+1:]...)
		s.events = events
		log.Debugf("event %d deleted", id)
		return id, true
	})
}

// SetFilter replaces the active filter. A blank category means AllCategories.
func (s *StoreImpl) SetFilter(ctx context.Context, category string) Snapshot {
	if strings.TrimSpace(category) == "" {
		category = AllCategories
	}
	snapshot, _ := s.commit(ctx, "filter", func() (int, bool) {
		s.filter = category
		log.Debugf("filter set to %q", category)
		return 0, true
	})
	return snapshot
}

func (s *StoreImpl) Filter(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Categories returns the configured categories followed by any other category
// used by a stored event, without duplicates.
func (s *StoreImpl) Categories(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	result := make([]string, 0, len(s.categories))
	add := func(c string) {
		if c == "" || c == AllCategories || seen[c] {
			return
		}
		seen[c] = true
		result = append(result, c)
	}
	for _, c := range s.categories {
		add(c)
	}
	for _, e := range s.events {
		add(e.Category)
	}
	return result
}

func (s *StoreImpl) indexOf(id int) int {
	for idx, e := range s.events {
		if e.Id == id {
			return idx
		}
	}
	return -1
}

func (s *StoreImpl) copyEvents() []Event {
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

// snapshot must be called with the lock held.
func (s *StoreImpl) snapshot() Snapshot {
	return Snapshot{Events: s.copyEvents(), Filter: s.filter}
}

// commit runs change under the write lock and publishes the resulting snapshot
// when change reports it was applied.
func (s *StoreImpl) commit(ctx context.Context, operation string, change func() (id int, applied bool)) (Snapshot, bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id, applied := change()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if applied {
		s.publish(ctx, operation, id, snapshot)
	}
	return snapshot, applied
}

// publish ignores cancellation of ctx: a mutation that was applied is always announced.
func (s *StoreImpl) publish(ctx context.Context, operation string, id int, snapshot Snapshot) {
	if s.eventBus == nil {
		return
	}
	records := make([]event_bus.EventRecord, 0, len(snapshot.Events))
	for _, e := range snapshot.Events {
		records = append(records, event_bus.EventRecord{Id: e.Id, Date: e.Date, Title: e.Title, Category: e.Category})
	}
	err := s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), event_bus.StoreChangedType, event_bus.StoreChanged{
		Operation: operation,
		EventId:   id,
		Events:    records,
		Filter:    snapshot.Filter,
	}))
	if err != nil {
		log.Errorf("failed to notify store observers: %v", err)
	}
}

// SnapshotFromChange rebuilds a Snapshot from a bus notification.
func SnapshotFromChange(change event_bus.StoreChanged) Snapshot {
	events := make([]Event, 0, len(change.Events))
	for _, r := range change.Events {
		events = append(events, Event{Id: r.Id, Date: r.Date, Title: r.Title, Category: r.Category})
	}
	return Snapshot{Events: events, Filter: change.Filter}
}

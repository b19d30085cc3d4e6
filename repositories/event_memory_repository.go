package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/clock"

	"github.com/google/uuid"
)

type memoryEntry struct {
	event *models.Event
	seq   uint64
}

// EventMemoryRepository veritabanı olmadan çalışmak ve testler için süreç içi depo.
type EventMemoryRepository struct {
	mu      sync.RWMutex
	clock   clock.Clock
	entries map[string]*memoryEntry
	seq     uint64
}

func NewEventMemoryRepository(clk clock.Clock) *EventMemoryRepository {
	if clk == nil {
		clk = clock.Real{}
	}
	return &EventMemoryRepository{clock: clk, entries: make(map[string]*memoryEntry)}
}

func (r *EventMemoryRepository) Create(_ context.Context, event *models.Event) (*models.Event, error) {
	stored := event.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.clock.Now().UTC()
	stored.IsDeleted = false
	stored.DeletedAt = nil

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.entries[stored.ID] = &memoryEntry{event: stored, seq: r.seq}
	return stored.Clone(), nil
}

func (r *EventMemoryRepository) FindByID(_ context.Context, id string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry.event.Clone(), nil
}

func (r *EventMemoryRepository) ListActive(_ context.Context) ([]*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*memoryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		if !entry.event.IsDeleted {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.event.CreatedAt.Equal(b.event.CreatedAt) {
			return a.event.CreatedAt.After(b.event.CreatedAt)
		}
		return a.seq > b.seq
	})
	return cloneEntries(matched), nil
}

func (r *EventMemoryRepository) ListDeletedWithin(_ context.Context, window time.Duration) ([]*models.Event, error) {
	since := r.clock.Now().UTC().Add(-window)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*memoryEntry, 0)
	for _, entry := range r.entries {
		e := entry.event
		if e.IsDeleted && e.DeletedAt != nil && !e.DeletedAt.Before(since) {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.event.DeletedAt.Equal(*b.event.DeletedAt) {
			return a.event.DeletedAt.After(*b.event.DeletedAt)
		}
		return a.seq > b.seq
	})
	return cloneEntries(matched), nil
}

func (r *EventMemoryRepository) Update(_ context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok || entry.event.IsDeleted {
		return nil, ErrNotFound
	}
	next := entry.event.Clone()
	patch.ApplyTo(next)
	entry.event = next
	return next.Clone(), nil
}

func (r *EventMemoryRepository) SoftDelete(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.event.IsDeleted {
		return nil, ErrAlreadyDeleted
	}
	now := r.clock.Now().UTC()
	next := entry.event.Clone()
	next.IsDeleted = true
	next.DeletedAt = &now
	entry.event = next
	return next.Clone(), nil
}

func (r *EventMemoryRepository) Recover(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := checkRecoverable(entry.event, r.clock.Now().UTC()); err != nil {
		return nil, err
	}
	next := entry.event.Clone()
	next.IsDeleted = false
	next.DeletedAt = nil
	entry.event = next
	return next.Clone(), nil
}

func (r *EventMemoryRepository) PurgeExpired(_ context.Context, window time.Duration) (int64, error) {
	cutoff := purgeCutoff(r.clock.Now().UTC(), window)

	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, entry := range r.entries {
		e := entry.event
		if e.IsDeleted && e.DeletedAt != nil && e.DeletedAt.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed, nil
}

func cloneEntries(entries []*memoryEntry) []*models.Event {
	events := make([]*models.Event, 0, len(entries))
	for _, entry := range entries {
		events = append(events, entry.event.Clone())
	}
	return events
}

var _ IEventRepository = (*EventMemoryRepository)(nil)

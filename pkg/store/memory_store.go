package store

import (
	"context"
	"time"
)

// DefaultCapacity is the number of form instances a MemoryStore keeps
// before evicting the least recently used one.
const DefaultCapacity = 10_000

type memoryEntry struct {
	record    *Record
	expiresAt time.Time
}

// MemoryStore implements Store on a bounded in-process LRU cache.
type MemoryStore struct {
	cache *lruCache[string, memoryEntry]
	ttl   time.Duration
	now   func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTTL expires records that have not been saved for d. Zero disables
// expiry.
func WithTTL(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.ttl = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store holding at most capacity
// records. A non-positive capacity falls back to DefaultCapacity.
func NewMemoryStore(capacity int, opts ...MemoryOption) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &MemoryStore{
		cache: newLRUCache[string, memoryEntry](capacity),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a copy of record.
func (s *MemoryStore) Save(_ context.Context, record *Record) error {
	if err := validate(record); err != nil {
		return err
	}

	entry := memoryEntry{record: record.clone()}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.cache.put(record.ID, entry)
	return nil
}

// Get returns a copy of the record stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	entry, ok := s.cache.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.cache.remove(id)
		return nil, ErrNotFound
	}
	return entry.record.clone(), nil
}

// Delete removes the record stored under id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if !s.cache.remove(id) {
		return ErrNotFound
	}
	return nil
}

// Len returns the number of records held, expired ones included.
func (s *MemoryStore) Len() int {
	return s.cache.len()
}

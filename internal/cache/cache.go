package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// entry pairs a cached value with the time it was stored.
// Entries are owned by the store and never handed out to callers.
type entry struct {
	value    any
	cachedAt time.Time
}

// Store is a mutex-guarded in-memory cache with a fixed per-entry TTL.
// Expiry is lazy: a stale entry is dropped by the Get that finds it,
// there is no background sweeper. Concurrent misses for the same key may
// each trigger an upstream fetch; the last Put wins.
type Store struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a Store with the given TTL. A nil clock selects the real
// clock; tests pass a fake to control expiry.
func New(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key, if present and fresh.
// A stale entry is evicted and reported absent.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.clock.Since(e.cachedAt) >= s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, overwriting any previous entry.
func (s *Store) Put(key string, value any) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, cachedAt: s.clock.Now()}
	s.mu.Unlock()
}

// Len reports the number of entries currently held, stale or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

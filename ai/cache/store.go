// Package cache provides the short-lived response cache for the orchestrator:
// a fingerprint deriver over bounded request fields and a TTL-bounded store
// with amortized sweeping.
package cache

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a cached response stays servable.
const DefaultTTL = 3 * time.Minute

// sweepInterval is the number of writes between housekeeping passes.
// Sweeping on every write would be wasted work for a cache this short-lived;
// stale entries are already invisible to Get.
const sweepInterval = 10

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Store is a time-bounded key/value map. Entries are immutable once written
// and expire after the TTL; expired entries are removed opportunistically
// every sweepInterval writes rather than eagerly per read. There is no size
// bound: growth between sweeps is accepted given the short TTL.
//
// Safe for concurrent use. Writers racing on the same key last-write-win,
// which is harmless because equal fingerprints carry equivalent values.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	writes  int

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewStore creates a store with the given TTL. Non-positive TTL falls back
// to DefaultTTL.
func NewStore[V any](ttl time.Duration) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key if present and fresh. A stale entry is a
// miss; it is left in place for the next sweep.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if s.now().Sub(e.createdAt) >= s.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set inserts or overwrites the value for key. Every sweepInterval-th write
// triggers a sweep of all expired entries.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[V]{value: value, createdAt: s.now()}

	s.writes++
	if s.writes%sweepInterval == 0 {
		s.sweep()
	}
}

// sweep removes all expired entries. Must be called with the lock held.
func (s *Store[V]) sweep() {
	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if now.Sub(e.createdAt) >= s.ttl {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("cache: swept expired entries", "removed", removed, "remaining", len(s.entries))
	}
}

// Len returns the number of entries currently held, fresh or not.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
}

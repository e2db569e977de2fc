package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bassista/go_mart/internal/logger"
	"github.com/bassista/go_mart/internal/metric"
)

// entry is one cached payload. A zero expiresAt means the entry never expires.
type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Store is an in-memory TTL key-value cache for serialized responses.
// It is content-agnostic: values are opaque blobs, marshaling is the
// caller's responsibility on both sides.
//
// Expired entries are treated as absent on read; physical removal happens
// in the janitor sweep so reads only ever take the shared lock.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration // zero means entries never expire
}

// NewStore creates an empty cache store. defaultTTL applies to Set;
// a zero defaultTTL keeps entries until explicitly invalidated.
func NewStore(defaultTTL time.Duration) *Store {
	return &Store{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
	}
}

// Has reports whether key holds a live entry.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return ok && !e.expired(time.Now())
}

// Get returns the payload stored under key. An absent or expired key is a
// miss, never an error. The returned slice is a copy; callers may retain it.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		metric.CacheMisses.Inc()
		return nil, false
	}

	metric.CacheHits.Inc()
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set stores value under key with the default TTL. A zero default keeps the
// entry until it is invalidated.
func (s *Store) Set(key string, value []byte) {
	var expiresAt time.Time
	if s.defaultTTL > 0 {
		expiresAt = time.Now().Add(s.defaultTTL)
	}
	s.put(key, value, expiresAt)
}

// SetTTL stores value under key, expiring after ttl. An explicit zero ttl
// expires on arrival: nothing is stored and any previous entry under key is
// dropped, so the next Get is a miss. A negative ttl means the entry never
// expires.
func (s *Store) SetTTL(key string, value []byte, ttl time.Duration) {
	if ttl == 0 {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	s.put(key, value, expiresAt)
}

func (s *Store) put(key string, value []byte, expiresAt time.Time) {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.entries[key] = entry{value: stored, expiresAt: expiresAt}
	s.mu.Unlock()
}

// Del removes the given keys and returns how many were present. Absent keys
// are a no-op. The exclusive lock is held for the whole batch so readers
// never observe a partially purged key family.
func (s *Store) Del(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range keys {
		if _, ok := s.entries[key]; ok {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		metric.CacheInvalidations.Add(float64(removed))
	}
	return removed
}

// Len returns the number of stored entries, including not-yet-swept expired ones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartJanitor runs a goroutine that sweeps expired entries on the given
// interval until ctx is canceled. Returns a channel that is closed when the
// janitor has stopped.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("cache").Debugf("starting cache janitor with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("cache").Info("cache janitor stopped")
				return
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					logger.WithComponent("cache").Debugf("janitor removed %d expired entries", n)
				}
			}
		}
	}()
	return done
}

// sweep removes every expired entry and returns the count.
func (s *Store) sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		metric.CacheEvictions.Add(float64(removed))
	}
	return removed
}

package cache

import (
	"sync"
	"time"
)

type entry struct {
	b       []byte
	created time.Time
	ttl     time.Duration
}

// MemoryStore is an in-process store with per-entry TTL. Stale entries are
// treated as absent but never evicted; the next SetBytes for the same key
// overwrites them. No background sweeping.
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

// NewMemoryStore creates a store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates a store with an injected clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{m: make(map[string]entry), now: now}
}

func (s *MemoryStore) GetBytes(key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.ttl > 0 && s.now().Sub(e.created) > e.ttl {
		return nil, false, nil
	}
	return e.b, true, nil
}

func (s *MemoryStore) SetBytes(key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.m[key] = entry{b: value, created: s.now(), ttl: ttl}
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, stale included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

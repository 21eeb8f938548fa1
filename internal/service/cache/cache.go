package cache

import (
	"encoding/json"
	"time"
)

// Cache kinds. Keys are (symbol, kind) pairs.
const (
	KindStockInfo      = "stock_info"
	KindRecommendation = "recommendation"
)

// Store is a minimal cache API storing raw bytes with TTL.
type Store interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// Key builds the cache key for a symbol and kind.
func Key(symbol, kind string) string {
	return kind + ":" + symbol
}

// Cache wraps a Store with a fixed TTL and JSON codec.
type Cache struct {
	store Store
	ttl   time.Duration
}

// New creates a Cache over the given store.
func New(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{store: store, ttl: ttl}
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Put stores a value under (symbol, kind). Encoding errors are returned so
// callers can log them; a failed put never fails the request.
func Put(c *Cache, symbol, kind string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.SetBytes(Key(symbol, kind), b, c.ttl)
}

// Get returns the cached value for (symbol, kind), or ok=false on miss.
// Stale entries read as misses.
func Get[T any](c *Cache, symbol, kind string) (*T, bool) {
	b, ok, err := c.store.GetBytes(Key(symbol, kind))
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

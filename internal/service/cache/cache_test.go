package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPutThenGet(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New(NewMemoryStoreWithClock(clk.Now), 5*time.Minute)

	type payload struct {
		Price float64 `json:"price"`
	}
	if err := Put(c, "AAPL", KindStockInfo, payload{Price: 187.5}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := Get[payload](c, "AAPL", KindStockInfo)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Price != 187.5 {
		t.Fatalf("price = %v, want 187.5", got.Price)
	}
}

func TestGetAfterTTLMisses(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStoreWithClock(clk.Now)
	c := New(store, 5*time.Minute)

	if err := Put(c, "MSFT", KindRecommendation, map[string]string{"action": "buy"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	clk.Advance(5*time.Minute + time.Second)

	if _, ok := Get[map[string]string](c, "MSFT", KindRecommendation); ok {
		t.Fatal("expected miss after ttl")
	}

	// stale entries are not evicted on read; the next put overwrites in place
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}

	if err := Put(c, "MSFT", KindRecommendation, map[string]string{"action": "hold"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok := Get[map[string]string](c, "MSFT", KindRecommendation)
	if !ok || (*got)["action"] != "hold" {
		t.Fatalf("got %v ok=%v, want overwrite visible", got, ok)
	}
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}
}

func TestKindsDoNotCollide(t *testing.T) {
	c := New(NewMemoryStore(), time.Minute)

	if err := Put(c, "TSLA", KindStockInfo, 1); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := Get[int](c, "TSLA", KindRecommendation); ok {
		t.Fatal("kinds must be keyed separately")
	}
}

package usecase

import (
	"context"
	"testing"

	"FinSight/internal/domain/models"
)

func TestSearchStocks(t *testing.T) {
	engine := newTestEngine(t, &fakeMarket{}, &fakeNews{})

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"symbol prefix", "AA", 10, []string{"AAPL"}},
		{"name substring", "apple", 10, []string{"AAPL"}},
		{"single letter matches several", "V", 10, []string{"V", "NVDA"}},
		{"limit applies", "a", 2, []string{"AAPL", "AMZN"}},
		{"no match", "ZZZZ", 10, nil},
		{"empty query", "", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.SearchStocks(context.Background(), tt.query, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want symbols %v", got, tt.want)
			}
			for i, r := range got {
				if r.Symbol != tt.want[i] {
					t.Fatalf("got %v, want symbols %v", got, tt.want)
				}
			}
		})
	}
}

func TestQuoteIsCached(t *testing.T) {
	market := &fakeMarket{quote: &models.StockInfo{Symbol: "AAPL", Name: "Apple Inc.", Price: 187.5}}
	engine := newTestEngine(t, market, &fakeNews{})

	first, err := engine.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("first: %v", err)
	}

	market.quoteErr = models.ErrDataUnavailable
	second, err := engine.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("second: %v (should be served from cache)", err)
	}
	if first.Price != second.Price {
		t.Fatalf("prices differ: %v vs %v", first.Price, second.Price)
	}
}

func TestMarketOverviewSkipsFailedSymbols(t *testing.T) {
	market := &fakeMarket{quoteErr: models.ErrDataUnavailable}
	engine := newTestEngine(t, market, &fakeNews{})

	overview := engine.GetMarketOverview(context.Background(), []string{"^GSPC", "^DJI"})
	if len(overview) != 0 {
		t.Fatalf("overview = %v, want empty when all symbols fail", overview)
	}
}

func TestMarketOverviewNamesIndices(t *testing.T) {
	market := &fakeMarket{quote: &models.StockInfo{Price: 5000, Change: 12, ChangePercent: 0.24}}
	engine := newTestEngine(t, market, &fakeNews{})

	overview := engine.GetMarketOverview(context.Background(), []string{"^GSPC"})
	q, ok := overview["^GSPC"]
	if !ok {
		t.Fatalf("overview = %v, want ^GSPC present", overview)
	}
	if q.Name != "S&P 500" {
		t.Fatalf("name = %q, want S&P 500", q.Name)
	}
	if q.Price != 5000 {
		t.Fatalf("price = %v, want 5000", q.Price)
	}
}

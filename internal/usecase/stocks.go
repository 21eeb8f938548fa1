package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"FinSight/internal/domain/models"
	"FinSight/internal/service/cache"
	"FinSight/pkg/logger"
)

const overviewConcurrency = 4

// GetQuote returns the cached or freshly fetched quote view for symbol.
func (e *Engine) GetQuote(ctx context.Context, symbol string) (*models.StockInfo, error) {
	if info, ok := cache.Get[models.StockInfo](e.cache, symbol, cache.KindStockInfo); ok {
		e.metrics.RecordCacheLookup(cache.KindStockInfo, true)
		return info, nil
	}
	e.metrics.RecordCacheLookup(cache.KindStockInfo, false)

	info, err := e.market.FetchQuote(ctx, symbol)
	if err != nil {
		e.metrics.RecordError("fetch_quote")
		return nil, err
	}
	if info.Name == "" {
		if entry, ok := catalogLookup(symbol); ok {
			info.Name = entry.Name
		}
	}
	// the quote endpoint omits valuation fields for some symbols
	if !info.PERatio.Valid || !info.DividendYield.Valid {
		if fund, ferr := e.market.FetchFundamentals(ctx, symbol); ferr == nil {
			if !info.PERatio.Valid {
				info.PERatio = fund.TrailingPE
			}
			if !info.DividendYield.Valid {
				info.DividendYield = fund.DividendYield
			}
			if !info.MarketCap.Valid {
				info.MarketCap = fund.MarketCap
			}
			if info.Name == "" {
				info.Name = fund.Name
			}
			if info.Sector == "" {
				info.Sector = fund.Sector
			}
		}
	}

	if err := cache.Put(e.cache, symbol, cache.KindStockInfo, info); err != nil {
		e.logger.Warn("quote cache put failed",
			logger.String("symbol", symbol),
			logger.Error(err))
	}
	return info, nil
}

// GetMarketOverview fetches the index quotes with bounded fan-out. Symbols
// that fail are skipped; one slow index never blocks the rest past the
// caller's deadline.
func (e *Engine) GetMarketOverview(ctx context.Context, symbols []string) map[string]models.IndexQuote {
	type result struct {
		symbol string
		quote  models.IndexQuote
		ok     bool
	}

	sem := make(chan struct{}, overviewConcurrency)
	results := make(chan result, len(symbols))
	var wg sync.WaitGroup

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			info, err := e.GetQuote(ctx, symbol)
			if err != nil {
				e.logger.Warn("overview quote failed",
					logger.String("symbol", symbol),
					logger.Error(err))
				results <- result{symbol: symbol}
				return
			}
			results <- result{
				symbol: symbol,
				quote: models.IndexQuote{
					Symbol:        symbol,
					Name:          indexName(symbol, info.Name),
					Price:         info.Price,
					Change:        info.Change,
					ChangePercent: info.ChangePercent,
				},
				ok: true,
			}
		}(symbol)
	}
	wg.Wait()
	close(results)

	overview := make(map[string]models.IndexQuote, len(symbols))
	for r := range results {
		if r.ok {
			overview[r.symbol] = r.quote
		}
	}
	return overview
}

// SearchStocks matches the query against the static symbol catalog.
func (e *Engine) SearchStocks(_ context.Context, query string, limit int) []models.SearchResult {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	var prefix, contains []models.SearchResult
	for _, entry := range catalog {
		switch {
		case strings.HasPrefix(entry.Symbol, q):
			prefix = append(prefix, entry)
		case strings.Contains(strings.ToUpper(entry.Name), q):
			contains = append(contains, entry)
		}
	}
	sort.Slice(prefix, func(i, j int) bool { return prefix[i].Symbol < prefix[j].Symbol })
	sort.Slice(contains, func(i, j int) bool { return contains[i].Symbol < contains[j].Symbol })

	out := append(prefix, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

package usecase

import "FinSight/internal/domain/models"

// catalog is the static symbol universe for search. A proper symbol
// directory would live behind the data provider; the lookup endpoint only
// needs the liquid names.
var catalog = []models.SearchResult{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "META", Name: "Meta Platforms Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
	{Symbol: "JNJ", Name: "Johnson & Johnson"},
	{Symbol: "V", Name: "Visa Inc."},
}

func catalogLookup(symbol string) (models.SearchResult, bool) {
	for _, entry := range catalog {
		if entry.Symbol == symbol {
			return entry, true
		}
	}
	return models.SearchResult{}, false
}

// indexNames maps the overview tickers to display names.
var indexNames = map[string]string{
	"^GSPC": "S&P 500",
	"^DJI":  "Dow Jones Industrial Average",
	"^IXIC": "NASDAQ Composite",
	"^VIX":  "CBOE Volatility Index",
}

func indexName(symbol, fallback string) string {
	if name, ok := indexNames[symbol]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return symbol
}

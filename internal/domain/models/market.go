package models

import "time"

// Bar represents one OHLCV record. Histories are ordered ascending by
// timestamp with no duplicates and are immutable once fetched.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Fundamentals is a partial snapshot; missing fields suppress only the
// scoring rules that depend on them.
type Fundamentals struct {
	TrailingPE    Float
	DividendYield Float
	MarketCap     Float
	PreviousClose Float
	Name          string
	Sector        string
}

// StockInfo is the quote view exposed to callers.
type StockInfo struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	MarketCap     Float   `json:"market_cap"`
	Volume        float64 `json:"volume"`
	PERatio       Float   `json:"pe_ratio"`
	DividendYield Float   `json:"dividend_yield"`
	Sector        string  `json:"sector,omitempty"`
}

// IndexQuote is one entry of the market overview.
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// SearchResult is a symbol lookup match.
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

package repository

import (
	"context"

	"FinSight/internal/domain/models"
)

// MarketData fetches price histories, fundamentals and quotes from the
// external data provider. A failed fetch surfaces as an error; the core never
// retries internally.
type MarketData interface {
	FetchHistory(ctx context.Context, symbol, period string) ([]models.Bar, error)
	FetchFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
	FetchQuote(ctx context.Context, symbol string) (*models.StockInfo, error)
}

// NewsProvider fetches headlines and per-article sentiment labels. Sentiment
// returns an empty slice when nothing is known, never an error.
type NewsProvider interface {
	FetchArticles(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
	SymbolSentiment(ctx context.Context, symbol string, limit int) []models.Sentiment
}

// BarArchive stores fetched histories off the request path.
type BarArchive interface {
	Init(ctx context.Context) error
	StoreBars(ctx context.Context, symbol string, bars []models.Bar) error
	Health(ctx context.Context) error
	Close() error
}

// EventPublisher emits recommendation events.
type EventPublisher interface {
	PublishRecommendation(ctx context.Context, event *models.RecommendationEvent) error
	Close() error
}

// Metrics records engine-level observations.
type Metrics interface {
	RecordRecommendation(symbol, action string)
	RecordCacheLookup(kind string, hit bool)
	RecordError(kind string)
	RecordLastScore(symbol string, score float64)
	RecordLatency(op string, seconds float64)
}

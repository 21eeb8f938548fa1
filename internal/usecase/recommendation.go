package usecase

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/service/cache"
	"FinSight/pkg/logger"
	"FinSight/pkg/queue"
)

// Engine composes the per-symbol analysis: read-through cache, indicator
// math, sentiment aggregation, scoring and estimation. Each request is
// independent; the cache is the only shared mutable state.
type Engine struct {
	market    domrepo.MarketData
	news      domrepo.NewsProvider
	calc      domsvc.IndicatorCalculator
	agg       domsvc.SentimentAggregator
	scorer    domsvc.RecommendationScorer
	est       domsvc.TargetEstimator
	cache     *cache.Cache
	queue     queue.QueueService
	metrics   domrepo.Metrics
	logger    *logger.Logger
	newsLimit int
	now       func() time.Time
}

type EngineOption func(*Engine)

// WithQueue attaches the background queue for archive and event jobs.
func WithQueue(q queue.QueueService) EngineOption {
	return func(e *Engine) { e.queue = q }
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(
	market domrepo.MarketData,
	news domrepo.NewsProvider,
	calc domsvc.IndicatorCalculator,
	agg domsvc.SentimentAggregator,
	scorer domsvc.RecommendationScorer,
	est domsvc.TargetEstimator,
	c *cache.Cache,
	metrics domrepo.Metrics,
	lgr *logger.Logger,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		market:    market,
		news:      news,
		calc:      calc,
		agg:       agg,
		scorer:    scorer,
		est:       est,
		cache:     c,
		metrics:   metrics,
		logger:    lgr,
		newsLimit: 10,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetRecommendation returns the cached or freshly computed recommendation
// for symbol. Empty history surfaces as ErrInsufficientData, never as a
// defaulted hold.
func (e *Engine) GetRecommendation(ctx context.Context, symbol string) (*models.Recommendation, error) {
	start := e.now()

	if rec, ok := cache.Get[models.Recommendation](e.cache, symbol, cache.KindRecommendation); ok {
		e.metrics.RecordCacheLookup(cache.KindRecommendation, true)
		return rec, nil
	}
	e.metrics.RecordCacheLookup(cache.KindRecommendation, false)

	bars, err := e.market.FetchHistory(ctx, symbol, "")
	if err != nil {
		e.metrics.RecordError("fetch_history")
		return nil, err
	}
	if len(bars) == 0 {
		e.metrics.RecordError("empty_history")
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrInsufficientData)
	}
	price := bars[len(bars)-1].Close

	// a missing snapshot degrades only the P/E rules
	fund, err := e.market.FetchFundamentals(ctx, symbol)
	if err != nil {
		e.logger.Warn("fundamentals unavailable, P/E rules skipped",
			logger.String("symbol", symbol),
			logger.Error(err))
		fund = nil
	}

	indicators := e.calc.Compute(bars)
	sentiment := e.agg.Aggregate(e.news.SymbolSentiment(ctx, symbol, e.newsLimit))

	scored, err := e.scorer.Score(price, indicators, sentiment, fund)
	if err != nil {
		e.metrics.RecordError("score")
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	rec := &models.Recommendation{
		Symbol:        symbol,
		Action:        scored.Action,
		Score:         scored.Score,
		Confidence:    scored.Confidence,
		Reasoning:     scored.Reasoning,
		CurrentPrice:  price,
		PriceTarget:   e.est.PriceTarget(price, indicators),
		Risk:          e.est.Risk(bars),
		NewsSentiment: sentiment,
		GeneratedAt:   e.now().UTC(),
	}

	if err := cache.Put(e.cache, symbol, cache.KindRecommendation, rec); err != nil {
		e.logger.Warn("recommendation cache put failed",
			logger.String("symbol", symbol),
			logger.Error(err))
	}

	e.metrics.RecordRecommendation(symbol, string(rec.Action))
	e.metrics.RecordLastScore(symbol, float64(rec.Score))
	e.metrics.RecordLatency("recommendation", e.now().Sub(start).Seconds())

	e.enqueueFollowups(ctx, symbol, bars, rec)

	e.logger.Info("recommendation generated",
		logger.String("symbol", symbol),
		logger.String("action", string(rec.Action)),
		logger.Int("score", rec.Score),
		logger.Float64("confidence", rec.Confidence),
		logger.String("risk", string(rec.Risk.Level)))
	return rec, nil
}

// enqueueFollowups hands the history to the archive job and the event to the
// publisher job. Both are best-effort; a full queue only logs.
func (e *Engine) enqueueFollowups(ctx context.Context, symbol string, bars []models.Bar, rec *models.Recommendation) {
	if e.queue == nil {
		return
	}
	if err := e.queue.PublishMessage(ctx, TypeArchiveBars, &ArchiveBarsPayload{Symbol: symbol, Bars: bars}); err != nil {
		e.logger.Warn("archive enqueue failed", logger.String("symbol", symbol), logger.Error(err))
	}
	event := &models.RecommendationEvent{
		Symbol:        rec.Symbol,
		Action:        rec.Action,
		Score:         rec.Score,
		Confidence:    rec.Confidence,
		CurrentPrice:  rec.CurrentPrice,
		PriceTarget:   rec.PriceTarget,
		RiskLevel:     rec.Risk.Level,
		NewsSentiment: rec.NewsSentiment,
		GeneratedAt:   rec.GeneratedAt,
	}
	if err := e.queue.PublishMessage(ctx, TypePublishRecommendation, event); err != nil {
		e.logger.Warn("event enqueue failed", logger.String("symbol", symbol), logger.Error(err))
	}
}

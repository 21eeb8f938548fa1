package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FinSight/internal/domain/models"
	"FinSight/internal/service/analysis"
	"FinSight/internal/service/cache"
	"FinSight/pkg/logger"
)

type fakeMarket struct {
	bars      []models.Bar
	fund      *models.Fundamentals
	quote     *models.StockInfo
	histErr   error
	quoteErr  error
	histCalls int
}

func (f *fakeMarket) FetchHistory(_ context.Context, _, _ string) ([]models.Bar, error) {
	f.histCalls++
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.bars, nil
}

func (f *fakeMarket) FetchFundamentals(context.Context, string) (*models.Fundamentals, error) {
	if f.fund == nil {
		return nil, models.ErrDataUnavailable
	}
	return f.fund, nil
}

func (f *fakeMarket) FetchQuote(context.Context, string) (*models.StockInfo, error) {
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quote, nil
}

type fakeNews struct {
	labels []models.Sentiment
}

func (f *fakeNews) FetchArticles(context.Context, string, int) ([]models.NewsArticle, error) {
	return nil, nil
}

func (f *fakeNews) SymbolSentiment(context.Context, string, int) []models.Sentiment {
	return f.labels
}

type nopMetrics struct{}

func (nopMetrics) RecordRecommendation(string, string) {}
func (nopMetrics) RecordCacheLookup(string, bool)      {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordLastScore(string, float64)     {}
func (nopMetrics) RecordLatency(string, float64)       {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return lgr
}

func newTestEngine(t *testing.T, market *fakeMarket, news *fakeNews) *Engine {
	t.Helper()
	return NewEngine(
		market,
		news,
		analysis.NewCalculator(),
		analysis.NewAggregator(),
		analysis.NewScorer(),
		analysis.NewEstimator(),
		cache.New(cache.NewMemoryStore(), time.Minute),
		nopMetrics{},
		testLogger(t),
	)
}

func risingBars(n int, from, to float64) []models.Bar {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	step := (to - from) / float64(n-1)
	bars := make([]models.Bar, n)
	for i := range bars {
		c := from + step*float64(i)
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1_000_000,
		}
	}
	return bars
}

func TestRecommendationRisingSeries(t *testing.T) {
	market := &fakeMarket{
		bars: risingBars(60, 100, 160),
		fund: &models.Fundamentals{TrailingPE: models.FloatFrom(12)},
	}
	news := &fakeNews{labels: buildLabels(8, 1, 1)}
	engine := newTestEngine(t, market, news)

	rec, err := engine.GetRecommendation(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("recommendation: %v", err)
	}

	if rec.Action != models.ActionBuy {
		t.Fatalf("action = %s, want buy", rec.Action)
	}
	if rec.Score < 20 {
		t.Fatalf("score = %d, want >= 20", rec.Score)
	}
	if rec.CurrentPrice != 160 {
		t.Fatalf("price = %v, want 160", rec.CurrentPrice)
	}

	mustContain(t, rec.Reasoning, "Price above both moving averages")
	mustContain(t, rec.Reasoning, "Recent news sentiment is positive")
	mustContain(t, rec.Reasoning, "P/E ratio indicates undervaluation")
	for _, clause := range rec.Reasoning {
		if clause == "RSI indicates oversold conditions" || clause == "RSI indicates overbought conditions" {
			t.Fatalf("RSI rule fired on monotonic rise: %v", rec.Reasoning)
		}
	}

	if rec.NewsSentiment != models.SentimentPositive {
		t.Fatalf("sentiment = %s, want positive", rec.NewsSentiment)
	}
	if !rec.PriceTarget.Valid {
		t.Fatal("price target absent with defined bands")
	}
	if rec.Risk.Defaulted {
		t.Fatal("risk defaulted with 60 bars of history")
	}
}

func buildLabels(pos, neg, neu int) []models.Sentiment {
	labels := make([]models.Sentiment, 0, pos+neg+neu)
	for i := 0; i < pos; i++ {
		labels = append(labels, models.SentimentPositive)
	}
	for i := 0; i < neg; i++ {
		labels = append(labels, models.SentimentNegative)
	}
	for i := 0; i < neu; i++ {
		labels = append(labels, models.SentimentNeutral)
	}
	return labels
}

func mustContain(t *testing.T, clauses []string, want string) {
	t.Helper()
	for _, c := range clauses {
		if c == want {
			return
		}
	}
	t.Fatalf("reasoning %v missing %q", clauses, want)
}

func TestRecommendationIsCached(t *testing.T) {
	market := &fakeMarket{bars: risingBars(60, 100, 160)}
	engine := newTestEngine(t, market, &fakeNews{})

	first, err := engine.GetRecommendation(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := engine.GetRecommendation(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if market.histCalls != 1 {
		t.Fatalf("history fetched %d times, want 1 (second request served from cache)", market.histCalls)
	}
	if first.Score != second.Score || first.Action != second.Action {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestEmptyHistoryIsInsufficientData(t *testing.T) {
	engine := newTestEngine(t, &fakeMarket{bars: nil}, &fakeNews{})

	_, err := engine.GetRecommendation(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestFetchFailurePropagates(t *testing.T) {
	engine := newTestEngine(t, &fakeMarket{histErr: models.ErrSymbolNotFound}, &fakeNews{})

	_, err := engine.GetRecommendation(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound", err)
	}
}

func TestMissingFundamentalsSkipsPERules(t *testing.T) {
	market := &fakeMarket{bars: risingBars(60, 100, 160), fund: nil}
	engine := newTestEngine(t, market, &fakeNews{})

	rec, err := engine.GetRecommendation(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("recommendation: %v", err)
	}
	for _, clause := range rec.Reasoning {
		if clause == "P/E ratio indicates undervaluation" || clause == "P/E ratio indicates overvaluation" {
			t.Fatalf("P/E rule fired without fundamentals: %v", rec.Reasoning)
		}
	}
}

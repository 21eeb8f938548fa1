package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"FinSight/internal/domain/models"
	"FinSight/internal/service/ratelimit"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	"FinSight/pkg/logger"
)

const limiterKey = "marketdata"

// Service fetches price histories, fundamentals and quotes from the upstream
// chart API. All outbound calls go through a token bucket so concurrent
// symbol requests stay under the provider rate limit.
type Service struct {
	baseURL string
	period  string
	maxRPS  float64
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	logger  *logger.Logger
}

func NewService(cfg *config.Config, limiter *ratelimit.Limiter, lgr *logger.Logger) *Service {
	timeout := cfg.MarketData.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	period := cfg.MarketData.HistoryPeriod
	if period == "" {
		period = "6mo"
	}
	maxRPS := cfg.MarketData.MaxRPS
	if maxRPS <= 0 {
		maxRPS = 5
	}
	return &Service{
		baseURL: cfg.MarketData.BaseURL,
		period:  period,
		maxRPS:  maxRPS,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: limiter,
		logger:  lgr,
	}
}

// FetchHistory returns the ascending daily OHLCV series for symbol. Bars with
// a null close are skipped; an unknown symbol maps to ErrSymbolNotFound and
// an empty series to ErrDataUnavailable.
func (s *Service) FetchHistory(ctx context.Context, symbol, period string) ([]models.Bar, error) {
	if period == "" {
		period = s.period
	}
	body, err := s.get(ctx, fmt.Sprintf("%s/v8/finance/chart/%s", s.baseURL, symbol), map[string][]string{
		"range":    {period},
		"interval": {"1d"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}

	if gjson.GetBytes(body, "chart.error").Type == gjson.JSON {
		return nil, models.ErrSymbolNotFound
	}
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, models.ErrSymbolNotFound
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]models.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i].Type == gjson.Null {
			continue
		}
		bar := models.Bar{
			Timestamp: time.Unix(ts.Int(), 0).UTC(),
			Close:     closes[i].Float(),
		}
		if i < len(opens) {
			bar.Open = opens[i].Float()
		}
		if i < len(highs) {
			bar.High = highs[i].Float()
		}
		if i < len(lows) {
			bar.Low = lows[i].Float()
		}
		if i < len(volumes) {
			bar.Volume = volumes[i].Float()
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, models.ErrDataUnavailable
	}
	return bars, nil
}

// FetchFundamentals returns the partial snapshot for symbol. Missing fields
// stay undefined; they suppress only the dependent scoring rules.
func (s *Service) FetchFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	body, err := s.get(ctx, fmt.Sprintf("%s/v10/finance/quoteSummary/%s", s.baseURL, symbol), map[string][]string{
		"modules": {"summaryDetail,defaultKeyStatistics,price"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}

	result := gjson.GetBytes(body, "quoteSummary.result.0")
	if !result.Exists() {
		return nil, models.ErrSymbolNotFound
	}

	fund := &models.Fundamentals{
		TrailingPE:    floatAt(result, "summaryDetail.trailingPE.raw"),
		DividendYield: floatAt(result, "summaryDetail.dividendYield.raw"),
		MarketCap:     floatAt(result, "summaryDetail.marketCap.raw"),
		PreviousClose: floatAt(result, "summaryDetail.previousClose.raw"),
		Name:          result.Get("price.longName").String(),
		Sector:        result.Get("price.sector").String(),
	}
	if fund.Name == "" {
		fund.Name = result.Get("price.shortName").String()
	}
	return fund, nil
}

// FetchQuote returns the current quote view for symbol.
func (s *Service) FetchQuote(ctx context.Context, symbol string) (*models.StockInfo, error) {
	body, err := s.get(ctx, s.baseURL+"/v7/finance/quote", map[string][]string{
		"symbols": {symbol},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}

	result := gjson.GetBytes(body, "quoteResponse.result.0")
	if !result.Exists() {
		return nil, models.ErrSymbolNotFound
	}

	info := &models.StockInfo{
		Symbol:        symbol,
		Name:          result.Get("longName").String(),
		Price:         result.Get("regularMarketPrice").Float(),
		Change:        result.Get("regularMarketChange").Float(),
		ChangePercent: result.Get("regularMarketChangePercent").Float(),
		MarketCap:     floatAt(result, "marketCap"),
		Volume:        result.Get("regularMarketVolume").Float(),
		PERatio:       floatAt(result, "trailingPE"),
		DividendYield: floatAt(result, "trailingAnnualDividendYield"),
	}
	if info.Name == "" {
		info.Name = result.Get("shortName").String()
	}
	return info, nil
}

func (s *Service) get(ctx context.Context, url string, params map[string][]string) ([]byte, error) {
	if err := s.limiter.Wait(ctx, limiterKey, s.maxRPS, s.maxRPS); err != nil {
		return nil, err
	}

	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		QueryParams: params,
		Headers:     map[string]string{"User-Agent": "finsight/1.0"},
	}, &body)
	if err != nil {
		s.logger.Warn("marketdata fetch failed",
			logger.String("url", url),
			logger.Error(err))
		return nil, err
	}
	return body, nil
}

func floatAt(r gjson.Result, path string) models.Float {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return models.Float{}
	}
	return models.FloatFrom(v.Float())
}

package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"FinSight/internal/domain/models"
	"FinSight/internal/service/ratelimit"
	"FinSight/pkg/config"
	"FinSight/pkg/logger"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.MarketData.BaseURL = srv.URL

	lgr, err := logger.New(&logger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewService(cfg, ratelimit.New(), lgr), srv
}

func TestFetchHistoryParsesBars(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1700000000,1700086400,1700172800],
			"indicators":{"quote":[{
				"open":[99,100,null],
				"high":[101,103,104],
				"low":[98,99,100],
				"close":[100,102,null],
				"volume":[1000,1100,1200]
			}]}
		}],"error":null}}`))
	})

	bars, err := svc.FetchHistory(context.Background(), "AAPL", "3mo")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (null close skipped)", len(bars))
	}
	if bars[0].Close != 100 || bars[1].Close != 102 {
		t.Fatalf("closes = %v, %v", bars[0].Close, bars[1].Close)
	}
	if bars[1].Volume != 1100 {
		t.Fatalf("volume = %v, want 1100", bars[1].Volume)
	}
	if !bars[0].Timestamp.Before(bars[1].Timestamp) {
		t.Fatal("bars not ascending")
	}
}

func TestFetchHistoryUnknownSymbol(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found"}}}`))
	})

	_, err := svc.FetchHistory(context.Background(), "NOPE", "")
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound", err)
	}
}

func TestFetchHistoryUpstreamFailure(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.FetchHistory(context.Background(), "AAPL", "")
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestFetchFundamentalsPartialFields(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"summaryDetail":{"trailingPE":{"raw":12.4},"previousClose":{"raw":182.3}},
			"price":{"longName":"Apple Inc."}
		}],"error":null}}`))
	})

	fund, err := svc.FetchFundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !fund.TrailingPE.Valid || fund.TrailingPE.Value != 12.4 {
		t.Fatalf("trailingPE = %+v", fund.TrailingPE)
	}
	if fund.DividendYield.Valid {
		t.Fatal("dividend yield should stay undefined when absent")
	}
	if fund.Name != "Apple Inc." {
		t.Fatalf("name = %q", fund.Name)
	}
}

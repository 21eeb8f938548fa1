package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"FinSight/internal/domain/models"
	"FinSight/pkg/config"
	"FinSight/pkg/logger"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want models.Sentiment
	}{
		{"Shares surge after record profit beat", models.SentimentPositive},
		{"Stock plunges on weak guidance, analysts cut targets", models.SentimentNegative},
		{"Company schedules annual shareholder meeting", models.SentimentNeutral},
		{"Strong growth but lawsuit and layoffs weigh", models.SentimentNeutral},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.News.BaseURL = srv.URL
	cfg.News.ArticleLimit = 10

	lgr, err := logger.New(&logger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewService(cfg, lgr)
}

func TestFetchArticlesDeduplicatesTitles(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[
			{"title":"AAPL shares rally","description":"gain","url":"u1","source":{"name":"A"},"publishedAt":"2025-08-30T10:00:00Z"},
			{"title":"aapl shares RALLY","description":"dup","url":"u2","source":{"name":"B"},"publishedAt":"2025-08-30T11:00:00Z"},
			{"title":"Supplier faces recall","description":"","url":"u3","source":{"name":"C"},"publishedAt":"2025-08-30T12:00:00Z"}
		]}`))
	})

	articles, err := svc.FetchArticles(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 after title dedup", len(articles))
	}
	if articles[0].Sentiment != models.SentimentPositive {
		t.Fatalf("first sentiment = %s, want positive", articles[0].Sentiment)
	}
	if articles[1].Sentiment != models.SentimentNegative {
		t.Fatalf("second sentiment = %s, want negative", articles[1].Sentiment)
	}
}

func TestSymbolSentimentNeverFails(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	labels := svc.SymbolSentiment(context.Background(), "AAPL", 10)
	if len(labels) != 0 {
		t.Fatalf("got %d labels, want empty set on failure", len(labels))
	}
}

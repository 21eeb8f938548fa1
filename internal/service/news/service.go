package news

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"FinSight/internal/domain/models"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	"FinSight/pkg/logger"
	"FinSight/pkg/util"
)

// Service fetches headlines for a symbol and tags each with a lexicon-based
// sentiment label. Articles with duplicate titles are collapsed.
type Service struct {
	baseURL string
	apiKey  string
	limit   int
	client  *xhttp.Client
	logger  *logger.Logger
}

func NewService(cfg *config.Config, lgr *logger.Logger) *Service {
	timeout := cfg.News.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := cfg.News.ArticleLimit
	if limit <= 0 {
		limit = 10
	}
	return &Service{
		baseURL: cfg.News.BaseURL,
		apiKey:  cfg.News.APIKey,
		limit:   limit,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  lgr,
	}
}

// FetchArticles returns up to limit deduplicated, sentiment-tagged headlines.
func (s *Service) FetchArticles(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.baseURL + "/v2/everything",
		QueryParams: map[string][]string{
			"q":        {symbol + " stock"},
			"pageSize": {strconv.Itoa(limit * 2)},
			"sortBy":   {"publishedAt"},
			"language": {"en"},
		},
		Headers: map[string]string{"X-Api-Key": s.apiKey},
	}, &body)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	articles := make([]models.NewsArticle, 0, limit)
	gjson.GetBytes(body, "articles").ForEach(func(_, a gjson.Result) bool {
		title := a.Get("title").String()
		key := strings.ToLower(strings.TrimSpace(title))
		if key == "" {
			return true
		}
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}

		summary := a.Get("description").String()
		articles = append(articles, models.NewsArticle{
			Title:       title,
			Summary:     summary,
			URL:         a.Get("url").String(),
			Source:      a.Get("source.name").String(),
			PublishedAt: util.ParseTimeDefault(a.Get("publishedAt").String(), time.Time{}),
			Sentiment:   Classify(title + " " + summary),
		})
		return len(articles) < limit
	})
	return articles, nil
}

// SymbolSentiment returns per-article labels for symbol. A fetch failure
// logs and yields an empty set; sentiment is advisory, never fatal.
func (s *Service) SymbolSentiment(ctx context.Context, symbol string, limit int) []models.Sentiment {
	articles, err := s.FetchArticles(ctx, symbol, limit)
	if err != nil {
		s.logger.Warn("news fetch failed, treating sentiment as unknown",
			logger.String("symbol", symbol),
			logger.Error(err))
		return nil
	}
	labels := make([]models.Sentiment, len(articles))
	for i, a := range articles {
		labels[i] = a.Sentiment
	}
	return labels
}

package di

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	domrepo "FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/handler/api"
	internalrepo "FinSight/internal/repository"
	"FinSight/internal/service/analysis"
	icache "FinSight/internal/service/cache"
	"FinSight/internal/service/chat"
	"FinSight/internal/service/marketdata"
	"FinSight/internal/service/news"
	"FinSight/internal/service/rag"
	"FinSight/internal/service/ratelimit"
	"FinSight/internal/usecase"
	pkgch "FinSight/pkg/clickhouse"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	pkgkafka "FinSight/pkg/kafka"
	applogger "FinSight/pkg/logger"
	"FinSight/pkg/metrics"
	"FinSight/pkg/queue"
	"FinSight/pkg/server"
)

const logTopic = "finsight.logs"

// ProvideLogger creates the structured logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCacheStore selects the cache backend.
func ProvideCacheStore(cfg *config.Config) icache.Store {
	if cfg.Cache.Backend == "redis" {
		return icache.NewRedisStore(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewMemoryStore()
}

// ProvideCache wraps the store with the configured TTL.
func ProvideCache(cfg *config.Config, store icache.Store) *icache.Cache {
	return icache.New(store, cfg.CacheTTL())
}

// ProvideLimiter creates the outbound rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMarketData creates the price/fundamentals provider.
func ProvideMarketData(cfg *config.Config, limiter *ratelimit.Limiter, lgr *applogger.Logger) domrepo.MarketData {
	return marketdata.NewService(cfg, limiter, lgr)
}

// ProvideNews creates the headline provider.
func ProvideNews(cfg *config.Config, lgr *applogger.Logger) domrepo.NewsProvider {
	return news.NewService(cfg, lgr)
}

// ProvideAssistant creates the RAG client.
func ProvideAssistant(cfg *config.Config) domsvc.Assistant {
	return rag.NewClient(cfg)
}

// ProvideChatManager creates the chat WebSocket bridge.
func ProvideChatManager(assistant domsvc.Assistant, lgr *applogger.Logger) *chat.Manager {
	return chat.NewManager(assistant, lgr)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher creates the recommendation event publisher, or nil.
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.EventPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithAddr(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideBarArchive creates the history archive, or nil when disabled.
func ProvideBarArchive(chClient *pkgch.Client, lgr *applogger.Logger) (domrepo.BarArchive, error) {
	if chClient == nil {
		return nil, nil
	}
	archive := internalrepo.NewCHBarArchive(chClient, lgr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.Init(ctx); err != nil {
		_ = archive.Close()
		return nil, fmt.Errorf("bar archive schema: %w", err)
	}
	return archive, nil
}

// ProvideQueue creates the background worker queue with its jobs registered,
// or nil when no sink is configured.
func ProvideQueue(cfg *config.Config, lgr *applogger.Logger, archive domrepo.BarArchive, publisher domrepo.EventPublisher) *queue.MemoryQueue {
	if archive == nil && publisher == nil {
		return nil
	}
	q := queue.NewMemoryQueue(lgr, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		QueueSize:  cfg.Queue.QueueSize,
		RetryLimit: 2,
		RetryDelay: time.Second,
	})
	if archive != nil {
		q.RegisterJob(usecase.NewArchiveBarsJob(archive))
	}
	if publisher != nil {
		q.RegisterJob(usecase.NewPublishRecommendationJob(publisher))
	}
	return q
}

// ProvideEngine creates the recommendation engine.
func ProvideEngine(
	market domrepo.MarketData,
	newsProv domrepo.NewsProvider,
	c *icache.Cache,
	m domrepo.Metrics,
	lgr *applogger.Logger,
	q *queue.MemoryQueue,
) *usecase.Engine {
	opts := []usecase.EngineOption{}
	if q != nil {
		opts = append(opts, usecase.WithQueue(q))
	}
	return usecase.NewEngine(
		market,
		newsProv,
		analysis.NewCalculator(),
		analysis.NewAggregator(),
		analysis.NewScorer(),
		analysis.NewEstimator(),
		c,
		m,
		lgr,
		opts...,
	)
}

// routes fans RegisterRoutes out to each handler.
type routes []xhttp.Handler

func (r routes) RegisterRoutes(e *echo.Echo) {
	for _, h := range r {
		h.RegisterRoutes(e)
	}
}

// ProvideHandler bundles all HTTP handlers.
func ProvideHandler(
	cfg *config.Config,
	lgr *applogger.Logger,
	engine *usecase.Engine,
	chatMgr *chat.Manager,
	newsProv domrepo.NewsProvider,
	assistant domsvc.Assistant,
	archive domrepo.BarArchive,
) xhttp.Handler {
	return routes{
		api.NewStocksEchoHandler(cfg, lgr, engine, chatMgr),
		api.NewNewsEchoHandler(lgr, newsProv, assistant),
		api.NewHealthEchoHandler(archive),
	}
}

// ProvideApp creates the application server and attaches the log collector
// when Kafka is available.
func ProvideApp(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler xhttp.Handler,
	q *queue.MemoryQueue,
	producer *pkgkafka.Producer,
	archive domrepo.BarArchive,
	publisher domrepo.EventPublisher,
) *server.App {
	if producer != nil {
		lgr.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          logTopic,
			Publisher:      internalrepo.NewLogSink(producer),
		})
	}
	return server.New(cfg, lgr, handler, q, archive, publisher)
}

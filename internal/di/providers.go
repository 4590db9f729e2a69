package di

import (
	"context"
	"fmt"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/handler/api"
	internalrepo "MarketLens/internal/repository"
	"MarketLens/internal/service/fred"
	"MarketLens/internal/service/social"
	"MarketLens/internal/service/stocks"
	"MarketLens/internal/services/analytics"
	"MarketLens/internal/usecase"
	pkgcache "MarketLens/pkg/cache"
	pkgch "MarketLens/pkg/clickhouse"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	pkgkafka "MarketLens/pkg/kafka"
	"MarketLens/pkg/logger"
	"MarketLens/pkg/metrics"
	"MarketLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCacheStore builds the snapshot cache for the configured backend.
func ProvideCacheStore(cfg *config.Config) (repository.CacheStore, error) {
	switch cfg.Cache.Backend {
	case "clickhouse":
		client, err := provideClickHouseClient(cfg)
		if err != nil {
			return nil, err
		}
		store := internalrepo.NewClickHouseCacheStore(client.DB())
		store.SetCloser(client)
		return store, nil

	case "redis":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Redis.Host),
			pkgcache.WithRedisPort(cfg.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Redis.Password),
			pkgcache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		layered := pkgcache.NewLayeredCache(rc)
		store := internalrepo.NewKVCacheStore(layered)
		store.SetCloser(rc)
		return store, nil

	case "memory":
		mem := pkgcache.NewMemoryCache(
			pkgcache.WithMemoryMaxSize(4096),
			pkgcache.WithMemoryCleanup(time.Minute),
		)
		store := internalrepo.NewKVCacheStore(mem)
		store.SetCloser(mem)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func provideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database),
		internalrepo.SnapshotCacheSchema,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvidePublisher creates the analysis publisher, or a noop one when Kafka
// is disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopPublisher{}, nil
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
	return internalrepo.NewKafkaAnalysisPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideMacroProvider creates the FRED series client.
func ProvideMacroProvider(cfg *config.Config, log *logger.Logger) domsvc.MacroProvider {
	return fred.New(cfg, log)
}

// ProvideEquityProvider creates the stocks API client.
func ProvideEquityProvider(cfg *config.Config, log *logger.Logger) domsvc.EquityProvider {
	return stocks.New(cfg, log)
}

// ProvidePostSource creates the social post reader.
func ProvidePostSource(cfg *config.Config, log *logger.Logger) domsvc.PostSource {
	return social.New(cfg.Social.Dir, log)
}

// ProvideSentimentAnalyzer creates the keyword sentiment analyzer.
func ProvideSentimentAnalyzer(cfg *config.Config) *analytics.SentimentAnalyzer {
	return analytics.NewSentimentAnalyzer(cfg.Social.MaxAge, cfg.Social.MaxKeywordsPerPost)
}

// ProvideMacroCollector creates the macro source collector.
func ProvideMacroCollector(
	p domsvc.MacroProvider,
	store repository.CacheStore,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.MacroCollector {
	return usecase.NewMacroCollector(p, store, m, log, cfg.Cache.MacroTTL, cfg.Fred.HistoryDays)
}

// ProvideEquityCollector creates the equity source collector.
func ProvideEquityCollector(
	p domsvc.EquityProvider,
	store repository.CacheStore,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.EquityCollector {
	return usecase.NewEquityCollector(p, store, m, log, cfg.Cache.EquityTTL, cfg.Stocks.HistoryDays)
}

// ProvideSentimentCollector creates the sentiment source collector.
func ProvideSentimentCollector(
	src domsvc.PostSource,
	analyzer *analytics.SentimentAnalyzer,
	store repository.CacheStore,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.SentimentCollector {
	return usecase.NewSentimentCollector(src, analyzer, store, m, log, cfg.Cache.SentimentTTL)
}

// ProvideMarketAnalyzer creates the top-level analysis use case.
func ProvideMarketAnalyzer(
	macro *usecase.MacroCollector,
	equity *usecase.EquityCollector,
	sentiment *usecase.SentimentCollector,
	pub repository.Publisher,
	store repository.CacheStore,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.MarketAnalyzer {
	weights := models.Weights{
		Macro:     cfg.Analysis.MacroWeight,
		Equity:    cfg.Analysis.EquityWeight,
		Sentiment: cfg.Analysis.SentimentWeight,
	}
	return usecase.NewMarketAnalyzer(macro, equity, sentiment, pub, store, m, log, weights, cfg.Analysis.CollectorTimeout)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(log *logger.Logger, analyzer *usecase.MarketAnalyzer) xhttp.Handler {
	return api.NewAnalysisHandler(log, analyzer)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	store repository.CacheStore,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, log, handler, store, pub)
}

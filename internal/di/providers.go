package di

import (
    "context"
    "fmt"
    "time"

    domrepo "github.com/gman-top/Tradepilotx/internal/domain/repository"
    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/internal/handler/api"
    internalrepo "github.com/gman-top/Tradepilotx/internal/repository"
    "github.com/gman-top/Tradepilotx/internal/scoring"
    icache "github.com/gman-top/Tradepilotx/internal/service/cache"
    "github.com/gman-top/Tradepilotx/internal/services/feeds"
    "github.com/gman-top/Tradepilotx/internal/usecase"
    pkgch "github.com/gman-top/Tradepilotx/pkg/clickhouse"
    "github.com/gman-top/Tradepilotx/pkg/config"
    xhttp "github.com/gman-top/Tradepilotx/pkg/http"
    pkgkafka "github.com/gman-top/Tradepilotx/pkg/kafka"
    applogger "github.com/gman-top/Tradepilotx/pkg/logger"
    "github.com/gman-top/Tradepilotx/pkg/metrics"
    "github.com/gman-top/Tradepilotx/pkg/server"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// ProvideLogger creates the application logger from config. When the Kafka
// event stream is enabled, aggregated warn/error logs are shipped to a
// sibling topic alongside the score events.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
    l, err := applogger.New(&applogger.Config{
        Level:  cfg.Logging.Level,
        Format: cfg.Logging.Format,
        Output: cfg.Logging.Output,
    })
    if err != nil {
        return nil, fmt.Errorf("logger: %w", err)
    }
    if producer != nil {
        l.AddCollector(&applogger.CollectionConfig{
            TimeInterval:   30 * time.Second,
            CountThreshold: 100,
            Topic:          cfg.Kafka.Topic + ".logs",
            Publisher:      kafkaLogPublisher{producer: producer},
        })
    }
    return l, nil
}

// kafkaLogPublisher adapts the Kafka producer to the log collector's
// Publisher interface.
type kafkaLogPublisher struct {
    producer *pkgkafka.Producer
}

func (k kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
    return k.producer.Publish(ctx, topic, nil, payload)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when history
// storage is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
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
	return client, nil
}

// ProvideScoreStore creates the ClickHouse score store, or nil when history
// storage is disabled. Schema init happens during app startup.
func ProvideScoreStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) domrepo.ScoreStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewCHScoreStore(chClient, cfg.History.Table)
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, or nil when the event stream
// is disabled.
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

// ProvideScorePublisher creates the Kafka score publisher, or nil when the
// event stream is disabled.
func ProvideScorePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.ScorePublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaScorePublisher(producer, cfg.Kafka.Topic)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideFeedCache selects the feed cache backend: Redis when configured, an
// in-process TTL cache otherwise.
func ProvideFeedCache(cfg *config.Config) icache.BytesCache {
	if cfg.Feeds.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Feeds.Redis.Addr,
			Password: cfg.Feeds.Redis.Password,
			DB:       cfg.Feeds.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvidePriceFeed creates the cached price feed client.
func ProvidePriceFeed(cfg *config.Config, c icache.BytesCache) domsvc.PriceFeed {
	return feeds.NewCachedPriceFeed(feeds.NewHTTPPriceFeed(cfg), c, cfg.Feeds.CacheTTL.Price)
}

// ProvidePositioningFeed creates the cached COT positioning feed client.
func ProvidePositioningFeed(cfg *config.Config, c icache.BytesCache) domsvc.PositioningFeed {
	return feeds.NewCachedPositioningFeed(feeds.NewHTTPPositioningFeed(cfg), c, cfg.Feeds.CacheTTL.Positioning)
}

// ProvideRetailSentimentFeed creates the cached retail sentiment feed client.
func ProvideRetailSentimentFeed(cfg *config.Config, c icache.BytesCache) domsvc.RetailSentimentFeed {
	return feeds.NewCachedRetailSentimentFeed(feeds.NewHTTPRetailSentimentFeed(cfg), c, cfg.Feeds.CacheTTL.Retail)
}

// ProvideMacroFeed creates the cached macro surprise feed client.
func ProvideMacroFeed(cfg *config.Config, c icache.BytesCache) domsvc.MacroFeed {
	return feeds.NewCachedMacroFeed(feeds.NewHTTPMacroFeed(cfg), c, cfg.Feeds.CacheTTL.Macro)
}

// ProvideSeasonalityFeed creates the cached seasonality feed client.
func ProvideSeasonalityFeed(cfg *config.Config, c icache.BytesCache) domsvc.SeasonalityFeed {
	return feeds.NewCachedSeasonalityFeed(feeds.NewHTTPSeasonalityFeed(cfg), c, cfg.Feeds.CacheTTL.Seasonality)
}

// ProvideObservationBuilder assembles the observation builder over the feeds.
func ProvideObservationBuilder(
	price domsvc.PriceFeed,
	positioning domsvc.PositioningFeed,
	retail domsvc.RetailSentimentFeed,
	macro domsvc.MacroFeed,
	seasonality domsvc.SeasonalityFeed,
	l *applogger.Logger,
) *usecase.ObservationBuilder {
	return usecase.NewObservationBuilder(price, positioning, retail, macro, seasonality, l)
}

// ProvideEngine creates the scoring engine with configured weights.
func ProvideEngine(cfg *config.Config) *scoring.Engine {
	technical, sentiment, eco, seasonality := cfg.Weights()
	return scoring.NewEngine(scoring.Config{
		TechnicalWeight:   technical,
		SentimentWeight:   sentiment,
		EcoWeight:         eco,
		SeasonalityWeight: seasonality,
	})
}

// ProvideConvictionService creates the scoring pipeline service.
func ProvideConvictionService(
	builder *usecase.ObservationBuilder,
	engine *scoring.Engine,
	store domrepo.ScoreStore,
	publisher domrepo.ScorePublisher,
	m domrepo.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.ConvictionService {
	return usecase.NewConvictionService(builder, engine, store, publisher, m, cfg.Watchlist, l)
}

func dataSources(cfg *config.Config) map[string]string {
	sources := map[string]string{
		"intelligence": cfg.Feeds.IntelServiceURL,
		"history":      "disabled",
		"events":       "disabled",
	}
	if cfg.History.Enabled {
		sources["history"] = "clickhouse"
	}
	if cfg.Kafka.Enabled {
		sources["events"] = "kafka"
	}
	return sources
}

// ProvideHTTPHandler creates the scores HTTP handler with response caching.
func ProvideHTTPHandler(svc *usecase.ConvictionService, c icache.BytesCache, cfg *config.Config, l *applogger.Logger) xhttp.Handler {
	h := api.NewScoresHandler(svc, Version)
	h.SetCache(c)
	h.SetLogger(l)
	h.SetDataSources(dataSources(cfg))
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	svc *usecase.ConvictionService,
	store domrepo.ScoreStore,
	publisher domrepo.ScorePublisher,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, svc, store, publisher, chClient, handler)
}

package di

import (
	"context"
	"fmt"
	"time"

	"TrueArk/internal/domain/repository"
	"TrueArk/internal/handler/api"
	internalrepo "TrueArk/internal/repository"
	"TrueArk/internal/service/ephemeris"
	"TrueArk/internal/usecase"
	"TrueArk/pkg/cache"
	pkgch "TrueArk/pkg/clickhouse"
	"TrueArk/pkg/config"
	xhttp "TrueArk/pkg/http"
	pkgkafka "TrueArk/pkg/kafka"
	applogger "TrueArk/pkg/logger"
	"TrueArk/pkg/metrics"
	"TrueArk/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEphemeris selects the provider once: sidecar when configured and
// healthy, built-in analytic fallback otherwise.
func ProvideEphemeris(cfg *config.Config, l *applogger.Logger) repository.Ephemeris {
	return ephemeris.New(ephemeris.Config{
		ServiceURL: cfg.Ephemeris.ServiceURL,
		EphePath:   cfg.Ephemeris.EphePath,
		Timeout:    cfg.Ephemeris.Timeout,
	}, l)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when persistence
// is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS trueark",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideChartStore creates the ClickHouse chart store, or nil without a client.
func ProvideChartStore(chClient *pkgch.Client, l *applogger.Logger) (repository.ChartStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewCHChartStore(chClient)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when eventing is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
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

// ProvideChartPublisher creates the stored-chart event publisher, or nil
// without a producer.
func ProvideChartPublisher(producer *pkgkafka.Producer, cfg *config.Config, l *applogger.Logger) (repository.ChartPublisher, error) {
	if producer == nil {
		return nil, nil
	}
	return internalrepo.NewKafkaChartPublisher(producer, cfg.Kafka.Topic, l)
}

// ProvideCache creates the chart result cache: Redis when configured, local
// memory otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err == nil {
			return rc
		}
		l.Warn("redis unavailable, using in-memory chart cache", applogger.Error(err))
	}
	return cache.NewMemoryCache()
}

// ProvideChartEngine creates the chart computation engine.
func ProvideChartEngine(eph repository.Ephemeris, m repository.Metrics, l *applogger.Logger) *usecase.ChartEngine {
	return usecase.NewChartEngine(eph, m, l)
}

// ProvideChartService creates the chart service with caching and persistence.
func ProvideChartService(
	engine *usecase.ChartEngine,
	store repository.ChartStore,
	pub repository.ChartPublisher,
	c cache.Service,
	cfg *config.Config,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ChartService {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return usecase.NewChartService(engine, store, pub, c, ttl, m, l)
}

// ProvideHandler assembles the HTTP route registration.
func ProvideHandler(l *applogger.Logger, svc *usecase.ChartService, store repository.ChartStore) xhttp.Handler {
	charts := api.NewChartsEchoHandler(l, svc)
	if store != nil {
		charts.SetHealthCheck(func(c echo.Context) error {
			return store.Health(c.Request().Context())
		})
	}
	transits := api.NewTransitsWSHandler(l, svc)
	return api.NewRouter(charts, transits)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	publisher repository.ChartPublisher,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, l, handler, chClient, publisher, cacheSvc)
}

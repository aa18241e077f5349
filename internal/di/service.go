package di

import (
	"TrueArk/internal/usecase"
	"TrueArk/pkg/config"
	applogger "TrueArk/pkg/logger"
)

// InitializeChartService builds the chart service without the HTTP server, for
// transports like the stdio MCP server. The returned cleanup closes every
// infrastructure client that was opened.
func InitializeChartService(cfg *config.Config) (*usecase.ChartService, *applogger.Logger, func(), error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	metrics := ProvideMetrics()

	client, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, nil, err
	}
	cacheSvc := ProvideCache(cfg, logger)

	cleanup := func() {
		if producer != nil {
			_ = producer.Close()
		}
		if client != nil {
			_ = client.Close()
		}
		_ = cacheSvc.Close()
	}

	store, err := ProvideChartStore(client, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	publisher, err := ProvideChartPublisher(producer, cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	eph := ProvideEphemeris(cfg, logger)
	engine := ProvideChartEngine(eph, metrics, logger)
	svc := ProvideChartService(engine, store, publisher, cacheSvc, cfg, metrics, logger)
	return svc, logger, cleanup, nil
}

package di

import (
	"context"
	"fmt"
	"time"

	"TrendScan/internal/domain/repository"
	"TrendScan/internal/domain/service"
	"TrendScan/internal/handler/api"
	internalrepo "TrendScan/internal/repository"
	"TrendScan/internal/service/bybit"
	"TrendScan/internal/service/telegram"
	"TrendScan/internal/services/indicators"
	"TrendScan/internal/usecase"
	"TrendScan/pkg/cache"
	pkgch "TrendScan/pkg/clickhouse"
	"TrendScan/pkg/config"
	xhttp "TrendScan/pkg/http"
	pkgkafka "TrendScan/pkg/kafka"
	applogger "TrendScan/pkg/logger"
	"TrendScan/pkg/metrics"
	"TrendScan/pkg/server"
	"TrendScan/pkg/util"
)

// ProvideLogger creates the process logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideScanParams resolves timeframes and sizing. Dropped timeframes and a
// replaced sort timeframe are logged as warnings.
func ProvideScanParams(cfg *config.Config, l *applogger.Logger) usecase.ScanParams {
	tfs, rejected := repository.ParseTimeframes(cfg.Scan.Timeframes)
	for _, raw := range rejected {
		l.Warn("unknown timeframe ignored", applogger.String("timeframe", raw))
	}

	sortTF, ok := repository.ResolveSortTimeframe(cfg.Scan.SortTimeframe, tfs)
	if !ok && cfg.Scan.SortTimeframe != "" {
		l.Warn("sort timeframe not among timeframes, using first",
			applogger.String("sort_tf", cfg.Scan.SortTimeframe),
			applogger.String("using", string(sortTF)),
		)
	}

	l.Info("active timeframes",
		applogger.Strings("timeframes", repository.Strings(tfs)),
		applogger.String("sort_tf", string(sortTF)),
	)

	return usecase.ScanParams{
		Timeframes:    tfs,
		SortTimeframe: sortTF,
		TopN:          cfg.Scan.TopN,
		CandleLimit:   cfg.Scan.KlinesLimit,
		Workers:       cfg.Scan.Workers,
		EnrichWorkers: usecase.EnrichWorkersFor(cfg.Scan.Workers),
		Prefilter: usecase.Prefilter{
			Enabled:    cfg.PrefilterEnabled(),
			TopN:       cfg.Scan.TopN,
			Multiplier: cfg.Scan.PrefilterMultiplier,
		},
	}
}

// ProvideMarketData creates the Bybit gateway.
func ProvideMarketData(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.MarketData {
	return bybit.New(bybit.Config{
		BaseURL:    cfg.Bybit.BaseURL,
		Category:   cfg.Bybit.Category,
		APIKey:     cfg.Bybit.APIKey,
		RecvWindow: cfg.Bybit.RecvWindow,
		Pacing:     cfg.PerRequestSleep(),
		Retry:      bybit.RetryPolicy{Attempts: cfg.Bybit.MaxRetries, Delay: cfg.RetryBackoff()},
		MaxRPS:     float64(cfg.Bybit.MaxRPS),
	}, l, m)
}

// ProvideIndicatorEngine creates the indicator engine from the configured lookbacks.
func ProvideIndicatorEngine(cfg *config.Config) service.IndicatorEngine {
	return indicators.NewEngine(indicators.Lookbacks{
		MACDFast:   cfg.Indicators.MACDFast,
		MACDSlow:   cfg.Indicators.MACDSlow,
		MACDSignal: cfg.Indicators.MACDSignal,
		RSI:        cfg.Indicators.RSIPeriod,
		ATR:        cfg.Indicators.ATRPeriod,
	})
}

// ProvideLocation loads the report time zone, falling back to UTC.
func ProvideLocation(cfg *config.Config, l *applogger.Logger) *time.Location {
	loc, ok := util.LoadLocationDefault(cfg.Output.Timezone, time.UTC)
	if !ok {
		l.Warn("report timezone unavailable, using UTC", applogger.String("timezone", cfg.Output.Timezone))
	}
	return loc
}

// ProvideCache creates the Redis cache when enabled, else an in-memory one.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	cc := cache.Config{
		Backend: cache.BackendMemory,
		Memory:  cache.MemoryConfig{MaxSize: 16},
	}
	if cfg.Redis.Enabled {
		cc.Backend = cache.BackendRedis
		cc.Redis = cache.RedisConfig{
			Addrs:    []string{fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)},
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
	}
	c, err := cache.New(cc)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return c, nil
}

// ProvideLatestStore creates the latest-cycle store over the cache.
func ProvideLatestStore(c cache.Service) *internalrepo.LatestStore {
	return internalrepo.NewLatestStore(c)
}

// ProvideHistoryStore creates the JSON history file store.
func ProvideHistoryStore(cfg *config.Config, l *applogger.Logger) repository.HistoryStore {
	return internalrepo.NewFileHistoryStore(cfg.Output.Dir, l)
}

// ProvideReportWriter creates the report file writer.
func ProvideReportWriter(cfg *config.Config) repository.ReportWriter {
	return internalrepo.NewFileReportWriter(cfg.Output.Dir)
}

// ProvideNotifier creates the Telegram notifier.
func ProvideNotifier(cfg *config.Config) repository.Notifier {
	return telegram.NewNotifier(cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
// The producer also receives aggregated error logs on the log topic.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:     cfg.Kafka.Brokers,
		Compression: cfg.Kafka.Compression,
		Acks:        "all",
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	if cfg.Kafka.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return producer, nil
}

// ProvideClickHouseClient creates a ClickHouse client with the candidates
// schema in place, or nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The target database may not exist yet, so connect to default and let
	// the schema create it.
	client, err := pkgch.NewClient(ctx, pkgch.Config{
		Addrs:    []string{fmt.Sprintf("%s:%d", cfg.ClickHouse.Host, cfg.ClickHouse.Port)},
		Database: "default",
		User:     cfg.ClickHouse.User,
		Password: cfg.ClickHouse.Password,
		Compress: true,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideCycleSinks lists the enabled sinks. The latest store is always first.
func ProvideCycleSinks(
	cfg *config.Config,
	latest *internalrepo.LatestStore,
	producer *pkgkafka.Producer,
	ch *pkgch.Client,
	l *applogger.Logger,
) []repository.CycleSink {
	sinks := []repository.CycleSink{latest}
	if producer != nil {
		sinks = append(sinks, internalrepo.NewKafkaCycleSink(producer, cfg.Kafka.Topic))
	}
	if ch != nil {
		sinks = append(sinks, internalrepo.NewClickHouseCycleSink(ch, cfg.ClickHouse.Database, l))
	}
	return sinks
}

// ProvideEvaluator creates the per-symbol evaluator.
func ProvideEvaluator(market repository.MarketData, engine service.IndicatorEngine, params usecase.ScanParams, l *applogger.Logger, m repository.Metrics) *usecase.Evaluator {
	return usecase.NewEvaluator(market, engine, params, l, m)
}

// ProvideEnricher creates the open interest enricher.
func ProvideEnricher(market repository.MarketData, params usecase.ScanParams) *usecase.Enricher {
	return usecase.NewEnricher(market, params)
}

// ProvideEmitter creates the emitter.
func ProvideEmitter(
	reports repository.ReportWriter,
	history repository.HistoryStore,
	notifier repository.Notifier,
	sinks []repository.CycleSink,
	loc *time.Location,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.Emitter {
	return usecase.NewEmitter(reports, history, notifier, sinks, loc, l, m)
}

// ProvideScanner creates the cycle runner.
func ProvideScanner(
	market repository.MarketData,
	evaluator *usecase.Evaluator,
	enricher *usecase.Enricher,
	emitter *usecase.Emitter,
	params usecase.ScanParams,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.Scanner {
	return usecase.NewScanner(market, evaluator, enricher, emitter, params, l, m)
}

// ProvideScheduler creates the scheduler loop.
func ProvideScheduler(cfg *config.Config, scanner *usecase.Scanner, l *applogger.Logger, m repository.Metrics) *usecase.Scheduler {
	return usecase.NewScheduler(scanner, cfg.ScanInterval(), l, m)
}

// ProvideHTTPServer creates the status API server, or nil when disabled.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, latest *internalrepo.LatestStore, history repository.HistoryStore) *xhttp.Server {
	if !cfg.Server.Enabled {
		return nil
	}
	return xhttp.NewServer(api.NewScanEchoHandler(l, latest, history), l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	)
}

// ProvideApp assembles the application with every client it has to close.
func ProvideApp(
	scheduler *usecase.Scheduler,
	srv *xhttp.Server,
	c cache.Service,
	producer *pkgkafka.Producer,
	ch *pkgch.Client,
	l *applogger.Logger,
) *server.App {
	closers := []server.Closer{{Name: "cache", Close: c.Close}}
	if producer != nil {
		closers = append(closers, server.Closer{Name: "kafka", Close: producer.Close})
	}
	if ch != nil {
		closers = append(closers, server.Closer{Name: "clickhouse", Close: ch.Close})
	}
	return server.New(scheduler, srv, l, closers...)
}

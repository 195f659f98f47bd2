package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ivr-event-metrics/internal/config"
	"ivr-event-metrics/internal/httpserver"
	"ivr-event-metrics/internal/logger"

	eventsHttp "ivr-event-metrics/internal/events/adapters/http/fiber"
	eventsRepoPg "ivr-event-metrics/internal/events/adapters/postgres"
	eventsProm "ivr-event-metrics/internal/events/adapters/prometheus"
	eventsUsecase "ivr-event-metrics/internal/events/core/usecase"

	summaryHttp "ivr-event-metrics/internal/summary/adapters/http/fiber"
	summaryRepoPg "ivr-event-metrics/internal/summary/adapters/postgres"
	summaryUsecase "ivr-event-metrics/internal/summary/core/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	_ "ivr-event-metrics/docs"
)

// @title IVR Event Metrics API
// @version 1.0
// @description Validates IVR interaction events and records them as Prometheus metrics.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to build logger")
	}

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recorder, err := eventsProm.NewRecorder(reg, cfg.MetricsNamespace)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	// Optional archive
	var (
		db        *sql.DB
		ucOptions []eventsUsecase.Option
	)
	if cfg.ArchiveEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = eventsRepoPg.Open(ctx, cfg.PostgresDSN, eventsRepoPg.PoolConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		})
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open postgres")
		}
		defer db.Close()

		if err := eventsRepoPg.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate archive schema")
		}

		eventRepository := eventsRepoPg.NewEventRepository(eventsRepoPg.NewSQLDB(db))
		ucOptions = append(ucOptions, eventsUsecase.WithArchive(eventRepository))
		log.Info().Msg("event archive enabled")
	}

	// Usecases
	recordEventUC := eventsUsecase.NewRecordEventUseCase(recorder, log, ucOptions...)

	// HTTP (Fiber) app + handlers
	opts := httpserver.Options{
		Logger:      log,
		Gatherer:    reg,
		MetricsPath: cfg.MetricsPath,
	}
	if db != nil {
		opts.Archive = db
	}
	app := httpserver.NewApp(opts)

	// event endpoints
	eventsHandler := eventsHttp.NewEventHandler(recordEventUC)
	eventsHandler.RegisterRoutes(app)

	// summary endpoint
	if db != nil {
		summaryRepository := summaryRepoPg.NewSummaryRepository(summaryRepoPg.NewSQLDB(db, cfg.QueryTimeout))
		getSummaryUC := summaryUsecase.NewGetSummaryUseCase(summaryRepository)
		summaryHandler := summaryHttp.NewSummaryHandler(getSummaryUC)
		app.Get("/summary", summaryHandler.GetSummary)
	}

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}

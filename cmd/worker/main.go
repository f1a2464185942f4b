package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/quickmed-api/internal/config"
	"github.com/jwalitptl/quickmed-api/internal/email"
	"github.com/jwalitptl/quickmed-api/internal/handler/health"
	promHandler "github.com/jwalitptl/quickmed-api/internal/handler/prometheus"
	"github.com/jwalitptl/quickmed-api/internal/repository/postgres"
	internalWorker "github.com/jwalitptl/quickmed-api/internal/worker"
	"github.com/jwalitptl/quickmed-api/pkg/logger"
	"github.com/jwalitptl/quickmed-api/pkg/messaging"
	"github.com/jwalitptl/quickmed-api/pkg/messaging/redis"
	"github.com/jwalitptl/quickmed-api/pkg/metrics"
	"github.com/jwalitptl/quickmed-api/pkg/worker"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	lg := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	}).WithFields(map[string]interface{}{"component": "worker"})
	lg.SetGlobal()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis broker
	raw, err := redis.NewRedisBroker(redis.Config{
		URL:             cfg.Redis.URL,
		MaxRetries:      cfg.Redis.MaxRetries,
		RetryBackoff:    cfg.Redis.RetryBackoff,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		BreakerFailures: cfg.Redis.BreakerFailures,
		BreakerTimeout:  cfg.Redis.BreakerTimeout,
	}, lg.ZL)
	if err != nil {
		lg.Fatal(err, "Failed to create Redis broker")
	}
	broker := messaging.NewBrokerAdapter(raw, lg.ZL)
	defer broker.Close()

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(base)
	m := metrics.NewMetrics("quickmed", "worker")

	processor, err := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
		Channel:       messaging.ChannelAppointments,
	}, lg, m)
	if err != nil {
		lg.Fatal(err, "Invalid outbox configuration")
	}
	cleanup := internalWorker.NewOutboxCleanupWorker(outboxRepo, cfg.Outbox.Retention, cfg.Outbox.CleanupInterval)

	notifier := email.NewNotifier(
		postgres.NewUserRepository(base),
		postgres.NewClinicRepository(base),
		postgres.NewServiceRepository(base),
		email.NewService(cfg.SMTP, m),
		lg.ZL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := broker.Subscribe(ctx, messaging.ChannelAppointments, notifier.Handle); err != nil {
		lg.Fatal(err, "Failed to subscribe to booking events")
	}

	srv := healthServer(cfg, db)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error(err, "Health check server failed")
			stop()
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanup.Start(ctx)
	}()

	<-ctx.Done()
	lg.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	wg.Wait()
}

func healthServer(cfg *config.Config, db health.Pinger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	metrics := promHandler.New(cfg.Server.MetricsPrefix+"_worker", prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	engine.Use(gin.Recovery(), metrics.Middleware())

	health.NewHandler(db).RegisterRoutes(engine)
	engine.GET("/metrics", metrics.Handler())

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Outbox.HealthPort),
		Handler: engine,
	}
}

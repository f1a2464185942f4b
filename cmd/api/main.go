package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/quickmed-api/internal/config"
	"github.com/jwalitptl/quickmed-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/quickmed-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/quickmed-api/internal/handler/auth"
	catalogHandler "github.com/jwalitptl/quickmed-api/internal/handler/catalog"
	clinicHandler "github.com/jwalitptl/quickmed-api/internal/handler/clinic"
	"github.com/jwalitptl/quickmed-api/internal/handler/health"
	promHandler "github.com/jwalitptl/quickmed-api/internal/handler/prometheus"
	settingsHandler "github.com/jwalitptl/quickmed-api/internal/handler/settings"
	statsHandler "github.com/jwalitptl/quickmed-api/internal/handler/stats"
	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/internal/repository/postgres"
	"github.com/jwalitptl/quickmed-api/internal/router"
	appointmentService "github.com/jwalitptl/quickmed-api/internal/service/appointment"
	authService "github.com/jwalitptl/quickmed-api/internal/service/auth"
	catalogService "github.com/jwalitptl/quickmed-api/internal/service/catalog"
	clinicService "github.com/jwalitptl/quickmed-api/internal/service/clinic"
	settingsService "github.com/jwalitptl/quickmed-api/internal/service/settings"
	statsService "github.com/jwalitptl/quickmed-api/internal/service/stats"
	"github.com/jwalitptl/quickmed-api/pkg/auth"
	"github.com/jwalitptl/quickmed-api/pkg/logger"
	"github.com/jwalitptl/quickmed-api/pkg/metrics"
	"github.com/jwalitptl/quickmed-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	}).SetGlobal()

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	clinicRepo := postgres.NewClinicRepository(base)
	serviceRepo := postgres.NewServiceRepository(base)
	slotRepo := postgres.NewSlotRepository(base)
	catalogRepo := postgres.NewCatalogRepository(base)
	settingsRepo := postgres.NewSettingsRepository(base)
	statsRepo := postgres.NewStatsRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base, postgres.NewOutboxRepository(base))

	jwtSvc, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}

	appMetrics := metrics.NewMetrics("quickmed", "api")

	// Initialize services
	authSvc := authService.NewService(userRepo, jwtSvc, security.NewBcryptHasher(security.DefaultCost))
	clinicSvc := clinicService.NewService(clinicRepo, serviceRepo, slotRepo, cfg.Cache.ClinicTTL, cfg.Cache.CleanupPeriod)
	catalogSvc := catalogService.NewService(catalogRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, appMetrics)
	settingsSvc := settingsService.NewService(settingsRepo)
	statsSvc := statsService.NewService(statsRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Setup router
	r, err := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		[]handler.Registrar{
			statsHandler.NewHandler(statsSvc),
			clinicHandler.NewHandler(clinicSvc),
			catalogHandler.NewHandler(catalogSvc),
			appointmentHandler.NewHandler(appointmentSvc, authMiddleware),
			settingsHandler.NewHandler(settingsSvc, authMiddleware),
		},
		health.NewHandler(db),
		promHandler.New(cfg.Server.MetricsPrefix, prometheus.DefaultRegisterer, prometheus.DefaultGatherer),
		routerConfig(cfg),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}
	r.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, l := range r.Limiters() {
		go l.Cleanup(ctx)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exited properly")
}

func routerConfig(cfg *config.Config) router.RouterConfig {
	rc := router.RouterConfig{
		Mode:           cfg.Server.Mode,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		PublicMaxAge:   cfg.Cache.PublicMaxAge,
		CORSConfig:     middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins),
		Validation:     middleware.DefaultValidationConfig(),
	}
	if cfg.RateLimit.Enabled {
		rc.RateLimit = &middleware.RateLimiterConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		}
		rc.AuthRateLimit = &middleware.RateLimiterConfig{
			Requests: cfg.RateLimit.AuthRequests,
			Window:   cfg.RateLimit.Window,
			Message:  "Too many authentication attempts, please try again later",
		}
	}
	return rc
}

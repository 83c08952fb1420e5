package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/cache"
	"github.com/ghuser/familyhub/pkg/config"
	"github.com/ghuser/familyhub/pkg/database"
	"github.com/ghuser/familyhub/pkg/events"
	"github.com/ghuser/familyhub/pkg/httpx"
	"github.com/ghuser/familyhub/pkg/logger"
	"github.com/ghuser/familyhub/pkg/telemetry"
	"github.com/ghuser/familyhub/pkg/workflows"
	calendarApi "github.com/ghuser/familyhub/services/calendar/application/api"
	familyApi "github.com/ghuser/familyhub/services/family/application/api"
	groceryApi "github.com/ghuser/familyhub/services/grocery/application/api"
	listApi "github.com/ghuser/familyhub/services/list/application/api"
	realtimeApi "github.com/ghuser/familyhub/services/realtime/application/api"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	// The bus mirrors through Redis pub/sub when BROADCAST_MIRROR=true so
	// other processes (and the reminder worker) reach this process's
	// connections.
	var mirror = redisClient.Client()
	if !cfg.BroadcastMirror {
		mirror = nil
	}
	bus := events.NewBus(log, mirror)
	defer bus.Close() //nolint:errcheck

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Warn("temporal unavailable, event reminders disabled", "error", err)
		temporalClient = nil
	} else {
		defer temporalClient.Close()
	}

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		Config:         cfg,
		Tokens:         tokens,
		Redis:          redisClient,
		Bus:            bus,
		Emitter:        bus,
		TemporalClient: temporalClient,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Database: pool,
		Redis:    redisClient,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	// WebSocket endpoint lives at the root, outside the /api prefix.
	h := realtimeApi.RealtimeRoutes(r, appConfig)

	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go func() {
		if err := h.Run(hubCtx); err != nil && hubCtx.Err() == nil {
			log.Error("realtime hub stopped", "error", err)
		}
	}()
	if cfg.BroadcastMirror {
		go func() {
			if err := bus.RunMirror(hubCtx); err != nil && hubCtx.Err() == nil {
				log.Error("broadcast mirror stopped", "error", err)
			}
		}()
	}

	srv := httpx.NewServer(cfg.ListenAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	familyApi.FamilyRoutes(r, a)
	listApi.ListRoutes(r, a)
	groceryApi.GroceryRoutes(r, a)
	calendarApi.CalendarRoutes(r, a)
}

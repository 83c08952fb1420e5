package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/familyhub/pkg/cache"
	"github.com/ghuser/familyhub/pkg/config"
	"github.com/ghuser/familyhub/pkg/events"
	"github.com/ghuser/familyhub/pkg/logger"
	"github.com/ghuser/familyhub/pkg/telemetry"
	pkgworkflows "github.com/ghuser/familyhub/pkg/workflows"
	calworkflows "github.com/ghuser/familyhub/services/calendar/workflows"
)

// The worker process hosts the event reminder workflows. When a reminder
// fires it publishes through the Redis broadcast mirror, which the API
// processes fan out to their live connections.
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

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	// Reminders from this process only reach clients through the mirror, so
	// it is always enabled here regardless of BROADCAST_MIRROR.
	bus := events.NewBus(log, redisClient.Client())
	defer bus.Close() //nolint:errcheck

	temporalClient, err := pkgworkflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient.Client, pkgworkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(calworkflows.ReminderWorkflow,
		workflow.RegisterOptions{Name: calworkflows.ReminderWorkflowName})
	w.RegisterActivity(&calworkflows.Activities{Emitter: bus})

	if err := w.Start(); err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("reminder worker running", "task_queue", pkgworkflows.TaskQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	w.Stop()
	log.Info("worker stopped")
}

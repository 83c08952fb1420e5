package app

import (
	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/broadcast"
	"github.com/ghuser/familyhub/pkg/cache"
	"github.com/ghuser/familyhub/pkg/config"
	"github.com/ghuser/familyhub/pkg/database"
	"github.com/ghuser/familyhub/pkg/events"
	"github.com/ghuser/familyhub/pkg/logger"
	"github.com/ghuser/familyhub/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service *Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db      *database.Database
	Logger  logger.Logger
	Config  *config.Config
	Tokens  *auth.TokenManager
	Redis   *cache.RedisClient // nil when Redis is not configured
	Bus     *events.Bus
	Emitter broadcast.Emitter // the Bus in the API process, Discard in tools

	// TemporalClient schedules durable reminder workflows; nil when the
	// Temporal server is not configured, in which case reminders are skipped.
	TemporalClient *workflows.TemporalClient
}

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/pkg/auth"
	listpg "github.com/ghuser/familyhub/services/list/infrastructure/persistence/postgres"
	"github.com/ghuser/familyhub/services/realtime/hub"
)

// RealtimeRoutes registers GET /ws and returns the hub so the caller can run
// its dispatch loop. The JWT is verified by RequireAuth before the upgrade;
// browsers cannot set headers on WebSocket requests, so the token rides the
// query string and BearerToken falls back to it.
func RealtimeRoutes(r chi.Router, a *app.Application) *hub.Hub {
	h := hub.New(a.Logger, a.Bus, listpg.NewListRepository(a.Db))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(a.Config.CORSAllowedOrigins),
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.Logger))
		r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
			identity, err := auth.IdentityFromCtx(req.Context())
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			ws, err := upgrader.Upgrade(w, req, nil)
			if err != nil {
				// Upgrade already wrote the error response.
				a.Logger.WarnContext(req.Context(), "realtime: upgrade failed", "error", err)
				return
			}

			// Serve blocks for the connection's lifetime; the request
			// context stays alive for room-join ownership checks.
			conn := hub.NewConn(h, ws, identity)
			conn.Serve(req.Context())
		})
	})

	return h
}

// originChecker allows the configured origins (comma-separated, same format
// as the CORS middleware), or any origin when the list contains "*".
func originChecker(allowedOrigins string) func(*http.Request) bool {
	set := map[string]struct{}{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

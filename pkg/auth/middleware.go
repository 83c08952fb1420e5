package auth

import (
	"net/http"
	"strings"

	"github.com/ghuser/familyhub/pkg/httpx"
	"github.com/ghuser/familyhub/pkg/logger"
)

// RequireAuth is a chi middleware that enforces bearer-token authentication.
// It reads the Authorization header, verifies the JWT, and injects the
// resolved Identity into the request context.
// Returns 401 Unauthorized if the token is missing, invalid, or expired.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireAuth(tokens *TokenManager, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := BearerToken(r)
			if credential == "" {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			id, err := tokens.Verify(credential)
			if err != nil {
				log.WarnContext(r.Context(), "token verification failed", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header, falling back to the "token" query parameter for WebSocket handshakes
// where browsers cannot set custom headers. Returns "" when absent.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

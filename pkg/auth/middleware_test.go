package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghuser/familyhub/pkg/config"
	"github.com/ghuser/familyhub/pkg/logger"
)

// newTestLogger creates a logger that only emits errors.
func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newTestTokens() *TokenManager {
	return NewTokenManager("test-secret-key-32-bytes-long!!!", time.Hour)
}

// echoIdentity is a terminal handler that reports whether an Identity made it
// into the request context.
func echoIdentity(t *testing.T, want Identity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := IdentityFromCtx(r.Context())
		if err != nil {
			t.Fatalf("identity missing from context: %v", err)
		}
		if id != want {
			t.Fatalf("expected identity %+v, got %+v", want, id)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuth_ValidHeader(t *testing.T) {
	tokens := newTestTokens()
	id := testIdentity()
	token, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := RequireAuth(tokens, newTestLogger())(echoIdentity(t, id))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAuth_QueryParamFallback(t *testing.T) {
	// WebSocket handshakes cannot set headers from a browser, so the token
	// may ride the query string instead.
	tokens := newTestTokens()
	id := testIdentity()
	token, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := RequireAuth(tokens, newTestLogger())(echoIdentity(t, id))

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	tokens := newTestTokens()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})
	handler := RequireAuth(tokens, newTestLogger())(next)

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no credential", func(r *http.Request) {}},
		{"malformed header", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic abc123")
		}},
		{"invalid token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not-a-jwt")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/familyhub/pkg/auth"
	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
	familydomain "github.com/ghuser/familyhub/services/family/domain"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrFamilyNotFound", familydomain.ErrFamilyNotFound, http.StatusNotFound},
		{"ErrListNotFound", listdomain.ErrListNotFound, http.StatusNotFound},
		{"ErrListItemNotFound", listdomain.ErrListItemNotFound, http.StatusNotFound},
		{"ErrGroceryItemNotFound", grocerydomain.ErrGroceryItemNotFound, http.StatusNotFound},
		{"ErrEventNotFound", calendardomain.ErrEventNotFound, http.StatusNotFound},
		{"ErrInvalidJoinCode", familydomain.ErrInvalidJoinCode, http.StatusNotFound},
		{"ErrInvalidCredentials", familydomain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"ErrInvalidToken", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"ErrFamilyFull", familydomain.ErrFamilyFull, http.StatusBadRequest},
		{"ErrEmailTaken", familydomain.ErrEmailTaken, http.StatusBadRequest},
		{"ErrWeakPassword", auth.ErrWeakPassword, http.StatusUnprocessableEntity},
		{"ErrInvalidListTitle", listdomain.ErrInvalidListTitle, http.StatusUnprocessableEntity},
		{"ErrInvalidPriority", listdomain.ErrInvalidPriority, http.StatusUnprocessableEntity},
		{"ErrInvalidUnit", grocerydomain.ErrInvalidUnit, http.StatusUnprocessableEntity},
		{"ErrInvalidResponse", calendardomain.ErrInvalidResponse, http.StatusUnprocessableEntity},
		{"ErrInvalidTimeWindow", calendardomain.ErrInvalidTimeWindow, http.StatusUnprocessableEntity},
		{"wrapped ErrListNotFound", fmt.Errorf("get list: %w", listdomain.ErrListNotFound), http.StatusNotFound},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_InternalErrorsAreOpaque(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: connection refused on 10.0.0.5"))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked to client: %q", body["error"])
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, listdomain.ErrListNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

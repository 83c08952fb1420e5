package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
)

func validateJoinRequest(t *testing.T, body string) (*JoinFamilyRequest, int) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/join-family", strings.NewReader(body))
	req, ok := pkgvalidator.ValidateRequest[JoinFamilyRequest](w, r)
	if !ok {
		return nil, w.Code
	}
	return req, http.StatusOK
}

func TestJoinFamilyRequest_AcceptsPaddedJoinCode(t *testing.T) {
	req, status := validateJoinRequest(t, `{
		"join_code": "  abc123 ",
		"full_name": "Sam",
		"email": "sam@example.com",
		"password": "password123"
	}`)
	if req == nil {
		t.Fatalf("padded join code rejected with status %d", status)
	}
	if req.JoinCode != "  abc123 " {
		t.Errorf("join code mutated before the service saw it: %q", req.JoinCode)
	}
}

func TestJoinFamilyRequest_RejectsMissingJoinCode(t *testing.T) {
	req, status := validateJoinRequest(t, `{
		"full_name": "Sam",
		"email": "sam@example.com",
		"password": "password123"
	}`)
	if req != nil {
		t.Fatal("expected validation to fail without a join code")
	}
	if status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", status)
	}
}

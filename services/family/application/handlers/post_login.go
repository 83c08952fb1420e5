package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/family/application/services"
)

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PostLoginHandler handles POST /login requests.
type PostLoginHandler struct {
	svc *appsvcs.Services
}

// NewPostLoginHandler returns a PostLoginHandler backed by the given services.
func NewPostLoginHandler(svc *appsvcs.Services) *PostLoginHandler {
	return &PostLoginHandler{svc: svc}
}

// Execute authenticates a member and returns a fresh session.
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Family.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, SessionResponse{
		Token:  session.Token,
		User:   memberView(session.Member),
		Family: familyView(session.Family, session.Member.Role),
	})
}

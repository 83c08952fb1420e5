package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/family/application/services"
)

// JoinFamilyRequest is the request body for POST /join-family.
// The join code is normalized (trimmed, uppercased) before lookup, so the
// tag only bounds its length; a code that matches nothing is not found.
type JoinFamilyRequest struct {
	JoinCode string `json:"join_code" validate:"required,max=16"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// PostJoinFamilyHandler handles POST /join-family requests.
type PostJoinFamilyHandler struct {
	svc *appsvcs.Services
}

// NewPostJoinFamilyHandler returns a PostJoinFamilyHandler backed by the given services.
func NewPostJoinFamilyHandler(svc *appsvcs.Services) *PostJoinFamilyHandler {
	return &PostJoinFamilyHandler{svc: svc}
}

// Execute adds a new member to an existing family by join code.
func (h *PostJoinFamilyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[JoinFamilyRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Family.JoinFamily(r.Context(), req.JoinCode, req.FullName, req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, SessionResponse{
		Token:  session.Token,
		User:   memberView(session.Member),
		Family: familyView(session.Family, session.Member.Role),
	})
}

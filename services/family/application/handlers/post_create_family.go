package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/family/application/services"
)

// CreateFamilyRequest is the request body for POST /create-family.
type CreateFamilyRequest struct {
	FamilyName string `json:"family_name" validate:"required,min=1,max=100"`
	AdminName  string `json:"admin_name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=128"`
}

// PostCreateFamilyHandler handles POST /create-family requests.
type PostCreateFamilyHandler struct {
	svc *appsvcs.Services
}

// NewPostCreateFamilyHandler returns a PostCreateFamilyHandler backed by the given services.
func NewPostCreateFamilyHandler(svc *appsvcs.Services) *PostCreateFamilyHandler {
	return &PostCreateFamilyHandler{svc: svc}
}

// Execute creates a new family with its admin member and returns a session.
func (h *PostCreateFamilyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateFamilyRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Family.CreateFamily(r.Context(), req.FamilyName, req.AdminName, req.Email, req.Password)
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

package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/family/application/services"
)

// UserResponse is returned by GET /user.
type UserResponse struct {
	User   MemberView `json:"user"`
	Family FamilyView `json:"family"`
}

// GetUserHandler handles GET /user requests.
type GetUserHandler struct {
	svc *appsvcs.Services
}

// NewGetUserHandler returns a GetUserHandler backed by the given services.
func NewGetUserHandler(svc *appsvcs.Services) *GetUserHandler {
	return &GetUserHandler{svc: svc}
}

// Execute returns the authenticated member and its family.
func (h *GetUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	member, family, err := h.svc.Family.CurrentUser(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, UserResponse{
		User:   memberView(member),
		Family: familyView(family, member.Role),
	})
}

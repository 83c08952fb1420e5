package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/family/application/services"
)

// MembersResponse is returned by GET /family/members. JoinCode is present
// only when the caller is an admin.
type MembersResponse struct {
	FamilyName string       `json:"family_name"`
	JoinCode   string       `json:"join_code,omitempty"`
	Members    []MemberView `json:"members"`
}

// GetMembersHandler handles GET /family/members requests.
type GetMembersHandler struct {
	svc *appsvcs.Services
}

// NewGetMembersHandler returns a GetMembersHandler backed by the given services.
func NewGetMembersHandler(svc *appsvcs.Services) *GetMembersHandler {
	return &GetMembersHandler{svc: svc}
}

// Execute returns the caller's family roster.
func (h *GetMembersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	family, members, err := h.svc.Family.Members(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := MembersResponse{
		FamilyName: family.Name,
		Members:    make([]MemberView, len(members)),
	}
	if id.Role == auth.RoleAdmin {
		resp.JoinCode = family.JoinCode
	}
	for i, m := range members {
		resp.Members[i] = memberView(m)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

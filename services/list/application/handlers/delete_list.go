package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

// DeleteListHandler handles DELETE /lists/{listID} requests.
type DeleteListHandler struct {
	svc *appsvcs.Services
}

// NewDeleteListHandler returns a DeleteListHandler backed by the given services.
func NewDeleteListHandler(svc *appsvcs.Services) *DeleteListHandler {
	return &DeleteListHandler{svc: svc}
}

// Execute deletes a list and all of its items.
func (h *DeleteListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	listID, ok := urlID(r, "listID")
	if !ok {
		errhttp.WriteError(w, listdomain.ErrListNotFound)
		return
	}

	if err := h.svc.List.Delete(r.Context(), id, listID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

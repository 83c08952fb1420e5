package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

// DeleteItemHandler handles DELETE /lists/{listID}/items/{itemID} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute removes an item from a list the caller's family owns.
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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
	itemID, ok := urlID(r, "itemID")
	if !ok {
		errhttp.WriteError(w, listdomain.ErrListItemNotFound)
		return
	}

	if err := h.svc.List.DeleteItem(r.Context(), id, listID, itemID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

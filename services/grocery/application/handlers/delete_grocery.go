package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/grocery/application/services"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
)

// DeleteGroceryHandler handles DELETE /grocery/{itemID} requests.
type DeleteGroceryHandler struct {
	svc *appsvcs.Services
}

// NewDeleteGroceryHandler returns a DeleteGroceryHandler backed by the given services.
func NewDeleteGroceryHandler(svc *appsvcs.Services) *DeleteGroceryHandler {
	return &DeleteGroceryHandler{svc: svc}
}

// Execute removes a grocery item from the caller's family list.
func (h *DeleteGroceryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	itemID, ok := urlID(r, "itemID")
	if !ok {
		errhttp.WriteError(w, grocerydomain.ErrGroceryItemNotFound)
		return
	}

	if err := h.svc.Grocery.Delete(r.Context(), id, itemID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
)

// GetListsHandler handles GET /lists requests.
type GetListsHandler struct {
	svc *appsvcs.Services
}

// NewGetListsHandler returns a GetListsHandler backed by the given services.
func NewGetListsHandler(svc *appsvcs.Services) *GetListsHandler {
	return &GetListsHandler{svc: svc}
}

// Execute returns every list in the caller's family, items included,
// newest first.
func (h *GetListsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	lists, err := h.svc.List.List(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views := make([]appsvcs.ListView, 0, len(lists))
	for _, l := range lists {
		views = append(views, appsvcs.NewListView(l))
	}
	httpx.JSON(w, http.StatusOK, views)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/grocery/application/services"
)

// GetGroceryHandler handles GET /grocery requests with optional
// completed= and category= query filters.
type GetGroceryHandler struct {
	svc *appsvcs.Services
}

// NewGetGroceryHandler returns a GetGroceryHandler backed by the given services.
func NewGetGroceryHandler(svc *appsvcs.Services) *GetGroceryHandler {
	return &GetGroceryHandler{svc: svc}
}

// Execute returns the family's grocery items, priority descending then
// newest first. An unparsable completed= value is ignored rather than
// rejected, matching the lenient query-filter contract.
func (h *GetGroceryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var completed *bool
	if raw := r.URL.Query().Get("completed"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			completed = &v
		}
	}
	category := r.URL.Query().Get("category")

	items, err := h.svc.Grocery.List(r.Context(), id, completed, category)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views := make([]appsvcs.GroceryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, appsvcs.NewGroceryItemView(item))
	}
	httpx.JSON(w, http.StatusOK, views)
}

package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
)

// CreateListRequest is the request body for POST /lists. The family and
// creator are taken from the verified caller, never from the body.
type CreateListRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Color       string `json:"color" validate:"omitempty,max=32"`
	Icon        string `json:"icon" validate:"omitempty,max=16"`
}

// PostListHandler handles POST /lists requests.
type PostListHandler struct {
	svc *appsvcs.Services
}

// NewPostListHandler returns a PostListHandler backed by the given services.
func NewPostListHandler(svc *appsvcs.Services) *PostListHandler {
	return &PostListHandler{svc: svc}
}

// Execute creates a new list in the caller's family.
func (h *PostListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateListRequest](w, r)
	if !ok {
		return
	}

	list, err := h.svc.List.Create(r.Context(), id, appsvcs.CreateListParams{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, appsvcs.NewListView(list))
}

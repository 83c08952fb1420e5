package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
)

// UpdateListRequest is the request body for PUT /lists/{listID}. Absent
// fields are left unchanged.
type UpdateListRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Color       *string `json:"color" validate:"omitempty,max=32"`
	Icon        *string `json:"icon" validate:"omitempty,max=16"`
}

// PutListHandler handles PUT /lists/{listID} requests.
type PutListHandler struct {
	svc *appsvcs.Services
}

// NewPutListHandler returns a PutListHandler backed by the given services.
func NewPutListHandler(svc *appsvcs.Services) *PutListHandler {
	return &PutListHandler{svc: svc}
}

// Execute patches a list's metadata.
func (h *PutListHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[UpdateListRequest](w, r)
	if !ok {
		return
	}

	list, err := h.svc.List.Update(r.Context(), id, listID, appsvcs.ListPatch{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, appsvcs.NewListView(list))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

// AddItemRequest is the request body for POST /lists/{listID}/items.
type AddItemRequest struct {
	Text       string     `json:"text" validate:"required,min=1,max=500"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	DueDate    *time.Time `json:"due_date"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=low normal high"`
}

// PostItemHandler handles POST /lists/{listID}/items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute appends an item to a list the caller's family owns.
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.List.AddItem(r.Context(), id, listID, appsvcs.ItemParams{
		Text:       req.Text,
		AssignedTo: req.AssignedTo,
		DueDate:    req.DueDate,
		Priority:   req.Priority,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, appsvcs.NewItemView(item))
}

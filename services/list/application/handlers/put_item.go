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

// UpdateItemRequest is the request body for PUT /lists/{listID}/items/{itemID}.
// Absent fields are left unchanged. Toggling completed stamps or clears the
// completion metadata server side.
type UpdateItemRequest struct {
	Text       *string    `json:"text" validate:"omitempty,min=1,max=500"`
	Completed  *bool      `json:"completed"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	DueDate    *time.Time `json:"due_date"`
	Priority   *string    `json:"priority" validate:"omitempty,oneof=low normal high"`
}

// PutItemHandler handles PUT /lists/{listID}/items/{itemID} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute patches an item within a list the caller's family owns.
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.List.UpdateItem(r.Context(), id, listID, itemID, appsvcs.ItemPatch{
		Text:       req.Text,
		Completed:  req.Completed,
		AssignedTo: req.AssignedTo,
		DueDate:    req.DueDate,
		Priority:   req.Priority,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, appsvcs.NewItemView(item))
}

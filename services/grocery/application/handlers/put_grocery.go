package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/grocery/application/services"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
)

// UpdateGroceryRequest is the request body for PUT /grocery/{itemID}.
// Absent fields are left unchanged.
type UpdateGroceryRequest struct {
	Name       *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Quantity   *string    `json:"quantity" validate:"omitempty,max=32"`
	Unit       *string    `json:"unit" validate:"omitempty,oneof=piece kg g l ml dozen pack bottle can box bag"`
	Category   *string    `json:"category" validate:"omitempty,oneof=produce dairy meat seafood bakery frozen pantry beverages snacks household 'personal care' other"`
	Priority   *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes      *string    `json:"notes" validate:"omitempty,max=200"`
	Completed  *bool      `json:"completed"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	Recurring  *bool      `json:"recurring"`
	Frequency  *string    `json:"recurring_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
}

// PutGroceryHandler handles PUT /grocery/{itemID} requests.
type PutGroceryHandler struct {
	svc *appsvcs.Services
}

// NewPutGroceryHandler returns a PutGroceryHandler backed by the given services.
func NewPutGroceryHandler(svc *appsvcs.Services) *PutGroceryHandler {
	return &PutGroceryHandler{svc: svc}
}

// Execute patches a grocery item in the caller's family.
func (h *PutGroceryHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[UpdateGroceryRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Grocery.Update(r.Context(), id, itemID, appsvcs.Patch{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Category:   req.Category,
		Priority:   req.Priority,
		Notes:      req.Notes,
		Completed:  req.Completed,
		AssignedTo: req.AssignedTo,
		Recurring:  req.Recurring,
		Frequency:  req.Frequency,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, appsvcs.NewGroceryItemView(item))
}

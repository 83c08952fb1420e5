package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/grocery/application/services"
)

// CreateGroceryRequest is the request body for POST /grocery. Enum fields
// left empty take server-side defaults.
type CreateGroceryRequest struct {
	Name       string     `json:"name" validate:"required,min=1,max=200"`
	Quantity   string     `json:"quantity" validate:"omitempty,max=32"`
	Unit       string     `json:"unit" validate:"omitempty,oneof=piece kg g l ml dozen pack bottle can box bag"`
	Category   string     `json:"category" validate:"omitempty,oneof=produce dairy meat seafood bakery frozen pantry beverages snacks household 'personal care' other"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes      string     `json:"notes" validate:"max=200"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	Recurring  bool       `json:"recurring"`
	Frequency  string     `json:"recurring_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
}

// PostGroceryHandler handles POST /grocery requests.
type PostGroceryHandler struct {
	svc *appsvcs.Services
}

// NewPostGroceryHandler returns a PostGroceryHandler backed by the given services.
func NewPostGroceryHandler(svc *appsvcs.Services) *PostGroceryHandler {
	return &PostGroceryHandler{svc: svc}
}

// Execute adds a grocery item to the caller's family list.
func (h *PostGroceryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateGroceryRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Grocery.Create(r.Context(), id, appsvcs.CreateParams{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Category:   req.Category,
		Priority:   req.Priority,
		Notes:      req.Notes,
		AssignedTo: req.AssignedTo,
		Recurring:  req.Recurring,
		Frequency:  req.Frequency,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, appsvcs.NewGroceryItemView(item))
}

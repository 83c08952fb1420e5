package handlers

import (
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/calendar/application/services"
	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
)

// RSVPRequest is the request body for POST /events/{eventID}/rsvp.
type RSVPRequest struct {
	Response string `json:"response" validate:"required,oneof=pending accepted declined maybe"`
}

// PostRSVPHandler handles POST /events/{eventID}/rsvp requests.
type PostRSVPHandler struct {
	svc *appsvcs.Services
}

// NewPostRSVPHandler returns a PostRSVPHandler backed by the given services.
func NewPostRSVPHandler(svc *appsvcs.Services) *PostRSVPHandler {
	return &PostRSVPHandler{svc: svc}
}

// Execute records the caller's RSVP on an event. Repeat calls overwrite the
// previous response rather than adding a second attendee row.
func (h *PostRSVPHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	eventID, ok := urlID(r, "eventID")
	if !ok {
		errhttp.WriteError(w, calendardomain.ErrEventNotFound)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RSVPRequest](w, r)
	if !ok {
		return
	}

	event, err := h.svc.Events.RSVP(r.Context(), id, eventID, req.Response)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, appsvcs.NewEventView(event))
}

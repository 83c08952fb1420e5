package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	appsvcs "github.com/ghuser/familyhub/services/calendar/application/services"
)

// GetEventsHandler handles GET /events requests with optional start=, end=,
// and category= query filters.
type GetEventsHandler struct {
	svc *appsvcs.Services
}

// NewGetEventsHandler returns a GetEventsHandler backed by the given services.
func NewGetEventsHandler(svc *appsvcs.Services) *GetEventsHandler {
	return &GetEventsHandler{svc: svc}
}

// Execute returns the family's events overlapping the requested window,
// start ascending. Unparsable time values are ignored rather than rejected.
func (h *GetEventsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	start := parseTime(r.URL.Query().Get("start"))
	end := parseTime(r.URL.Query().Get("end"))
	category := r.URL.Query().Get("category")

	events, err := h.svc.Events.List(r.Context(), id, start, end, category)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views := make([]appsvcs.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, appsvcs.NewEventView(e))
	}
	httpx.JSON(w, http.StatusOK, views)
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/calendar/application/services"
	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
)

// UpdateEventRequest is the request body for PUT /events/{eventID}. Absent
// fields are left unchanged. Attendees cannot be written here; RSVP has its
// own endpoint.
type UpdateEventRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string            `json:"description" validate:"omitempty,max=1000"`
	StartDate   *time.Time         `json:"start_date"`
	EndDate     *time.Time         `json:"end_date"`
	AllDay      *bool              `json:"all_day"`
	Location    *string            `json:"location" validate:"omitempty,max=200"`
	Category    *string            `json:"category" validate:"omitempty,oneof=appointment birthday holiday school work social sports travel other"`
	Color       *string            `json:"color" validate:"omitempty,max=32"`
	Reminders   []ReminderRequest  `json:"reminders" validate:"omitempty,dive"`
	Recurring   *bool              `json:"recurring"`
	Recurrence  *RecurrenceRequest `json:"recurring_pattern"`
}

// PutEventHandler handles PUT /events/{eventID} requests.
type PutEventHandler struct {
	svc *appsvcs.Services
}

// NewPutEventHandler returns a PutEventHandler backed by the given services.
func NewPutEventHandler(svc *appsvcs.Services) *PutEventHandler {
	return &PutEventHandler{svc: svc}
}

// Execute patches an event in the caller's family calendar.
func (h *PutEventHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[UpdateEventRequest](w, r)
	if !ok {
		return
	}

	event, err := h.svc.Events.Update(r.Context(), id, eventID, appsvcs.Patch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Category:    req.Category,
		Color:       req.Color,
		Reminders:   toReminders(req.Reminders),
		Recurring:   req.Recurring,
		Recurrence:  toRecurrence(req.Recurrence),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, appsvcs.NewEventView(event))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/errhttp"
	"github.com/ghuser/familyhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/familyhub/pkg/validator"
	appsvcs "github.com/ghuser/familyhub/services/calendar/application/services"
	"github.com/ghuser/familyhub/services/calendar/domain/models"
)

// ReminderRequest is one reminder descriptor in an event payload.
type ReminderRequest struct {
	Type          string `json:"type" validate:"omitempty,oneof=notification email"`
	MinutesBefore int    `json:"minutes_before" validate:"omitempty,min=0,max=10080"`
}

// RecurrenceRequest is the recurrence pattern in an event payload.
type RecurrenceRequest struct {
	Frequency  string     `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	Interval   int        `json:"interval" validate:"omitempty,min=1"`
	EndDate    *time.Time `json:"end_date"`
	DaysOfWeek []int      `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string             `json:"title" validate:"required,min=1,max=200"`
	Description string             `json:"description" validate:"max=1000"`
	StartDate   time.Time          `json:"start_date" validate:"required"`
	EndDate     time.Time          `json:"end_date" validate:"required"`
	AllDay      bool               `json:"all_day"`
	Location    string             `json:"location" validate:"max=200"`
	Category    string             `json:"category" validate:"omitempty,oneof=appointment birthday holiday school work social sports travel other"`
	Color       string             `json:"color" validate:"omitempty,max=32"`
	Reminders   []ReminderRequest  `json:"reminders" validate:"omitempty,dive"`
	Recurring   bool               `json:"recurring"`
	Recurrence  *RecurrenceRequest `json:"recurring_pattern"`
}

// PostEventHandler handles POST /events requests.
type PostEventHandler struct {
	svc *appsvcs.Services
}

// NewPostEventHandler returns a PostEventHandler backed by the given services.
func NewPostEventHandler(svc *appsvcs.Services) *PostEventHandler {
	return &PostEventHandler{svc: svc}
}

// Execute creates a new event in the caller's family calendar.
func (h *PostEventHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateEventRequest](w, r)
	if !ok {
		return
	}

	event, err := h.svc.Events.Create(r.Context(), id, appsvcs.CreateParams{
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

	httpx.JSON(w, http.StatusCreated, appsvcs.NewEventView(event))
}

func toReminders(reqs []ReminderRequest) []models.Reminder {
	if reqs == nil {
		return nil
	}
	out := make([]models.Reminder, len(reqs))
	for i, rem := range reqs {
		out[i] = models.Reminder{Type: models.ReminderType(rem.Type), MinutesBefore: rem.MinutesBefore}
	}
	return out
}

func toRecurrence(req *RecurrenceRequest) *models.RecurrencePattern {
	if req == nil {
		return nil
	}
	return &models.RecurrencePattern{
		Frequency:  models.RecurrenceFrequency(req.Frequency),
		Interval:   req.Interval,
		EndDate:    req.EndDate,
		DaysOfWeek: req.DaysOfWeek,
	}
}

package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/calendar/domain/models"
)

// EventView is the canonical wire representation of an event. Broadcasts for
// event_created and event_updated carry this full shape so clients can apply
// them without a follow-up fetch.
type EventView struct {
	ID          uuid.UUID                 `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description,omitempty"`
	StartDate   time.Time                 `json:"start_date"`
	EndDate     time.Time                 `json:"end_date"`
	AllDay      bool                      `json:"all_day"`
	Location    string                    `json:"location,omitempty"`
	Category    string                    `json:"category"`
	Color       string                    `json:"color"`
	CreatedBy   uuid.UUID                 `json:"created_by"`
	Attendees   []AttendeeView            `json:"attendees"`
	Reminders   []models.Reminder         `json:"reminders"`
	Recurring   bool                      `json:"recurring"`
	Recurrence  *models.RecurrencePattern `json:"recurring_pattern,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// AttendeeView is one member's RSVP on the wire.
type AttendeeView struct {
	MemberID uuid.UUID `json:"member_id"`
	Response string    `json:"response"`
}

// NewEventView maps a domain Event onto its wire representation.
func NewEventView(e *models.Event) EventView {
	attendees := make([]AttendeeView, len(e.Attendees))
	for i, a := range e.Attendees {
		attendees[i] = AttendeeView{MemberID: a.MemberID, Response: string(a.Response)}
	}
	reminders := e.Reminders
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		AllDay:      e.AllDay,
		Location:    e.Location,
		Category:    string(e.Category),
		Color:       e.Color,
		CreatedBy:   e.CreatedBy,
		Attendees:   attendees,
		Reminders:   reminders,
		Recurring:   e.Recurring,
		Recurrence:  e.Recurrence,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/broadcast"
	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
	"github.com/ghuser/familyhub/services/calendar/domain/models"
	"github.com/ghuser/familyhub/services/calendar/domain/repositories"
)

// ReminderScheduler schedules pre-event reminders. Scheduling failures do
// not fail the mutation that triggered them: the event is already persisted.
type ReminderScheduler interface {
	Schedule(ctx context.Context, event *models.Event) error
}

// NopScheduler ignores all reminders. Used when no workflow backend is
// configured.
type NopScheduler struct{}

// Schedule implements ReminderScheduler.
func (NopScheduler) Schedule(context.Context, *models.Event) error { return nil }

// EventService is the mutation façade for calendar events. Every successful
// state change emits exactly one family-scoped broadcast.
type EventService struct {
	repo      repositories.EventRepository
	emitter   broadcast.Emitter
	scheduler ReminderScheduler
}

// NewEventService returns an EventService wired with the given repository,
// broadcast emitter, and reminder scheduler.
func NewEventService(repo repositories.EventRepository, emitter broadcast.Emitter, scheduler ReminderScheduler) *EventService {
	if scheduler == nil {
		scheduler = NopScheduler{}
	}
	return &EventService{repo: repo, emitter: emitter, scheduler: scheduler}
}

// CreateParams are the accepted fields for event creation.
type CreateParams struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	AllDay      bool
	Location    string
	Category    string
	Color       string
	Reminders   []models.Reminder
	Recurring   bool
	Recurrence  *models.RecurrencePattern
}

// Patch is the explicit allow-list of updatable event fields. Nil means
// unchanged. Attendees are never patched here; RSVP has its own operation.
type Patch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	AllDay      *bool
	Location    *string
	Category    *string
	Color       *string
	Reminders   []models.Reminder
	Recurring   *bool
	Recurrence  *models.RecurrencePattern
}

// Create validates and persists a new event, schedules its reminders, and
// broadcasts the canonical event.
func (s *EventService) Create(ctx context.Context, id auth.Identity, p CreateParams) (*models.Event, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, calendardomain.ErrInvalidEventTitle
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, calendardomain.ErrInvalidTimeWindow
	}
	category, err := models.ParseCategory(p.Category)
	if err != nil {
		return nil, err
	}
	reminders, err := normalizeReminders(p.Reminders)
	if err != nil {
		return nil, err
	}
	if p.Recurring {
		if err := validateRecurrence(p.Recurrence); err != nil {
			return nil, err
		}
	}

	event := models.NewEvent(id.FamilyID, id.MemberID, title, p.StartDate, p.EndDate)
	event.Description = p.Description
	event.AllDay = p.AllDay
	event.Location = p.Location
	event.Category = category
	if p.Color != "" {
		event.Color = p.Color
	}
	event.Reminders = reminders
	event.Recurring = p.Recurring
	if p.Recurring {
		event.Recurrence = p.Recurrence
	}

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	s.schedule(ctx, event)
	s.emit(ctx, broadcast.EventCreated, id.FamilyID, NewEventView(event))
	return event, nil
}

// List returns the family's events matching the filter, start ascending.
func (s *EventService) List(ctx context.Context, id auth.Identity, start, end *time.Time, category string) ([]*models.Event, error) {
	f := repositories.Filter{Start: start, End: end}
	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		f.Category = &c
	}

	events, err := s.repo.Find(ctx, id.FamilyID, f)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update applies an allow-listed patch, reschedules reminders when the time
// window or reminder set changed, and broadcasts the canonical event.
func (s *EventService) Update(ctx context.Context, id auth.Identity, eventID uuid.UUID, patch Patch) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id.FamilyID, eventID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, calendardomain.ErrInvalidEventTitle
		}
		event.Title = title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.StartDate != nil {
		event.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = *patch.EndDate
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, calendardomain.ErrInvalidTimeWindow
	}
	if patch.AllDay != nil {
		event.AllDay = *patch.AllDay
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Category != nil {
		category, err := models.ParseCategory(*patch.Category)
		if err != nil {
			return nil, err
		}
		event.Category = category
	}
	if patch.Color != nil && *patch.Color != "" {
		event.Color = *patch.Color
	}
	if patch.Reminders != nil {
		reminders, err := normalizeReminders(patch.Reminders)
		if err != nil {
			return nil, err
		}
		event.Reminders = reminders
	}
	if patch.Recurring != nil {
		event.Recurring = *patch.Recurring
		if !event.Recurring {
			event.Recurrence = nil
		}
	}
	if patch.Recurrence != nil {
		if err := validateRecurrence(patch.Recurrence); err != nil {
			return nil, err
		}
		event.Recurrence = patch.Recurrence
	}
	if event.Recurring && event.Recurrence == nil {
		return nil, calendardomain.ErrInvalidRecurrence
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.schedule(ctx, event)
	s.emit(ctx, broadcast.EventUpdated, id.FamilyID, NewEventView(event))
	return event, nil
}

// RSVP records the caller's response on an event. Repeated calls by the same
// member update the existing attendee row: exactly one row exists per member
// per event. The updated canonical event is broadcast.
func (s *EventService) RSVP(ctx context.Context, id auth.Identity, eventID uuid.UUID, response string) (*models.Event, error) {
	resp, err := models.ParseResponse(response)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAttendee(ctx, id.FamilyID, eventID, id.MemberID, resp); err != nil {
		return nil, err
	}
	event, err := s.repo.GetByID(ctx, id.FamilyID, eventID)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, broadcast.EventUpdated, id.FamilyID, NewEventView(event))
	return event, nil
}

// schedule hands the event's reminders to the workflow backend. A scheduling
// failure is logged by the scheduler itself and never surfaced: the write
// already persisted.
func (s *EventService) schedule(ctx context.Context, event *models.Event) {
	if len(event.Reminders) == 0 {
		return
	}
	_ = s.scheduler.Schedule(ctx, event)
}

// emit publishes a family-scoped broadcast after a successful mutation.
func (s *EventService) emit(ctx context.Context, name string, familyID uuid.UUID, payload any) {
	_ = s.emitter.Emit(ctx, broadcast.Event{Name: name, Scope: broadcast.FamilyScope(familyID), Payload: payload})
}

func normalizeReminders(reminders []models.Reminder) ([]models.Reminder, error) {
	out := make([]models.Reminder, 0, len(reminders))
	for _, rem := range reminders {
		typ, err := models.ParseReminderType(string(rem.Type))
		if err != nil {
			return nil, err
		}
		if rem.MinutesBefore < 0 {
			return nil, calendardomain.ErrInvalidReminder
		}
		if rem.MinutesBefore == 0 {
			rem.MinutesBefore = 15
		}
		rem.Type = typ
		out = append(out, rem)
	}
	return out, nil
}

func validateRecurrence(p *models.RecurrencePattern) error {
	if p == nil {
		return calendardomain.ErrInvalidRecurrence
	}
	if _, err := models.ParseRecurrenceFrequency(string(p.Frequency)); err != nil {
		return err
	}
	if p.Interval <= 0 {
		p.Interval = 1
	}
	for _, d := range p.DaysOfWeek {
		if d < 0 || d > 6 {
			return calendardomain.ErrInvalidRecurrence
		}
	}
	return nil
}

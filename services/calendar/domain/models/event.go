package models

import (
	"time"

	"github.com/google/uuid"

	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
)

// DefaultColor applied when an event is created without one.
const DefaultColor = "#3B82F6"

// Category of a calendar event.
type Category string

const (
	CategoryAppointment Category = "appointment"
	CategoryBirthday    Category = "birthday"
	CategoryHoliday     Category = "holiday"
	CategorySchool      Category = "school"
	CategoryWork        Category = "work"
	CategorySocial      Category = "social"
	CategorySports      Category = "sports"
	CategoryTravel      Category = "travel"
	CategoryOther       Category = "other"
)

// ParseCategory validates a category value, defaulting empty to other.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case "":
		return CategoryOther, nil
	case CategoryAppointment, CategoryBirthday, CategoryHoliday, CategorySchool,
		CategoryWork, CategorySocial, CategorySports, CategoryTravel, CategoryOther:
		return Category(s), nil
	default:
		return "", calendardomain.ErrInvalidCategory
	}
}

// Response is a member's RSVP state on an event.
type Response string

const (
	ResponsePending  Response = "pending"
	ResponseAccepted Response = "accepted"
	ResponseDeclined Response = "declined"
	ResponseMaybe    Response = "maybe"
)

// ParseResponse validates an RSVP response value. Unlike the other enums it
// has no empty default: callers must say what they answered.
func ParseResponse(s string) (Response, error) {
	switch Response(s) {
	case ResponsePending, ResponseAccepted, ResponseDeclined, ResponseMaybe:
		return Response(s), nil
	default:
		return "", calendardomain.ErrInvalidResponse
	}
}

// ReminderType selects the delivery channel for a reminder.
type ReminderType string

const (
	ReminderNotification ReminderType = "notification"
	ReminderEmail        ReminderType = "email"
)

// ParseReminderType validates a reminder type, defaulting empty to
// notification.
func ParseReminderType(s string) (ReminderType, error) {
	switch ReminderType(s) {
	case "":
		return ReminderNotification, nil
	case ReminderNotification, ReminderEmail:
		return ReminderType(s), nil
	default:
		return "", calendardomain.ErrInvalidReminder
	}
}

// RecurrenceFrequency of a repeating event.
type RecurrenceFrequency string

const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
	RecurYearly  RecurrenceFrequency = "yearly"
)

// ParseRecurrenceFrequency validates a recurrence frequency.
func ParseRecurrenceFrequency(s string) (RecurrenceFrequency, error) {
	switch RecurrenceFrequency(s) {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return RecurrenceFrequency(s), nil
	default:
		return "", calendardomain.ErrInvalidRecurrence
	}
}

// Attendee is a sub-entity of an Event: one member's RSVP. At most one
// attendee exists per member per event.
type Attendee struct {
	MemberID uuid.UUID
	Response Response
}

// Reminder describes a pre-event notification.
type Reminder struct {
	Type          ReminderType `json:"type"`
	MinutesBefore int          `json:"minutes_before"`
}

// RecurrencePattern describes how a recurring event repeats. DaysOfWeek uses
// 0 = Sunday, matching time.Weekday.
type RecurrencePattern struct {
	Frequency  RecurrenceFrequency `json:"frequency"`
	Interval   int                 `json:"interval"`
	EndDate    *time.Time          `json:"end_date,omitempty"`
	DaysOfWeek []int               `json:"days_of_week,omitempty"`
}

// Event is a family-scoped calendar entry with attendee sub-entities.
type Event struct {
	ID          uuid.UUID
	FamilyID    uuid.UUID
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	AllDay      bool
	Location    string
	Category    Category
	Color       string
	CreatedBy   uuid.UUID
	Attendees   []Attendee
	Reminders   []Reminder
	Recurring   bool
	Recurrence  *RecurrencePattern
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent constructs an Event with generated ID and display defaults.
func NewEvent(familyID, createdBy uuid.UUID, title string, start, end time.Time) *Event {
	now := time.Now().UTC()
	return &Event{
		ID:        uuid.New(),
		FamilyID:  familyID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Category:  CategoryOther,
		Color:     DefaultColor,
		CreatedBy: createdBy,
		Attendees: []Attendee{},
		Reminders: []Reminder{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetRSVP records a member's response, updating the existing attendee in
// place when one exists. The attendee list never holds two rows for the same
// member.
func (e *Event) SetRSVP(memberID uuid.UUID, response Response) {
	for i := range e.Attendees {
		if e.Attendees[i].MemberID == memberID {
			e.Attendees[i].Response = response
			return
		}
	}
	e.Attendees = append(e.Attendees, Attendee{MemberID: memberID, Response: response})
}

// NextReminderAt returns the earliest reminder fire time for the event, or
// false when the event has no reminders.
func (e *Event) NextReminderAt() (time.Time, bool) {
	var (
		earliest time.Time
		found    bool
	)
	for _, rem := range e.Reminders {
		at := e.StartDate.Add(-time.Duration(rem.MinutesBefore) * time.Minute)
		if !found || at.Before(earliest) {
			earliest = at
			found = true
		}
	}
	return earliest, found
}

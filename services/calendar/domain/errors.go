package domain

import "errors"

var (
	// ErrEventNotFound is returned when an event id does not resolve within
	// the caller's family.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidEventTitle is returned when an event title is empty or
	// whitespace only.
	ErrInvalidEventTitle = errors.New("event title is required")

	// ErrInvalidTimeWindow is returned when an event's end precedes its start.
	ErrInvalidTimeWindow = errors.New("event end must not precede start")

	// ErrInvalidCategory is returned for an unknown event category.
	ErrInvalidCategory = errors.New("invalid event category")

	// ErrInvalidResponse is returned for an unknown RSVP response.
	ErrInvalidResponse = errors.New("invalid rsvp response")

	// ErrInvalidReminder is returned for a malformed reminder descriptor.
	ErrInvalidReminder = errors.New("invalid reminder")

	// ErrInvalidRecurrence is returned for a malformed recurrence pattern.
	ErrInvalidRecurrence = errors.New("invalid recurrence pattern")
)

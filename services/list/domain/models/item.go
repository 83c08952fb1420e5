package models

import (
	"time"

	"github.com/google/uuid"

	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

// Priority of a list item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority value, defaulting empty to normal.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityNormal, nil
	case PriorityLow, PriorityNormal, PriorityHigh:
		return Priority(s), nil
	default:
		return "", listdomain.ErrInvalidPriority
	}
}

// Item is a sub-entity of a List. Its ID is unique within the parent list,
// assigned once, and never recycled. CompletedBy and CompletedAt are set and
// cleared together; there is no state where one is present without the other.
type Item struct {
	ID          uuid.UUID
	Text        string
	Completed   bool
	CompletedBy *uuid.UUID
	CompletedAt *time.Time
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	Priority    Priority
	Position    int // creation order within the list; stable across deletes
	CreatedAt   time.Time
}

// NewItem constructs an Item with a fresh collision-resistant sub-id.
// Position is assigned by the store at insert time.
func NewItem(text string, assignedTo *uuid.UUID, dueDate *time.Time, priority Priority) *Item {
	return &Item{
		ID:         uuid.New(),
		Text:       text,
		Priority:   priority,
		AssignedTo: assignedTo,
		DueDate:    dueDate,
		CreatedAt:  time.Now().UTC(),
	}
}

// Complete marks the item done, stamping the completing member and timestamp
// as a pair.
func (i *Item) Complete(by uuid.UUID, at time.Time) {
	i.Completed = true
	i.CompletedBy = &by
	i.CompletedAt = &at
}

// Uncomplete clears the completion state, dropping both completion fields.
func (i *Item) Uncomplete() {
	i.Completed = false
	i.CompletedBy = nil
	i.CompletedAt = nil
}

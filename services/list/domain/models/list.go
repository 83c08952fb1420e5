package models

import (
	"time"

	"github.com/google/uuid"
)

// Display defaults applied when a list is created without explicit metadata.
const (
	DefaultColor = "#f97316"
	DefaultIcon  = "📝"
)

// List is a shared, family-scoped collection of items. Items are nested
// sub-entities addressed by their own sub-id; the id is assigned once at
// creation and never reused within the list's lifetime, so a broadcast
// referencing an item can never be confused with a later item.
type List struct {
	ID          uuid.UUID
	FamilyID    uuid.UUID // trust boundary, always filter by this in queries
	Title       string
	Description string
	Color       string
	Icon        string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []Item // ordered by creation (Position ascending)
}

// NewList constructs a List aggregate with generated ID and display defaults.
func NewList(familyID, createdBy uuid.UUID, title, description, color, icon string) *List {
	if color == "" {
		color = DefaultColor
	}
	if icon == "" {
		icon = DefaultIcon
	}
	now := time.Now().UTC()
	return &List{
		ID:          uuid.New(),
		FamilyID:    familyID,
		Title:       title,
		Description: description,
		Color:       color,
		Icon:        icon,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       []Item{},
	}
}

// FindItem returns a pointer to the item with the given sub-id, or nil.
func (l *List) FindItem(itemID uuid.UUID) *Item {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return &l.Items[i]
		}
	}
	return nil
}

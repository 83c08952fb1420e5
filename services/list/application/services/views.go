package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/list/domain/models"
)

// ListView is the canonical wire representation of a List. It is used both
// for HTTP responses and broadcast payloads so connected clients can apply
// events without a follow-up fetch.
type ListView struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Items       []ItemView `json:"items"`
}

// ItemView is the canonical wire representation of a list item.
// completed_by and completed_at appear together or not at all.
type ItemView struct {
	ID          uuid.UUID  `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedBy *uuid.UUID `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ItemEventPayload is the broadcast payload for item adds and updates: the
// sub-entity plus its parent id, never the whole parent.
type ItemEventPayload struct {
	ListID uuid.UUID `json:"list_id"`
	Item   ItemView  `json:"item"`
}

// ItemDeletedPayload carries just the identifiers a client needs to drop the
// item locally.
type ItemDeletedPayload struct {
	ListID uuid.UUID `json:"list_id"`
	ItemID uuid.UUID `json:"item_id"`
}

// ListDeletedPayload carries the deleted list's id.
type ListDeletedPayload struct {
	ListID uuid.UUID `json:"list_id"`
}

// NewListView maps a domain List onto its wire representation.
func NewListView(l *models.List) ListView {
	items := make([]ItemView, len(l.Items))
	for i := range l.Items {
		items[i] = NewItemView(&l.Items[i])
	}
	return ListView{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Color:       l.Color,
		Icon:        l.Icon,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		Items:       items,
	}
}

// NewItemView maps a domain Item onto its wire representation.
func NewItemView(i *models.Item) ItemView {
	return ItemView{
		ID:          i.ID,
		Text:        i.Text,
		Completed:   i.Completed,
		CompletedBy: i.CompletedBy,
		CompletedAt: i.CompletedAt,
		AssignedTo:  i.AssignedTo,
		DueDate:     i.DueDate,
		Priority:    string(i.Priority),
		CreatedAt:   i.CreatedAt,
	}
}

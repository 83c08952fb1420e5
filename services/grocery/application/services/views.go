package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/grocery/domain/models"
)

// GroceryItemView is the canonical wire representation of a grocery item,
// shared by HTTP responses and broadcast payloads. completed_by and
// completed_at appear together or not at all.
type GroceryItemView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Quantity    string     `json:"quantity"`
	Unit        string     `json:"unit"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Notes       string     `json:"notes,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedBy *uuid.UUID `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AddedBy     uuid.UUID  `json:"added_by"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	Recurring   bool       `json:"recurring"`
	Frequency   string     `json:"recurring_frequency"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GroceryItemDeletedPayload carries the deleted item's id.
type GroceryItemDeletedPayload struct {
	ItemID uuid.UUID `json:"item_id"`
}

// NewGroceryItemView maps a domain GroceryItem onto its wire representation.
func NewGroceryItemView(g *models.GroceryItem) GroceryItemView {
	return GroceryItemView{
		ID:          g.ID,
		Name:        g.Name,
		Quantity:    g.Quantity,
		Unit:        string(g.Unit),
		Category:    string(g.Category),
		Priority:    string(g.Priority),
		Notes:       g.Notes,
		Completed:   g.Completed,
		CompletedBy: g.CompletedBy,
		CompletedAt: g.CompletedAt,
		AddedBy:     g.AddedBy,
		AssignedTo:  g.AssignedTo,
		Recurring:   g.Recurring,
		Frequency:   string(g.Frequency),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

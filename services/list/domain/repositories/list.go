package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/list/domain/models"
)

// ListRepository is the persistence interface for the List aggregate and its
// Item sub-entities. Every method except Save takes the caller's family id
// and resolves the aggregate by id AND family in the same query, so a valid
// id from another family behaves exactly like an absent id.
//
// Updates are last-write-wins single statements: no optimistic locking, no
// read-then-write transaction across callers. Concurrent writers may lose an
// update silently; that is the accepted contract.
type ListRepository interface {
	Save(ctx context.Context, list *models.List) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.List, error)

	// FindByFamilyID returns all lists of a family, newest first, items in
	// creation order.
	FindByFamilyID(ctx context.Context, familyID uuid.UUID) ([]*models.List, error)

	// UpdateMeta persists the list's display fields and bumps updated_at.
	UpdateMeta(ctx context.Context, list *models.List) error

	// Delete removes a list and its items. Returns ErrListNotFound when the
	// id does not resolve within the family.
	Delete(ctx context.Context, familyID, id uuid.UUID) error

	// Exists reports whether a list with the given ID belongs to the family.
	// Used by the realtime handshake to vet room joins.
	Exists(ctx context.Context, familyID, id uuid.UUID) (bool, error)

	// AddItem appends an item to the list with the next position. The item's
	// Position field is populated on return.
	AddItem(ctx context.Context, familyID, listID uuid.UUID, item *models.Item) error

	// GetItem resolves a single item by sub-id within a family-scoped list.
	GetItem(ctx context.Context, familyID, listID, itemID uuid.UUID) (*models.Item, error)

	// UpdateItem persists all mutable item fields in one statement.
	UpdateItem(ctx context.Context, familyID, listID uuid.UUID, item *models.Item) error

	// DeleteItem removes an item by sub-id. Remaining items keep their
	// positions, preserving relative order.
	DeleteItem(ctx context.Context, familyID, listID, itemID uuid.UUID) error
}

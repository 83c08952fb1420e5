package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/services/grocery/domain/models"
)

// Filter narrows a grocery query. Nil fields mean no constraint.
type Filter struct {
	Completed *bool
	Category  *models.Category
}

// GroceryRepository is the persistence interface for grocery items. All
// lookups are family scoped: an id from another family resolves like an
// absent id. Updates are last-write-wins single statements.
type GroceryRepository interface {
	Save(ctx context.Context, item *models.GroceryItem) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.GroceryItem, error)

	// Find returns the family's items matching the filter, ordered priority
	// descending then newest first.
	Find(ctx context.Context, familyID uuid.UUID, f Filter) ([]*models.GroceryItem, error)

	// Update persists all mutable fields in one statement.
	Update(ctx context.Context, item *models.GroceryItem) error

	// Delete removes an item. Returns ErrGroceryItemNotFound when the id
	// does not resolve within the family.
	Delete(ctx context.Context, familyID, id uuid.UUID) error
}

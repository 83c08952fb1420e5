package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/broadcast"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
	"github.com/ghuser/familyhub/services/grocery/domain/models"
	"github.com/ghuser/familyhub/services/grocery/domain/repositories"
)

// GroceryService is the mutation façade for the shared grocery list. Every
// successful state change emits exactly one family-scoped broadcast; failed
// operations never broadcast.
type GroceryService struct {
	repo    repositories.GroceryRepository
	emitter broadcast.Emitter
}

// NewGroceryService returns a GroceryService wired with the given repository
// and broadcast emitter.
func NewGroceryService(repo repositories.GroceryRepository, emitter broadcast.Emitter) *GroceryService {
	return &GroceryService{repo: repo, emitter: emitter}
}

// CreateParams are the accepted fields when adding a grocery item. Enum
// fields left empty take their defaults.
type CreateParams struct {
	Name       string
	Quantity   string
	Unit       string
	Category   string
	Priority   string
	Notes      string
	AssignedTo *uuid.UUID
	Recurring  bool
	Frequency  string
}

// Patch is the explicit allow-list of updatable grocery item fields. Nil
// means unchanged. Setting Completed stamps or clears the completion pair.
type Patch struct {
	Name       *string
	Quantity   *string
	Unit       *string
	Category   *string
	Priority   *string
	Notes      *string
	Completed  *bool
	AssignedTo *uuid.UUID
	Recurring  *bool
	Frequency  *string
}

// Create validates and persists a new grocery item, then broadcasts it.
func (s *GroceryService) Create(ctx context.Context, id auth.Identity, p CreateParams) (*models.GroceryItem, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, grocerydomain.ErrInvalidItemName
	}
	unit, err := models.ParseUnit(p.Unit)
	if err != nil {
		return nil, err
	}
	category, err := models.ParseCategory(p.Category)
	if err != nil {
		return nil, err
	}
	priority, err := models.ParsePriority(p.Priority)
	if err != nil {
		return nil, err
	}
	frequency, err := models.ParseFrequency(p.Frequency)
	if err != nil {
		return nil, err
	}

	item := models.NewGroceryItem(id.FamilyID, id.MemberID, name, p.Quantity, unit, category, priority)
	item.Notes = p.Notes
	item.AssignedTo = p.AssignedTo
	item.Recurring = p.Recurring
	item.Frequency = frequency

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save grocery item: %w", err)
	}

	s.emit(ctx, broadcast.GroceryItemAdded, id.FamilyID, NewGroceryItemView(item))
	return item, nil
}

// List returns the family's grocery items matching the filter, ordered by
// priority descending then newest first.
func (s *GroceryService) List(ctx context.Context, id auth.Identity, completed *bool, category string) ([]*models.GroceryItem, error) {
	f := repositories.Filter{Completed: completed}
	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		f.Category = &c
	}

	items, err := s.repo.Find(ctx, id.FamilyID, f)
	if err != nil {
		return nil, fmt.Errorf("list grocery items: %w", err)
	}
	return items, nil
}

// Update applies an allow-listed patch to a grocery item. A completion
// toggle stamps completing member + timestamp together (true) or clears both
// (false).
func (s *GroceryService) Update(ctx context.Context, id auth.Identity, itemID uuid.UUID, patch Patch) (*models.GroceryItem, error) {
	item, err := s.repo.GetByID(ctx, id.FamilyID, itemID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, grocerydomain.ErrInvalidItemName
		}
		item.Name = name
	}
	if patch.Quantity != nil && *patch.Quantity != "" {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		unit, err := models.ParseUnit(*patch.Unit)
		if err != nil {
			return nil, err
		}
		item.Unit = unit
	}
	if patch.Category != nil {
		category, err := models.ParseCategory(*patch.Category)
		if err != nil {
			return nil, err
		}
		item.Category = category
	}
	if patch.Priority != nil {
		priority, err := models.ParsePriority(*patch.Priority)
		if err != nil {
			return nil, err
		}
		item.Priority = priority
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.AssignedTo != nil {
		item.AssignedTo = patch.AssignedTo
	}
	if patch.Recurring != nil {
		item.Recurring = *patch.Recurring
	}
	if patch.Frequency != nil {
		frequency, err := models.ParseFrequency(*patch.Frequency)
		if err != nil {
			return nil, err
		}
		item.Frequency = frequency
	}
	if patch.Completed != nil {
		if *patch.Completed {
			item.Complete(id.MemberID, time.Now().UTC())
		} else {
			item.Uncomplete()
		}
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.emit(ctx, broadcast.GroceryItemUpdated, id.FamilyID, NewGroceryItemView(item))
	return item, nil
}

// Delete removes a grocery item and broadcasts its id.
func (s *GroceryService) Delete(ctx context.Context, id auth.Identity, itemID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id.FamilyID, itemID); err != nil {
		return err
	}

	s.emit(ctx, broadcast.GroceryItemDeleted, id.FamilyID, GroceryItemDeletedPayload{ItemID: itemID})
	return nil
}

// emit publishes a family-scoped broadcast after a successful mutation.
// Fan-out is best-effort once the write persisted.
func (s *GroceryService) emit(ctx context.Context, name string, familyID uuid.UUID, payload any) {
	_ = s.emitter.Emit(ctx, broadcast.Event{Name: name, Scope: broadcast.FamilyScope(familyID), Payload: payload})
}

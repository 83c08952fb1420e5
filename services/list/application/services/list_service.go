package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/broadcast"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
	"github.com/ghuser/familyhub/services/list/domain/models"
	"github.com/ghuser/familyhub/services/list/domain/repositories"
)

// ListService is the mutation façade for lists and their items. Every
// operation resolves the target by id and the caller's family in one query,
// and every successful state change emits exactly one broadcast. Failed
// operations never broadcast.
type ListService struct {
	repo    repositories.ListRepository
	emitter broadcast.Emitter
}

// NewListService returns a ListService wired with the given repository and
// broadcast emitter.
func NewListService(repo repositories.ListRepository, emitter broadcast.Emitter) *ListService {
	return &ListService{repo: repo, emitter: emitter}
}

// CreateListParams are the accepted fields for list creation. The family and
// creator always come from the verified caller identity, never the payload.
type CreateListParams struct {
	Title       string
	Description string
	Color       string
	Icon        string
}

// ListPatch is the explicit allow-list of updatable list fields. Nil means
// unchanged. Family, creator, and item ids can never be patched.
type ListPatch struct {
	Title       *string
	Description *string
	Color       *string
	Icon        *string
}

// ItemParams are the accepted fields when adding an item.
type ItemParams struct {
	Text       string
	AssignedTo *uuid.UUID
	DueDate    *time.Time
	Priority   string
}

// ItemPatch is the explicit allow-list of updatable item fields. Setting
// Completed stamps or clears the completion pair atomically.
type ItemPatch struct {
	Text       *string
	Completed  *bool
	AssignedTo *uuid.UUID
	DueDate    *time.Time
	Priority   *string
}

// Create validates and persists a new list, then broadcasts it to the
// caller's family.
func (s *ListService) Create(ctx context.Context, id auth.Identity, p CreateListParams) (*models.List, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, listdomain.ErrInvalidListTitle
	}

	list := models.NewList(id.FamilyID, id.MemberID, title, p.Description, p.Color, p.Icon)
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("save list: %w", err)
	}

	s.emit(ctx, broadcast.ListCreated, broadcast.FamilyScope(id.FamilyID), NewListView(list))
	return list, nil
}

// List returns all lists of the caller's family, newest first. This is the
// resynchronization read for clients recovering from missed broadcasts.
func (s *ListService) List(ctx context.Context, id auth.Identity) ([]*models.List, error) {
	lists, err := s.repo.FindByFamilyID(ctx, id.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

// Update applies an allow-listed patch to a list's display fields and
// broadcasts the canonical updated list.
func (s *ListService) Update(ctx context.Context, id auth.Identity, listID uuid.UUID, patch ListPatch) (*models.List, error) {
	list, err := s.repo.GetByID(ctx, id.FamilyID, listID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, listdomain.ErrInvalidListTitle
		}
		list.Title = title
	}
	if patch.Description != nil {
		list.Description = *patch.Description
	}
	if patch.Color != nil {
		list.Color = *patch.Color
	}
	if patch.Icon != nil {
		list.Icon = *patch.Icon
	}
	list.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateMeta(ctx, list); err != nil {
		return nil, err
	}

	s.emit(ctx, broadcast.ListUpdated, broadcast.ListScope(id.FamilyID, list.ID), NewListView(list))
	return list, nil
}

// Delete removes a list and broadcasts its id. Clients drop local state
// without a re-fetch.
func (s *ListService) Delete(ctx context.Context, id auth.Identity, listID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id.FamilyID, listID); err != nil {
		return err
	}

	s.emit(ctx, broadcast.ListDeleted, broadcast.ListScope(id.FamilyID, listID), ListDeletedPayload{ListID: listID})
	return nil
}

// AddItem appends an item to a family-scoped list. The item receives a fresh
// sub-id that is never reused within the list, so followers can key local
// state by it safely.
func (s *ListService) AddItem(ctx context.Context, id auth.Identity, listID uuid.UUID, p ItemParams) (*models.Item, error) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return nil, listdomain.ErrInvalidItemText
	}
	priority, err := models.ParsePriority(p.Priority)
	if err != nil {
		return nil, err
	}

	item := models.NewItem(text, p.AssignedTo, p.DueDate, priority)
	if err := s.repo.AddItem(ctx, id.FamilyID, listID, item); err != nil {
		return nil, err
	}

	s.emit(ctx, broadcast.ListItemAdded, broadcast.ListScope(id.FamilyID, listID),
		ItemEventPayload{ListID: listID, Item: NewItemView(item)})
	return item, nil
}

// UpdateItem applies an allow-listed patch to an item. A completion toggle
// stamps completing member + timestamp together (true) or clears both
// (false); no state exists where only one of the pair is set.
func (s *ListService) UpdateItem(ctx context.Context, id auth.Identity, listID, itemID uuid.UUID, patch ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, id.FamilyID, listID, itemID)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, listdomain.ErrInvalidItemText
		}
		item.Text = text
	}
	if patch.Priority != nil {
		priority, err := models.ParsePriority(*patch.Priority)
		if err != nil {
			return nil, err
		}
		item.Priority = priority
	}
	if patch.AssignedTo != nil {
		item.AssignedTo = patch.AssignedTo
	}
	if patch.DueDate != nil {
		item.DueDate = patch.DueDate
	}
	if patch.Completed != nil {
		if *patch.Completed {
			item.Complete(id.MemberID, time.Now().UTC())
		} else {
			item.Uncomplete()
		}
	}

	if err := s.repo.UpdateItem(ctx, id.FamilyID, listID, item); err != nil {
		return nil, err
	}

	s.emit(ctx, broadcast.ListItemUpdated, broadcast.ListScope(id.FamilyID, listID),
		ItemEventPayload{ListID: listID, Item: NewItemView(item)})
	return item, nil
}

// DeleteItem removes an item by sub-id. Remaining items keep their sub-ids
// and relative order.
func (s *ListService) DeleteItem(ctx context.Context, id auth.Identity, listID, itemID uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, id.FamilyID, listID, itemID); err != nil {
		return err
	}

	s.emit(ctx, broadcast.ListItemDeleted, broadcast.ListScope(id.FamilyID, listID),
		ItemDeletedPayload{ListID: listID, ItemID: itemID})
	return nil
}

// emit publishes a broadcast after a successful mutation. Fan-out is
// best-effort: an emit failure is not surfaced to the caller whose write
// already persisted.
func (s *ListService) emit(ctx context.Context, name string, scope broadcast.Scope, payload any) {
	_ = s.emitter.Emit(ctx, broadcast.Event{Name: name, Scope: scope, Payload: payload})
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/broadcast"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
	"github.com/ghuser/familyhub/services/grocery/domain/models"
	"github.com/ghuser/familyhub/services/grocery/domain/repositories"
)

type recordingEmitter struct {
	events []broadcast.Event
}

func (e *recordingEmitter) Emit(_ context.Context, ev broadcast.Event) error {
	e.events = append(e.events, ev)
	return nil
}

func (e *recordingEmitter) last(t *testing.T) broadcast.Event {
	t.Helper()
	if len(e.events) == 0 {
		t.Fatal("expected a broadcast, got none")
	}
	return e.events[len(e.events)-1]
}

type fakeGroceryRepo struct {
	items map[uuid.UUID]*models.GroceryItem
}

func newFakeGroceryRepo() *fakeGroceryRepo {
	return &fakeGroceryRepo{items: make(map[uuid.UUID]*models.GroceryItem)}
}

func (r *fakeGroceryRepo) Save(_ context.Context, item *models.GroceryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeGroceryRepo) GetByID(_ context.Context, familyID, id uuid.UUID) (*models.GroceryItem, error) {
	item, ok := r.items[id]
	if !ok || item.FamilyID != familyID {
		return nil, grocerydomain.ErrGroceryItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeGroceryRepo) Find(_ context.Context, familyID uuid.UUID, f repositories.Filter) ([]*models.GroceryItem, error) {
	var out []*models.GroceryItem
	for _, item := range r.items {
		if item.FamilyID != familyID {
			continue
		}
		if f.Completed != nil && item.Completed != *f.Completed {
			continue
		}
		if f.Category != nil && item.Category != *f.Category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeGroceryRepo) Update(_ context.Context, item *models.GroceryItem) error {
	existing, ok := r.items[item.ID]
	if !ok || existing.FamilyID != item.FamilyID {
		return grocerydomain.ErrGroceryItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeGroceryRepo) Delete(_ context.Context, familyID, id uuid.UUID) error {
	item, ok := r.items[id]
	if !ok || item.FamilyID != familyID {
		return grocerydomain.ErrGroceryItemNotFound
	}
	delete(r.items, id)
	return nil
}

func testIdentity() auth.Identity {
	return auth.Identity{MemberID: uuid.New(), FamilyID: uuid.New(), Role: auth.RoleMember}
}

func TestCreateGroceryItem_Defaults(t *testing.T) {
	emitter := &recordingEmitter{}
	svc := NewGroceryService(newFakeGroceryRepo(), emitter)
	id := testIdentity()

	item, err := svc.Create(context.Background(), id, CreateParams{Name: "  Milk  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Name != "Milk" {
		t.Errorf("expected trimmed name, got %q", item.Name)
	}
	if item.Quantity != "1" {
		t.Errorf("expected default quantity, got %q", item.Quantity)
	}
	if item.Unit != models.UnitPiece {
		t.Errorf("expected default unit, got %q", item.Unit)
	}
	if item.Category != models.CategoryOther {
		t.Errorf("expected default category, got %q", item.Category)
	}
	if item.Priority != models.PriorityMedium {
		t.Errorf("expected default priority, got %q", item.Priority)
	}
	if item.AddedBy != id.MemberID || item.FamilyID != id.FamilyID {
		t.Error("family and adder must come from the caller identity")
	}

	ev := emitter.last(t)
	if ev.Name != broadcast.GroceryItemAdded {
		t.Errorf("expected %q broadcast, got %q", broadcast.GroceryItemAdded, ev.Name)
	}
	if ev.Scope.FamilyID != id.FamilyID || ev.Scope.ListID != nil {
		t.Errorf("grocery broadcasts are family-scoped: %+v", ev.Scope)
	}
	if len(emitter.events) != 1 {
		t.Errorf("expected exactly one broadcast, got %d", len(emitter.events))
	}
}

func TestCreateGroceryItem_Rejections(t *testing.T) {
	emitter := &recordingEmitter{}
	svc := NewGroceryService(newFakeGroceryRepo(), emitter)
	id := testIdentity()

	cases := []struct {
		name string
		p    CreateParams
		want error
	}{
		{"blank name", CreateParams{Name: "   "}, grocerydomain.ErrInvalidItemName},
		{"bad unit", CreateParams{Name: "Milk", Unit: "gallon"}, grocerydomain.ErrInvalidUnit},
		{"bad category", CreateParams{Name: "Milk", Category: "misc"}, grocerydomain.ErrInvalidCategory},
		{"bad priority", CreateParams{Name: "Milk", Priority: "urgent"}, grocerydomain.ErrInvalidPriority},
		{"bad frequency", CreateParams{Name: "Milk", Frequency: "daily"}, grocerydomain.ErrInvalidFrequency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), id, tc.p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if len(emitter.events) != 0 {
		t.Error("failed operations must not broadcast")
	}
}

func TestListGroceryItems_Filter(t *testing.T) {
	repo := newFakeGroceryRepo()
	emitter := &recordingEmitter{}
	svc := NewGroceryService(repo, emitter)
	id := testIdentity()

	milk, err := svc.Create(context.Background(), id, CreateParams{Name: "Milk", Category: "dairy"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(context.Background(), id, CreateParams{Name: "Apples", Category: "produce"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	done := true
	if _, err := svc.Update(context.Background(), id, milk.ID, Patch{Completed: &done}); err != nil {
		t.Fatalf("seed complete: %v", err)
	}

	t.Run("by completion", func(t *testing.T) {
		notDone := false
		items, err := svc.List(context.Background(), id, &notDone, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Apples" {
			t.Errorf("unexpected result: %+v", items)
		}
	})

	t.Run("by category", func(t *testing.T) {
		items, err := svc.List(context.Background(), id, nil, "dairy")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Milk" {
			t.Errorf("unexpected result: %+v", items)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := svc.List(context.Background(), id, nil, "misc")
		if !errors.Is(err, grocerydomain.ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("foreign family sees nothing", func(t *testing.T) {
		items, err := svc.List(context.Background(), testIdentity(), nil, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items across the family boundary, got %d", len(items))
		}
	})
}

func TestUpdateGroceryItem_CompletionPairing(t *testing.T) {
	repo := newFakeGroceryRepo()
	emitter := &recordingEmitter{}
	svc := NewGroceryService(repo, emitter)
	id := testIdentity()

	item, err := svc.Create(context.Background(), id, CreateParams{Name: "Milk"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	done := true
	updated, err := svc.Update(context.Background(), id, item.ID, Patch{Completed: &done})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.CompletedBy == nil || *updated.CompletedBy != id.MemberID {
		t.Errorf("completion must stamp the caller, got %v", updated.CompletedBy)
	}
	if updated.CompletedAt == nil {
		t.Error("completion must stamp a timestamp")
	}

	undone := false
	updated, err = svc.Update(context.Background(), id, item.ID, Patch{Completed: &undone})
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if updated.Completed || updated.CompletedBy != nil || updated.CompletedAt != nil {
		t.Error("uncompleting must clear both completion stamps")
	}
}

func TestUpdateGroceryItem_EmptyQuantityIgnored(t *testing.T) {
	svc := NewGroceryService(newFakeGroceryRepo(), &recordingEmitter{})
	id := testIdentity()

	item, err := svc.Create(context.Background(), id, CreateParams{Name: "Milk", Quantity: "2"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	empty := ""
	updated, err := svc.Update(context.Background(), id, item.ID, Patch{Quantity: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != "2" {
		t.Errorf("an empty quantity patch must be ignored, got %q", updated.Quantity)
	}
}

func TestDeleteGroceryItem(t *testing.T) {
	repo := newFakeGroceryRepo()
	emitter := &recordingEmitter{}
	svc := NewGroceryService(repo, emitter)
	id := testIdentity()

	item, err := svc.Create(context.Background(), id, CreateParams{Name: "Milk"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), id, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	ev := emitter.last(t)
	if ev.Name != broadcast.GroceryItemDeleted {
		t.Errorf("expected %q broadcast, got %q", broadcast.GroceryItemDeleted, ev.Name)
	}
	payload, ok := ev.Payload.(GroceryItemDeletedPayload)
	if !ok {
		t.Fatalf("expected ids-only payload, got %T", ev.Payload)
	}
	if payload.ItemID != item.ID {
		t.Errorf("unexpected payload: %+v", payload)
	}

	t.Run("foreign family cannot delete", func(t *testing.T) {
		other, err := svc.Create(context.Background(), id, CreateParams{Name: "Bread"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		err = svc.Delete(context.Background(), testIdentity(), other.ID)
		if !errors.Is(err, grocerydomain.ErrGroceryItemNotFound) {
			t.Fatalf("a foreign item id must behave like an absent id, got %v", err)
		}
	})
}

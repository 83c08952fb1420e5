package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/broadcast"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
	"github.com/ghuser/familyhub/services/list/domain/models"
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

type fakeListRepo struct {
	lists map[uuid.UUID]*models.List
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: make(map[uuid.UUID]*models.List)}
}

func (r *fakeListRepo) get(familyID, id uuid.UUID) *models.List {
	l, ok := r.lists[id]
	if !ok || l.FamilyID != familyID {
		return nil
	}
	return l
}

func (r *fakeListRepo) Save(_ context.Context, l *models.List) error {
	r.lists[l.ID] = l
	return nil
}

func (r *fakeListRepo) GetByID(_ context.Context, familyID, id uuid.UUID) (*models.List, error) {
	l := r.get(familyID, id)
	if l == nil {
		return nil, listdomain.ErrListNotFound
	}
	return l, nil
}

func (r *fakeListRepo) FindByFamilyID(_ context.Context, familyID uuid.UUID) ([]*models.List, error) {
	var out []*models.List
	for _, l := range r.lists {
		if l.FamilyID == familyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListRepo) UpdateMeta(_ context.Context, l *models.List) error {
	if _, ok := r.lists[l.ID]; !ok {
		return listdomain.ErrListNotFound
	}
	r.lists[l.ID] = l
	return nil
}

func (r *fakeListRepo) Delete(_ context.Context, familyID, id uuid.UUID) error {
	if r.get(familyID, id) == nil {
		return listdomain.ErrListNotFound
	}
	delete(r.lists, id)
	return nil
}

func (r *fakeListRepo) Exists(_ context.Context, familyID, id uuid.UUID) (bool, error) {
	return r.get(familyID, id) != nil, nil
}

func (r *fakeListRepo) AddItem(_ context.Context, familyID, listID uuid.UUID, item *models.Item) error {
	l := r.get(familyID, listID)
	if l == nil {
		return listdomain.ErrListNotFound
	}
	item.Position = len(l.Items)
	l.Items = append(l.Items, *item)
	return nil
}

func (r *fakeListRepo) GetItem(_ context.Context, familyID, listID, itemID uuid.UUID) (*models.Item, error) {
	l := r.get(familyID, listID)
	if l == nil {
		return nil, listdomain.ErrListNotFound
	}
	item := l.FindItem(itemID)
	if item == nil {
		return nil, listdomain.ErrListItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeListRepo) UpdateItem(_ context.Context, familyID, listID uuid.UUID, item *models.Item) error {
	l := r.get(familyID, listID)
	if l == nil {
		return listdomain.ErrListNotFound
	}
	existing := l.FindItem(item.ID)
	if existing == nil {
		return listdomain.ErrListItemNotFound
	}
	*existing = *item
	return nil
}

func (r *fakeListRepo) DeleteItem(_ context.Context, familyID, listID, itemID uuid.UUID) error {
	l := r.get(familyID, listID)
	if l == nil {
		return listdomain.ErrListNotFound
	}
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return nil
		}
	}
	return listdomain.ErrListItemNotFound
}

func testIdentity() auth.Identity {
	return auth.Identity{MemberID: uuid.New(), FamilyID: uuid.New(), Role: auth.RoleMember}
}

func TestCreateList(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)
	id := testIdentity()

	list, err := svc.Create(context.Background(), id, CreateListParams{Title: "  Chores  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if list.Title != "Chores" {
		t.Errorf("expected trimmed title, got %q", list.Title)
	}
	if list.FamilyID != id.FamilyID || list.CreatedBy != id.MemberID {
		t.Error("family and creator must come from the caller identity")
	}
	if list.Color != models.DefaultColor || list.Icon != models.DefaultIcon {
		t.Errorf("expected display defaults, got %q %q", list.Color, list.Icon)
	}

	ev := emitter.last(t)
	if ev.Name != broadcast.ListCreated {
		t.Errorf("expected %q broadcast, got %q", broadcast.ListCreated, ev.Name)
	}
	if ev.Scope.FamilyID != id.FamilyID || ev.Scope.ListID != nil {
		t.Errorf("list_created should be family-scoped: %+v", ev.Scope)
	}
	if len(emitter.events) != 1 {
		t.Errorf("expected exactly one broadcast, got %d", len(emitter.events))
	}
}

func TestCreateList_EmptyTitle(t *testing.T) {
	emitter := &recordingEmitter{}
	svc := NewListService(newFakeListRepo(), emitter)

	_, err := svc.Create(context.Background(), testIdentity(), CreateListParams{Title: "   "})
	if !errors.Is(err, listdomain.ErrInvalidListTitle) {
		t.Fatalf("expected ErrInvalidListTitle, got %v", err)
	}
	if len(emitter.events) != 0 {
		t.Error("failed operations must not broadcast")
	}
}

func TestUpdateList(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)
	id := testIdentity()

	list, err := svc.Create(context.Background(), id, CreateListParams{Title: "Chores"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	newTitle := "Weekend Chores"
	newColor := "#00ff00"
	updated, err := svc.Update(context.Background(), id, list.ID, ListPatch{Title: &newTitle, Color: &newColor})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != newTitle || updated.Color != newColor {
		t.Errorf("patch not applied: %q %q", updated.Title, updated.Color)
	}
	if updated.Icon != models.DefaultIcon {
		t.Errorf("nil patch fields must stay unchanged, icon became %q", updated.Icon)
	}

	ev := emitter.last(t)
	if ev.Name != broadcast.ListUpdated {
		t.Errorf("expected %q broadcast, got %q", broadcast.ListUpdated, ev.Name)
	}
	if ev.Scope.ListID == nil || *ev.Scope.ListID != list.ID {
		t.Errorf("list_updated should carry the list room: %+v", ev.Scope)
	}
}

func TestUpdateList_ForeignFamilyIsNotFound(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)

	owner := testIdentity()
	list, err := svc.Create(context.Background(), owner, CreateListParams{Title: "Chores"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	emitter.events = nil

	stranger := testIdentity()
	title := "Hijacked"
	_, err = svc.Update(context.Background(), stranger, list.ID, ListPatch{Title: &title})
	if !errors.Is(err, listdomain.ErrListNotFound) {
		t.Fatalf("a foreign list id must behave like an absent id, got %v", err)
	}
	if len(emitter.events) != 0 {
		t.Error("failed operations must not broadcast")
	}
}

func TestDeleteList(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)
	id := testIdentity()

	list, err := svc.Create(context.Background(), id, CreateListParams{Title: "Chores"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), id, list.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	ev := emitter.last(t)
	if ev.Name != broadcast.ListDeleted {
		t.Errorf("expected %q broadcast, got %q", broadcast.ListDeleted, ev.Name)
	}
	payload, ok := ev.Payload.(ListDeletedPayload)
	if !ok {
		t.Fatalf("expected ids-only delete payload, got %T", ev.Payload)
	}
	if payload.ListID != list.ID {
		t.Errorf("unexpected payload: %+v", payload)
	}

	if err := svc.Delete(context.Background(), id, list.ID); !errors.Is(err, listdomain.ErrListNotFound) {
		t.Fatalf("double delete should be not-found, got %v", err)
	}
}

func TestAddItem(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)
	id := testIdentity()

	list, err := svc.Create(context.Background(), id, CreateListParams{Title: "Chores"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	emitter.events = nil

	item, err := svc.AddItem(context.Background(), id, list.ID, ItemParams{Text: "sweep"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Priority != models.PriorityNormal {
		t.Errorf("expected default priority, got %q", item.Priority)
	}

	ev := emitter.last(t)
	if ev.Name != broadcast.ListItemAdded {
		t.Errorf("expected %q broadcast, got %q", broadcast.ListItemAdded, ev.Name)
	}
	payload, ok := ev.Payload.(ItemEventPayload)
	if !ok {
		t.Fatalf("expected item payload, got %T", ev.Payload)
	}
	if payload.ListID != list.ID || payload.Item.ID != item.ID {
		t.Errorf("payload should carry the sub-entity plus parent id: %+v", payload)
	}

	t.Run("invalid priority", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), id, list.ID, ItemParams{Text: "mop", Priority: "urgent"})
		if !errors.Is(err, listdomain.ErrInvalidPriority) {
			t.Fatalf("expected ErrInvalidPriority, got %v", err)
		}
	})

	t.Run("unknown list", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), id, uuid.New(), ItemParams{Text: "mop"})
		if !errors.Is(err, listdomain.ErrListNotFound) {
			t.Fatalf("expected ErrListNotFound, got %v", err)
		}
	})
}

func TestUpdateItem_CompletionStampsCaller(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)
	id := testIdentity()

	list, err := svc.Create(context.Background(), id, CreateListParams{Title: "Chores"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	item, err := svc.AddItem(context.Background(), id, list.ID, ItemParams{Text: "sweep"})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	done := true
	updated, err := svc.UpdateItem(context.Background(), id, list.ID, item.ID, ItemPatch{Completed: &done})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed=true")
	}
	if updated.CompletedBy == nil || *updated.CompletedBy != id.MemberID {
		t.Errorf("completion must stamp the caller, got %v", updated.CompletedBy)
	}
	if updated.CompletedAt == nil {
		t.Error("completion must stamp a timestamp")
	}

	undone := false
	updated, err = svc.UpdateItem(context.Background(), id, list.ID, item.ID, ItemPatch{Completed: &undone})
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if updated.Completed || updated.CompletedBy != nil || updated.CompletedAt != nil {
		t.Error("uncompleting must clear both completion stamps")
	}
}

func TestDeleteItem(t *testing.T) {
	repo := newFakeListRepo()
	emitter := &recordingEmitter{}
	svc := NewListService(repo, emitter)
	id := testIdentity()

	list, err := svc.Create(context.Background(), id, CreateListParams{Title: "Chores"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	keep, err := svc.AddItem(context.Background(), id, list.ID, ItemParams{Text: "sweep"})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	drop, err := svc.AddItem(context.Background(), id, list.ID, ItemParams{Text: "mop"})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	if err := svc.DeleteItem(context.Background(), id, list.ID, drop.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	ev := emitter.last(t)
	payload, ok := ev.Payload.(ItemDeletedPayload)
	if !ok {
		t.Fatalf("expected ids-only payload, got %T", ev.Payload)
	}
	if payload.ListID != list.ID || payload.ItemID != drop.ID {
		t.Errorf("unexpected payload: %+v", payload)
	}

	// The surviving item keeps its sub-id and position.
	got, err := svc.List(context.Background(), id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || len(got[0].Items) != 1 {
		t.Fatalf("unexpected state after delete: %+v", got)
	}
	if got[0].Items[0].ID != keep.ID {
		t.Error("surviving item lost its sub-id")
	}
}

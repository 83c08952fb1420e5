// Package broadcast defines the fan-out capability injected into every
// mutation service. Services emit exactly one event per successful
// state-changing operation; the realtime hub delivers it to every live
// connection in scope. Delivery is best-effort: nothing is persisted and
// nothing is retried, so clients recover from missed events by re-fetching
// current state.
package broadcast

import (
	"context"

	"github.com/google/uuid"
)

// Event names delivered to connected clients.
const (
	ListCreated     = "list_created"
	ListUpdated     = "list_updated"
	ListDeleted     = "list_deleted"
	ListItemAdded   = "list_item_added"
	ListItemUpdated = "list_item_updated"
	ListItemDeleted = "list_item_deleted"

	GroceryItemAdded   = "grocery_item_added"
	GroceryItemUpdated = "grocery_item_updated"
	GroceryItemDeleted = "grocery_item_deleted"

	EventCreated  = "event_created"
	EventUpdated  = "event_updated"
	EventReminder = "event_reminder"
)

// Scope identifies the audience of an event: every connection of a family,
// optionally narrowed with a list room. A connection belonging to both the
// family scope and the list room receives a single copy.
type Scope struct {
	FamilyID uuid.UUID
	// ListID is non-nil for collection-scoped events, which are delivered to
	// the family scope and additionally to that list's room.
	ListID *uuid.UUID
}

// FamilyScope returns a scope addressing every live connection of a family.
func FamilyScope(familyID uuid.UUID) Scope {
	return Scope{FamilyID: familyID}
}

// ListScope returns a scope addressing a family plus one of its list rooms.
func ListScope(familyID, listID uuid.UUID) Scope {
	return Scope{FamilyID: familyID, ListID: &listID}
}

// Event is a single broadcast: a client-facing event name, the audience, and
// a payload that carries enough information to apply the change without a
// follow-up fetch (full canonical aggregate or sub-entity for creates and
// updates, identifiers only for deletes).
type Event struct {
	Name    string
	Scope   Scope
	Payload any
}

// Emitter fans an event out to every connection currently subscribed to its
// scope. Implementations must preserve per-connection ordering of events
// emitted from the same goroutine and must never block mutation handlers on
// slow consumers.
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// Discard is an Emitter that drops every event. Used in tests and in
// processes that have no live connections of their own.
type Discard struct{}

func (Discard) Emit(context.Context, Event) error { return nil }

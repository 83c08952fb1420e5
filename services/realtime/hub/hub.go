// Package hub fans broadcast envelopes out to live WebSocket connections.
//
// The registry is per-process and in-memory. Delivery is best-effort: a
// connection that cannot keep up is dropped, and clients are expected to
// resynchronize with a REST fetch after reconnecting.
package hub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/familyhub/pkg/events"
	"github.com/ghuser/familyhub/pkg/logger"
)

// ListChecker verifies list ownership before a connection may join a list
// room. Backed by the list repository in production.
type ListChecker interface {
	Exists(ctx context.Context, familyID, id uuid.UUID) (bool, error)
}

// Hub routes broadcast envelopes to connections. Every connection belongs to
// exactly one family scope for its lifetime and to zero or more list rooms.
type Hub struct {
	log   logger.Logger
	bus   *events.Bus
	lists ListChecker

	mu       sync.RWMutex
	families map[uuid.UUID]map[*Conn]struct{}
	rooms    map[uuid.UUID]map[*Conn]struct{}
}

// New creates a Hub that verifies room joins against the given ListChecker.
func New(log logger.Logger, bus *events.Bus, lists ListChecker) *Hub {
	return &Hub{
		log:      log,
		bus:      bus,
		lists:    lists,
		families: map[uuid.UUID]map[*Conn]struct{}{},
		rooms:    map[uuid.UUID]map[*Conn]struct{}{},
	}
}

// Run consumes the broadcast stream and dispatches until ctx is cancelled or
// the bus closes.
func (h *Hub) Run(ctx context.Context) error {
	envs, err := h.bus.Subscribe(ctx)
	if err != nil {
		return err
	}
	h.log.Info("realtime hub running")
	for env := range envs {
		h.dispatch(env)
	}
	return nil
}

// dispatch delivers one envelope to its family's connections and, for
// list-scoped events, the list room. A connection present in both sets
// receives exactly one copy.
func (h *Hub) dispatch(env events.Envelope) {
	frame, err := json.Marshal(serverFrame{Event: env.Name, Data: env.Payload})
	if err != nil {
		h.log.Error("realtime: encode frame", "event", env.Name, "error", err)
		return
	}

	h.mu.RLock()
	targets := make(map[*Conn]struct{}, len(h.families[env.FamilyID]))
	for c := range h.families[env.FamilyID] {
		targets[c] = struct{}{}
	}
	if env.ListID != nil {
		for c := range h.rooms[*env.ListID] {
			// Room membership is family-vetted at join time, but the room
			// survives list deletion briefly, so re-check the scope.
			if c.identity.FamilyID == env.FamilyID {
				targets[c] = struct{}{}
			}
		}
	}
	h.mu.RUnlock()

	for c := range targets {
		c.deliver(frame)
	}
}

// register adds a connection to its family scope.
func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	family := c.identity.FamilyID
	if h.families[family] == nil {
		h.families[family] = map[*Conn]struct{}{}
	}
	h.families[family][c] = struct{}{}
}

// unregister removes a connection from its family scope and all rooms.
func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	family := c.identity.FamilyID
	if conns := h.families[family]; conns != nil {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.families, family)
		}
	}
	for listID := range c.rooms {
		h.leaveRoomLocked(c, listID)
	}
}

// joinRoom subscribes a connection to a list room after re-verifying the
// list belongs to the connection's family.
func (h *Hub) joinRoom(ctx context.Context, c *Conn, listID uuid.UUID) error {
	ok, err := h.lists.Exists(ctx, c.identity.FamilyID, listID)
	if err != nil {
		return err
	}
	if !ok {
		return errUnknownList
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[listID] == nil {
		h.rooms[listID] = map[*Conn]struct{}{}
	}
	h.rooms[listID][c] = struct{}{}
	c.rooms[listID] = struct{}{}
	return nil
}

// leaveRoom unsubscribes a connection from a list room. Leaving a room the
// connection never joined is a no-op.
func (h *Hub) leaveRoom(c *Conn, listID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(c, listID)
}

func (h *Hub) leaveRoomLocked(c *Conn, listID uuid.UUID) {
	if conns := h.rooms[listID]; conns != nil {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, listID)
		}
	}
	delete(c.rooms, listID)
}

// Counts reports registered connections and active rooms, for health and
// metrics endpoints.
func (h *Hub) Counts() (conns, rooms int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.families {
		conns += len(set)
	}
	return conns, len(h.rooms)
}

// serverFrame is the wire shape of every server-to-client message.
type serverFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ghuser/familyhub/pkg/auth"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before it is
	// considered dead. Pings go out at pingPeriod, comfortably inside it.
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	// maxFrameSize bounds client control frames, which are tiny.
	maxFrameSize = 1024

	// sendBuffer is the per-connection ordered delivery queue. A connection
	// that falls this far behind is disconnected rather than throttling the
	// whole hub.
	sendBuffer = 64

	// joinTimeout bounds the ownership check on join_list.
	joinTimeout = 5 * time.Second
)

var errUnknownList = errors.New("unknown list")

// clientFrame is the wire shape of client-to-server control messages.
type clientFrame struct {
	Type   string    `json:"type"`
	ListID uuid.UUID `json:"listId"`
}

// errorData is the payload of error frames sent back to the client.
type errorData struct {
	Message string `json:"message"`
}

// Conn is one authenticated WebSocket connection. It belongs to its family
// scope from registration until close and may join list rooms on request.
type Conn struct {
	hub      *Hub
	ws       *websocket.Conn
	identity auth.Identity

	send chan []byte

	// rooms is this connection's joined list rooms, guarded by hub.mu.
	rooms map[uuid.UUID]struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

// NewConn wraps an upgraded WebSocket for the given identity and registers
// it with the hub. Call Serve to start the pumps.
func NewConn(h *Hub, ws *websocket.Conn, identity auth.Identity) *Conn {
	c := &Conn{
		hub:      h,
		ws:       ws,
		identity: identity,
		send:     make(chan []byte, sendBuffer),
		rooms:    map[uuid.UUID]struct{}{},
		closed:   make(chan struct{}),
	}
	h.register(c)
	return c
}

// Serve runs the read and write pumps and blocks until the connection
// closes. The connection is unregistered before Serve returns.
func (c *Conn) Serve(ctx context.Context) {
	go c.writePump()
	c.readPump(ctx)
}

// deliver queues a frame for ordered delivery. A full queue means the client
// is not draining: the connection is dropped so one slow consumer cannot
// stall a family broadcast.
func (c *Conn) deliver(frame []byte) {
	select {
	case c.send <- frame:
	default:
		c.hub.log.Warn("realtime: dropping slow consumer",
			"member_id", c.identity.MemberID, "family_id", c.identity.FamilyID)
		c.close()
	}
}

// sendEvent marshals and queues a server frame produced by this connection's
// own read loop (error frames, acks).
func (c *Conn) sendEvent(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	frame, err := json.Marshal(serverFrame{Event: event, Data: payload})
	if err != nil {
		return
	}
	c.deliver(frame)
}

func (c *Conn) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.close()
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("realtime: read error", "error", err)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.sendEvent("error", errorData{Message: "malformed frame"})
			continue
		}

		switch frame.Type {
		case "join_list":
			joinCtx, cancel := context.WithTimeout(ctx, joinTimeout)
			err := c.hub.joinRoom(joinCtx, c, frame.ListID)
			cancel()
			switch {
			case errors.Is(err, errUnknownList):
				c.sendEvent("error", errorData{Message: "unknown list"})
			case err != nil:
				c.hub.log.ErrorContext(ctx, "realtime: join_list check failed",
					"list_id", frame.ListID, "error", err)
				c.sendEvent("error", errorData{Message: "join failed"})
			}
		case "leave_list":
			c.hub.leaveRoom(c, frame.ListID)
		default:
			c.sendEvent("error", errorData{Message: "unknown frame type"})
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-c.closed:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close signals the write pump to shut the socket down. Safe to call more
// than once and from multiple goroutines.
func (c *Conn) close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Package events provides the in-process broadcast bus built on Watermill's
// gochannel pub/sub.
//
// Delivery semantics are deliberately best-effort: events are not persisted,
// not retried, and a subscriber that is not running at publish time never
// sees them. Clients recover by re-fetching current state. Do not replace
// the gochannel transport with a durable one; the broadcast contract does
// not expect redelivery.
//
// For multi-process deployments the bus can mirror every event through a
// Redis pub/sub channel so each process fans out to its own connections.
// The mirror is also how background workers (reminders) reach live
// connections held by the API process.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/familyhub/pkg/broadcast"
	"github.com/ghuser/familyhub/pkg/logger"
)

// Topic is the single local topic all broadcasts flow through. Routing by
// scope happens in the realtime hub, not in topic names, so the hub observes
// one ordered stream.
const Topic = "realtime.broadcast"

// mirrorChannel is the Redis pub/sub channel used to replicate events across
// processes.
const mirrorChannel = "familyhub:broadcast"

const (
	metaEvent    = "event"
	metaFamilyID = "family_id"
	metaListID   = "list_id"
)

// Envelope is a broadcast event as observed by subscribers, with the payload
// still marshaled so the hub can forward it without re-encoding.
type Envelope struct {
	Name     string          `json:"event"`
	FamilyID uuid.UUID       `json:"family_id"`
	ListID   *uuid.UUID      `json:"list_id,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// Bus implements broadcast.Emitter on top of a Watermill gochannel pub/sub.
type Bus struct {
	pubsub *gochannel.GoChannel
	log    logger.Logger

	// origin tags locally published events so the mirror loop can skip this
	// process's own messages when they come back from Redis.
	origin string
	mirror *redis.Client

	wg sync.WaitGroup
}

// NewBus creates an in-process broadcast bus. Pass a non-nil mirror client to
// replicate events through Redis pub/sub; pass nil for single-process
// deployments.
func NewBus(log logger.Logger, mirror *redis.Client) *Bus {
	ps := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		&slogAdapter{log: log},
	)
	return &Bus{
		pubsub: ps,
		log:    log,
		origin: watermill.NewUUID(),
		mirror: mirror,
	}
}

// Emit publishes ev to the local topic and, when mirroring is enabled, to the
// Redis mirror channel. Events published from the same goroutine reach local
// subscribers in publish order.
func (b *Bus) Emit(ctx context.Context, ev broadcast.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("events: marshal %s payload: %w", ev.Name, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metaEvent, ev.Name)
	msg.Metadata.Set(metaFamilyID, ev.Scope.FamilyID.String())
	if ev.Scope.ListID != nil {
		msg.Metadata.Set(metaListID, ev.Scope.ListID.String())
	}

	if err := b.pubsub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", ev.Name, err)
	}

	if b.mirror != nil {
		env := mirrorEnvelope{
			Origin: b.origin,
			Envelope: Envelope{
				Name:     ev.Name,
				FamilyID: ev.Scope.FamilyID,
				ListID:   ev.Scope.ListID,
				Payload:  payload,
			},
		}
		raw, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("events: marshal mirror envelope: %w", err)
		}
		if err := b.mirror.Publish(ctx, mirrorChannel, raw).Err(); err != nil {
			// Local delivery already happened; the mirror is best-effort too.
			b.log.WarnContext(ctx, "events: mirror publish failed", "event", ev.Name, "error", err)
		}
	}

	return nil
}

// Subscribe returns an ordered stream of broadcast envelopes. The channel is
// closed when ctx is cancelled or the bus is closed. Messages are acked as
// they are decoded; a malformed message is logged and skipped.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Envelope, error) {
	msgs, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe %s: %w", Topic, err)
	}

	out := make(chan Envelope, 256)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(out)
		for msg := range msgs {
			env, err := decodeMessage(msg)
			msg.Ack()
			if err != nil {
				b.log.ErrorContext(ctx, "events: drop malformed message", "error", err)
				continue
			}
			select {
			case out <- env:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RunMirror consumes the Redis mirror channel and republishes events that
// originated in other processes onto the local topic. Blocks until ctx is
// cancelled. No-op when mirroring is disabled.
func (b *Bus) RunMirror(ctx context.Context) error {
	if b.mirror == nil {
		return nil
	}

	sub := b.mirror.Subscribe(ctx, mirrorChannel)
	defer sub.Close()

	ch := sub.Channel()
	b.log.Info("events: redis mirror running", "channel", mirrorChannel)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return fmt.Errorf("events: mirror subscription closed")
			}
			var env mirrorEnvelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				b.log.ErrorContext(ctx, "events: drop malformed mirror message", "error", err)
				continue
			}
			if env.Origin == b.origin {
				continue
			}

			msg := message.NewMessage(watermill.NewUUID(), []byte(env.Payload))
			msg.Metadata.Set(metaEvent, env.Name)
			msg.Metadata.Set(metaFamilyID, env.FamilyID.String())
			if env.ListID != nil {
				msg.Metadata.Set(metaListID, env.ListID.String())
			}
			if err := b.pubsub.Publish(Topic, msg); err != nil {
				b.log.ErrorContext(ctx, "events: mirror republish failed", "event", env.Name, "error", err)
			}
		}
	}
}

// Close shuts the bus down and waits for subscriber goroutines to drain.
func (b *Bus) Close() error {
	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("events: close pubsub: %w", err)
	}
	b.wg.Wait()
	return nil
}

// mirrorEnvelope is the wire format on the Redis mirror channel.
type mirrorEnvelope struct {
	Origin string `json:"origin"`
	Envelope
}

func decodeMessage(msg *message.Message) (Envelope, error) {
	name := msg.Metadata.Get(metaEvent)
	if name == "" {
		return Envelope{}, fmt.Errorf("missing event name")
	}
	familyID, err := uuid.Parse(msg.Metadata.Get(metaFamilyID))
	if err != nil {
		return Envelope{}, fmt.Errorf("bad family_id: %w", err)
	}
	env := Envelope{
		Name:     name,
		FamilyID: familyID,
		Payload:  json.RawMessage(msg.Payload),
	}
	if s := msg.Metadata.Get(metaListID); s != "" {
		listID, err := uuid.Parse(s)
		if err != nil {
			return Envelope{}, fmt.Errorf("bad list_id: %w", err)
		}
		env.ListID = &listID
	}
	return env, nil
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}

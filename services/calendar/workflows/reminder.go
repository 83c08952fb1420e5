package workflows

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/familyhub/pkg/broadcast"
)

// Registered names for the workflow and its activity on the task queue.
const (
	ReminderWorkflowName = "EventReminderWorkflow"
	PublishReminderName  = "PublishReminder"
)

// ReminderInput carries everything the workflow needs; it never reads the
// database, so a later event update simply terminates and restarts the
// workflow with fresh input.
type ReminderInput struct {
	EventID   uuid.UUID `json:"event_id"`
	FamilyID  uuid.UUID `json:"family_id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`

	// MinutesBefore lists every reminder offset on the event.
	MinutesBefore []int `json:"minutes_before"`
}

// ReminderPayload is the broadcast payload delivered to connected family
// members when a reminder fires.
type ReminderPayload struct {
	EventID       uuid.UUID `json:"event_id"`
	Title         string    `json:"title"`
	StartDate     time.Time `json:"start_date"`
	MinutesBefore int       `json:"minutes_before"`
}

// ReminderWorkflow sleeps until each reminder offset before the event start
// and publishes an event_reminder broadcast. Offsets already in the past are
// skipped rather than fired late.
func ReminderWorkflow(ctx workflow.Context, in ReminderInput) error {
	offsets := append([]int(nil), in.MinutesBefore...)
	sort.Sort(sort.Reverse(sort.IntSlice(offsets))) // largest offset fires first

	actCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 5,
		},
	})

	for _, minutes := range offsets {
		fireAt := in.StartDate.Add(-time.Duration(minutes) * time.Minute)
		delay := fireAt.Sub(workflow.Now(ctx))
		if delay <= 0 {
			continue
		}
		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}

		payload := ReminderPayload{
			EventID:       in.EventID,
			Title:         in.Title,
			StartDate:     in.StartDate,
			MinutesBefore: minutes,
		}
		if err := workflow.ExecuteActivity(actCtx, PublishReminderName, payload, in.FamilyID).Get(ctx, nil); err != nil {
			return err
		}
	}
	return nil
}

// Activities holds the worker-side dependencies for reminder delivery.
type Activities struct {
	Emitter broadcast.Emitter
}

// PublishReminder emits the event_reminder broadcast to the family. The
// worker's emitter mirrors through Redis so API processes fan it out to
// their connections.
func (a *Activities) PublishReminder(ctx context.Context, payload ReminderPayload, familyID uuid.UUID) error {
	return a.Emitter.Emit(ctx, broadcast.Event{
		Name:    broadcast.EventReminder,
		Scope:   broadcast.FamilyScope(familyID),
		Payload: payload,
	})
}

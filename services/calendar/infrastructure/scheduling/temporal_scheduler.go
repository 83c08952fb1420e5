package scheduling

import (
	"context"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"github.com/ghuser/familyhub/pkg/logger"
	pkgworkflows "github.com/ghuser/familyhub/pkg/workflows"
	"github.com/ghuser/familyhub/services/calendar/domain/models"
	calworkflows "github.com/ghuser/familyhub/services/calendar/workflows"
)

// TemporalScheduler schedules one reminder workflow per event. The workflow
// id is derived from the event id, and rescheduling terminates any running
// instance, so an event update replaces its pending reminders atomically.
type TemporalScheduler struct {
	tc  *pkgworkflows.TemporalClient
	log logger.Logger
}

// NewTemporalScheduler returns a scheduler backed by the given Temporal client.
func NewTemporalScheduler(tc *pkgworkflows.TemporalClient, log logger.Logger) *TemporalScheduler {
	return &TemporalScheduler{tc: tc, log: log}
}

// Schedule starts (or restarts) the reminder workflow for the event.
func (s *TemporalScheduler) Schedule(ctx context.Context, event *models.Event) error {
	offsets := make([]int, 0, len(event.Reminders))
	for _, rem := range event.Reminders {
		offsets = append(offsets, rem.MinutesBefore)
	}

	input := calworkflows.ReminderInput{
		EventID:       event.ID,
		FamilyID:      event.FamilyID,
		Title:         event.Title,
		StartDate:     event.StartDate,
		MinutesBefore: offsets,
	}

	opts := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("event-reminder-%s", event.ID),
		TaskQueue:             pkgworkflows.TaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_TERMINATE_IF_RUNNING,
	}

	_, err := s.tc.Client.ExecuteWorkflow(ctx, opts, calworkflows.ReminderWorkflowName, input)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to schedule event reminders",
			"event_id", event.ID, "error", err)
		return fmt.Errorf("start reminder workflow: %w", err)
	}

	s.log.InfoContext(ctx, "event reminders scheduled",
		"event_id", event.ID, "reminders", len(offsets))
	return nil
}

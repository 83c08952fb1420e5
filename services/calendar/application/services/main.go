package services

import (
	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/services/calendar/infrastructure/persistence/postgres"
	"github.com/ghuser/familyhub/services/calendar/infrastructure/scheduling"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Events *EventService
}

// New wires all calendar application services with infrastructure from the
// Application container. Without a Temporal client, reminders are accepted
// and stored but never fire.
func New(a *app.Application) *Services {
	repo := postgres.NewEventRepository(a.Db)

	var scheduler ReminderScheduler = NopScheduler{}
	if a.TemporalClient != nil {
		scheduler = scheduling.NewTemporalScheduler(a.TemporalClient, a.Logger)
	}

	return &Services{
		Events: NewEventService(repo, a.Emitter, scheduler),
	}
}

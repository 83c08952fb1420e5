package services

import (
	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/services/list/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	List *ListService
}

// New wires all list application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewListRepository(a.Db)
	return &Services{
		List: NewListService(repo, a.Emitter),
	}
}

package services

import (
	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/services/grocery/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Grocery *GroceryService
}

// New wires all grocery application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewGroceryRepository(a.Db)
	return &Services{
		Grocery: NewGroceryService(repo, a.Emitter),
	}
}

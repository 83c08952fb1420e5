package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/services/grocery/application/handlers"
	appsvcs "github.com/ghuser/familyhub/services/grocery/application/services"
)

// GroceryRoutes registers the grocery endpoints on the provided chi router.
// Every route requires an authenticated family member.
func GroceryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.Logger))

		r.Route("/grocery", func(r chi.Router) {
			r.Post("/", handlers.NewPostGroceryHandler(svcs).Execute)
			r.Get("/", handlers.NewGetGroceryHandler(svcs).Execute)
			r.Put("/{itemID}", handlers.NewPutGroceryHandler(svcs).Execute)
			r.Delete("/{itemID}", handlers.NewDeleteGroceryHandler(svcs).Execute)
		})
	})
}

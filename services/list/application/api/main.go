package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/services/list/application/handlers"
	appsvcs "github.com/ghuser/familyhub/services/list/application/services"
)

// ListRoutes registers the list and list-item endpoints on the provided chi
// router. Every route requires an authenticated family member.
func ListRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.Logger))

		r.Route("/lists", func(r chi.Router) {
			r.Post("/", handlers.NewPostListHandler(svcs).Execute)
			r.Get("/", handlers.NewGetListsHandler(svcs).Execute)

			r.Route("/{listID}", func(r chi.Router) {
				r.Put("/", handlers.NewPutListHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteListHandler(svcs).Execute)

				r.Route("/items", func(r chi.Router) {
					r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
					r.Put("/{itemID}", handlers.NewPutItemHandler(svcs).Execute)
					r.Delete("/{itemID}", handlers.NewDeleteItemHandler(svcs).Execute)
				})
			})
		})
	})
}

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/services/calendar/application/handlers"
	appsvcs "github.com/ghuser/familyhub/services/calendar/application/services"
)

// CalendarRoutes registers the event endpoints on the provided chi router.
// Every route requires an authenticated family member.
func CalendarRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.Logger))

		r.Route("/events", func(r chi.Router) {
			r.Post("/", handlers.NewPostEventHandler(svcs).Execute)
			r.Get("/", handlers.NewGetEventsHandler(svcs).Execute)
			r.Put("/{eventID}", handlers.NewPutEventHandler(svcs).Execute)
			r.Post("/{eventID}/rsvp", handlers.NewPostRSVPHandler(svcs).Execute)
		})
	})
}

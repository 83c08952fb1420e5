package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/familyhub/pkg/app"
	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/services/family/application/handlers"
	appsvcs "github.com/ghuser/familyhub/services/family/application/services"
)

// FamilyRoutes registers onboarding, login, and family endpoints on the
// provided chi router. Onboarding and login are the only unauthenticated
// routes in the API.
func FamilyRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		r.Post("/create-family", handlers.NewPostCreateFamilyHandler(svcs).Execute)
		r.Post("/join-family", handlers.NewPostJoinFamilyHandler(svcs).Execute)
		r.Post("/login", handlers.NewPostLoginHandler(svcs).Execute)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.Logger))
		r.Get("/user", handlers.NewGetUserHandler(svcs).Execute)
		r.Get("/family/members", handlers.NewGetMembersHandler(svcs).Execute)
	})
}

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stuffkeeper/pkg/app"
	"github.com/ghuser/stuffkeeper/services/stuff/application/handlers"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
)

// StuffRoutes registers stuff and tag endpoints on the provided chi router.
func StuffRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a))
}

// Routes registers the endpoints against an already-wired service container.
// Split out from StuffRoutes so tests can mount the routes over the
// in-memory repository.
func Routes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewGetStuffsHandler(svcs).Execute)
		r.Post("/", handlers.NewPostStuffHandler(svcs).Execute)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetStuffHandler(svcs).Execute)
			r.Put("/", handlers.NewPutStuffHandler(svcs).Execute)
			r.Patch("/", handlers.NewPutStuffHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteStuffHandler(svcs).Execute)
			r.Get("/tags", handlers.NewGetTagsHandler(svcs).Execute)
			r.Post("/tags", handlers.NewPostTagHandler(svcs).Execute)
		})
	})
	r.Route("/tags/{id}", func(r chi.Router) {
		r.Put("/", handlers.NewPutTagHandler(svcs).Execute)
		r.Patch("/", handlers.NewPutTagHandler(svcs).Execute)
		r.Delete("/", handlers.NewDeleteTagHandler(svcs).Execute)
	})
}

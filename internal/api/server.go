// Package api exposes the published dashboard datasets over HTTP and lets
// clients trigger a report cycle.
//
//	GET  /healthz               liveness
//	GET  /api/datasets          destination names
//	GET  /api/datasets/{name}   one published destination
//	GET  /api/report            the whole last report
//	POST /api/report            run a report cycle, body {"date":"YYYY-MM-DD"}
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", h.ListDatasets)
			r.Get("/{name}", h.GetDataset)
		})
		r.Get("/report", h.GetReport)
		r.Post("/report", h.RunReport)
	})

	return r
}

// Package api exposes the validation core over HTTP. The transport is a thin
// presentation layer: extraction and validation stay in their own packages.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"invoiceqc/internal/store"
	"invoiceqc/internal/validate"
)

// NewRouter creates the chi router with all API routes mounted. The run store
// may be nil, in which case run history endpoints report persistence as
// disabled and validations are not recorded.
func NewRouter(engine *validate.Engine, runs *store.RunStore) http.Handler {
	h := &Handlers{engine: engine, runs: runs}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate-json", h.ValidateJSON)
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{id}", h.GetRun)
	})

	return r
}

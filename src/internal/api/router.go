package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(cfg *config.Config, source capture.Source) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly)
	r.Use(JSONContentType)

	h := NewHandler(cfg, source)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/diff", h.Diff)
		r.Post("/parse", h.Parse)
		r.Post("/sample", h.Sample)
		r.Get("/health", h.CheckHealth)
	})

	return r
}

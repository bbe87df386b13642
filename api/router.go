package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"lhcompare/compare"
)

// Option configures the router.
type Option func(*handler)

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(h *handler) {
		h.maxBodyBytes = n
	}
}

// NewRouter serves the comparison engine over HTTP.
func NewRouter(engine *compare.Engine, l zerolog.Logger, opts ...Option) *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		chiMw.RequestID,
		Logging(l),
		chiMw.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}),
	)

	h := handler{engine: engine, log: l, maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&h)
	}

	r.Get("/healthz", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/compare", h.Compare)
		r.Post("/report", h.Report)
	})

	return r
}

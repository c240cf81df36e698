// Package server is the HTTP boundary around the generation pipeline:
// a home page, the internal view endpoint reconstructed pages navigate to,
// the reserved placeholder asset, and operational endpoints.
package server

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mirageweb/mirage/internal/metrics"
	"github.com/mirageweb/mirage/internal/utils"
)

//go:embed static
var staticFS embed.FS

// NewRouter builds the HTTP handler tree
func NewRouter(h *Handler, logger *utils.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(recoverer(logger))

	r.Get("/", h.Home)
	r.Get("/view", h.View)

	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())

	return r
}

// recoverer converts panics into 500 responses and logs the stack
func recoverer(logger *utils.Logger) func(http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Interface("panic", rec).
						Str("path", r.URL.Path).
						Msg("Panic recovered")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

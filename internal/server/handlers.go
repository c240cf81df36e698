package server

import (
	"context"
	"net/http"

	"github.com/mirageweb/mirage/internal/domain"
	"github.com/mirageweb/mirage/internal/utils"
)

// Reconstructor is the single entry point the HTTP layer needs from the
// generation pipeline.
type Reconstructor interface {
	EnsureGenerated(ctx context.Context, rawURL string) ([]byte, error)
}

// Handler serves the user-facing routes
type Handler struct {
	generator Reconstructor
	logger    *utils.Logger
}

// NewHandler creates an HTTP handler around a generator
func NewHandler(generator Reconstructor, logger *utils.Logger) *Handler {
	return &Handler{
		generator: generator,
		logger:    logger.WithComponent("http"),
	}
}

// Home renders the landing page with the URL form
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, nil); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render home page")
	}
}

// View serves the reconstructed document for ?url=, generating on first
// request. Invalid input maps to 400; generation failures to 502.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	doc, err := h.generator.EnsureGenerated(r.Context(), rawURL)
	if err != nil {
		h.renderError(w, r, rawURL, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(doc)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, rawURL string, err error) {
	status := http.StatusBadGateway
	message := "The page could not be reconstructed."
	if domain.IsInvalidInput(err) {
		status = http.StatusBadRequest
		message = "That does not look like a valid URL."
	}

	h.logger.Warn().
		Str("url", rawURL).
		Int("status", status).
		Err(err).
		Msg("View request failed")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = errorTemplate.Execute(w, errorPageData{
		URL:     rawURL,
		Message: message,
	})
}

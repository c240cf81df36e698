// Package app composes the generation pipeline: fingerprinting, cache
// lookup, single-flight coordination, backend invocation, post-processing
// and cache write, behind one entry point.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/mirageweb/mirage/internal/cache"
	"github.com/mirageweb/mirage/internal/domain"
	"github.com/mirageweb/mirage/internal/flight"
	"github.com/mirageweb/mirage/internal/llm"
	"github.com/mirageweb/mirage/internal/metrics"
	"github.com/mirageweb/mirage/internal/postprocess"
	"github.com/mirageweb/mirage/internal/utils"
)

// Generator owns one generation pipeline instance, including its own
// single-flight registry.
type Generator struct {
	store           domain.Store
	backend         domain.Backend
	processor       *postprocess.Processor
	coordinator     *flight.Coordinator
	logger          *utils.Logger
	placeholderPath string
}

// GeneratorOptions contains options for creating a Generator
type GeneratorOptions struct {
	Store           domain.Store
	Backend         domain.Backend
	Processor       *postprocess.Processor
	Logger          *utils.Logger
	PlaceholderPath string
}

// NewGenerator creates a generator with a fresh single-flight registry
func NewGenerator(opts GeneratorOptions) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	processor := opts.Processor
	if processor == nil {
		processor = postprocess.NewProcessor(postprocess.DefaultProcessorOptions())
	}
	placeholder := opts.PlaceholderPath
	if placeholder == "" {
		placeholder = postprocess.DefaultPlaceholderPath
	}

	return &Generator{
		store:           opts.Store,
		backend:         opts.Backend,
		processor:       processor,
		coordinator:     flight.NewCoordinator(),
		logger:          logger.WithComponent("generator"),
		placeholderPath: placeholder,
	}
}

// Key normalizes a raw URL and returns the canonical string and its
// fingerprint. The HTTP layer uses it to decide hit/miss before engaging
// generation.
func (g *Generator) Key(rawURL string) (normalized, fingerprint string, err error) {
	return cache.Key(rawURL)
}

// EnsureGenerated returns the reconstructed document for a URL, generating
// and caching it on first request. Normalization errors reject the request
// before any cache or coordinator interaction; concurrent requests for the
// same fingerprint share one backend invocation and one outcome.
func (g *Generator) EnsureGenerated(ctx context.Context, rawURL string) ([]byte, error) {
	normalized, key, err := cache.Key(rawURL)
	if err != nil {
		return nil, err
	}

	log := g.logger.WithURL(normalized)

	html, err := g.store.Read(ctx, key)
	if err == nil {
		metrics.CacheHitsTotal.Inc()
		log.Debug().Str("key", key).Msg("Serving cached document")
		return html, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		// Storage read faults degrade to a miss
		log.Warn().Err(err).Msg("Cache read failed, treating as miss")
	}
	metrics.CacheMissesTotal.Inc()

	// The job must run to completion even if this caller goes away;
	// abandonment wastes the work but never corrupts the outcome.
	jobCtx := context.WithoutCancel(ctx)

	doc, shared, err := g.coordinator.Do(key, func() ([]byte, error) {
		return g.generate(jobCtx, normalized, key)
	})
	if shared {
		metrics.FlightJoinsTotal.Inc()
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// generate runs one backend invocation through post-processing and cache
// write. Every error is terminal for the attempt; the caller decides
// whether to re-request.
func (g *Generator) generate(ctx context.Context, normalized, key string) ([]byte, error) {
	start := time.Now()
	log := g.logger.WithURL(normalized)

	log.Info().Str("model", g.backend.Model()).Msg("Generating document")

	resp, err := g.backend.Complete(ctx, &domain.CompletionRequest{
		Messages: llm.BuildMessages(normalized, g.placeholderPath),
	})
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Backend invocation failed")
		return nil, err
	}

	processed, err := g.processor.Process(resp.Content, normalized)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Post-processing failed")
		return nil, err
	}

	doc := []byte(processed)
	if err := g.store.Write(ctx, normalized, key, doc); err != nil {
		// The result could not be persisted, so the generation failed
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Cache write failed")
		return nil, err
	}

	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.GenerationDurationSeconds.Observe(time.Since(start).Seconds())
	log.Info().
		Str("key", key).
		Int("bytes", len(doc)).
		Dur("took", time.Since(start)).
		Msg("Document generated and cached")

	return doc, nil
}

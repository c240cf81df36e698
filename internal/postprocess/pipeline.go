// Package postprocess turns raw backend output into a safe, self-contained,
// navigable HTML document: fence stripping, document-shape normalization,
// asset containment, and navigation interception, composed in that order.
package postprocess

// DefaultViewPath is the internal endpoint reconstructed pages navigate to
const DefaultViewPath = "/view"

// DefaultPlaceholderPath is the one asset path generated pages may reference
const DefaultPlaceholderPath = "/static/placeholder.png"

// Processor composes the post-processing steps. Each step is a pure
// function of its input; the processor only fixes their order and options.
type Processor struct {
	viewPath    string
	guardAssets bool
	guard       *AssetGuard
}

// ProcessorOptions contains options for the processor
type ProcessorOptions struct {
	ViewPath        string
	PlaceholderPath string
	GuardAssets     bool
}

// DefaultProcessorOptions returns the standard pipeline configuration
func DefaultProcessorOptions() ProcessorOptions {
	return ProcessorOptions{
		ViewPath:        DefaultViewPath,
		PlaceholderPath: DefaultPlaceholderPath,
		GuardAssets:     true,
	}
}

// NewProcessor creates a processor with the given options
func NewProcessor(opts ProcessorOptions) *Processor {
	if opts.ViewPath == "" {
		opts.ViewPath = DefaultViewPath
	}
	if opts.PlaceholderPath == "" {
		opts.PlaceholderPath = DefaultPlaceholderPath
	}

	return &Processor{
		viewPath:    opts.ViewPath,
		guardAssets: opts.GuardAssets,
		guard:       NewAssetGuard(opts.PlaceholderPath),
	}
}

// Process transforms raw backend output into the final document bound to
// the original (pre-generation) URL.
func (p *Processor) Process(raw, originalURL string) (string, error) {
	doc := StripFences(raw)
	doc = EnsureDocumentShape(doc, originalURL)

	if p.guardAssets {
		guarded, err := p.guard.Apply(doc)
		if err != nil {
			return "", err
		}
		doc = guarded
	}

	return InjectNavigation(doc, originalURL, p.viewPath), nil
}

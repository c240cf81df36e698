package domain

import "context"

// Backend defines the interface for the generative text-completion service
type Backend interface {
	// Name returns the backend name
	Name() string
	// Complete sends a request and returns the response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	// Model returns the configured model identifier
	Model() string
	// Close releases resources
	Close() error
}

// Store defines the interface for the content-addressed document cache
type Store interface {
	// Read returns the cached document for a fingerprint.
	// Absence is reported as ErrCacheMiss; real faults as *StorageError.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write persists the document and its metadata record for a fingerprint.
	// Overwrites any prior entry for the same key.
	Write(ctx context.Context, normalizedURL, key string, html []byte) error
	// Has reports whether a document exists for a fingerprint
	Has(ctx context.Context, key string) bool
	// Delete removes the document and metadata for a fingerprint
	Delete(ctx context.Context, key string) error
}

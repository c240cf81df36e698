package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mirageweb/mirage/internal/domain"
	"github.com/mirageweb/mirage/internal/utils"
)

// FileStore persists generated documents on durable storage. Each
// fingerprint maps to a <key>.html artifact and a sibling <key>.json
// metadata record. The HTML artifact alone decides whether an entry is
// cached; deleting it out-of-band is the documented invalidation mechanism.
type FileStore struct {
	dir    string
	model  string
	logger *utils.Logger
	now    func() time.Time
}

// Options contains file store configuration
type Options struct {
	Directory string
	Model     string
	Logger    *utils.Logger
}

// NewFileStore creates a file-backed store, creating the directory if needed
func NewFileStore(opts Options) (*FileStore, error) {
	if opts.Directory == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		opts.Directory = filepath.Join(homeDir, ".mirage", "pages")
	}

	if err := os.MkdirAll(opts.Directory, 0755); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	return &FileStore{
		dir:    opts.Directory,
		model:  opts.Model,
		logger: logger.WithComponent("cache"),
		now:    time.Now,
	}, nil
}

// Ensure FileStore implements domain.Store
var _ domain.Store = (*FileStore)(nil)

// Read returns the cached document for a fingerprint. A missing HTML
// artifact is a plain miss; anything else is a storage fault.
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	html, err := os.ReadFile(s.htmlPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		return nil, domain.NewStorageError("read", key, err)
	}
	return html, nil
}

// Write persists the document, then its metadata record. A metadata fault
// is logged and swallowed: the entry counts as cached once the HTML exists.
func (s *FileStore) Write(ctx context.Context, normalizedURL, key string, html []byte) error {
	if err := os.WriteFile(s.htmlPath(key), html, 0644); err != nil {
		return domain.NewStorageError("write", key, err)
	}

	meta := domain.Metadata{
		URL:       normalizedURL,
		Model:     s.model,
		CreatedAt: s.now().UTC(),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err == nil {
		err = os.WriteFile(s.metaPath(key), data, 0644)
	}
	if err != nil {
		s.logger.Warn().
			Str("key", key).
			Str("url", normalizedURL).
			Err(err).
			Msg("Failed to persist metadata record")
	}

	return nil
}

// Has reports whether a document exists for a fingerprint
func (s *FileStore) Has(ctx context.Context, key string) bool {
	_, err := os.Stat(s.htmlPath(key))
	return err == nil
}

// Delete removes the document and metadata for a fingerprint
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.htmlPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewStorageError("delete", key, err)
	}
	if err := os.Remove(s.metaPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Str("key", key).Err(err).Msg("Failed to remove metadata record")
	}
	return nil
}

// Metadata returns the diagnostic record for a fingerprint, if readable.
// The record is advisory only; callers must not treat errors as fatal.
func (s *FileStore) Metadata(ctx context.Context, key string) (*domain.Metadata, error) {
	data, err := os.ReadFile(s.metaPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		return nil, domain.NewStorageError("read-meta", key, err)
	}

	var meta domain.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, domain.NewStorageError("read-meta", key, err)
	}
	return &meta, nil
}

// Directory returns the store's root directory
func (s *FileStore) Directory() string {
	return s.dir
}

func (s *FileStore) htmlPath(key string) string {
	return filepath.Join(s.dir, key+".html")
}

func (s *FileStore) metaPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

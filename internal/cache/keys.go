package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mirageweb/mirage/internal/domain"
)

// Normalize canonicalizes a raw URL string so equivalent inputs collapse
// to one representation. A missing scheme defaults to https. The result is
// stable under re-normalization.
func Normalize(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", domain.ErrInvalidInput
	}

	// If no scheme is present, prepend https:// before parsing
	// so the host is correctly identified.
	if !strings.Contains(rawURL, "://") && !strings.HasPrefix(rawURL, "//") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if u.Scheme == "" {
		u.Scheme = "https"
	}

	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, rawURL)
	}

	// Normalize host to lowercase
	u.Host = strings.ToLower(u.Host)

	// Remove default ports
	if (u.Scheme == "http" && u.Port() == "80") ||
		(u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}

	// Clean path
	if u.Path == "" {
		u.Path = "/"
	} else {
		u.Path = path.Clean(u.Path)
	}

	// Remove trailing slash (except for root)
	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	// Remove fragment
	u.Fragment = ""

	result := u.String()

	// Ensure root path keeps its trailing slash so normalization is idempotent
	if u.Path == "/" && u.RawQuery == "" && !strings.HasSuffix(result, "/") {
		result += "/"
	}

	return result, nil
}

// Fingerprint derives the content-addressed key for a normalized URL.
// The key is the SHA-256 hex digest of the canonical string.
func Fingerprint(normalizedURL string) string {
	hash := sha256.Sum256([]byte(normalizedURL))
	return hex.EncodeToString(hash[:])
}

// Key normalizes a raw URL and returns both the canonical string and its
// fingerprint in one step.
func Key(rawURL string) (normalized, fingerprint string, err error) {
	normalized, err = Normalize(rawURL)
	if err != nil {
		return "", "", err
	}
	return normalized, Fingerprint(normalized), nil
}

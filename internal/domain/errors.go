package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidInput indicates a malformed or empty URL was provided
	ErrInvalidInput = errors.New("invalid input URL")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrEmptyContent indicates the backend returned no usable text payload
	ErrEmptyContent = errors.New("backend returned empty content")

	// ErrBackendNotConfigured indicates no backend endpoint is configured
	ErrBackendNotConfigured = errors.New("backend not configured")

	// ErrBackendMissingBaseURL indicates base URL is required but not provided
	ErrBackendMissingBaseURL = errors.New("backend base URL is required")

	// ErrBackendMissingModel indicates model is required but not provided
	ErrBackendMissingModel = errors.New("backend model is required")
)

// BackendError represents a non-success response from the generative backend
type BackendError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend error: %s", e.Body)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError creates a new BackendError
func NewBackendError(statusCode int, body string, err error) *BackendError {
	return &BackendError{
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}

// StorageError represents a cache read or write fault
type StorageError struct {
	Op  string // "read", "write", "write-meta"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

// IsInvalidInput reports whether err is a user-correctable input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsBackendError reports whether err originated at the generative backend
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// IsStorageError reports whether err is a cache storage fault
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

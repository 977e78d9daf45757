package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL matches every *URLParseError.
	ErrInvalidURL = errors.New("invalid url")
	// ErrEmptyCode is returned when a short code is built from an empty string.
	ErrEmptyCode = errors.New("short code must not be empty")
	// ErrAlreadyExists is returned by Repository.Create when the code is taken.
	ErrAlreadyExists = errors.New("url already exists")
	// ErrNotFound is returned by Repository.GetByCode when no record matches.
	ErrNotFound = errors.New("url not found")
	// ErrBackend matches every *BackendError.
	ErrBackend = errors.New("storage backend error")
)

// URLParseError describes why a raw string is not an absolute URL.
type URLParseError struct {
	Raw string
	Err error
}

func (e *URLParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *URLParseError) Unwrap() error { return e.Err }

func (e *URLParseError) Is(target error) bool { return target == ErrInvalidURL }

// BackendError wraps a failure of the storage medium itself.
type BackendError struct {
	Op  string
	Err error
}

// NewBackendError wraps err, returning nil for a nil err.
func NewBackendError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &BackendError{Op: op, Err: err}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

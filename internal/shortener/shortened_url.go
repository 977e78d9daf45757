package shortener

import (
	"context"
	"fmt"
)

// ShortenedURL pairs an original URL with the code that resolves to it.
type ShortenedURL struct {
	OriginalURL OriginalURL
	Code        Code
}

// NewShortenedURL creates the aggregate.
func NewShortenedURL(originalURL OriginalURL, code Code) *ShortenedURL {
	return &ShortenedURL{
		OriginalURL: originalURL,
		Code:        code,
	}
}

func (s *ShortenedURL) String() string {
	return fmt.Sprintf("%s:%s", s.OriginalURL, s.Code)
}

// Repository is the storage port every backend implements.
type Repository interface {
	// Create inserts a new record. It returns ErrAlreadyExists when the code is taken;
	// the uniqueness check and the insert are atomic.
	Create(ctx context.Context, shortURL *ShortenedURL) error

	// GetByCode returns the record for code, or ErrNotFound.
	GetByCode(ctx context.Context, code Code) (*ShortenedURL, error)
}

package shortener

import (
	"context"
	"errors"
)

// DefaultCodeLength is the length of generated short codes.
const DefaultCodeLength = 8

// Service owns the shorten and resolve policy over one Repository.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	store        Repository
	generateCode CodeGenerator
	maxAttempts  int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets how many codes Shorten tries before giving up on collisions.
// Values below 1 are ignored. The default is 1: a collision surfaces as ErrAlreadyExists.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// NewService creates a Service backed by store, drawing codes from generator.
func NewService(store Repository, generator CodeGenerator, opts ...Option) *Service {
	s := &Service{
		store:        store,
		generateCode: generator,
		maxAttempts:  1,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shorten validates rawURL and stores it under a freshly generated code.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*ShortenedURL, error) {
	originalURL, err := NewOriginalURL(rawURL)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		code, err := NewCode(s.generateCode())
		if err != nil {
			return nil, err
		}

		shortURL := NewShortenedURL(originalURL, code)

		err = s.store.Create(ctx, shortURL)
		if err == nil {
			return shortURL, nil
		}

		if !errors.Is(err, ErrAlreadyExists) || attempt >= s.maxAttempts {
			return nil, err
		}
	}
}

// Resolve returns the record stored under code.
func (s *Service) Resolve(ctx context.Context, code string) (*ShortenedURL, error) {
	shortCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	return s.store.GetByCode(ctx, shortCode)
}

package events

import (
	"context"
	"fmt"

	"github.com/serroba/urlkurz/internal/messaging"
	"github.com/serroba/urlkurz/internal/shortener"
)

// Warmer stores a mapping in a read cache ahead of the first lookup.
type Warmer interface {
	Warm(ctx context.Context, url *shortener.ShortenedURL) error
}

// NewCacheWarmer returns a handler that pushes every shortened URL into cache.
// Events carrying an invalid URL or an empty code are skipped.
func NewCacheWarmer(cache Warmer) messaging.Handler[URLShortened] {
	return func(ctx context.Context, event *URLShortened) error {
		original, err := shortener.NewOriginalURL(event.OriginalURL)
		if err != nil {
			return nil
		}

		code, err := shortener.NewCode(event.Code)
		if err != nil {
			return nil
		}

		if err := cache.Warm(ctx, shortener.NewShortenedURL(original, code)); err != nil {
			return fmt.Errorf("warm cache for %s: %w", code, err)
		}

		return nil
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/urlkurz/internal/events"
	"github.com/serroba/urlkurz/internal/messaging"
	"github.com/serroba/urlkurz/internal/metrics"
	"github.com/serroba/urlkurz/internal/shortener"
	"go.uber.org/zap"
)

// RoutePrefix is prepended to every code in a returned short URL.
const RoutePrefix = "/api/"

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service             *shortener.Service
	publishURLShortened messaging.Publish[events.URLShortened]
	metrics             *metrics.Metrics
	logger              *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	publishURLShortened messaging.Publish[events.URLShortened],
	m *metrics.Metrics,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:             service,
		publishURLShortened: publishURLShortened,
		metrics:             m,
		logger:              logger,
	}
}

// Shorten stores the submitted URL under a new code. Every failure, including a
// malformed URL, is reported as 500.
func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	shortURL, err := h.service.Shorten(ctx, req.Body.URL)
	h.metrics.ObserveOperation("shorten", resultOf(err))

	if err != nil {
		if errors.Is(err, shortener.ErrBackend) {
			h.logger.Error("failed to shorten url", zap.Error(err))
		}

		return nil, huma.Error500InternalServerError(err.Error())
	}

	event := &events.URLShortened{
		Code:        shortURL.Code.String(),
		OriginalURL: shortURL.OriginalURL.String(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.publishURLShortened(ctx, event); err != nil {
		h.logger.Error("failed to publish url shortened event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &ShortenResponse{}
	resp.Body.ShortenedURL = RoutePrefix + shortURL.Code.String()

	return resp, nil
}

// Redirect resolves a code and answers with a permanent redirect.
func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	shortURL, err := h.service.Resolve(ctx, req.Code)
	h.metrics.ObserveOperation("resolve", resultOf(err))

	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) || errors.Is(err, shortener.ErrEmptyCode) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to resolve code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	return &RedirectResponse{
		Status:   http.StatusPermanentRedirect,
		Location: shortURL.OriginalURL.String(),
	}, nil
}

// Root answers the liveness banner.
func (h *URLHandler) Root(_ context.Context, _ *struct{}) (*RootResponse, error) {
	return &RootResponse{
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte("Hello world!"),
	}, nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, shortener.ErrBackend):
		// Checked first: a corrupt stored record wraps a parse error.
		return metrics.ResultError
	case errors.Is(err, shortener.ErrInvalidURL), errors.Is(err, shortener.ErrEmptyCode):
		return metrics.ResultInvalid
	case errors.Is(err, shortener.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, shortener.ErrAlreadyExists):
		return metrics.ResultAlreadyExists
	default:
		return metrics.ResultError
	}
}

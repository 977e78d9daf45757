package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/serroba/urlkurz/internal/events"
	"github.com/serroba/urlkurz/internal/handlers"
	"github.com/serroba/urlkurz/internal/messaging"
	"github.com/serroba/urlkurz/internal/metrics"
	"github.com/serroba/urlkurz/internal/shortener"
	"github.com/serroba/urlkurz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errMock = errors.New("mock error")

// failingStore is a Repository whose every call fails with a backend error.
type failingStore struct{}

func (failingStore) Create(_ context.Context, _ *shortener.ShortenedURL) error {
	return shortener.NewBackendError("create", errMock)
}

func (failingStore) GetByCode(_ context.Context, _ shortener.Code) (*shortener.ShortenedURL, error) {
	return nil, shortener.NewBackendError("get", errMock)
}

type recordingPublisher struct {
	events []*events.URLShortened
	err    error
}

func (r *recordingPublisher) publish(_ context.Context, event *events.URLShortened) error {
	r.events = append(r.events, event)

	return r.err
}

type fixture struct {
	handler   *handlers.URLHandler
	metrics   *metrics.Metrics
	published *recordingPublisher
}

func newFixture(t *testing.T, repo shortener.Repository) *fixture {
	t.Helper()

	gen, err := nanoid.Standard(shortener.DefaultCodeLength)
	require.NoError(t, err)

	published := &recordingPublisher{}
	m := metrics.New()

	return &fixture{
		handler: handlers.NewURLHandler(
			shortener.NewService(repo, gen),
			published.publish,
			m,
			zap.NewNop(),
		),
		metrics:   m,
		published: published,
	}
}

func (f *fixture) router() *chi.Mux {
	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	handlers.RegisterRoutes(api, f.handler)

	return router
}

func shortenRequest(url string) *handlers.ShortenRequest {
	req := &handlers.ShortenRequest{}
	req.Body.URL = url

	return req
}

func codeOf(t *testing.T, resp *handlers.ShortenResponse) string {
	t.Helper()

	require.True(t, strings.HasPrefix(resp.Body.ShortenedURL, handlers.RoutePrefix))

	return strings.TrimPrefix(resp.Body.ShortenedURL, handlers.RoutePrefix)
}

func TestShorten(t *testing.T) {
	t.Run("returns the api path of a new code", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		f := newFixture(t, memStore)

		resp, err := f.handler.Shorten(context.Background(), shortenRequest("https://example.com/very/long/path"))

		require.NoError(t, err)
		code := codeOf(t, resp)
		assert.Len(t, code, shortener.DefaultCodeLength)

		stored, err := memStore.GetByCode(context.Background(), shortener.Code(code))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/very/long/path", stored.OriginalURL.String())
	})

	t.Run("creates a new code for a repeated url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		f := newFixture(t, memStore)

		first, err := f.handler.Shorten(context.Background(), shortenRequest("https://example.com"))
		require.NoError(t, err)

		second, err := f.handler.Shorten(context.Background(), shortenRequest("https://example.com"))
		require.NoError(t, err)

		assert.NotEqual(t, first.Body.ShortenedURL, second.Body.ShortenedURL)
		assert.Equal(t, 2, memStore.Len())
	})

	t.Run("publishes a url shortened event", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())

		resp, err := f.handler.Shorten(context.Background(), shortenRequest("HTTPS://Example.com"))

		require.NoError(t, err)
		require.Len(t, f.published.events, 1)

		event := f.published.events[0]
		assert.Equal(t, codeOf(t, resp), event.Code)
		assert.Equal(t, "https://example.com/", event.OriginalURL)
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())
		f.published.err = errMock

		resp, err := f.handler.Shorten(context.Background(), shortenRequest("https://example.com"))

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body.ShortenedURL)
	})

	t.Run("works with the noop publisher", func(t *testing.T) {
		gen, _ := nanoid.Standard(8)
		handler := handlers.NewURLHandler(
			shortener.NewService(store.NewMemoryStore(), gen),
			messaging.NoopPublish[events.URLShortened](),
			metrics.New(),
			zap.NewNop(),
		)

		_, err := handler.Shorten(context.Background(), shortenRequest("https://example.com"))

		assert.NoError(t, err)
	})

	t.Run("reports an invalid url as 500", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())

		_, err := f.handler.Shorten(context.Background(), shortenRequest("not a url"))

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.GetStatus())
		assert.Contains(t, err.Error(), "parse error")
		assert.Empty(t, f.published.events)
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OperationsTotal.WithLabelValues("shorten", metrics.ResultInvalid)), 0)
	})

	t.Run("reports a backend failure as 500", func(t *testing.T) {
		f := newFixture(t, failingStore{})

		_, err := f.handler.Shorten(context.Background(), shortenRequest("https://example.com"))

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.GetStatus())
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OperationsTotal.WithLabelValues("shorten", metrics.ResultError)), 0)
	})
}

func TestRedirect(t *testing.T) {
	t.Run("redirects permanently to the original url", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())

		created, err := f.handler.Shorten(context.Background(), shortenRequest("https://example.com/target"))
		require.NoError(t, err)

		resp, err := f.handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: codeOf(t, created)})

		require.NoError(t, err)
		assert.Equal(t, http.StatusPermanentRedirect, resp.Status)
		assert.Equal(t, "https://example.com/target", resp.Location)
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OperationsTotal.WithLabelValues("resolve", metrics.ResultOK)), 0)
	})

	t.Run("returns 404 when code not found", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())

		_, err := f.handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: "nonexistent"})

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.GetStatus())
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OperationsTotal.WithLabelValues("resolve", metrics.ResultNotFound)), 0)
	})

	t.Run("returns 404 for an empty code", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())

		_, err := f.handler.Redirect(context.Background(), &handlers.RedirectRequest{})

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.GetStatus())
	})

	t.Run("returns 500 on store error", func(t *testing.T) {
		f := newFixture(t, failingStore{})

		_, err := f.handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: "abc"})

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.GetStatus())
	})
}

func TestRoutes(t *testing.T) {
	t.Run("shorten then follow the redirect", func(t *testing.T) {
		router := newFixture(t, store.NewMemoryStore()).router()

		req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url":"https://example.com/page"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			ShortenedURL string `json:"shortened_url"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.True(t, strings.HasPrefix(body.ShortenedURL, "/api/"))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, body.ShortenedURL, nil))

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "https://example.com/page", w.Header().Get("Location"))
	})

	t.Run("unknown code is 404", func(t *testing.T) {
		router := newFixture(t, store.NewMemoryStore()).router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/missing1", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid url is 500", func(t *testing.T) {
		router := newFixture(t, store.NewMemoryStore()).router()

		req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url":"example.com"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("root serves the banner", func(t *testing.T) {
		router := newFixture(t, store.NewMemoryStore()).router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello world!", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})
}

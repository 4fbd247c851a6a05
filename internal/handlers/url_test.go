package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/analytics"
	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/serroba/url-shortener/internal/requestctx"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLink() *shortener.ShortLink {
	return &shortener.ShortLink{
		ID:        "3f1c2b9e-0000-4000-8000-000000000001",
		Code:      "aB3dE7x",
		LongURL:   testURL,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var se huma.StatusError
	require.ErrorAs(t, err, &se)

	return se.GetStatus()
}

func newURLHandler(alloc handlers.Allocator, res handlers.Resolver) *handlers.URLHandler {
	return handlers.NewURLHandler(alloc, res, messaging.Discard[analytics.LinkCreatedEvent](), zap.NewNop())
}

func TestCreateShortURL(t *testing.T) {
	ctx := requestctx.With(context.Background(), requestctx.Meta{Scheme: "https", Host: "sho.rt"})

	t.Run("returns 201 and the short url for a new link", func(t *testing.T) {
		handler := newURLHandler(&stubAllocator{link: testLink(), created: true}, &stubResolver{})

		req := &handlers.ShortenRequest{Body: &handlers.ShortenBody{LongURL: testURL}}

		resp, err := handler.CreateShortURL(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.Equal(t, "aB3dE7x", resp.Body.ShortCode)
		assert.Equal(t, "https://sho.rt/aB3dE7x", resp.Body.ShortURL)
		assert.Equal(t, testURL, resp.Body.LongURL)
	})

	t.Run("returns 200 when an existing link is reused", func(t *testing.T) {
		handler := newURLHandler(&stubAllocator{link: testLink(), created: false}, &stubResolver{})

		req := &handlers.ShortenRequest{Body: &handlers.ShortenBody{LongURL: testURL}}

		resp, err := handler.CreateShortURL(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("publishes a created event only for new links", func(t *testing.T) {
		var events []*analytics.LinkCreatedEvent

		publish := func(_ context.Context, e *analytics.LinkCreatedEvent) error {
			events = append(events, e)

			return nil
		}

		alloc := &stubAllocator{link: testLink(), created: true}
		handler := handlers.NewURLHandler(alloc, &stubResolver{}, publish, zap.NewNop())

		req := &handlers.ShortenRequest{Body: &handlers.ShortenBody{LongURL: testURL}}

		_, err := handler.CreateShortURL(ctx, req)
		require.NoError(t, err)

		alloc.created = false
		_, err = handler.CreateShortURL(ctx, req)
		require.NoError(t, err)

		require.Len(t, events, 1)
		assert.Equal(t, "aB3dE7x", events[0].Code)
		assert.Equal(t, testURL, events[0].LongURL)
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		publish := func(_ context.Context, _ *analytics.LinkCreatedEvent) error { return errMock }
		handler := handlers.NewURLHandler(&stubAllocator{link: testLink(), created: true}, &stubResolver{}, publish, zap.NewNop())

		req := &handlers.ShortenRequest{Body: &handlers.ShortenBody{LongURL: testURL}}

		resp, err := handler.CreateShortURL(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Status)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing url", shortener.ErrMissingURL, http.StatusBadRequest, "longUrl is required"},
		{"invalid url", shortener.ErrInvalidURL, http.StatusBadRequest, "Invalid URL"},
		{"exhausted", shortener.ErrAllocationExhausted, http.StatusInternalServerError, "Failed to generate unique code"},
		{"store failure", errMock, http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range errorCases {
		t.Run("maps "+tc.name, func(t *testing.T) {
			handler := newURLHandler(&stubAllocator{err: tc.err}, &stubResolver{})

			resp, err := handler.CreateShortURL(ctx, &handlers.ShortenRequest{})

			assert.Nil(t, resp)
			assert.Equal(t, tc.status, statusOf(t, err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestRedirectToURL(t *testing.T) {
	t.Run("redirects with 302", func(t *testing.T) {
		handler := newURLHandler(&stubAllocator{}, &stubResolver{link: testLink()})

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "aB3dE7x"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, testURL, resp.Location)
		assert.Empty(t, resp.Body)
	})

	t.Run("returns plain text 404 for unknown code", func(t *testing.T) {
		handler := newURLHandler(&stubAllocator{}, &stubResolver{err: shortener.ErrNotFound})

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "missing"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "Short URL not found", string(resp.Body))
		assert.Contains(t, resp.ContentType, "text/plain")
		assert.Empty(t, resp.Location)
	})

	t.Run("returns plain text 500 on store error", func(t *testing.T) {
		handler := newURLHandler(&stubAllocator{}, &stubResolver{err: errMock})

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "aB3dE7x"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.Status)
		assert.Equal(t, "Server error", string(resp.Body))
	})
}

func TestRoot(t *testing.T) {
	resp, err := handlers.Root(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "URL Shortener API is running", string(resp.Body))
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/analytics"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/serroba/url-shortener/internal/requestctx"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

const (
	textPlain       = "text/plain; charset=utf-8"
	msgNotFound     = "Short URL not found"
	msgServerError  = "Server error"
	msgURLRequired  = "longUrl is required"
	msgInvalidURL   = "Invalid URL"
	msgExhausted    = "Failed to generate unique code"
	msgUnauthorized = "Unauthorized"
)

// Allocator assigns short codes to URLs.
type Allocator interface {
	Allocate(ctx context.Context, rawURL string) (*shortener.ShortLink, bool, error)
}

// Resolver resolves short codes for redirects.
type Resolver interface {
	Resolve(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error)
}

// URLHandler handles shortening and redirects.
type URLHandler struct {
	allocator         Allocator
	resolver          Resolver
	publishURLCreated messaging.Publish[analytics.LinkCreatedEvent]
	logger            *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	allocator Allocator,
	resolver Resolver,
	publishURLCreated messaging.Publish[analytics.LinkCreatedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		allocator:         allocator,
		resolver:          resolver,
		publishURLCreated: publishURLCreated,
		logger:            logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	var longURL string
	if req.Body != nil {
		longURL = req.Body.LongURL
	}

	link, created, err := h.allocator.Allocate(ctx, longURL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrMissingURL):
			return nil, huma.Error400BadRequest(msgURLRequired)
		case errors.Is(err, shortener.ErrInvalidInput):
			return nil, huma.Error400BadRequest(msgInvalidURL)
		case errors.Is(err, shortener.ErrAllocationExhausted):
			h.logger.Error("short code space exhausted", zap.Error(err))

			return nil, huma.Error500InternalServerError(msgExhausted)
		default:
			h.logger.Error("failed to shorten url", zap.Error(err))

			return nil, huma.Error500InternalServerError(msgServerError)
		}
	}

	meta := requestctx.From(ctx)
	status := http.StatusOK

	if created {
		status = http.StatusCreated
		h.publishCreated(ctx, link, meta)
	}

	return &ShortenResponse{
		Status: status,
		Body: LinkBody{
			ShortCode: string(link.Code),
			ShortURL:  shortURL(meta, link.Code),
			LongURL:   link.LongURL,
		},
	}, nil
}

func (h *URLHandler) publishCreated(ctx context.Context, link *shortener.ShortLink, meta requestctx.Meta) {
	event := &analytics.LinkCreatedEvent{
		Code:      string(link.Code),
		LongURL:   link.LongURL,
		CreatedAt: link.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishURLCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.resolver.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return plainText(http.StatusNotFound, msgNotFound), nil
		}

		h.logger.Error("failed to resolve short code",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return plainText(http.StatusInternalServerError, msgServerError), nil
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: link.LongURL,
	}, nil
}

func plainText(status int, msg string) *RedirectResponse {
	return &RedirectResponse{
		Status:      status,
		ContentType: textPlain,
		Body:        []byte(msg),
	}
}

// shortURL derives the absolute short URL from the request; it is never stored.
func shortURL(meta requestctx.Meta, code shortener.Code) string {
	return meta.BaseURL() + "/" + string(code)
}

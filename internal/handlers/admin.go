package handlers

import (
	"context"
	"crypto/subtle"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/requestctx"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// LinkLister lists every stored link, newest first.
type LinkLister interface {
	List(ctx context.Context) ([]*shortener.ShortLink, error)
}

// AdminHandler serves the admin listing behind a shared secret.
type AdminHandler struct {
	links    LinkLister
	adminKey string
	logger   *zap.Logger
}

// NewAdminHandler creates a new admin handler. An empty adminKey rejects every request.
func NewAdminHandler(links LinkLister, adminKey string, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{links: links, adminKey: adminKey, logger: logger}
}

func (h *AdminHandler) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error) {
	if !h.authorized(req.AdminKey) {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	links, err := h.links.List(ctx)
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))

		return nil, huma.Error500InternalServerError(msgServerError)
	}

	meta := requestctx.From(ctx)
	resp := &ListLinksResponse{Body: make([]AdminLink, 0, len(links))}

	for _, link := range links {
		resp.Body = append(resp.Body, AdminLink{
			ID:        link.ID,
			ShortCode: string(link.Code),
			LongURL:   link.LongURL,
			Clicks:    link.Clicks,
			CreatedAt: link.CreatedAt,
			ShortURL:  shortURL(meta, link.Code),
		})
	}

	return resp, nil
}

func (h *AdminHandler) authorized(key string) bool {
	if h.adminKey == "" || key == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) == 1
}

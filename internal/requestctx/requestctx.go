// Package requestctx carries per-request HTTP metadata through context.
package requestctx

import "context"

type metaKey struct{}

// Meta holds HTTP request metadata used to build short URLs and analytics events.
type Meta struct {
	Scheme    string
	Host      string
	ClientIP  string
	UserAgent string
	Referrer  string
}

// BaseURL returns scheme://host, defaulting the scheme to http.
func (m Meta) BaseURL() string {
	scheme := m.Scheme
	if scheme == "" {
		scheme = "http"
	}

	return scheme + "://" + m.Host
}

// With adds request metadata to ctx.
func With(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// From extracts request metadata from ctx.
func From(ctx context.Context) Meta {
	if v, ok := ctx.Value(metaKey{}).(Meta); ok {
		return v
	}

	return Meta{}
}

package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/requestctx"
)

// RequestMeta is a middleware that adds the request scheme, host, client IP,
// user-agent and referrer to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := requestctx.Meta{
			Scheme:    scheme(ctx),
			Host:      ctx.Host(),
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		newCtx := requestctx.With(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func scheme(ctx huma.Context) string {
	if proto := ctx.Header("X-Forwarded-Proto"); proto != "" {
		// Take the protocol the client used with the first proxy
		if idx := strings.Index(proto, ","); idx != -1 {
			proto = proto[:idx]
		}

		return strings.ToLower(strings.TrimSpace(proto))
	}

	if ctx.TLS() != nil {
		return "https"
	}

	return "http"
}

func clientIP(ctx huma.Context) string {
	// Check X-Forwarded-For first (may contain multiple IPs)
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}

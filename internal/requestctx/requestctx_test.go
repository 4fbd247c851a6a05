package requestctx_test

import (
	"context"
	"testing"

	"github.com/serroba/url-shortener/internal/requestctx"
	"github.com/stretchr/testify/assert"
)

func TestWith(t *testing.T) {
	t.Run("adds and retrieves request metadata from context", func(t *testing.T) {
		meta := requestctx.Meta{
			Scheme:    "https",
			Host:      "sho.rt",
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
			Referrer:  "https://referrer.com",
		}

		ctx := requestctx.With(context.Background(), meta)

		assert.Equal(t, meta, requestctx.From(ctx))
	})

	t.Run("returns zero value when absent", func(t *testing.T) {
		assert.Equal(t, requestctx.Meta{}, requestctx.From(context.Background()))
	})
}

func TestMeta_BaseURL(t *testing.T) {
	assert.Equal(t, "https://sho.rt", requestctx.Meta{Scheme: "https", Host: "sho.rt"}.BaseURL())
	assert.Equal(t, "http://localhost:8888", requestctx.Meta{Host: "localhost:8888"}.BaseURL())
}

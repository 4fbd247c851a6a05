package handlers_test

import (
	"net/http"
	"testing"

	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		msg        string
		wantStatus int
		wantMsg    string
	}{
		{"keeps handler errors", http.StatusUnauthorized, "Unauthorized", http.StatusUnauthorized, "Unauthorized"},
		{"keeps other bad requests", http.StatusBadRequest, "Invalid URL", http.StatusBadRequest, "Invalid URL"},
		{"maps validation failures", http.StatusUnprocessableEntity, "validation failed", http.StatusBadRequest, "Invalid URL"},
		{"maps a missing body", http.StatusBadRequest, "request body is required", http.StatusBadRequest, "longUrl is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := handlers.NewAPIError(tc.status, tc.msg)

			assert.Equal(t, tc.wantStatus, err.GetStatus())
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestAPIConfig(t *testing.T) {
	config := handlers.APIConfig("Test", "1.0.0")

	assert.Empty(t, config.CreateHooks)
	assert.Equal(t, "/api/docs", config.DocsPath)
	assert.Equal(t, "/api/openapi", config.OpenAPIPath)
}

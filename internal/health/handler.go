package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	healthy        = "healthy"
	unhealthy      = "unhealthy"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	store Checker
	cache Checker
	now   func() time.Time
}

// NewHandler creates a new health handler. cache may be nil when no cache is configured.
func NewHandler(store, cache Checker) *Handler {
	return &Handler{store: store, cache: cache, now: time.Now}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string    `json:"status"`
		Time   time.Time `json:"time"`
		Store  string    `json:"store"`
		Cache  string    `json:"cache,omitempty"`
	}
}

// Check reports liveness and the state of the store and cache. Only the
// store affects the overall status; cache failures fall back to the store.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = statusOK
	resp.Body.Time = h.now().UTC()
	resp.Body.Store = probe(ctx, h.store)

	if resp.Body.Store != healthy {
		resp.Body.Status = statusDegraded
	}

	if h.cache != nil {
		resp.Body.Cache = probe(ctx, h.cache)
	}

	return resp, nil
}

func probe(ctx context.Context, c Checker) string {
	if err := c.Ping(ctx); err != nil {
		return unhealthy
	}

	return healthy
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Check)
}

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// RedisCacheRepository wraps a Repository with Redis caching for lookups.
// Only the immutable part of a link is cached: Clicks on a cached link is
// always zero and List bypasses the cache.
type RedisCacheRepository struct {
	store   shortener.Repository
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	prefix  string
	urlKey  string
	ttl     time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger,
) *RedisCacheRepository {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &RedisCacheRepository{
		store:   store,
		client:  client,
		breaker: breaker,
		logger:  logger,
		prefix:  "link:",
		urlKey:  "link_url:",
		ttl:     ttl,
	}
}

// Save stores a link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, link *shortener.ShortLink) error {
	if err := r.store.Save(ctx, link); err != nil {
		return err
	}

	// Write-through
	r.cacheLink(ctx, link)

	return nil
}

// GetByCode retrieves a link by its code, checking cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if link := r.getFromCache(ctx, code); link != nil {
		return link, nil
	}

	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// GetByLongURL retrieves a link by its normalized URL, checking the URL index first.
func (r *RedisCacheRepository) GetByLongURL(ctx context.Context, longURL string) (*shortener.ShortLink, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		code, err := r.client.Get(ctx, r.urlKey+hashURL(longURL)).Result()
		if errors.Is(err, redis.Nil) {
			return "", nil
		}

		return code, err
	})
	if code, ok := result.(string); err == nil && ok && code != "" {
		if link := r.getFromCache(ctx, shortener.Code(code)); link != nil && link.LongURL == longURL {
			return link, nil
		}
	}

	link, err := r.store.GetByLongURL(ctx, longURL)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// IncrementClicks always goes to the underlying store.
func (r *RedisCacheRepository) IncrementClicks(ctx context.Context, code shortener.Code) error {
	return r.store.IncrementClicks(ctx, code)
}

// List always goes to the underlying store.
func (r *RedisCacheRepository) List(ctx context.Context) ([]*shortener.ShortLink, error) {
	return r.store.List(ctx)
}

// Ping checks Redis connectivity.
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) *shortener.ShortLink {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	})
	if err != nil {
		r.logger.Debug("cache read failed", zap.String("code", string(code)), zap.Error(err))

		return nil
	}

	fields, _ := result.(map[string]string)
	if len(fields) == 0 {
		return nil
	}

	var createdAt time.Time

	if ts, ok := fields["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.ShortLink{
		ID:        fields["id"],
		Code:      shortener.Code(fields["code"]),
		LongURL:   fields["long_url"],
		CreatedAt: createdAt,
	}
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.ShortLink) {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		pipe := r.client.Pipeline()
		key := r.prefix + string(link.Code)
		urlKey := r.urlKey + hashURL(link.LongURL)

		pipe.HSet(ctx, key, map[string]interface{}{
			"id":         link.ID,
			"code":       string(link.Code),
			"long_url":   link.LongURL,
			"created_at": link.CreatedAt.UnixNano(),
		})
		// Keep the first code seen for a URL, matching the store's dedup order.
		pipe.SetNX(ctx, urlKey, string(link.Code), r.ttl)

		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}

		return pipe.Exec(ctx)
	})
	if err != nil {
		r.logger.Debug("cache write failed", zap.String("code", string(link.Code)), zap.Error(err))
	}
}

// hashURL keys the URL index by SHA256 so arbitrarily long URLs fit in a key.
func hashURL(longURL string) string {
	h := sha256.Sum256([]byte(longURL))

	return hex.EncodeToString(h[:])
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)

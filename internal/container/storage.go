package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Postgres wraps the pool so the injector closes it on shutdown.
type Postgres struct {
	*pgxpool.Pool
}

func (p *Postgres) Shutdown() error {
	p.Close()

	return nil
}

// RedisClient wraps the optional Redis client. Client is nil when no
// redis-addr is configured.
type RedisClient struct {
	*redis.Client
}

func (r *RedisClient) Enabled() bool {
	return r.Client != nil
}

func (r *RedisClient) Shutdown() error {
	if r.Client == nil {
		return nil
	}

	return r.Close()
}

func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Postgres, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("database-url is required")
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := store.NewPostgresPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}

		if opts.Migrate {
			if err := store.Migrate(opts.DatabaseURL); err != nil {
				pool.Close()

				return nil, err
			}

			logger.Info("database migrations applied")
		}

		return &Postgres{Pool: pool}, nil
	})
}

func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.RedisAddr == "" {
			return &RedisClient{}, nil
		}

		return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

// RepositoryPackage provides the Postgres store and the repository used by
// the shortener, which adds the Redis cache when Redis is configured.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.PostgresStore, error) {
		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		return store.NewPostgresStore(pg.Pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		pgStore, err := do.Invoke[*store.PostgresStore](i)
		if err != nil {
			return nil, err
		}

		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		rc := do.MustInvoke[*RedisClient](i)

		if !rc.Enabled() {
			return pgStore, nil
		}

		return store.NewRedisCacheRepository(pgStore, rc.Client, opts.cacheTTL(), logger), nil
	})
}

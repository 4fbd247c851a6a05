package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/url-shortener/internal/shortener"
)

const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPool opens a pool and verifies the database is reachable.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (id, code, long_url, clicks, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		link.ID,
		string(link.Code),
		link.LongURL,
		link.Clicks,
		link.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortener.ErrCodeConflict
		}

		return err
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	query := `
		SELECT id::text, code, long_url, clicks, created_at
		FROM short_links
		WHERE code = $1
	`

	return p.queryOne(ctx, query, string(code))
}

func (p *PostgresStore) GetByLongURL(ctx context.Context, longURL string) (*shortener.ShortLink, error) {
	query := `
		SELECT id::text, code, long_url, clicks, created_at
		FROM short_links
		WHERE long_url = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	return p.queryOne(ctx, query, longURL)
}

func (p *PostgresStore) IncrementClicks(ctx context.Context, code shortener.Code) error {
	tag, err := p.pool.Exec(ctx, `UPDATE short_links SET clicks = clicks + 1 WHERE code = $1`, string(code))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*shortener.ShortLink, error) {
	query := `
		SELECT id::text, code, long_url, clicks, created_at
		FROM short_links
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	links, err := pgx.CollectRows(rows, scanLink)
	if err != nil {
		return nil, err
	}

	return links, nil
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, arg string) (*shortener.ShortLink, error) {
	rows, err := p.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}

	link, err := pgx.CollectExactlyOneRow(rows, scanLink)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return link, nil
}

func scanLink(row pgx.CollectableRow) (*shortener.ShortLink, error) {
	var (
		link shortener.ShortLink
		code string
	)

	if err := row.Scan(&link.ID, &code, &link.LongURL, &link.Clicks, &link.CreatedAt); err != nil {
		return nil, err
	}

	link.Code = shortener.Code(code)

	return &link, nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)

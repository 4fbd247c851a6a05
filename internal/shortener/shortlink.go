package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Code represents a short URL code.
type Code string

// ShortLink maps a short code to the normalized URL it redirects to.
type ShortLink struct {
	ID        string
	Code      Code
	LongURL   string
	Clicks    int64
	CreatedAt time.Time
}

var (
	ErrNotFound            = errors.New("short link not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingURL          = fmt.Errorf("%w: url is required", ErrInvalidInput)
	ErrInvalidURL          = fmt.Errorf("%w: url is not a valid absolute url", ErrInvalidInput)
	ErrAllocationExhausted = errors.New("failed to generate unique code")
	ErrCodeConflict        = errors.New("short code already exists")
)

// Repository persists short links.
type Repository interface {
	// Save inserts a new link. Returns ErrCodeConflict if the code is taken.
	Save(ctx context.Context, link *ShortLink) error
	GetByCode(ctx context.Context, code Code) (*ShortLink, error)
	// GetByLongURL finds a link by exact normalized URL match.
	GetByLongURL(ctx context.Context, longURL string) (*ShortLink, error)
	IncrementClicks(ctx context.Context, code Code) error
	// List returns every link, newest first.
	List(ctx context.Context) ([]*ShortLink, error)
}

package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const (
	// Alphabet is the fixed set of characters short codes are drawn from.
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// DefaultCodeLength is the length of generated short codes.
	DefaultCodeLength = 7
	// MaxAttempts bounds how many codes are tried before giving up.
	MaxAttempts = 5
)

// CodeGenerator generates candidate short codes.
type CodeGenerator func() string

// NewCodeGenerator returns a nanoid generator over Alphabet.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return CodeGenerator(gen), nil
}

// Allocator assigns short codes to URLs, reusing the existing code when the
// normalized URL has been seen before.
type Allocator struct {
	store        Repository
	generateCode CodeGenerator
	now          func() time.Time
}

// NewAllocator creates a new code allocator.
func NewAllocator(store Repository, generator CodeGenerator) *Allocator {
	return &Allocator{
		store:        store,
		generateCode: generator,
		now:          time.Now,
	}
}

// Allocate returns the link for rawURL. created reports whether a new record
// was persisted (false on dedup reuse).
func (a *Allocator) Allocate(ctx context.Context, rawURL string) (link *ShortLink, created bool, err error) {
	longURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	existing, err := a.store.GetByLongURL(ctx, longURL)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("lookup by url: %w", err)
	}

	code, err := a.freeCode(ctx)
	if err != nil {
		return nil, false, err
	}

	link = &ShortLink{
		ID:        uuid.NewString(),
		Code:      code,
		LongURL:   longURL,
		Clicks:    0,
		CreatedAt: a.now().UTC(),
	}

	if err = a.store.Save(ctx, link); err != nil {
		return nil, false, fmt.Errorf("save link: %w", err)
	}

	return link, true, nil
}

func (a *Allocator) freeCode(ctx context.Context) (Code, error) {
	for range MaxAttempts {
		code := Code(a.generateCode())

		_, err := a.store.GetByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}

		if err != nil {
			return "", fmt.Errorf("lookup by code: %w", err)
		}
	}

	return "", ErrAllocationExhausted
}

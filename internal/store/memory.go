package store

import (
	"context"
	"slices"
	"sync"

	"github.com/serroba/url-shortener/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.Code]*shortener.ShortLink
	urls  map[string]shortener.Code // longURL -> first code saved for it
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Code]*shortener.ShortLink),
		urls:  make(map[string]shortener.Code),
	}
}

func (m *MemoryStore) Save(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Code]; ok {
		return shortener.ErrCodeConflict
	}

	stored := *link
	m.links[link.Code] = &stored

	if _, ok := m.urls[link.LongURL]; !ok {
		m.urls[link.LongURL] = link.Code
	}

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	found := *link

	return &found, nil
}

func (m *MemoryStore) GetByLongURL(ctx context.Context, longURL string) (*shortener.ShortLink, error) {
	m.mu.RLock()
	code, ok := m.urls[longURL]
	m.mu.RUnlock()

	if !ok {
		return nil, shortener.ErrNotFound
	}

	return m.GetByCode(ctx, code)
}

func (m *MemoryStore) IncrementClicks(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}

	link.Clicks++

	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]*shortener.ShortLink, 0, len(m.links))

	for _, link := range m.links {
		found := *link
		links = append(links, &found)
	}

	slices.SortFunc(links, func(a, b *shortener.ShortLink) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return links, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)

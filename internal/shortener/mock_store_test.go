package shortener_test

import (
	"context"
	"errors"
	"sync"

	"github.com/serroba/url-shortener/internal/shortener"
)

var errMock = errors.New("mock error")

// mockStore is a test double for shortener.Repository with injectable errors.
type mockStore struct {
	mu             sync.Mutex
	links          map[shortener.Code]*shortener.ShortLink
	saveErr        error
	getByCodeErr   error
	getByURLErr    error
	incrementErr   error
	getByCodeCalls int
	saved          []*shortener.ShortLink
	increments     []shortener.Code
}

func newMockStore() *mockStore {
	return &mockStore{links: make(map[shortener.Code]*shortener.ShortLink)}
}

func (m *mockStore) Save(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}

	m.links[link.Code] = link
	m.saved = append(m.saved, link)

	return nil
}

func (m *mockStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getByCodeCalls++

	if m.getByCodeErr != nil {
		return nil, m.getByCodeErr
	}

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return link, nil
}

func (m *mockStore) GetByLongURL(_ context.Context, longURL string) (*shortener.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getByURLErr != nil {
		return nil, m.getByURLErr
	}

	for _, link := range m.links {
		if link.LongURL == longURL {
			return link, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *mockStore) IncrementClicks(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.increments = append(m.increments, code)

	if m.incrementErr != nil {
		return m.incrementErr
	}

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}

	link.Clicks++

	return nil
}

func (m *mockStore) List(_ context.Context) ([]*shortener.ShortLink, error) {
	return nil, nil
}

func (m *mockStore) incrementCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.increments)
}

// sequence returns a generator that yields codes in order, repeating the last.
func sequence(codes ...string) shortener.CodeGenerator {
	var i int

	return func() string {
		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}

package handlers_test

import (
	"context"
	"errors"

	"github.com/serroba/url-shortener/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// stubAllocator returns a fixed result.
type stubAllocator struct {
	link    *shortener.ShortLink
	created bool
	err     error
}

func (s *stubAllocator) Allocate(_ context.Context, _ string) (*shortener.ShortLink, bool, error) {
	return s.link, s.created, s.err
}

// stubResolver returns a fixed result.
type stubResolver struct {
	link *shortener.ShortLink
	err  error
}

func (s *stubResolver) Resolve(_ context.Context, _ shortener.Code) (*shortener.ShortLink, error) {
	return s.link, s.err
}

// stubLister returns a fixed listing.
type stubLister struct {
	links []*shortener.ShortLink
	err   error
	calls int
}

func (s *stubLister) List(_ context.Context) ([]*shortener.ShortLink, error) {
	s.calls++

	return s.links, s.err
}

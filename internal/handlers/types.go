package handlers

import "time"

// ShortenRequest is the request for creating a short URL. A missing body is
// reported by the handler as a missing longUrl.
type ShortenRequest struct {
	Body *ShortenBody `required:"false"`
}

// ShortenBody is the JSON body of a shorten request. Unknown fields are ignored.
type ShortenBody struct {
	_       struct{} `additionalProperties:"true" json:"-"`
	LongURL string   `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"longUrl,omitempty"`
}

// ShortenResponse is returned with 201 for a new link and 200 when an existing one is reused.
type ShortenResponse struct {
	Status int
	Body   LinkBody
}

// LinkBody is the public shape of a short link.
type LinkBody struct {
	ShortCode string `doc:"The short code"     example:"aB3dE7x"                            json:"shortCode"`
	ShortURL  string `doc:"The full short URL" example:"http://localhost:8888/aB3dE7x"      json:"shortUrl"`
	LongURL   string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"longUrl"`
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aB3dE7x" path:"code"`
}

// RedirectResponse is a 302 redirect or a plain-text error.
type RedirectResponse struct {
	Status      int
	Location    string `header:"Location"`
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// ListLinksRequest carries the admin key.
type ListLinksRequest struct {
	AdminKey string `doc:"Shared admin secret" header:"x-admin-key"`
}

// ListLinksResponse is the admin listing, newest first.
type ListLinksResponse struct {
	Body []AdminLink
}

// AdminLink is one row of the admin listing.
type AdminLink struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"shortCode"`
	LongURL   string    `json:"longUrl"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"createdAt"`
	ShortURL  string    `json:"shortUrl"`
}

// TextResponse is a plain-text body.
type TextResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

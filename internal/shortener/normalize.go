package shortener

import (
	"net/url"
	"strings"
)

const defaultScheme = "http://"

// NormalizeURL parses rawURL as an absolute URL, retrying with an http://
// prefix when the input has no scheme. Only the scheme is defaulted: paths,
// trailing slashes and query order are left exactly as given.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrMissingURL
	}

	if u, ok := parseAbsolute(rawURL); ok {
		return u.String(), nil
	}

	if u, ok := parseAbsolute(defaultScheme + rawURL); ok {
		return u.String(), nil
	}

	return "", ErrInvalidURL
}

func parseAbsolute(rawURL string) (*url.URL, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return nil, false
	}

	switch u.Scheme {
	case "http", "https":
		if u.Hostname() == "" {
			return nil, false
		}
	default:
		if u.Opaque == "" && u.Host == "" && u.Path == "" {
			return nil, false
		}
	}

	return u, true
}

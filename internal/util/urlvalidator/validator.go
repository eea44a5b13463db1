package urlvalidator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL          = errors.New("url is empty")
	ErrInsecureScheme    = errors.New("http scheme is not allowed")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrMissingHost       = errors.New("url has no host")
)

// ValidateURLFormat checks that raw is an absolute http(s) URL and returns it
// with trailing slashes removed. Plain http is accepted only when allowInsecureHTTP is set.
func ValidateURLFormat(raw string, allowInsecureHTTP bool) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyURL
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "https":
	case "http":
		if !allowInsecureHTTP {
			return "", ErrInsecureScheme
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	if u.Hostname() == "" {
		return "", ErrMissingHost
	}
	if port := u.Port(); port != "" {
		for _, r := range port {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("invalid port %q", port)
			}
		}
	}

	return strings.TrimRight(trimmed, "/"), nil
}

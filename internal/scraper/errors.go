package scraper

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidURL indicates the supplied product URL could not be parsed.
	ErrInvalidURL = errors.New("invalid product URL")
	// ErrUnsupportedDomain indicates the URL host is not the target site.
	ErrUnsupportedDomain = errors.New("only flipkart.com URLs are supported")
	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("search query must not be empty")
	// ErrProductNotFound indicates the fetched body matched the site's
	// moved-or-deleted page, so the link points to no product.
	ErrProductNotFound = errors.New("link doesn't correspond to any product")
	// ErrHostUnavailable indicates the fetched body matched the site's
	// generic server-error page.
	ErrHostUnavailable = errors.New("internal server error: host is down or blocking requests")
)

// checkBodySignatures maps known failure phrases in a fetched body to the
// matching error. Pages passing this check may still yield mostly empty
// records; per-field misses are never errors.
func checkBodySignatures(body string) error {
	if containsAny(body, "has been moved or deleted", "not right!") {
		return ErrProductNotFound
	}
	if containsAny(body, "Internal Server Error") {
		return ErrHostUnavailable
	}
	return nil
}

func containsAny(body string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}
	return false
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrUnsupportedDomain), errors.Is(err, ErrEmptyQuery):
		return "invalid_input"
	case errors.Is(err, ErrProductNotFound):
		return "not_found"
	case errors.Is(err, ErrHostUnavailable):
		return "host_error"
	default:
		return "transport"
	}
}

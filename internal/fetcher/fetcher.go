// Package fetcher retrieves raw page markup for the crawler.
//
// Two providers implement the Fetcher interface: a direct HTTP client
// and a client for third-party scraping APIs that render JavaScript.
// The crawler is agnostic to which provider is configured; both return
// markup as a string or an error.
//
// Design decision: We define the interface here, next to its
// implementations, rather than in the crawler package because:
//  1. Tests in several packages fake the fetcher
//  2. Provider selection happens at config time, before a crawler exists
//  3. The interface is the package's entire public contract
package fetcher

import (
	"context"
	"errors"
)

// Fetcher retrieves the raw HTML for a URL.
type Fetcher interface {
	// Fetch returns the page markup for the given URL.
	// It returns an error for network failures, timeouts, and non-2xx
	// responses. The context bounds the whole fetch including body read.
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Fetch errors shared by all providers.
var (
	// ErrHTTPStatus is returned when the upstream responds with a
	// non-2xx status code.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrEmptyBody is returned when the upstream responds with an
	// empty body. An empty page cannot be checked, so it is treated
	// as a fetch failure rather than producing 19 vacuous results.
	ErrEmptyBody = errors.New("empty response body")

	// ErrMissingAPIKey is returned when the scraping API provider is
	// constructed without a key.
	ErrMissingAPIKey = errors.New("scraping API key is required")
)

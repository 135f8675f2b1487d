package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name the specific field
// that is wrong.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no start URL is given to analyze.
	ErrNoTarget = errors.New("no target specified: provide at least one start URL")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxPages is returned when the page budget is below one.
	// At least the start page itself must be fetched.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be at least 1")

	// ErrInvalidConcurrency is returned when the fan-out width is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidCacheTTL is returned when the report retention window is
	// not positive. Reports must always expire to bound memory growth.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrInvalidBatchSize is returned when the multi-site batch width is
	// not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrUnknownProvider is returned when the fetch provider name is not
	// one of the supported providers.
	ErrUnknownProvider = errors.New("unknown fetch provider: use \"direct\" or \"scrapingapi\"")

	// ErrMissingAPIKey is returned when the scrapingapi provider is
	// selected without an API key.
	ErrMissingAPIKey = errors.New("scrapingapi provider requires an API key")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrMissingSMTPConfig is returned by the send path when the SMTP
	// host or sender address is not configured.
	ErrMissingSMTPConfig = errors.New("sending reports requires smtp host and from address")
)

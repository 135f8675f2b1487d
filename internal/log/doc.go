// Package log provides logging with automatic redaction of credentials,
// built on top of the standard slog package.
//
// geoready talks to two credentialed services: the third-party scraping
// API (query-string API key) and an SMTP relay (username/password). Both
// credentials tend to leak into logs through request URLs and config
// dumps, so the RedactHandler masks them before any record reaches the
// underlying handler.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("fetching page",
//	    "api_key", cfg.APIKey, // masked in output
//	    "url", target,
//	)
package log

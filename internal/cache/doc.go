// Package cache holds completed analysis reports for a retention window.
//
// Analysis produces a detailed report that is too large to print by
// default; the store keeps it alive under an opaque token so the send
// command can deliver it by email later. Handles live in memory and,
// when a spill directory is configured, in one JSON file per token so
// the token survives process exit. Handles expire after a TTL and are
// removed eagerly once delivered.
package cache

// Package pipeline orchestrates site analyses as ordered steps over a
// shared Run state.
//
// A single analysis is an analyze step (crawl and aggregate) followed
// by a cache step (store the report under a token). BatchProcessor runs
// the same pipeline over many start URLs concurrently for multi-site
// invocations.
package pipeline

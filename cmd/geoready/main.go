// Package main provides the entry point for the geoready CLI.
//
// geoready audits how ready a website is to be found, understood, and
// cited by generative AI search engines. It crawls a bounded set of
// pages, runs a fixed battery of readiness checks, and reports a
// 0-100 score.
//
// Usage:
//
//	geoready analyze <url>
//	geoready send <report-id> --to you@example.com
//
// See --help for all available options.
package main

// main is the entry point for geoready.
func main() {
	Execute()
}

// Package crawler discovers and analyzes a bounded set of same-site
// pages starting from a single URL.
//
// # Architecture
//
// The Crawler fetches the start page, runs the check battery on it,
// extracts navigation-menu candidates, and then fetches, parses, and
// checks the candidates concurrently under a hard page budget. The
// merged per-page results are aggregated into a single report.
//
// This is deliberately not a general-purpose crawler: there is no
// depth-first traversal, no robots.txt handling, and no queue beyond
// the one round of menu links. The product question is "how does this
// site's primary navigation look to an answer engine", and one round
// of menu links under a ten-page budget answers it while keeping
// latency and scraping-API spend bounded.
//
// # Failure semantics
//
// Only the start page is load-bearing: if it cannot be fetched or
// parsed, the crawl fails as a whole. Every secondary page failure is
// absorbed — logged, and the page omitted from the results — because a
// single slow or broken menu link must never sink the analysis of the
// rest of the site.
package crawler

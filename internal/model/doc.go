// Package model defines the core data structures shared across the
// geoready application.
//
// The model package has no dependencies on other internal packages,
// making it safe to import from anywhere in the codebase. It contains:
//
//   - Page: a parsed HTML page bound to its canonical URL
//   - CheckName, CheckResult, PageResult: the per-page check battery output
//   - AggregateReport: the crawl-wide aggregation of check results
//   - ReportHandle: a cached report referenced by an opaque token
//
// Design decision: We keep models in a dedicated package rather than
// defining them alongside their producers because:
//  1. It prevents import cycles (checker, crawler, score all share these types)
//  2. It provides a single place to understand the data flow
//  3. Serialization concerns (JSON tags) live in one place
package model

package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckStat is the pass/total tally for a single check across all
// crawled pages.
type CheckStat struct {
	// Passed is the number of pages that passed the check.
	Passed int `json:"passed"`

	// Total is the number of pages the check ran on. This always
	// equals the report's PagesCrawled.
	Total int `json:"total"`
}

// Failure records one page's failure of one check.
type Failure struct {
	// URL is the page that failed the check.
	URL string `json:"url"`

	// Details is the human-readable failure reason from the check.
	Details string `json:"details"`
}

// DetailedCheck is the full per-check breakdown, including the failure
// listing. This is only included in the detailed report since failure
// details can be large for multi-page crawls.
type DetailedCheck struct {
	// Passed is the number of pages that passed.
	Passed int `json:"passed_count"`

	// Total is the number of pages checked.
	Total int `json:"total_count"`

	// Failures lists every page that failed, with reasons.
	// Passed + len(Failures) == Total always holds.
	Failures []Failure `json:"failures"`
}

// Summary is the lightweight score view suitable for an immediate
// response: the overall score plus per-check tallies, without the
// per-page failure listing.
type Summary struct {
	// AverageScore is the site score in [0, 100]. It is the rounded
	// percentage of passed checks across all pages, 0 when nothing
	// was checked.
	AverageScore int `json:"average_score"`

	// CheckStats maps each check name to its pass/total tally.
	CheckStats map[CheckName]CheckStat `json:"check_stats"`
}

// AggregateReport is the crawl-wide aggregation of per-page check
// results. It is created once per crawl and immutable thereafter.
//
// Design decision: We carry both Summary and Detailed rather than
// deriving one from the other at render time because:
//  1. The summary is returned immediately while the detail is cached
//  2. Writers stay read-only over the report
//  3. The invariants between the two are fixed at aggregation time
type AggregateReport struct {
	// Summary is the lightweight score view.
	Summary Summary `json:"summary"`

	// Detailed maps each check name to its full breakdown.
	Detailed map[CheckName]DetailedCheck `json:"detailed_report"`

	// PagesCrawled is the number of pages that produced results.
	PagesCrawled int `json:"pages_crawled"`
}

// ReportHandle references a cached AggregateReport by an opaque token.
// Exactly one live handle exists per completed analysis; the cache
// evicts handles after their retention window or once the report has
// been emailed.
type ReportHandle struct {
	// ID is the opaque unique token identifying the cached report.
	ID string `json:"id"`

	// URL is the start URL the report was generated for.
	URL string `json:"url"`

	// Report is the cached aggregate report.
	Report *AggregateReport `json:"report"`

	// CreatedAt is when the crawl completed.
	CreatedAt time.Time `json:"created_at"`
}

// NewReportHandle creates a handle for the given report with a fresh
// random token.
//
// Design decision: We use a UUIDv4 rather than a counter because the
// token doubles as a capability: anyone holding it can trigger email
// delivery of the report, so it must be unguessable and collision-free
// across concurrent requests.
func NewReportHandle(targetURL string, report *AggregateReport) *ReportHandle {
	return &ReportHandle{
		ID:        uuid.NewString(),
		URL:       targetURL,
		Report:    report,
		CreatedAt: time.Now(),
	}
}

package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/nao1215/geoready/internal/checker"
	"github.com/nao1215/geoready/internal/fetcher"
	"github.com/nao1215/geoready/internal/model"
	"github.com/nao1215/geoready/internal/score"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidStartURL is returned when the start URL cannot be parsed
// or is not an absolute http(s) URL.
var ErrInvalidStartURL = errors.New("invalid start URL")

// Crawler coordinates the fetch, parse, check, and aggregate phases of
// a site analysis.
//
// Design decision: We require an injected Fetcher rather than building
// one internally because:
//  1. Provider selection (direct vs scraping API) is a config concern
//  2. Tests fake the fetcher to run without a network
//  3. The crawler stays transport-agnostic
type Crawler struct {
	// fetcher retrieves raw markup for URLs.
	fetcher fetcher.Fetcher

	// maxPages is the hard page budget including the start page.
	maxPages int

	// concurrency bounds the secondary-page fan-out width.
	concurrency int

	// logger for structured logging.
	logger *slog.Logger

	// runChecks evaluates the check battery on a page.
	// Replaceable in tests to observe orchestration without depending
	// on checker internals.
	runChecks func(*model.Page) []model.CheckResult
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxPages sets the total page budget, including the start page.
// Values below one are ignored.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		if n >= 1 {
			c.maxPages = n
		}
	}
}

// WithConcurrency sets the secondary-page fan-out width.
// Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(c *Crawler) {
		if n >= 1 {
			c.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithCheckRunner replaces the check battery. Intended for tests.
func WithCheckRunner(run func(*model.Page) []model.CheckResult) Option {
	return func(c *Crawler) {
		c.runChecks = run
	}
}

// Default crawl bounds: one start page plus up to nine menu pages, all
// secondary fetches in flight at once.
const (
	defaultMaxPages    = 10
	defaultConcurrency = 9
)

// New creates a Crawler using the given fetcher.
func New(f fetcher.Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:     f,
		maxPages:    defaultMaxPages,
		concurrency: defaultConcurrency,
		runChecks:   checker.Run,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Crawl analyzes the site starting at startURL and returns the
// aggregated report.
//
// The start page is fetched and checked first; menu links discovered on
// it are then fetched concurrently up to the page budget. A start-page
// failure is fatal. Secondary-page failures only shrink the page count;
// they never abort the other fetches or change the report's shape.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*model.AggregateReport, error) {
	if err := validateStartURL(startURL); err != nil {
		return nil, err
	}

	rawHTML, err := c.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return nil, fmt.Errorf("fetch start page: %w", err)
	}

	page, err := model.ParsePage(rawHTML, startURL)
	if err != nil {
		return nil, fmt.Errorf("parse start page: %w", err)
	}

	home := model.PageResult{URL: startURL, Checks: c.runChecks(page)}

	seen := map[string]bool{NormalizeURL(startURL): true}
	candidates := ExtractMenuLinks(page, seen)
	if max := c.maxPages - 1; len(candidates) > max {
		candidates = candidates[:max]
	}

	c.logger.Debug("discovered menu pages",
		"start_url", startURL,
		"candidates", len(candidates),
	)

	// Fan out over the candidates. Failures are absorbed per page: a
	// goroutine that cannot produce a result leaves its slot nil and
	// must not affect its siblings, so no error ever reaches the group.
	results := make([]*model.PageResult, len(candidates))
	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				c.logger.Warn("crawl cancelled", "url", candidate, "reason", ctx.Err())
				return nil
			default:
			}

			results[i] = c.crawlPage(ctx, candidate)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Goroutines never return errors

	merged := make([]model.PageResult, 0, len(candidates)+1)
	merged = append(merged, home)
	for _, r := range results {
		if r != nil {
			merged = append(merged, *r)
		}
	}

	c.logger.Debug("crawl complete",
		"start_url", startURL,
		"pages_crawled", len(merged),
	)

	return score.Aggregate(merged), nil
}

// crawlPage fetches, parses, and checks one secondary page.
// It returns nil on any failure; the page is simply omitted.
func (c *Crawler) crawlPage(ctx context.Context, pageURL string) *model.PageResult {
	rawHTML, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		c.logger.Warn("skipping page: fetch failed", "url", pageURL, "error", err)
		return nil
	}

	page, err := model.ParsePage(rawHTML, pageURL)
	if err != nil {
		c.logger.Warn("skipping page: parse failed", "url", pageURL, "error", err)
		return nil
	}

	return &model.PageResult{URL: pageURL, Checks: c.runChecks(page)}
}

// validateStartURL checks that the start URL is an absolute http(s) URL.
func validateStartURL(startURL string) error {
	u, err := url.Parse(startURL)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidStartURL, startURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidStartURL, startURL)
	}
	return nil
}

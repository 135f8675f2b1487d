package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/geoready/internal/cache"
	"github.com/nao1215/geoready/internal/model"
)

// ErrNoReport is returned by steps that need a report before one has
// been produced.
var ErrNoReport = errors.New("run has no report yet")

// SiteAnalyzer produces an aggregate report for a start URL.
// The crawler satisfies this; tests substitute a stub.
type SiteAnalyzer interface {
	Crawl(ctx context.Context, startURL string) (*model.AggregateReport, error)
}

// AnalyzeStep crawls the site and stores the aggregate report on the run.
type AnalyzeStep struct {
	analyzer SiteAnalyzer
}

// NewAnalyzeStep creates the analysis step.
func NewAnalyzeStep(analyzer SiteAnalyzer) *AnalyzeStep {
	return &AnalyzeStep{analyzer: analyzer}
}

// Name returns the step's name for logging purposes.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do crawls the run's start URL and records the report.
func (s *AnalyzeStep) Do(ctx context.Context, run *Run) error {
	report, err := s.analyzer.Crawl(ctx, run.StartURL)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", run.StartURL, err)
	}

	run.Report = report
	return nil
}

// CacheStep stores the run's report in the report cache so a later send
// command can reference it by token.
type CacheStep struct {
	store *cache.Store
}

// NewCacheStep creates the caching step.
func NewCacheStep(store *cache.Store) *CacheStep {
	return &CacheStep{store: store}
}

// Name returns the step's name for logging purposes.
func (s *CacheStep) Name() string {
	return "cache"
}

// Do caches the report and records its handle on the run.
func (s *CacheStep) Do(_ context.Context, run *Run) error {
	if run.Report == nil {
		return ErrNoReport
	}

	run.Handle = s.store.Put(run.StartURL, run.Report)
	return nil
}

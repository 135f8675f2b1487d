// Package score reduces per-page check results into a single
// aggregated report.
//
// Aggregation is pure and commutative over pages: the same set of
// PageResults produces bit-identical output regardless of the order
// the crawler's concurrent fetches completed in. The only ordering
// that matters is within a page's check list, which the checker
// already fixes.
package score

import (
	"math"

	"github.com/nao1215/geoready/internal/model"
)

// Aggregate reduces the per-page check results into an AggregateReport.
//
// For every check name, total equals the number of pages crawled and
// passed plus recorded failures equals total. The average score is the
// rounded percentage of passes across all checks on all pages, 0 when
// nothing was checked: an unanalyzable site is reported as an error
// upstream, never as a zero score, so the zero here only ever describes
// an analyzed site that failed everything.
func Aggregate(results []model.PageResult) *model.AggregateReport {
	detailed := make(map[model.CheckName]model.DetailedCheck, model.CheckCount)
	stats := make(map[model.CheckName]model.CheckStat, model.CheckCount)

	totalPassed := 0
	totalChecks := 0

	for _, page := range results {
		for _, check := range page.Checks {
			d := detailed[check.Name]
			d.Total++
			if check.Passed {
				d.Passed++
				totalPassed++
			} else {
				d.Failures = append(d.Failures, model.Failure{
					URL:     page.URL,
					Details: check.Details,
				})
			}
			detailed[check.Name] = d

			totalChecks++
		}
	}

	for name, d := range detailed {
		if d.Failures == nil {
			d.Failures = []model.Failure{}
			detailed[name] = d
		}
		stats[name] = model.CheckStat{Passed: d.Passed, Total: d.Total}
	}

	avg := 0
	if totalChecks > 0 {
		avg = int(math.Round(100 * float64(totalPassed) / float64(totalChecks)))
	}

	return &model.AggregateReport{
		Summary: model.Summary{
			AverageScore: avg,
			CheckStats:   stats,
		},
		Detailed:     detailed,
		PagesCrawled: len(results),
	}
}

package report

import (
	"io"
	"strconv"

	"github.com/nao1215/geoready/internal/model"
	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation, sharing, and the HTML-ish
// body of report emails.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titleCaser title-cases category names for section headers.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AggregateReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeScoreAlert(md, report)
	w.writeCheckTables(md, report)
	w.writeFailures(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and crawl summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AggregateReport) {
	md.H1("GEO Readiness Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Readiness Score", strconv.Itoa(report.Summary.AverageScore) + " / 100"},
			{"Pages Analyzed", strconv.Itoa(report.PagesCrawled)},
		},
	})
	md.PlainText("")
}

// writeScoreAlert writes an alert matched to the score band.
func (w *MarkdownWriter) writeScoreAlert(md *markdown.Markdown, report *model.AggregateReport) {
	score := report.Summary.AverageScore
	switch {
	case report.PagesCrawled == 0:
		md.Caution("No pages could be analyzed.")
	case score >= 80:
		md.Tipf("Strong generative engine readiness (%d/100). Keep it up.", score)
	case score >= 50:
		md.Importantf("Moderate readiness (%d/100). The failing checks below are worth addressing.", score)
	default:
		md.Warningf("Low readiness (%d/100). AI answer engines are likely to overlook this site.", score)
	}
	md.PlainText("")
}

// writeCheckTables writes one pass/total table per check category.
func (w *MarkdownWriter) writeCheckTables(md *markdown.Markdown, report *model.AggregateReport) {
	md.H2("Checks")
	md.PlainText("")

	order, groups := checksByCategory()
	for _, category := range order {
		md.H3(w.titleCaser.String(category))
		md.PlainText("")

		rows := make([][]string, 0, len(groups[category]))
		for _, name := range groups[category] {
			stat := report.Summary.CheckStats[name]
			rows = append(rows, []string{
				name.String(),
				strconv.Itoa(stat.Passed) + " / " + strconv.Itoa(stat.Total),
				statusText(stat),
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Check", "Pages Passing", "Status"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// statusText summarizes a pass/total tally for the table's status column.
func statusText(stat model.CheckStat) string {
	switch {
	case stat.Total == 0:
		return "-"
	case stat.Passed == stat.Total:
		return "✅ Pass"
	case stat.Passed == 0:
		return "❌ Fail"
	default:
		return "⚠️ Partial"
	}
}

// writeFailures writes the per-check failure listings. Checks that
// passed everywhere are omitted.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.AggregateReport) {
	var failing []model.CheckName
	for _, name := range model.AllCheckNames() {
		if d, ok := report.Detailed[name]; ok && len(d.Failures) > 0 {
			failing = append(failing, name)
		}
	}
	if len(failing) == 0 {
		return
	}

	md.H2("Failure Details")
	md.PlainText("")

	for _, name := range failing {
		md.H3(name.String())
		md.PlainText("")

		detail := report.Detailed[name]
		rows := make([][]string, 0, len(detail.Failures))
		for _, f := range detail.Failures {
			rows = append(rows, []string{"`" + f.URL + "`", f.Details})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Page", "Details"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

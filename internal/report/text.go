package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/geoready/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// showFailures enables the per-check failure listing.
	showFailures bool

	// titleCaser title-cases category names for section headers.
	titleCaser cases.Caser
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithFailureDetails enables the per-check failure listing.
// Without it the writer prints only the score and per-check tallies.
func WithFailureDetails() TextWriterOption {
	return func(w *TextWriter) {
		w.showFailures = true
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *TextWriter) Write(report *model.AggregateReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeChecks(&sb, report)
	if w.showFailures {
		w.writeFailures(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the score banner.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.AggregateReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      GEO READINESS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Readiness Score: %d / 100\n", report.Summary.AverageScore))
	sb.WriteString(fmt.Sprintf("Pages Analyzed:  %d\n", report.PagesCrawled))
	sb.WriteString("\n")
}

// writeChecks writes the per-check tallies grouped by category.
func (w *TextWriter) writeChecks(sb *strings.Builder, report *model.AggregateReport) {
	order, groups := checksByCategory()
	for _, category := range order {
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(w.titleCaser.String(category)))
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")

		for _, name := range groups[category] {
			stat := report.Summary.CheckStats[name]
			marker := "+"
			if stat.Passed < stat.Total {
				marker = "-"
			}
			sb.WriteString(fmt.Sprintf("  [%s] %-28s %d/%d pages\n", marker, name.String(), stat.Passed, stat.Total))
		}
		sb.WriteString("\n")
	}
}

// writeFailures writes every recorded failure with its page and reason.
func (w *TextWriter) writeFailures(sb *strings.Builder, report *model.AggregateReport) {
	var any bool
	for _, name := range model.AllCheckNames() {
		detail, ok := report.Detailed[name]
		if !ok || len(detail.Failures) == 0 {
			continue
		}
		if !any {
			sb.WriteString(strings.Repeat("-", 70))
			sb.WriteString("\n")
			sb.WriteString("FAILURE DETAILS\n")
			sb.WriteString(strings.Repeat("-", 70))
			sb.WriteString("\n\n")
			any = true
		}

		sb.WriteString(fmt.Sprintf("%s:\n", name.String()))
		for _, f := range detail.Failures {
			sb.WriteString(fmt.Sprintf("  * %s\n", f.URL))
			sb.WriteString(fmt.Sprintf("    %s\n", f.Details))
		}
		sb.WriteString("\n")
	}
}

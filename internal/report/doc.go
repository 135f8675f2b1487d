// Package report renders aggregate analysis reports in multiple output
// formats.
//
// Three writers share one Writer interface: TextWriter for terminal
// display, JSONWriter for tool integration, and MarkdownWriter for
// sharing and email bodies. All writers are read-only over the report;
// rendering the same report twice produces identical output.
package report

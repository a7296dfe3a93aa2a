// Package report writes comparison reports in several formats.
//
// Supported formats:
//   - Text: the canonical sectioned report, stable for identical input
//   - JSON: machine-readable output for tool integration
//   - Markdown: documentation-friendly output with tables and a chart
//   - Table: a colored per-file summary for terminals
//
// All writers take an *model.AggregateReport and never modify it.
package report

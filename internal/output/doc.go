// Package output formats lint reports for display or machine consumption.
//
// Three formats are supported:
//   - text: "gitfluff: <level>: <message>" lines, optionally colored (default)
//   - json: full structured JSON report
//   - markdown: summary table and collapsible per-message details for CI comments
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*Report].
package output

// Package report writes run reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text summary for terminals and files
//   - MarkdownWriter: Markdown document for sharing findings
//   - JSONWriter: structured JSON for tool integration
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter.
package report

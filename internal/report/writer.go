package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/protravel/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.RunReport) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.RunReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// severityOrder lists severities from most to least severe.
var severityOrder = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityInfo,
}

// kindTitle turns a notice kind such as "shadow_hashes" into "Shadow Hashes".
// A cases.Caser is stateful, so one is built per call.
func kindTitle(kind string) string {
	if kind == "" {
		return "Notice"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(kind, "_", " "))
}

// statusText describes how the run ended.
func statusText(report *model.RunReport) string {
	switch report.State {
	case model.StateDone:
		return "Complete"
	case model.StateInterrupted:
		return "Interrupted (resumable)"
	case model.StateAborted:
		if report.Error != "" {
			return "Aborted - " + report.Error
		}
		return "Aborted"
	default:
		return "Running"
	}
}

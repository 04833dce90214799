package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/protravel/internal/model"
)

// SimpleWriter outputs human-readable text reports.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to list are shown.
	showEmpty bool

	// verbose adds notice details to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables notice details in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeStored(&sb, report)
	w.writeNotices(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         PROTRAVEL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Target:     %s\n", report.Target)
	fmt.Fprintf(sb, "Started:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	if d := report.Duration(); d > 0 {
		fmt.Fprintf(sb, "Duration:   %s\n", d.Round(time.Millisecond))
	}
	fmt.Fprintf(sb, "Status:     %s\n", statusText(report))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.RunReport) {
	w.writeSection(sb, "SUMMARY")

	fmt.Fprintf(sb, "  Attempted:  %d\n", report.Attempted())
	fmt.Fprintf(sb, "  Stored:     %d\n", report.Succeeded)
	fmt.Fprintf(sb, "  Empty:      %d\n", report.Empty)
	fmt.Fprintf(sb, "  Failed:     %d\n", report.Failed)
	fmt.Fprintf(sb, "  Discovered: %d\n", report.Discovered)
	fmt.Fprintf(sb, "  Pending:    %d\n", report.PendingAtExit)
	fmt.Fprintf(sb, "  Done:       %d\n", report.DoneAtExit)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeStored(sb *strings.Builder, report *model.RunReport) {
	if len(report.Stored) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "STORED FILES")
	if len(report.Stored) == 0 {
		sb.WriteString("  No files stored\n")
	}
	for _, p := range report.SortedStored() {
		fmt.Fprintf(sb, "  [+] %s\n", p)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeNotices(sb *strings.Builder, report *model.RunReport) {
	if len(report.Notices) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "NOTICES")

	for _, severity := range severityOrder {
		notices := report.NoticesBySeverity(severity)
		if len(notices) == 0 && !w.showEmpty {
			continue
		}

		fmt.Fprintf(sb, "[%s] %s\n", severityIndicator(severity), severity)
		if len(notices) == 0 {
			sb.WriteString("  No notices\n\n")
			continue
		}
		for _, n := range notices {
			fmt.Fprintf(sb, "  * %s: %s\n", kindTitle(n.Kind), n.Message)
			fmt.Fprintf(sb, "    Path: %s\n", n.Path)
			if w.verbose {
				for _, d := range n.Details {
					fmt.Fprintf(sb, "      %s\n", d)
				}
			}
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// severityIndicator returns a visual indicator for the severity level.
func severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by protravel\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

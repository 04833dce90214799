package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/protravel/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeStored(md, report)
	w.writeNotices(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Protravel Report")
	md.PlainText("")

	rows := [][]string{
		{"Target", "`" + report.Target + "`"},
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if d := report.Duration(); d > 0 {
		rows = append(rows, []string{"Duration", d.Round(time.Millisecond).String()})
	}
	rows = append(rows, []string{"Status", statusEmoji(report) + " " + statusText(report)})

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func statusEmoji(report *model.RunReport) string {
	switch report.State {
	case model.StateDone:
		return "✅"
	case model.StateInterrupted:
		return "⚠️"
	case model.StateAborted:
		return "❌"
	default:
		return "⏳"
	}
}

// writeSummary writes the outcome counts and a chart of them.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"✓ Stored", strconv.Itoa(report.Succeeded)},
			{"0 Empty", strconv.Itoa(report.Empty)},
			{"❌ Failed", strconv.Itoa(report.Failed)},
			{"**Attempted**", "**" + strconv.Itoa(report.Attempted()) + "**"},
			{"Discovered", strconv.Itoa(report.Discovered)},
			{"Pending at exit", strconv.Itoa(report.PendingAtExit)},
			{"Done at exit", strconv.Itoa(report.DoneAtExit)},
		},
	})
	md.PlainText("")

	if report.Attempted() > 0 {
		w.writePieChart(md, report)
	}

	if report.State == model.StateInterrupted {
		md.Note("The run was interrupted. Re-running with the same output directory resumes it.")
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Fetch Outcomes"),
		piechart.WithShowData(true),
	)

	if report.Succeeded > 0 {
		chart.LabelAndIntValue("Stored", uint64(report.Succeeded))
	}
	if report.Empty > 0 {
		chart.LabelAndIntValue("Empty", uint64(report.Empty))
	}
	if report.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(report.Failed))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeStored(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Stored Files")
	md.PlainText("")

	if len(report.Stored) == 0 {
		md.PlainText("No files were stored.")
		md.PlainText("")
		return
	}

	paths := report.SortedStored()
	items := make([]string, len(paths))
	for i, p := range paths {
		items[i] = "`" + p + "`"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeNotices writes notices grouped by severity, most severe first.
func (w *MarkdownWriter) writeNotices(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Notices")
	md.PlainText("")

	if len(report.Notices) == 0 {
		md.Tip("No notices were raised.")
		md.PlainText("")
		return
	}

	critical := len(report.NoticesBySeverity(model.SeverityCritical))
	high := len(report.NoticesBySeverity(model.SeverityHigh))
	switch {
	case critical > 0:
		md.Cautionf("%d critical notice(s): secret material was exfiltrated.", critical)
	case high > 0:
		md.Warningf("%d high severity notice(s) should be reviewed.", high)
	default:
		md.Note("Only informational notices were raised.")
	}
	md.PlainText("")

	for _, severity := range severityOrder {
		notices := report.NoticesBySeverity(severity)
		if len(notices) == 0 {
			continue
		}

		md.PlainText("### " + severityHeader(severity))
		md.PlainText("")

		rows := make([][]string, len(notices))
		for i, n := range notices {
			rows[i] = []string{kindTitle(n.Kind), "`" + n.Path + "`", n.Message}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Kind", "Path", "Message"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, n := range notices {
			if len(n.Details) > 0 {
				md.Details(kindTitle(n.Kind)+" ("+n.Path+")", strings.Join(n.Details, "\n"))
			}
		}
		md.PlainText("")
	}
}

func severityHeader(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "🔴 Critical"
	case model.SeverityHigh:
		return "🟠 High"
	case model.SeverityMedium:
		return "🟡 Medium"
	case model.SeverityLow:
		return "🔵 Low"
	default:
		return "⚪ Info"
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by protravel*")
}

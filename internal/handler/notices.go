package handler

import (
	"bytes"
	"strings"

	"github.com/nao1215/protravel/internal/model"
)

// shadowMarker is how a shadow file starts when the superuser entry is first.
var shadowMarker = []byte("root")

// Shadow raises a notice when a shadow file looks readable.
func Shadow(p string, content []byte) Result {
	if !bytes.HasPrefix(content, shadowMarker) {
		return Result{}
	}
	return Result{Notices: []model.Notice{{
		Source:   model.SourceHandler,
		Path:     p,
		Kind:     "shadow_hashes",
		Severity: model.SeverityHigh,
		Message:  "Shadow file potentially contains password hashes",
	}}}
}

// Version reports the first line of a kernel version banner.
func Version(p string, content []byte) Result {
	line, _, _ := bytes.Cut(content, []byte("\n"))
	text := printable(line)
	if text == "" {
		return Result{}
	}
	return Result{Notices: []model.Notice{{
		Source:   model.SourceHandler,
		Path:     p,
		Kind:     "kernel_version",
		Severity: model.SeverityInfo,
		Message:  text,
	}}}
}

// Environ lists the variables of a process environment block.
func Environ(p string, content []byte) Result {
	var vars []string
	for _, entry := range bytes.Split(content, []byte{0}) {
		if v := printable(entry); v != "" {
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return Result{}
	}
	return Result{Notices: []model.Notice{{
		Source:   model.SourceHandler,
		Path:     p,
		Kind:     "environment",
		Severity: model.SeverityMedium,
		Message:  "Environment variables:",
		Details:  vars,
	}}}
}

// printable trims b and replaces bytes outside printable ASCII with '?'
// so that terminal output cannot be corrupted by control sequences.
func printable(b []byte) string {
	var sb strings.Builder
	for _, c := range bytes.TrimSpace(b) {
		if c < 0x20 || c > 0x7e {
			sb.WriteByte('?')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

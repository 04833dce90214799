package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nao1215/protravel/internal/crawler"
	"github.com/nao1215/protravel/internal/model"
)

// console prints one status line per attempted path and every notice.
type console struct {
	out io.Writer

	// tty enables the transient progress line and colors.
	tty bool

	success *color.Color
	empty   *color.Color
	failure *color.Color
	notice  *color.Color
}

var _ crawler.Observer = (*console)(nil)

// newConsole creates a console writing to out.
func newConsole(out io.Writer, tty bool) *console {
	c := &console{
		out:     out,
		tty:     tty,
		success: color.New(color.FgGreen),
		empty:   color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		notice:  color.New(color.FgCyan, color.Bold),
	}
	if !tty {
		for _, col := range []*color.Color{c.success, c.empty, c.failure, c.notice} {
			col.DisableColor()
		}
	}
	return c
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Attempt shows the in-flight path. The result line overwrites it.
func (c *console) Attempt(p string) {
	if c.tty {
		fmt.Fprintf(c.out, "  %s\r", p)
	}
}

// Result prints the outcome marker and path.
func (c *console) Result(_ context.Context, ev crawler.Event) {
	fmt.Fprintf(c.out, "%s %s\n", c.colorFor(ev.Outcome).Sprint(ev.Outcome.Marker()), ev.Path)
}

// Notice prints the message followed by indented details.
func (c *console) Notice(_ context.Context, n model.Notice) {
	fmt.Fprintf(c.out, "%s %s\n", c.notice.Sprint("*"), n.Message)
	for _, d := range n.Details {
		fmt.Fprintf(c.out, "      %s\n", d)
	}
}

func (c *console) colorFor(o model.Outcome) *color.Color {
	switch o {
	case model.OutcomeSuccess:
		return c.success
	case model.OutcomeEmpty:
		return c.empty
	default:
		return c.failure
	}
}

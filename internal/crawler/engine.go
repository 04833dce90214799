package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/protravel/internal/frontier"
	"github.com/nao1215/protravel/internal/handler"
	"github.com/nao1215/protravel/internal/model"
	"github.com/nao1215/protravel/internal/scan"
	"github.com/nao1215/protravel/internal/sink"
)

// Fetcher retrieves the contents of a remote filesystem path.
// An empty body with a nil error is a legitimate empty file.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Sink stores fetched contents locally. An error for which
// sink.IsUnstorable reports true fails only that path; any other error
// aborts the run.
type Sink interface {
	Store(path string, content []byte) error
}

// Saver persists the frontier.
type Saver interface {
	Save(f *frontier.Frontier) error
}

// Analyzer raises notices about fetched contents. It never adds paths.
type Analyzer interface {
	Analyze(path string, content []byte) []model.Notice
}

// Engine runs one crawl over a frontier.
type Engine struct {
	// target identifies the run in reports and logs.
	target string

	// frontier is owned by the engine for the run.
	frontier *frontier.Frontier

	fetcher Fetcher
	sink    Sink
	saver   Saver

	// scanner and registry derive new paths from fetched content.
	scanner  *scan.Scanner
	registry *handler.Registry

	// analyzer is optional.
	analyzer Analyzer

	observer Observer
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithScanner replaces the default content scanner.
func WithScanner(s *scan.Scanner) Option {
	return func(e *Engine) {
		if s != nil {
			e.scanner = s
		}
	}
}

// WithRegistry replaces the default handler table.
func WithRegistry(r *handler.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithAnalyzer adds an analyzer run on every non-empty fetched file.
func WithAnalyzer(a Analyzer) Option {
	return func(e *Engine) {
		e.analyzer = a
	}
}

// WithObserver sets the progress observer. Use MultiObserver for several.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine creates an Engine. saver may be nil when the frontier should
// not be persisted.
func NewEngine(target string, f *frontier.Frontier, fetcher Fetcher, sink Sink, saver Saver, opts ...Option) *Engine {
	e := &Engine{
		target:   target,
		frontier: f,
		fetcher:  fetcher,
		sink:     sink,
		saver:    saver,
		scanner:  scan.NewScanner(),
		registry: handler.Default(),
		observer: nopObserver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes the frontier until it is empty, the context is cancelled,
// or a local error occurs. The returned report is never nil.
//
// The frontier is saved exactly once before Run returns, whatever the
// outcome; a save error is joined to the returned error.
func (e *Engine) Run(ctx context.Context) (report *model.RunReport, err error) {
	report = model.NewRunReport(e.target)
	f := e.frontier

	e.logger.Debug("crawl started", "target", e.target, "pending", f.Len(), "done", f.DoneLen())

	defer func() {
		report.FinishedAt = time.Now()
		if e.saver != nil {
			if serr := e.saver.Save(f); serr != nil {
				err = errors.Join(err, fmt.Errorf("%w: %w", ErrSaveFrontier, serr))
			}
		}
		report.PendingAtExit = f.Len()
		report.DoneAtExit = f.DoneLen()
		if err != nil {
			report.Error = err.Error()
		}
		e.logger.Debug("crawl finished",
			"state", report.State.String(),
			"pending", report.PendingAtExit,
			"done", report.DoneAtExit,
		)
	}()

	for {
		if cerr := ctx.Err(); cerr != nil {
			report.State = model.StateInterrupted
			return report, cerr
		}

		p, ok := f.Next()
		if !ok {
			report.State = model.StateDone
			return report, nil
		}

		if perr := model.CheckPath(p); perr != nil {
			f.Drop(p)
			e.logger.Error("dropped malformed path from frontier", "path", p, "error", perr)
			report.State = model.StateAborted
			return report, fmt.Errorf("%w: %w", ErrMalformedPath, perr)
		}

		if serr := e.step(ctx, p, report); serr != nil {
			if ctx.Err() != nil {
				report.State = model.StateInterrupted
				return report, ctx.Err()
			}
			report.State = model.StateAborted
			return report, serr
		}
	}
}

// step attempts one path. It returns an error only when the run must stop;
// the path is then left pending. A path that the sink can never hold is
// concluded as a failure.
func (e *Engine) step(ctx context.Context, p string, report *model.RunReport) error {
	e.observer.Attempt(p)

	content, ferr := e.fetcher.Fetch(ctx, p)
	if ferr != nil && ctx.Err() != nil {
		return ferr
	}

	ev := Event{Path: p}
	var discovered []string

	switch {
	case ferr != nil:
		e.logger.Debug("fetch failed", "path", p, "error", ferr)
		ev.Outcome = model.OutcomeFailure
		ev.Err = ferr
		e.observer.Result(ctx, ev)
	case len(content) == 0:
		ev.Outcome = model.OutcomeEmpty
		e.observer.Result(ctx, ev)
	default:
		if err := e.sink.Store(p, content); err != nil {
			if !sink.IsUnstorable(err) {
				return fmt.Errorf("sink: %w", err)
			}
			e.logger.Warn("cannot store path", "path", p, "error", err)
			ev.Outcome = model.OutcomeFailure
			ev.Err = err
			e.observer.Result(ctx, ev)
			break
		}
		ev.Outcome = model.OutcomeSuccess
		ev.Content = content
		e.observer.Result(ctx, ev)
		discovered = e.inspect(ctx, p, content, report)
	}

	report.Record(p, ev.Outcome)
	if len(discovered) > 0 {
		added := e.frontier.Add(discovered...)
		report.Discovered += added
		e.logger.Debug("paths discovered", "path", p, "found", len(discovered), "new", added)
	}
	e.frontier.Complete(p)
	return nil
}

// inspect runs the scanner, the handler for p and the analyzer over
// content. It records notices and returns the accepted candidate paths.
func (e *Engine) inspect(ctx context.Context, p string, content []byte, report *model.RunReport) []string {
	candidates := e.scanner.Scan(p, content)

	res := e.registry.Dispatch(p, content)
	candidates = append(candidates, res.Paths...)

	notices := res.Notices
	if e.analyzer != nil {
		notices = append(notices, e.analyzer.Analyze(p, content)...)
	}
	for _, n := range notices {
		report.Notices = append(report.Notices, n)
		e.observer.Notice(ctx, n)
	}

	return scan.FilterPaths(candidates)
}

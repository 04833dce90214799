package main

import (
	"context"
	"log/slog"

	"github.com/nao1215/protravel/internal/crawler"
	"github.com/nao1215/protravel/internal/database"
	"github.com/nao1215/protravel/internal/model"
)

// recorder writes every attempt and notice of a crawl to the loot database.
// Database errors are logged and never stop the crawl.
type recorder struct {
	db     *database.LootDB
	target string
	logger *slog.Logger
}

var _ crawler.Observer = (*recorder)(nil)

func newRecorder(db *database.LootDB, target string, logger *slog.Logger) *recorder {
	return &recorder{db: db, target: target, logger: logger}
}

// Attempt implements crawler.Observer.
func (r *recorder) Attempt(string) {}

// Result stores the attempt. The write survives cancellation of the run.
func (r *recorder) Result(ctx context.Context, ev crawler.Event) {
	err := r.db.RecordFetch(context.WithoutCancel(ctx), r.target, ev.Path, ev.Outcome, ev.Content, ev.Err)
	if err != nil {
		r.logger.Warn("failed to record fetch", "path", ev.Path, "error", err)
	}
}

// Notice stores the notice.
func (r *recorder) Notice(ctx context.Context, n model.Notice) {
	if err := r.db.RecordNotice(context.WithoutCancel(ctx), r.target, n); err != nil {
		r.logger.Warn("failed to record notice", "path", n.Path, "kind", n.Kind, "error", err)
	}
}

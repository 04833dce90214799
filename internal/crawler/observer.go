package crawler

import (
	"context"

	"github.com/nao1215/protravel/internal/model"
)

// Event describes one concluded fetch attempt.
type Event struct {
	// Path is the attempted filesystem path.
	Path string

	// Outcome is success, empty or failure.
	Outcome model.Outcome

	// Content is the fetched body. Nil unless Outcome is success.
	Content []byte

	// Err is the fetch error. Nil unless Outcome is failure.
	Err error
}

// Observer receives crawl progress as it happens.
// Observers must not block; they run on the engine's goroutine.
type Observer interface {
	// Attempt is called before a path is fetched.
	Attempt(path string)

	// Result is called once per concluded attempt.
	Result(ctx context.Context, ev Event)

	// Notice is called for every notice raised while inspecting content.
	Notice(ctx context.Context, n model.Notice)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

// Attempt implements Observer.
func (m MultiObserver) Attempt(path string) {
	for _, o := range m {
		o.Attempt(path)
	}
}

// Result implements Observer.
func (m MultiObserver) Result(ctx context.Context, ev Event) {
	for _, o := range m {
		o.Result(ctx, ev)
	}
}

// Notice implements Observer.
func (m MultiObserver) Notice(ctx context.Context, n model.Notice) {
	for _, o := range m {
		o.Notice(ctx, n)
	}
}

// nopObserver discards every event.
type nopObserver struct{}

func (nopObserver) Attempt(string) {}
func (nopObserver) Result(context.Context, Event) {}
func (nopObserver) Notice(context.Context, model.Notice) {}

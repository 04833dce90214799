package frontier

import "sort"

// Frontier is the pending/done path state of one crawl.
// It is not safe for concurrent use; the crawl engine owns it for the run.
//
// Invariant: a path is never in pending and done at the same time.
type Frontier struct {
	// queue holds pending paths in arrival order. Entries that were
	// completed out of order are skipped lazily by Next.
	queue []string

	// pending is the membership set for queue.
	pending map[string]struct{}

	// done holds every path whose fetch attempt concluded.
	done map[string]struct{}
}

// New creates an empty Frontier.
func New() *Frontier {
	return &Frontier{
		queue:   make([]string, 0),
		pending: make(map[string]struct{}),
		done:    make(map[string]struct{}),
	}
}

// Add enqueues paths that are neither pending nor done.
// It returns how many paths were actually added.
func (f *Frontier) Add(paths ...string) int {
	added := 0
	for _, p := range paths {
		if _, ok := f.pending[p]; ok {
			continue
		}
		if _, ok := f.done[p]; ok {
			continue
		}
		f.pending[p] = struct{}{}
		f.queue = append(f.queue, p)
		added++
	}
	return added
}

// MarkDone records paths as completed without them ever being pending,
// removing them from pending if present. Used when loading a snapshot.
func (f *Frontier) MarkDone(paths ...string) {
	for _, p := range paths {
		delete(f.pending, p)
		f.done[p] = struct{}{}
	}
}

// Next returns the oldest pending path without removing it.
// The path stays pending until Complete is called, so an interrupted fetch
// leaves it queued for the next run.
func (f *Frontier) Next() (string, bool) {
	for len(f.queue) > 0 {
		head := f.queue[0]
		if _, ok := f.pending[head]; ok {
			return head, true
		}
		f.queue[0] = ""
		f.queue = f.queue[1:]
	}
	return "", false
}

// Complete moves path from pending to done. Completing a path that is
// already done is a no-op, so each path is moved at most once.
func (f *Frontier) Complete(path string) {
	if _, ok := f.done[path]; ok {
		return
	}
	delete(f.pending, path)
	f.done[path] = struct{}{}
	if len(f.queue) > 0 && f.queue[0] == path {
		f.queue[0] = ""
		f.queue = f.queue[1:]
	}
}

// Drop removes path from pending without recording it as done.
// It reports whether path was pending.
func (f *Frontier) Drop(path string) bool {
	if _, ok := f.pending[path]; !ok {
		return false
	}
	delete(f.pending, path)
	if len(f.queue) > 0 && f.queue[0] == path {
		f.queue[0] = ""
		f.queue = f.queue[1:]
	}
	return true
}

// Len returns the number of pending paths.
func (f *Frontier) Len() int {
	return len(f.pending)
}

// DoneLen returns the number of completed paths.
func (f *Frontier) DoneLen() int {
	return len(f.done)
}

// IsPending reports whether path is waiting to be fetched.
func (f *Frontier) IsPending(path string) bool {
	_, ok := f.pending[path]
	return ok
}

// IsDone reports whether path has already been attempted.
func (f *Frontier) IsDone(path string) bool {
	_, ok := f.done[path]
	return ok
}

// Pending returns the pending paths in lexical order.
func (f *Frontier) Pending() []string {
	return sortedKeys(f.pending)
}

// Done returns the completed paths in lexical order.
func (f *Frontier) Done() []string {
	return sortedKeys(f.done)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

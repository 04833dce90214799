package model

import (
	"fmt"
	"sort"
	"time"
)

// RunState is the state of the crawl engine.
type RunState int

const (
	// StateRunning means the frontier still has pending paths.
	StateRunning RunState = iota

	// StateDone means the frontier drained normally.
	StateDone

	// StateAborted means an unrecoverable local error stopped the run,
	// e.g. a malformed seed path or a failing sink.
	StateAborted

	// StateInterrupted means the run context was cancelled.
	StateInterrupted
)

// String returns the lowercase name of the state.
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *RunState) UnmarshalText(text []byte) error {
	for _, st := range []RunState{StateRunning, StateDone, StateAborted, StateInterrupted} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown run state %q", text)
}

// RunReport summarizes one crawl run.
type RunReport struct {
	// Target is the base URL the paths were appended to.
	Target string `json:"target"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// State is the final engine state.
	State RunState `json:"state"`

	// Succeeded, Empty and Failed count attempts per outcome.
	Succeeded int `json:"succeeded"`
	Empty     int `json:"empty"`
	Failed    int `json:"failed"`

	// Discovered counts new paths merged into the frontier during the run.
	Discovered int `json:"discovered"`

	// Stored lists the paths whose content was written to the sink.
	Stored []string `json:"stored,omitempty"`

	// Notices holds every notice raised during the run, in order.
	Notices []Notice `json:"notices,omitempty"`

	// PendingAtExit and DoneAtExit are the frontier sizes when the run ended.
	PendingAtExit int `json:"pending_at_exit"`
	DoneAtExit    int `json:"done_at_exit"`

	// Error holds the message of the error that ended the run, if any.
	Error string `json:"error,omitempty"`
}

// NewRunReport creates a report for target starting now.
func NewRunReport(target string) *RunReport {
	return &RunReport{
		Target:    target,
		StartedAt: time.Now(),
		State:     StateRunning,
		Stored:    make([]string, 0),
		Notices:   make([]Notice, 0),
	}
}

// Record counts one attempt.
func (r *RunReport) Record(path string, outcome Outcome) {
	switch outcome {
	case OutcomeSuccess:
		r.Succeeded++
		r.Stored = append(r.Stored, path)
	case OutcomeEmpty:
		r.Empty++
	default:
		r.Failed++
	}
}

// Attempted returns the total number of concluded fetch attempts.
func (r *RunReport) Attempted() int {
	return r.Succeeded + r.Empty + r.Failed
}

// Duration returns how long the run took, or zero while it is running.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// NoticesBySeverity returns the notices of one severity level, in order.
func (r *RunReport) NoticesBySeverity(s Severity) []Notice {
	var out []Notice
	for _, n := range r.Notices {
		if n.Severity == s {
			out = append(out, n)
		}
	}
	return out
}

// SortedStored returns the stored paths in lexical order.
func (r *RunReport) SortedStored() []string {
	out := make([]string, len(r.Stored))
	copy(out, r.Stored)
	sort.Strings(out)
	return out
}

package model

// Outcome is the result of one fetch attempt.
// Every attempted path ends in exactly one outcome and is then marked done.
type Outcome int

const (
	// OutcomeSuccess means the target returned 200 with a non-empty body.
	OutcomeSuccess Outcome = iota

	// OutcomeEmpty means the target returned 200 with an empty body.
	OutcomeEmpty

	// OutcomeFailure means a non-200 status or a transport error.
	// Failed paths are never retried within a run.
	OutcomeFailure
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Marker returns the single-glyph status marker printed before a path.
func (o Outcome) Marker() string {
	switch o {
	case OutcomeSuccess:
		return "✓"
	case OutcomeEmpty:
		return "0"
	case OutcomeFailure:
		return "❌"
	default:
		return "?"
	}
}

// ParseOutcome converts the String() form back into an Outcome.
// Unknown names map to OutcomeFailure.
func ParseOutcome(s string) Outcome {
	switch s {
	case "success":
		return OutcomeSuccess
	case "empty":
		return OutcomeEmpty
	default:
		return OutcomeFailure
	}
}

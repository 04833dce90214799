package model

// Notice sources.
const (
	// SourceHandler marks notices raised by a well-known file handler.
	SourceHandler = "handler"

	// SourceLoot marks notices raised by the loot analyzer.
	SourceLoot = "loot"
)

// Notice is a human-readable advisory raised while inspecting fetched content.
// Notices never add paths to the frontier; they are printed immediately and
// collected into the run report.
type Notice struct {
	// Source is SourceHandler or SourceLoot.
	Source string `json:"source"`

	// Path is the filesystem path whose content raised the notice.
	Path string `json:"path"`

	// Kind is a short machine-friendly identifier, e.g. "shadow_hashes".
	Kind string `json:"kind"`

	// Severity ranks the notice for reports.
	Severity Severity `json:"severity"`

	// Message is the one-line text printed after the "* " marker.
	Message string `json:"message"`

	// Details are extra lines printed indented below the message.
	Details []string `json:"details,omitempty"`
}

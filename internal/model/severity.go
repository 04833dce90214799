package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents how interesting a notice is to the operator.
//
// Design decision: We use iota-based constants rather than string constants
// for cheap comparison and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo is purely informational (kernel version banners and the like).
	SeverityInfo Severity = iota

	// SeverityLow marks loot that helps further enumeration but is not a secret.
	SeverityLow

	// SeverityMedium marks loot that may contain secrets, such as environment variables.
	SeverityMedium

	// SeverityHigh marks loot that likely contains credentials or hashes.
	SeverityHigh

	// SeverityCritical marks directly usable secrets such as private keys.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts the String() form back into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return SeverityInfo, nil
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalJSON encodes the severity as its name so reports stay readable.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the name produced by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

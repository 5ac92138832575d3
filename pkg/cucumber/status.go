package cucumber

import "strings"

// Status is the outcome of a step. Scenario and higher levels only ever use
// StatusPassed and StatusFailed.
type Status int

const (
	StatusUndefined Status = iota
	StatusPassed
	StatusFailed
	StatusSkipped
)

// ParseStatus maps a status token to a Status. Matching ignores case and
// surrounding whitespace. Anything unrecognised, including "pending" and
// "ambiguous", is StatusUndefined.
func ParseStatus(token string) Status {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "passed":
		return StatusPassed
	case "failed":
		return StatusFailed
	case "skipped":
		return StatusSkipped
	default:
		return StatusUndefined
	}
}

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASSED"
	case StatusFailed:
		return "FAILED"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return "UNDEFINED"
	}
}

// MarshalText renders the canonical upper-case name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

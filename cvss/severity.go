package cvss

import (
	"encoding"
	"fmt"
	"strings"
)

// Severity is the qualitative rating of a score.
type Severity int

// These are the qualitative severity ratings, in ascending order.
const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = [...]string{"None", "Low", "Medium", "High", "Critical"}

var (
	_ encoding.TextMarshaler   = SeverityNone
	_ encoding.TextUnmarshaler = (*Severity)(nil)
)

// Classify maps a score to its qualitative rating.
//
// Scores of 9.0 and above are Critical, 7.0 and above High, 4.0 and above
// Medium, and anything above zero Low.
func Classify(score float64) Severity {
	switch {
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	case score > 0:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// String implements [fmt.Stringer].
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText implements [encoding.TextMarshaler].
func (s Severity) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(severityNames) {
		return nil, fmt.Errorf("cvss: invalid severity: %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
//
// Matching is case-insensitive.
func (s *Severity) UnmarshalText(b []byte) error {
	for i, n := range severityNames {
		if strings.EqualFold(n, string(b)) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("cvss: unknown severity: %q", string(b))
}

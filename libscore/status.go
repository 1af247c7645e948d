package libscore

import (
	"fmt"
	"strings"
)

// Status is the outcome of scoring a row.
type Status uint8

// Row outcomes.
const (
	StatusValid Status = iota
	StatusInvalid
	StatusError
)

var statusNames = [...]string{
	StatusValid:   "Valid",
	StatusInvalid: "Invalid",
	StatusError:   "Error",
}

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", s)
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("libscore: invalid status %d", s)
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for i, n := range statusNames {
		if strings.EqualFold(n, string(b)) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("libscore: unknown status %q", string(b))
}

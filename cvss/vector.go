package cvss

import (
	"encoding"
	"fmt"
	"strings"
)

// Vector is a parsed CVSS v3 metric set.
//
// A Vector is only constructed by [Parse] or [Vector.UnmarshalText] and is not
// modified afterwards. Metrics absent from the source string are reported as
// "X" (Not Defined) by [Vector.Get]; the Base metrics are always present.
type Vector struct {
	mv    [numMetrics]byte
	minor int8
}

var (
	_ encoding.TextMarshaler   = (*Vector)(nil)
	_ encoding.TextUnmarshaler = (*Vector)(nil)
	_ fmt.Stringer             = (*Vector)(nil)
)

// Parse parses the provided string as a v3.0 or v3.1 vector.
//
// The input is trimmed and upper-cased first. Metrics may appear in any order.
// An error wrapping [ErrMalformedVector] is returned when the string is empty,
// has the wrong prefix, contains a segment that is not "CODE:VALUE", names an
// unknown or repeated metric, omits a Base metric, or uses a value outside a
// metric's domain.
func Parse(s string) (v Vector, err error) {
	return v, v.UnmarshalText([]byte(s))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (v *Vector) UnmarshalText(text []byte) error {
	*v = Vector{minor: -1}
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	if s == "" {
		return fmt.Errorf("cvss: %w: empty vector", ErrMalformedVector)
	}
	ver, rest, _ := strings.Cut(s, "/")
	switch ver {
	case Prefix + "0":
		v.minor = 0
	case Prefix + "1":
		v.minor = 1
	default:
		return fmt.Errorf("cvss: %w: bad version: %q", ErrMalformedVector, ver)
	}
	if rest == "" {
		return fmt.Errorf("cvss: %w: no metrics", ErrMalformedVector)
	}
	for seg := range strings.SplitSeq(rest, "/") {
		code, val, ok := strings.Cut(seg, ":")
		if !ok || code == "" || len(val) != 1 {
			return fmt.Errorf("cvss: %w: bad metric: %q", ErrMalformedVector, seg)
		}
		m, ok := MetricFromCode(code)
		if !ok {
			return fmt.Errorf("cvss: %w: unknown metric: %q", ErrMalformedVector, code)
		}
		if v.mv[m] != 0 {
			return fmt.Errorf("cvss: %w: duplicate metric: %q", ErrMalformedVector, code)
		}
		if !m.Valid(val[0]) {
			return fmt.Errorf("cvss: %w: bad value for %v: %q", ErrMalformedVector, m, val)
		}
		v.mv[m] = val[0]
	}
	for _, m := range BaseMetrics() {
		if v.mv[m] == 0 {
			return fmt.Errorf("cvss: %w: missing metric: %q", ErrMalformedVector, m.String())
		}
	}
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
//
// Only metrics present in the parsed string are emitted, in canonical order.
func (v *Vector) MarshalText() ([]byte, error) {
	if v.minor < 0 || v.mv[AttackVector] == 0 {
		return nil, fmt.Errorf("cvss: %w: zero vector", ErrMalformedVector)
	}
	text := make([]byte, 0, 96)
	text = append(text, Prefix...)
	text = append(text, '0'+byte(v.minor))
	for m, b := range v.mv {
		if b == 0 {
			continue
		}
		text = append(text, '/')
		text = append(text, metricCodes[m]...)
		text = append(text, ':', b)
	}
	return text, nil
}

// String implements [fmt.Stringer].
//
// Calling this method on a zero Vector results in an invalid vector string.
func (v *Vector) String() string {
	t, err := v.MarshalText()
	if err != nil {
		return Prefix + "1/INVALID"
	}
	return string(t)
}

// Minor reports the minor version of the vector: 0 or 1.
func (v *Vector) Minor() int {
	return int(v.minor)
}

// Get reports the value for the metric, with "X" for absent metrics.
func (v *Vector) Get(m Metric) byte {
	b := v.mv[m]
	if b == 0 {
		b = 'X'
	}
	return b
}

// Has reports whether the metric was present in the parsed string.
func (v *Vector) Has(m Metric) bool {
	return v.mv[m] != 0
}

// Temporal reports whether any Temporal metric is defined.
func (v *Vector) Temporal() bool {
	return v.defined(ExploitMaturity, ConfidentialityRequirement)
}

// Environmental reports whether any Environmental metric is defined.
func (v *Vector) Environmental() bool {
	return v.defined(ConfidentialityRequirement, Metric(numMetrics))
}

// Defined reports if any metric in "[lo, hi)" has a value other than "X".
func (v *Vector) defined(lo, hi Metric) bool {
	for _, b := range v.mv[lo:hi] {
		if b != 0 && b != 'X' {
			return true
		}
	}
	return false
}

package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quay/vecscore"
	"github.com/quay/vecscore/cvss"
)

var (
	versionToken = regexp.MustCompile(`CVSS\s*(?:V|:)?\s*3\.([01])`)
	separators   = regexp.MustCompile(`[/|,;\s]+`)
	metricToken  = regexp.MustCompile(`^[A-Z]+:[A-Z]+$`)
)

// Value spellings tried before the qualitative labels in the cvss package.
// A synonym only applies when the metric has the resulting value, so
// "MEDIUM" is read as H even for the Security Requirements.
var valueSynonyms = map[string]byte{
	"NETWORK":   'N',
	"ADJACENT":  'A',
	"LOCAL":     'L',
	"PHYSICAL":  'P',
	"LOW":       'L',
	"HIGH":      'H',
	"MEDIUM":    'H',
	"NONE":      'N',
	"REQUIRED":  'R',
	"UNCHANGED": 'U',
	"CHANGED":   'C',
	"PARTIAL":   'L',
	"COMPLETE":  'H',
	"NO":        'N',
}

// Base metrics filled in when absent, unless in strict mode.
var backfill = [...]byte{
	cvss.AttackVector:       'N',
	cvss.AttackComplexity:   'L',
	cvss.PrivilegesRequired: 'N',
	cvss.UserInteraction:    'N',
	cvss.Scope:              'U',
	cvss.Confidentiality:    'N',
	cvss.Integrity:          'N',
	cvss.Availability:       'N',
}

// MinMetrics is the number of distinct recognized metrics needed before a
// string is considered to be a vector.
const minMetrics = 3

// Canonicalize turns loosely written vector text into a canonical vector
// string, using a lenient [Resolver].
func Canonicalize(s string) (string, error) {
	return defaultResolver().Canonicalize(s)
}

// Canonicalize turns loosely written vector text into a canonical vector
// string.
//
// A string that is already canonical is returned unchanged. Otherwise, the
// version token ("CVSS:3.1", "CVSSv3.0", "CVSS 3.1") is extracted, defaulting
// to v3.1, and every "CODE:VALUE" token is collected. Values may be spelled
// out ("AV:NETWORK"). Unknown metrics and values are dropped, and a repeated
// metric takes its last value. At least three recognized metrics are needed.
// Missing Base metrics are filled with their least severe values unless the
// Resolver is strict, in which case an error is returned.
//
// The output always satisfies [cvss.Parse], and metrics appear in canonical
// order.
func (r *Resolver) Canonicalize(s string) (string, error) {
	const op = `resolve: Canonicalize`
	fail := func(format string, args ...any) error {
		return &vecscore.Error{
			Op:      op,
			Kind:    vecscore.ErrInvalid,
			Message: fmt.Sprintf(format, args...),
			Inner:   cvss.ErrMalformedVector,
		}
	}
	s = normValue(s)
	if v, err := cvss.Parse(s); err == nil && v.String() == s {
		return s, nil
	}

	minor := byte('1')
	if m := versionToken.FindStringSubmatch(s); m != nil {
		minor = m[1][0]
	}
	s = versionToken.ReplaceAllLiteralString(s, " ")

	vals := make([]byte, len(cvss.Metrics()))
	found := 0
	for tok := range strings.SplitSeq(separators.ReplaceAllLiteralString(s, " "), " ") {
		if !metricToken.MatchString(tok) {
			continue
		}
		code, val, _ := strings.Cut(tok, ":")
		m, ok := cvss.MetricFromCode(code)
		if !ok {
			continue
		}
		b, ok := metricValue(m, val)
		if !ok {
			continue
		}
		if vals[m] == 0 {
			found++
		}
		vals[m] = b
	}
	if found < minMetrics {
		return "", fail("found %d metrics, need at least %d", found, minMetrics)
	}

	var missing []string
	for _, m := range cvss.BaseMetrics() {
		if vals[m] != 0 {
			continue
		}
		if r.strict {
			missing = append(missing, m.String())
			continue
		}
		vals[m] = backfill[m]
	}
	if len(missing) != 0 {
		return "", fail("missing metrics: %s", strings.Join(missing, ", "))
	}

	var b strings.Builder
	b.WriteString(cvss.Prefix)
	b.WriteByte(minor)
	for m, v := range vals {
		if v == 0 {
			continue
		}
		b.WriteByte('/')
		b.WriteString(cvss.Metric(m).String())
		b.WriteByte(':')
		b.WriteByte(v)
	}
	out := b.String()
	// Should be impossible: every value was checked against its domain.
	if _, err := cvss.Parse(out); err != nil {
		return "", &vecscore.Error{Op: op, Kind: vecscore.ErrInternal, Inner: err}
	}
	return out, nil
}

// MetricValue maps a written value for "m" to the metric's value letter.
func metricValue(m cvss.Metric, val string) (byte, bool) {
	if len(val) == 1 {
		return val[0], m.Valid(val[0])
	}
	if b, ok := valueSynonyms[val]; ok && m.Valid(b) {
		return b, true
	}
	return m.ValueFromLabel(val)
}

package cvss

import (
	"strings"
	"unicode"
)

// Labels for each metric value, parallel to the valid values.
var labels = [numMetrics][]string{
	{"Network", "Adjacent", "Local", "Physical"}, // AV
	{"Low", "High"},                              // AC
	{"None", "Low", "High"},                      // PR
	{"None", "Required"},                         // UI
	{"Unchanged", "Changed"},                     // S
	{"None", "Low", "High"},                      // C
	{"None", "Low", "High"},                      // I
	{"None", "Low", "High"},                      // A

	{notDefined, "Unproven", "Proof-of-Concept", "Functional", "High"},         // E
	{notDefined, "Official Fix", "Temporary Fix", "Workaround", "Unavailable"}, // RL
	{notDefined, "Unknown", "Reasonable", "Confirmed"},                         // RC

	{notDefined, "Low", "Medium", "High"}, // CR
	{notDefined, "Low", "Medium", "High"}, // IR
	{notDefined, "Low", "Medium", "High"}, // AR

	{notDefined, "Network", "Adjacent", "Local", "Physical"}, // MAV
	{notDefined, "Low", "High"},                              // MAC
	{notDefined, "None", "Low", "High"},                      // MPR
	{notDefined, "None", "Required"},                         // MUI
	{notDefined, "Unchanged", "Changed"},                     // MS
	{notDefined, "None", "Low", "High"},                      // MC
	{notDefined, "None", "Low", "High"},                      // MI
	{notDefined, "None", "Low", "High"},                      // MA
}

const notDefined = "Not Defined"

// Label returns the human-readable label for value "b" of metric "m", or the
// empty string if "b" is not in the metric's domain.
func (m Metric) Label(b byte) string {
	i := m.index(b)
	if i == -1 {
		return ""
	}
	return labels[m][i]
}

// Describe returns the human-readable label of every metric, keyed by the
// metric's long name (see [Metric.Name]). Absent metrics are "Not Defined".
func (v *Vector) Describe() map[string]string {
	out := make(map[string]string, numMetrics)
	for _, m := range Metrics() {
		l := m.Label(v.Get(m))
		if l == "" {
			l = notDefined
		}
		out[m.Name()] = l
	}
	return out
}

// ValueFromLabel returns the value of metric "m" whose label matches "label".
//
// Matching ignores case, spaces, hyphens, and underscores, so "proof of
// concept", "PROOF_OF_CONCEPT", and "Proof-of-Concept" are all "P" for
// [ExploitMaturity].
func (m Metric) ValueFromLabel(label string) (byte, bool) {
	if !m.defined() {
		return 0, false
	}
	want := squash(label)
	for i, l := range labels[m] {
		if squash(l) == want {
			return metricValid[m][i], true
		}
	}
	return 0, false
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

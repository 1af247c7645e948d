package cvss

import "strings"

// Metric is a CVSS v3 metric.
//
// The constants are declared in canonical order: Base, Temporal,
// Environmental requirements, then Modified Base.
type Metric int

// Metrics defined by CVSS v3.
const (
	AttackVector Metric = iota
	AttackComplexity
	PrivilegesRequired
	UserInteraction
	Scope
	Confidentiality
	Integrity
	Availability
	ExploitMaturity
	RemediationLevel
	ReportConfidence
	ConfidentialityRequirement
	IntegrityRequirement
	AvailabilityRequirement
	ModifiedAttackVector
	ModifiedAttackComplexity
	ModifiedPrivilegesRequired
	ModifiedUserInteraction
	ModifiedScope
	ModifiedConfidentiality
	ModifiedIntegrity
	ModifiedAvailability

	numMetrics int = iota
)

// Group is a class of metrics.
type Group int

// The metric groups, in canonical order.
const (
	GroupBase Group = iota
	GroupTemporal
	GroupRequirement
	GroupModified
)

// String implements [fmt.Stringer].
func (g Group) String() string {
	switch g {
	case GroupBase:
		return "base"
	case GroupTemporal:
		return "temporal"
	case GroupRequirement:
		return "requirement"
	case GroupModified:
		return "modified"
	}
	return "unknown"
}

var metricCodes = [numMetrics]string{
	"AV", "AC", "PR", "UI", "S", "C", "I", "A",
	"E", "RL", "RC",
	"CR", "IR", "AR",
	"MAV", "MAC", "MPR", "MUI", "MS", "MC", "MI", "MA",
}

var metricNames = [numMetrics]string{
	"attackVector",
	"attackComplexity",
	"privilegesRequired",
	"userInteraction",
	"scope",
	"confidentiality",
	"integrity",
	"availability",
	"exploitCodeMaturity",
	"remediationLevel",
	"reportConfidence",
	"confidentialityRequirement",
	"integrityRequirement",
	"availabilityRequirement",
	"modifiedAttackVector",
	"modifiedAttackComplexity",
	"modifiedPrivilegesRequired",
	"modifiedUserInteraction",
	"modifiedScope",
	"modifiedConfidentiality",
	"modifiedIntegrity",
	"modifiedAvailability",
}

// MetricValid holds the valid values for every metric. The order of each
// string is significant: it's the index into the weight and label tables.
var metricValid = [numMetrics]string{
	"NALP", // AV
	"LH",   // AC
	"NLH",  // PR
	"NR",   // UI
	"UC",   // S
	"NLH",  // C
	"NLH",  // I
	"NLH",  // A

	"XUPFH", // E
	"XOTWU", // RL
	"XURC",  // RC

	"XLMH", // CR
	"XLMH", // IR
	"XLMH", // AR

	"XNALP", // MAV
	"XLH",   // MAC
	"XNLH",  // MPR
	"XNR",   // MUI
	"XUC",   // MS
	"XNLH",  // MC
	"XNLH",  // MI
	"XNLH",  // MA
}

var codeLookup = func() map[string]Metric {
	m := make(map[string]Metric, numMetrics)
	for i, c := range metricCodes {
		m[c] = Metric(i)
	}
	return m
}()

// MetricFromCode returns the Metric for the abbreviated code, e.g. "AV".
//
// The lookup is exact; callers are expected to upper-case the code.
func MetricFromCode(code string) (Metric, bool) {
	m, ok := codeLookup[code]
	return m, ok
}

// Metrics returns every metric in canonical order.
func Metrics() []Metric {
	ms := make([]Metric, numMetrics)
	for i := range ms {
		ms[i] = Metric(i)
	}
	return ms
}

// BaseMetrics returns the eight required Base metrics in canonical order.
func BaseMetrics() []Metric {
	return Metrics()[:ExploitMaturity]
}

// String returns the abbreviated code for the metric.
func (m Metric) String() string {
	if !m.defined() {
		return "Metric(invalid)"
	}
	return metricCodes[m]
}

// Name returns the camel-cased long name for the metric, e.g.
// "attackVector".
func (m Metric) Name() string {
	if !m.defined() {
		return ""
	}
	return metricNames[m]
}

// Group reports which group the metric belongs to.
func (m Metric) Group() Group {
	switch {
	case m < ExploitMaturity:
		return GroupBase
	case m < ConfidentialityRequirement:
		return GroupTemporal
	case m < ModifiedAttackVector:
		return GroupRequirement
	default:
		return GroupModified
	}
}

// Modifies returns the Base metric a Modified metric overrides.
// For any other metric, the metric itself is returned.
func (m Metric) Modifies() Metric {
	if m.Group() != GroupModified {
		return m
	}
	return m - ModifiedAttackVector
}

// ValidValues returns the concatenation of valid values for the metric.
func (m Metric) ValidValues() string {
	if !m.defined() {
		return ""
	}
	return metricValid[m]
}

// Valid reports whether "v" is in the metric's value domain.
func (m Metric) Valid(v byte) bool {
	return m.index(v) != -1
}

func (m Metric) index(v byte) int {
	return strings.IndexByte(m.ValidValues(), v)
}

func (m Metric) defined() bool {
	return m >= 0 && int(m) < numMetrics
}

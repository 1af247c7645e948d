package cvss

import (
	"fmt"
	"math"
)

// Weights, indexed the same as the metric's valid values.
var weights = [numMetrics][]float64{
	{0.85, 0.62, 0.55, 0.2}, // AV
	{0.77, 0.44},            // AC
	{0.85, 0.62, 0.27},      // PR, Scope Unchanged
	{0.85, 0.62},            // UI
	{0, 0},                  // S
	{0, 0.22, 0.56},         // C
	{0, 0.22, 0.56},         // I
	{0, 0.22, 0.56},         // A
	// Temporal:
	{1, 0.91, 0.94, 0.97, 1}, // E
	{1, 0.95, 0.96, 0.97, 1}, // RL
	{1, 0.92, 0.96, 1},       // RC
	// Requirements:
	{1, 0.5, 1, 1.5}, // CR
	{1, 0.5, 1, 1.5}, // IR
	{1, 0.5, 1, 1.5}, // AR
	// Modified metrics have no weight for "Not Defined"; the Base metric is
	// substituted instead.
	{math.NaN(), 0.85, 0.62, 0.55, 0.2}, // MAV
	{math.NaN(), 0.77, 0.44},            // MAC
	{math.NaN(), 0.85, 0.62, 0.27},      // MPR
	{math.NaN(), 0.85, 0.62},            // MUI
	{math.NaN(), 0, 0},                  // MS
	{math.NaN(), 0, 0.22, 0.56},         // MC
	{math.NaN(), 0, 0.22, 0.56},         // MI
	{math.NaN(), 0, 0.22, 0.56},         // MA
}

// PrivilegesRequired weights when Scope is Changed.
var prChanged = []float64{0.85, 0.68, 0.5}

// Weight returns the weight for value "b" of metric "m". An unknown value is a
// programmer error: Vectors are validated at construction.
func weight(m Metric, b byte) float64 {
	i := m.index(b)
	if i == -1 {
		panic(fmt.Sprintf("programmer error: no weight for %v:%c", m, b))
	}
	return weights[m][i]
}

type inputs struct {
	av, ac, pr, ui float64
	c, i, a        float64
	changed        bool
}

func (in *inputs) exploitability() float64 {
	return 8.22 * in.av * in.ac * in.pr * in.ui
}

// Combine applies the final clamp, scope multiplier, and rounding shared by
// the Base and Environmental equations.
func combine(impact, exploitability float64, changed bool) float64 {
	if impact <= 0 {
		return 0
	}
	s := impact + exploitability
	if changed {
		s *= 1.08
	}
	return checked(roundup(math.Min(s, 10)))
}

// Inputs gathers the weights for the Base equations, substituting defined
// Modified metrics when "env" is set.
func (v *Vector) inputs(env bool) (in inputs) {
	get := func(m Metric) byte {
		if env {
			if mod := v.Get(m + ModifiedAttackVector); mod != 'X' {
				return mod
			}
		}
		return v.Get(m)
	}
	in.changed = get(Scope) == 'C'
	in.av = weight(AttackVector, get(AttackVector))
	in.ac = weight(AttackComplexity, get(AttackComplexity))
	in.ui = weight(UserInteraction, get(UserInteraction))
	in.pr = weight(PrivilegesRequired, get(PrivilegesRequired))
	if in.changed {
		in.pr = prChanged[PrivilegesRequired.index(get(PrivilegesRequired))]
	}
	in.c = weight(Confidentiality, get(Confidentiality))
	in.i = weight(Integrity, get(Integrity))
	in.a = weight(Availability, get(Availability))
	return in
}

// BaseScore reports the Base Score.
func (v *Vector) BaseScore() float64 {
	in := v.inputs(false)
	iss := 1 - ((1 - in.c) * (1 - in.i) * (1 - in.a))
	var impact float64
	if in.changed {
		impact = 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
	} else {
		impact = 6.42 * iss
	}
	return combine(impact, in.exploitability(), in.changed)
}

// TemporalScore reports the Temporal Score for the provided Base Score.
//
// "Not Defined" Temporal metrics are the multiplicative identity, so a vector
// without Temporal metrics reports the Base Score unchanged.
func (v *Vector) TemporalScore(base float64) float64 {
	if math.IsNaN(base) || base <= 0 {
		return base
	}
	f := weight(ExploitMaturity, v.Get(ExploitMaturity)) *
		weight(RemediationLevel, v.Get(RemediationLevel)) *
		weight(ReportConfidence, v.Get(ReportConfidence))
	return checked(roundup(base * f))
}

// EnvironmentalScore reports the Environmental Score.
//
// Modified metrics replace their Base counterparts when defined, and each
// impact weight is scaled by its Security Requirement. The modified impact
// sub-score is capped at 0.915.
func (v *Vector) EnvironmentalScore() float64 {
	in := v.inputs(true)
	cr := weight(ConfidentialityRequirement, v.Get(ConfidentialityRequirement))
	ir := weight(IntegrityRequirement, v.Get(IntegrityRequirement))
	ar := weight(AvailabilityRequirement, v.Get(AvailabilityRequirement))
	iss := math.Min(0.915, 1-((1-in.c*cr)*(1-in.i*ir)*(1-in.a*ar)))
	var impact float64
	if in.changed {
		impact = 7.52*(iss-0.029) - 3.25*math.Pow(iss*0.9731-0.02, 13)
	} else {
		impact = 6.42 * iss
	}
	return combine(impact, in.exploitability(), in.changed)
}

// Impact is the per-axis impact view: each Base impact weight scaled by its
// Security Requirement, rounded to two decimals.
type Impact struct {
	Confidentiality float64 `json:"confidentiality"`
	Integrity       float64 `json:"integrity"`
	Availability    float64 `json:"availability"`
}

// ImpactScores reports the per-axis impact values.
func (v *Vector) ImpactScores() Impact {
	axis := func(m, req Metric) float64 {
		w := weight(m, v.Get(m)) * weight(req, v.Get(req))
		return math.Round(w*100) / 100
	}
	return Impact{
		Confidentiality: axis(Confidentiality, ConfidentialityRequirement),
		Integrity:       axis(Integrity, IntegrityRequirement),
		Availability:    axis(Availability, AvailabilityRequirement),
	}
}

// Scores is every score computed from a Vector.
type Scores struct {
	Base          float64  `json:"base"`
	Temporal      float64  `json:"temporal"`
	Environmental float64  `json:"environmental"`
	Impact        Impact   `json:"impact"`
	Severity      Severity `json:"severity"`
}

// Scores computes all the scores for the Vector.
func (v *Vector) Scores() Scores {
	base := v.BaseScore()
	return Scores{
		Base:          base,
		Temporal:      v.TemporalScore(base),
		Environmental: v.EnvironmentalScore(),
		Impact:        v.ImpactScores(),
		Severity:      Classify(base),
	}
}

// Roundup is the v3.1 rounding function: the smallest number, specified to one
// decimal place, that is equal to or higher than its input.
func roundup(f float64) float64 {
	i := int64(math.Round(f * 100_000))
	if i%10_000 == 0 {
		return float64(i) / 100_000
	}
	return float64(i/10_000+1) / 10
}

// Checked panics if a score escapes the valid range.
func checked(s float64) float64 {
	if math.IsNaN(s) || s < 0 || s > 10 {
		panic(fmt.Sprintf("programmer error: score out of range: %v", s))
	}
	return s
}

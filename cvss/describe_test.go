package cvss

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDescribe(t *testing.T) {
	got, err := DescribeQualitative("CVSS:3.1/AV:A/AC:H/PR:L/UI:R/S:C/C:L/I:N/A:H/E:P/RL:T/CR:M/MAV:P/MS:U")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"attackVector":               "Adjacent",
		"attackComplexity":           "High",
		"privilegesRequired":         "Low",
		"userInteraction":            "Required",
		"scope":                      "Changed",
		"confidentiality":            "Low",
		"integrity":                  "None",
		"availability":               "High",
		"exploitCodeMaturity":        "Proof-of-Concept",
		"remediationLevel":           "Temporary Fix",
		"reportConfidence":           "Not Defined",
		"confidentialityRequirement": "Medium",
		"integrityRequirement":       "Not Defined",
		"availabilityRequirement":    "Not Defined",
		"modifiedAttackVector":       "Physical",
		"modifiedAttackComplexity":   "Not Defined",
		"modifiedPrivilegesRequired": "Not Defined",
		"modifiedUserInteraction":    "Not Defined",
		"modifiedScope":              "Unchanged",
		"modifiedConfidentiality":    "Not Defined",
		"modifiedIntegrity":          "Not Defined",
		"modifiedAvailability":       "Not Defined",
	}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}

	if _, err := DescribeQualitative("CVSS:3.1/AV:A"); err == nil {
		t.Error("expected error")
	}
}

func TestLabels(t *testing.T) {
	for _, m := range Metrics() {
		if got, want := len(labels[m]), len(m.ValidValues()); got != want {
			t.Errorf("%v: %d labels for %d values", m, got, want)
		}
		if got, want := len(weights[m]), len(m.ValidValues()); got != want {
			t.Errorf("%v: %d weights for %d values", m, got, want)
		}
	}
	if got := AttackVector.Label('Q'); got != "" {
		t.Errorf("unexpected label: %q", got)
	}
}

func TestValueFromLabel(t *testing.T) {
	tcs := []struct {
		Metric Metric
		Label  string
		Want   byte
		OK     bool
	}{
		{AttackVector, "network", 'N', true},
		{AttackVector, "Adjacent", 'A', true},
		{ExploitMaturity, "PROOF_OF_CONCEPT", 'P', true},
		{RemediationLevel, "official fix", 'O', true},
		{ConfidentialityRequirement, "Medium", 'M', true},
		{ConfidentialityRequirement, "not defined", 'X', true},
		{Scope, "changed", 'C', true},
		{AttackVector, "remote", 0, false},
		{Metric(99), "network", 0, false},
	}
	for _, tc := range tcs {
		got, ok := tc.Metric.ValueFromLabel(tc.Label)
		if got != tc.Want || ok != tc.OK {
			t.Errorf("%v %q: got: %c, %v, want: %c, %v", tc.Metric, tc.Label, got, ok, tc.Want, tc.OK)
		}
	}
}

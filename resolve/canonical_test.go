package resolve

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quay/vecscore"
	"github.com/quay/vecscore/cvss"
)

func TestCanonicalize(t *testing.T) {
	tcs := []struct {
		In   string
		Want string
	}{
		{
			In:   "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		},
		{
			In:   "cvss:3.0/a:h/i:h/c:h/s:u/ui:n/pr:n/ac:l/av:n",
			Want: "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		},
		{
			In:   "CVSS 3.0 AV:N AC:L PR:N UI:R S:C C:L I:L A:N",
			Want: "CVSS:3.0/AV:N/AC:L/PR:N/UI:R/S:C/C:L/I:L/A:N",
		},
		{
			In:   "AV:NETWORK/AC:LOW/PR:NONE/UI:REQUIRED/S:CHANGED/C:PARTIAL/I:COMPLETE/A:NONE",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:C/C:L/I:H/A:N",
		},
		{
			In:   "AV:N/AC:MEDIUM/C:H",
			Want: "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:H/I:N/A:N",
		},
		{
			// Last value wins.
			In:   "AV:L/AV:N/AC:L/C:L",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:L/I:N/A:N",
		},
		{
			// Unknown metrics and values are dropped.
			In:   "AV:N/AC:L/AU:N/C:Q/I:H/E:POC",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:N/I:H/A:N",
		},
		{
			In:   "AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/E:PROOF/RL:WORKAROUND/RC:CONFIRMED/CR:MEDIUM",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/RL:W/RC:C/CR:H",
		},
		{
			// MEDIUM is the synonym for H, for requirements too.
			In:   "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/CR:MEDIUM/IR:MEDIUM/AR:MEDIUM",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/CR:H/IR:H/AR:H",
		},
		{
			In:   "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/CR:M/IR:LOW/MAV:ADJACENT",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/CR:M/IR:L/MAV:A",
		},
		{
			In:   "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/MAV:L/MS:X",
			Want: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/MAV:L/MS:X",
		},
	}
	for _, tc := range tcs {
		t.Run("", func(t *testing.T) {
			t.Log(tc.In)
			got, err := Canonicalize(tc.In)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.Want {
				t.Error(cmp.Diff(got, tc.Want))
			}
			if _, err := cvss.Parse(got); err != nil {
				t.Error(err)
			}
			// Idempotent.
			again, err := Canonicalize(got)
			if err != nil {
				t.Fatal(err)
			}
			if again != got {
				t.Error(cmp.Diff(again, got))
			}
		})
	}
}

// TestCanonicalizeIdempotent checks that every canonical Base vector, in
// both versions, and a sample of vectors carrying Temporal and Environmental
// metrics come back unchanged.
func TestCanonicalizeIdempotent(t *testing.T) {
	check := func(vec string) {
		t.Helper()
		got, err := Canonicalize(vec)
		if err != nil {
			t.Errorf("%s: %v", vec, err)
			return
		}
		if got != vec {
			t.Errorf("%s: %s", vec, cmp.Diff(got, vec))
		}
	}

	var n int
	var walk func(string, []cvss.Metric)
	walk = func(prefix string, ms []cvss.Metric) {
		if len(ms) == 0 {
			n++
			check(prefix)
			return
		}
		m := ms[0]
		for _, b := range []byte(m.ValidValues()) {
			walk(fmt.Sprintf("%s/%v:%c", prefix, m, b), ms[1:])
		}
	}
	for _, p := range []string{"CVSS:3.0", "CVSS:3.1"} {
		walk(p, cvss.BaseMetrics())
	}
	if got, want := n, 2*2592; got != want {
		t.Errorf("checked %d vectors, want %d", got, want)
	}

	// Each other metric and value on its own.
	const base = "CVSS:3.1/AV:N/AC:H/PR:L/UI:R/S:C/C:L/I:H/A:N"
	for _, m := range cvss.Metrics() {
		if m.Group() == cvss.GroupBase {
			continue
		}
		for _, b := range []byte(m.ValidValues()) {
			check(fmt.Sprintf("%s/%v:%c", base, m, b))
		}
	}
	// And together, in canonical order.
	for _, vec := range []string{
		base + "/E:F/RL:O/RC:C",
		base + "/CR:H/IR:L/AR:M/MAV:P/MAC:L/MPR:H/MUI:N/MS:U/MC:H/MI:N/MA:L",
		base + "/E:U/RL:W/RC:R/CR:L/IR:X/AR:H/MAV:A/MS:C/MA:H",
		"CVSS:3.0/AV:L/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/E:H/RL:U/RC:U/CR:M/IR:M/AR:M/MAV:X/MAC:X/MPR:X/MUI:X/MS:X/MC:X/MI:X/MA:X",
	} {
		check(vec)
	}
}

func TestCanonicalizeError(t *testing.T) {
	strict, err := New(&Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	tcs := []struct {
		Name string
		In   string
		R    *Resolver
	}{
		{Name: "Empty", In: ""},
		{Name: "Prose", In: "no metrics here"},
		{Name: "TwoMetrics", In: "AV:N/AC:L"},
		{Name: "BadValues", In: "AV:Q/AC:Q/PR:Q/UI:Q"},
		{Name: "StrictMissing", In: "AV:N/AC:L/C:H", R: strict},
	}
	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			var err error
			if tc.R != nil {
				_, err = tc.R.Canonicalize(tc.In)
			} else {
				_, err = Canonicalize(tc.In)
			}
			t.Log(err)
			if !errors.Is(err, vecscore.ErrInvalid) {
				t.Errorf("wrong kind: %v", err)
			}
			if !errors.Is(err, cvss.ErrMalformedVector) {
				t.Errorf("does not wrap ErrMalformedVector: %v", err)
			}
		})
	}
}

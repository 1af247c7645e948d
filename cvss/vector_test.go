package cvss

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type errorTestcase struct {
	Vector string
	Error  bool
}

func TestParse(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		tcs := []errorTestcase{
			{Vector: "CVSS:3.0/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N"},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N"},
			{Vector: "cvss:3.1/av:p/ac:h/pr:h/ui:r/s:u/c:n/i:n/a:n"},
			{Vector: "  CVSS:3.1/A:N/I:N/C:N/S:U/UI:R/PR:H/AC:H/AV:P  "},
			{Vector: "", Error: true},
			{Vector: "XXX:3.0/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:2.0/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:2.0/AV:N/AC:L/Au:N/C:C/I:C/A:C", Error: true},
			{Vector: "CVSS:3.1", Error: true},
			{Vector: "CVSS:3.1/", Error: true},
			{Vector: "CVSS3.1/AV:X/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A-N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/X:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:X", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:X/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:X/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:X/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:X/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:X/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:X/PR:H/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:X/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:NN", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N/E:Q", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N/ZZ:X", Error: true},
			{Vector: "AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H", Error: true},
			{Vector: "CVSS:3.1/CVSS:3.0/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N/AV:X", Error: true},
			{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N/AV:P", Error: true},
			{Vector: "CVSS:3.3", Error: true},
		}
		for _, tc := range tcs {
			t.Run("", func(t *testing.T) {
				t.Log(tc.Vector)
				_, err := Parse(tc.Vector)
				t.Logf("%v", err)
				if (err != nil) != tc.Error {
					t.Fail()
				}
				if err != nil && !errors.Is(err, ErrMalformedVector) {
					t.Errorf("error does not wrap ErrMalformedVector: %v", err)
				}
			})
		}
	})

	t.Run("Roundtrip", func(t *testing.T) {
		vecs := []string{
			"CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N",          // Zero metrics
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:N/A:N",          // CVE-2015-8252
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:C/C:L/I:L/A:N",          // CVE-2013-1937
			"CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:C/C:L/I:L/A:N",          // CVE-2013-0375
			"CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:U/C:L/I:N/A:N",          // CVE-2014-3566
			"CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:C/C:H/I:H/A:H",          // CVE-2012-1516
			"CVSS:3.0/AV:L/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H",          // CVE-2015-1098
			"CVSS:3.0/AV:N/AC:H/PR:N/UI:N/S:C/C:N/I:H/A:N",          // CVE-2008-1447
			"CVSS:3.1/AV:N/AC:L/PR:H/UI:N/S:U/C:L/I:L/A:N/E:F/RL:X", // Explicit "Not Defined"
			"CVSS:3.1/AV:L/AC:L/PR:L/UI:N/S:U/C:H/I:H/A:H/E:P/RL:O/RC:C/CR:H/IR:M/AR:L/MAV:N/MAC:H/MPR:N/MUI:R/MS:C/MC:L/MI:N/MA:H",
		}
		for _, in := range vecs {
			t.Run("", func(t *testing.T) {
				t.Log(in)
				v, err := Parse(in)
				if err != nil {
					t.Fatal(err)
				}
				if got, want := v.String(), in; got != want {
					t.Error(cmp.Diff(got, want))
				}
				for _, m := range Metrics() {
					t.Logf("%3v\t%c", m, v.Get(m))
				}
			})
		}
	})

	t.Run("Canonical", func(t *testing.T) {
		v, err := Parse("cvss:3.0/a:h/i:h/c:h/s:u/ui:n/pr:n/ac:l/av:n/rc:c")
		if err != nil {
			t.Fatal(err)
		}
		if got, want := v.String(), "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/RC:C"; got != want {
			t.Error(cmp.Diff(got, want))
		}
		if got, want := v.Minor(), 0; got != want {
			t.Errorf("got: %d, want: %d", got, want)
		}
	})

	t.Run("Zero", func(t *testing.T) {
		var v Vector
		if _, err := v.MarshalText(); !errors.Is(err, ErrMalformedVector) {
			t.Errorf("unexpected error: %v", err)
		}
		if got, want := v.String(), "CVSS:3.1/INVALID"; got != want {
			t.Error(cmp.Diff(got, want))
		}
	})
}

func TestGroups(t *testing.T) {
	tcs := []struct {
		Vector        string
		Temporal      bool
		Environmental bool
	}{
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"},
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/E:X/RL:X/RC:X/CR:X/MAV:X"},
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/E:U", Temporal: true},
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/AR:L", Environmental: true},
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/RL:W/MS:C", Temporal: true, Environmental: true},
	}
	for _, tc := range tcs {
		t.Run("", func(t *testing.T) {
			v, err := Parse(tc.Vector)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := v.Temporal(), tc.Temporal; got != want {
				t.Errorf("temporal: got: %v, want: %v", got, want)
			}
			if got, want := v.Environmental(), tc.Environmental; got != want {
				t.Errorf("environmental: got: %v, want: %v", got, want)
			}
		})
	}
}

func TestMetric(t *testing.T) {
	if got, want := len(Metrics()), 22; got != want {
		t.Errorf("got: %d, want: %d", got, want)
	}
	for _, m := range Metrics() {
		got, ok := MetricFromCode(m.String())
		if !ok || got != m {
			t.Errorf("%v: lookup failed", m)
		}
		if m.Group() == GroupModified {
			if got, want := m.String(), "M"+m.Modifies().String(); got != want {
				t.Error(cmp.Diff(got, want))
			}
			if !m.Valid('X') {
				t.Errorf("%v: 'X' should be valid", m)
			}
		}
		if m.Group() == GroupBase && m.Valid('X') {
			t.Errorf("%v: 'X' should not be valid", m)
		}
	}
	if _, ok := MetricFromCode("Au"); ok {
		t.Error("found v2 metric")
	}
}

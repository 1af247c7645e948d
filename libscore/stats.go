package libscore

import (
	"math"

	"github.com/quay/vecscore/cvss"
)

// Stats summarizes a set of results.
type Stats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Errors  int `json:"errors"`
	// AverageScore is the mean Base Score of the valid rows, to one decimal.
	AverageScore float64 `json:"average_score"`
	// Severity counts valid rows per band. Every band is present.
	Severity map[cvss.Severity]int `json:"severity"`
}

// NewStats tallies the provided results.
func NewStats(rs []RowResult) Stats {
	s := Stats{
		Total:    len(rs),
		Severity: make(map[cvss.Severity]int, 5),
	}
	for _, sev := range []cvss.Severity{
		cvss.SeverityNone, cvss.SeverityLow, cvss.SeverityMedium, cvss.SeverityHigh, cvss.SeverityCritical,
	} {
		s.Severity[sev] = 0
	}
	var sum float64
	for _, r := range rs {
		switch r.Status {
		case StatusValid:
			s.Valid++
			if r.Scores != nil {
				sum += r.Scores.Base
				s.Severity[r.Scores.Severity]++
			}
		case StatusInvalid:
			s.Invalid++
		default:
			s.Errors++
		}
	}
	if s.Valid > 0 {
		s.AverageScore = math.Floor(sum/float64(s.Valid)*10+0.5) / 10
	}
	return s
}

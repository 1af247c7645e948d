package resolve

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/quay/vecscore/cvss"
)

// A guesser recognizes a Base metric from a column or phrase naming it, and
// maps spelled-out values to the metric's value letters.
type guesser struct {
	metric cvss.Metric
	name   *regexp.Regexp
	values map[string]byte
}

// Guessers for the Base metrics. Value keys are upper-cased with runs of
// spaces and hyphens replaced by an underscore.
var guessers = []guesser{
	{
		metric: cvss.AttackVector,
		name:   regexp.MustCompile(`(?i)^(?:(?:attack|access)[ _-]?vector|vector|av|av[ _-]?score)$`),
		values: map[string]byte{
			"NETWORK": 'N', "ADJACENT": 'A', "ADJACENT_NETWORK": 'A', "LOCAL": 'L',
			"LOCAL_ACCESS": 'L', "PHYSICAL": 'P', "PHYSICAL_ACCESS": 'P',
			"NET": 'N', "ADJ": 'A', "LOC": 'L', "PHY": 'P',
			"N": 'N', "A": 'A', "L": 'L', "P": 'P',
		},
	},
	{
		metric: cvss.AttackComplexity,
		name:   regexp.MustCompile(`(?i)^(?:(?:attack|access)[ _-]?complexity|complexity|ac|ac[ _-]?score)$`),
		values: map[string]byte{
			"LOW": 'L', "HIGH": 'H', "MEDIUM": 'H', "SIMPLE": 'L', "COMPLEX": 'H',
			"L": 'L', "H": 'H', "M": 'H',
		},
	},
	{
		metric: cvss.PrivilegesRequired,
		name:   regexp.MustCompile(`(?i)^(?:privileges?[ _-]?required|privileges?|pr|pr[ _-]?score)$`),
		values: map[string]byte{
			"NONE": 'N', "LOW": 'L', "HIGH": 'H', "NO": 'N', "YES": 'L',
			"NOT_REQUIRED": 'N', "REQUIRED": 'L', "HIGH_PRIVILEGE": 'H',
			"N": 'N', "L": 'L', "H": 'H',
		},
	},
	{
		metric: cvss.UserInteraction,
		name:   regexp.MustCompile(`(?i)^(?:user[ _-]?interaction|interaction|user|ui|ui[ _-]?score)$`),
		values: map[string]byte{
			"NONE": 'N', "REQUIRED": 'R', "NO": 'N', "YES": 'R',
			"NOT_REQUIRED": 'N', "USER_INTERACTION": 'R',
			"N": 'N', "R": 'R',
		},
	},
	{
		metric: cvss.Scope,
		name:   regexp.MustCompile(`(?i)^(?:scope|scope[ _-]?(?:score|changed)|s)$`),
		values: map[string]byte{
			"UNCHANGED": 'U', "CHANGED": 'C', "NO": 'U', "YES": 'C', "NONE": 'U', "CHANGE": 'C',
			"U": 'U', "C": 'C',
		},
	},
	{
		metric: cvss.Confidentiality,
		name:   regexp.MustCompile(`(?i)^(?:confidentiality(?:[ _-]?impact)?|conf|c|c[ _-]?score)$`),
		values: impactValues,
	},
	{
		metric: cvss.Integrity,
		name:   regexp.MustCompile(`(?i)^(?:integrity(?:[ _-]?impact)?|integ|int|i|i[ _-]?score)$`),
		values: impactValues,
	},
	{
		metric: cvss.Availability,
		name:   regexp.MustCompile(`(?i)^(?:availability(?:[ _-]?impact)?|avail|a|a[ _-]?score)$`),
		values: impactValues,
	},
}

var impactValues = map[string]byte{
	"NONE": 'N', "LOW": 'L', "HIGH": 'H', "NO": 'N', "PARTIAL": 'L', "COMPLETE": 'H',
	"N": 'N', "L": 'L', "H": 'H',
}

var (
	valueSpace = regexp.MustCompile(`[\s-]+`)
	tokenSep   = regexp.MustCompile(`[/|,;\s_-]+`)
	wordSep    = regexp.MustCompile(`[/|,;:=\s_-]+`)
)

func valueKey(s string) string {
	return valueSpace.ReplaceAllLiteralString(normValue(s), "_")
}

// GuessName returns the guesser whose name pattern matches "name". Names of a
// single letter only match when "short" is set.
func guessName(name string, short bool) (*guesser, bool) {
	if !short && len(name) < 2 {
		return nil, false
	}
	for i := range guessers {
		if guessers[i].name.MatchString(name) {
			return &guessers[i], true
		}
	}
	return nil, false
}

// CrossCell reconstructs a vector from metrics spread over a row's cells:
// columns named after a metric, "CODE:VALUE" tokens, and phrases like
// "Attack Vector: Network".
func (r *Resolver) crossCell(ctx context.Context, row Row) (string, bool) {
	found := make(map[cvss.Metric]string)
	add := func(m cvss.Metric, v string) {
		found[m] = m.String() + ":" + v
	}
	addFragment := func(tok string) {
		code, val, _ := strings.Cut(tok, ":")
		if m, ok := cvss.MetricFromCode(code); ok {
			add(m, val)
		}
	}

	for _, c := range row {
		if ignorable(c.Value) {
			continue
		}
		if g, ok := guessName(normLabel(c.Label), true); ok {
			if b, ok := g.values[valueKey(c.Value)]; ok {
				add(g.metric, string(b))
			}
		}

		val := normValue(c.Value)
		var hit bool
		for _, tok := range tokenSep.Split(val, -1) {
			if fragment.MatchString(tok) {
				addFragment(tok)
				hit = true
			}
		}
		if !hit {
			words := slices.DeleteFunc(wordSep.Split(val, -1), func(w string) bool { return w == "" })
			guessWords(words, add)
		}

		for _, tok := range tokenSep.Split(normValue(c.Label), -1) {
			if fragment.MatchString(tok) {
				addFragment(tok)
			}
		}
	}
	if len(found) < 2 {
		return "", false
	}

	frags := make([]string, 0, len(found))
	for _, f := range found {
		frags = append(frags, f)
	}
	slices.Sort(frags)
	v, err := r.Canonicalize("CVSS:3.1/" + strings.Join(frags, "/"))
	if err != nil {
		r.log().DebugContext(ctx, "reconstructed metrics rejected", "metrics", frags, "reason", err)
		return "", false
	}
	return v, true
}

// GuessWords scans for a metric name of one or two words followed by a value.
func guessWords(words []string, add func(cvss.Metric, string)) {
	for i := range words {
		if i+2 < len(words) {
			if g, ok := guessName(words[i]+" "+words[i+1], false); ok {
				if b, ok := g.values[words[i+2]]; ok {
					add(g.metric, string(b))
					continue
				}
			}
		}
		if i+1 < len(words) {
			if g, ok := guessName(words[i], false); ok {
				if b, ok := g.values[words[i+1]]; ok {
					add(g.metric, string(b))
				}
			}
		}
	}
}

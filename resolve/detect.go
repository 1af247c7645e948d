package resolve

import (
	"context"
	"regexp"
	"strings"
)

// Cells longer than this are prose, not vectors.
const maxCellLen = 500

var (
	numeric   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	hyperlink = regexp.MustCompile(`^HTTPS?://`)
	canonical = regexp.MustCompile(`^CVSS:3\.[01]/[A-Z]+:[A-Z]+(?:/[A-Z]+:[A-Z]+)*$`)
	fragment  = regexp.MustCompile(`^(?:AV|AC|PR|UI|S|C|I|A|E|RL|RC|CR|IR|AR|MAV|MAC|MPR|MUI|MS|MC|MI|MA):[A-Z]+$`)

	// Any of these marks text as worth a closer look.
	indicators = []*regexp.Regexp{
		regexp.MustCompile(`CVSS\s*(?:V|:)?\s*3\.[01]`),
		regexp.MustCompile(`(?:^|[^A-Z])(?:AV:[NALP]|AC:[LH]|PR:[NLH]|UI:[NR]|S:[UC]|C:[NLH]|I:[NLH]|A:[NLH])`),
		regexp.MustCompile(`VECTOR:.*?(?:AV|AC|PR|UI|S|C|I|A):`),
		regexp.MustCompile(`BASE_SCORE.*VECTOR`),
		regexp.MustCompile(`[A-Z]+:[A-Z]+/[A-Z]+:[A-Z]+`),
		regexp.MustCompile(`^CVSS\s*VECTOR$`),
		regexp.MustCompile(`^VECTOR\s*STRING$`),
		regexp.MustCompile(`^BASE\s*VECTOR$`),
	}
)

// Ignorable reports whether a cell's value should not be examined at all:
// blank cells and hyperlinks, which commonly embed vectors for other
// records.
func ignorable(v string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	return v == "" || hyperlink.MatchString(v)
}

// Fragments returns the "CODE:VALUE" tokens naming a known metric.
func fragments(s string) []string {
	var out []string
	for tok := range strings.SplitSeq(separators.ReplaceAllLiteralString(s, " "), " ") {
		if fragment.MatchString(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// LooksLikeVector reports whether normalized text plausibly holds a vector.
func looksLikeVector(s string) bool {
	for _, re := range indicators {
		if re.MatchString(s) {
			return true
		}
	}
	return len(fragments(s)) >= 2
}

// FromText attempts to read a vector out of a single piece of text.
func (r *Resolver) fromText(ctx context.Context, s string) (string, bool) {
	s = normValue(s)
	switch {
	case len(s) < 5, len(s) > maxCellLen:
		return "", false
	case numeric.MatchString(s), hyperlink.MatchString(s):
		return "", false
	}
	if canonical.MatchString(s) {
		v, err := r.Canonicalize(s)
		if err == nil {
			return v, true
		}
		r.log().DebugContext(ctx, "vector-shaped text rejected", "text", s, "reason", err)
	}
	if !looksLikeVector(s) {
		return "", false
	}
	frags := fragments(s)
	if len(frags) < 2 {
		return "", false
	}
	in := s
	if !versionToken.MatchString(s) {
		in = "CVSS:3.1/" + strings.Join(frags, "/")
	}
	v, err := r.Canonicalize(in)
	if err != nil {
		r.log().DebugContext(ctx, "fragments rejected", "text", s, "reason", err)
		return "", false
	}
	return v, true
}

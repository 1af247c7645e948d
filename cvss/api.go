package cvss

// These functions are conveniences for callers holding vector strings.

// ParseVector parses a v3.0 or v3.1 vector string.
//
// It is equivalent to [Parse].
func ParseVector(s string) (Vector, error) {
	return Parse(s)
}

// ComputeScores parses the vector string and reports all of its scores.
func ComputeScores(s string) (Scores, error) {
	v, err := Parse(s)
	if err != nil {
		return Scores{}, err
	}
	return v.Scores(), nil
}

// ComputeBaseScore parses the vector string and reports its Base Score.
func ComputeBaseScore(s string) (float64, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return v.BaseScore(), nil
}

// ClassifySeverity is [Classify].
func ClassifySeverity(score float64) Severity {
	return Classify(score)
}

// DescribeQualitative parses the vector string and reports the labels for
// every metric.
func DescribeQualitative(s string) (map[string]string, error) {
	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return v.Describe(), nil
}

// Package cvss implements CVSS v3.0 and v3.1 vectors and scoring.
//
// The primary purpose of this package is to parse CVSS vectors, then use the
// parsed representation to calculate the numerical scores and produce the
// canonical representation of the vector.
//
// # Scoring
//
// Base and Temporal scores are computed as laid out in the [v3.1
// specification]. The Environmental score is computed from the Base metrics
// with Modified metrics and Security Requirements applied, but without the
// Temporal multipliers. The modified Changed-scope impact keeps the
// v3.1 asymmetry (exponent 13 and the 0.9731 factor) for both v3.0 and v3.1
// vectors.
//
// All scores use the v3.1 "Roundup" function, which is a ceiling at the tenths
// digit that is insensitive to floating point representation error.
//
// [v3.1 specification]: https://www.first.org/cvss/v3-1/specification-document
package cvss

import (
	"errors"
)

// ErrMalformedVector is reported when a vector is invalid in some way.
var ErrMalformedVector = errors.New("malformed vector")

// Prefix is the common prefix of every v3 vector string, without the minor
// version.
const Prefix = `CVSS:3.`

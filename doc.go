// Package vecscore holds the shared error domain for the vecscore packages.
//
// The interesting code lives in the subpackages:
//
//   - [github.com/quay/vecscore/cvss] parses CVSS v3.0/v3.1 vectors and
//     computes Base, Temporal, Environmental, and Impact scores.
//   - [github.com/quay/vecscore/resolve] recovers a canonical vector out of
//     untidy tabular data.
//   - [github.com/quay/vecscore/libscore] ties the two together over whole
//     tables and reports run statistics.
package vecscore

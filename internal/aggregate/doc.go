// Package aggregate derives rating summaries for courts and venues from
// snapshots of raw records.
//
// Every function here is pure: inputs are never mutated, no state survives
// between calls, and absent averages are reported as nil rather than zero so
// callers can tell "no ratings" apart from a low score.
package aggregate

// Package compare diffs two snapshots of a counter table.
//
// Between two samples of an unchanged ruleset only counters move, so every
// line of a changed chain is expected to pair either exactly or by its
// match criteria. Whatever does not pair is reported as an anomaly: it
// means the ruleset itself was edited between the samples.
//
// The package is pure: it does no I/O and keeps no state between calls.
package compare

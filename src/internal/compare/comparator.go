package compare

import (
	"fmt"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/matcher"
)

// Options tune the comparison.
type Options struct {
	// CounterTokens selects the tokens compared by the near-match pass.
	CounterTokens matcher.TokenRange
}

// DefaultOptions skip the packet and byte counters in the near-match pass.
func DefaultOptions() Options {
	return Options{CounterTokens: matcher.CounterlessRange}
}

// Comparator diffs chains and snapshots. It holds no state besides its
// options and is safe to reuse.
type Comparator struct {
	opts Options
}

// NewComparator creates a comparator with the given options.
func NewComparator(opts Options) *Comparator {
	return &Comparator{opts: opts}
}

var defaultComparator = NewComparator(DefaultOptions())

// CompareChain diffs two blocks of the same chain using the default options.
func CompareChain(name string, before, after chains.RuleBlock) ChainVerdict {
	return defaultComparator.CompareChain(name, before, after)
}

// Compare diffs two snapshots using the default options.
func Compare(before, after *chains.Snapshot) *Report {
	return defaultComparator.Compare(before, after)
}

// CompareChain diffs the lines of one chain taken at two points in time.
//
// Identical blocks are unchanged. Otherwise lines are paired exactly first;
// what is left is paired on the configured token range, which yields the
// counter drift. Lines surviving both passes are unresolved leftovers.
func (c *Comparator) CompareChain(name string, before, after chains.RuleBlock) ChainVerdict {
	if before.Equal(after) {
		return ChainVerdict{Chain: name, Kind: Unchanged}
	}

	exact := matcher.Exact(before, after)
	if len(exact.Pairs) == len(before) {
		return ChainVerdict{
			Chain: name,
			Kind:  Unchanged,
			Anomalies: []Anomaly{{
				Kind:  ConsistencyAnomaly,
				Chain: name,
				Message: fmt.Sprintf("chain differs but all %d lines paired exactly (%d unpaired after)",
					len(before), len(exact.LeftoversB)),
			}},
		}
	}

	near := matcher.Substring(exact.LeftoversA, exact.LeftoversB, c.opts.CounterTokens)

	verdict := ChainVerdict{
		Chain:           name,
		Kind:            Changed,
		ExactPairs:      len(exact.Pairs),
		NearPairs:       near.Pairs,
		UnmatchedBefore: near.LeftoversA,
		UnmatchedAfter:  near.LeftoversB,
	}

	for _, line := range near.LeftoversA {
		verdict.Anomalies = append(verdict.Anomalies, leftover(name, SideBefore, line))
	}
	for _, line := range near.LeftoversB {
		verdict.Anomalies = append(verdict.Anomalies, leftover(name, SideAfter, line))
	}

	return verdict
}

func leftover(chain string, side Side, line string) Anomaly {
	return Anomaly{
		Kind:    UnresolvedLeftover,
		Chain:   chain,
		Side:    side,
		Line:    line,
		Message: fmt.Sprintf("no matching rule %s", opposite(side)),
	}
}

func opposite(side Side) Side {
	if side == SideBefore {
		return SideAfter
	}
	return SideBefore
}

// Compare diffs every chain name present in either snapshot. Chains present
// in both are compared line by line; chains present on one side only are
// reported as wholly added or removed.
func (c *Comparator) Compare(before, after *chains.Snapshot) *Report {
	report := &Report{
		Chains:    chainUniverse(before, after),
		Unchanged: []string{},
		Changed:   []ChainVerdict{},
		Anomalies: []Anomaly{},
	}

	for _, name := range report.Chains {
		var verdict ChainVerdict

		blockBefore, inBefore := before.Block(name)
		blockAfter, inAfter := after.Block(name)

		switch {
		case inBefore && inAfter:
			verdict = c.CompareChain(name, blockBefore, blockAfter)
		case inBefore:
			verdict = ChainVerdict{
				Chain:   name,
				Kind:    Removed,
				Removed: []string(blockBefore),
				Anomalies: []Anomaly{{
					Kind:    StructuralMismatch,
					Chain:   name,
					Side:    SideBefore,
					Message: "chain not found in second snapshot, it was removed in the meantime",
				}},
			}
		default:
			verdict = ChainVerdict{
				Chain: name,
				Kind:  Added,
				Added: []string(blockAfter),
				Anomalies: []Anomaly{{
					Kind:    StructuralMismatch,
					Chain:   name,
					Side:    SideAfter,
					Message: "chain not found in first snapshot, it is new in the second",
				}},
			}
		}

		report.Anomalies = append(report.Anomalies, verdict.Anomalies...)
		if verdict.IsUnchanged() {
			report.Unchanged = append(report.Unchanged, name)
		} else {
			report.Changed = append(report.Changed, verdict)
		}
	}

	report.Outcome = classify(len(report.Unchanged), len(report.Chains))
	return report
}

// chainUniverse returns the chain names of before in order, followed by the
// names only present in after.
func chainUniverse(before, after *chains.Snapshot) []string {
	names := before.Names()
	for _, name := range after.Names() {
		if !before.Has(name) {
			names = append(names, name)
		}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

func classify(unchanged, total int) Outcome {
	switch unchanged {
	case total:
		return NoChanges
	case 0:
		return AllChanged
	default:
		return PartialChanges
	}
}

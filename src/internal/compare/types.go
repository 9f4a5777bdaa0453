package compare

import "github.com/merretbuurman/iptables-stats-comparison/src/internal/matcher"

// VerdictKind classifies one chain.
type VerdictKind string

const (
	// Unchanged means the chain has identical lines in both snapshots.
	Unchanged VerdictKind = "unchanged"

	// Changed means the chain exists in both snapshots with different lines.
	// Counter drift is reported as near pairs; anything else as anomalies.
	Changed VerdictKind = "changed"

	// Added means the chain only exists in the second snapshot.
	Added VerdictKind = "added"

	// Removed means the chain only exists in the first snapshot.
	Removed VerdictKind = "removed"
)

// AnomalyKind classifies something that should not happen between two
// samples of a static ruleset.
type AnomalyKind string

const (
	// StructuralMismatch means the snapshots have different chain names.
	StructuralMismatch AnomalyKind = "structural_mismatch"

	// UnresolvedLeftover means a line could be paired neither exactly nor
	// by its match criteria, i.e. a rule was edited.
	UnresolvedLeftover AnomalyKind = "unresolved_leftover"

	// ConsistencyAnomaly means unequal blocks turned out to pair completely.
	ConsistencyAnomaly AnomalyKind = "consistency_anomaly"
)

// Side tells which snapshot a line came from.
type Side string

const (
	SideBefore Side = "before"
	SideAfter  Side = "after"
)

// Anomaly is a non-fatal finding surfaced in the report.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	Chain   string      `json:"chain,omitempty"`
	Side    Side        `json:"side,omitempty"`
	Line    string      `json:"line,omitempty"`
	Message string      `json:"message"`
}

// ChainVerdict is the comparison result for one chain name.
type ChainVerdict struct {
	Chain string      `json:"chain"`
	Kind  VerdictKind `json:"kind"`

	// ExactPairs counts lines found unchanged inside a changed chain.
	ExactPairs int `json:"exact_pairs"`
	// NearPairs are lines that differ only in their counters.
	NearPairs []matcher.Pair `json:"near_pairs,omitempty"`
	// UnmatchedBefore and UnmatchedAfter survived both matching passes.
	UnmatchedBefore []string `json:"unmatched_before,omitempty"`
	UnmatchedAfter  []string `json:"unmatched_after,omitempty"`

	// Added holds the lines of a chain that only exists after.
	Added []string `json:"added,omitempty"`
	// Removed holds the lines of a chain that only existed before.
	Removed []string `json:"removed,omitempty"`

	Anomalies []Anomaly `json:"anomalies,omitempty"`
}

// IsUnchanged reports whether the chain is unchanged.
func (v ChainVerdict) IsUnchanged() bool {
	return v.Kind == Unchanged
}

// Outcome is the overall classification of a report.
type Outcome string

const (
	NoChanges      Outcome = "no_changes"
	PartialChanges Outcome = "partial_changes"
	AllChanged     Outcome = "all_changed"
)

// Report aggregates the verdicts for every chain name of both snapshots.
type Report struct {
	// Chains is the compared chain universe in report order.
	Chains []string `json:"chains"`
	// Unchanged lists chains without any difference.
	Unchanged []string `json:"unchanged"`
	// Changed holds a verdict for every chain that is not unchanged.
	Changed   []ChainVerdict `json:"changed"`
	Outcome   Outcome        `json:"outcome"`
	Anomalies []Anomaly      `json:"anomalies"`
}

// HasAnomalies reports whether anything besides counter drift was found.
func (r *Report) HasAnomalies() bool {
	return len(r.Anomalies) > 0
}

// Verdict returns the verdict of a changed chain.
func (r *Report) Verdict(chain string) (ChainVerdict, bool) {
	for _, v := range r.Changed {
		if v.Chain == chain {
			return v, true
		}
	}
	return ChainVerdict{}, false
}

// IsUnchanged reports whether chain was compared and found unchanged.
func (r *Report) IsUnchanged(chain string) bool {
	for _, name := range r.Unchanged {
		if name == chain {
			return true
		}
	}
	return false
}

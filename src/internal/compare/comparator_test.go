package compare

import (
	"reflect"
	"testing"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/matcher"
)

// snapshot builds a snapshot from chain/lines pairs, keeping argument order.
func snapshot(t *testing.T, pairs ...interface{}) *chains.Snapshot {
	t.Helper()

	var lines []string
	for i := 0; i < len(pairs); i += 2 {
		lines = append(lines, "Chain "+pairs[i].(string)+" (0 references)")
		lines = append(lines, pairs[i+1].([]string)...)
	}
	return chains.ParseLines(lines)
}

func TestCompare_SameSnapshot(t *testing.T) {
	s := snapshot(t,
		"INPUT", []string{"1 2 ACCEPT all -- lo * 0.0.0.0/0 0.0.0.0/0"},
		"FORWARD", []string{},
		"DOCKER", []string{"0 0 DROP all", "0 0 DROP all"},
	)

	report := Compare(s, s)

	if report.Outcome != NoChanges {
		t.Errorf("Outcome = %s, want %s", report.Outcome, NoChanges)
	}
	if !reflect.DeepEqual(report.Unchanged, []string{"INPUT", "FORWARD", "DOCKER"}) {
		t.Errorf("Unchanged = %v", report.Unchanged)
	}
	if len(report.Changed) != 0 || report.HasAnomalies() {
		t.Errorf("Expected no changes and no anomalies, got %+v", report)
	}
}

func TestCompare_ChainAdded(t *testing.T) {
	before := snapshot(t, "A", []string{"x", "y"})
	after := snapshot(t, "A", []string{"x", "y"}, "B", []string{"z"})

	report := Compare(before, after)

	if !report.IsUnchanged("A") {
		t.Errorf("Expected chain A unchanged, got %+v", report)
	}
	verdict, ok := report.Verdict("B")
	if !ok {
		t.Fatal("Expected verdict for chain B")
	}
	if verdict.Kind != Added || !reflect.DeepEqual(verdict.Added, []string{"z"}) {
		t.Errorf("Expected B added with line z, got %+v", verdict)
	}
	if report.Outcome != PartialChanges {
		t.Errorf("Outcome = %s, want %s", report.Outcome, PartialChanges)
	}
	if len(report.Anomalies) != 1 || report.Anomalies[0].Kind != StructuralMismatch || report.Anomalies[0].Side != SideAfter {
		t.Errorf("Expected one structural mismatch on the after side, got %+v", report.Anomalies)
	}
}

func TestCompare_ChainRemoved(t *testing.T) {
	before := snapshot(t, "A", []string{"x"}, "GONE", []string{"r1", "r2"})
	after := snapshot(t, "A", []string{"x"})

	report := Compare(before, after)

	verdict, ok := report.Verdict("GONE")
	if !ok {
		t.Fatal("Expected verdict for chain GONE")
	}
	if verdict.Kind != Removed || !reflect.DeepEqual(verdict.Removed, []string{"r1", "r2"}) {
		t.Errorf("Expected GONE removed with both lines, got %+v", verdict)
	}
}

func TestCompare_EmptyChainAddedIsStillAChange(t *testing.T) {
	report := Compare(snapshot(t), snapshot(t, "NEW", []string{}))

	verdict, ok := report.Verdict("NEW")
	if !ok || verdict.Kind != Added {
		t.Fatalf("Expected NEW reported as added, got %+v", report)
	}
	if report.Outcome != AllChanged {
		t.Errorf("Outcome = %s, want %s", report.Outcome, AllChanged)
	}
}

func TestCompare_UniverseOrder(t *testing.T) {
	before := snapshot(t, "B", []string{}, "A", []string{})
	after := snapshot(t, "C", []string{}, "A", []string{}, "D", []string{})

	report := Compare(before, after)

	want := []string{"B", "A", "C", "D"}
	if !reflect.DeepEqual(report.Chains, want) {
		t.Errorf("Chains = %v, want %v", report.Chains, want)
	}
}

func TestCompare_Empty(t *testing.T) {
	report := Compare(chains.Parse(""), chains.Parse("garbage\n"))

	if report.Outcome != NoChanges {
		t.Errorf("Outcome = %s, want %s", report.Outcome, NoChanges)
	}
	if len(report.Chains) != 0 {
		t.Errorf("Expected empty universe, got %v", report.Chains)
	}
}

func TestCompare_AllChanged(t *testing.T) {
	before := snapshot(t, "A", []string{"0 0 DROP a b"}, "B", []string{"1 1 ACCEPT c d"})
	after := snapshot(t, "A", []string{"5 200 DROP a b"}, "B", []string{"2 80 ACCEPT c d"})

	report := Compare(before, after)

	if report.Outcome != AllChanged {
		t.Errorf("Outcome = %s, want %s", report.Outcome, AllChanged)
	}
	if report.HasAnomalies() {
		t.Errorf("Expected counter drift only, got anomalies %+v", report.Anomalies)
	}
}

func TestCompareChain_Identical(t *testing.T) {
	verdict := CompareChain("A", chains.RuleBlock{"x", "y"}, chains.RuleBlock{"x", "y"})

	if verdict.Kind != Unchanged || len(verdict.Anomalies) != 0 {
		t.Errorf("Expected clean unchanged verdict, got %+v", verdict)
	}
}

func TestCompareChain_CounterDrift(t *testing.T) {
	verdict := CompareChain("A", chains.RuleBlock{"0 0 DROP a b"}, chains.RuleBlock{"5 200 DROP a b"})

	if verdict.Kind != Changed {
		t.Fatalf("Kind = %s, want %s", verdict.Kind, Changed)
	}
	want := []matcher.Pair{{Before: "0 0 DROP a b", After: "5 200 DROP a b"}}
	if !reflect.DeepEqual(verdict.NearPairs, want) {
		t.Errorf("NearPairs = %v, want %v", verdict.NearPairs, want)
	}
	if verdict.ExactPairs != 0 {
		t.Errorf("ExactPairs = %d, want 0", verdict.ExactPairs)
	}
	if len(verdict.UnmatchedBefore) != 0 || len(verdict.UnmatchedAfter) != 0 || len(verdict.Anomalies) != 0 {
		t.Errorf("Expected no unresolved leftovers, got %+v", verdict)
	}
}

func TestCompareChain_RuleEdited(t *testing.T) {
	verdict := CompareChain("A", chains.RuleBlock{"0 0 DROP a b"}, chains.RuleBlock{"0 0 ACCEPT a b"})

	if verdict.Kind != Changed {
		t.Fatalf("Kind = %s, want %s", verdict.Kind, Changed)
	}
	if len(verdict.NearPairs) != 0 {
		t.Errorf("Expected no near pairs, got %v", verdict.NearPairs)
	}
	if !reflect.DeepEqual(verdict.UnmatchedBefore, []string{"0 0 DROP a b"}) {
		t.Errorf("UnmatchedBefore = %v", verdict.UnmatchedBefore)
	}
	if !reflect.DeepEqual(verdict.UnmatchedAfter, []string{"0 0 ACCEPT a b"}) {
		t.Errorf("UnmatchedAfter = %v", verdict.UnmatchedAfter)
	}

	if len(verdict.Anomalies) != 2 {
		t.Fatalf("Expected one leftover per side, got %+v", verdict.Anomalies)
	}
	for i, side := range []Side{SideBefore, SideAfter} {
		a := verdict.Anomalies[i]
		if a.Kind != UnresolvedLeftover || a.Side != side || a.Chain != "A" {
			t.Errorf("Anomaly %d = %+v, want unresolved leftover on %s", i, a, side)
		}
	}
}

func TestCompareChain_MixedPasses(t *testing.T) {
	before := chains.RuleBlock{
		" pkts bytes target prot opt in out source destination",
		"0 0 RETURN all -- * * 10.0.0.0/8 0.0.0.0/0",
		"3 120 DROP all -- * * 0.0.0.0/0 0.0.0.0/0",
		"0 0 ACCEPT tcp -- * * 0.0.0.0/0 0.0.0.0/0 tcp dpt:22",
	}
	after := chains.RuleBlock{
		" pkts bytes target prot opt in out source destination",
		"0 0 RETURN all -- * * 10.0.0.0/8 0.0.0.0/0",
		"9 360 DROP all -- * * 0.0.0.0/0 0.0.0.0/0",
		"0 0 ACCEPT tcp -- * * 0.0.0.0/0 0.0.0.0/0 tcp dpt:2222",
	}

	verdict := CompareChain("INPUT", before, after)

	if verdict.ExactPairs != 2 {
		t.Errorf("ExactPairs = %d, want 2", verdict.ExactPairs)
	}
	if len(verdict.NearPairs) != 1 || verdict.NearPairs[0].After != after[2] {
		t.Errorf("Expected DROP rule drift, got %v", verdict.NearPairs)
	}
	if !reflect.DeepEqual(verdict.UnmatchedBefore, []string{before[3]}) ||
		!reflect.DeepEqual(verdict.UnmatchedAfter, []string{after[3]}) {
		t.Errorf("Expected the edited ssh rule as leftovers, got %+v", verdict)
	}
}

func TestCompareChain_ConsistencyAnomaly(t *testing.T) {
	tests := []struct {
		name          string
		before, after chains.RuleBlock
	}{
		{"reordered", chains.RuleBlock{"a", "b"}, chains.RuleBlock{"b", "a"}},
		{"appended", chains.RuleBlock{"a"}, chains.RuleBlock{"a", "b"}},
		{"empty before", chains.RuleBlock{}, chains.RuleBlock{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := CompareChain("A", tt.before, tt.after)

			if verdict.Kind != Unchanged {
				t.Errorf("Kind = %s, want %s", verdict.Kind, Unchanged)
			}
			if len(verdict.Anomalies) != 1 || verdict.Anomalies[0].Kind != ConsistencyAnomaly {
				t.Errorf("Expected a consistency anomaly, got %+v", verdict.Anomalies)
			}
		})
	}
}

func TestCompare_ConsistencyAnomalyDoesNotAbort(t *testing.T) {
	before := snapshot(t, "A", []string{"a", "b"}, "B", []string{"0 0 DROP x"})
	after := snapshot(t, "A", []string{"b", "a"}, "B", []string{"4 4 DROP x"})

	report := Compare(before, after)

	if !report.IsUnchanged("A") {
		t.Errorf("Expected A reported unchanged")
	}
	if v, ok := report.Verdict("B"); !ok || len(v.NearPairs) != 1 {
		t.Errorf("Expected B compared after the anomaly in A, got %+v", report.Changed)
	}
	if len(report.Anomalies) != 1 || report.Anomalies[0].Kind != ConsistencyAnomaly {
		t.Errorf("Expected the anomaly in the report, got %+v", report.Anomalies)
	}
}

func TestComparator_CustomTokenRange(t *testing.T) {
	// Comparing only the target column pairs lines that differ in addresses.
	c := NewComparator(Options{CounterTokens: matcher.TokenRange{From: 2, To: 3}})

	verdict := c.CompareChain("A", chains.RuleBlock{"0 0 DROP 1.1.1.1"}, chains.RuleBlock{"0 0 DROP 2.2.2.2"})

	if len(verdict.NearPairs) != 1 || len(verdict.Anomalies) != 0 {
		t.Errorf("Expected one near pair with custom range, got %+v", verdict)
	}
}

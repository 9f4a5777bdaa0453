// Package matcher pairs rule lines of two listings of the same chain.
//
// Both passes are greedy: lines of A are visited in order and each takes the
// first still-unpaired line of B that satisfies the equality test. Pairing A
// onto B can therefore differ from pairing B onto A when several candidates
// qualify.
package matcher

import (
	"strings"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/utils"
)

// ToEnd marks an open-ended token range.
const ToEnd = -1

// TokenRange selects the whitespace-separated tokens [From, To) of a line.
// Bounds past the token count are clamped, so a short line yields a shorter
// (possibly empty) slice rather than an error.
type TokenRange struct {
	From int
	To   int
}

var (
	// FullRange compares every token.
	FullRange = TokenRange{From: 0, To: ToEnd}

	// CounterlessRange skips the leading packet and byte counters.
	CounterlessRange = TokenRange{From: 2, To: ToEnd}
)

// Tokens returns the selected tokens of line.
func (r TokenRange) Tokens(line string) []string {
	fields := strings.Fields(line)

	from := r.From
	if from < 0 {
		from = 0
	}
	if from > len(fields) {
		from = len(fields)
	}

	to := r.To
	if to == ToEnd || to > len(fields) {
		to = len(fields)
	}
	if to < from {
		return nil
	}

	return fields[from:to]
}

// Pair is one line of A matched with one line of B.
type Pair struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result is the outcome of one matching pass.
type Result struct {
	Pairs      []Pair
	LeftoversA []string
	LeftoversB []string
}

// Exact pairs lines that are equal as whole strings. Duplicates are paired
// one for one.
func Exact(a, b []string) Result {
	return matchIndexed(a, b, func(i, j int) bool {
		return a[i] == b[j]
	})
}

// Substring pairs lines whose token ranges are equal.
func Substring(a, b []string, r TokenRange) Result {
	keysA := make([][]string, len(a))
	for i, line := range a {
		keysA[i] = r.Tokens(line)
	}
	keysB := make([][]string, len(b))
	for j, line := range b {
		keysB[j] = r.Tokens(line)
	}

	return matchIndexed(a, b, func(i, j int) bool {
		return tokensEqual(keysA[i], keysB[j])
	})
}

// matchIndexed runs the greedy first-found pairing. Inputs are never
// modified; consumption of B is tracked by index.
func matchIndexed(a, b []string, equal func(i, j int) bool) Result {
	consumed := utils.NewBitSet(len(b))
	result := Result{
		LeftoversA: []string{},
		LeftoversB: []string{},
	}

	for i, lineA := range a {
		paired := false
		for j := range b {
			if consumed.Has(j) || !equal(i, j) {
				continue
			}
			consumed.Add(j)
			result.Pairs = append(result.Pairs, Pair{Before: lineA, After: b[j]})
			paired = true
			break
		}
		if !paired {
			result.LeftoversA = append(result.LeftoversA, lineA)
		}
	}

	for _, j := range consumed.Missing() {
		result.LeftoversB = append(result.LeftoversB, b[j])
	}

	return result
}

func tokensEqual(x, y []string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Balanced reports whether the result accounts for every line of a and b
// exactly once.
func (r Result) Balanced(a, b []string) bool {
	before := make([]string, len(r.Pairs))
	after := make([]string, len(r.Pairs))
	for i, p := range r.Pairs {
		before[i], after[i] = p.Before, p.After
	}
	return sameMultiset(a, append(before, r.LeftoversA...)) &&
		sameMultiset(b, append(after, r.LeftoversB...))
}

func sameMultiset(x, y []string) bool {
	if len(x) != len(y) {
		return false
	}
	count := make(map[string]int, len(x))
	for _, line := range x {
		count[line]++
	}
	for _, line := range y {
		count[line]--
		if count[line] < 0 {
			return false
		}
	}
	return true
}

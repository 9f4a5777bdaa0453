package chains

import "strings"

const chainPrefix = "Chain "

// columnHeader is the field sequence of the row printed by `iptables -L -v`
// directly under each chain header.
var columnHeader = []string{"pkts", "bytes", "target", "prot", "opt", "in", "out", "source", "destination"}

type parseOptions struct {
	dropColumnHeader bool
}

// Option adjusts parsing.
type Option func(*parseOptions)

// WithoutColumnHeader drops the "pkts bytes target ..." row instead of
// treating it as a rule line of the chain.
func WithoutColumnHeader() Option {
	return func(o *parseOptions) {
		o.dropColumnHeader = true
	}
}

// Parse splits a raw listing into chains. Input without any chain header
// yields an empty snapshot.
func Parse(text string, opts ...Option) *Snapshot {
	return ParseLines(strings.Split(text, "\n"), opts...)
}

// ParseLines is Parse for input that has already been split into lines.
func ParseLines(lines []string, opts ...Option) *Snapshot {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	snapshot := NewSnapshot()

	var (
		current string
		block   RuleBlock
		inChain bool
	)

	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")

		if name, ok := ChainName(line); ok {
			if inChain {
				snapshot.set(current, block)
			}
			current, block, inChain = name, RuleBlock{}, true
			continue
		}

		if !inChain || line == "" {
			continue
		}
		if o.dropColumnHeader && IsColumnHeader(line) {
			continue
		}
		block = append(block, line)
	}

	if inChain {
		snapshot.set(current, block)
	}

	return snapshot
}

// ChainName reports whether line is a chain header and returns the chain
// name: the token following "Chain ", split on single spaces.
func ChainName(line string) (string, bool) {
	if !strings.HasPrefix(line, chainPrefix) {
		return "", false
	}
	return strings.Split(line, " ")[1], true
}

// IsColumnHeader reports whether line is the column header row of a
// verbose listing.
func IsColumnHeader(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != len(columnHeader) {
		return false
	}
	for i, f := range fields {
		if f != columnHeader[i] {
			return false
		}
	}
	return true
}

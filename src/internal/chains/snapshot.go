package chains

import "github.com/merretbuurman/iptables-stats-comparison/src/internal/hashing"

// RuleBlock holds the lines of one chain in source order.
type RuleBlock []string

// Equal reports whether both blocks hold the same lines in the same order.
func (b RuleBlock) Equal(other RuleBlock) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Snapshot maps chain names to their rule blocks, remembering the order
// in which chain names were first seen.
type Snapshot struct {
	names  []string
	blocks map[string]RuleBlock
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{blocks: make(map[string]RuleBlock)}
}

// set stores block under name. A repeated name replaces the earlier block
// but keeps its original position.
func (s *Snapshot) set(name string, block RuleBlock) {
	if _, exists := s.blocks[name]; !exists {
		s.names = append(s.names, name)
	}
	s.blocks[name] = block
}

// Names returns chain names in first-seen order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Block returns the lines of the named chain.
func (s *Snapshot) Block(name string) (RuleBlock, bool) {
	if s == nil {
		return nil, false
	}
	block, ok := s.blocks[name]
	if !ok {
		return nil, false
	}
	out := make(RuleBlock, len(block))
	copy(out, block)
	return out, true
}

// Has reports whether the snapshot contains the named chain.
func (s *Snapshot) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.blocks[name]
	return ok
}

// Len returns the number of chains.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Equal reports whether both snapshots contain the same chains in the same
// order with identical blocks.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, name := range s.Names() {
		if other.names[i] != name {
			return false
		}
		if !s.blocks[name].Equal(other.blocks[name]) {
			return false
		}
	}
	return true
}

// Map returns a copy of the chain → lines mapping. Chains with no lines map
// to an empty, non-nil slice.
func (s *Snapshot) Map() map[string][]string {
	out := make(map[string][]string, s.Len())
	for _, name := range s.Names() {
		lines := make([]string, len(s.blocks[name]))
		copy(lines, s.blocks[name])
		out[name] = lines
	}
	return out
}

// NamedBlock is a chain name with its lines.
type NamedBlock struct {
	Chain string   `json:"chain"`
	Lines []string `json:"lines"`
	// Checksum is the MD5 of the lines; equal blocks have equal checksums.
	Checksum string `json:"checksum"`
}

// Ordered returns every chain with its lines in first-seen order.
func (s *Snapshot) Ordered() []NamedBlock {
	out := make([]NamedBlock, 0, s.Len())
	for _, name := range s.Names() {
		lines := make([]string, len(s.blocks[name]))
		copy(lines, s.blocks[name])
		out = append(out, NamedBlock{Chain: name, Lines: lines, Checksum: hashing.LinesChecksum(lines)})
	}
	return out
}

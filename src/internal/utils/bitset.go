package utils

import "math/bits"

// BitSet is a fixed-size set of non-negative indexes.
type BitSet interface {
	Has(pos int) bool
	Add(pos int) bool
	Remove(pos int) bool
	Len() int
	Count() int
	Clear()
	// Missing returns the positions that are not set, in ascending order.
	Missing() []int
}

type bitSet struct {
	len   int
	words []uint64
}

func NewBitSet(length int) BitSet {
	if length < 0 {
		panic("BitSet length must be non-negative")
	}
	return &bitSet{
		len:   length,
		words: make([]uint64, (length+63)/64),
	}
}

// Has checks whether the bit at the given position is set.
func (b *bitSet) Has(pos int) bool {
	if pos < 0 || pos >= b.len {
		return false
	}
	return b.words[pos/64]&(1<<(uint(pos)%64)) != 0
}

// Add sets the bit at the given position. Returns true if the bit was already set.
func (b *bitSet) Add(pos int) bool {
	if pos < 0 || pos >= b.len {
		return false
	}
	mask := uint64(1) << (uint(pos) % 64)
	alreadySet := b.words[pos/64]&mask != 0
	b.words[pos/64] |= mask
	return alreadySet
}

// Remove clears the bit at the given position. Returns true if the bit was previously set.
func (b *bitSet) Remove(pos int) bool {
	if pos < 0 || pos >= b.len {
		return false
	}
	mask := uint64(1) << (uint(pos) % 64)
	previouslySet := b.words[pos/64]&mask != 0
	b.words[pos/64] &^= mask
	return previouslySet
}

// Len returns the length of the bit set.
func (b *bitSet) Len() int {
	return b.len
}

// Count returns the number of set bits.
func (b *bitSet) Count() int {
	count := 0
	for _, word := range b.words {
		count += bits.OnesCount64(word)
	}
	return count
}

// Clear resets all bits in the bit set.
func (b *bitSet) Clear() {
	for i := range b.words {
		b.words[i] = 0
	}
}

func (b *bitSet) Missing() []int {
	out := make([]int, 0, b.len-b.Count())
	for pos := 0; pos < b.len; pos++ {
		if !b.Has(pos) {
			out = append(out, pos)
		}
	}
	return out
}

package arena

import "strings"

const wordBits = 64

// BitSet is a fixed-size bitmap allocated from an arena's word slab, for
// small flag sets where a map would be overkill. No other package in this
// module uses it.
type BitSet struct {
	words []uint64
	bits  int
}

// NewBitSet allocates ceil(maxBits/64) words from the slab, per spec §4.1.
func NewBitSet(s *Slab[uint64], maxBits int) *BitSet {
	n := (maxBits + wordBits - 1) / wordBits
	return &BitSet{words: s.AllocSlice(n), bits: maxBits}
}

func (b *BitSet) SetBit(i int) {
	b.words[i/wordBits] |= 1 << uint(i%wordBits)
}

func (b *BitSet) ClearBit(i int) {
	b.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

func (b *BitSet) HasBit(i int) bool {
	return b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

func (b *BitSet) Len() int { return b.bits }

// String renders the set as big-endian grouped bytes (highest word first,
// highest byte of each word first) with leading zero bytes suppressed only
// on the highest word, matching the canonical oxc BitSet Display contract
// consulted from original_source/crates/oxc_allocator/src/bitset.rs: other
// words are printed zero-padded to their full width so the grouping stays
// unambiguous and round-trips.
func (b *BitSet) String() string {
	if len(b.words) == 0 {
		return "0"
	}
	var sb strings.Builder
	started := false
	for wi := len(b.words) - 1; wi >= 0; wi-- {
		w := b.words[wi]
		for shift := 56; shift >= 0; shift -= 8 {
			byteVal := byte(w >> uint(shift))
			if !started {
				if byteVal == 0 && wi == len(b.words)-1 {
					continue
				}
				started = true
			}
			sb.WriteString(hexByte(byteVal))
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

const hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xf]})
}

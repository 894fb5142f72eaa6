// Package permutation rearranges the bits of a byte sequence according to a table.
//
// A table entry selects one input bit. Four indexing rules decide where counting starts
// (the most significant or the least significant end) and whether the first bit is
// numbered 0 or 1. Output bit i is the input bit selected by table[i].
//
// For rules counting from the left, the input is read as a number: counting starts at the
// most significant set bit of input[0], shifted left by a caller-supplied count of leading
// zero bits. Permute passes the leading zeros of input[0] so the full 8*len(input) bits are
// addressed, which is what fixed-width block ciphers need.
package permutation

import (
	"fmt"
	"math/bits"
)

// Rule selects the bit numbering used to interpret table entries.
type Rule int

const (
	// FromLeftFirstIsZero counts from the most significant bit, starting at 0.
	FromLeftFirstIsZero Rule = iota
	// FromLeftFirstIsOne counts from the most significant bit, starting at 1.
	FromLeftFirstIsOne
	// FromRightFirstIsZero counts from the least significant bit, starting at 0.
	FromRightFirstIsZero
	// FromRightFirstIsOne counts from the least significant bit, starting at 1.
	FromRightFirstIsOne
)

func (r Rule) fromLeft() bool {
	return r == FromLeftFirstIsZero || r == FromLeftFirstIsOne
}

func (r Rule) firstIsOne() bool {
	return r == FromLeftFirstIsOne || r == FromRightFirstIsOne
}

func (r Rule) String() string {
	switch r {
	case FromLeftFirstIsZero:
		return "from-left-first-is-zero"
	case FromLeftFirstIsOne:
		return "from-left-first-is-one"
	case FromRightFirstIsZero:
		return "from-right-first-is-zero"
	case FromRightFirstIsOne:
		return "from-right-first-is-one"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// LeadingZeros returns the number of leading zero bits in b, 8 for zero.
func LeadingZeros(b byte) uint8 {
	return uint8(bits.LeadingZeros8(b))
}

// Permute rearranges input treating it as exactly 8*len(input) bits wide.
func Permute(input []byte, table []int, rule Rule) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	return Rearrange(input, LeadingZeros(input[0]), table, rule)
}

// Rearrange builds a new bit string of len(table) bits where bit i is the input bit
// addressed by table[i] under rule. The result occupies ceil(len(table)/8) bytes: when
// len(table) is not a multiple of 8, the leftover bits sit right-aligned in the first byte
// and every following byte is filled from its most significant bit.
//
// leadingZeros widens the left-counted view of input[0] by that many zero bits above its
// most significant set bit.
func Rearrange(input []byte, leadingZeros uint8, table []int, rule Rule) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	if rule < FromLeftFirstIsZero || rule > FromRightFirstIsOne {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(rule))
	}

	leading := leadingPosition(input, leadingZeros)
	addressable := 8*(len(input)-1) + leading + 1

	if !rule.fromLeft() {
		addressable = min(addressable, 8*len(input))
	}

	first := len(table) % 8
	out := make([]byte, (len(table)+7)/8)

	for i, entry := range table {
		index := entry
		if rule.firstIsOne() {
			index--
		}

		if index < 0 || index >= addressable {
			return nil, fmt.Errorf("%w: table[%d] = %d with %d addressable bits (%s)",
				ErrIndexOutOfRange, i, entry, addressable, rule)
		}

		var bit byte
		if rule.fromLeft() {
			bit = leftBit(input, leading, index)
		} else {
			bit = rightBit(input, index)
		}

		if i < first {
			out[0] |= bit << (first - i - 1)

			continue
		}

		offset := i - first
		pos := offset / 8

		if first > 0 {
			pos++
		}

		out[pos] |= bit << (7 - offset%8)
	}

	return out, nil
}

// leadingPosition is the left-counted index of the least significant bit of input[0].
func leadingPosition(input []byte, leadingZeros uint8) int {
	pos := bits.Len8(input[0]) - 1 + int(leadingZeros)

	// A lone zero byte still contributes one addressable bit.
	if len(input) == 1 && input[0] == 0 {
		pos++
	}

	return pos
}

func leftBit(input []byte, leading, index int) byte {
	if index <= leading {
		shift := leading - index
		if shift >= 8 {
			return 0
		}

		return (input[0] >> shift) & 1
	}

	rest := index - leading - 1
	shift := 7 - rest%8

	return (input[rest/8+1] >> shift) & 1
}

func rightBit(input []byte, index int) byte {
	shift := index % 8

	return (input[len(input)-1-index/8] >> shift) & 1
}

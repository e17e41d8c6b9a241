package swiss

import "math/bits"

// bitmask32 is a 32-bit mask over one group's slots, one bit per lane.
// Consumers drain it by reading the trailing-zero count for the next
// candidate, then clearing the lowest set bit, yielding candidates in
// ascending intra-group order.
type bitmask32 uint32

func (b bitmask32) first() int {
	return bits.TrailingZeros32(uint32(b))
}

func (b bitmask32) next() bitmask32 {
	return b & (b - 1)
}

const (
	lsbWord       = 0x0101010101010101 // one 1 bit per byte lane, low bit
	msbWord       = 0x8080808080808080 // one 1 bit per byte lane, high bit
	wordsPerGroup = groupSize / 8
)

// words reinterprets a group's 32 control bytes as four 8-byte lanes for
// the SWAR (SIMD-within-a-register) probe below: a portable word-at-a-
// time emulation of a 256-bit vector compare. Group size, fingerprint
// encoding, and match semantics are unchanged; only the instruction
// sequence is.
func words(ctrl *[groupSize]int8) [wordsPerGroup]uint64 {
	var w [wordsPerGroup]uint64
	for i := range w {
		var word uint64
		for b := 0; b < 8; b++ {
			word |= uint64(uint8(ctrl[i*8+b])) << (8 * b)
		}
		w[i] = word
	}
	return w
}

// hasZeroByte marks every zero byte of word with its high bit. Adding
// 0x7f to each byte's low 7 bits carries into the high bit unless those
// bits are all zero, and no carry crosses into the next byte; or-ing word
// back in sets the high bit of every byte that had its own high bit set.
// The high bits left clear are exactly the zero bytes. Unlike the
// subtract-borrow form ((word - lsbWord) &^ word), a borrow out of one
// zero byte cannot mark a 0x01 byte above it, so the result is exact.
func hasZeroByte(word uint64) uint64 {
	const low7 = ^uint64(msbWord)
	return ^(((word & low7) + low7) | word) & msbWord
}

// byteMaskFromWord turns the per-lane high-bit marks hasZeroByte (or a
// direct msb isolation) produced into a packed one-bit-per-lane mask
// using an 8-iteration scan. A loop, rather than a multiply-gather
// trick, is used deliberately for its obvious correctness.
func byteMaskFromWord(marked uint64) uint32 {
	var m uint32
	for b := 0; b < 8; b++ {
		if marked&(uint64(0x80)<<(8*b)) != 0 {
			m |= 1 << b
		}
	}
	return m
}

// match returns a bitmask of lanes in the group whose control byte
// equals fp.
func match(ctrl *[groupSize]int8, fp int8) bitmask32 {
	target := lsbWord * uint64(uint8(fp))
	w := words(ctrl)

	var mask bitmask32
	for i, word := range w {
		marked := hasZeroByte(word ^ target)
		if marked != 0 {
			mask |= bitmask32(byteMaskFromWord(marked)) << (8 * i)
		}
	}
	return mask
}

// empties returns a bitmask of lanes whose control byte is EMPTY (-1).
// EMPTY is the only value with its sign bit set, so isolating each
// byte's high bit is sufficient — no zero-byte test is needed here,
// unlike match.
func empties(ctrl *[groupSize]int8) bitmask32 {
	w := words(ctrl)

	var mask bitmask32
	for i, word := range w {
		marked := word & msbWord
		if marked != 0 {
			mask |= bitmask32(byteMaskFromWord(marked)) << (8 * i)
		}
	}
	return mask
}

// nonEmpties is the complement of empties, restricted to the group's
// groupSize lanes. Used by iteration and rehash.
func nonEmpties(ctrl *[groupSize]int8) bitmask32 {
	return bitmask32(^uint32(empties(ctrl)))
}

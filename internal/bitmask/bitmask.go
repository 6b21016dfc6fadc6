// Package bitmask contains width-limited helpers for (key, mask) patterns.
package bitmask

import "math/bits"

// MaxWidth is the widest supported key, in bits.
// MAC addresses (48) and IPv4 addresses (32) both fit comfortably.
const MaxWidth = 64

// WidthMask returns a mask with the low w bits set.
// w must be in [1..MaxWidth]; values outside panic (programming error).
func WidthMask(w int) uint64 {
	if w < 1 || w > MaxWidth {
		panic("bitmask: width out of range")
	}
	if w == MaxWidth {
		return ^uint64(0)
	}
	return (uint64(1) << uint(w)) - 1
}

// InWidth reports whether v has no bits set above the low w bits.
func InWidth(v uint64, w int) bool {
	return v&^WidthMask(w) == 0
}

// PrefixMask returns the mask fixing the plen most-significant bits of a
// w-bit key. plen == 0 yields the empty mask (matches everything);
// plen == w yields the all-ones mask (exact match).
func PrefixMask(w, plen int) uint64 {
	if plen < 0 || plen > w {
		panic("bitmask: prefix length out of range")
	}
	if plen == 0 {
		return 0
	}
	return WidthMask(w) &^ WidthMask(w - plen)
}

// PrefixLen reports whether mask is a contiguous MSB-aligned run within a
// w-bit key, and if so, its length. The empty mask is the zero-length
// prefix; the all-ones mask is the full-width prefix.
//
// A mask is contiguous iff its complement (within width) is of the form
// 2^k - 1, i.e. (m+1) & m == 0 for the inverted value.
func PrefixLen(w int, mask uint64) (plen int, ok bool) {
	if !InWidth(mask, w) {
		return 0, false
	}
	inv := ^mask & WidthMask(w)
	if (inv+1)&inv != 0 {
		return 0, false
	}
	return bits.OnesCount64(mask), true
}

// Specificity returns the number of fixed bits in mask. For contiguous
// prefix masks this equals the prefix length, which is what makes
// longest-prefix-match a special case of the general priority rule.
func Specificity(mask uint64) int {
	return bits.OnesCount64(mask)
}

// Overlaps reports whether two (key, mask) patterns can both match some
// query key. The patterns intersect iff they agree on every bit position
// fixed by both masks.
func Overlaps(k1, m1, k2, m2 uint64) bool {
	both := m1 & m2
	return (k1^k2)&both == 0
}

// Matches reports whether query matches the (key, mask) pattern.
func Matches(query, key, mask uint64) bool {
	return (query^key)&mask == 0
}

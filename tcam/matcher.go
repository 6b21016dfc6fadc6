package tcam

import (
	"fmt"

	"github.com/IvanBrykalov/tcam/internal/bitmask"
)

// lookup scans every valid entry for the best match. An entry matches
// iff the query agrees with the entry key on all fixed mask bits.
//
// Priority: higher specificity (more fixed mask bits) wins; for prefix
// entries that is exactly longest-prefix-match. Among equal-specificity
// matches the lowest index wins, mirroring the fixed scan order of a
// hardware priority encoder. Result.Ambiguous is set when a second
// equal-specificity match with a distinct payload exists; insert-time
// conflict checks keep that from happening in a valid configuration.
//
// Cost is O(N); the cache tier amortizes repeat lookups of hot keys.
func (s *entryStore[V]) lookup(key uint64, eq func(a, b V) bool) Result[V] {
	res := miss[V]()
	bestSpec := -1
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.valid || !bitmask.Matches(key, sl.e.Key, sl.e.Mask) {
			continue
		}
		spec := sl.e.Specificity()
		switch {
		case spec > bestSpec:
			res = Result[V]{Found: true, Index: i, Payload: sl.e.Payload}
			bestSpec = spec
		case spec == bestSpec:
			// Same tier, higher index: the earlier entry keeps winning,
			// but flag the tie unless payloads are known equal.
			if eq == nil || !eq(res.Payload, sl.e.Payload) {
				res.Ambiguous = true
			}
		}
	}
	return res
}

// checkConflict rejects an insert that would create an unresolved tie:
// an existing entry at a different index with equal specificity whose
// match set intersects the new pattern, and whose payload is not known
// to be equal. Overwriting the same index never conflicts with itself.
func (s *entryStore[V]) checkConflict(index int, e Entry[V], eq func(a, b V) bool) error {
	spec := e.Specificity()
	for i := range s.slots {
		sl := &s.slots[i]
		if i == index || !sl.valid {
			continue
		}
		if sl.e.Specificity() != spec {
			continue
		}
		if !bitmask.Overlaps(e.Key, e.Mask, sl.e.Key, sl.e.Mask) {
			continue
		}
		if eq != nil && eq(e.Payload, sl.e.Payload) {
			continue
		}
		return fmt.Errorf("%w: entry at index %d overlaps with equal specificity", ErrConflictingPriority, i)
	}
	return nil
}

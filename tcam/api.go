package tcam

// Table is a fixed-capacity masked priority-match address table with an
// optional cache tier in front of it. All methods are safe for
// concurrent use by multiple goroutines; internally every operation is
// serialized onto the single logical table resource, so a query issued
// after a configuration call always observes its effects.
//
// Lookups cost O(N) on a cache miss and O(C) on a hit, with C small.
type Table[V any] interface {
	// Insert stores an entry at an explicit index, overwriting any prior
	// occupant. The key is canonicalized to key&mask (bits outside the
	// mask are don't-care). Fails with ErrIndexOutOfRange,
	// ErrInvalidMask, or ErrConflictingPriority.
	Insert(index int, key, mask uint64, kind Kind, payload V) error

	// Learn is the auto-allocating insert used by address-learning
	// callers. An existing entry with the same (key, mask) pattern is
	// overwritten in place; otherwise a free index is allocated.
	// Fails with ErrTableFull when no free index exists.
	Learn(key, mask uint64, kind Kind, payload V) (index int, err error)

	// Delete marks the slot empty. Deleting an already-empty slot is a
	// no-op. Fails with ErrIndexOutOfRange.
	Delete(index int) error

	// ClearAll invalidates every slot; used between configuration epochs.
	ClearAll()

	// Flush removes every entry for which keep returns false, in one
	// pass, and reports how many were removed. Callers use it to drop
	// ephemeral state (e.g. learned ARP entries) while keeping static
	// configuration.
	Flush(keep func(index int, e Entry[V]) bool) int

	// Query looks up the best-matching entry for key. The cache tier is
	// consulted first; a miss falls back to the full scan and primes the
	// cache. Results are identical with the cache enabled or disabled.
	Query(key uint64) Result[V]

	// ScrubTick performs at most one step of the background table scan,
	// deleting the inspected entry when aged returns true. It reports
	// whether this tick completed a full pass. Capacity consecutive
	// ticks visit every slot exactly once.
	ScrubTick(aged func(e Entry[V]) bool) (done bool)

	// ScrubState reports the scanner's current state.
	ScrubState() ScrubState

	// Get returns the entry at index, if occupied.
	Get(index int) (Entry[V], bool)

	// Range calls fn for each occupied slot in ascending index order
	// until fn returns false.
	Range(fn func(index int, e Entry[V]) bool)

	// Len returns the number of occupied slots.
	Len() int

	// Capacity returns the number of slots (N).
	Capacity() int

	// Stats returns a snapshot of the engine counters.
	Stats() Stats
}

// Stats is a point-in-time snapshot of engine counters.
// Hits and Misses count cache-tier outcomes; with the cache disabled
// every query counts as a miss.
type Stats struct {
	Queries      uint64
	Hits         uint64
	Misses       uint64
	Evictions    uint64 // cache lines displaced or invalidated
	ScrubDeleted uint64 // table entries removed by the scrubber
	Entries      int    // current occupancy
}

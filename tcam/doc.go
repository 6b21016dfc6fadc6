// Package tcam emulates a ternary content-addressable memory: a
// fixed-capacity table of (key, mask) patterns with deterministic
// priority matching, a small fully-associative cache tier with
// pluggable replacement policies, and an incremental background scrub
// scanner for entry aging. It backs the address-lookup functions of a
// software switch/router: MAC learning tables, ARP caches, and
// longest-prefix IP routing tables.
//
// Design
//
//   - Storage: a flat slot array of construction-time capacity N,
//     index-addressed with no pointers. Free indices are tracked on a
//     stack for O(1) allocation by Learn. Entries are only ever created
//     by insert and destroyed by delete; a changed pattern is a
//     delete+insert.
//
//   - Matching: a query matches an entry iff it agrees with the entry
//     key on every fixed mask bit. Priority is the number of fixed bits
//     (for prefix entries, the prefix length - standard longest-prefix
//     match), with the lowest index breaking ties the way a hardware
//     priority encoder's fixed scan order does.
//
//   - Cache tier: C fully-associative lines map hot query keys to their
//     winning entry index. Lines are weak references; every table
//     mutation cascades invalidation into the cache before the next
//     lookup, and hits re-read the backing entry, so a stale hit is
//     impossible. The replacement policy is pluggable via the policy
//     package: tree pseudo-LRU (default) and 2-bit NRU both satisfy the
//     same contract and differ only in victim selection.
//
//   - Scrub: an Idle/Scanning/Paused state machine inspects one slot
//     per tick, yielding between ticks so foreground queries are never
//     starved. A configuration write mid-scan pauses the scan; it
//     resumes at the saved cursor.
//
//   - Concurrency: one mutex guards the whole engine. The store and the
//     cache share index-based cross-references, so finer-grained
//     locking cannot be safe; the single-writer discipline also gives
//     callers sequential consistency between configuration and queries.
//
//   - Errors: configuration operations return typed sentinel errors
//     (ErrIndexOutOfRange, ErrInvalidMask, ErrTableFull,
//     ErrConflictingPriority); nothing panics at runtime.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; metrics/prom exports Prometheus
//     counters.
//
// Basic usage (exact-match table, e.g. an ARP cache)
//
//	t := tcam.New[string](tcam.Options[string]{
//	    Width:     32, // IPv4
//	    Capacity:  64,
//	    CacheSize: 8,
//	})
//	_ = t.Insert(0, 0x0A000001, 0xFFFFFFFF, tcam.KindExact, "aa:bb:cc:00:00:01")
//	if r := t.Query(0x0A000001); r.Found {
//	    _ = r.Payload // "aa:bb:cc:00:00:01"
//	}
//
// Longest-prefix routing
//
//	t := tcam.New[string](tcam.Options[string]{
//	    Width: 32, Capacity: 16, CacheSize: 4, Mode: tcam.ModePrefix,
//	})
//	_ = t.Insert(0, 0x0A000000, 0xFF000000, tcam.KindPrefix, "uplink")   // 10/8
//	_ = t.Insert(1, 0x0A010000, 0xFFFF0000, tcam.KindPrefix, "lab")      // 10.1/16
//	r := t.Query(0x0A0100FE) // matches both; /16 wins
//
// Aging scrub (MAC table garbage collection)
//
//	for i := 0; i < t.Capacity(); i++ {
//	    t.ScrubTick(func(e tcam.Entry[Port]) bool {
//	        return time.Since(e.Payload.LastSeen) > 5*time.Minute
//	    })
//	}
//
// Using the NRU-2 replacement policy
//
//	t := tcam.New[int](tcam.Options[int]{
//	    Width: 48, Capacity: 1024, CacheSize: 8,
//	    Policy: nru2.New(),
//	})
//
// See options.go for all Options fields and the policy package for the
// Replacer contract used to implement custom replacement strategies.
package tcam

// Package policy defines the replacement-policy contract for the cache
// tier. Policies decide which line to overwrite when the cache is full;
// they never affect lookup results.
package policy

// Replacer tracks access recency for a fixed set of cache lines and
// selects replacement victims. Lines are addressed by index [0..lines).
//
// Concurrency: all calls happen under the engine lock; implementations
// need no internal synchronization.
//
// Semantics:
//   - Touch marks a line as just used (on a cache hit or a fill).
//   - Victim returns the line to overwrite when the cache is full.
//     Choosing a victim does not count as a use of that line; the
//     engine calls Touch after filling it.
//   - Evict is a notification that a line was dropped by invalidation.
//     The freed line should become a preferred victim so the slot is
//     reused promptly. Evicting an already-cold line is a no-op.
//
// Replacers differ only in candidate selection, never in correctness:
// the engine guarantees identical query results for any Replacer.
type Replacer interface {
	Touch(line int)
	Victim() int
	Evict(line int)
}

// Policy is a factory that creates a Replacer sized for a particular
// cache tier.
type Policy interface {
	New(lines int) Replacer
}

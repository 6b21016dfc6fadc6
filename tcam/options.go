package tcam

import "github.com/IvanBrykalov/tcam/policy"

// MatchMode selects which entry kinds (and therefore which masks) a
// table accepts. The mode is fixed at construction.
type MatchMode uint8

const (
	// ModeExact - every entry is a full-key match (mask all-ones).
	// MAC address tables and ARP caches use this mode.
	ModeExact MatchMode = iota
	// ModeArbitrary - any mask is legal; exact and prefix entries may be
	// mixed with free-form wildcard patterns.
	ModeArbitrary
	// ModePrefix - masks must be contiguous MSB-aligned runs; lookups
	// follow longest-prefix-match semantics. IP routing tables use this
	// mode. Exact entries are accepted as full-width prefixes.
	ModePrefix
)

// EvictReason explains why a cache line or table entry was removed.
type EvictReason int

const (
	// EvictReplace - a cache line was overwritten by the replacement policy.
	EvictReplace EvictReason = iota
	// EvictInvalidate - a cache line was dropped because the table entry
	// it referenced was deleted or overwritten.
	EvictInvalidate
	// EvictAged - a table entry was removed by the scrub scanner.
	EvictAged
)

// Metrics exposes engine-level observability hooks.
// Hit/Miss count cache-tier outcomes per query; Evict counts removals
// by reason; Size tracks table occupancy.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Options configures a table. Zero values are safe where noted;
// defaults are applied in New():
//   - nil Policy  => pseudo-LRU
//   - nil Metrics => NoopMetrics
//   - CacheSize 0 => no cache tier (full scan on every query)
type Options[V any] struct {
	// Width is the key width in bits, 1..64. Required.
	Width int

	// Capacity is the number of table slots (N), 1..65536. Required.
	Capacity int

	// CacheSize is the number of fully-associative cache lines (C).
	// Zero disables the cache tier; results are identical either way.
	CacheSize int

	// Mode selects the matching semantics. Default is ModeExact.
	Mode MatchMode

	// Policy is the cache replacement policy (PLRU/NRU-2/...);
	// nil => PLRU. Ignored when CacheSize is zero.
	Policy policy.Policy

	// PayloadEqual lets the conflict check treat entries with equal
	// payloads as non-conflicting (e.g. two wildcard patterns that
	// forward to the same port). Nil => payloads are assumed distinct,
	// which is the conservative choice.
	PayloadEqual func(a, b V) bool

	// OnDelete is called for every entry removed by Delete, ClearAll,
	// Flush, or the scrub scanner. Called under the engine lock; keep
	// it lightweight.
	OnDelete func(index int, e Entry[V])

	// Metrics receives Hit/Miss/Evict/Size signals.
	Metrics Metrics
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when no
// observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()              {}
func (NoopMetrics) Miss()             {}
func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Size(entries int)  {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

package tcam

import "github.com/IvanBrykalov/tcam/internal/bitmask"

// Kind distinguishes the matching semantics of a single entry.
type Kind uint8

const (
	// KindExact matches only the full key (mask all-ones).
	KindExact Kind = iota
	// KindArbitrary matches under any fixed/wildcard bit pattern.
	KindArbitrary
	// KindPrefix matches a contiguous MSB-aligned prefix (CIDR style).
	KindPrefix
)

// String returns a short name for logs and test failures.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindArbitrary:
		return "arbitrary"
	case KindPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Entry is one occupied slot of the table: a (key, mask) pattern, its
// kind, and an opaque payload. Entries are immutable once stored; a
// changed key or mask is a delete+insert.
type Entry[V any] struct {
	Key     uint64
	Mask    uint64
	Kind    Kind
	Payload V
}

// Specificity is the number of fixed bits in the mask. For prefix
// entries it equals the prefix length; exact entries are maximally
// specific. Higher specificity wins a lookup.
func (e Entry[V]) Specificity() int {
	return bitmask.Specificity(e.Mask)
}

// Result is the outcome of a single lookup.
type Result[V any] struct {
	// Found reports whether any entry matched.
	Found bool
	// Index is the winning entry's table index, or -1 when not found.
	Index int
	// Payload is the winning entry's payload (zero value when not found).
	Payload V
	// Ambiguous reports an unresolved same-specificity tie. Insert-time
	// conflict checks make this unreachable in a valid configuration;
	// seeing it set indicates a table-population bug, not a legitimate
	// outcome.
	Ambiguous bool
}

// miss is the canonical not-found result.
func miss[V any]() Result[V] {
	return Result[V]{Found: false, Index: -1}
}

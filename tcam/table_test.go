package tcam

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IvanBrykalov/tcam/policy"
	"github.com/IvanBrykalov/tcam/policy/nru2"
	"github.com/IvanBrykalov/tcam/policy/plru"
)

// Invalidation safety: deleting an entry that a cache line references
// must take effect on the very next query.
func TestTable_CacheInvalidationOnDelete(t *testing.T) {
	t.Parallel()

	tb := New[string](Options[string]{Width: 8, Capacity: 4, CacheSize: 2})
	if err := tb.Insert(0, 0x0A, 0xFF, KindExact, "A"); err != nil {
		t.Fatal(err)
	}

	// Prime the cache, then verify the fast path is being taken.
	tb.Query(0x0A)
	tb.Query(0x0A)
	if st := tb.Stats(); st.Hits == 0 {
		t.Fatalf("expected a cache hit before delete, stats=%+v", st)
	}

	if err := tb.Delete(0); err != nil {
		t.Fatal(err)
	}
	if r := tb.Query(0x0A); r.Found {
		t.Fatalf("stale cache hit after delete: %+v", r)
	}
}

// Overwriting an entry invalidates lines referencing its index: queries
// must see the new pattern, not the cached winner.
func TestTable_CacheInvalidationOnOverwrite(t *testing.T) {
	t.Parallel()

	tb := New[string](Options[string]{Width: 8, Capacity: 4, CacheSize: 2})
	_ = tb.Insert(0, 0x0A, 0xFF, KindExact, "A")
	tb.Query(0x0A) // prime
	tb.Query(0x0A)

	// Repoint index 0 at a different key.
	if err := tb.Insert(0, 0x0B, 0xFF, KindExact, "B"); err != nil {
		t.Fatal(err)
	}
	if r := tb.Query(0x0A); r.Found {
		t.Fatalf("cached key must miss after overwrite: %+v", r)
	}
	if r := tb.Query(0x0B); !r.Found || r.Payload != "B" {
		t.Fatalf("Query(0x0B) = %+v", r)
	}
}

// Inserting a more specific entry must displace cached results for keys
// it now wins, even though the previously cached entry is untouched.
func TestTable_CacheInvalidationOnBetterInsert(t *testing.T) {
	t.Parallel()

	tb := New[string](Options[string]{Width: 32, Capacity: 4, CacheSize: 2, Mode: ModePrefix})
	_ = tb.Insert(0, 0x0A000000, 0xFF000000, KindPrefix, "wide") // 10/8

	key := uint64(0x0A010203)
	tb.Query(key) // cache: key -> index 0
	tb.Query(key)

	// A /24 covering the cached key now outranks the /8.
	if err := tb.Insert(1, 0x0A010200, 0xFFFFFF00, KindPrefix, "narrow"); err != nil {
		t.Fatal(err)
	}
	if r := tb.Query(key); r.Index != 1 || r.Payload != "narrow" {
		t.Fatalf("cached winner survived a better insert: %+v", r)
	}
}

// replay drives one deterministic mixed workload against a table and
// collects every query result.
func replay(tb Table[string]) []Result[string] {
	var out []Result[string]
	q := func(k uint64) { out = append(out, tb.Query(k)) }

	_ = tb.Insert(0, 0x0A000000, 0xFF000000, KindPrefix, "r8")
	_ = tb.Insert(1, 0x0A010000, 0xFFFF0000, KindPrefix, "r16")
	q(0x0A010101)
	q(0x0A010101) // repeat: cache hit path
	q(0x0AFF0001)
	_ = tb.Insert(2, 0x0A010100, 0xFFFFFF00, KindPrefix, "r24")
	q(0x0A010101) // winner changed to r24
	_ = tb.Delete(2)
	q(0x0A010101) // back to r16
	for i := 0; i < 8; i++ { // churn past the cache size
		q(uint64(0x0B000000 + i))
	}
	q(0x0A010101)
	_, _ = tb.Learn(0x0C000000, 0xFF000000, KindPrefix, "r8c")
	q(0x0C123456)
	tb.Flush(func(_ int, e Entry[string]) bool { return e.Payload != "r8c" })
	q(0x0C123456)
	q(0x0A010101)
	tb.ClearAll()
	q(0x0A010101)
	return out
}

// Cache transparency: the same workload yields identical results with
// no cache, a PLRU cache, and an NRU-2 cache.
func TestTable_CacheTransparency(t *testing.T) {
	t.Parallel()

	mk := func(size int, pol policy.Policy) Table[string] {
		return New[string](Options[string]{
			Width:     32,
			Capacity:  8,
			CacheSize: size,
			Policy:    pol,
			Mode:      ModePrefix,
		})
	}

	baseline := replay(mk(0, nil))
	withPLRU := replay(mk(4, plru.New()))
	withNRU := replay(mk(4, nru2.New()))

	if diff := cmp.Diff(baseline, withPLRU); diff != "" {
		t.Errorf("PLRU cache changed results (-nocache +plru):\n%s", diff)
	}
	if diff := cmp.Diff(baseline, withNRU); diff != "" {
		t.Errorf("NRU-2 cache changed results (-nocache +nru2):\n%s", diff)
	}
}

// Determinism: repeating the same sequence yields the same results.
func TestTable_Deterministic(t *testing.T) {
	t.Parallel()

	mk := func() Table[string] {
		return New[string](Options[string]{Width: 32, Capacity: 8, CacheSize: 4, Mode: ModePrefix})
	}
	a := replay(mk())
	b := replay(mk())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same sequence, different results:\n%s", diff)
	}
}

// A tiny cache under a scanning workload keeps recycling lines; results
// must stay correct while evictions pile up.
func TestTable_CacheChurn(t *testing.T) {
	t.Parallel()

	tb := New[int](Options[int]{Width: 16, Capacity: 32, CacheSize: 4})
	for i := 0; i < 32; i++ {
		if err := tb.Insert(i, uint64(i), 0xFFFF, KindExact, i); err != nil {
			t.Fatal(err)
		}
	}
	for pass := 0; pass < 3; pass++ {
		for i := 0; i < 32; i++ {
			r := tb.Query(uint64(i))
			if !r.Found || r.Payload != i {
				t.Fatalf("pass %d: Query(%d) = %+v", pass, i, r)
			}
		}
	}
	if st := tb.Stats(); st.Evictions == 0 {
		t.Fatalf("expected replacement evictions under churn, stats=%+v", st)
	}
}

// Stats track queries, hit/miss split, and occupancy.
func TestTable_Stats(t *testing.T) {
	t.Parallel()

	tb := New[string](Options[string]{Width: 8, Capacity: 4, CacheSize: 2})
	_ = tb.Insert(0, 0x01, 0xFF, KindExact, "x")

	tb.Query(0x01) // miss, fills cache
	tb.Query(0x01) // hit
	tb.Query(0x02) // miss, not found

	st := tb.Stats()
	if st.Queries != 3 || st.Hits != 1 || st.Misses != 2 {
		t.Fatalf("stats = %+v, want 3 queries, 1 hit, 2 misses", st)
	}
	if st.Entries != 1 {
		t.Fatalf("stats entries = %d, want 1", st.Entries)
	}
}

// Metrics hooks fire with the right shape (counts only; the Prometheus
// adapter is a thin mapping over the same interface).
type countingMetrics struct {
	hits, misses, sizes int
	evicts              map[EvictReason]int
}

func (m *countingMetrics) Hit()  { m.hits++ }
func (m *countingMetrics) Miss() { m.misses++ }
func (m *countingMetrics) Evict(r EvictReason) {
	if m.evicts == nil {
		m.evicts = map[EvictReason]int{}
	}
	m.evicts[r]++
}
func (m *countingMetrics) Size(int) { m.sizes++ }

func TestTable_MetricsSignals(t *testing.T) {
	t.Parallel()

	m := &countingMetrics{}
	tb := New[string](Options[string]{Width: 8, Capacity: 4, CacheSize: 1, Metrics: m})
	_ = tb.Insert(0, 0x01, 0xFF, KindExact, "a")
	_ = tb.Insert(1, 0x02, 0xFF, KindExact, "b")

	tb.Query(0x01) // miss, fill
	tb.Query(0x01) // hit
	tb.Query(0x02) // miss, displaces the only line
	_ = tb.Delete(1)

	if m.hits != 1 || m.misses != 2 {
		t.Fatalf("metrics hits=%d misses=%d, want 1/2", m.hits, m.misses)
	}
	if m.evicts[EvictReplace] != 1 {
		t.Fatalf("replace evictions = %d, want 1", m.evicts[EvictReplace])
	}
	if m.evicts[EvictInvalidate] != 1 {
		t.Fatalf("invalidate evictions = %d, want 1", m.evicts[EvictInvalidate])
	}
	if m.sizes == 0 {
		t.Fatal("Size signal never fired")
	}
}

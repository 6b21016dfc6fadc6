package tcam

import (
	"sync"

	"github.com/IvanBrykalov/tcam/internal/bitmask"
	"github.com/IvanBrykalov/tcam/policy/plru"
)

// table is the engine tying the backing store, the cache tier, and the
// scrubber together behind one mutex. The single-writer discipline is
// deliberate: store and cache share index-based cross-references that
// must never be observed half-updated, and downstream correctness
// (learning never racing against aging) depends on a total order of
// operations.
type table[V any] struct {
	mu    sync.Mutex
	opt   Options[V]
	store *entryStore[V]
	cache *cacheTier // nil when CacheSize is zero
	scrub scrubber

	// counters, guarded by mu
	queries   uint64
	hits      uint64
	misses    uint64
	evictions uint64
	scrubbed  uint64
}

// New constructs a table with the provided Options.
// Defaults:
//   - nil Metrics    -> NoopMetrics
//   - nil Policy     -> pseudo-LRU
//   - CacheSize == 0 -> no cache tier
//
// Width, Capacity, and CacheSize outside their documented ranges panic:
// they are construction-time programming errors, not operational ones.
func New[V any](opt Options[V]) Table[V] {
	if opt.Width < 1 || opt.Width > bitmask.MaxWidth {
		panic("tcam: Width must be in 1..64")
	}
	if opt.Capacity < 1 || opt.Capacity > 1<<16 {
		panic("tcam: Capacity must be in 1..65536")
	}
	if opt.CacheSize < 0 {
		panic("tcam: CacheSize must be >= 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = plru.New()
	}

	t := &table[V]{
		opt:   opt,
		store: newEntryStore[V](opt.Width, opt.Capacity, opt.Mode),
	}
	if opt.CacheSize > 0 {
		t.cache = newCacheTier(opt.CacheSize, opt.Policy)
	}
	return t
}

// ---- configuration operations ----

func (t *table[V]) Insert(index int, key, mask uint64, kind Kind, payload V) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scrub.interrupt()
	e := Entry[V]{Key: key & mask, Mask: mask, Kind: kind, Payload: payload}
	_, replaced, err := t.store.insert(index, e, t.opt.PayloadEqual)
	if err != nil {
		return err
	}
	t.installedLocked(index, e, replaced)
	return nil
}

func (t *table[V]) Learn(key, mask uint64, kind Kind, payload V) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scrub.interrupt()
	e := Entry[V]{Key: key & mask, Mask: mask, Kind: kind, Payload: payload}
	if err := validate(t.opt.Width, t.opt.Mode, kind, mask); err != nil {
		return 0, err
	}

	// An entry with the identical pattern is refreshed in place.
	index := -1
	for i := range t.store.slots {
		sl := &t.store.slots[i]
		if sl.valid && sl.e.Key == e.Key && sl.e.Mask == e.Mask {
			index = i
			break
		}
	}
	if err := t.store.checkConflict(index, e, t.opt.PayloadEqual); err != nil {
		return 0, err
	}
	if index < 0 {
		i, ok := t.store.takeFree()
		if !ok {
			return 0, ErrTableFull
		}
		index = i
	}
	_, replaced, _ := t.store.place(index, e)
	t.installedLocked(index, e, replaced)
	return index, nil
}

// installedLocked cascades cache invalidation after a successful write
// and publishes the new occupancy.
func (t *table[V]) installedLocked(index int, e Entry[V], replaced bool) {
	if t.cache != nil {
		if replaced {
			t.evictLinesLocked(t.cache.invalidateIndex(index))
		}
		// The new entry may outrank the cached winner for any key it
		// covers, so those lines must be recomputed.
		t.evictLinesLocked(t.cache.invalidateMatch(e.Key, e.Mask))
	}
	t.opt.Metrics.Size(t.store.len())
}

func (t *table[V]) evictLinesLocked(dropped int) {
	for i := 0; i < dropped; i++ {
		t.evictions++
		t.opt.Metrics.Evict(EvictInvalidate)
	}
}

func (t *table[V]) Delete(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scrub.interrupt()
	prev, existed, err := t.store.delete(index)
	if err != nil {
		return err
	}
	if existed {
		t.removedLocked(index, prev)
	}
	return nil
}

// removedLocked cascades cache invalidation and callbacks after an
// entry leaves the table.
func (t *table[V]) removedLocked(index int, prev Entry[V]) {
	if t.cache != nil {
		t.evictLinesLocked(t.cache.invalidateIndex(index))
	}
	if cb := t.opt.OnDelete; cb != nil {
		cb(index, prev)
	}
	t.opt.Metrics.Size(t.store.len())
}

func (t *table[V]) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scrub.interrupt()
	if cb := t.opt.OnDelete; cb != nil {
		for i := range t.store.slots {
			if t.store.slots[i].valid {
				cb(i, t.store.slots[i].e)
			}
		}
	}
	t.store.clearAll()
	if t.cache != nil {
		t.cache.clear()
	}
	t.opt.Metrics.Size(0)
}

func (t *table[V]) Flush(keep func(index int, e Entry[V]) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scrub.interrupt()
	removed := 0
	for i := range t.store.slots {
		if !t.store.slots[i].valid {
			continue
		}
		if keep != nil && keep(i, t.store.slots[i].e) {
			continue
		}
		prev, existed, _ := t.store.delete(i)
		if existed {
			t.removedLocked(i, prev)
			removed++
		}
	}
	return removed
}

// ---- queries ----

func (t *table[V]) Query(key uint64) Result[V] {
	t.mu.Lock()
	defer t.mu.Unlock()

	key &= bitmask.WidthMask(t.opt.Width)
	t.queries++

	if t.cache != nil {
		if idx, ok := t.cache.lookup(key); ok {
			// Re-read the backing entry so a hit can never serve a
			// stale payload. Invalidation keeps this reference live;
			// a dangling line is treated as a miss.
			if e, live := t.store.get(idx); live {
				t.hits++
				t.opt.Metrics.Hit()
				return Result[V]{Found: true, Index: idx, Payload: e.Payload}
			}
			t.evictLinesLocked(t.cache.invalidateIndex(idx))
		}
	}

	t.misses++
	t.opt.Metrics.Miss()
	res := t.store.lookup(key, t.opt.PayloadEqual)
	if t.cache != nil && res.Found && !res.Ambiguous {
		if t.cache.fill(key, res.Index) {
			t.evictions++
			t.opt.Metrics.Evict(EvictReplace)
		}
	}
	return res
}

// ---- background scrub ----

func (t *table[V]) ScrubTick(aged func(e Entry[V]) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	index := t.scrub.next()
	if e, ok := t.store.get(index); ok && aged != nil && aged(e) {
		prev, existed, _ := t.store.delete(index)
		if existed {
			t.scrubbed++
			t.opt.Metrics.Evict(EvictAged)
			t.removedLocked(index, prev)
		}
	}
	return t.scrub.advance(t.store.capacity())
}

func (t *table[V]) ScrubState() ScrubState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrub.state
}

// ---- accessors ----

func (t *table[V]) Get(index int) (Entry[V], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.get(index)
}

func (t *table[V]) Range(fn func(index int, e Entry[V]) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.store.slots {
		if t.store.slots[i].valid {
			if !fn(i, t.store.slots[i].e) {
				return
			}
		}
	}
}

func (t *table[V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.len()
}

func (t *table[V]) Capacity() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.capacity()
}

func (t *table[V]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		Queries:      t.queries,
		Hits:         t.hits,
		Misses:       t.misses,
		Evictions:    t.evictions,
		ScrubDeleted: t.scrubbed,
		Entries:      t.store.len(),
	}
}

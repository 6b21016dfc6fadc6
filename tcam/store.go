package tcam

// slot is one addressable position of the backing table.
type slot[V any] struct {
	e     Entry[V]
	valid bool
}

// entryStore is the fixed-capacity backing table. It owns entry storage
// and free-index tracking and nothing else; cache coherency lives in the
// engine. All methods assume the engine lock is held.
type entryStore[V any] struct {
	width int
	mode  MatchMode
	slots []slot[V]
	used  int

	// free is a stack of candidate free indices. Explicit inserts may
	// leave stale (now occupied) indices behind; takeFree skips them.
	free []int
}

func newEntryStore[V any](width, capacity int, mode MatchMode) *entryStore[V] {
	s := &entryStore[V]{
		width: width,
		mode:  mode,
		slots: make([]slot[V], capacity),
		free:  make([]int, 0, capacity),
	}
	s.resetFree()
	return s
}

// resetFree rebuilds the free stack so indices pop lowest-first.
func (s *entryStore[V]) resetFree() {
	s.free = s.free[:0]
	for i := len(s.slots) - 1; i >= 0; i-- {
		s.free = append(s.free, i)
	}
}

// takeFree pops the next genuinely free index, skipping stale entries.
func (s *entryStore[V]) takeFree() (int, bool) {
	for len(s.free) > 0 {
		i := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		if !s.slots[i].valid {
			return i, true
		}
	}
	return 0, false
}

// insert stores an entry at index, overwriting any prior occupant.
// eq is the optional payload-equality predicate used by the conflict
// check. The previous entry (if any) is returned so the engine can
// cascade cache invalidation.
func (s *entryStore[V]) insert(index int, e Entry[V], eq func(a, b V) bool) (prev Entry[V], replaced bool, err error) {
	if index < 0 || index >= len(s.slots) {
		return prev, false, ErrIndexOutOfRange
	}
	if err := validate(s.width, s.mode, e.Kind, e.Mask); err != nil {
		return prev, false, err
	}
	if err := s.checkConflict(index, e, eq); err != nil {
		return prev, false, err
	}
	return s.place(index, e)
}

// place writes the slot without validation (caller already checked).
func (s *entryStore[V]) place(index int, e Entry[V]) (prev Entry[V], replaced bool, err error) {
	sl := &s.slots[index]
	if sl.valid {
		prev, replaced = sl.e, true
	} else {
		s.used++
	}
	sl.e = e
	sl.valid = true
	return prev, replaced, nil
}

// delete marks the slot invalid. Deleting an empty slot is a no-op.
func (s *entryStore[V]) delete(index int) (prev Entry[V], existed bool, err error) {
	if index < 0 || index >= len(s.slots) {
		return prev, false, ErrIndexOutOfRange
	}
	sl := &s.slots[index]
	if !sl.valid {
		return prev, false, nil
	}
	prev, existed = sl.e, true
	var zero Entry[V]
	sl.e = zero
	sl.valid = false
	s.used--
	s.free = append(s.free, index)
	return prev, existed, nil
}

// clearAll invalidates every slot and rebuilds the free stack.
func (s *entryStore[V]) clearAll() {
	for i := range s.slots {
		s.slots[i] = slot[V]{}
	}
	s.used = 0
	s.resetFree()
}

// get returns the entry at index, if occupied.
func (s *entryStore[V]) get(index int) (Entry[V], bool) {
	if index < 0 || index >= len(s.slots) || !s.slots[index].valid {
		var zero Entry[V]
		return zero, false
	}
	return s.slots[index].e, true
}

func (s *entryStore[V]) capacity() int { return len(s.slots) }
func (s *entryStore[V]) len() int      { return s.used }

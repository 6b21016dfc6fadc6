package plru

import "testing"

// Touching every line in order leaves the first one as the victim,
// matching true LRU for a cold tree.
func TestPLRU_VictimIsOldest(t *testing.T) {
	t.Parallel()

	r := New().New(4)
	for i := 0; i < 4; i++ {
		r.Touch(i)
	}
	if got := r.Victim(); got != 0 {
		t.Fatalf("Victim() = %d, want 0", got)
	}
}

// Re-touching a line steers the victim walk away from it. PLRU is an
// approximation: after 0,1,2,3,0 the tree points at line 2 (true LRU
// would pick 1), but never at the just-touched line.
func TestPLRU_TouchPromotes(t *testing.T) {
	t.Parallel()

	r := New().New(4)
	for _, i := range []int{0, 1, 2, 3, 0} {
		r.Touch(i)
	}
	if got := r.Victim(); got != 2 {
		t.Fatalf("Victim() = %d, want 2", got)
	}
}

// An evicted line becomes the immediate next victim.
func TestPLRU_EvictMakesNextVictim(t *testing.T) {
	t.Parallel()

	r := New().New(4)
	for i := 0; i < 4; i++ {
		r.Touch(i)
	}
	r.Evict(1)
	if got := r.Victim(); got != 1 {
		t.Fatalf("Victim() after Evict(1) = %d, want 1", got)
	}
}

// Victim must stay idempotent: without an intervening Touch, repeated
// calls return the same line.
func TestPLRU_VictimIdempotent(t *testing.T) {
	t.Parallel()

	r := New().New(8)
	for _, i := range []int{3, 1, 4, 1, 5} {
		r.Touch(i)
	}
	first := r.Victim()
	for i := 0; i < 5; i++ {
		if got := r.Victim(); got != first {
			t.Fatalf("Victim() changed from %d to %d without Touch", first, got)
		}
	}
}

// Non-power-of-two line counts: the walk must never land on a phantom leaf.
func TestPLRU_NonPow2Lines(t *testing.T) {
	t.Parallel()

	for _, lines := range []int{1, 3, 5, 6, 7} {
		r := New().New(lines)
		for i := 0; i < lines*4; i++ {
			v := r.Victim()
			if v < 0 || v >= lines {
				t.Fatalf("lines=%d: Victim() = %d out of range", lines, v)
			}
			r.Touch(v)
		}
	}
}

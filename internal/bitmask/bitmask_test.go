package bitmask

import "testing"

func TestWidthMask(t *testing.T) {
	t.Parallel()

	cases := []struct {
		w    int
		want uint64
	}{
		{1, 0x1},
		{8, 0xFF},
		{32, 0xFFFFFFFF},
		{48, 0xFFFFFFFFFFFF},
		{64, ^uint64(0)},
	}
	for _, c := range cases {
		if got := WidthMask(c.w); got != c.want {
			t.Errorf("WidthMask(%d) = %#x, want %#x", c.w, got, c.want)
		}
	}
}

func TestPrefixMask(t *testing.T) {
	t.Parallel()

	if got := PrefixMask(32, 24); got != 0xFFFFFF00 {
		t.Fatalf("PrefixMask(32,24) = %#x, want 0xFFFFFF00", got)
	}
	if got := PrefixMask(32, 0); got != 0 {
		t.Fatalf("PrefixMask(32,0) = %#x, want 0", got)
	}
	if got := PrefixMask(8, 8); got != 0xFF {
		t.Fatalf("PrefixMask(8,8) = %#x, want 0xFF", got)
	}
}

// Round-trip: every legal prefix length must be recognized with the same length.
func TestPrefixLen_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, w := range []int{1, 8, 32, 48, 64} {
		for plen := 0; plen <= w; plen++ {
			m := PrefixMask(w, plen)
			got, ok := PrefixLen(w, m)
			if !ok || got != plen {
				t.Fatalf("PrefixLen(%d, %#x) = (%d, %v), want (%d, true)", w, m, got, ok, plen)
			}
		}
	}
}

func TestPrefixLen_Noncontiguous(t *testing.T) {
	t.Parallel()

	bad := []uint64{0x0F, 0xF0F0, 0x01, 0xFF00FF}
	for _, m := range bad {
		if _, ok := PrefixLen(32, m); ok {
			t.Errorf("PrefixLen(32, %#x) accepted a non-contiguous mask", m)
		}
	}
	// Out-of-width bits must be rejected even if the run looks contiguous.
	if _, ok := PrefixLen(8, 0xFF00); ok {
		t.Error("PrefixLen(8, 0xFF00) accepted an out-of-width mask")
	}
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	// 10.0.0.0/8 and 10.1.0.0/16 share 10.1.x.x.
	if !Overlaps(0x0A000000, 0xFF000000, 0x0A010000, 0xFFFF0000) {
		t.Error("nested prefixes must overlap")
	}
	// 10.0.0.0/8 and 11.0.0.0/8 are disjoint.
	if Overlaps(0x0A000000, 0xFF000000, 0x0B000000, 0xFF000000) {
		t.Error("disjoint prefixes must not overlap")
	}
	// Arbitrary masks fixing disjoint bit positions always overlap.
	if !Overlaps(0xAA, 0xF0, 0x05, 0x0F) {
		t.Error("patterns with disjoint fixed bits must overlap")
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	if !Matches(0x0A0101FE, 0x0A010000, 0xFFFF0000) {
		t.Error("10.1.1.254 must match 10.1.0.0/16")
	}
	if Matches(0x0A0201FE, 0x0A010000, 0xFFFF0000) {
		t.Error("10.2.1.254 must not match 10.1.0.0/16")
	}
	// Empty mask matches everything.
	if !Matches(0xDEADBEEF, 0, 0) {
		t.Error("empty mask must match any key")
	}
}

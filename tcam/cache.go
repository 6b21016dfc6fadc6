package tcam

import (
	"github.com/IvanBrykalov/tcam/internal/bitmask"
	"github.com/IvanBrykalov/tcam/policy"
)

// cacheLine is a weak reference into the backing table: a cached query
// key and the index of the entry that won its lookup. Lines never own
// payloads; a hit re-reads the table so it can never serve stale data.
type cacheLine struct {
	key   uint64
	entry int
	valid bool
}

// cacheTier is the small fully-associative front-end cache. The engine
// consults it before falling back to a full scan, and cascades every
// table mutation into invalidation here first. All methods assume the
// engine lock is held.
type cacheTier struct {
	lines []cacheLine
	rep   policy.Replacer
}

func newCacheTier(lines int, pol policy.Policy) *cacheTier {
	return &cacheTier{
		lines: make([]cacheLine, lines),
		rep:   pol.New(lines),
	}
}

// lookup scans the lines for the query key. O(C) with C small.
// On a hit the matched line is promoted.
func (c *cacheTier) lookup(key uint64) (entry int, ok bool) {
	for i := range c.lines {
		ln := &c.lines[i]
		if ln.valid && ln.key == key {
			c.rep.Touch(i)
			return ln.entry, true
		}
	}
	return 0, false
}

// fill records a freshly computed lookup so repeats hit the fast path.
// An invalid line is reused if one exists; otherwise the replacement
// policy picks the victim. Returns whether a valid line was displaced.
func (c *cacheTier) fill(key uint64, entry int) (displaced bool) {
	line := -1
	for i := range c.lines {
		if !c.lines[i].valid {
			line = i
			break
		}
		if c.lines[i].key == key {
			line = i // refresh an existing line for the same key
			break
		}
	}
	if line < 0 {
		line = c.rep.Victim()
		displaced = c.lines[line].valid
	}
	c.lines[line] = cacheLine{key: key, entry: entry, valid: true}
	c.rep.Touch(line)
	return displaced
}

// invalidateIndex drops every line referencing the given table index.
// Called when that entry is deleted or overwritten. Returns the number
// of lines dropped; invalidating an absent reference is a no-op.
func (c *cacheTier) invalidateIndex(index int) (dropped int) {
	for i := range c.lines {
		ln := &c.lines[i]
		if ln.valid && ln.entry == index {
			ln.valid = false
			c.rep.Evict(i)
			dropped++
		}
	}
	return dropped
}

// invalidateMatch drops every line whose cached query key matches the
// given pattern. Called on insert: the new entry may now outrank the
// cached winner for those keys.
func (c *cacheTier) invalidateMatch(key, mask uint64) (dropped int) {
	for i := range c.lines {
		ln := &c.lines[i]
		if ln.valid && bitmask.Matches(ln.key, key, mask) {
			ln.valid = false
			c.rep.Evict(i)
			dropped++
		}
	}
	return dropped
}

// clear drops every line.
func (c *cacheTier) clear() {
	for i := range c.lines {
		if c.lines[i].valid {
			c.lines[i].valid = false
			c.rep.Evict(i)
		}
	}
}

// Package plru implements tree-based pseudo-LRU replacement.
package plru

import "github.com/IvanBrykalov/tcam/policy"

// plru approximates LRU with a binary tree of single-bit markers.
// Each internal node stores one bit pointing toward the less recently
// used subtree; a Touch flips the bits on the leaf's path away from it,
// a Victim walk simply follows the bits. Updates cost O(log C) and the
// whole state is C-1 bits.
//
// The tree is built over the next power of two >= lines. Leaves beyond
// the real line count are phantoms: a victim walk that lands on one
// marks it used and retries, steering the walk back into real lines.
type plru struct {
	bits  []bool // heap layout: children of i are 2i+1, 2i+2
	leaf0 int    // index of the first leaf node
	depth int
	lines int
}

type plruPolicy struct{}

// New returns a Policy factory for pseudo-LRU replacers.
func New() policy.Policy { return plruPolicy{} }

func (plruPolicy) New(lines int) policy.Replacer {
	if lines < 1 {
		lines = 1
	}
	span, depth := 1, 0
	for span < lines {
		span <<= 1
		depth++
	}
	return &plru{
		bits:  make([]bool, span-1),
		leaf0: span - 1,
		depth: depth,
		lines: lines,
	}
}

// Touch walks from the root to the leaf for line, pointing every bit on
// the path at the opposite subtree.
func (p *plru) Touch(line int) {
	node := 0
	for d := p.depth - 1; d >= 0; d-- {
		right := line&(1<<uint(d)) != 0
		p.bits[node] = !right // point victim away from the taken branch
		if right {
			node = 2*node + 2
		} else {
			node = 2*node + 1
		}
	}
}

// Victim follows the marker bits from the root to a leaf.
func (p *plru) Victim() int {
	// Retries are bounded: each phantom hit redirects the walk at its
	// deepest path node, and phantoms occupy less than half the leaves.
	for i := 0; i <= len(p.bits); i++ {
		node := 0
		for node < p.leaf0 {
			if p.bits[node] {
				node = 2*node + 2
			} else {
				node = 2*node + 1
			}
		}
		line := node - p.leaf0
		if line < p.lines {
			return line
		}
		p.Touch(line) // phantom leaf: mark used and re-walk
	}
	return p.lines - 1
}

// Evict points the path bits toward line so the freed slot is the next
// victim.
func (p *plru) Evict(line int) {
	node := 0
	for d := p.depth - 1; d >= 0; d-- {
		right := line&(1<<uint(d)) != 0
		p.bits[node] = right
		if right {
			node = 2*node + 2
		} else {
			node = 2*node + 1
		}
	}
}

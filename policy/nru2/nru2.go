// Package nru2 implements not-recently-used replacement with 2-bit
// saturating recency counters.
package nru2

import "github.com/IvanBrykalov/tcam/policy"

// counterMax is the saturation value of the 2-bit recency counter.
const counterMax = 3

// nru2 keeps one 2-bit counter per line. Every Touch saturates the
// accessed line's counter and ages all the others (decrement, floor 0).
// The victim is the line with the lowest counter, ties broken by the
// lowest line index. Selection is O(C); state is 2 bits per line.
type nru2 struct {
	ctr []uint8
}

type nru2Policy struct{}

// New returns a Policy factory for NRU-2 replacers.
func New() policy.Policy { return nru2Policy{} }

func (nru2Policy) New(lines int) policy.Replacer {
	if lines < 1 {
		lines = 1
	}
	return &nru2{ctr: make([]uint8, lines)}
}

func (p *nru2) Touch(line int) {
	for i := range p.ctr {
		switch {
		case i == line:
			p.ctr[i] = counterMax
		case p.ctr[i] > 0:
			p.ctr[i]--
		}
	}
}

func (p *nru2) Victim() int {
	victim := 0
	for i := 1; i < len(p.ctr); i++ {
		if p.ctr[i] < p.ctr[victim] {
			victim = i
		}
	}
	return victim
}

func (p *nru2) Evict(line int) {
	p.ctr[line] = 0
}

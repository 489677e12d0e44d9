package bus

// Arbiter is the fixed-size round-robin request queue of spec.md §9:
// an array of the four core IDs with an implicit head, rather than a
// linked list. The core at the front of the queue wins ties; the winner
// rotates to the back.
type Arbiter struct {
	order [4]int
}

// NewArbiter returns an arbiter with cores served in ID order 0..3.
func NewArbiter() *Arbiter {
	return &Arbiter{order: [4]int{0, 1, 2, 3}}
}

// Grant scans the queue front-to-back and returns the first core with
// requesting[coreID] set, rotating it to the back. ok is false if no
// core is requesting.
func (a *Arbiter) Grant(requesting [4]bool) (coreID int, ok bool) {
	for pos, id := range a.order {
		if !requesting[id] {
			continue
		}
		a.rotate(pos)
		return id, true
	}
	return 0, false
}

// rotate moves the entry at pos to the back of the queue, preserving
// the relative order of everyone else.
func (a *Arbiter) rotate(pos int) {
	winner := a.order[pos]
	copy(a.order[pos:], a.order[pos+1:])
	a.order[len(a.order)-1] = winner
}

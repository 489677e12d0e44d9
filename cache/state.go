// Package cache implements each core's 64-block direct-mapped write-back
// data cache and its MESI state machine (spec.md §3 Cache block/Cache,
// §4.2). Tag storage, per-set lookup, and victim selection are delegated
// to Akita's cache directory (github.com/sarchlab/akita/v4/mem/cache),
// configured as direct-mapped (one way per set); MESI state — a concern
// the directory doesn't model — is tracked in a parallel array indexed
// the same way the directory already addresses its blocks.
package cache

// State is a MESI cache-line state.
type State uint8

const (
	Invalid State = iota
	Shared
	Exclusive
	Modified
)

// String renders the state for diagnostics.
func (s State) String() string {
	switch s {
	case Invalid:
		return "I"
	case Shared:
		return "S"
	case Exclusive:
		return "E"
	case Modified:
		return "M"
	default:
		return "?"
	}
}

// Event is a MESI state-machine input, per the Design Notes' "keep the
// table in one place" directive: every transition in the system goes
// through Next, not ad hoc state assignment scattered across callers.
type Event uint8

const (
	// LocalRead is a hit service of this core's own load.
	LocalRead Event = iota
	// LocalWrite is a hit service of this core's own store.
	LocalWrite
	// RemoteBusRd is another core's read-for-sharing snoop.
	RemoteBusRd
	// RemoteBusRdX is another core's read-for-ownership snoop.
	RemoteBusRdX
	// RemoteFlush is a peer flushing this block out from under us
	// (used when we are the one being evicted/invalidated as part of
	// satisfying someone else's miss).
	RemoteFlush
)

// Next returns the MESI state reached from cur on event ev. This is the
// single table referenced by both local hit handling and snoop handling;
// see cache.go and DESIGN.md.
func Next(cur State, ev Event) State {
	switch ev {
	case LocalRead:
		if cur == Invalid {
			return cur // reads never transition a hit cache line
		}
		return cur
	case LocalWrite:
		return Modified
	case RemoteBusRd:
		switch cur {
		case Modified, Exclusive:
			return Shared
		case Shared:
			return Shared
		default:
			return cur
		}
	case RemoteBusRdX:
		return Invalid
	case RemoteFlush:
		return Invalid
	default:
		return cur
	}
}

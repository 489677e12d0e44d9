package bus

import "github.com/sarchlab/mesisim/config"

// Timing constants from spec.md §4.3 / original_source's core.h. These
// mirror config.Default() and remain the values used whenever no
// override config is supplied.
const (
	// BusDelayCycles is the latency before the first word of a block
	// becomes available to the requester, counted from the cycle the
	// bus is granted.
	BusDelayCycles = config.DefaultBusDelayCycles
	// BlockDelayCycles is the width of the four-word flush phase that
	// follows BusDelayCycles.
	BlockDelayCycles = config.DefaultBlockDelayCycles
	// ExtraDelayCycles is the additional latency a dirty cache-to-cache
	// transfer incurs for writing the owner's copy back to memory
	// before the flush phase begins.
	ExtraDelayCycles = config.DefaultExtraDelayCycles
)

// TraceLine is one line of bustrace.txt: a single word the bus carried
// during one cycle.
type TraceLine struct {
	Cycle  uint64
	Origin int
	Cmd    Command
	Addr   int
	Data   uint32
	Shared bool
}

// Transaction tracks one in-flight bus-granted miss from grant through
// block delivery. Its three delay counters are decremented in sequence
// (bus, then extra, then block) so a dirty cache-to-cache transfer pays
// the writeback penalty before the flush phase starts, per the resolved
// reading of spec.md §9's open timing question.
type Transaction struct {
	Origin  int
	Cmd     Command
	Addr    int
	IsWrite bool
	Snoop   Snoop

	busDelay   int
	extraDelay int
	blockDelay int
	blockTotal int
}

func newTransaction(origin, addr int, isWrite bool, snoop Snoop, cfg *config.Config) *Transaction {
	extra := 0
	if snoop.NeedsWriteback {
		extra = cfg.ExtraDelayCycles
	}
	cmd := BusRd
	if isWrite {
		cmd = BusRdX
	}
	return &Transaction{
		Origin:     origin,
		Cmd:        cmd,
		Addr:       addr,
		IsWrite:    isWrite,
		Snoop:      snoop,
		busDelay:   cfg.BusDelayCycles,
		extraDelay: extra,
		blockDelay: cfg.BlockDelayCycles,
		blockTotal: cfg.BlockDelayCycles,
	}
}

// tick decrements whichever counter is currently active and reports
// whether this cycle falls in the four-word flush phase (the final
// BlockDelayCycles cycles of the transaction) along with which word
// index of the block that cycle delivers.
func (t *Transaction) tick() (inFlushPhase bool, wordIndex int) {
	switch {
	case t.busDelay > 0:
		t.busDelay--
	case t.extraDelay > 0:
		t.extraDelay--
	case t.blockDelay > 0:
		t.blockDelay--
		return true, t.blockTotal - t.blockDelay - 1
	}
	return false, 0
}

// Done reports whether the block has fully arrived and the transaction
// can be installed and released.
func (t *Transaction) Done() bool {
	return t.busDelay == 0 && t.extraDelay == 0 && t.blockDelay == 0
}

package bus

import (
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/config"
	"github.com/sarchlab/mesisim/mem"
)

// Bus is the single shared snooping bus all four cores arbitrate for.
// At most one Transaction is ever in flight.
type Bus struct {
	arbiter *Arbiter
	current *Transaction
	cfg     *config.Config
}

// New returns an idle bus serving cores in ID order, using the
// spec-mandated timing constants.
func New() *Bus {
	return NewWithConfig(config.Default())
}

// NewWithConfig returns an idle bus using the given timing overrides.
func NewWithConfig(cfg *config.Config) *Bus {
	return &Bus{arbiter: NewArbiter(), cfg: cfg}
}

// Busy reports whether a transaction currently occupies the bus.
func (b *Bus) Busy() bool {
	return b.current != nil
}

// Holder returns the core ID occupying the bus and true, or (0, false)
// if the bus is idle.
func (b *Bus) Holder() (coreID int, ok bool) {
	if b.current == nil {
		return 0, false
	}
	return b.current.Origin, true
}

// TryGrant arbitrates among the requesting cores if the bus is idle. A
// winner is resolved against the other three caches immediately (snoop
// effects land this same cycle, before the requester's own install),
// and the winner's transaction begins counting down. It returns the
// request-phase trace line to emit this cycle, or ok=false if nothing
// was granted (bus already busy, or no core is requesting).
func (b *Bus) TryGrant(cycle uint64, requesting [4]bool, addr [4]int, isWrite [4]bool, caches [4]*cache.Cache, memory *mem.Memory) (line TraceLine, ok bool) {
	if b.Busy() {
		return TraceLine{}, false
	}
	winner, granted := b.arbiter.Grant(requesting)
	if !granted {
		return TraceLine{}, false
	}

	snoop := Resolve(winner, addr[winner], isWrite[winner], caches, memory)
	b.current = newTransaction(winner, addr[winner], isWrite[winner], snoop, b.cfg)

	return TraceLine{
		Cycle:  cycle,
		Origin: winner,
		Cmd:    b.current.Cmd,
		Addr:   addr[winner],
	}, true
}

// Tick advances the in-flight transaction by one cycle, returning any
// flush-phase trace line it produced this cycle.
func (b *Bus) Tick(cycle uint64) (line TraceLine, emitted bool) {
	if b.current == nil {
		return TraceLine{}, false
	}
	inFlush, word := b.current.tick()
	if !inFlush {
		return TraceLine{}, false
	}

	blockAddr := (b.current.Addr &^ (mem.BlockWords - 1)) + word
	return TraceLine{
		Cycle:  cycle,
		Origin: b.current.Origin,
		Cmd:    Flush,
		Addr:   blockAddr,
		Data:   b.current.Snoop.Block[word],
		Shared: b.current.Snoop.MarkShared,
	}, true
}

// Ready reports whether the in-flight transaction has finished and can
// be installed, along with the transaction itself for the holder to
// consume.
func (b *Bus) Ready() (*Transaction, bool) {
	if b.current != nil && b.current.Done() {
		return b.current, true
	}
	return nil, false
}

// Release frees the bus after its holder has installed the delivered
// block.
func (b *Bus) Release() {
	b.current = nil
}

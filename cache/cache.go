package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/mesisim/mem"
)

// directoryPID is the process-ID argument Akita's directory API expects;
// this simulator has one untagged address space per core, so it is
// always zero.
const directoryPID = 0

// Cache is one core's 64-block direct-mapped write-back data cache.
type Cache struct {
	directory *akitacache.DirectoryImpl

	data      [NumBlocks]mem.Block
	states    [NumBlocks]State
	lastTouch [NumBlocks]uint64
}

// New creates an empty cache: every block starts {tag:0, state:Invalid,
// data:[0,0,0,0]}.
func New() *Cache {
	return &Cache{
		directory: akitacache.NewDirectory(
			NumBlocks, 1, mem.BlockWords,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Lookup reports whether addr currently hits: the resident block at its
// index is valid and its tag matches.
func (c *Cache) Lookup(addr int) bool {
	a := Decompose(addr)
	block := c.directory.Lookup(directoryPID, uint64(a.BlockAddr()))
	return block != nil && block.IsValid && c.states[a.Index] != Invalid
}

// ReadWord returns the word at addr. The caller must have checked
// Lookup(addr) first; a miss returns (0, false).
func (c *Cache) ReadWord(addr int) (uint32, bool) {
	if !c.Lookup(addr) {
		return 0, false
	}
	a := Decompose(addr)
	return c.data[a.Index][a.Offset], true
}

// WriteWord overwrites the word at addr and transitions the block to
// Modified. The caller must have checked Lookup(addr) first; a miss
// returns false and writes nothing.
func (c *Cache) WriteWord(addr int, word uint32) bool {
	if !c.Lookup(addr) {
		return false
	}
	a := Decompose(addr)
	c.data[a.Index][a.Offset] = word
	c.states[a.Index] = Next(c.states[a.Index], LocalWrite)
	return true
}

// Install unconditionally overwrites the resident block at addr's index
// with incoming, in the given state, stamping last_touch_cycle. This is
// an eviction-on-install: whatever was resident at that index is
// silently dropped, per spec.md §4.2.
func (c *Cache) Install(addr int, incoming mem.Block, state State, cycle uint64) {
	a := Decompose(addr)
	c.data[a.Index] = incoming
	c.states[a.Index] = state
	c.lastTouch[a.Index] = cycle

	block := c.directory.Lookup(directoryPID, uint64(a.BlockAddr()))
	if block == nil {
		block = c.directory.FindVictim(uint64(a.BlockAddr()))
	}
	if block != nil {
		block.Tag = uint64(a.BlockAddr())
		block.IsValid = true
		block.IsDirty = state == Modified
		c.directory.Visit(block)
	}
}

// SnoopInvalidate applies a RemoteBusRdX (or flush) snoop to the block at
// addr's index, transitioning Modified/Exclusive/Shared to Invalid. It
// reports whether the block was Modified (the caller needs this to know
// whether a writeback must accompany the invalidation).
func (c *Cache) SnoopInvalidate(addr int) (wasModified bool) {
	a := Decompose(addr)
	if !c.indexMatches(a) {
		return false
	}
	wasModified = c.states[a.Index] == Modified
	c.states[a.Index] = Next(c.states[a.Index], RemoteBusRdX)
	c.markInvalidInDirectory(a)
	return wasModified
}

// SnoopDowngrade applies a RemoteBusRd snoop to the block at addr's
// index: Modified and Exclusive downgrade to Shared, Shared stays
// Shared. It reports the pre-downgrade state so the caller can decide
// whether a flush is owed.
func (c *Cache) SnoopDowngrade(addr int) (prevState State) {
	a := Decompose(addr)
	if !c.indexMatches(a) {
		return Invalid
	}
	prevState = c.states[a.Index]
	c.states[a.Index] = Next(prevState, RemoteBusRd)
	return prevState
}

// indexMatches reports whether the resident block at a.Index is valid
// and carries a's tag (i.e. whether a snoop at this address actually
// concerns the resident block, rather than some other tag sharing the
// index).
func (c *Cache) indexMatches(a Addr) bool {
	if c.states[a.Index] == Invalid {
		return false
	}
	block := c.directory.Lookup(directoryPID, uint64(a.BlockAddr()))
	return block != nil && block.IsValid
}

func (c *Cache) markInvalidInDirectory(a Addr) {
	block := c.directory.Lookup(directoryPID, uint64(a.BlockAddr()))
	if block != nil {
		block.IsValid = false
		block.IsDirty = false
	}
}

// StateAndTagAt returns the MESI state and tag of the block resident at
// the given physical cache index, for tsram/dsram dumps. Index must be
// in [0, NumBlocks).
func (c *Cache) StateAndTagAt(index int) (tag int, state State) {
	sets := c.directory.GetSets()
	if index >= 0 && index < len(sets) && len(sets[index].Blocks) > 0 {
		tag = int(sets[index].Blocks[0].Tag) / (mem.BlockWords * NumBlocks)
	}
	return tag, c.states[index]
}

// DataAt returns the raw four-word block resident at the given physical
// cache index, for dsram dumps.
func (c *Cache) DataAt(index int) mem.Block {
	return c.data[index]
}

// LastTouch returns the last_touch_cycle of the block resident at the
// given physical cache index.
func (c *Cache) LastTouch(index int) uint64 {
	return c.lastTouch[index]
}

// BlockOf returns the four-word block resident at addr's index, for a
// snoop that needs to supply or write back the whole line.
func (c *Cache) BlockOf(addr int) mem.Block {
	a := Decompose(addr)
	return c.data[a.Index]
}

// StateOf returns the MESI state at a word address without requiring a
// prior Lookup call (Invalid if the address misses).
func (c *Cache) StateOf(addr int) State {
	a := Decompose(addr)
	if !c.indexMatches(a) {
		return Invalid
	}
	return c.states[a.Index]
}

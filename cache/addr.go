package cache

import "github.com/sarchlab/mesisim/mem"

// NumBlocks is the fixed number of direct-mapped cache lines per core.
const NumBlocks = 64

// Addr decomposes a word address into its cache coordinates.
type Addr struct {
	// Offset is the word's position within its block, [0,4).
	Offset int
	// Index selects the one resident way for this block, [0,64).
	Index int
	// Tag is the block's address high bits, unique within one index.
	Tag int
}

// Decompose splits a word address A into offset = A mod 4,
// index = (A div 4) mod 64, tag = A div (4*64), per spec.md §3.
func Decompose(addr int) Addr {
	return Addr{
		Offset: addr % mem.BlockWords,
		Index:  (addr / mem.BlockWords) % NumBlocks,
		Tag:    addr / (mem.BlockWords * NumBlocks),
	}
}

// BlockAddr returns the word address of the first word of this block
// (the address install/snoop operate on as a unit).
func (a Addr) BlockAddr() int {
	return a.Tag*(mem.BlockWords*NumBlocks) + a.Index*mem.BlockWords
}

// MemoryBlockIndex returns the block index main memory's
// ReadBlock/WriteBlock expect for this address (addr div 4, globally,
// not mod 64 — main memory has no associativity).
func MemoryBlockIndex(addr int) int {
	return addr / mem.BlockWords
}

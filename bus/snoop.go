package bus

import (
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/mem"
)

// Snoop is the outcome of resolving a miss against the other three
// caches: who (if anyone) supplied the data, what the block contains,
// and whether the requester must install Shared rather than
// Exclusive/Modified.
type Snoop struct {
	SupplierCore   int // -1 if main memory supplied the block
	Block          mem.Block
	MarkShared     bool // requester installs Shared instead of Exclusive
	NeedsWriteback bool // a dirty owner had to flush before supplying
}

// Resolve applies one BusRd/BusRdX snoop to the three sibling caches of
// requester and reports what the requester should install. It mutates
// the siblings' MESI state (and, for a dirty owner, main memory) before
// returning, per the resolved ordering of spec.md §9: snoop effects land
// before the requester's own install on the same transaction.
//
// A Modified owner always supplies the data and is written back to
// memory. On a BusRd it downgrades to Shared (this simulator's choice
// for the owner-keeps-a-copy open question); on a BusRdX it invalidates.
// With no Modified owner, any other valid copy just means memory's data
// is already current, so memory supplies directly; a BusRd leaves those
// copies at Shared (Exclusive is downgraded, Shared stays Shared) and
// marks the requester Shared too. A BusRdX invalidates everything.
func Resolve(requester int, addr int, isWrite bool, caches [4]*cache.Cache, memory *mem.Memory) Snoop {
	ownerModified := -1
	anyOtherValid := false
	for i, c := range caches {
		if i == requester {
			continue
		}
		switch c.StateOf(addr) {
		case cache.Modified:
			ownerModified = i
			anyOtherValid = true
		case cache.Shared, cache.Exclusive:
			anyOtherValid = true
		}
	}

	var result Snoop
	result.SupplierCore = -1

	if ownerModified >= 0 {
		owner := caches[ownerModified]
		block := owner.BlockOf(addr)
		memory.WriteBlock(cache.MemoryBlockIndex(addr), block)

		result.SupplierCore = ownerModified
		result.Block = block
		result.NeedsWriteback = true

		if isWrite {
			owner.SnoopInvalidate(addr)
		} else {
			owner.SnoopDowngrade(addr)
			result.MarkShared = true
		}
	} else {
		result.Block = memory.ReadBlock(cache.MemoryBlockIndex(addr))
		if anyOtherValid && !isWrite {
			result.MarkShared = true
		}
	}

	for i, c := range caches {
		if i == requester || i == ownerModified {
			continue
		}
		if c.StateOf(addr) == cache.Invalid {
			continue
		}
		if isWrite {
			c.SnoopInvalidate(addr)
		} else {
			c.SnoopDowngrade(addr)
		}
	}

	return result
}

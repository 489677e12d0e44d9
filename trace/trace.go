// Package trace renders the simulator's per-cycle and final-state
// observations into the seven output file formats of spec.md §6: the
// per-core pipeline trace, the shared bus trace, final register
// dumps, cache data/tag dumps, final memory contents, and per-core
// statistics (the last already rendered by core.Stats.Lines).
package trace

import (
	"fmt"
	"strings"

	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/core"
	"github.com/sarchlab/mesisim/isa"
	"github.com/sarchlab/mesisim/mem"
)

// stagePC renders one pipeline stage's content: "---" for a bubble,
// otherwise its instruction's fetch-time PC as 3 hex digits.
func stagePC(inst isa.Instruction) string {
	if inst.IsBubble() {
		return "---"
	}
	return fmt.Sprintf("%03X", inst.PC)
}

// CoreTraceLine renders one cycle of a core's five pipeline stages,
// youngest instruction first (F D E M W).
func CoreTraceLine(cycle uint64, stages [5]isa.Instruction) string {
	fields := make([]string, 0, 6)
	fields = append(fields, fmt.Sprintf("%d", cycle))
	for _, s := range stages {
		fields = append(fields, stagePC(s))
	}
	return strings.Join(fields, " ")
}

// BusTraceLine renders one bustrace.txt line: cycle, origin core,
// command, a 5-hex-digit address, an 8-hex-digit data word, and the
// shared flag, matching the reference implementation's format.
func BusTraceLine(l bus.TraceLine) string {
	shared := 0
	if l.Shared {
		shared = 1
	}
	return fmt.Sprintf("%d %d %d %05X %08X %d", l.Cycle, l.Origin, uint8(l.Cmd), l.Addr, l.Data, shared)
}

// RegOutLines renders a core's final R2..R15 contents, one 8-hex-digit
// value per line, in register order.
func RegOutLines(snapshot [core.NumRegisters - 2]int32) []string {
	lines := make([]string, len(snapshot))
	for i, v := range snapshot {
		lines[i] = fmt.Sprintf("%08X", uint32(v))
	}
	return lines
}

// DSRAMLines renders a core's 64 resident data blocks in block-major
// order, one 8-hex-digit word per line (256 lines total).
func DSRAMLines(c *cache.Cache) []string {
	lines := make([]string, 0, cache.NumBlocks*mem.BlockWords)
	for i := 0; i < cache.NumBlocks; i++ {
		block := c.DataAt(i)
		for _, word := range block {
			lines = append(lines, fmt.Sprintf("%08X", word))
		}
	}
	return lines
}

// TSRAMLines renders a core's 64 tag-store entries, one per line, each
// encoding (tag << 2) | state as spec.md §6 requires.
func TSRAMLines(c *cache.Cache) []string {
	lines := make([]string, cache.NumBlocks)
	for i := 0; i < cache.NumBlocks; i++ {
		tag, state := c.StateAndTagAt(i)
		entry := uint32(tag)<<2 | uint32(state)
		lines[i] = fmt.Sprintf("%08X", entry)
	}
	return lines
}

// MemOutLines renders main memory's contents, one 8-hex-digit word per
// line, from address 0 up to and including the last nonzero word —
// independent of how far Memory's internal storage happens to have
// grown, since a store of 0 to the highest touched address must not
// leave a trailing zero line in the output.
func MemOutLines(m *mem.Memory) []string {
	last := -1
	for i := 0; i < m.Len(); i++ {
		if m.ReadWord(i) != 0 {
			last = i
		}
	}

	lines := make([]string, last+1)
	for i := range lines {
		lines[i] = fmt.Sprintf("%08X", m.ReadWord(i))
	}
	return lines
}

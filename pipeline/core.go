// Package pipeline implements the five-stage in-order pipeline each
// core runs: Fetch, Decode (which also resolves branches and detects
// hazards), Execute, Memory (which arbitrates for the bus on a cache
// miss), and Writeback. There is no forwarding: a hazard freezes Fetch
// and Decode until the conflicting instruction retires.
package pipeline

import (
	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/core"
	"github.com/sarchlab/mesisim/isa"
)

// LinkRegister is the register jal always writes, regardless of its Rd
// field — the link target is hardwired, not assembler-selectable.
const LinkRegister = 15

// BranchTargetMask restricts a taken branch or jal's target to the
// machine's 9-bit PC range.
const BranchTargetMask = 0x1FF

// pendingMem tracks a Memory-stage miss from the cycle it is first
// detected through the cycle its block arrives.
type pendingMem struct {
	addr     int
	isWrite  bool
	value    int32 // value to store, resolved when sw first misses
	resolved bool  // the bus driver has installed the block this cycle
}

// Core is one processor's complete pipeline state: program counter,
// register file, private cache, statistics, and the five pipeline
// registers.
type Core struct {
	id      int
	program []isa.Instruction
	pc      int

	Regs  core.RegFile
	Cache *cache.Cache
	Stats core.Stats

	f, d, e, m, w Slot

	halted  bool
	pending *pendingMem
}

// NewCore creates a core at the reset vector with an empty pipeline.
func NewCore(id int, program []isa.Instruction, c *cache.Cache) *Core {
	return &Core{
		id:      id,
		program: program,
		Cache:   c,
		f:       Empty, d: Empty, e: Empty, m: Empty, w: Empty,
	}
}

// ID returns this core's index, 0..3.
func (c *Core) ID() int { return c.id }

// Halted reports whether this core's HALT has retired through
// Writeback. Fetch never advances past a HALT, so only bubbles follow
// it; once halted, Tick does nothing, so the statistics stop at the
// cycle the HALT retired, and the driver stops waiting on the core.
func (c *Core) Halted() bool { return c.halted }

// Stages returns the instruction currently occupying each of the five
// stages, youngest first (F, D, E, M, W), for trace output.
func (c *Core) Stages() [5]isa.Instruction {
	return [5]isa.Instruction{c.f.Inst, c.d.Inst, c.e.Inst, c.m.Inst, c.w.Inst}
}

// PeekMemRequest reports whether this core wants the bus this cycle:
// a non-bubble lw/sw sitting in Memory that currently misses the
// cache. Once a miss is first detected it keeps reporting the same
// request every cycle until the transaction resolves, so the arbiter
// sees a stable request to grant.
func (c *Core) PeekMemRequest() (addr int, isWrite bool, requesting bool) {
	if c.pending != nil {
		return c.pending.addr, c.pending.isWrite, true
	}
	if c.m.IsBubble() || !c.m.Inst.Opcode.IsMemory() {
		return 0, false, false
	}
	addr = int(c.m.ALUResult)
	if c.Cache.Lookup(addr) {
		return 0, false, false
	}
	return addr, c.m.Inst.Opcode == isa.OpSw, true
}

// InstallBlock consumes a completed bus transaction: installs the
// delivered block (applying the pending store first, if this was a
// sw miss) and marks the request resolved so Tick services it as a
// hit this same cycle.
func (c *Core) InstallBlock(cycle uint64, snoop bus.Snoop) {
	if c.pending == nil {
		return
	}
	block := snoop.Block
	a := cache.Decompose(c.pending.addr)
	state := cache.Exclusive
	if c.pending.isWrite {
		block[a.Offset] = uint32(c.pending.value)
		state = cache.Modified
	} else if snoop.MarkShared {
		state = cache.Shared
	}
	c.Cache.Install(c.pending.addr, block, state, cycle)
	c.pending.resolved = true
}

// Tick advances the pipeline by exactly one cycle.
func (c *Core) Tick(cycle uint64) {
	if c.halted {
		return
	}
	c.Stats.TotalCycles++

	oldF, oldD, oldE, oldM, oldW := c.f, c.d, c.e, c.m, c.w

	c.retire(oldW)

	newW, mStalled := c.stepMemory(oldM)
	if mStalled {
		c.w = Empty
		return
	}
	c.w = newW

	newM := c.stepExecute(oldE)

	if !oldD.IsBubble() && hazard(oldD.Inst, oldE, oldM, oldW) {
		c.m, c.e, c.d, c.f = newM, Empty, oldD, oldF
		return
	}

	newE, branchTo, branched := c.stepDecode(oldD)

	var newD, newF Slot
	if branched {
		newD = Empty
		c.pc = branchTo
	} else {
		newD = oldF
	}
	newF = c.fetch()

	c.m, c.e, c.d, c.f = newM, newE, newD, newF
}

// retire commits a Writeback-stage instruction to the register file
// and statistics.
func (c *Core) retire(w Slot) {
	switch w.Inst.Opcode {
	case isa.OpStall:
		c.Stats.DecodeStallRaw++
	case isa.OpHalt:
		c.halted = true
	case isa.OpLw:
		c.Regs.Write(w.Inst.Rd, int32(w.MemWord))
		c.Stats.TotalInstructions++
	default:
		if w.Inst.Opcode.IsRType() {
			c.Regs.Write(w.Inst.Rd, w.ALUResult)
		}
		c.Stats.TotalInstructions++
	}
}

// stepMemory services the Memory-stage instruction: a passthrough for
// everything but lw/sw, a same-cycle hit/miss decision for a fresh
// memory access, or the same-cycle completion of a miss the bus just
// resolved. mStalled reports whether the whole pipeline must freeze
// behind this instruction.
func (c *Core) stepMemory(m Slot) (next Slot, mStalled bool) {
	if m.IsBubble() || !m.Inst.Opcode.IsMemory() {
		return m, false
	}

	switch {
	case c.pending != nil && c.pending.resolved:
		c.service(&m)
		c.pending = nil
		return m, false
	case c.pending != nil:
		c.Stats.MemStall++
		return Slot{}, true
	case c.Cache.Lookup(int(m.ALUResult)):
		c.countHit(m.Inst.Opcode)
		c.service(&m)
		return m, false
	default:
		c.countMiss(m.Inst.Opcode)
		c.Stats.MemStall++
		c.pending = &pendingMem{
			addr:    int(m.ALUResult),
			isWrite: m.Inst.Opcode == isa.OpSw,
			value:   m.Target,
		}
		return Slot{}, true
	}
}

// service performs the actual cache access for a lw/sw the caller has
// already confirmed hits.
func (c *Core) service(m *Slot) {
	addr := int(m.ALUResult)
	if m.Inst.Opcode == isa.OpSw {
		c.Cache.WriteWord(addr, uint32(m.Target))
		return
	}
	word, _ := c.Cache.ReadWord(addr)
	m.MemWord = word
}

func (c *Core) countHit(op isa.Opcode) {
	if op == isa.OpSw {
		c.Stats.WriteHit++
	} else {
		c.Stats.ReadHit++
	}
}

func (c *Core) countMiss(op isa.Opcode) {
	if op == isa.OpSw {
		c.Stats.WriteMiss++
	} else {
		c.Stats.ReadMiss++
	}
}

// stepExecute computes Execute's output for an instruction Decode
// already resolved: the ALU result for an R-type op, or the effective
// address for lw/sw. Branches and jal do all their architectural work
// in Decode and simply pass through.
func (c *Core) stepExecute(e Slot) Slot {
	if e.IsBubble() {
		return e
	}
	switch {
	case e.Inst.Opcode.IsRType():
		e.ALUResult = alu(e.Inst.Opcode, e.OperandA, e.OperandB)
	case e.Inst.Opcode.IsMemory():
		e.ALUResult = e.OperandA + e.OperandB
	}
	return e
}

// stepDecode resolves Decode for d: reads operands, and for a
// control-flow instruction, evaluates the branch/jump. A taken branch
// or jal returns the redirected target and branched=true; jal's link
// write (to the hardwired LinkRegister, not d.Inst.Rd) happens here,
// immediately, rather than waiting for Writeback.
func (c *Core) stepDecode(d Slot) (next Slot, target int, branched bool) {
	if d.IsBubble() {
		return d, 0, false
	}

	d.OperandA = c.Regs.ReadOperand(d.Inst.Rs, d.Inst)
	d.OperandB = c.Regs.ReadOperand(d.Inst.Rt, d.Inst)

	switch {
	case d.Inst.Opcode == isa.OpSw, d.Inst.Opcode.IsBranch():
		d.Target = c.Regs.ReadOperand(d.Inst.Rd, d.Inst)
	}

	switch {
	case d.Inst.Opcode == isa.OpJal:
		c.Regs.Write(LinkRegister, int32(d.Inst.PC+1))
		return d, int(d.Target) & BranchTargetMask, true
	case d.Inst.Opcode.IsBranch():
		if branchTaken(d.Inst.Opcode, d.OperandA, d.OperandB) {
			return d, int(d.Target) & BranchTargetMask, true
		}
	}
	return d, 0, false
}

// fetch reads the instruction at the current program counter and
// advances it, clamped to the fixed instruction-image capacity. It does
// not advance past a HALT, which is fetched again on every later cycle.
func (c *Core) fetch() Slot {
	inst := isa.Bubble
	if c.pc >= 0 && c.pc < len(c.program) {
		inst = c.program[c.pc]
	}
	if inst.Opcode != isa.OpHalt && c.pc < len(c.program)-1 {
		c.pc++
	}
	return Slot{Inst: inst}
}

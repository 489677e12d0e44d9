// Package core holds the per-core architectural state that isn't the
// pipeline or cache: the 16-entry register file, the operand-resolution
// rule for the transient $imm register, and the per-core statistics
// counters of spec.md §3.
package core

import "github.com/sarchlab/mesisim/isa"

// NumRegisters is the fixed register-file width.
const NumRegisters = 16

// ZeroReg is the read-only, always-zero register.
const ZeroReg = 0

// ImmReg is the register index that, when read as an operand, yields the
// currently executing instruction's immediate instead of a stored value.
const ImmReg = 1

// RegFile is the 16-entry signed 32-bit register file. $zero (R0) always
// reads 0 and ignores writes; $imm (R1) also ignores writes, so Read
// returns its never-written stored cell — its special "reads as the current immediate" behavior
// is not a property of the register file at all, it is resolved by
// ReadOperand, which takes the in-flight instruction as a parameter. This
// sidesteps the source implementation's save/restore-around-each-stage
// dance (see DESIGN.md) while preserving the same observable semantics.
type RegFile struct {
	regs [NumRegisters]int32
}

// Read returns the raw stored value of a register, honoring only the
// $zero special case. Use ReadOperand when resolving an instruction's
// source operand, so that $imm reads resolve correctly.
func (r *RegFile) Read(idx uint8) int32 {
	if idx == ZeroReg {
		return 0
	}
	return r.regs[idx]
}

// Write stores a value into a register. Writes to $zero and $imm are
// silently discarded.
func (r *RegFile) Write(idx uint8, value int32) {
	if idx == ZeroReg || idx == ImmReg {
		return
	}
	r.regs[idx] = value
}

// ReadOperand resolves a source register index to its operand value for
// the given in-flight instruction: $imm yields that instruction's own
// sign-extended immediate rather than whatever was last stored in R1.
func (r *RegFile) ReadOperand(idx uint8, instr isa.Instruction) int32 {
	if idx == ImmReg {
		return instr.Imm
	}
	return r.Read(idx)
}

// Snapshot returns a copy of R2..R15 in index order, the layout regoutN
// and the core trace both need.
func (r *RegFile) Snapshot() [NumRegisters - 2]int32 {
	var out [NumRegisters - 2]int32
	for i := 2; i < NumRegisters; i++ {
		out[i-2] = r.regs[i]
	}
	return out
}

package pipeline

import "github.com/sarchlab/mesisim/isa"

// Slot is one pipeline register: the instruction currently occupying a
// stage, plus the scratch state that instruction accumulates as it
// travels through the pipeline. isa.Instruction stays immutable and
// pure (see its doc comment); ALUResult and the other scratch fields
// below live here instead (the miss delay counters live in
// bus.Transaction), per the source material's own admission
// that keeping them on the instruction itself was a mistake worth
// fixing (spec.md §9).
type Slot struct {
	Inst isa.Instruction

	// OperandA and OperandB are Rs and Rt resolved by Decode via
	// RegFile.ReadOperand (so a $imm reference already reads as this
	// instruction's own immediate by the time Execute sees it).
	OperandA, OperandB int32

	// Target is Rd resolved by Decode as a source operand, for the
	// instructions that read Rd instead of writing it: sw's value to
	// store, and a taken branch's target register.
	Target int32

	// ALUResult is Execute's output: the arithmetic result for an
	// R-type op, or the computed address for lw/sw.
	ALUResult int32

	// MemWord is the word Memory produced for a load, consumed by
	// Writeback.
	MemWord uint32
}

// Empty is the bubble slot: a STALL instruction with no scratch state.
var Empty = Slot{Inst: isa.Bubble}

// IsBubble reports whether this slot carries no architectural work.
func (s Slot) IsBubble() bool {
	return s.Inst.IsBubble()
}

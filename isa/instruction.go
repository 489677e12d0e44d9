package isa

// Instruction is the immutable architectural content of one instruction
// image entry: the fields decode.go extracts from an 8-hex-digit line.
// It never mutates once fetched — scratch state produced while an
// instruction travels the pipeline lives elsewhere: alu_result in the
// pipeline register wrapper in package pipeline, and the bus_delay,
// block_delay and extra_delay counters in package bus's Transaction.
// See DESIGN.md for the rationale.
type Instruction struct {
	// PC is the fetch-time program counter. -1 denotes a bubble.
	PC int

	Opcode Opcode

	// Rd, Rs, Rt are register indices in [0,15].
	Rd, Rs, Rt uint8

	// Imm is the sign-extended 12-bit immediate.
	Imm int32
}

// Bubble is the canonical STALL instruction carried by an empty pipeline
// slot.
var Bubble = Instruction{PC: -1, Opcode: OpStall}

// Halt is a canonical HALT instruction with no fetch PC. (LoadIMEM
// appends its own HALT, carrying the PC of the slot it fills.)
var Halt = Instruction{PC: -1, Opcode: OpHalt}

// IsBubble reports whether this instruction performs no architectural
// work in any stage.
func (i Instruction) IsBubble() bool {
	return i.Opcode.IsBubble()
}

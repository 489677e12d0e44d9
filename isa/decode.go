package isa

import (
	"fmt"
	"strconv"
)

// DecodeLine parses one 8-hex-digit instruction-image line into an
// Instruction. pc is the line's position in the image (0-based).
//
// Layout (big-endian-positional, per spec):
//
//	chars [0,2)  opcode   (8 bits)
//	char  [2,3)  rd       (4 bits)
//	char  [3,4)  rs       (4 bits)
//	char  [4,5)  rt       (4 bits)
//	chars [5,8)  imm      (12 bits, sign-extended)
func DecodeLine(line string, pc int) (Instruction, error) {
	if len(line) != 8 {
		return Instruction{}, fmt.Errorf("instruction line must be exactly 8 hex digits, got %q (%d chars)", line, len(line))
	}

	raw, err := strconv.ParseUint(line, 16, 32)
	if err != nil {
		return Instruction{}, fmt.Errorf("invalid hex digits in instruction line %q: %w", line, err)
	}
	word := uint32(raw)

	opcode := Opcode((word >> 24) & 0xFF)
	rd := uint8((word >> 20) & 0xF)
	rs := uint8((word >> 16) & 0xF)
	rt := uint8((word >> 12) & 0xF)
	imm := SignExtend12(uint16(word & 0xFFF))

	return Instruction{
		PC:     pc,
		Opcode: opcode,
		Rd:     rd,
		Rs:     rs,
		Rt:     rt,
		Imm:    imm,
	}, nil
}

// SignExtend12 sign-extends the low 12 bits of v into a 32-bit value.
func SignExtend12(v uint16) int32 {
	v &= 0xFFF
	if v&0x800 != 0 {
		return int32(v) - 0x1000
	}
	return int32(v)
}

// MaskImm12 restates a (possibly already sign-extended) immediate as a
// 12-bit sign-extended value. The pipeline's Decode stage does not call
// it: DecodeLine already produces a properly masked value.
func MaskImm12(imm int32) int32 {
	return SignExtend12(uint16(imm))
}

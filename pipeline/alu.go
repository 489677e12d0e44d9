package pipeline

import "github.com/sarchlab/mesisim/isa"

// alu computes an R-type instruction's result from its two resolved
// operands.
func alu(op isa.Opcode, a, b int32) int32 {
	switch op {
	case isa.OpAdd:
		return a + b
	case isa.OpSub:
		return a - b
	case isa.OpAnd:
		return a & b
	case isa.OpOr:
		return a | b
	case isa.OpXor:
		return a ^ b
	case isa.OpMul:
		return a * b
	case isa.OpSll:
		return a << uint32(b&0x1F)
	case isa.OpSra:
		return a >> uint32(b&0x1F)
	case isa.OpSrl:
		return int32(uint32(a) >> uint32(b&0x1F))
	default:
		return 0
	}
}

// branchTaken evaluates a conditional branch's opA/opB comparison.
func branchTaken(op isa.Opcode, a, b int32) bool {
	switch op {
	case isa.OpBeq:
		return a == b
	case isa.OpBne:
		return a != b
	case isa.OpBlt:
		return a < b
	case isa.OpBgt:
		return a > b
	case isa.OpBle:
		return a <= b
	case isa.OpBge:
		return a >= b
	default:
		return false
	}
}

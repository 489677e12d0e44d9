package pipeline

import "github.com/sarchlab/mesisim/isa"

// readOperands returns the register indices Decode must resolve for
// inst, beyond $zero/$imm which never hazard. R-type and lw read Rs and
// Rt; sw also reads Rd as the value to store; the branches, jal
// included, read Rd too, as the register holding their target.
func readOperands(inst isa.Instruction) []uint8 {
	switch {
	case inst.Opcode.IsRType(), inst.Opcode == isa.OpLw:
		return []uint8{inst.Rs, inst.Rt}
	case inst.Opcode == isa.OpSw, inst.Opcode.IsBranch():
		return []uint8{inst.Rs, inst.Rt, inst.Rd}
	default:
		return nil
	}
}

// writesTo reports the register index a slot's instruction will commit
// in Writeback, and whether it writes at all. jal's write is resolved
// in Decode itself (to the hardwired link register), so a jal sitting
// in E/M/W has already retired its write and never hazards.
func writesTo(s Slot) (reg uint8, writes bool) {
	if !s.Inst.Opcode.WritesRegFile() {
		return 0, false
	}
	return s.Inst.Rd, true
}

// hazard reports whether any source register Decode needs for inst is
// still awaiting a write from an instruction currently in Execute,
// Memory or Writeback — the no-forwarding stall condition of spec.md
// §4.1 (HazE/HazM/HazW).
func hazard(inst isa.Instruction, e, m, w Slot) bool {
	operands := readOperands(inst)
	if len(operands) == 0 {
		return false
	}

	for _, idx := range operands {
		if idx == 0 || idx == 1 { // $zero, $imm never hazard
			continue
		}
		for _, s := range [3]Slot{e, m, w} {
			if reg, writes := writesTo(s); writes && reg == idx {
				return true
			}
		}
	}
	return false
}

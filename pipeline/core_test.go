package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/isa"
	"github.com/sarchlab/mesisim/mem"
	"github.com/sarchlab/mesisim/pipeline"
)

func addImm(pc int, rd uint8, imm int32) isa.Instruction {
	return isa.Instruction{PC: pc, Opcode: isa.OpAdd, Rd: rd, Rs: 1, Rt: 0, Imm: imm}
}

func run(c *pipeline.Core, cycles int) {
	for i := 0; i < cycles; i++ {
		c.Tick(uint64(i))
	}
}

var _ = Describe("Core", func() {
	It("executes a straight-line add program and halts", func() {
		program := []isa.Instruction{
			addImm(0, 2, 5),
			{PC: 1, Opcode: isa.OpHalt},
		}
		c := pipeline.NewCore(0, program, cache.New())
		run(c, 15)

		Expect(c.Regs.Read(2)).To(Equal(int32(5)))
		Expect(c.Halted()).To(BeTrue())
	})

	It("stalls decode until a read-after-write hazard clears, with no forwarding", func() {
		program := []isa.Instruction{
			addImm(0, 2, 5),
			{PC: 1, Opcode: isa.OpAdd, Rd: 3, Rs: 2, Rt: 0},
			{PC: 2, Opcode: isa.OpHalt},
		}
		c := pipeline.NewCore(0, program, cache.New())
		run(c, 20)

		Expect(c.Regs.Read(3)).To(Equal(int32(5)))
		Expect(c.Halted()).To(BeTrue())
	})

	It("resolves a taken branch in Decode and squashes the wrong-path fetch", func() {
		program := []isa.Instruction{
			addImm(0, 2, 1),                                                         // r2 = 1
			addImm(1, 3, 4),                                                         // r3 = 4 (branch target)
			{PC: 2, Opcode: isa.OpBeq, Rs: 2, Rt: 1, Rd: 3, Imm: 1},                  // if r2==1, PC = r3
			addImm(3, 5, 99),                                                        // skipped
			addImm(4, 6, 77),                                                        // branch target
			{PC: 5, Opcode: isa.OpHalt},
		}
		c := pipeline.NewCore(0, program, cache.New())
		run(c, 25)

		Expect(c.Regs.Read(5)).To(Equal(int32(0)))
		Expect(c.Regs.Read(6)).To(Equal(int32(77)))
		Expect(c.Halted()).To(BeTrue())
	})

	It("resolves a taken branch's target modulo the 9-bit PC range", func() {
		program := make([]isa.Instruction, 0x1FF+10)
		for i := range program {
			program[i] = isa.Bubble
		}
		program[0] = addImm(0, 2, 1)       // r2 = 1
		program[1] = addImm(1, 3, 0x2BC)   // r3 = 0x2BC (target, 9-bit wrapped = 0xBC)
		program[2] = isa.Instruction{PC: 2, Opcode: isa.OpBeq, Rs: 2, Rt: 1, Rd: 3, Imm: 1}
		program[0xBC] = addImm(0xBC, 7, 42)

		c := pipeline.NewCore(0, program, cache.New())
		run(c, 25)

		Expect(c.Regs.Read(7)).To(Equal(int32(42)), "branch must mask its target to 9 bits")
	})

	It("jal jumps to the low 9 bits of R[rd] and links PC+1", func() {
		program := make([]isa.Instruction, 0x1FF+10)
		for i := range program {
			program[i] = isa.Bubble
		}
		program[0] = addImm(0, 3, 0xABC) // r3 = 0xABC (target, 9-bit wrapped = 0xBC)
		program[1] = isa.Instruction{PC: 1, Opcode: isa.OpJal, Rd: 3}
		program[0xBC] = addImm(0xBC, 7, 42)

		c := pipeline.NewCore(0, program, cache.New())
		run(c, 15)
		Expect(c.Regs.Read(pipeline.LinkRegister)).To(Equal(int32(2)), "jal must link PC+1")

		run(c, 15)
		Expect(c.Regs.Read(7)).To(Equal(int32(42)), "jal must jump to R[rd]&0x1FF")
	})

	It("services a sw then lw as cache hits once the block is resident", func() {
		program := []isa.Instruction{
			addImm(0, 2, 0x100),                                      // r2 = address
			addImm(1, 4, 7),                                          // r4 = value to store
			{PC: 2, Opcode: isa.OpSw, Rd: 4, Rs: 2, Rt: 0},            // MEM[r2] = r4
			{PC: 3, Opcode: isa.OpLw, Rd: 6, Rs: 2, Rt: 0},            // r6 = MEM[r2]
			{PC: 4, Opcode: isa.OpHalt},
		}
		cch := cache.New()
		cch.Install(0x100, mem.Block{}, cache.Exclusive, 0)
		c := pipeline.NewCore(0, program, cch)
		run(c, 25)

		Expect(c.Regs.Read(6)).To(Equal(int32(7)))
		Expect(c.Stats.WriteHit).To(Equal(uint64(1)))
		Expect(c.Stats.ReadHit).To(Equal(uint64(1)))
	})

	It("counts exactly one miss event while a memory stage stalls waiting on the bus", func() {
		program := []isa.Instruction{
			addImm(0, 2, 0x100),
			{PC: 1, Opcode: isa.OpLw, Rd: 6, Rs: 2, Rt: 0},
			{PC: 2, Opcode: isa.OpHalt},
		}
		c := pipeline.NewCore(0, program, cache.New())
		run(c, 10) // the lw waits in Decode for r2, then reaches Memory on the ninth tick

		Expect(c.Stats.ReadMiss).To(Equal(uint64(1)))
		Expect(c.Halted()).To(BeFalse())
		addr, isWrite, requesting := c.PeekMemRequest()
		Expect(requesting).To(BeTrue())
		Expect(isWrite).To(BeFalse())
		Expect(addr).To(Equal(0x100))

		run(c, 20) // still stuck: nothing ever calls InstallBlock
		Expect(c.Stats.ReadMiss).To(Equal(uint64(1)), "a stalled miss must not be recounted every cycle")
	})
})

package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mesisim/isa"
)

var _ = Describe("DecodeLine", func() {
	It("decodes add R2,R0,R1 imm=5", func() {
		inst, err := isa.DecodeLine("00201005", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Opcode).To(Equal(isa.OpAdd))
		Expect(inst.Rd).To(Equal(uint8(2)))
		Expect(inst.Rs).To(Equal(uint8(0)))
		Expect(inst.Rt).To(Equal(uint8(1)))
		Expect(inst.Imm).To(Equal(int32(5)))
		Expect(inst.PC).To(Equal(0))
	})

	It("decodes halt", func() {
		inst, err := isa.DecodeLine("14000000", 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Opcode).To(Equal(isa.OpHalt))
	})

	It("sign-extends a negative immediate", func() {
		// imm field = 0xFFF -> -1
		inst, err := isa.DecodeLine("00000FFF", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Imm).To(Equal(int32(-1)))
	})

	It("rejects lines that are not 8 hex digits", func() {
		_, err := isa.DecodeLine("0012", 0)
		Expect(err).To(HaveOccurred())
	})

	It("rejects lines with invalid hex digits", func() {
		_, err := isa.DecodeLine("0020100Z", 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SignExtend12", func() {
	It("leaves small positive values unchanged", func() {
		Expect(isa.SignExtend12(5)).To(Equal(int32(5)))
	})

	It("sign-extends the max negative 12-bit pattern", func() {
		Expect(isa.SignExtend12(0x800)).To(Equal(int32(-2048)))
	})

	It("leaves the maximum positive 12-bit value unchanged", func() {
		Expect(isa.SignExtend12(0x7FF)).To(Equal(int32(2047)))
	})
})

var _ = Describe("Opcode predicates", func() {
	It("classifies R-type opcodes", func() {
		Expect(isa.OpAdd.IsRType()).To(BeTrue())
		Expect(isa.OpMul.IsRType()).To(BeTrue())
		Expect(isa.OpLw.IsRType()).To(BeFalse())
	})

	It("classifies branch opcodes including jal", func() {
		Expect(isa.OpBeq.IsBranch()).To(BeTrue())
		Expect(isa.OpJal.IsBranch()).To(BeTrue())
		Expect(isa.OpAdd.IsBranch()).To(BeFalse())
	})

	It("classifies memory opcodes", func() {
		Expect(isa.OpLw.IsMemory()).To(BeTrue())
		Expect(isa.OpSw.IsMemory()).To(BeTrue())
		Expect(isa.OpAdd.IsMemory()).To(BeFalse())
	})

	It("treats STALL and HALT as bubbles", func() {
		Expect(isa.OpStall.IsBubble()).To(BeTrue())
		Expect(isa.OpHalt.IsBubble()).To(BeTrue())
		Expect(isa.OpAdd.IsBubble()).To(BeFalse())
	})
})

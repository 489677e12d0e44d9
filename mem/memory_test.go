package mem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mesisim/mem"
)

var _ = Describe("Memory", func() {
	var m *mem.Memory

	BeforeEach(func() {
		m = mem.New()
	})

	It("reads zero from any address never written", func() {
		Expect(m.ReadWord(100)).To(Equal(uint32(0)))
	})

	It("stores and reads back a single word", func() {
		m.WriteWord(3, 0xDEADBEEF)
		Expect(m.ReadWord(3)).To(Equal(uint32(0xDEADBEEF)))
	})

	It("reads a block as four consecutive words", func() {
		m.WriteWord(8, 1)
		m.WriteWord(9, 2)
		m.WriteWord(10, 3)
		m.WriteWord(11, 4)
		Expect(m.ReadBlock(2)).To(Equal(mem.Block{1, 2, 3, 4}))
	})

	It("writes a whole block at once", func() {
		m.WriteBlock(5, mem.Block{10, 20, 30, 40})
		Expect(m.ReadWord(20)).To(Equal(uint32(10)))
		Expect(m.ReadWord(23)).To(Equal(uint32(40)))
	})

	It("grows Len to the highest touched address", func() {
		m.WriteWord(50, 1)
		Expect(m.Len()).To(Equal(51))
	})

	It("does not shrink when a lower address is written after a higher one", func() {
		m.WriteWord(50, 1)
		m.WriteWord(2, 2)
		Expect(m.Len()).To(Equal(51))
	})
})

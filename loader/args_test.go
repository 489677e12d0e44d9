package loader_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mesisim/loader"
)

var _ = Describe("ResolveFiles", func() {
	It("returns default names with no arguments", func() {
		f, err := loader.ResolveFiles(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IMEM[0]).To(Equal("imem0.txt"))
		Expect(f.IMEM[3]).To(Equal("imem3.txt"))
		Expect(f.MemIn).To(Equal("memin.txt"))
		Expect(f.MemOut).To(Equal("memout.txt"))
		Expect(f.BusTrace).To(Equal("bustrace.txt"))
		Expect(f.CoreTrace[0]).To(Equal("core0trace.txt"))
		Expect(f.Stats[3]).To(Equal("stats3.txt"))
	})

	It("accepts exactly 27 positional arguments in order", func() {
		args := make([]string, 27)
		for i := range args {
			args[i] = string(rune('a' + i))
		}
		f, err := loader.ResolveFiles(args)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IMEM[0]).To(Equal("a"))
		Expect(f.IMEM[3]).To(Equal("d"))
		Expect(f.MemIn).To(Equal("e"))
		Expect(f.MemOut).To(Equal("f"))
		Expect(f.RegOut[0]).To(Equal("g"))
		Expect(f.RegOut[3]).To(Equal("j"))
		Expect(f.CoreTrace[0]).To(Equal("k"))
		Expect(f.CoreTrace[3]).To(Equal("n"))
		Expect(f.BusTrace).To(Equal("o"))
		Expect(f.DSRAM[0]).To(Equal("p"))
		Expect(f.DSRAM[3]).To(Equal("s"))
		Expect(f.TSRAM[0]).To(Equal("t"))
		Expect(f.TSRAM[3]).To(Equal("w"))
		Expect(f.Stats[0]).To(Equal("x"))
		Expect(f.Stats[3]).To(Equal("{"))
	})

	It("falls back to default names on any other argument count", func() {
		f, err := loader.ResolveFiles([]string{"only-one"})
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(loader.DefaultFiles()))
	})
})

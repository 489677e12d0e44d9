package bus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mesisim/bus"
)

var _ = Describe("Arbiter", func() {
	It("grants in ID order when all four request at once, then rotates", func() {
		a := bus.NewArbiter()
		req := [4]bool{true, true, true, true}

		first, ok := a.Grant(req)
		Expect(ok).To(BeTrue())
		Expect(first).To(Equal(0))

		second, ok := a.Grant(req)
		Expect(ok).To(BeTrue())
		Expect(second).To(Equal(1))
	})

	It("skips non-requesting cores", func() {
		a := bus.NewArbiter()
		req := [4]bool{false, false, true, false}

		winner, ok := a.Grant(req)
		Expect(ok).To(BeTrue())
		Expect(winner).To(Equal(2))
	})

	It("reports no grant when nobody is requesting", func() {
		a := bus.NewArbiter()
		_, ok := a.Grant([4]bool{})
		Expect(ok).To(BeFalse())
	})

	It("lets a core that loses the race win again next time after the winner rotates away", func() {
		a := bus.NewArbiter()
		req := [4]bool{true, true, false, false}

		winner, _ := a.Grant(req) // 0 wins, rotates to back: [1,2,3,0]
		Expect(winner).To(Equal(0))

		winner, _ = a.Grant(req) // 1 wins: 0 still requests but is now behind 1; queue becomes [2,3,0,1]
		Expect(winner).To(Equal(1))

		winner, _ = a.Grant(req) // 2 and 3 are not requesting, so 0 (ahead of 1) wins
		Expect(winner).To(Equal(0))
	})
})

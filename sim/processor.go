// Package sim owns the whole machine: four cores, the shared bus, and
// main memory, and drives them cycle by cycle per spec.md §4.4. It is
// the one place that holds every core's cache at once, since bus
// arbitration and snoop resolution need to see all four together.
package sim

import (
	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/config"
	"github.com/sarchlab/mesisim/isa"
	"github.com/sarchlab/mesisim/mem"
	"github.com/sarchlab/mesisim/pipeline"
	"github.com/sarchlab/mesisim/trace"
)

// NumCores is the fixed core count this simulator drives.
const NumCores = 4

// Processor is the owner-aggregate: four cores, their caches, the
// shared bus, and main memory. Per-tick step functions take explicit
// references to these rather than cross-linking the cores and bus
// with shared mutable pointers, per spec.md §9.
type Processor struct {
	Cores  [NumCores]*pipeline.Core
	caches [NumCores]*cache.Cache
	Memory *mem.Memory
	Bus    *bus.Bus

	cycle     uint64
	busTrace  []bus.TraceLine
	coreTrace [NumCores][]string
}

// NewProcessor builds a processor from four instruction images and a
// shared main-memory image, using the spec-mandated bus timing. Each
// core gets its own empty cache.
func NewProcessor(programs [NumCores][]isa.Instruction, memory *mem.Memory) *Processor {
	return NewProcessorWithConfig(programs, memory, config.Default())
}

// NewProcessorWithConfig is NewProcessor with overridable bus timing,
// for experimentation via a loaded config.Config.
func NewProcessorWithConfig(programs [NumCores][]isa.Instruction, memory *mem.Memory, cfg *config.Config) *Processor {
	p := &Processor{Memory: memory, Bus: bus.NewWithConfig(cfg)}
	for i := 0; i < NumCores; i++ {
		p.caches[i] = cache.New()
		p.Cores[i] = pipeline.NewCore(i, programs[i], p.caches[i])
	}
	return p
}

// Done reports whether every core has retired its HALT.
func (p *Processor) Done() bool {
	for _, c := range p.Cores {
		if !c.Halted() {
			return false
		}
	}
	return true
}

// Cache returns core i's private cache, for dsram/tsram dumps.
func (p *Processor) Cache(i int) *cache.Cache { return p.caches[i] }

// Cycle returns the number of ticks run so far.
func (p *Processor) Cycle() uint64 { return p.cycle }

// BusTrace returns every bus trace line emitted so far.
func (p *Processor) BusTrace() []bus.TraceLine { return p.busTrace }

// CoreTrace returns core i's per-cycle pipeline trace lines.
func (p *Processor) CoreTrace(i int) []string { return p.coreTrace[i] }

// Tick advances the whole machine by one cycle: arbitrate the bus if
// it is free, apply any snoop effects and a ready transaction's
// install immediately (so this cycle's pipeline step already observes
// them), then advance every core's pipeline.
func (p *Processor) Tick() {
	p.cycle++

	if !p.Bus.Busy() {
		var requesting [NumCores]bool
		var addrs [NumCores]int
		var writes [NumCores]bool
		for i, c := range p.Cores {
			addr, isWrite, ok := c.PeekMemRequest()
			requesting[i], addrs[i], writes[i] = ok, addr, isWrite
		}
		if line, granted := p.Bus.TryGrant(p.cycle, requesting, addrs, writes, p.caches, p.Memory); granted {
			p.busTrace = append(p.busTrace, line)
		}
	}

	if line, emitted := p.Bus.Tick(p.cycle); emitted {
		p.busTrace = append(p.busTrace, line)
	}

	if txn, ready := p.Bus.Ready(); ready {
		p.Cores[txn.Origin].InstallBlock(p.cycle, txn.Snoop)
		p.Bus.Release()
	}

	for i, c := range p.Cores {
		p.coreTrace[i] = append(p.coreTrace[i], trace.CoreTraceLine(p.cycle, c.Stages()))
		c.Tick(p.cycle)
	}
}

// Run ticks the machine until every core has halted or maxCycles is
// reached (a safety bound against a program that never halts).
func (p *Processor) Run(maxCycles uint64) {
	for p.cycle < maxCycles && !p.Done() {
		p.Tick()
	}
}

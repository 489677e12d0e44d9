package core

import "strconv"

// Stats holds the per-core counters statsN.txt reports, in the fixed
// order spec.md §6 mandates.
type Stats struct {
	TotalCycles       uint64
	TotalInstructions uint64
	ReadHit           uint64
	WriteHit          uint64
	ReadMiss          uint64
	WriteMiss         uint64

	// DecodeStallRaw counts every cycle Writeback held STALL. The
	// reported decode_stall (see FinalizeDecodeStalls) subtracts the
	// unavoidable 4-cycle pipeline fill and MemStall from this raw count
	// so it reflects decode-induced stalls only (spec.md §4.1, I5).
	DecodeStallRaw uint64
	MemStall       uint64
}

// pipelineFillCycles is the fixed number of cycles needed to drain a
// 5-stage pipeline once fetch stops producing new instructions.
const pipelineFillCycles = 4

// DecodeStall returns the decode-induced stall count reported in
// statsN.txt: the raw count of cycles Writeback held STALL, with the
// unavoidable fill cycles and memory stalls subtracted out.
func (s Stats) DecodeStall() uint64 {
	v := int64(s.DecodeStallRaw) - int64(s.MemStall) - pipelineFillCycles
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// Lines returns the eight "name value" lines statsN.txt is written as, in
// order: cycles, instructions, read_hit, write_hit, read_miss, write_miss,
// decode_stall, mem_stall.
func (s Stats) Lines() []string {
	return []string{
		line("cycles", s.TotalCycles),
		line("instructions", s.TotalInstructions),
		line("read_hit", s.ReadHit),
		line("write_hit", s.WriteHit),
		line("read_miss", s.ReadMiss),
		line("write_miss", s.WriteMiss),
		line("decode_stall", s.DecodeStall()),
		line("mem_stall", s.MemStall),
	}
}

func line(name string, value uint64) string {
	return name + " " + strconv.FormatUint(value, 10)
}

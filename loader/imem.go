// Package loader parses the external inputs the simulator consumes: the
// per-core instruction images (imemN.txt) produced by the (out-of-scope)
// hex assembler, and the flat main-memory image (memin.txt). It also
// resolves the CLI's file-path contract (spec.md §6).
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/mesisim/isa"
	"github.com/sarchlab/mesisim/mem"
)

// IMEMSize is the fixed instruction-memory capacity per core.
const IMEMSize = 1024

// trailingStalls is the number of STALL instructions appended after the
// synthesized HALT, room permitting, to guarantee pipeline drain.
const trailingStalls = 5

// LoadIMEM reads an instruction image from path and returns a fixed
// IMEMSize-entry instruction array. Blank/whitespace-only lines are
// skipped; a line with other than 8 hex digits is reported on diag and
// skipped (not fatal). A HALT is appended after the last parsed line,
// followed by up to trailingStalls STALL instructions if room remains.
func LoadIMEM(path string, diag func(format string, args ...any)) ([IMEMSize]isa.Instruction, error) {
	var image [IMEMSize]isa.Instruction
	for i := range image {
		image[i] = isa.Bubble
	}

	f, err := os.Open(path)
	if err != nil {
		return image, fmt.Errorf("opening instruction image %q: %w", path, err)
	}
	defer f.Close()

	if diag == nil {
		diag = func(string, ...any) {}
	}

	idx := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && idx < IMEMSize-1 {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		inst, err := isa.DecodeLine(line, idx)
		if err != nil {
			diag("%s: %v", path, err)
			continue
		}

		image[idx] = inst
		idx++
	}
	if err := scanner.Err(); err != nil {
		return image, fmt.Errorf("reading instruction image %q: %w", path, err)
	}

	if idx < IMEMSize {
		image[idx] = isa.Instruction{PC: idx, Opcode: isa.OpHalt}
		idx++
	}
	for i := 0; i < trailingStalls && idx < IMEMSize; i++ {
		image[idx] = isa.Instruction{PC: idx, Opcode: isa.OpStall}
		idx++
	}

	return image, nil
}

// LoadMemin reads the flat memory image: one 32-bit hex word per line,
// line N is word N. A missing tail is implicitly zero.
func LoadMemin(path string) (*mem.Memory, error) {
	m := mem.New()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening memory image %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	addr := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			addr++
			continue
		}
		var word uint32
		if _, err := fmt.Sscanf(line, "%x", &word); err != nil {
			return nil, fmt.Errorf("parsing memory image %q line %d (%q): %w", path, addr, line, err)
		}
		m.WriteWord(addr, word)
		addr++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading memory image %q: %w", path, err)
	}

	return m, nil
}

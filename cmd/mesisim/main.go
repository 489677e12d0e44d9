// Package main provides the entry point for mesisim, a cycle-accurate
// four-core MESI pipeline simulator.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/mesisim/config"
	"github.com/sarchlab/mesisim/isa"
	"github.com/sarchlab/mesisim/loader"
	"github.com/sarchlab/mesisim/sim"
	"github.com/sarchlab/mesisim/trace"
)

var (
	verbose    = flag.Bool("v", false, "Verbose output")
	maxCycles  = flag.Uint64("max-cycles", 1_000_000, "Safety bound on simulated cycles")
	configPath = flag.String("config", "", "Path to a JSON bus timing override file")
)

func main() {
	flag.Parse()

	files, err := loader.ResolveFiles(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "mesisim: %v\n", err)
		fmt.Fprintf(os.Stderr, "Usage: mesisim [options] [27 file arguments]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(files); err != nil {
		fmt.Fprintf(os.Stderr, "mesisim: %v\n", err)
		os.Exit(1)
	}
}

func run(files loader.Files) error {
	var diagnostics []string
	diag := func(format string, args ...any) {
		diagnostics = append(diagnostics, fmt.Sprintf(format, args...))
	}

	var programs [sim.NumCores][]isa.Instruction
	for i := 0; i < sim.NumCores; i++ {
		image, err := loader.LoadIMEM(files.IMEM[i], diag)
		if err != nil {
			return fmt.Errorf("core %d: %w", i, err)
		}
		programs[i] = image[:]
	}

	memory, err := loader.LoadMemin(files.MemIn)
	if err != nil {
		return fmt.Errorf("loading %s: %w", files.MemIn, err)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", *configPath, err)
		}
	}

	for _, line := range diagnostics {
		fmt.Fprintln(os.Stderr, line)
	}

	p := sim.NewProcessorWithConfig(programs, memory, cfg)
	p.Run(*maxCycles)

	if *verbose {
		fmt.Printf("halted after %d cycles\n", p.Cycle())
	}

	return writeOutputs(p, files)
}

func writeOutputs(p *sim.Processor, files loader.Files) error {
	if err := writeLines(files.BusTrace, busTraceLines(p)); err != nil {
		return err
	}
	if err := writeLines(files.MemOut, trace.MemOutLines(p.Memory)); err != nil {
		return err
	}

	for i := 0; i < sim.NumCores; i++ {
		if err := writeLines(files.RegOut[i], trace.RegOutLines(p.Cores[i].Regs.Snapshot())); err != nil {
			return err
		}
		if err := writeLines(files.DSRAM[i], trace.DSRAMLines(p.Cache(i))); err != nil {
			return err
		}
		if err := writeLines(files.TSRAM[i], trace.TSRAMLines(p.Cache(i))); err != nil {
			return err
		}
		if err := writeLines(files.Stats[i], p.Cores[i].Stats.Lines()); err != nil {
			return err
		}
		if err := writeLines(files.CoreTrace[i], p.CoreTrace(i)); err != nil {
			return err
		}
	}

	return nil
}

func busTraceLines(p *sim.Processor) []string {
	events := p.BusTrace()
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = trace.BusTraceLine(e)
	}
	return lines
}

func writeLines(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

package loader

import "fmt"

// NumCores is the fixed core count.
const NumCores = 4

// Files names every input/output path the simulator touches, in the
// fixed CLI order of spec.md §6: imem0..3, memin, memout, regout0..3,
// core0trace..3, bustrace, dsram0..3, tsram0..3, stats0..3.
type Files struct {
	IMEM       [NumCores]string
	MemIn      string
	MemOut     string
	RegOut     [NumCores]string
	CoreTrace  [NumCores]string
	BusTrace   string
	DSRAM      [NumCores]string
	TSRAM      [NumCores]string
	Stats      [NumCores]string
}

// expectedArgs is the total positional-argument count the CLI accepts.
const expectedArgs = 4 + 1 + 1 + 4 + 4 + 1 + 4 + 4 + 4

// DefaultFiles returns the conventional default file names used when the
// CLI receives no positional arguments.
func DefaultFiles() Files {
	var f Files
	for i := 0; i < NumCores; i++ {
		f.IMEM[i] = fmt.Sprintf("imem%d.txt", i)
		f.RegOut[i] = fmt.Sprintf("regout%d.txt", i)
		f.CoreTrace[i] = fmt.Sprintf("core%dtrace.txt", i)
		f.DSRAM[i] = fmt.Sprintf("dsram%d.txt", i)
		f.TSRAM[i] = fmt.Sprintf("tsram%d.txt", i)
		f.Stats[i] = fmt.Sprintf("stats%d.txt", i)
	}
	f.MemIn = "memin.txt"
	f.MemOut = "memout.txt"
	f.BusTrace = "bustrace.txt"
	return f
}

// ResolveFiles implements the CLI contract: if exactly 27 file-path
// arguments are supplied, use them in the fixed order; otherwise fall
// back to the default names.
func ResolveFiles(args []string) (Files, error) {
	if len(args) != expectedArgs {
		return DefaultFiles(), nil
	}

	var f Files
	i := 0
	next := func() string {
		v := args[i]
		i++
		return v
	}

	for c := 0; c < NumCores; c++ {
		f.IMEM[c] = next()
	}
	f.MemIn = next()
	f.MemOut = next()
	for c := 0; c < NumCores; c++ {
		f.RegOut[c] = next()
	}
	for c := 0; c < NumCores; c++ {
		f.CoreTrace[c] = next()
	}
	f.BusTrace = next()
	for c := 0; c < NumCores; c++ {
		f.DSRAM[c] = next()
	}
	for c := 0; c < NumCores; c++ {
		f.TSRAM[c] = next()
	}
	for c := 0; c < NumCores; c++ {
		f.Stats[c] = next()
	}

	return f, nil
}

// Package bus implements the shared snooping bus: round-robin
// arbitration among core requesters, MESI snoop resolution and
// cache-to-cache transfer, and the timing/trace model of spec.md §4.3.
package bus

// Command is one of the four bus transaction types. The numeric values
// match the cmd field bustrace.txt reports.
type Command uint8

const (
	NoCmd  Command = 0
	BusRd  Command = 1
	BusRdX Command = 2
	Flush  Command = 3
)

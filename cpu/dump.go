package cpu

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// snapshot is a plain-data copy of the registers worth dumping, kept
// separate from CPU itself so spew.Sdump doesn't also walk the Bus.
type snapshot struct {
	Phase       string
	IP, SP, DP  uint16
	D0, D1, D2  uint16
	Instruction uint16
	Immediate   uint16
	Pipeline    []uint16
	DataIn      uint16
	ALUOut      uint16
	Flags       uint16
}

// CoreDump renders the current register file, pipeline, and phase as a
// human-readable dump (spec.md §7a, §4.5's BRK behavior). It never
// touches the bus, so it is safe to call from a panic handler mid-fatal.
func (c *CPU) CoreDump() string {
	pipeline := make([]uint16, len(c.pipeline))
	for i, v := range c.pipeline {
		pipeline[i] = uint16(v)
	}
	s := snapshot{
		Phase:       c.phase.String(),
		IP:          uint16(c.IP),
		SP:          uint16(c.SP),
		DP:          uint16(c.DP),
		D0:          uint16(c.D0),
		D1:          uint16(c.D1),
		D2:          uint16(c.D2),
		Instruction: uint16(c.Instruction),
		Immediate:   uint16(c.Immediate),
		Pipeline:    pipeline,
		DataIn:      uint16(c.DataIn),
		ALUOut:      uint16(c.ALUOut),
		Flags:       uint16(c.Flags),
	}

	var b strings.Builder
	fmt.Fprintln(&b, "EMU101 core dump")
	fmt.Fprintf(&b, "phase: %s\n", s.Phase)
	b.WriteString(spew.Sdump(s))
	return b.String()
}

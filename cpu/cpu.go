// Package cpu implements the EMU101 processor: a 16-bit, word-addressed
// machine with a 3-phase fetch/decode/execute pipeline and a single
// instruction encoding that simultaneously selects an ALU operation,
// a memory addressing mode, a writeback destination, and a condition
// gate.
package cpu

import (
	"fmt"

	"github.com/en0/emu101/isa"
	"github.com/en0/emu101/mem"
	"github.com/en0/emu101/word"
)

// Phase names a step of the instruction cycle. Exactly one phase handler
// runs per Tick call.
type Phase int

const (
	PhaseFetch Phase = iota
	PhaseDecode
	PhaseExecute
)

func (p Phase) String() string {
	switch p {
	case PhaseFetch:
		return "fetch"
	case PhaseDecode:
		return "decode"
	case PhaseExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// Reset values for the address registers. ROM conventionally lives at
// 0xf000 and up; the stack starts just below a 0x0200 data segment.
const (
	resetIP word.Word = 0xf000
	resetSP word.Word = 0x01ff
	resetDP word.Word = 0x0200
)

// CPU has no memory of its own beyond its registers and a 2-deep
// instruction pipeline; all addressable state lives behind Bus.
type CPU struct {
	Bus *mem.Bus

	// Address registers.
	IP word.Word
	SP word.Word
	DP word.Word

	// Data registers.
	D0 word.Word
	D1 word.Word
	D2 word.Word

	// Internal registers, exposed mainly for CoreDump and tests.
	Instruction word.Word
	Immediate   word.Word
	DataIn      word.Word
	ALUOut      word.Word
	Flags       word.Word

	// pipeline holds prefetched words in FIFO order: index 0 is the
	// oldest (next to be consumed by decode or an immediate pop).
	pipeline []word.Word

	phase   Phase
	decoded isa.Instruction

	halted   bool
	broke    bool
	lastDump string
}

// New wires a CPU to a bus and sets the registers to their reset values.
func New(bus *mem.Bus) *CPU {
	return &CPU{
		Bus: bus,
		IP:  resetIP,
		SP:  resetSP,
		DP:  resetDP,
	}
}

// Halted reports whether the CPU has executed an HLT or BRK opcode.
func (c *CPU) Halted() bool { return c.halted }

// Broke reports whether the CPU's last halt was triggered by BRK rather
// than HLT.
func (c *CPU) Broke() bool { return c.broke }

// LastDump returns the register dump produced by the most recent BRK or
// fatal invariant violation, or the empty string if neither has
// occurred yet.
func (c *CPU) LastDump() string { return c.lastDump }

// PipelineLen reports the number of words currently prefetched. It is
// always 0, 1, or 2; anything else is a fatal internal error.
func (c *CPU) PipelineLen() int { return len(c.pipeline) }

func (c *CPU) pushPipeline(v word.Word) {
	c.pipeline = append(c.pipeline, v)
}

// popPipeline removes and returns the oldest prefetched word. Callers
// must check PipelineLen first; an empty pop is a programming error, not
// a state the machine can reach on its own.
func (c *CPU) popPipeline() word.Word {
	v := c.pipeline[0]
	c.pipeline = c.pipeline[1:]
	return v
}

func (c *CPU) fatal(format string, args ...any) {
	c.lastDump = c.CoreDump()
	panic(fmt.Sprintf(format, args...))
}

// Tick advances the CPU exactly one phase (fetch, decode, or execute; a
// full instruction is 3+ ticks, one extra per pending fetch). It
// returns false iff the CPU is halted, whether by HLT or by BRK.
func (c *CPU) Tick() bool {
	if c.halted {
		return false
	}
	switch c.phase {
	case PhaseFetch:
		c.stepFetch()
	case PhaseDecode:
		c.stepDecode()
	case PhaseExecute:
		c.stepExecute()
	}
	return !c.halted
}

// Run ticks the CPU until it halts, recovering from any fatal internal
// invariant violation and returning it as an error (with a core dump
// already captured in LastDump). A normal HLT or BRK is not an error.
func (c *CPU) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("emu101: %v", r)
		}
	}()
	for c.Tick() {
	}
	return nil
}

func (c *CPU) stepFetch() {
	if len(c.pipeline) >= 2 {
		c.fatal("pipeline overflow at ip=%04x", c.IP)
	}
	v := c.Bus.Read(c.IP)
	c.IP = c.IP.Inc()
	c.pushPipeline(v)
	if len(c.pipeline) == 2 {
		c.phase = PhaseDecode
	}
}

func (c *CPU) stepDecode() {
	if len(c.pipeline) == 0 {
		c.fatal("decode with empty pipeline")
	}
	opcode := c.popPipeline()
	c.Instruction = opcode

	switch opcode {
	case isa.OpHalt:
		c.halted = true
	case isa.OpBreak:
		c.broke = true
		c.halted = true
		c.lastDump = c.CoreDump()
	default:
		c.decoded = isa.Decode(opcode)
	}

	c.phase = PhaseExecute
}

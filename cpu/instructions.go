package cpu

import (
	"github.com/en0/emu101/isa"
	"github.com/en0/emu101/word"
)

// stepExecute runs the three execute substeps (ALU, memory I/O,
// writeback) in one tick and returns to FETCH. Unlike FETCH, which may
// take two ticks to fill the pipeline, EXECUTE never spans more than
// one tick.
func (c *CPU) stepExecute() {
	c.executeALU()
	c.executeIO()
	c.executeStore()
	c.phase = PhaseFetch
}

func (c *CPU) conditionMet() bool {
	return c.Flags&word.Word(c.decoded.Cond) != 0
}

func (c *CPU) executeALU() {
	result := isa.Eval(c.decoded.Compute, isa.ALURegs{
		D0: c.D0, D1: c.D1, D2: c.D2,
		IP: c.IP, SP: c.SP, DP: c.DP,
	})
	c.ALUOut = result
	c.Flags = isa.FlagsFor(result)
}

// executeIO performs the memory access selected by IO/AddrMode. A read
// always happens and is never condition-gated; a write only happens
// when the condition mask matches the freshly computed flags.
func (c *CPU) executeIO() {
	switch c.decoded.IO {
	case isa.IORead:
		c.DataIn = c.Bus.Read(c.readAddress())
	case isa.IOWrite:
		if c.conditionMet() {
			c.Bus.Write(c.writeAddress(), c.ALUOut)
		}
	}
}

// readAddress computes the effective address for a read and applies
// the SP mode's post-increment side effect.
func (c *CPU) readAddress() word.Word {
	switch c.decoded.AddrMode {
	case isa.AddrDP:
		return c.DP
	case isa.AddrSP:
		addr := c.SP
		c.SP = c.SP.Inc()
		return addr
	case isa.AddrDPD0:
		return c.DP.Add(c.D0)
	case isa.AddrSPD0:
		return c.SP.Add(c.D0)
	default:
		c.fatal("unknown address mode %v", c.decoded.AddrMode)
		return 0
	}
}

// writeAddress computes the effective address for a write and applies
// the SP mode's pre-decrement side effect.
func (c *CPU) writeAddress() word.Word {
	switch c.decoded.AddrMode {
	case isa.AddrDP:
		return c.DP
	case isa.AddrSP:
		c.SP = c.SP.Dec()
		return c.SP
	case isa.AddrDPD0:
		return c.DP.Add(c.D0)
	case isa.AddrSPD0:
		return c.SP.Add(c.D0)
	default:
		c.fatal("unknown address mode %v", c.decoded.AddrMode)
		return 0
	}
}

// executeStore computes the writeback value and, if the condition
// mask matches, stores it to the selected destination. An IMMEDIATE
// source always pops the pending pipeline entry, regardless of whether
// the condition holds: the immediate word was fetched unconditionally
// and must not be left for the next instruction to mistake for its own
// opcode.
func (c *CPU) executeStore() {
	var val word.Word
	switch c.decoded.Source {
	case isa.SourceZero:
		val = 0
	case isa.SourceALU:
		val = c.ALUOut
	case isa.SourceData:
		val = c.DataIn
	case isa.SourceImmediate:
		if len(c.pipeline) == 0 {
			c.fatal("immediate source with empty pipeline")
		}
		c.Immediate = c.popPipeline()
		val = c.Immediate
	}

	if !c.conditionMet() {
		return
	}

	switch c.decoded.Dest {
	case isa.DestD0:
		c.D0 = val
	case isa.DestD1:
		c.D1 = val
	case isa.DestD2:
		c.D2 = val
	case isa.DestN1, isa.DestN2:
		// discards
	case isa.DestIP:
		c.IP = val
		c.pipeline = c.pipeline[:0]
	case isa.DestSP:
		c.SP = val
	case isa.DestDP:
		c.DP = val
	}
}

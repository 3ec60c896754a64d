// Package isa defines the EMU101 instruction encoding: the bit fields
// shared by the CPU decoder and the assembler's emitter, and the 32-entry
// ALU operation table. This is the single source of truth both sides
// agree on.
package isa

import (
	"github.com/en0/emu101/mask"
	"github.com/en0/emu101/word"
)

// Special opcodes bypass field decoding entirely.
const (
	OpHalt  word.Word = 0xFFFF
	OpBreak word.Word = 0x5555
	OpNop   word.Word = 0x0000
)

// Bit ranges of a non-special instruction word, MSB first (mask.I1 is
// bit 15, mask.I16 is bit 0).
var (
	fieldIO       = [2]mask.Index{mask.I1, mask.I1}
	fieldAddrMode = [2]mask.Index{mask.I2, mask.I3}
	fieldCompute  = [2]mask.Index{mask.I4, mask.I8}
	fieldSource   = [2]mask.Index{mask.I9, mask.I10}
	fieldDest     = [2]mask.Index{mask.I11, mask.I13}
	fieldCond     = [2]mask.Index{mask.I14, mask.I16}
)

// IO selects whether the instruction reads or writes memory.
type IO word.Word

const (
	IORead  IO = 0
	IOWrite IO = 1
)

// AddrMode selects the register (and auto-adjust behavior) used to form
// the effective memory address.
type AddrMode word.Word

const (
	AddrDP   AddrMode = 0b00
	AddrSP   AddrMode = 0b01
	AddrDPD0 AddrMode = 0b10
	AddrSPD0 AddrMode = 0b11
)

// Compute selects one of the 32 ALU operations.
type Compute word.Word

const (
	ComputeSubD0D0 Compute = 0b00000
	ComputeSubD0D1 Compute = 0b00001
	ComputeSubD0D2 Compute = 0b00010
	ComputeOutD0   Compute = 0b00011
	ComputeAddD0D0 Compute = 0b00100
	ComputeAddD0D1 Compute = 0b00101
	ComputeAddD0D2 Compute = 0b00110
	ComputeOutD1   Compute = 0b00111
	ComputeAndD0D0 Compute = 0b01000
	ComputeAndD0D1 Compute = 0b01001
	ComputeAndD0D2 Compute = 0b01010
	ComputeOutD2   Compute = 0b01011
	ComputeOrD0D0  Compute = 0b01100
	ComputeOrD0D1  Compute = 0b01101
	ComputeOrD0D2  Compute = 0b01110
	ComputeRollD0  Compute = 0b01111
	ComputeXorD0D0 Compute = 0b10000
	ComputeXorD0D1 Compute = 0b10001
	ComputeXorD0D2 Compute = 0b10010
	ComputeOutIP   Compute = 0b10011
	ComputeIncD0   Compute = 0b10100
	ComputeIncD1   Compute = 0b10101
	ComputeIncD2   Compute = 0b10110
	ComputeOutSP   Compute = 0b10111
	ComputeDecD0   Compute = 0b11000
	ComputeDecD1   Compute = 0b11001
	ComputeDecD2   Compute = 0b11010
	ComputeOutDP   Compute = 0b11011
	ComputeNotD0   Compute = 0b11100
	ComputeNotD1   Compute = 0b11101
	ComputeNotD2   Compute = 0b11110
	ComputeRolrD0  Compute = 0b11111
)

// Source selects where the writeback value comes from.
type Source word.Word

const (
	SourceZero      Source = 0b00
	SourceALU       Source = 0b01
	SourceData      Source = 0b10
	SourceImmediate Source = 0b11
)

// Dest selects the register that receives the writeback value. N1 and N2
// are both discards; only their encodings differ.
type Dest word.Word

const (
	DestD0 Dest = 0b000
	DestD1 Dest = 0b001
	DestD2 Dest = 0b010
	DestN1 Dest = 0b011
	DestIP Dest = 0b100
	DestSP Dest = 0b101
	DestDP Dest = 0b110
	DestN2 Dest = 0b111
)

// Cond is a 3-bit mask over the flag bits; the write is gated iff
// (flags & Cond) != 0.
type Cond word.Word

const (
	CondFalse Cond = 0b000
	CondLT    Cond = 0b001
	CondEQ    Cond = 0b010
	CondLE    Cond = 0b011
	CondGT    Cond = 0b100
	CondNE    Cond = 0b101
	CondGE    Cond = 0b110
	CondTrue  Cond = 0b111
)

// Flags, as reassigned wholesale after every ALU execute.
const (
	FlagLT word.Word = 0b001
	FlagEQ word.Word = 0b010
	FlagGT word.Word = 0b100
)

// Instruction is the decoded form of a non-special opcode.
type Instruction struct {
	IO       IO
	AddrMode AddrMode
	Compute  Compute
	Source   Source
	Dest     Dest
	Cond     Cond
}

// Decode splits a non-special opcode into its six fields. Callers must
// check for the special opcodes (HLT, BRK) before calling Decode.
func Decode(opcode word.Word) Instruction {
	return Instruction{
		IO:       IO(mask.Range(opcode, fieldIO[0], fieldIO[1])),
		AddrMode: AddrMode(mask.Range(opcode, fieldAddrMode[0], fieldAddrMode[1])),
		Compute:  Compute(mask.Range(opcode, fieldCompute[0], fieldCompute[1])),
		Source:   Source(mask.Range(opcode, fieldSource[0], fieldSource[1])),
		Dest:     Dest(mask.Range(opcode, fieldDest[0], fieldDest[1])),
		Cond:     Cond(mask.Range(opcode, fieldCond[0], fieldCond[1])),
	}
}

// Bit widths are fixed per field, so encoding is a plain shift-and-OR
// rather than a round trip through mask.Set (which infers a value's
// width from its own leading zeros, and so cannot place a field value
// that itself has leading zeros within its fixed-width slot, e.g.
// Compute=0b00011 in a 5-bit field).
const (
	shiftIO       = 15
	shiftAddrMode = 13
	shiftCompute  = 8
	shiftSource   = 6
	shiftDest     = 3
	shiftCond     = 0
)

// Encode packs the six fields back into a single opcode word. The
// assembler and the CPU's decode tests both rely on Encode/Decode being
// inverses (spec property: round-trip of a well-formed instruction).
func Encode(i Instruction) word.Word {
	return word.Word(i.IO)<<shiftIO |
		word.Word(i.AddrMode)<<shiftAddrMode |
		word.Word(i.Compute)<<shiftCompute |
		word.Word(i.Source)<<shiftSource |
		word.Word(i.Dest)<<shiftDest |
		word.Word(i.Cond)<<shiftCond
}

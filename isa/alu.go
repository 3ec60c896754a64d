package isa

import "github.com/en0/emu101/word"

// ALURegs is the subset of CPU register state the ALU reads to compute a
// result; it never writes through these fields directly (see
// cpu.CPU.executeALU for the writeback side).
type ALURegs struct {
	D0 word.Word
	D1 word.Word
	D2 word.Word
	IP word.Word
	SP word.Word
	DP word.Word
}

// Eval computes the 16-bit-truncated result of the given ALU operation.
// Flags are derived separately by the caller from the returned value's
// signed comparison to zero (spec.md §4.1, §9.2).
func Eval(c Compute, r ALURegs) word.Word {
	switch c {
	case ComputeSubD0D0:
		return r.D0.Sub(r.D0)
	case ComputeSubD0D1:
		return r.D0.Sub(r.D1)
	case ComputeSubD0D2:
		return r.D0.Sub(r.D2)
	case ComputeOutD0:
		return r.D0
	case ComputeAddD0D0:
		return r.D0.Add(r.D0)
	case ComputeAddD0D1:
		return r.D0.Add(r.D1)
	case ComputeAddD0D2:
		return r.D0.Add(r.D2)
	case ComputeOutD1:
		return r.D1
	case ComputeAndD0D0:
		return r.D0 & r.D0
	case ComputeAndD0D1:
		return r.D0 & r.D1
	case ComputeAndD0D2:
		return r.D0 & r.D2
	case ComputeOutD2:
		return r.D2
	case ComputeOrD0D0:
		return r.D0 | r.D0
	case ComputeOrD0D1:
		return r.D0 | r.D1
	case ComputeOrD0D2:
		return r.D0 | r.D2
	case ComputeRollD0:
		return r.D0.Shl()
	case ComputeXorD0D0:
		return r.D0 ^ r.D0
	case ComputeXorD0D1:
		return r.D0 ^ r.D1
	case ComputeXorD0D2:
		return r.D0 ^ r.D2
	case ComputeOutIP:
		return r.IP
	case ComputeIncD0:
		return r.D0.Inc()
	case ComputeIncD1:
		return r.D1.Inc()
	case ComputeIncD2:
		return r.D2.Inc()
	case ComputeOutSP:
		return r.SP
	case ComputeDecD0:
		return r.D0.Dec()
	case ComputeDecD1:
		return r.D1.Dec()
	case ComputeDecD2:
		return r.D2.Dec()
	case ComputeOutDP:
		return r.DP
	case ComputeNotD0:
		return r.D0.Not()
	case ComputeNotD1:
		return r.D1.Not()
	case ComputeNotD2:
		return r.D2.Not()
	case ComputeRolrD0:
		return r.D0.Shr()
	default:
		// Compute is a 5-bit field; every one of the 32 values is
		// assigned above, so this is unreachable for a value produced
		// by Decode.
		return 0
	}
}

// FlagsFor derives the 3-bit flag word from the signed comparison of an
// ALU result to zero. Exactly one of LT/EQ/GT is ever set (spec.md
// §4.1, §9.2).
func FlagsFor(result word.Word) word.Word {
	switch {
	case result.Signed() > 0:
		return FlagGT
	case result.Signed() < 0:
		return FlagLT
	default:
		return FlagEQ
	}
}

// ComputeMnemonics maps the assembler's ALU-operation source tokens
// (spec.md §4.6) to their Compute selector, ported from the original's
// compute_map (original_source/emu101asm/assembler.py).
var ComputeMnemonics = map[string]Compute{
	"sub d0": ComputeSubD0D0,
	"sub d1": ComputeSubD0D1,
	"sub d2": ComputeSubD0D2,
	"d0":     ComputeOutD0,
	"add d0": ComputeAddD0D0,
	"add d1": ComputeAddD0D1,
	"add d2": ComputeAddD0D2,
	"d1":     ComputeOutD1,
	"and d0": ComputeAndD0D0,
	"and d1": ComputeAndD0D1,
	"and d2": ComputeAndD0D2,
	"d2":     ComputeOutD2,
	"or d0":  ComputeOrD0D0,
	"or d1":  ComputeOrD0D1,
	"or d2":  ComputeOrD0D2,
	"shl":    ComputeRollD0,
	"xor d0": ComputeXorD0D0,
	"xor d1": ComputeXorD0D1,
	"xor d2": ComputeXorD0D2,
	"ip":     ComputeOutIP,
	"inc d0": ComputeIncD0,
	"inc d1": ComputeIncD1,
	"inc d2": ComputeIncD2,
	"sp":     ComputeOutSP,
	"dec d0": ComputeDecD0,
	"dec d1": ComputeDecD1,
	"dec d2": ComputeDecD2,
	"dp":     ComputeOutDP,
	"not d0": ComputeNotD0,
	"not d1": ComputeNotD1,
	"not d2": ComputeNotD2,
	"shr":    ComputeRolrD0,
}

// ConditionMnemonics maps the assembler's condition tokens to their
// 3-bit Cond mask, ported from the original's condition_map.
var ConditionMnemonics = map[string]Cond{
	"gt":    CondGT,
	"ge":    CondGE,
	"eq":    CondEQ,
	"le":    CondLE,
	"lt":    CondLT,
	"ne":    CondNE,
	"z":     CondEQ,
	"nz":    CondNE,
	"true":  CondTrue,
	"false": CondFalse,
}

// RegisterMnemonics maps the assembler's bare register destination
// tokens to their Dest selector.
var RegisterMnemonics = map[string]Dest{
	"d0": DestD0,
	"d1": DestD1,
	"d2": DestD2,
	"ip": DestIP,
	"sp": DestSP,
	"dp": DestDP,
}

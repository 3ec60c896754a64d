package asm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/en0/emu101/isa"
	"github.com/en0/emu101/word"
)

// reOp matches the general "dst[,dst2] = src [? cond[,cond_src]]" form.
// Named groups feed decodeDst/decodeSrc/decodeCond directly.
var reOp = regexp.MustCompile(`^(?P<dst>[a-z0-9]+)(?:,(?P<dst_b>[a-z0-9]+))?=(?P<src>[a-z0-9+@! ]+)(?:\?(?P<cond>[a-z]+)(?:,(?P<cond_src>[a-z0-9 ]+))?)?$`)

// emission is the result of decoding one line of source: an opcode word
// and, if the line carries one, a second word to follow it — either a
// literal already known at decode time, or a reference to a label that
// can only be resolved once the whole program has been scanned.
type emission struct {
	Opcode           word.Word
	HasImmediate     bool
	ImmediateLiteral word.Word
	ImmediateLabel   string
}

// decodeOp turns one line's operation text into an emission. It is pure
// — no label table, no output position — so pass 1 (counting words) and
// pass 2 (emitting them) can share the exact same decoding logic and
// therefore never disagree about how many words a line occupies.
func decodeOp(op string) (emission, error) {
	switch op {
	case "hlt":
		return emission{Opcode: isa.OpHalt}, nil
	case "nop", "noop":
		return emission{Opcode: isa.OpNop}, nil
	case "brk":
		return emission{Opcode: isa.OpBreak}, nil
	}

	m := reOp.FindStringSubmatch(op)
	if m == nil {
		return emission{}, &decodeError{"Syntax Error"}
	}
	groups := map[string]string{}
	for i, name := range reOp.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	io, addrMode, dest, err := decodeDst(groups["dst"], groups["dst_b"])
	if err != nil {
		return emission{}, err
	}
	source, compute, imm, err := decodeSrc(strings.TrimSpace(groups["src"]))
	if err != nil {
		return emission{}, err
	}
	cond, condCompute, err := decodeCond(groups["cond"], groups["cond_src"])
	if err != nil {
		return emission{}, err
	}

	e := emission{
		Opcode: isa.Encode(isa.Instruction{
			IO:       io,
			AddrMode: addrMode,
			Compute:  compute | condCompute,
			Source:   source,
			Dest:     dest,
			Cond:     cond,
		}),
	}
	if imm != nil {
		e.HasImmediate = true
		e.ImmediateLiteral = imm.literal
		e.ImmediateLabel = imm.label
	}
	return e, nil
}

// decodeError is a decoding failure that has not yet been attached to a
// line number or raw op text; Assemble wraps it into a CompileError.
type decodeError struct{ info string }

func (e *decodeError) Error() string { return e.info }

// decodeDst resolves the destination half of an op: which register(s)
// receive the writeback, and whether the instruction also performs a
// memory write at dp. `dst` alone being `data` writes memory and
// discards the writeback (Dest=N1); a register paired with `data` both
// writes memory and loads that register.
func decodeDst(dst, dstB string) (isa.IO, isa.AddrMode, isa.Dest, error) {
	if dstB == "" {
		if dst == "data" {
			return isa.IOWrite, isa.AddrDP, isa.DestN1, nil
		}
		reg, ok := isa.RegisterMnemonics[dst]
		if !ok {
			return 0, 0, 0, &decodeError{"Unknown Destination"}
		}
		return isa.IORead, isa.AddrDP, reg, nil
	}
	if dst == dstB {
		return 0, 0, 0, &decodeError{"Duplicate Destination Error"}
	}
	switch {
	case dstB == "data":
		reg, ok := isa.RegisterMnemonics[dst]
		if !ok {
			return 0, 0, 0, &decodeError{"Unknown Destination"}
		}
		return isa.IOWrite, isa.AddrDP, reg, nil
	case dst == "data":
		reg, ok := isa.RegisterMnemonics[dstB]
		if !ok {
			return 0, 0, 0, &decodeError{"Unknown Destination"}
		}
		return isa.IOWrite, isa.AddrDP, reg, nil
	default:
		return 0, 0, 0, &decodeError{"Unknown Destination Error"}
	}
}

// pendingImmediate is the second word a decoded line may carry: either a
// literal value already known, or a label to resolve once the label
// table is complete.
type pendingImmediate struct {
	literal word.Word
	label   string
}

// decodeSrc resolves the source half of an op: an ALU operation read
// back through Source=ALU, a raw memory read through Source=DATA, or a
// literal/label immediate through Source=IMMEDIATE.
func decodeSrc(src string) (isa.Source, isa.Compute, *pendingImmediate, error) {
	switch {
	case strings.HasPrefix(src, "!0x"):
		v, err := strconv.ParseUint(src[3:], 16, 16)
		if err != nil {
			return 0, 0, nil, &decodeError{"Unknown Source or Computation"}
		}
		return isa.SourceImmediate, 0, &pendingImmediate{literal: word.Word(v)}, nil
	case strings.HasPrefix(src, "!0b"):
		v, err := strconv.ParseUint(src[3:], 2, 16)
		if err != nil {
			return 0, 0, nil, &decodeError{"Unknown Source or Computation"}
		}
		return isa.SourceImmediate, 0, &pendingImmediate{literal: word.Word(v)}, nil
	case strings.HasPrefix(src, "!"):
		v, err := strconv.ParseUint(src[1:], 10, 16)
		if err != nil {
			return 0, 0, nil, &decodeError{"Unknown Source or Computation"}
		}
		return isa.SourceImmediate, 0, &pendingImmediate{literal: word.Word(v)}, nil
	case strings.HasPrefix(src, "@"):
		return isa.SourceImmediate, 0, &pendingImmediate{label: src[1:]}, nil
	case src == "data":
		return isa.SourceData, 0, nil, nil
	default:
		compute, ok := isa.ComputeMnemonics[src]
		if !ok {
			return 0, 0, nil, &decodeError{"Unknown Source or Computation"}
		}
		return isa.SourceALU, compute, nil, nil
	}
}

// decodeCond resolves the condition mask and an optional independent
// compute operation (run purely for its flag side effect, the way a
// standalone compare instruction would be).
func decodeCond(cond, condSrc string) (isa.Cond, isa.Compute, error) {
	if cond == "" {
		return isa.CondTrue, 0, nil
	}
	c, ok := isa.ConditionMnemonics[cond]
	if !ok {
		return 0, 0, &decodeError{"Unknown Conditional"}
	}
	if condSrc == "" {
		return c, 0, nil
	}
	compute, ok := isa.ComputeMnemonics[condSrc]
	if !ok {
		return 0, 0, &decodeError{"Unknown Source or Computation in Conditional"}
	}
	return c, compute, nil
}

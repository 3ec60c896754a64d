// Package asm compiles EMU101 assembly source into the big-endian word
// stream the cpu and mem packages load into ROM (spec.md §4.6).
package asm

import (
	"fmt"
	"io"

	"github.com/en0/emu101/word"
)

// Default placement of emitted code and of labels the program never
// defines, ported from the original's ram_offset/prog_offset defaults.
const (
	DefaultCodeBase word.Word = 0xF000
	DefaultDataBase word.Word = 0x0200
)

// Assembler compiles one source file at a time. Its zero value is not
// ready to use; build one with New.
type Assembler struct {
	CodeBase word.Word
	DataBase word.Word

	// Listing, if set, receives a disassembly-style trace of every
	// emitted word as Assemble runs (spec.md's supplemented listing
	// feature). Left nil, no listing is produced.
	Listing io.Writer
}

// New returns an Assembler configured with the standard code and data
// bases.
func New() *Assembler {
	return &Assembler{CodeBase: DefaultCodeBase, DataBase: DefaultDataBase}
}

type fixup struct {
	index int
	label string
}

// Assemble reads source from r and writes the assembled word stream to
// w. It runs two full passes: the first builds a complete label table
// (so a forward reference resolves exactly like a backward one), the
// second emits opcode and immediate words and records any immediate
// that named a label instead of a literal. Once both passes finish,
// every pending label reference is resolved against the table, with
// labels nothing in the program ever defined allocated a fresh data
// address as they're discovered.
func (a *Assembler) Assemble(r io.Reader, w io.Writer) error {
	lines, err := tokenize(r)
	if err != nil {
		return err
	}

	labels, err := a.buildLabelTable(lines)
	if err != nil {
		return err
	}

	words, fixups, listing, err := a.emit(lines)
	if err != nil {
		return err
	}

	nextData := a.DataBase
	for _, f := range fixups {
		addr, ok := labels[f.label]
		if !ok {
			addr = nextData
			labels[f.label] = addr
			nextData = nextData.Add(1)
		}
		words[f.index] = addr
	}
	a.patchListing(listing, fixups, labels)

	for _, v := range words {
		if _, err := w.Write([]byte{v.Hi(), v.Lo()}); err != nil {
			return err
		}
	}

	if a.Listing != nil {
		writeListing(a.Listing, listing)
	}
	return nil
}

// buildLabelTable runs decodeOp over every line purely to learn how many
// words it occupies (1, or 2 when it carries an immediate), so the
// second pass's addresses land exactly where a real run will see them.
func (a *Assembler) buildLabelTable(lines []line) (map[string]word.Word, error) {
	labels := map[string]word.Word{}
	addr := a.CodeBase
	for _, ln := range lines {
		if ln.Label != "" {
			if _, exists := labels[ln.Label]; !exists {
				labels[ln.Label] = addr
			}
		}
		e, err := decodeOp(ln.Op)
		if err != nil {
			return nil, &CompileError{LineNo: ln.LineNo, Symbol: ln.Op, Info: err.Error()}
		}
		addr = addr.Add(1)
		if e.HasImmediate {
			addr = addr.Add(1)
		}
	}
	return labels, nil
}

// listingEntry is one emitted instruction, kept around so the optional
// listing can be printed after label fixups have filled in immediate
// values that were unknown at emission time.
type listingEntry struct {
	addr    word.Word
	opcode  word.Word
	hasImm  bool
	imm     word.Word
	op      string
	immSlot int // index into words, valid when hasImm
}

func (a *Assembler) emit(lines []line) ([]word.Word, []fixup, []listingEntry, error) {
	var words []word.Word
	var fixups []fixup
	var listing []listingEntry
	addr := a.CodeBase

	for _, ln := range lines {
		e, err := decodeOp(ln.Op)
		if err != nil {
			return nil, nil, nil, &CompileError{LineNo: ln.LineNo, Symbol: ln.Op, Info: err.Error()}
		}

		entry := listingEntry{addr: addr, opcode: e.Opcode, op: ln.Op}
		words = append(words, e.Opcode)
		addr = addr.Add(1)

		if e.HasImmediate {
			entry.hasImm = true
			entry.immSlot = len(words)
			if e.ImmediateLabel != "" {
				fixups = append(fixups, fixup{index: len(words), label: e.ImmediateLabel})
				words = append(words, 0)
			} else {
				entry.imm = e.ImmediateLiteral
				words = append(words, e.ImmediateLiteral)
			}
			addr = addr.Add(1)
		}
		listing = append(listing, entry)
	}
	return words, fixups, listing, nil
}

// patchListing fills in the immediate value of any entry whose
// immediate was a label, now that fixups have resolved every label to
// an address.
func (a *Assembler) patchListing(listing []listingEntry, fixups []fixup, labels map[string]word.Word) {
	bySlot := make(map[int]word.Word, len(fixups))
	for _, f := range fixups {
		bySlot[f.index] = labels[f.label]
	}
	for i := range listing {
		if listing[i].hasImm {
			if v, ok := bySlot[listing[i].immSlot]; ok {
				listing[i].imm = v
			}
		}
	}
}

func writeListing(w io.Writer, listing []listingEntry) {
	for _, e := range listing {
		if e.hasImm {
			fmt.Fprintf(w, "%04x: %016b %04x %s\n", uint16(e.addr), uint16(e.opcode), uint16(e.imm), e.op)
		} else {
			fmt.Fprintf(w, "%04x: %016b ---- %s\n", uint16(e.addr), uint16(e.opcode), e.op)
		}
	}
}

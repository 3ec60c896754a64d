// Package mem implements the EMU101 memory-mapped bus and its two device
// kinds, ROM and RAM.
package mem

import "github.com/en0/emu101/word"

// A Device is anything the Bus can route reads and writes to. Address
// arguments are already relative to the device's base (spec.md §4.2).
type Device interface {
	Read(addr word.Word) word.Word
	Write(addr word.Word, v word.Word)
}

// A Range describes one device's placement on the bus: it answers for
// addresses in [Start, Start+Length). Length is an int (not a Word)
// since a single device may legitimately span the full 0x10000-word
// address space, which does not fit in a 16-bit count.
type Range struct {
	Start  word.Word
	Length int
	Device Device
}

// A Bus is the central object that dispatches 16-bit addresses to the
// device mapped at that address. Reads to unmapped addresses return 0;
// writes to unmapped addresses are silently dropped (spec.md §3).
//
// Construction takes the full list of ranges and builds a flat
// addr->device lookup table, giving O(1) dispatch, mirroring the
// original's self._map list-of-65536 approach
// (original_source/emu101/bus.py) rather than a sorted-interval search.
type Bus struct {
	table [0x10000]Device
	bases map[Device]word.Word
}

// NewBus builds a Bus from a list of non-overlapping ranges. Overlap
// behavior is undefined: a later range in the list silently wins over
// an earlier one for any address they share.
func NewBus(ranges ...Range) *Bus {
	b := &Bus{bases: make(map[Device]word.Word, len(ranges))}
	for _, r := range ranges {
		b.bases[r.Device] = r.Start
		for i := 0; i < r.Length; i++ {
			b.table[r.Start.Add(word.Word(i))] = r.Device
		}
	}
	return b
}

// Read dispatches to the device mapped at addr, translating addr to the
// device's own address space via wrapping subtraction. Unmapped
// addresses read as 0.
func (b *Bus) Read(addr word.Word) word.Word {
	dev := b.table[addr]
	if dev == nil {
		return 0
	}
	return dev.Read(addr.Sub(b.bases[dev]))
}

// Write dispatches to the device mapped at addr. Unmapped writes are
// dropped.
func (b *Bus) Write(addr word.Word, v word.Word) {
	dev := b.table[addr]
	if dev == nil {
		return
	}
	dev.Write(addr.Sub(b.bases[dev]), v)
}

package mem

import "github.com/en0/emu101/word"

// RAM is a fixed-size, read/write memory device. It shares ROM's shape
// (and its Load for host pre-seeding) but allows ordinary bus writes
// (spec.md §3, §4.3).
type RAM struct {
	data []word.Word
}

// NewRAM allocates a RAM of the given size in words, zeroed.
func NewRAM(size int) *RAM {
	return &RAM{data: make([]word.Word, size)}
}

// Read returns the word stored at the relative address.
func (r *RAM) Read(addr word.Word) word.Word {
	return r.data[addr]
}

// Write stores v at the relative address.
func (r *RAM) Write(addr word.Word, v word.Word) {
	r.data[addr] = v
}

// Load consumes a byte stream two bytes at a time, big-endian, writing
// consecutive words starting at the relative address at. A trailing odd
// byte is ignored.
func (r *RAM) Load(data []byte, at word.Word) {
	loadWords(r.data, data, at)
}

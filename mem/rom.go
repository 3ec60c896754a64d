package mem

import "github.com/en0/emu101/word"

// ROM is a fixed-size, read-only (over the ordinary bus path) memory
// device. The only way to populate it is Load, the host-side loader used
// before a run begins (spec.md §3, §4.3).
type ROM struct {
	data []word.Word
}

// NewROM allocates a ROM of the given size in words, zeroed.
func NewROM(size int) *ROM {
	return &ROM{data: make([]word.Word, size)}
}

// Read returns the word stored at the relative address.
func (r *ROM) Read(addr word.Word) word.Word {
	return r.data[addr]
}

// Write is a no-op: the ordinary bus write path can never modify ROM.
func (r *ROM) Write(addr word.Word, v word.Word) {}

// Load consumes a byte stream two bytes at a time, big-endian, writing
// consecutive words starting at the relative address at. A trailing odd
// byte is ignored (spec.md §4.3).
func (r *ROM) Load(data []byte, at word.Word) {
	loadWords(r.data, data, at)
}

func loadWords(dst []word.Word, data []byte, at word.Word) {
	addr := int(at)
	for i := 0; i+1 < len(data); i += 2 {
		if addr >= len(dst) {
			return
		}
		dst[addr] = word.FromBytes(data[i], data[i+1])
		addr++
	}
}

package asm

import "fmt"

// CompileError reports a single line that failed to assemble. Symbol is
// the raw operation text of the offending line, not its label (spec.md
// §4.6, §7b).
type CompileError struct {
	LineNo int
	Symbol string
	Info   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s\nLine: %d, Symbol: %s", e.Info, e.LineNo, e.Symbol)
}

package asm

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var reLabel = regexp.MustCompile(`^(\w+):(.*)$`)

// line is one addressable unit of source: a label (possibly empty) and
// the operation text that label names.
type line struct {
	LineNo int
	Label  string
	Op     string
}

// tokenize splits source into lines, dropping comments and blank lines,
// and resolves the label each line of actual code falls under.
//
// A label with trailing text on the same line (`loop: d0=d1`) binds to
// that instruction directly. A label with nothing after the colon
// (`loop:`) has no instruction of its own, so it is held as a pending
// label and bound to whatever instruction line follows instead of being
// emitted as an empty, unparseable operation.
//
// Lines that carry no label of their own inherit an auto-label derived
// from the most recent real label: `loop+1`, `loop+2`, and so on, reset
// whenever a new label is seen.
func tokenize(r io.Reader) ([]line, error) {
	var out []line
	var pendingLabel string
	var havePending bool
	lastLabel := ""
	lastIndex := 0

	s := bufio.NewScanner(r)
	lineNo := 0
	for s.Scan() {
		raw := strings.TrimSpace(strings.TrimRight(s.Text(), "\n"))
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = strings.TrimSpace(raw[:i])
		}
		lineNo++
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		if m := reLabel.FindStringSubmatch(raw); m != nil {
			label := strings.ToLower(m[1])
			op := strings.ToLower(strings.TrimSpace(m[2]))
			if op == "" {
				pendingLabel = label
				havePending = true
				continue
			}
			out = append(out, line{LineNo: lineNo, Label: label, Op: op})
			lastLabel = label
			lastIndex = 0
			havePending = false
			continue
		}

		op := strings.ToLower(raw)
		switch {
		case havePending:
			out = append(out, line{LineNo: lineNo, Label: pendingLabel, Op: op})
			lastLabel = pendingLabel
			lastIndex = 0
			havePending = false
		case lastLabel != "":
			lastIndex++
			out = append(out, line{LineNo: lineNo, Label: fmt.Sprintf("%s+%d", lastLabel, lastIndex), Op: op})
		default:
			out = append(out, line{LineNo: lineNo, Label: "", Op: op})
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/en0/emu101/word"
)

// model is the bubbletea model for the interactive debugger. Each step
// key (space or j) advances the CPU by one tick, not one instruction, so a
// single step can land mid-fetch or mid-decode.
type model struct {
	cpu   *CPU
	prevIP word.Word
	err   error
	done  bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevIP = m.cpu.IP
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.err = fmt.Errorf("%v", r)
						m.done = true
					}
				}()
				if !m.cpu.Tick() {
					m.done = true
				}
			}()
			if m.done {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

const wordsPerRow = 8

func (m model) renderPage(start word.Word) string {
	s := fmt.Sprintf("%04x | ", uint16(start))
	for i := word.Word(0); i < wordsPerRow; i++ {
		addr := start.Add(i)
		v := m.cpu.Bus.Read(addr)
		if addr == m.cpu.IP {
			s += fmt.Sprintf("[%04x] ", uint16(v))
		} else {
			s += fmt.Sprintf(" %04x  ", uint16(v))
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "addr | "
	for i := 0; i < wordsPerRow; i++ {
		header += fmt.Sprintf("  %02x   ", i)
	}
	rows := []string{header}
	base := uint16(m.cpu.IP) &^ uint16(wordsPerRow-1)
	for i := -2; i <= 2; i++ {
		rows = append(rows, m.renderPage(word.Word(int(base)+i*wordsPerRow)))
	}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	return fmt.Sprintf(`
phase: %s

ip: %04x (was %04x)
sp: %04x
dp: %04x
d0: %04x
d1: %04x
d2: %04x

flags: %03b
pipeline len: %d
`,
		m.cpu.phase,
		uint16(m.cpu.IP), uint16(m.prevIP),
		uint16(m.cpu.SP),
		uint16(m.cpu.DP),
		uint16(m.cpu.D0),
		uint16(m.cpu.D1),
		uint16(m.cpu.D2),
		uint16(m.cpu.Flags),
		m.cpu.PipelineLen(),
	)
}

func (m model) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("halted: %v\n\n%s", m.err, m.cpu.CoreDump())
		}
		return fmt.Sprintf("halted (broke=%v)\n\n%s", m.cpu.Broke(), m.cpu.CoreDump())
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		"space/j: tick   q: quit",
	)
}

// Debug starts an interactive TUI stepping the CPU one tick at a time.
// The caller is responsible for loading the program into memory first.
func (c *CPU) Debug() error {
	p := tea.NewProgram(model{cpu: c})
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}

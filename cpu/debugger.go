package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

const debugPageWidth = 16

type debugModel struct {
	cpu     *CPU
	program []byte
	base    uint16

	prevPC uint16
	fault  error
	done   bool
}

// NewDebugger builds a bubbletea program that single-steps c through
// program loaded at base. Press space or j to execute one instruction,
// q to quit.
func NewDebugger(c *CPU, program []byte, base uint16) *tea.Program {
	return tea.NewProgram(debugModel{cpu: c, program: program, base: base})
}

func (m debugModel) Init() tea.Cmd {
	m.cpu.Load(m.program, m.base)
	m.cpu.Reset()
	return nil
}

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.done {
				return m, nil
			}
			m.prevPC = m.cpu.PC
			func() {
				defer func() {
					if r := recover(); r != nil {
						if err, ok := r.(error); ok {
							m.fault = err
						}
						m.done = true
					}
				}()
				if !m.cpu.Step() {
					m.done = true
				}
			}()
		}
	}
	return m, nil
}

func (m debugModel) renderPage(start uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X | ", start)
	for i := uint16(0); i < debugPageWidth; i++ {
		addr := start + i
		v := m.cpu.Bus.Read(addr)
		if addr == m.cpu.PC {
			fmt.Fprintf(&b, "[%02X] ", v)
		} else {
			fmt.Fprintf(&b, " %02X  ", v)
		}
	}
	return b.String()
}

func (m debugModel) pageTable() string {
	header := "PAGE  | "
	for i := 0; i < debugPageWidth; i++ {
		header += fmt.Sprintf("  %01X  ", i)
	}
	pageStart := m.cpu.PC &^ (debugPageWidth - 1)
	lines := []string{header, m.renderPage(pageStart)}
	return strings.Join(lines, "\n")
}

func (m debugModel) status() string {
	labels := "N V _ B D I Z C"
	var flags strings.Builder
	for _, bit := range []uint8{FlagNegative, FlagOverflow, FlagUnused, FlagBreak,
		FlagDecimal, FlagInterruptDisable, FlagZero, FlagCarry} {
		if m.cpu.P&bit != 0 {
			flags.WriteString("/ ")
		} else {
			flags.WriteString("  ")
		}
	}
	return fmt.Sprintf("\nPC: %04X (was %04X)\n A: %02X\n X: %02X\n Y: %02X\nSP: %02X\n%s\n%s\n",
		m.cpu.PC, m.prevPC, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.S, labels, flags.String())
}

func (m debugModel) View() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
	)
	if m.fault != nil {
		return body + "\nfault: " + m.fault.Error() + "\n"
	}
	opByte := m.cpu.Bus.Read(m.cpu.PC)
	if op, ok := OpcodeTable[opByte]; ok {
		return body + spew.Sdump(op)
	}
	return body
}

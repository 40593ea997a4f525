// Package cpu implements the MOS 6502 instruction-set interpreter:
// registers, flags, the fetch-decode-execute loop, all addressing
// modes, and the full documented-plus-common-undocumented opcode
// catalogue. https://www.nesdev.org/obelisk-6502-guide/reference.html
package cpu

import (
	"fmt"

	"github.com/waltondev/nescore/bus"
)

// 6502 interrupt vectors. https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
)

const stackPage = 0x0100

const resetStackPointer = 0xFD

// UnknownOpcodeError is raised when the interpreter encounters a byte
// with no entry in the opcode table.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%02X at $%04X", e.Opcode, e.PC)
}

// CPU holds the MOS 6502 register set and exclusively owns the Bus it
// was constructed with; all memory access goes through it.
type CPU struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	P       uint8

	Bus *bus.Bus

	resetVector    *uint16 // overrides $FFFC when set by Load
	lastWriteAddr  uint16
	lastWriteValue uint8
}

// New constructs a CPU over b. The CPU is left zeroed until Reset is
// called.
func New(b *bus.Bus) *CPU {
	return &CPU{Bus: b}
}

// Reset clears A/X/Y, sets S to $FD and P to $24, wipes the stack
// page, and loads PC from $FFFC unless an override was supplied via
// Load.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = resetStackPointer
	c.P = resetStatus
	c.Bus.ClearStackPage()

	if c.resetVector != nil {
		c.PC = *c.resetVector
		return
	}
	c.PC = readU16(c.Bus, vectorReset)
}

// Load writes program starting at base and arranges for Reset to use
// base as the program counter instead of reading $FFFC. It is a test
// helper, not part of normal cartridge boot.
func (c *CPU) Load(program []byte, base uint16) {
	for i, b := range program {
		c.Bus.Write(base+uint16(i), b)
	}
	v := base
	c.resetVector = &v
}

// Interpret resets the CPU, loads program at base via Load, and runs
// it to completion (first BRK).
func (c *CPU) Interpret(program []byte, base uint16) {
	c.Load(program, base)
	c.Reset()
	c.Run(nil)
}

// InterpretWithoutReset loads program at base without touching the
// rest of register state, then runs it to completion.
func (c *CPU) InterpretWithoutReset(program []byte, base uint16) {
	for i, b := range program {
		c.Bus.Write(base+uint16(i), b)
	}
	c.PC = base
	c.Run(nil)
}

// Callback is invoked once per instruction, immediately before
// execution, observing the pre-instruction register state. The
// tracer is the canonical callback.
type Callback func(c *CPU, op Opcode)

// Run is the fetch-decode-execute loop. It invokes callback (if
// non-nil) before executing each instruction and returns once opcode
// $00 (BRK) has executed.
func (c *CPU) Run(callback Callback) {
	for c.step(callback) {
	}
}

// Step executes a single instruction at the current PC and reports
// whether execution should continue (false once opcode $00, BRK, has
// just executed). It is the single-step primitive behind Run and is
// exported for callers that drive the CPU one instruction per external
// tick, such as an ebiten Update callback.
func (c *CPU) Step() bool {
	return c.step(nil)
}

func (c *CPU) step(callback Callback) bool {
	opByte := c.Bus.Read(c.PC)
	op, ok := OpcodeTable[opByte]
	if !ok {
		panic(&UnknownOpcodeError{Opcode: opByte, PC: c.PC})
	}

	if callback != nil {
		callback(c, *op)
	}

	c.PC++
	pcBefore := c.PC

	op.Exec(c, op.Mode)

	if c.PC == pcBefore {
		c.PC += operandLen(op.Mode)
	}

	return opByte != 0x00
}

// operandAddress resolves mode against the CPU's live bus and current
// PC, advancing PC past the consumed operand bytes.
func (c *CPU) operandAddress(mode AddressingMode) uint16 {
	addr := resolveAddress(c.Bus, mode, c.PC, c.X, c.Y)
	c.PC += operandLen(mode)
	return addr
}

func (c *CPU) read(mode AddressingMode) uint8 {
	return c.Bus.Read(c.operandAddress(mode))
}

func (c *CPU) write(addr uint16, v uint8) {
	c.lastWriteAddr, c.lastWriteValue = addr, v
	c.Bus.Write(addr, v)
}

// --- stack ---

func (c *CPU) push8(v uint8) {
	c.Bus.Write(stackPage+uint16(c.S), v)
	c.S--
}

func (c *CPU) pop8() uint8 {
	c.S++
	return c.Bus.Read(stackPage + uint16(c.S))
}

// push16 writes the high byte first (to $0100+S) then the low byte
// (to $0100+S-1), then decrements S by 2.
func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop8())
	hi := uint16(c.pop8())
	return hi<<8 | lo
}

// String renders a one-line register dump, in the style of the
// teacher's interactive BIOS status line.
func (c *CPU) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X", c.PC, c.A, c.X, c.Y, c.P, c.S)
}

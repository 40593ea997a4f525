package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceImmediateLine(t *testing.T) {
	c := newTestCPU()
	c.Reset()
	c.Load([]byte{0xA9, 0x07}, 0x0600)
	c.Reset()

	op := OpcodeTable[c.Bus.Read(c.PC)]
	line := Trace(c, *op)

	assert.Contains(t, line, "0600")
	assert.Contains(t, line, "A9 07")
	assert.Contains(t, line, "LDA")
	assert.Contains(t, line, "#$07")
	assert.Contains(t, line, "A:00 X:00 Y:00")
}

func TestTraceDoesNotMutateState(t *testing.T) {
	c := newTestCPU()
	c.Reset()
	c.Load([]byte{0xA5, 0x10}, 0x0600)
	c.Reset()
	c.Bus.Write(0x10, 0x42)

	pcBefore, aBefore := c.PC, c.A
	op := OpcodeTable[c.Bus.Read(c.PC)]
	line := Trace(c, *op)

	assert.Equal(t, pcBefore, c.PC)
	assert.Equal(t, aBefore, c.A)
	assert.Contains(t, line, "= 42")
}

func TestTraceBranchTargetResolution(t *testing.T) {
	c := newTestCPU()
	c.Reset()
	c.Load([]byte{0xF0, 0x05}, 0x0600) // BEQ +5
	c.Reset()

	op := OpcodeTable[c.Bus.Read(c.PC)]
	line := Trace(c, *op)

	assert.Contains(t, line, "$0607")
}

func TestTraceIndirectXDetail(t *testing.T) {
	c := newTestCPU()
	c.Reset()
	c.X = 0x01
	c.Bus.Write(0x00, 0x34)
	c.Bus.Write(0x01, 0x12)
	c.Bus.Write(0x1234, 0x55)
	c.Load([]byte{0xA1, 0xFF}, 0x0600) // LDA ($FF,X)
	c.Reset()
	c.X = 0x01

	op := OpcodeTable[c.Bus.Read(c.PC)]
	line := Trace(c, *op)

	assert.Contains(t, line, "($FF,X)")
	assert.Contains(t, line, "= 1234 = 55")
}

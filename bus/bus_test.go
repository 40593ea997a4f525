package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waltondev/nescore/cartridge"
)

func TestRAMMirroring(t *testing.T) {
	b := New(cartridge.NewTest())
	b.Write(0x0001, 0x42)

	for base := uint16(0); base <= ramMirrorEnd; base += ramSize {
		assert.Equal(t, byte(0x42), b.Read(base+1), "mirror at base %#04x", base)
	}
}

func TestPRGReadThroughBothBanks(t *testing.T) {
	c := cartridge.NewTest() // two banks, not 16K-mirrored
	b := New(c)
	assert.Equal(t, byte(0), b.Read(0x8000))
	assert.Equal(t, byte(0), b.Read(0xC000))
}

func TestWriteToROMPanics(t *testing.T) {
	b := New(cartridge.NewTest())
	assert.Panics(t, func() { b.Write(0x8000, 1) })
}

func TestWriteToROMPanicsEvenWhenPermissive(t *testing.T) {
	b := New(cartridge.NewTest())
	b.Permissive = true
	assert.Panics(t, func() { b.Write(0x8000, 1) })
}

func TestUnimplementedRegionPanics(t *testing.T) {
	b := New(cartridge.NewTest())
	assert.Panics(t, func() { b.Read(0x2000) })
	assert.Panics(t, func() { b.Write(0x4000, 1) })
}

func TestUnimplementedRegionPermissive(t *testing.T) {
	b := New(cartridge.NewTest())
	b.Permissive = true
	assert.Equal(t, byte(0), b.Read(0x2000))
	assert.NotPanics(t, func() { b.Write(0x4000, 1) })
}

func TestRead16LittleEndian(t *testing.T) {
	b := New(cartridge.NewTest())
	b.Write(0x10, 0xCD)
	b.Write(0x11, 0xAB)
	assert.Equal(t, uint16(0xABCD), b.Read16(0x10))
}

func TestClearStackPage(t *testing.T) {
	b := New(cartridge.NewTest())
	b.Write(0x0100, 0xFF)
	b.Write(0x01FF, 0xFF)
	b.ClearStackPage()
	assert.Equal(t, byte(0), b.Read(0x0100))
	assert.Equal(t, byte(0), b.Read(0x01FF))
}

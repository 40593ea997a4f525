// Package bus implements the NES CPU address bus: RAM mirroring,
// cartridge PRG-ROM mapping, and stubbed PPU/APU/IO windows.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"fmt"

	"github.com/waltondev/nescore/cartridge"
)

const (
	ramSize     = 0x0800 // 2 KiB internal RAM
	ramMirrorEnd = 0x1FFF
	ppuRegEnd   = 0x3FFF
	apuIOEnd    = 0x4017
	expansionEnd = 0x5FFF
	sramEnd     = 0x7FFF
	prgStart    = 0x8000
)

// WriteToROMError is raised when a write targets the cartridge's
// PRG-ROM window; the cartridge is read-only memory.
type WriteToROMError struct {
	Addr uint16
	Val  uint8
}

func (e *WriteToROMError) Error() string {
	return fmt.Sprintf("write to cartridge ROM at $%04X (value $%02X)", e.Addr, e.Val)
}

// UnimplementedRegionError is raised (in non-permissive mode) when the
// CPU touches a PPU/APU/IO/expansion/SRAM window this core does not
// yet implement.
type UnimplementedRegionError struct {
	Addr  uint16
	Write bool
}

func (e *UnimplementedRegionError) Error() string {
	verb := "read"
	if e.Write {
		verb = "write"
	}
	return fmt.Sprintf("%s to unimplemented region at $%04X", verb, e.Addr)
}

// Bus owns the CPU's internal RAM and the loaded Cartridge, and is the
// only memory interface the CPU is permitted to use.
type Bus struct {
	ram        [ramSize]byte
	cartridge  *cartridge.Cartridge
	Permissive bool // when true, unimplemented regions read 0 and drop writes instead of panicking
}

// New constructs a Bus over the given cartridge. RAM starts all-zero.
func New(c *cartridge.Cartridge) *Bus {
	return &Bus{cartridge: c}
}

// Cartridge returns the bus's owned cartridge.
func (b *Bus) Cartridge() *cartridge.Cartridge {
	return b.cartridge
}

// Read returns the byte at the given 16-bit address, fully decoding
// the NES CPU memory map.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&(ramSize-1)]
	case addr <= ppuRegEnd:
		return b.unimplemented(addr, false)
	case addr <= apuIOEnd:
		return b.unimplemented(addr, false)
	case addr <= expansionEnd:
		return b.unimplemented(addr, false)
	case addr <= sramEnd:
		return b.unimplemented(addr, false)
	default:
		return b.cartridge.PRGRead(b.prgOffset(addr))
	}
}

// Write stores val at the given 16-bit address.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&(ramSize-1)] = val
	case addr <= ppuRegEnd:
		b.unimplementedWrite(addr)
	case addr <= apuIOEnd:
		b.unimplementedWrite(addr)
	case addr <= expansionEnd:
		b.unimplementedWrite(addr)
	case addr <= sramEnd:
		b.unimplementedWrite(addr)
	default:
		panic(&WriteToROMError{Addr: addr, Val: val})
	}
}

// Read16 reads a little-endian 16-bit value at addr.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

func (b *Bus) unimplemented(addr uint16, write bool) uint8 {
	if b.Permissive {
		return 0
	}
	panic(&UnimplementedRegionError{Addr: addr, Write: write})
}

func (b *Bus) unimplementedWrite(addr uint16) {
	if b.Permissive {
		return
	}
	panic(&UnimplementedRegionError{Addr: addr, Write: true})
}

// prgOffset maps a CPU address in [$8000, $FFFF] to an offset within
// the cartridge's PRG-ROM, mirroring a single 16 KiB bank across both
// halves of the window when only one bank is present.
func (b *Bus) prgOffset(addr uint16) uint16 {
	off := addr - prgStart
	prgLen := b.cartridge.PRGLen()
	if prgLen == 0 {
		return 0
	}
	return off % uint16(prgLen)
}

// ClearStackPage zeroes $0100-$01FF, as CPU.Reset requires.
func (b *Bus) ClearStackPage() {
	for i := 0x0100; i <= 0x01FF; i++ {
		b.ram[i&(ramSize-1)] = 0
	}
}

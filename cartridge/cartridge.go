// Package cartridge implements the iNES 1.0 ROM container format.
// https://www.nesdev.org/wiki/INES
package cartridge

import (
	"fmt"
	"io"
)

// Mirroring identifies how the PPU nametables are mirrored. The core
// does not implement a PPU, but the cartridge header still carries
// this metadata and a complete loader reports it.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case FourScreen:
		return "FourScreen"
	default:
		return "Unknown"
	}
}

const (
	headerSize    = 16
	trainerSize   = 512
	prgBlockSize  = 16384
	chrBlockSize  = 8192
	signature     = "NES\x1a"
	flag6Mirror   = 1 << 0
	flag6Battery  = 1 << 1
	flag6Trainer  = 1 << 2
	flag6FourScr  = 1 << 3
	flag7VSUni    = 1 << 0
	flag7NES2Mask = 0x0C
	flag7NES2Val  = 0x08
)

// BadFormatError is returned when the byte stream is not a valid iNES
// file: too short, or missing the "NES\x1A" signature.
type BadFormatError struct {
	Reason string
}

func (e *BadFormatError) Error() string {
	return fmt.Sprintf("bad iNES format: %s", e.Reason)
}

// UnsupportedFormatError is returned for well-formed headers this
// core declines to load, such as NES 2.0.
type UnsupportedFormatError struct {
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported ROM format: %s", e.Reason)
}

// Cartridge is the immutable result of parsing an iNES 1.0 image.
type Cartridge struct {
	prgROM     []byte
	chrROM     []byte
	mirroring  Mirroring
	mapperID   uint8
	prgIs16K   bool
	hasBattery bool
	vsUnisys   bool
}

// Load parses a complete iNES 1.0 byte stream from r.
func Load(r io.Reader) (*Cartridge, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ROM image: %w", err)
	}
	return Parse(raw)
}

// Parse parses a complete iNES 1.0 byte stream already held in memory.
func Parse(raw []byte) (*Cartridge, error) {
	if len(raw) < headerSize {
		return nil, &BadFormatError{Reason: fmt.Sprintf("image is %d bytes, need at least %d for a header", len(raw), headerSize)}
	}
	if string(raw[0:4]) != signature {
		return nil, &BadFormatError{Reason: fmt.Sprintf("signature %q does not match %q", raw[0:4], signature)}
	}

	flags6 := raw[6]
	flags7 := raw[7]

	if flags7&flag7NES2Mask == flag7NES2Val {
		return nil, &UnsupportedFormatError{Reason: "NES 2.0 headers are not supported"}
	}

	prgPages := int(raw[4])
	chrPages := int(raw[5])

	off := headerSize
	var trainer []byte
	if flags6&flag6Trainer != 0 {
		if len(raw) < off+trainerSize {
			return nil, &BadFormatError{Reason: "trainer flag set but image too short for 512 trainer bytes"}
		}
		trainer = append([]byte(nil), raw[off:off+trainerSize]...)
		off += trainerSize
	}

	prgLen := prgBlockSize * prgPages
	if len(raw) < off+prgLen {
		return nil, &BadFormatError{Reason: fmt.Sprintf("image too short for %d PRG-ROM byte(s)", prgLen)}
	}
	prg := append([]byte(nil), raw[off:off+prgLen]...)
	off += prgLen

	chrLen := chrBlockSize * chrPages
	if len(raw) < off+chrLen {
		return nil, &BadFormatError{Reason: fmt.Sprintf("image too short for %d CHR-ROM byte(s)", chrLen)}
	}
	chr := append([]byte(nil), raw[off:off+chrLen]...)

	var mirroring Mirroring
	switch {
	case flags6&flag6FourScr != 0:
		mirroring = FourScreen
	case flags6&flag6Mirror != 0:
		mirroring = Vertical
	default:
		mirroring = Horizontal
	}

	_ = trainer // trainer bytes are consumed for offsetting but otherwise unused; no trainer-RAM region is wired in this core.

	return &Cartridge{
		prgROM:     prg,
		chrROM:     chr,
		mirroring:  mirroring,
		mapperID:   mapperNum(flags6, flags7),
		prgIs16K:   prgPages == 1,
		hasBattery: flags6&flag6Battery != 0,
		vsUnisys:   flags7&flag7VSUni != 0,
	}, nil
}

func mapperNum(flags6, flags7 byte) uint8 {
	return (flags7 & 0xF0) | (flags6 >> 4)
}

// NewTest builds a synthetic cartridge for tests: two 16 KiB PRG banks
// of zeros, no CHR-ROM, NROM mapper, horizontal mirroring.
func NewTest() *Cartridge {
	return &Cartridge{
		prgROM:    make([]byte, 2*prgBlockSize),
		chrROM:    nil,
		mirroring: Horizontal,
		mapperID:  0,
		prgIs16K:  false,
	}
}

// PRGLen returns the length of PRG-ROM in bytes.
func (c *Cartridge) PRGLen() int { return len(c.prgROM) }

// CHRLen returns the length of CHR-ROM in bytes.
func (c *Cartridge) CHRLen() int { return len(c.chrROM) }

// PRGIs16K reports whether only a single 16 KiB PRG bank is present,
// which forces $C000-$FFFF to mirror $8000-$BFFF.
func (c *Cartridge) PRGIs16K() bool { return c.prgIs16K }

// Mirroring returns the nametable mirroring mode declared by the header.
func (c *Cartridge) Mirroring() Mirroring { return c.mirroring }

// MapperID returns the combined mapper number from flags6/flags7.
func (c *Cartridge) MapperID() uint8 { return c.mapperID }

// HasBattery reports whether the header's battery-backed-SRAM bit is set.
func (c *Cartridge) HasBattery() bool { return c.hasBattery }

// PRGRead reads a single byte from PRG-ROM at addr, which must already
// be within [0, PRGLen()). Bank mirroring is the Bus's responsibility.
func (c *Cartridge) PRGRead(addr uint16) uint8 {
	return c.prgROM[addr]
}

// CHRRead reads a single byte from CHR-ROM at addr.
func (c *Cartridge) CHRRead(addr uint16) uint8 {
	return c.chrROM[addr]
}

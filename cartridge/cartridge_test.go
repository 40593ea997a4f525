package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(prg, chr, flags6, flags7 byte) []byte {
	h := make([]byte, 16)
	copy(h, []byte(signature))
	h[4] = prg
	h[5] = chr
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestParseTwoBlankPRGBanks(t *testing.T) {
	raw := append(header(2, 0, 0, 0), make([]byte, 2*prgBlockSize)...)

	c, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, 0x8000, c.PRGLen())
	assert.Equal(t, 0, c.CHRLen())
	assert.Equal(t, Horizontal, c.Mirroring())
	assert.False(t, c.PRGIs16K())
}

func TestParseSinglePRGBankMirrors(t *testing.T) {
	raw := append(header(1, 0, 0, 0), make([]byte, prgBlockSize)...)

	c, err := Parse(raw)
	require.NoError(t, err)
	assert.True(t, c.PRGIs16K())
}

func TestParseMirroringModes(t *testing.T) {
	cases := []struct {
		name    string
		flags6  byte
		want    Mirroring
	}{
		{"horizontal", 0x00, Horizontal},
		{"vertical", flag6Mirror, Vertical},
		{"four screen overrides vertical bit", flag6Mirror | flag6FourScr, FourScreen},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := append(header(1, 0, tc.flags6, 0), make([]byte, prgBlockSize)...)
			c, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Mirroring())
		})
	}
}

func TestParseMapperID(t *testing.T) {
	raw := append(header(1, 0, 0x10, 0x20), make([]byte, prgBlockSize)...)
	c, err := Parse(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 0x21, c.MapperID())
}

func TestParseRejectsShortImage(t *testing.T) {
	_, err := Parse([]byte{0x4e, 0x45, 0x53})
	require.Error(t, err)
	var bad *BadFormatError
	assert.ErrorAs(t, err, &bad)
}

func TestParseRejectsBadSignature(t *testing.T) {
	raw := header(1, 0, 0, 0)
	raw[0] = 'X'
	_, err := Parse(append(raw, make([]byte, prgBlockSize)...))
	require.Error(t, err)
}

func TestParseRejectsNES2(t *testing.T) {
	raw := append(header(1, 0, 0, 0x08), make([]byte, prgBlockSize)...)
	_, err := Parse(raw)
	require.Error(t, err)
	var unsupported *UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}

func TestParseWithTrainer(t *testing.T) {
	raw := header(1, 0, flag6Trainer, 0)
	raw = append(raw, make([]byte, trainerSize)...)
	raw = append(raw, bytes.Repeat([]byte{0xAB}, prgBlockSize)...)

	c, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), c.PRGRead(0))
}

func TestLoad(t *testing.T) {
	raw := append(header(2, 0, 0, 0), make([]byte, 2*prgBlockSize)...)
	c, err := Load(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 0x8000, c.PRGLen())
}

func TestNewTest(t *testing.T) {
	c := NewTest()
	assert.Equal(t, 2*prgBlockSize, c.PRGLen())
	assert.Equal(t, 0, c.CHRLen())
	assert.False(t, c.PRGIs16K())
}

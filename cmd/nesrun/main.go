// Command nesrun loads an iNES ROM and drives the CPU behind a minimal
// ebiten window: a configurable slice of memory rendered as a 32x32
// indexed-color bitmap (the "6502 snake demo" convention), with arrow
// keys polled into the $FF zero-page byte and a seeded RNG byte fed
// into $FE every frame.
package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/waltondev/nescore/bus"
	"github.com/waltondev/nescore/cartridge"
	"github.com/waltondev/nescore/cpu"
)

var (
	romPath        = flag.String("rom", "", "path to an iNES ROM file")
	permissive     = flag.Bool("permissive", false, "treat unimplemented bus regions as reads-as-zero instead of panicking")
	frameBase      = flag.Uint("frame_base", 0x0200, "base address of the 32x32 frame window rendered each tick")
	stepsPerUpdate = flag.Int("steps_per_update", 200, "CPU instructions executed per ebiten Update tick")
)

const (
	frameDim = 32
)

// palette is the classic 16-color snake-demo zero-page palette: each
// on-screen byte selects one of these colors by its low nibble.
var palette = [16]color.RGBA{
	{0, 0, 0, 255}, {255, 255, 255, 255}, {0x88, 0x00, 0x00, 255}, {0xaa, 0xff, 0xee, 255},
	{0xcc, 0x44, 0xcc, 255}, {0x00, 0xcc, 0x55, 255}, {0x00, 0x00, 0xaa, 255}, {0xee, 0xee, 0x77, 255},
	{0xdd, 0x88, 0x55, 255}, {0x66, 0x44, 0x00, 255}, {0xff, 0x77, 0x77, 255}, {0x33, 0x33, 0x33, 255},
	{0x77, 0x77, 0x77, 255}, {0xaa, 0xff, 0x66, 255}, {0x00, 0x88, 0xff, 255}, {0xbb, 0xbb, 0xbb, 255},
}

type game struct {
	ctx     context.Context
	cancel  context.CancelFunc
	c       *cpu.CPU
	b       *bus.Bus
	base    uint16
	rng     *rand.Rand
	img     *ebiten.Image
	faulted error
}

func newGame(ctx context.Context, cancel context.CancelFunc, c *cpu.CPU, b *bus.Bus, base uint16) *game {
	return &game{
		ctx:    ctx,
		cancel: cancel,
		c:      c,
		b:      b,
		base:   base,
		rng:    rand.New(rand.NewSource(1)),
		img:    ebiten.NewImage(frameDim, frameDim),
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return frameDim, frameDim
}

// Update steps the CPU for this tick. It is the sole driver of emulated
// time; cancelling ctx (e.g. from a future non-ebiten shutdown path)
// stops it from stepping further without tearing down the window.
func (g *game) Update() error {
	if g.faulted != nil || g.ctx.Err() != nil {
		return nil
	}
	g.b.Write(0xFE, uint8(g.rng.Intn(256)))
	g.b.Write(0xFF, g.pollKey())

	defer func() {
		if r := recover(); r != nil {
			g.faulted = &faultError{r}
			g.cancel()
		}
	}()
	for i := 0; i < *stepsPerUpdate; i++ {
		if !g.c.Step() {
			g.cancel()
			return nil
		}
	}
	return nil
}

// pollKey maps the classic snake-demo WASD convention onto ebiten's key
// state: 0x77=w, 0x61=a, 0x73=s, 0x64=d.
func (g *game) pollKey() uint8 {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyW), ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		return 0x77
	case ebiten.IsKeyPressed(ebiten.KeyA), ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		return 0x61
	case ebiten.IsKeyPressed(ebiten.KeyS), ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		return 0x73
	case ebiten.IsKeyPressed(ebiten.KeyD), ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		return 0x64
	default:
		return 0
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	for y := 0; y < frameDim; y++ {
		for x := 0; x < frameDim; x++ {
			addr := uint16(int(g.base) + y*frameDim + x)
			v := g.b.Read(addr)
			g.img.Set(x, y, palette[v&0x0F])
		}
	}
	screen.DrawImage(g.img, nil)
}

type faultError struct{ v any }

func (f *faultError) Error() string { return "cpu fault: " + errString(f.v) }

func errString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "panic"
}

func main() {
	flag.Parse()
	if *romPath == "" {
		log.Fatal("-rom is required")
	}

	f, err := os.Open(*romPath)
	if err != nil {
		log.Fatalf("opening ROM: %v", err)
	}
	defer f.Close()

	cart, err := cartridge.Load(f)
	if err != nil {
		log.Fatalf("loading cartridge: %v", err)
	}

	b := bus.New(cart)
	b.Permissive = *permissive
	c := cpu.New(b)
	c.Reset()

	ebiten.SetWindowSize(frameDim*8, frameDim*8)
	ebiten.SetWindowTitle("nesrun")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := newGame(ctx, cancel, c, b, uint16(*frameBase))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if g.faulted != nil {
		log.Printf("run ended: %v", g.faulted)
	}
}

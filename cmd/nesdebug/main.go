// Command nesdebug loads an iNES ROM and drives an interactive
// single-step TUI debugger over it.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/waltondev/nescore/bus"
	"github.com/waltondev/nescore/cartridge"
	"github.com/waltondev/nescore/cpu"
)

var (
	romPath = flag.String("rom", "", "path to an iNES ROM file")
	base    = flag.Uint("base", 0, "program counter to start at; 0 uses the cartridge's reset vector")
)

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
	c := cpu.New(b)

	startPC := uint16(*base)
	if startPC == 0 {
		c.Reset()
		startPC = c.PC
	}

	if _, err := cpu.NewDebugger(c, nil, startPC).Run(); err != nil {
		log.Fatal(err)
	}
}

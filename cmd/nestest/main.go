// Command nestest boots an iNES ROM with PC forced to $C000 — the
// convention the community's nestest.nes correctness ROM expects when
// run headless — and prints one Nintendulator-format trace line per
// instruction. When -reference is given, each line is compared against
// the matching line of a reference log and the run stops at the first
// mismatch, dumping the CPU state with go-spew.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/waltondev/nescore/bus"
	"github.com/waltondev/nescore/cartridge"
	"github.com/waltondev/nescore/cpu"
)

var (
	romPath       = flag.String("rom", "", "path to the nestest.nes ROM (or any iNES image)")
	referencePath = flag.String("reference", "", "optional reference log to diff against, one trace line per instruction")
	maxInstrs     = flag.Int("max_instructions", 10000, "instruction cap, to bound a run that never reaches BRK")
	startPC       = flag.Uint("start_pc", 0xC000, "program counter to force after reset, per the nestest convention")
	permissive    = flag.Bool("permissive", true, "read/write stub regions (PPU/APU/IO) as no-ops instead of panicking; nestest pokes them deliberately")
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
	b.Permissive = *permissive
	c := cpu.New(b)
	c.Reset()
	c.PC = uint16(*startPC)
	c.S = 0xFD

	var reference *bufio.Scanner
	if *referencePath != "" {
		rf, err := os.Open(*referencePath)
		if err != nil {
			log.Fatalf("opening reference log: %v", err)
		}
		defer rf.Close()
		reference = bufio.NewScanner(rf)
		reference.Buffer(make([]byte, 0, 1024), 1024)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	ran := 0
	for i := 0; i < *maxInstrs; i++ {
		opByte := b.Read(c.PC)
		op, ok := cpu.OpcodeTable[opByte]
		if !ok {
			log.Fatalf("unknown opcode $%02X at $%04X after %d instructions", opByte, c.PC, i)
		}
		line := cpu.Trace(c, *op)
		fmt.Fprintln(out, line)
		ran++

		if reference != nil {
			if !reference.Scan() {
				log.Printf("reference log exhausted after %d instructions; run continues unchecked", i)
				reference = nil
			} else if want := reference.Text(); want != line {
				out.Flush()
				fmt.Fprintf(os.Stderr, "mismatch at instruction %d:\n  got:  %s\n  want: %s\n", i, line, want)
				fmt.Fprintln(os.Stderr, spew.Sdump(c))
				os.Exit(1)
			}
		}

		if !c.Step() {
			break
		}
	}

	if reference != nil {
		fmt.Fprintf(os.Stderr, "trace matched reference log for %d instructions\n", ran)
	}
}

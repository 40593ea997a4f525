package cpu

import (
	"fmt"
	"strings"
)

// branchMnemonics holds the Bxx instructions, which render their
// operand as a resolved absolute target rather than through the
// generic addressing-mode table.
var branchMnemonics = map[string]bool{
	"BCC": true, "BCS": true, "BEQ": true, "BMI": true,
	"BNE": true, "BPL": true, "BVC": true, "BVS": true,
}

// accumulatorMnemonics holds the NoneAddressing-mode instructions that
// target the accumulator rather than being truly implied.
var accumulatorMnemonics = map[string]bool{
	"ASL": true, "LSR": true, "ROL": true, "ROR": true,
}

// Trace formats the instruction about to execute at c's current PC in
// the Nintendulator convention: left pane (PC, raw bytes, mnemonic,
// operand, detail) padded to 47 characters, followed by the register
// pane. It reads memory to resolve effective addresses but never
// writes memory or advances PC — it is called with the CPU exactly as
// Run leaves it before executing the opcode.
func Trace(c *CPU, op Opcode) string {
	pc := c.PC
	raw := make([]string, op.Len)
	for i := uint8(0); i < op.Len; i++ {
		raw[i] = fmt.Sprintf("%02X", c.Bus.Read(pc+uint16(i)))
	}
	hexField := strings.Join(raw, " ")

	operand, detail := renderOperand(c, op, pc)

	left := fmt.Sprintf("%04X  %-8s  %-3s %s %s", pc, hexField, op.Mnemonic, operand, detail)
	registers := fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X", c.A, c.X, c.Y, c.P, c.S)

	return strings.ToUpper(fmt.Sprintf("%-47s %s", strings.TrimRight(left, " "), registers))
}

func renderOperand(c *CPU, op Opcode, pc uint16) (operand, detail string) {
	pcOperand := pc + 1

	if op.Mode == NoneAddressing && branchMnemonics[op.Mnemonic] {
		offset := int8(c.Bus.Read(pcOperand))
		target := uint16(int32(pc) + 2 + int32(offset))
		return fmt.Sprintf("$%04X", target), ""
	}

	if op.Mode == NoneAddressing {
		if accumulatorMnemonics[op.Mnemonic] {
			return "A", ""
		}
		return "", ""
	}

	switch op.Mode {
	case Immediate:
		v := c.Bus.Read(pcOperand)
		return fmt.Sprintf("#$%02X", v), ""

	case ZeroPage:
		zp := c.Bus.Read(pcOperand)
		v := c.Bus.Read(uint16(zp))
		return fmt.Sprintf("$%02X", zp), fmt.Sprintf("= %02X", v)

	case ZeroPageX:
		zp := c.Bus.Read(pcOperand)
		addr := uint16(zp + c.X)
		v := c.Bus.Read(addr)
		return fmt.Sprintf("$%02X,X", zp), fmt.Sprintf("@ %02X = %02X", addr, v)

	case ZeroPageY:
		zp := c.Bus.Read(pcOperand)
		addr := uint16(zp + c.Y)
		v := c.Bus.Read(addr)
		return fmt.Sprintf("$%02X,Y", zp), fmt.Sprintf("@ %02X = %02X", addr, v)

	case Absolute:
		addr := readU16(c.Bus, pcOperand)
		if op.Mnemonic == "JMP" || op.Mnemonic == "JSR" {
			return fmt.Sprintf("$%04X", addr), ""
		}
		return fmt.Sprintf("$%04X", addr), fmt.Sprintf("= %02X", c.Bus.Read(addr))

	case AbsoluteX:
		base := readU16(c.Bus, pcOperand)
		addr := base + uint16(c.X)
		return fmt.Sprintf("$%04X,X", base), fmt.Sprintf("@ %04X = %02X", addr, c.Bus.Read(addr))

	case AbsoluteY:
		base := readU16(c.Bus, pcOperand)
		addr := base + uint16(c.Y)
		return fmt.Sprintf("$%04X,Y", base), fmt.Sprintf("@ %04X = %02X", addr, c.Bus.Read(addr))

	case Indirect:
		ptr := readU16(c.Bus, pcOperand)
		addr := readU16PageWrap(c.Bus, ptr)
		return fmt.Sprintf("($%04X)", ptr), fmt.Sprintf("= %04X", addr)

	case IndirectX:
		zp := c.Bus.Read(pcOperand)
		addr := readU16ZeroPage(c.Bus, zp+c.X)
		v := c.Bus.Read(addr)
		return fmt.Sprintf("($%02X,X)", zp), fmt.Sprintf("@ %02X = %04X = %02X", zp+c.X, addr, v)

	case IndirectY:
		zp := c.Bus.Read(pcOperand)
		base := readU16ZeroPage(c.Bus, zp)
		addr := base + uint16(c.Y)
		v := c.Bus.Read(addr)
		return fmt.Sprintf("($%02X),Y", zp), fmt.Sprintf("= %04X @ %04X = %02X", base, addr, v)

	default:
		return "", ""
	}
}

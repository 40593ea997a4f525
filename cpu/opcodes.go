package cpu

// OpHandler executes one instruction given its addressing mode.
type OpHandler func(c *CPU, mode AddressingMode)

// Opcode is the static, data-only description of one instruction
// byte: its mnemonic, length in bytes, base cycle cost, addressing
// mode, and the handler that implements it. Page-crossing cycle
// penalties are documented (nowhere charged) per the external
// interface contract; Cycles is always the base cost.
type Opcode struct {
	Code     uint8
	Mnemonic string
	Len      uint8
	Cycles   uint8
	Mode     AddressingMode
	Exec     OpHandler
}

// OpcodeTable maps every implemented opcode byte to its Opcode entry.
// It is built once at package init and never mutated afterward.
var OpcodeTable = buildOpcodeTable()

func op(code uint8, mnemonic string, length, cycles uint8, mode AddressingMode, exec OpHandler) *Opcode {
	return &Opcode{Code: code, Mnemonic: mnemonic, Len: length, Cycles: cycles, Mode: mode, Exec: exec}
}

func buildOpcodeTable() map[uint8]*Opcode {
	t := map[uint8]*Opcode{}
	add := func(o *Opcode) { t[o.Code] = o }

	// ADC
	add(op(0x69, "ADC", 2, 2, Immediate, (*CPU).opADC))
	add(op(0x65, "ADC", 2, 3, ZeroPage, (*CPU).opADC))
	add(op(0x75, "ADC", 2, 4, ZeroPageX, (*CPU).opADC))
	add(op(0x6D, "ADC", 3, 4, Absolute, (*CPU).opADC))
	add(op(0x7D, "ADC", 3, 4, AbsoluteX, (*CPU).opADC))
	add(op(0x79, "ADC", 3, 4, AbsoluteY, (*CPU).opADC))
	add(op(0x61, "ADC", 2, 6, IndirectX, (*CPU).opADC))
	add(op(0x71, "ADC", 2, 5, IndirectY, (*CPU).opADC))

	// AND
	add(op(0x29, "AND", 2, 2, Immediate, (*CPU).opAND))
	add(op(0x25, "AND", 2, 3, ZeroPage, (*CPU).opAND))
	add(op(0x35, "AND", 2, 4, ZeroPageX, (*CPU).opAND))
	add(op(0x2D, "AND", 3, 4, Absolute, (*CPU).opAND))
	add(op(0x3D, "AND", 3, 4, AbsoluteX, (*CPU).opAND))
	add(op(0x39, "AND", 3, 4, AbsoluteY, (*CPU).opAND))
	add(op(0x21, "AND", 2, 6, IndirectX, (*CPU).opAND))
	add(op(0x31, "AND", 2, 5, IndirectY, (*CPU).opAND))

	// ASL
	add(op(0x0A, "ASL", 1, 2, NoneAddressing, (*CPU).opASL))
	add(op(0x06, "ASL", 2, 5, ZeroPage, (*CPU).opASL))
	add(op(0x16, "ASL", 2, 6, ZeroPageX, (*CPU).opASL))
	add(op(0x0E, "ASL", 3, 6, Absolute, (*CPU).opASL))
	add(op(0x1E, "ASL", 3, 7, AbsoluteX, (*CPU).opASL))

	// branches
	add(op(0x90, "BCC", 2, 2, NoneAddressing, (*CPU).opBCC))
	add(op(0xB0, "BCS", 2, 2, NoneAddressing, (*CPU).opBCS))
	add(op(0xF0, "BEQ", 2, 2, NoneAddressing, (*CPU).opBEQ))
	add(op(0x30, "BMI", 2, 2, NoneAddressing, (*CPU).opBMI))
	add(op(0xD0, "BNE", 2, 2, NoneAddressing, (*CPU).opBNE))
	add(op(0x10, "BPL", 2, 2, NoneAddressing, (*CPU).opBPL))
	add(op(0x50, "BVC", 2, 2, NoneAddressing, (*CPU).opBVC))
	add(op(0x70, "BVS", 2, 2, NoneAddressing, (*CPU).opBVS))

	add(op(0x24, "BIT", 2, 3, ZeroPage, (*CPU).opBIT))
	add(op(0x2C, "BIT", 3, 4, Absolute, (*CPU).opBIT))

	add(op(0x00, "BRK", 1, 7, NoneAddressing, (*CPU).opBRK))

	add(op(0x18, "CLC", 1, 2, NoneAddressing, (*CPU).opCLC))
	add(op(0xD8, "CLD", 1, 2, NoneAddressing, (*CPU).opCLD))
	add(op(0x58, "CLI", 1, 2, NoneAddressing, (*CPU).opCLI))
	add(op(0xB8, "CLV", 1, 2, NoneAddressing, (*CPU).opCLV))

	// CMP
	add(op(0xC9, "CMP", 2, 2, Immediate, (*CPU).opCMP))
	add(op(0xC5, "CMP", 2, 3, ZeroPage, (*CPU).opCMP))
	add(op(0xD5, "CMP", 2, 4, ZeroPageX, (*CPU).opCMP))
	add(op(0xCD, "CMP", 3, 4, Absolute, (*CPU).opCMP))
	add(op(0xDD, "CMP", 3, 4, AbsoluteX, (*CPU).opCMP))
	add(op(0xD9, "CMP", 3, 4, AbsoluteY, (*CPU).opCMP))
	add(op(0xC1, "CMP", 2, 6, IndirectX, (*CPU).opCMP))
	add(op(0xD1, "CMP", 2, 5, IndirectY, (*CPU).opCMP))

	add(op(0xE0, "CPX", 2, 2, Immediate, (*CPU).opCPX))
	add(op(0xE4, "CPX", 2, 3, ZeroPage, (*CPU).opCPX))
	add(op(0xEC, "CPX", 3, 4, Absolute, (*CPU).opCPX))

	add(op(0xC0, "CPY", 2, 2, Immediate, (*CPU).opCPY))
	add(op(0xC4, "CPY", 2, 3, ZeroPage, (*CPU).opCPY))
	add(op(0xCC, "CPY", 3, 4, Absolute, (*CPU).opCPY))

	// DEC/INC
	add(op(0xC6, "DEC", 2, 5, ZeroPage, (*CPU).opDEC))
	add(op(0xD6, "DEC", 2, 6, ZeroPageX, (*CPU).opDEC))
	add(op(0xCE, "DEC", 3, 6, Absolute, (*CPU).opDEC))
	add(op(0xDE, "DEC", 3, 7, AbsoluteX, (*CPU).opDEC))
	add(op(0xCA, "DEX", 1, 2, NoneAddressing, (*CPU).opDEX))
	add(op(0x88, "DEY", 1, 2, NoneAddressing, (*CPU).opDEY))
	add(op(0xE6, "INC", 2, 5, ZeroPage, (*CPU).opINC))
	add(op(0xF6, "INC", 2, 6, ZeroPageX, (*CPU).opINC))
	add(op(0xEE, "INC", 3, 6, Absolute, (*CPU).opINC))
	add(op(0xFE, "INC", 3, 7, AbsoluteX, (*CPU).opINC))
	add(op(0xE8, "INX", 1, 2, NoneAddressing, (*CPU).opINX))
	add(op(0xC8, "INY", 1, 2, NoneAddressing, (*CPU).opINY))

	// EOR
	add(op(0x49, "EOR", 2, 2, Immediate, (*CPU).opEOR))
	add(op(0x45, "EOR", 2, 3, ZeroPage, (*CPU).opEOR))
	add(op(0x55, "EOR", 2, 4, ZeroPageX, (*CPU).opEOR))
	add(op(0x4D, "EOR", 3, 4, Absolute, (*CPU).opEOR))
	add(op(0x5D, "EOR", 3, 4, AbsoluteX, (*CPU).opEOR))
	add(op(0x59, "EOR", 3, 4, AbsoluteY, (*CPU).opEOR))
	add(op(0x41, "EOR", 2, 6, IndirectX, (*CPU).opEOR))
	add(op(0x51, "EOR", 2, 5, IndirectY, (*CPU).opEOR))

	// JMP/JSR/RTS/RTI
	add(op(0x4C, "JMP", 3, 3, Absolute, (*CPU).opJMP))
	add(op(0x6C, "JMP", 3, 5, Indirect, (*CPU).opJMP))
	add(op(0x20, "JSR", 3, 6, Absolute, (*CPU).opJSR))
	add(op(0x60, "RTS", 1, 6, NoneAddressing, (*CPU).opRTS))
	add(op(0x40, "RTI", 1, 6, NoneAddressing, (*CPU).opRTI))

	// LDA/LDX/LDY
	add(op(0xA9, "LDA", 2, 2, Immediate, (*CPU).opLDA))
	add(op(0xA5, "LDA", 2, 3, ZeroPage, (*CPU).opLDA))
	add(op(0xB5, "LDA", 2, 4, ZeroPageX, (*CPU).opLDA))
	add(op(0xAD, "LDA", 3, 4, Absolute, (*CPU).opLDA))
	add(op(0xBD, "LDA", 3, 4, AbsoluteX, (*CPU).opLDA))
	add(op(0xB9, "LDA", 3, 4, AbsoluteY, (*CPU).opLDA))
	add(op(0xA1, "LDA", 2, 6, IndirectX, (*CPU).opLDA))
	add(op(0xB1, "LDA", 2, 5, IndirectY, (*CPU).opLDA))

	add(op(0xA2, "LDX", 2, 2, Immediate, (*CPU).opLDX))
	add(op(0xA6, "LDX", 2, 3, ZeroPage, (*CPU).opLDX))
	add(op(0xB6, "LDX", 2, 4, ZeroPageY, (*CPU).opLDX))
	add(op(0xAE, "LDX", 3, 4, Absolute, (*CPU).opLDX))
	add(op(0xBE, "LDX", 3, 4, AbsoluteY, (*CPU).opLDX))

	add(op(0xA0, "LDY", 2, 2, Immediate, (*CPU).opLDY))
	add(op(0xA4, "LDY", 2, 3, ZeroPage, (*CPU).opLDY))
	add(op(0xB4, "LDY", 2, 4, ZeroPageX, (*CPU).opLDY))
	add(op(0xAC, "LDY", 3, 4, Absolute, (*CPU).opLDY))
	add(op(0xBC, "LDY", 3, 4, AbsoluteX, (*CPU).opLDY))

	// LSR
	add(op(0x4A, "LSR", 1, 2, NoneAddressing, (*CPU).opLSR))
	add(op(0x46, "LSR", 2, 5, ZeroPage, (*CPU).opLSR))
	add(op(0x56, "LSR", 2, 6, ZeroPageX, (*CPU).opLSR))
	add(op(0x4E, "LSR", 3, 6, Absolute, (*CPU).opLSR))
	add(op(0x5E, "LSR", 3, 7, AbsoluteX, (*CPU).opLSR))

	add(op(0xEA, "NOP", 1, 2, NoneAddressing, (*CPU).opNOP))

	// ORA
	add(op(0x09, "ORA", 2, 2, Immediate, (*CPU).opORA))
	add(op(0x05, "ORA", 2, 3, ZeroPage, (*CPU).opORA))
	add(op(0x15, "ORA", 2, 4, ZeroPageX, (*CPU).opORA))
	add(op(0x0D, "ORA", 3, 4, Absolute, (*CPU).opORA))
	add(op(0x1D, "ORA", 3, 4, AbsoluteX, (*CPU).opORA))
	add(op(0x19, "ORA", 3, 4, AbsoluteY, (*CPU).opORA))
	add(op(0x01, "ORA", 2, 6, IndirectX, (*CPU).opORA))
	add(op(0x11, "ORA", 2, 5, IndirectY, (*CPU).opORA))

	add(op(0x48, "PHA", 1, 3, NoneAddressing, (*CPU).opPHA))
	add(op(0x08, "PHP", 1, 3, NoneAddressing, (*CPU).opPHP))
	add(op(0x68, "PLA", 1, 4, NoneAddressing, (*CPU).opPLA))
	add(op(0x28, "PLP", 1, 4, NoneAddressing, (*CPU).opPLP))

	// ROL/ROR
	add(op(0x2A, "ROL", 1, 2, NoneAddressing, (*CPU).opROL))
	add(op(0x26, "ROL", 2, 5, ZeroPage, (*CPU).opROL))
	add(op(0x36, "ROL", 2, 6, ZeroPageX, (*CPU).opROL))
	add(op(0x2E, "ROL", 3, 6, Absolute, (*CPU).opROL))
	add(op(0x3E, "ROL", 3, 7, AbsoluteX, (*CPU).opROL))
	add(op(0x6A, "ROR", 1, 2, NoneAddressing, (*CPU).opROR))
	add(op(0x66, "ROR", 2, 5, ZeroPage, (*CPU).opROR))
	add(op(0x76, "ROR", 2, 6, ZeroPageX, (*CPU).opROR))
	add(op(0x6E, "ROR", 3, 6, Absolute, (*CPU).opROR))
	add(op(0x7E, "ROR", 3, 7, AbsoluteX, (*CPU).opROR))

	// SBC
	add(op(0xE9, "SBC", 2, 2, Immediate, (*CPU).opSBC))
	add(op(0xE5, "SBC", 2, 3, ZeroPage, (*CPU).opSBC))
	add(op(0xF5, "SBC", 2, 4, ZeroPageX, (*CPU).opSBC))
	add(op(0xED, "SBC", 3, 4, Absolute, (*CPU).opSBC))
	add(op(0xFD, "SBC", 3, 4, AbsoluteX, (*CPU).opSBC))
	add(op(0xF9, "SBC", 3, 4, AbsoluteY, (*CPU).opSBC))
	add(op(0xE1, "SBC", 2, 6, IndirectX, (*CPU).opSBC))
	add(op(0xF1, "SBC", 2, 5, IndirectY, (*CPU).opSBC))
	add(op(0xEB, "SBC", 2, 2, Immediate, (*CPU).opSBC)) // undocumented alias

	add(op(0x38, "SEC", 1, 2, NoneAddressing, (*CPU).opSEC))
	add(op(0xF8, "SED", 1, 2, NoneAddressing, (*CPU).opSED))
	add(op(0x78, "SEI", 1, 2, NoneAddressing, (*CPU).opSEI))

	// STA/STX/STY
	add(op(0x85, "STA", 2, 3, ZeroPage, (*CPU).opSTA))
	add(op(0x95, "STA", 2, 4, ZeroPageX, (*CPU).opSTA))
	add(op(0x8D, "STA", 3, 4, Absolute, (*CPU).opSTA))
	add(op(0x9D, "STA", 3, 5, AbsoluteX, (*CPU).opSTA))
	add(op(0x99, "STA", 3, 5, AbsoluteY, (*CPU).opSTA))
	add(op(0x81, "STA", 2, 6, IndirectX, (*CPU).opSTA))
	add(op(0x91, "STA", 2, 6, IndirectY, (*CPU).opSTA))

	add(op(0x86, "STX", 2, 3, ZeroPage, (*CPU).opSTX))
	add(op(0x96, "STX", 2, 4, ZeroPageY, (*CPU).opSTX))
	add(op(0x8E, "STX", 3, 4, Absolute, (*CPU).opSTX))

	add(op(0x84, "STY", 2, 3, ZeroPage, (*CPU).opSTY))
	add(op(0x94, "STY", 2, 4, ZeroPageX, (*CPU).opSTY))
	add(op(0x8C, "STY", 3, 4, Absolute, (*CPU).opSTY))

	add(op(0xAA, "TAX", 1, 2, NoneAddressing, (*CPU).opTAX))
	add(op(0xA8, "TAY", 1, 2, NoneAddressing, (*CPU).opTAY))
	add(op(0xBA, "TSX", 1, 2, NoneAddressing, (*CPU).opTSX))
	add(op(0x8A, "TXA", 1, 2, NoneAddressing, (*CPU).opTXA))
	add(op(0x9A, "TXS", 1, 2, NoneAddressing, (*CPU).opTXS))
	add(op(0x98, "TYA", 1, 2, NoneAddressing, (*CPU).opTYA))

	addUndocumented(add)

	return t
}

// addUndocumented registers the subset of illegal opcodes exercised by
// nestest: NOP aliases, LAX, SAX, DCP, ISB, SLO, RLA, SRE, RRA, ANC.
func addUndocumented(add func(*Opcode)) {
	// single-byte NOP aliases
	for _, c := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		add(op(c, "NOP", 1, 2, NoneAddressing, (*CPU).opNOP))
	}
	// immediate-operand ("double") NOPs
	for _, c := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		add(op(c, "NOP", 2, 2, Immediate, (*CPU).opNOP))
	}
	// zero-page NOPs
	for _, c := range []uint8{0x04, 0x44, 0x64} {
		add(op(c, "NOP", 2, 3, ZeroPage, (*CPU).opNOP))
	}
	for _, c := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		add(op(c, "NOP", 2, 4, ZeroPageX, (*CPU).opNOP))
	}
	// absolute NOPs
	add(op(0x0C, "NOP", 3, 4, Absolute, (*CPU).opNOP))
	for _, c := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		add(op(c, "NOP", 3, 4, AbsoluteX, (*CPU).opNOP))
	}

	// LAX
	add(op(0xA7, "LAX", 2, 3, ZeroPage, (*CPU).opLAX))
	add(op(0xB7, "LAX", 2, 4, ZeroPageY, (*CPU).opLAX))
	add(op(0xAF, "LAX", 3, 4, Absolute, (*CPU).opLAX))
	add(op(0xBF, "LAX", 3, 4, AbsoluteY, (*CPU).opLAX))
	add(op(0xA3, "LAX", 2, 6, IndirectX, (*CPU).opLAX))
	add(op(0xB3, "LAX", 2, 5, IndirectY, (*CPU).opLAX))

	// SAX
	add(op(0x87, "SAX", 2, 3, ZeroPage, (*CPU).opSAX))
	add(op(0x97, "SAX", 2, 4, ZeroPageY, (*CPU).opSAX))
	add(op(0x8F, "SAX", 3, 4, Absolute, (*CPU).opSAX))
	add(op(0x83, "SAX", 2, 6, IndirectX, (*CPU).opSAX))

	// DCP
	add(op(0xC7, "DCP", 2, 5, ZeroPage, (*CPU).opDCP))
	add(op(0xD7, "DCP", 2, 6, ZeroPageX, (*CPU).opDCP))
	add(op(0xCF, "DCP", 3, 6, Absolute, (*CPU).opDCP))
	add(op(0xDF, "DCP", 3, 7, AbsoluteX, (*CPU).opDCP))
	add(op(0xDB, "DCP", 3, 7, AbsoluteY, (*CPU).opDCP))
	add(op(0xC3, "DCP", 2, 8, IndirectX, (*CPU).opDCP))
	add(op(0xD3, "DCP", 2, 8, IndirectY, (*CPU).opDCP))

	// ISB (aka ISC)
	add(op(0xE7, "ISB", 2, 5, ZeroPage, (*CPU).opISB))
	add(op(0xF7, "ISB", 2, 6, ZeroPageX, (*CPU).opISB))
	add(op(0xEF, "ISB", 3, 6, Absolute, (*CPU).opISB))
	add(op(0xFF, "ISB", 3, 7, AbsoluteX, (*CPU).opISB))
	add(op(0xFB, "ISB", 3, 7, AbsoluteY, (*CPU).opISB))
	add(op(0xE3, "ISB", 2, 8, IndirectX, (*CPU).opISB))
	add(op(0xF3, "ISB", 2, 8, IndirectY, (*CPU).opISB))

	// SLO
	add(op(0x07, "SLO", 2, 5, ZeroPage, (*CPU).opSLO))
	add(op(0x17, "SLO", 2, 6, ZeroPageX, (*CPU).opSLO))
	add(op(0x0F, "SLO", 3, 6, Absolute, (*CPU).opSLO))
	add(op(0x1F, "SLO", 3, 7, AbsoluteX, (*CPU).opSLO))
	add(op(0x1B, "SLO", 3, 7, AbsoluteY, (*CPU).opSLO))
	add(op(0x03, "SLO", 2, 8, IndirectX, (*CPU).opSLO))
	add(op(0x13, "SLO", 2, 8, IndirectY, (*CPU).opSLO))

	// RLA
	add(op(0x27, "RLA", 2, 5, ZeroPage, (*CPU).opRLA))
	add(op(0x37, "RLA", 2, 6, ZeroPageX, (*CPU).opRLA))
	add(op(0x2F, "RLA", 3, 6, Absolute, (*CPU).opRLA))
	add(op(0x3F, "RLA", 3, 7, AbsoluteX, (*CPU).opRLA))
	add(op(0x3B, "RLA", 3, 7, AbsoluteY, (*CPU).opRLA))
	add(op(0x23, "RLA", 2, 8, IndirectX, (*CPU).opRLA))
	add(op(0x33, "RLA", 2, 8, IndirectY, (*CPU).opRLA))

	// SRE
	add(op(0x47, "SRE", 2, 5, ZeroPage, (*CPU).opSRE))
	add(op(0x57, "SRE", 2, 6, ZeroPageX, (*CPU).opSRE))
	add(op(0x4F, "SRE", 3, 6, Absolute, (*CPU).opSRE))
	add(op(0x5F, "SRE", 3, 7, AbsoluteX, (*CPU).opSRE))
	add(op(0x5B, "SRE", 3, 7, AbsoluteY, (*CPU).opSRE))
	add(op(0x43, "SRE", 2, 8, IndirectX, (*CPU).opSRE))
	add(op(0x53, "SRE", 2, 8, IndirectY, (*CPU).opSRE))

	// RRA
	add(op(0x67, "RRA", 2, 5, ZeroPage, (*CPU).opRRA))
	add(op(0x77, "RRA", 2, 6, ZeroPageX, (*CPU).opRRA))
	add(op(0x6F, "RRA", 3, 6, Absolute, (*CPU).opRRA))
	add(op(0x7F, "RRA", 3, 7, AbsoluteX, (*CPU).opRRA))
	add(op(0x7B, "RRA", 3, 7, AbsoluteY, (*CPU).opRRA))
	add(op(0x63, "RRA", 2, 8, IndirectX, (*CPU).opRRA))
	add(op(0x73, "RRA", 2, 8, IndirectY, (*CPU).opRRA))

	// ANC
	add(op(0x0B, "ANC", 2, 2, Immediate, (*CPU).opANC))
	add(op(0x2B, "ANC", 2, 2, Immediate, (*CPU).opANC))
}

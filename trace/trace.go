// Package trace implements a disassembler for the documented 6502 opcode
// set, adapted from the teacher's instruction-matrix disassembler to read
// through a bus.Bus instead of a fixed RAM image.
package trace

import (
	"fmt"

	"github.com/nortiero/go6502/bus"
)

const (
	modeImmediate = iota
	modeZP
	modeZPX
	modeZPY
	modeIndirectX
	modeIndirectY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeImplied
	modeRelative
)

type entry struct {
	mnemonic string
	mode     int
}

// table is keyed by opcode and mirrors cpu/dispatch.go's opTable one for
// one: every opcode present there has an entry here with the matching
// addressing mode, and every opcode absent there is left unset. The CPU
// never latches an undocumented opcode during a spec-compliant run
// (seqIllegal raises IllegalOpcode before any semantic or trace step sees
// it), so there is no mnemonic to assign those slots and Step reports them
// as illegal rather than guessing at undefined behavior.
var table = map[uint8]entry{
	0x00: {"BRK", modeImmediate}, // reads and discards the byte after BRK
	0x01: {"ORA", modeIndirectX},
	0x05: {"ORA", modeZP},
	0x06: {"ASL", modeZP},
	0x08: {"PHP", modeImplied},
	0x09: {"ORA", modeImmediate},
	0x0A: {"ASL", modeImplied},
	0x0D: {"ORA", modeAbsolute},
	0x0E: {"ASL", modeAbsolute},

	0x10: {"BPL", modeRelative},
	0x11: {"ORA", modeIndirectY},
	0x15: {"ORA", modeZPX},
	0x16: {"ASL", modeZPX},
	0x18: {"CLC", modeImplied},
	0x19: {"ORA", modeAbsoluteY},
	0x1D: {"ORA", modeAbsoluteX},
	0x1E: {"ASL", modeAbsoluteX},

	0x20: {"JSR", modeAbsolute},
	0x21: {"AND", modeIndirectX},
	0x24: {"BIT", modeZP},
	0x25: {"AND", modeZP},
	0x26: {"ROL", modeZP},
	0x28: {"PLP", modeImplied},
	0x29: {"AND", modeImmediate},
	0x2A: {"ROL", modeImplied},
	0x2C: {"BIT", modeAbsolute},
	0x2D: {"AND", modeAbsolute},
	0x2E: {"ROL", modeAbsolute},

	0x30: {"BMI", modeRelative},
	0x31: {"AND", modeIndirectY},
	0x35: {"AND", modeZPX},
	0x36: {"ROL", modeZPX},
	0x38: {"SEC", modeImplied},
	0x39: {"AND", modeAbsoluteY},
	0x3D: {"AND", modeAbsoluteX},
	0x3E: {"ROL", modeAbsoluteX},

	0x40: {"RTI", modeImplied},
	0x41: {"EOR", modeIndirectX},
	0x45: {"EOR", modeZP},
	0x46: {"LSR", modeZP},
	0x48: {"PHA", modeImplied},
	0x49: {"EOR", modeImmediate},
	0x4A: {"LSR", modeImplied},
	0x4C: {"JMP", modeAbsolute},
	0x4D: {"EOR", modeAbsolute},
	0x4E: {"LSR", modeAbsolute},

	0x50: {"BVC", modeRelative},
	0x51: {"EOR", modeIndirectY},
	0x55: {"EOR", modeZPX},
	0x56: {"LSR", modeZPX},
	0x58: {"CLI", modeImplied},
	0x59: {"EOR", modeAbsoluteY},
	0x5D: {"EOR", modeAbsoluteX},
	0x5E: {"LSR", modeAbsoluteX},

	0x60: {"RTS", modeImplied},
	0x61: {"ADC", modeIndirectX},
	0x65: {"ADC", modeZP},
	0x66: {"ROR", modeZP},
	0x68: {"PLA", modeImplied},
	0x69: {"ADC", modeImmediate},
	0x6A: {"ROR", modeImplied},
	0x6C: {"JMP", modeIndirect},
	0x6D: {"ADC", modeAbsolute},
	0x6E: {"ROR", modeAbsolute},

	0x70: {"BVS", modeRelative},
	0x71: {"ADC", modeIndirectY},
	0x75: {"ADC", modeZPX},
	0x76: {"ROR", modeZPX},
	0x78: {"SEI", modeImplied},
	0x79: {"ADC", modeAbsoluteY},
	0x7D: {"ADC", modeAbsoluteX},
	0x7E: {"ROR", modeAbsoluteX},

	0x81: {"STA", modeIndirectX},
	0x84: {"STY", modeZP},
	0x85: {"STA", modeZP},
	0x86: {"STX", modeZP},
	0x88: {"DEY", modeImplied},
	0x8A: {"TXA", modeImplied},
	0x8C: {"STY", modeAbsolute},
	0x8D: {"STA", modeAbsolute},
	0x8E: {"STX", modeAbsolute},

	0x90: {"BCC", modeRelative},
	0x91: {"STA", modeIndirectY},
	0x94: {"STY", modeZPX},
	0x95: {"STA", modeZPX},
	0x96: {"STX", modeZPY},
	0x98: {"TYA", modeImplied},
	0x99: {"STA", modeAbsoluteY},
	0x9A: {"TXS", modeImplied},
	0x9D: {"STA", modeAbsoluteX},

	0xA0: {"LDY", modeImmediate},
	0xA1: {"LDA", modeIndirectX},
	0xA2: {"LDX", modeImmediate},
	0xA4: {"LDY", modeZP},
	0xA5: {"LDA", modeZP},
	0xA6: {"LDX", modeZP},
	0xA8: {"TAY", modeImplied},
	0xA9: {"LDA", modeImmediate},
	0xAA: {"TAX", modeImplied},
	0xAC: {"LDY", modeAbsolute},
	0xAD: {"LDA", modeAbsolute},
	0xAE: {"LDX", modeAbsolute},

	0xB0: {"BCS", modeRelative},
	0xB1: {"LDA", modeIndirectY},
	0xB4: {"LDY", modeZPX},
	0xB5: {"LDA", modeZPX},
	0xB6: {"LDX", modeZPY},
	0xB8: {"CLV", modeImplied},
	0xB9: {"LDA", modeAbsoluteY},
	0xBA: {"TSX", modeImplied},
	0xBC: {"LDY", modeAbsoluteX},
	0xBD: {"LDA", modeAbsoluteX},
	0xBE: {"LDX", modeAbsoluteY},

	0xC0: {"CPY", modeImmediate},
	0xC1: {"CMP", modeIndirectX},
	0xC4: {"CPY", modeZP},
	0xC5: {"CMP", modeZP},
	0xC6: {"DEC", modeZP},
	0xC8: {"INY", modeImplied},
	0xC9: {"CMP", modeImmediate},
	0xCA: {"DEX", modeImplied},
	0xCC: {"CPY", modeAbsolute},
	0xCD: {"CMP", modeAbsolute},
	0xCE: {"DEC", modeAbsolute},

	0xD0: {"BNE", modeRelative},
	0xD1: {"CMP", modeIndirectY},
	0xD5: {"CMP", modeZPX},
	0xD6: {"DEC", modeZPX},
	0xD8: {"CLD", modeImplied},
	0xD9: {"CMP", modeAbsoluteY},
	0xDD: {"CMP", modeAbsoluteX},
	0xDE: {"DEC", modeAbsoluteX},

	0xE0: {"CPX", modeImmediate},
	0xE1: {"SBC", modeIndirectX},
	0xE4: {"CPX", modeZP},
	0xE5: {"SBC", modeZP},
	0xE6: {"INC", modeZP},
	0xE8: {"INX", modeImplied},
	0xE9: {"SBC", modeImmediate},
	0xEA: {"NOP", modeImplied},
	0xEC: {"CPX", modeAbsolute},
	0xED: {"SBC", modeAbsolute},
	0xEE: {"INC", modeAbsolute},

	0xF0: {"BEQ", modeRelative},
	0xF1: {"SBC", modeIndirectY},
	0xF5: {"SBC", modeZPX},
	0xF6: {"INC", modeZPX},
	0xF8: {"SED", modeImplied},
	0xF9: {"SBC", modeAbsoluteY},
	0xFD: {"SBC", modeAbsoluteX},
	0xFE: {"INC", modeAbsoluteX},
}

// Step disassembles the instruction at pc, returning a formatted line and
// the byte count to advance pc by to reach the next instruction. This does
// not interpret control flow, so a JMP target is printed, never followed.
// Step always reads the two bytes after pc, whatever the addressing mode,
// so the caller must ensure those addresses are valid to read.
func Step(pc uint16, b bus.Bus) (string, int) {
	op := b.Read(pc)
	b1 := b.Read(pc + 1)
	b2 := b.Read(pc + 2)

	e, ok := table[op]
	if !ok {
		return fmt.Sprintf("%04X %02X      ILLEGAL", pc, op), 1
	}

	count := 2
	out := fmt.Sprintf("%04X %02X ", pc, op)
	switch e.mode {
	case modeImmediate:
		out += fmt.Sprintf("%02X      %s #%02X", b1, e.mnemonic, b1)
	case modeZP:
		out += fmt.Sprintf("%02X      %s %02X", b1, e.mnemonic, b1)
	case modeZPX:
		out += fmt.Sprintf("%02X      %s %02X,X", b1, e.mnemonic, b1)
	case modeZPY:
		out += fmt.Sprintf("%02X      %s %02X,Y", b1, e.mnemonic, b1)
	case modeIndirectX:
		out += fmt.Sprintf("%02X      %s (%02X,X)", b1, e.mnemonic, b1)
	case modeIndirectY:
		out += fmt.Sprintf("%02X      %s (%02X),Y", b1, e.mnemonic, b1)
	case modeAbsolute:
		out += fmt.Sprintf("%02X %02X   %s %02X%02X", b1, b2, e.mnemonic, b2, b1)
		count++
	case modeAbsoluteX:
		out += fmt.Sprintf("%02X %02X   %s %02X%02X,X", b1, b2, e.mnemonic, b2, b1)
		count++
	case modeAbsoluteY:
		out += fmt.Sprintf("%02X %02X   %s %02X%02X,Y", b1, b2, e.mnemonic, b2, b1)
		count++
	case modeIndirect:
		out += fmt.Sprintf("%02X %02X   %s (%02X%02X)", b1, b2, e.mnemonic, b2, b1)
		count++
	case modeImplied:
		out += fmt.Sprintf("        %s", e.mnemonic)
		count--
	case modeRelative:
		target := pc + 2 + uint16(int8(b1))
		out += fmt.Sprintf("%02X      %s %02X (%04X)", b1, e.mnemonic, b1, target)
	default:
		panic(fmt.Sprintf("invalid addressing mode: %d", e.mode))
	}
	return out, count
}

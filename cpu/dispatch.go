package cpu

// SEQUENCER and SEMANTIC are the two 256-entry dispatch tables described in
// §4.4: every opcode byte indexes both in lockstep, the sequencer driving
// bus timing and the semantic doing the pure register work at the
// sub-cycle the sequencer calls it from. Slots with no documented opcode dispatch to seqIllegal, which
// raises IllegalOpcode rather than guessing at undefined behavior.

var SEQUENCER [256]SequencerFunc
var SEMANTIC [256]SemanticFunc

type opEntry struct {
	op  uint8
	sem SemanticFunc
	seq SequencerFunc
}

var opTable = []opEntry{
	{0x00, opNil, seqBRK},
	{0x01, iORA, seqIndirectX},
	{0x05, iORA, seqZP},
	{0x06, iASL, seqRMWZP},
	{0x08, iPHP, seqPush},
	{0x09, iORA, seqImmediate},
	{0x0A, iASL, seqAccumulator},
	{0x0D, iORA, seqAbsolute},
	{0x0E, iASL, seqRMWAbs},

	{0x10, iBPL, seqBranch},
	{0x11, iORA, seqIndirectY},
	{0x15, iORA, seqZPX},
	{0x16, iASL, seqRMWZPX},
	{0x18, iCLC, seqImplied},
	{0x19, iORA, seqAbsY},
	{0x1D, iORA, seqAbsX},
	{0x1E, iASL, seqRMWAbsX},

	{0x20, opNil, seqJSR},
	{0x21, iAND, seqIndirectX},
	{0x24, iBIT, seqZP},
	{0x25, iAND, seqZP},
	{0x26, iROL, seqRMWZP},
	{0x28, iPLP, seqPull},
	{0x29, iAND, seqImmediate},
	{0x2A, iROL, seqAccumulator},
	{0x2C, iBIT, seqAbsolute},
	{0x2D, iAND, seqAbsolute},
	{0x2E, iROL, seqRMWAbs},

	{0x30, iBMI, seqBranch},
	{0x31, iAND, seqIndirectY},
	{0x35, iAND, seqZPX},
	{0x36, iROL, seqRMWZPX},
	{0x38, iSEC, seqImplied},
	{0x39, iAND, seqAbsY},
	{0x3D, iAND, seqAbsX},
	{0x3E, iROL, seqRMWAbsX},

	{0x40, opNil, seqRTI},
	{0x41, iEOR, seqIndirectX},
	{0x45, iEOR, seqZP},
	{0x46, iLSR, seqRMWZP},
	{0x48, iPHA, seqPush},
	{0x49, iEOR, seqImmediate},
	{0x4A, iLSR, seqAccumulator},
	{0x4C, opNil, seqJMPAbsolute},
	{0x4D, iEOR, seqAbsolute},
	{0x4E, iLSR, seqRMWAbs},

	{0x50, iBVC, seqBranch},
	{0x51, iEOR, seqIndirectY},
	{0x55, iEOR, seqZPX},
	{0x56, iLSR, seqRMWZPX},
	{0x58, iCLI, seqImplied},
	{0x59, iEOR, seqAbsY},
	{0x5D, iEOR, seqAbsX},
	{0x5E, iLSR, seqRMWAbsX},

	{0x60, opNil, seqRTS},
	{0x61, iADC, seqIndirectX},
	{0x65, iADC, seqZP},
	{0x66, iROR, seqRMWZP},
	{0x68, iPLA, seqPull},
	{0x69, iADC, seqImmediate},
	{0x6A, iROR, seqAccumulator},
	{0x6C, opNil, seqJMPIndirect},
	{0x6D, iADC, seqAbsolute},
	{0x6E, iROR, seqRMWAbs},

	{0x70, iBVS, seqBranch},
	{0x71, iADC, seqIndirectY},
	{0x75, iADC, seqZPX},
	{0x76, iROR, seqRMWZPX},
	{0x78, iSEI, seqImplied},
	{0x79, iADC, seqAbsY},
	{0x7D, iADC, seqAbsX},
	{0x7E, iROR, seqRMWAbsX},

	{0x81, iSTA, seqStoreIndirectX},
	{0x84, iSTY, seqStoreZP},
	{0x85, iSTA, seqStoreZP},
	{0x86, iSTX, seqStoreZP},
	{0x88, iDEY, seqImplied},
	{0x8A, iTXA, seqImplied},
	{0x8C, iSTY, seqStoreAbs},
	{0x8D, iSTA, seqStoreAbs},
	{0x8E, iSTX, seqStoreAbs},

	{0x90, iBCC, seqBranch},
	{0x91, iSTA, seqStoreIndirectY},
	{0x94, iSTY, seqStoreZPX},
	{0x95, iSTA, seqStoreZPX},
	{0x96, iSTX, seqStoreZPY},
	{0x98, iTYA, seqImplied},
	{0x99, iSTA, seqStoreAbsY},
	{0x9A, iTXS, seqImplied},
	{0x9D, iSTA, seqStoreAbsX},

	{0xA0, iLDY, seqImmediate},
	{0xA1, iLDA, seqIndirectX},
	{0xA2, iLDX, seqImmediate},
	{0xA4, iLDY, seqZP},
	{0xA5, iLDA, seqZP},
	{0xA6, iLDX, seqZP},
	{0xA8, iTAY, seqImplied},
	{0xA9, iLDA, seqImmediate},
	{0xAA, iTAX, seqImplied},
	{0xAC, iLDY, seqAbsolute},
	{0xAD, iLDA, seqAbsolute},
	{0xAE, iLDX, seqAbsolute},

	{0xB0, iBCS, seqBranch},
	{0xB1, iLDA, seqIndirectY},
	{0xB4, iLDY, seqZPX},
	{0xB5, iLDA, seqZPX},
	{0xB6, iLDX, seqZPY},
	{0xB8, iCLV, seqImplied},
	{0xB9, iLDA, seqAbsY},
	{0xBA, iTSX, seqImplied},
	{0xBC, iLDY, seqAbsX},
	{0xBD, iLDA, seqAbsX},
	{0xBE, iLDX, seqAbsY},

	{0xC0, iCPY, seqImmediate},
	{0xC1, iCMP, seqIndirectX},
	{0xC4, iCPY, seqZP},
	{0xC5, iCMP, seqZP},
	{0xC6, iDEC, seqRMWZP},
	{0xC8, iINY, seqImplied},
	{0xC9, iCMP, seqImmediate},
	{0xCA, iDEX, seqImplied},
	{0xCC, iCPY, seqAbsolute},
	{0xCD, iCMP, seqAbsolute},
	{0xCE, iDEC, seqRMWAbs},

	{0xD0, iBNE, seqBranch},
	{0xD1, iCMP, seqIndirectY},
	{0xD5, iCMP, seqZPX},
	{0xD6, iDEC, seqRMWZPX},
	{0xD8, iCLD, seqImplied},
	{0xD9, iCMP, seqAbsY},
	{0xDD, iCMP, seqAbsX},
	{0xDE, iDEC, seqRMWAbsX},

	{0xE0, iCPX, seqImmediate},
	{0xE1, iSBC, seqIndirectX},
	{0xE4, iCPX, seqZP},
	{0xE5, iSBC, seqZP},
	{0xE6, iINC, seqRMWZP},
	{0xE8, iINX, seqImplied},
	{0xE9, iSBC, seqImmediate},
	{0xEA, iNOP, seqImplied},
	{0xEC, iCPX, seqAbsolute},
	{0xED, iSBC, seqAbsolute},
	{0xEE, iINC, seqRMWAbs},

	{0xF0, iBEQ, seqBranch},
	{0xF1, iSBC, seqIndirectY},
	{0xF5, iSBC, seqZPX},
	{0xF6, iINC, seqRMWZPX},
	{0xF8, iSED, seqImplied},
	{0xF9, iSBC, seqAbsY},
	{0xFD, iSBC, seqAbsX},
	{0xFE, iINC, seqRMWAbsX},
}

func init() {
	for i := range SEQUENCER {
		SEQUENCER[i] = seqIllegal
		SEMANTIC[i] = opNil
	}
	for _, e := range opTable {
		SEQUENCER[e.op] = e.seq
		SEMANTIC[e.op] = e.sem
	}
}

package cpu

// Opcode semantic functions. Each is a pure operation over CPU registers
// and the v1 scratch byte: load-class semantics consume v1 (already
// fetched by the sequencer) and set a register plus N/Z; store-class
// semantics move a register into v1 for the sequencer to write back;
// read-modify-write semantics transform v1 in place. opNil is used for
// every opcode whose entire behavior lives in its sequencer (BRK, JSR,
// JMP absolute, JMP indirect, RTI, RTS), matching the original's
// op_nil convention.

func setNZ(c *CPU, v uint8) {
	c.P.N = v&0x80 != 0
	c.P.Z = v == 0
}

func opNil(c *CPU) {}

// --- arithmetic ---

func adcBinary(c *CPU, operand uint8) {
	carry := uint16(0)
	if c.P.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(operand) + carry
	result := uint8(sum)
	c.P.V = (^(c.A ^ operand) & (c.A ^ result) & 0x80) != 0
	c.P.C = sum > 0xFF
	setNZ(c, result)
	c.A = result
}

func adcDecimal(c *CPU, operand uint8) {
	carry := uint16(0)
	if c.P.C {
		carry = 1
	}
	// N, V and Z are pinned to the binary-intermediate values, matching
	// the documented NMOS behavior (undefined on real hardware).
	binResult := uint8(uint16(c.A) + uint16(operand) + carry)
	c.P.V = (^(c.A ^ operand) & (c.A ^ binResult) & 0x80) != 0
	c.P.Z = binResult == 0
	c.P.N = binResult&0x80 != 0

	al := (uint16(c.A) & 0x0F) + (uint16(operand) & 0x0F) + carry
	if al >= 0x0A {
		al = ((al + 0x06) & 0x0F) + 0x10
	}
	sum := (uint16(c.A) & 0xF0) + (uint16(operand) & 0xF0) + al
	if sum >= 0xA0 {
		sum += 0x60
	}
	c.P.C = sum >= 0x100
	c.A = uint8(sum)
}

func iADC(c *CPU) {
	if c.P.D {
		adcDecimal(c, c.v1)
	} else {
		adcBinary(c, c.v1)
	}
}

func sbcDecimal(c *CPU, operand uint8) {
	borrow := uint16(0)
	if !c.P.C {
		borrow = 1
	}
	// Binary intermediate drives N, V and Z exactly as in adcDecimal.
	binResult := uint8(int32(c.A) - int32(operand) - int32(borrow))
	c.P.V = ((c.A ^ operand) & (c.A ^ binResult) & 0x80) != 0
	c.P.Z = binResult == 0
	c.P.N = binResult&0x80 != 0

	al := int32(c.A&0x0F) - int32(operand&0x0F) - int32(borrow)
	if al < 0 {
		al = ((al - 0x06) & 0x0F) - 0x10
	}
	sum := int32(c.A&0xF0) - int32(operand&0xF0) + al
	if sum < 0 {
		sum -= 0x60
	}
	c.P.C = int32(c.A)-int32(operand)-int32(borrow) >= 0
	c.A = uint8(sum)
}

func iSBC(c *CPU) {
	if c.P.D {
		sbcDecimal(c, c.v1)
	} else {
		adcBinary(c, ^c.v1)
	}
}

// --- logical ---

func iAND(c *CPU) { c.A &= c.v1; setNZ(c, c.A) }
func iORA(c *CPU) { c.A |= c.v1; setNZ(c, c.A) }
func iEOR(c *CPU) { c.A ^= c.v1; setNZ(c, c.A) }

func iBIT(c *CPU) {
	c.P.N = c.v1&0x80 != 0
	c.P.V = c.v1&0x40 != 0
	c.P.Z = c.A&c.v1 == 0
}

// --- compare ---

func compare(c *CPU, reg uint8) {
	result := reg - c.v1
	c.P.C = reg >= c.v1
	setNZ(c, result)
}

func iCMP(c *CPU) { compare(c, c.A) }
func iCPX(c *CPU) { compare(c, c.X) }
func iCPY(c *CPU) { compare(c, c.Y) }

// --- shifts/rotates (operate on v1) ---

func iASL(c *CPU) {
	c.P.C = c.v1&0x80 != 0
	c.v1 <<= 1
	setNZ(c, c.v1)
}

func iLSR(c *CPU) {
	c.P.C = c.v1&0x01 != 0
	c.v1 >>= 1
	setNZ(c, c.v1)
}

func iROL(c *CPU) {
	carryIn := uint8(0)
	if c.P.C {
		carryIn = 1
	}
	c.P.C = c.v1&0x80 != 0
	c.v1 = (c.v1 << 1) | carryIn
	setNZ(c, c.v1)
}

func iROR(c *CPU) {
	carryIn := uint8(0)
	if c.P.C {
		carryIn = 0x80
	}
	c.P.C = c.v1&0x01 != 0
	c.v1 = (c.v1 >> 1) | carryIn
	setNZ(c, c.v1)
}

// --- increment/decrement ---

func iINC(c *CPU) { c.v1++; setNZ(c, c.v1) }
func iDEC(c *CPU) { c.v1--; setNZ(c, c.v1) }

func iINX(c *CPU) { c.X++; setNZ(c, c.X) }
func iDEX(c *CPU) { c.X--; setNZ(c, c.X) }
func iINY(c *CPU) { c.Y++; setNZ(c, c.Y) }
func iDEY(c *CPU) { c.Y--; setNZ(c, c.Y) }

// --- loads/stores ---

func iLDA(c *CPU) { c.A = c.v1; setNZ(c, c.A) }
func iLDX(c *CPU) { c.X = c.v1; setNZ(c, c.X) }
func iLDY(c *CPU) { c.Y = c.v1; setNZ(c, c.Y) }

func iSTA(c *CPU) { c.v1 = c.A }
func iSTX(c *CPU) { c.v1 = c.X }
func iSTY(c *CPU) { c.v1 = c.Y }

// --- transfers ---

func iTAX(c *CPU) { c.X = c.A; setNZ(c, c.X) }
func iTAY(c *CPU) { c.Y = c.A; setNZ(c, c.Y) }
func iTSX(c *CPU) { c.X = c.S; setNZ(c, c.X) }
func iTXA(c *CPU) { c.A = c.X; setNZ(c, c.A) }
func iTXS(c *CPU) { c.S = c.X }
func iTYA(c *CPU) { c.A = c.Y; setNZ(c, c.A) }

// --- flag ops ---

func iSEC(c *CPU) { c.P.C = true }
func iCLC(c *CPU) { c.P.C = false }
func iSED(c *CPU) { c.P.D = true }
func iCLD(c *CPU) { c.P.D = false }
func iSEI(c *CPU) { c.P.I = true }
func iCLI(c *CPU) { c.P.I = false }
func iCLV(c *CPU) { c.P.V = false }

// --- stack byte (v1 is read or produced by the push/pull sequencer) ---

func iPHA(c *CPU) { c.v1 = c.A }
func iPHP(c *CPU) { c.v1 = Flags{N: c.P.N, V: c.P.V, B: true, D: c.P.D, I: c.P.I, Z: c.P.Z, C: c.P.C}.Pack() }

func iPLA(c *CPU) { c.A = c.v1; setNZ(c, c.A) }
func iPLP(c *CPU) { c.P.Unpack(c.v1) }

// --- no-op ---

func iNOP(c *CPU) {}

// --- branch condition checks ---
//
// Each is called from the branch sequencer's first sub-cycle, after the
// signed offset has been fetched into v1. If the condition is not met, it
// advances ts to 3, sending the sequencer straight to the final fetch and
// costing exactly 2 cycles for the whole instruction; if met, ts is left
// alone and the sequencer proceeds to compute the new PC.

func iBPL(c *CPU) {
	if c.P.N {
		c.ts = 3
	}
}

func iBMI(c *CPU) {
	if !c.P.N {
		c.ts = 3
	}
}

func iBVC(c *CPU) {
	if c.P.V {
		c.ts = 3
	}
}

func iBVS(c *CPU) {
	if !c.P.V {
		c.ts = 3
	}
}

func iBCC(c *CPU) {
	if c.P.C {
		c.ts = 3
	}
}

func iBCS(c *CPU) {
	if !c.P.C {
		c.ts = 3
	}
}

func iBNE(c *CPU) {
	if c.P.Z {
		c.ts = 3
	}
}

func iBEQ(c *CPU) {
	if !c.P.Z {
		c.ts = 3
	}
}

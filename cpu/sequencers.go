package cpu

import "github.com/nortiero/go6502/bus"

// Addressing-mode micro-sequencers. Each dispatches on c.ts, performing
// exactly one bus transaction per case, until its final case invokes sem
// and calls c.fetchNext, which both fetches the next opcode and resets ts
// to 0 for the driver's next tick.

func effAddr(ah, al uint8) uint16 { return uint16(ah)<<8 | uint16(al) }

// --- implied / accumulator (2 cycles) ---

func seqImplied(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC) // discard read, PC not advanced
	case 2:
		sem(c)
		c.fetchNext(b)
	}
}

func seqAccumulator(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC)
	case 2:
		c.v1 = c.A
		sem(c)
		c.A = c.v1
		c.fetchNext(b)
	}
}

// --- immediate (2 cycles) ---

func seqImmediate(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.v1 = b.Read(c.PC)
		c.PC++
	case 2:
		sem(c)
		c.fetchNext(b)
	}
}

// --- zero page read (3 cycles) ---

func seqZP(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.v1 = b.Read(uint16(c.al))
	case 3:
		sem(c)
		c.fetchNext(b)
	}
}

// --- zero page indexed read (4 cycles) ---

func seqZPIndexed(c *CPU, b bus.Bus, sem SemanticFunc, index uint8) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		b.Read(uint16(c.al)) // discard read of unindexed zp address
		c.al += index
	case 3:
		c.v1 = b.Read(uint16(c.al))
	case 4:
		sem(c)
		c.fetchNext(b)
	}
}

func seqZPX(c *CPU, b bus.Bus, sem SemanticFunc) { seqZPIndexed(c, b, sem, c.X) }
func seqZPY(c *CPU, b bus.Bus, sem SemanticFunc) { seqZPIndexed(c, b, sem, c.Y) }

// --- absolute read (4 cycles) ---

func seqAbsolute(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
	case 3:
		c.v1 = b.Read(effAddr(c.ah, c.al))
	case 4:
		sem(c)
		c.fetchNext(b)
	}
}

// --- absolute indexed read (4 cycles, +1 on page cross) ---

func seqAbsIndexed(c *CPU, b bus.Bus, sem SemanticFunc, index uint8) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
		sum := uint16(c.al) + uint16(index)
		c.v2 = uint8(sum >> 8)
		c.al += index
	case 3:
		c.v1 = b.Read(effAddr(c.ah, c.al))
		c.ah += c.v2
		if c.v2 == 0 {
			c.ts++ // no page cross: skip the corrected re-read
		}
	case 4:
		c.v1 = b.Read(effAddr(c.ah, c.al))
	case 5:
		sem(c)
		c.fetchNext(b)
	}
}

func seqAbsX(c *CPU, b bus.Bus, sem SemanticFunc) { seqAbsIndexed(c, b, sem, c.X) }
func seqAbsY(c *CPU, b bus.Bus, sem SemanticFunc) { seqAbsIndexed(c, b, sem, c.Y) }

// --- indexed-indirect (zp,X) read (6 cycles) ---

func seqIndirectX(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		b.Read(uint16(c.al)) // discard read at unindexed pointer
		c.v1 = c.al + c.X
	case 3:
		c.al = b.Read(uint16(c.v1))
		c.v1++
	case 4:
		c.ah = b.Read(uint16(c.v1))
	case 5:
		c.v1 = b.Read(effAddr(c.ah, c.al))
	case 6:
		sem(c)
		c.fetchNext(b)
	}
}

// --- indirect-indexed (zp),Y read (5 cycles, +1 on page cross) ---

func seqIndirectY(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.v1 = b.Read(c.PC)
		c.PC++
	case 2:
		c.al = b.Read(uint16(c.v1))
		c.v1++
	case 3:
		c.ah = b.Read(uint16(c.v1))
		sum := uint16(c.al) + uint16(c.Y)
		c.v2 = uint8(sum >> 8)
		c.al += c.Y
	case 4:
		c.v1 = b.Read(effAddr(c.ah, c.al))
		c.ah += c.v2
		if c.v2 == 0 {
			c.ts++
		}
	case 5:
		c.v1 = b.Read(effAddr(c.ah, c.al))
	case 6:
		sem(c)
		c.fetchNext(b)
	}
}

// --- store sequencers: never skip, always pay the indexed penalty ---

func seqStoreZP(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		sem(c)
		b.Write(uint16(c.al), c.v1)
	case 3:
		c.fetchNext(b)
	}
}

func seqStoreZPIndexed(c *CPU, b bus.Bus, sem SemanticFunc, index uint8) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		b.Read(uint16(c.al))
		c.al += index
	case 3:
		sem(c)
		b.Write(uint16(c.al), c.v1)
	case 4:
		c.fetchNext(b)
	}
}

func seqStoreZPX(c *CPU, b bus.Bus, sem SemanticFunc) { seqStoreZPIndexed(c, b, sem, c.X) }
func seqStoreZPY(c *CPU, b bus.Bus, sem SemanticFunc) { seqStoreZPIndexed(c, b, sem, c.Y) }

func seqStoreAbs(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
	case 3:
		sem(c)
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 4:
		c.fetchNext(b)
	}
}

func seqStoreAbsIndexed(c *CPU, b bus.Bus, sem SemanticFunc, index uint8) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
		sum := uint16(c.al) + uint16(index)
		c.v2 = uint8(sum >> 8)
		c.al += index
	case 3:
		b.Read(effAddr(c.ah, c.al)) // discard read at unfixed address, always paid
		c.ah += c.v2
	case 4:
		sem(c)
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 5:
		c.fetchNext(b)
	}
}

func seqStoreAbsX(c *CPU, b bus.Bus, sem SemanticFunc) { seqStoreAbsIndexed(c, b, sem, c.X) }
func seqStoreAbsY(c *CPU, b bus.Bus, sem SemanticFunc) { seqStoreAbsIndexed(c, b, sem, c.Y) }

func seqStoreIndirectX(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		b.Read(uint16(c.al))
		c.v1 = c.al + c.X
	case 3:
		c.al = b.Read(uint16(c.v1))
		c.v1++
	case 4:
		c.ah = b.Read(uint16(c.v1))
	case 5:
		sem(c)
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 6:
		c.fetchNext(b)
	}
}

func seqStoreIndirectY(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.v1 = b.Read(c.PC)
		c.PC++
	case 2:
		c.al = b.Read(uint16(c.v1))
		c.v1++
	case 3:
		c.ah = b.Read(uint16(c.v1))
		sum := uint16(c.al) + uint16(c.Y)
		c.v2 = uint8(sum >> 8)
		c.al += c.Y
	case 4:
		b.Read(effAddr(c.ah, c.al)) // discard read, always paid for stores
		c.ah += c.v2
	case 5:
		sem(c)
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 6:
		c.fetchNext(b)
	}
}

// --- read-modify-write sequencers: always pay the wasted write ---

func seqRMWZP(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.v1 = b.Read(uint16(c.al))
	case 3:
		b.Write(uint16(c.al), c.v1) // wasted write
	case 4:
		sem(c)
		b.Write(uint16(c.al), c.v1)
	case 5:
		c.fetchNext(b)
	}
}

func seqRMWZPX(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		b.Read(uint16(c.al))
		c.al += c.X
	case 3:
		c.v1 = b.Read(uint16(c.al))
	case 4:
		b.Write(uint16(c.al), c.v1)
	case 5:
		sem(c)
		b.Write(uint16(c.al), c.v1)
	case 6:
		c.fetchNext(b)
	}
}

func seqRMWAbs(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
	case 3:
		c.v1 = b.Read(effAddr(c.ah, c.al))
	case 4:
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 5:
		sem(c)
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 6:
		c.fetchNext(b)
	}
}

func seqRMWAbsX(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
		sum := uint16(c.al) + uint16(c.X)
		c.v2 = uint8(sum >> 8)
		c.al += c.X
	case 3:
		b.Read(effAddr(c.ah, c.al)) // discard read, always paid (no skip for RMW)
		c.ah += c.v2
	case 4:
		c.v1 = b.Read(effAddr(c.ah, c.al))
	case 5:
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 6:
		sem(c)
		b.Write(effAddr(c.ah, c.al), c.v1)
	case 7:
		c.fetchNext(b)
	}
}

// --- stack: push / pull ---

func seqPush(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC) // discard read, PC not advanced
	case 2:
		sem(c)
		b.Write(0x0100+uint16(c.S), c.v1)
		c.S--
	case 3:
		c.fetchNext(b)
	}
}

func seqPull(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC)
	case 2:
		b.Read(0x0100 + uint16(c.S))
		c.S++
	case 3:
		c.v1 = b.Read(0x0100 + uint16(c.S))
	case 4:
		sem(c)
		c.fetchNext(b)
	}
}

// --- branches ---

func seqBranch(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.v1 = b.Read(c.PC)
		c.PC++
		sem(c) // sets c.ts = 3 if the branch is not taken
	case 2:
		b.Read(c.PC) // discard read
		newPC := int32(c.PC) + int32(int8(c.v1))
		c.PC = (c.PC & 0xFF00) | uint16(newPC&0xFF)
		if uint16(newPC&0xFF00) == c.PC&0xFF00 {
			c.ts++ // no page cross: skip carry propagation
		}
		c.v2 = uint8((newPC & 0xFF00) >> 8)
	case 3:
		b.Read(c.PC) // discard read
		c.PC = (c.PC & 0x00FF) | (uint16(c.v2) << 8)
	case 4:
		c.fetchNext(b)
	}
}

// --- JMP / JSR / RTS / RTI / BRK ---

func seqJMPAbsolute(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
	case 3:
		c.PC = effAddr(c.ah, c.al)
		c.fetchNext(b)
	}
}

// seqJMPIndirect replicates the NMOS page-wrap bug: the high byte of the
// target is fetched from (ah, al+1) where al+1 wraps within its own page,
// never carrying into ah.
func seqJMPIndirect(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		c.ah = b.Read(c.PC)
		c.PC++
	case 3:
		c.v1 = b.Read(effAddr(c.ah, c.al))
		c.al++
	case 4:
		c.v2 = b.Read(effAddr(c.ah, c.al))
		c.PC = effAddr(c.v2, c.v1)
	case 5:
		c.fetchNext(b)
	}
}

func seqJSR(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		c.al = b.Read(c.PC)
		c.PC++
	case 2:
		b.Read(0x0100 + uint16(c.S)) // discard read
	case 3:
		b.Write(0x0100+uint16(c.S), uint8(c.PC>>8))
		c.S--
	case 4:
		b.Write(0x0100+uint16(c.S), uint8(c.PC&0xFF))
		c.S--
	case 5:
		c.ah = b.Read(c.PC)
	case 6:
		c.PC = effAddr(c.ah, c.al)
		c.fetchNext(b)
	}
}

func seqRTS(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC)
	case 2:
		b.Read(0x0100 + uint16(c.S))
		c.S++
	case 3:
		c.PC = (c.PC & 0xFF00) | uint16(b.Read(0x0100+uint16(c.S)))
		c.S++
	case 4:
		c.PC = (c.PC & 0x00FF) | uint16(b.Read(0x0100+uint16(c.S)))<<8
	case 5:
		b.Read(c.PC)
		c.PC++
	case 6:
		c.fetchNext(b)
	}
}

func seqRTI(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC)
	case 2:
		b.Read(0x0100 + uint16(c.S))
		c.S++
	case 3:
		v := b.Read(0x0100 + uint16(c.S))
		savedB := c.P.B
		c.P.Unpack(v)
		c.P.B = savedB
		c.S++
	case 4:
		c.PC = (c.PC & 0xFF00) | uint16(b.Read(0x0100+uint16(c.S)))
		c.S++
	case 5:
		c.PC = (c.PC & 0x00FF) | uint16(b.Read(0x0100+uint16(c.S)))<<8
	case 6:
		c.fetchNext(b)
	}
}

// seqBRK is the shared 7-cycle BRK/IRQ/NMI/RESET sequence. T1 (the operand
// discard and B=1) is only reached by a software BRK: interrupt injection
// enters directly at ts==2.
func seqBRK(c *CPU, b bus.Bus, sem SemanticFunc) {
	switch c.ts {
	case 1:
		b.Read(c.PC)
		c.PC++
		c.P.B = true
	case 2:
		if c.resetTriggered {
			b.Read(0x0100 + uint16(c.S))
		} else {
			b.Write(0x0100+uint16(c.S), uint8(c.PC>>8))
		}
		c.S--
	case 3:
		if c.resetTriggered {
			b.Read(0x0100 + uint16(c.S))
		} else {
			b.Write(0x0100+uint16(c.S), uint8(c.PC&0xFF))
		}
		c.S--
	case 4:
		if c.resetTriggered {
			b.Read(0x0100 + uint16(c.S))
		} else {
			b.Write(0x0100+uint16(c.S), c.P.Pack())
		}
		c.S--
	case 5:
		c.P.I = true
		c.P.B = true
		switch {
		case c.resetTriggered:
			c.vector = VectorReset
			c.resetTriggered = false
		case c.nmiTriggered:
			c.vector = VectorNMI
			c.nmiTriggered = false
		default:
			c.vector = VectorIRQ
			c.irqTriggered = false
		}
		c.v1 = b.Read(c.vector)
	case 6:
		c.v2 = b.Read(c.vector + 1)
		c.PC = effAddr(c.v2, c.v1)
	case 7:
		c.fetchNext(b)
	}
}

func seqIllegal(c *CPU, b bus.Bus, sem SemanticFunc) {
	c.fail(IllegalOpcode{Opcode: c.op, PC: c.PC})
}

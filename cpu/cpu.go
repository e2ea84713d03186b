// Package cpu implements a cycle-accurate emulation core for the
// documented instruction set of the MOS 6502 (NMOS). It reproduces every
// bus transaction of the original part, including discarded reads and the
// wasted write that precedes every read-modify-write, and replicates the
// documented timing anomalies around interrupts, branches, and the
// JMP (indirect) page-wrap bug. Undocumented opcodes, the CMOS 65C02
// superset, and sub-cycle bus pin behavior are out of scope.
package cpu

import (
	"math/rand"
	"time"

	"github.com/nortiero/go6502/bus"
)

// Interrupt and reset vectors.
const (
	VectorNMI   uint16 = 0xFFFA
	VectorReset uint16 = 0xFFFC
	VectorIRQ   uint16 = 0xFFFE
)

// debounceCycles is the minimum number of cycles an interrupt line must
// hold its new level before the arbiter will act on it.
const debounceCycles = 2

// SemanticFunc is a pure opcode semantic: it reads/writes CPU registers and
// the v1 scratch byte. Sequencers that write memory take the resulting v1
// back out and put it on the bus; sequencers that only read never look at
// v1 again after the call.
type SemanticFunc func(c *CPU)

// SequencerFunc is one addressing-mode micro-sequencer. It is called once
// per cycle for the latched opcode, dispatches on c.ts, performs exactly
// one bus transaction (or, for the two documented skip cases, none), and
// eventually invokes sem. On the cycle that fetches the next opcode it
// must call c.fetchNext(b), which resets ts to 0.
type SequencerFunc func(c *CPU, b bus.Bus, sem SemanticFunc)

// CPU is the 6502 register file and micro-architectural scratch state.
// It is a single aggregate owned by the caller; the core holds no
// lasting reference to a Bus between calls.
type CPU struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	P       Flags

	ts uint8 // sub-cycle counter, 0 only between tick boundaries
	op uint8 // latched opcode

	al, ah uint8 // effective-address scratch
	v1, v2 uint8 // primary/secondary value scratch

	cycle uint64

	nmi          bool
	nmiCycle     uint64
	nmiTriggered bool

	irq          bool
	irqCycle     uint64
	irqTriggered bool

	resetTriggered bool

	// vector holds the base address of whichever interrupt vector the BRK
	// sequencer selected at its T5 (priority reset > nmi > irq), so T6 can
	// read the matching high byte.
	vector uint16

	// err holds an error raised mid-sequencer so Run can surface it
	// without charging a partial cycle.
	err error
}

// New constructs a CPU in the documented post-power-up state: I=1, Z=1,
// B=1, S=0xFD, A=0xAA. X, Y and the remaining flags are randomized, as on
// real silicon power-up the register file contents are not defined; this
// matches the teacher's PowerOn convention of seeding from the wall
// clock rather than hardcoding a single answer.
func New() *CPU {
	rand.Seed(time.Now().UnixNano())
	c := &CPU{
		A: 0xAA,
		S: 0xFD,
	}
	c.X = uint8(rand.Intn(256))
	c.Y = uint8(rand.Intn(256))
	c.P = Flags{
		N: rand.Intn(2) == 1,
		V: rand.Intn(2) == 1,
		B: true,
		D: false,
		I: true,
		Z: true,
		C: rand.Intn(2) == 1,
	}
	return c
}

// PCView, OpView, TsView, CycleView form the read-only view for trace and test
// inspection described in §6. They are undefined mid-call (between a Run
// or Step invocation and its return) and stable otherwise.
func (c *CPU) PCView() uint16   { return c.PC }
func (c *CPU) OpView() uint8    { return c.op }
func (c *CPU) TsView() uint8    { return c.ts }
func (c *CPU) CycleView() uint64 { return c.cycle }

// Reset initializes PC from the reset vector, primes the fetch pipeline,
// and sets cycle to 8 — the documented cost of the real 6502's internal
// reset sequence (two internal cycles, three stack decrements, a two-byte
// vector fetch and the first opcode fetch), charged here as a flat accounting rather
// than cycle-by-cycle since Reset is a one-shot lifecycle call, not part
// of Run's per-cycle loop.
func (c *CPU) Reset(b bus.Bus) {
	c.S = 0xFD
	c.P.I = true
	c.al = b.Read(VectorReset)
	c.ah = b.Read(VectorReset + 1)
	c.PC = uint16(c.ah)<<8 | uint16(c.al)
	c.fetchNext(b)
	c.ts = 1
	c.cycle = 8
	c.nmiTriggered = false
	c.irqTriggered = false
	c.resetTriggered = false
}

// fetchNext reads the opcode at PC, advances PC past it, and resets ts to
// 0. Every sequencer's final case calls this exactly once.
func (c *CPU) fetchNext(b bus.Bus) {
	c.op = b.Read(c.PC)
	c.PC++
	c.ts = 0
}

// Run executes exactly n cycles and returns the new cycle count (or the
// cycle count at the point of failure, alongside the error). No partial
// cycle is charged on error: CPU state is left at the start of the
// failing sub-cycle.
func (c *CPU) Run(b bus.Bus, n uint64) (uint64, error) {
	for i := uint64(0); i < n; i++ {
		c.updateInterrupts()

		seq := SEQUENCER[c.op]
		sem := SEMANTIC[c.op]
		seq(c, b, sem)
		if c.err != nil {
			err := c.err
			c.err = nil
			return c.cycle, err
		}

		if c.ts == 0 && (c.nmiTriggered || c.irqTriggered || c.resetTriggered) {
			c.injectInterrupt()
		}

		c.ts++
		c.cycle++
	}
	return c.cycle, nil
}

// Step executes whole instructions: it calls Run(b, 1) until n
// transitions across ts==1 (i.e. n instruction boundaries) have been
// crossed. Between calls the CPU is always observed at the start of some
// instruction's T1.
func (c *CPU) Step(b bus.Bus, n uint64) error {
	seen := uint64(0)
	for seen < n {
		if _, err := c.Run(b, 1); err != nil {
			return err
		}
		if c.ts == 1 {
			seen++
		}
	}
	return nil
}

// updateInterrupts recomputes nmiTriggered and irqTriggered once per cycle.
// NMI is edge-sensitive: it latches exactly when the line has held high for
// debounceCycles and stays latched until the BRK sequencer's T5 consumes it.
// IRQ is level-sensitive and mask-gated: it is recomputed live every cycle
// from the line state, the I flag, and the debounce window, so raising I
// during service naturally "clears" it without an explicit consume step.
func (c *CPU) updateInterrupts() {
	if c.nmi && c.cycle-c.nmiCycle == debounceCycles {
		c.nmiTriggered = true
	}
	c.irqTriggered = c.irq && !c.P.I && c.cycle-c.irqCycle >= debounceCycles
}

// injectInterrupt overwrites the latched opcode with BRK and enters the
// shared BRK sequencer at its second sub-cycle, skipping the BRK-only
// operand discard and PC increment reserved for the software path.
func (c *CPU) injectInterrupt() {
	c.op = 0x00
	c.ts = 1
	c.PC--
	c.P.B = false
}

// fail records a mid-sequencer error for Run to surface without charging
// the current cycle.
func (c *CPU) fail(err error) {
	c.err = err
}

// NmiSet asserts the NMI line. NmiClear deasserts it. Both are subject to
// the 2-cycle debounce: a transition closer than 2 cycles to the previous
// one on the same line is ignored (the recorded cycle is not updated,
// so the next transition is judged against the last one that stuck).
func (c *CPU) NmiSet() {
	if !c.nmi && c.cycle-c.nmiCycle >= debounceCycles {
		c.nmi = true
		c.nmiCycle = c.cycle
	}
}

func (c *CPU) NmiClear() {
	if c.nmi && c.cycle-c.nmiCycle >= debounceCycles {
		c.nmi = false
		c.nmiCycle = c.cycle
	}
}

// IrqSet asserts the IRQ line. IrqClear deasserts it. Same debounce as
// NMI; unlike NMI, IRQ is level-sensitive, so the arbiter re-evaluates it
// every cycle rather than latching a single edge.
func (c *CPU) IrqSet() {
	if !c.irq && c.cycle-c.irqCycle >= debounceCycles {
		c.irq = true
		c.irqCycle = c.cycle
	}
}

func (c *CPU) IrqClear() {
	if c.irq && c.cycle-c.irqCycle >= debounceCycles {
		c.irq = false
		c.irqCycle = c.cycle
	}
}

// ResetSet asserts the RESET line for mid-run assertion (as opposed to
// the power-on Reset call): the next instruction boundary enters the
// shared BRK sequencer in its read-only RESET mode rather than jumping
// straight to the vector. ResetClear deasserts it.
func (c *CPU) ResetSet() {
	c.resetTriggered = true
}

func (c *CPU) ResetClear() {
	c.resetTriggered = false
}

package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/nortiero/go6502/bus"
)

func newTestCPU(t *testing.T) (*CPU, *bus.RAM) {
	t.Helper()
	ram, err := bus.NewRAM(65536)
	require.NoError(t, err)
	c := New()
	return c, ram
}

// load writes bytes starting at addr into the RAM via its Load helper.
func load(t *testing.T, ram *bus.RAM, addr uint16, data ...uint8) {
	t.Helper()
	ram.Load(addr, data)
}

// prime puts the CPU at the start of the instruction at pc, as Reset does:
// latch the opcode, advance PC past it, and set ts to 1 so the next Run/Step
// call dispatches the sequencer's first sub-cycle rather than the no-op
// ts==0 case.
func prime(c *CPU, b bus.Bus, pc uint16) {
	c.PC = pc
	c.fetchNext(b)
	c.ts = 1
}

// --- universal properties (§8) ---

func TestFlagsPackUnpackRoundTrip(t *testing.T) {
	for x := 0; x < 256; x++ {
		var f Flags
		f.Unpack(uint8(x))
		f.B = uint8(x)&flagB != 0
		got := f.Pack()
		want := uint8(x) | flagR
		require.Equalf(t, want, got, "unpack(pack(%#x)) mismatch: %s", x, spew.Sdump(f))
	}
}

func TestRegisterOnlyOpcodeCycleCountAndPCAdvance(t *testing.T) {
	c, ram := newTestCPU(t)
	load(t, ram, 0x0300, 0xE8) // INX, implied, 2 cycles
	prime(c, ram, 0x0300)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	// 0x0300 (opcode) + 1 (implied, no operand) + 1: the final sub-cycle
	// always fetches the following opcode too, advancing PC one past the
	// architectural end of this instruction (the same priming effect
	// spec §8 scenario 6 documents for Reset, here applying uniformly).
	require.Equal(t, uint16(0x0302), c.PC)
	require.Equal(t, uint64(2), c.cycle-startCycle)
}

func TestIndexedReadPageCrossAddsCycle(t *testing.T) {
	c, ram := newTestCPU(t)
	c.X = 0x10
	load(t, ram, 0x0300, 0xBD, 0xF5, 0x00) // LDA $00F5,X -> crosses into $0105
	load(t, ram, 0x0105, 0x42)
	prime(c, ram, 0x0300)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint64(5), c.cycle-startCycle) // base 4 + 1 page-cross penalty
	require.Equal(t, uint8(0x42), c.A)
}

func TestIndexedReadNoPageCrossBaseCycles(t *testing.T) {
	c, ram := newTestCPU(t)
	c.X = 0x01
	load(t, ram, 0x0300, 0xBD, 0x00, 0x01) // LDA $0100,X -> $0101, no cross
	load(t, ram, 0x0101, 0x99)
	prime(c, ram, 0x0300)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint64(4), c.cycle-startCycle)
	require.Equal(t, uint8(0x99), c.A)
}

func TestBranchNotTakenCostsTwoCycles(t *testing.T) {
	c, ram := newTestCPU(t)
	c.P.Z = false
	load(t, ram, 0x0300, 0xF0, 0x10) // BEQ +0x10, not taken since Z=0
	prime(c, ram, 0x0300)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint64(2), c.cycle-startCycle)
	// Final sub-cycle also fetches the following opcode (same pipelining
	// effect as TestRegisterOnlyOpcodeCycleCountAndPCAdvance above).
	require.Equal(t, uint16(0x0303), c.PC)
}

func TestBranchTakenNoCrossCostsThreeCycles(t *testing.T) {
	c, ram := newTestCPU(t)
	c.P.Z = true
	load(t, ram, 0x0300, 0xF0, 0x10) // BEQ +0x10, taken, target 0x0312, same page
	prime(c, ram, 0x0300)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint64(3), c.cycle-startCycle)
	require.Equal(t, uint16(0x0313), c.PC) // target 0x0312, +1 from the trailing fetchNext
}

// TestBranchTakenPageCrossCostsFourCycles constructs its own crossing
// example rather than reusing spec §8 scenario 3's literal numbers: PC=0x00FE
// + operand length 2 + offset 0x10 = 0x0110 does not actually change PCH
// (0x0100's and 0x0110's high byte are both 0x01), so §4.3's own page-cross
// test ("al + index >= 0x100", here PCL=0x00 plus offset 0x10) does not fire
// for that example. This case picks an offset that does carry out of PCL.
func TestBranchTakenPageCrossCostsFourCycles(t *testing.T) {
	c, ram := newTestCPU(t)
	c.P.Z = true
	load(t, ram, 0x01F0, 0xF0, 0x20) // BEQ +0x20: PC after fetch=0x01F2, PCL 0xF2+0x20 carries
	prime(c, ram, 0x01F0)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint64(4), c.cycle-startCycle)
	require.Equal(t, uint16(0x0213), c.PC) // target 0x0212, +1 from the trailing fetchNext
}

func TestPushPullAccumulatorRoundTrip(t *testing.T) {
	c, ram := newTestCPU(t)
	c.A = 0xFE
	c.P.N = true
	c.P.Z = false
	load(t, ram, 0x0300, 0x48, 0xA9, 0x00, 0x68) // PHA; LDA #0; PLA
	prime(c, ram, 0x0300)
	require.NoError(t, c.Step(ram, 1)) // PHA
	require.NoError(t, c.Step(ram, 1)) // LDA #0 clobbers A, N, Z
	require.Equal(t, uint8(0x00), c.A)
	require.NoError(t, c.Step(ram, 1)) // PLA
	require.Equal(t, uint8(0xFE), c.A)
	require.True(t, c.P.N)
	require.False(t, c.P.Z)
}

func TestPushPullProcessorStatusPreservesAllButB(t *testing.T) {
	c, ram := newTestCPU(t)
	c.P = Flags{N: true, V: false, B: false, D: true, I: false, Z: true, C: true}
	before := c.P
	load(t, ram, 0x0300, 0x08, 0x28) // PHP; PLP
	prime(c, ram, 0x0300)
	require.NoError(t, c.Step(ram, 1))
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, before, c.P)

	// deep.Equal gives a field-by-field diff rather than just pass/fail,
	// pinning down exactly which flag regressed if this ever breaks.
	if diff := deep.Equal(before, c.P); diff != nil {
		t.Fatalf("PLP did not restore P field-for-field: %v", diff)
	}
}

func TestADCBinaryInvariant(t *testing.T) {
	c, ram := newTestCPU(t)
	c.A = 0x12
	c.P.C = true
	c.P.D = false
	load(t, ram, 0x0300, 0x69, 0x05) // ADC #$05
	prime(c, ram, 0x0300)
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint8(0x12+0x05+1), c.A)
	require.False(t, c.P.C)
}

func TestIRQServicePushesBZeroAndSetsI(t *testing.T) {
	c, ram := newTestCPU(t)
	c.P.I = false
	// Two NOPs: the first is primed and executing; the second is what
	// fetchNext latches as c.op when the first completes (ts==0), and it
	// genuinely gets dispatched one sub-cycle before the IRQ's debounce
	// window elapses. Leaving that byte at its zero value would dispatch
	// a real software BRK instead (opcode 0x00), masking the injection
	// path entirely, so it must be a harmless instruction too.
	load(t, ram, 0x0300, 0xEA, 0xEA)
	load(t, ram, VectorIRQ, 0x00)
	load(t, ram, VectorIRQ+1, 0x04)
	prime(c, ram, 0x0300)
	c.cycle = 10 // clear of the zero-value irqCycle so IrqSet's debounce check passes

	c.IrqSet()
	// Debounce window (2) elapses mid-way through the second NOP; injection
	// fires at that NOP's own completion boundary. Run well past the full
	// 7-cycle BRK sequence that follows so the stack push is observable.
	_, err := c.Run(ram, 2+2+7)
	require.NoError(t, err)

	sp := c.S
	pFromStack := ram.Read(0x0100 + uint16(sp) + 1)
	require.False(t, pFromStack&flagB != 0)
	require.True(t, c.P.I)
}

// --- end-to-end scenarios (§8) ---

func TestScenarioADCCarryChain(t *testing.T) {
	c, ram := newTestCPU(t)
	c.A = 0x50
	c.P.C = false
	load(t, ram, 0x0200, 0x69, 0x50) // ADC #$50
	prime(c, ram, 0x0200)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	require.Equal(t, uint8(0xA0), c.A)
	require.True(t, c.P.N)
	require.True(t, c.P.V)
	require.False(t, c.P.C)
	require.False(t, c.P.Z)
	// 0x0200 (opcode) + 2 (immediate, one operand byte) + 1 pipelined fetch.
	require.Equal(t, uint16(0x0203), c.PC)
	require.Equal(t, uint64(2), c.cycle-startCycle)
}

func TestScenarioJMPIndirectPageWrapBug(t *testing.T) {
	c, ram := newTestCPU(t)
	load(t, ram, 0x0100, 0x6C, 0xFF, 0x30) // JMP ($30FF)
	load(t, ram, 0x30FF, 0x80)
	load(t, ram, 0x3000, 0x40) // wrapped high-byte fetch lands here, not 0x3100
	load(t, ram, 0x3100, 0x00)
	prime(c, ram, 0x0100)
	startCycle := c.cycle
	require.NoError(t, c.Step(ram, 1))
	// Buggy (and correct-per-real-hardware) result: low byte from $30FF,
	// high byte from the page-wrapped $3000, not the linearly-next $3100.
	// +1 beyond the 0x4080 target itself because the final sub-cycle's
	// fetchNext immediately reads and advances past the opcode there too.
	require.Equal(t, uint16(0x4081), c.PC)
	require.Equal(t, uint64(5), c.cycle-startCycle)
}

func TestScenarioNMIHijacksBRK(t *testing.T) {
	c, ram := newTestCPU(t)
	load(t, ram, 0x0200, 0x00, 0x00) // BRK
	load(t, ram, VectorIRQ, 0x00)
	load(t, ram, VectorIRQ+1, 0x05)
	load(t, ram, VectorNMI, 0x00)
	load(t, ram, VectorNMI+1, 0x06)
	prime(c, ram, 0x0200)

	// Assert NMI partway through the BRK sequence, inside the debounce
	// window so it latches by BRK's T5 vector selection.
	for i := 0; i < 7; i++ {
		if i == 2 {
			c.NmiSet()
		}
		_, err := c.Run(ram, 1)
		require.NoError(t, err)
	}

	// Took the NMI vector (0x0600), not IRQ/BRK's (0x0500); PC then points
	// one past it because T7's fetchNext already latched the next opcode.
	require.Equal(t, uint16(0x0601), c.PC)
	sp := c.S
	pushedP := ram.Read(0x0100 + uint16(sp) + 1)
	require.True(t, pushedP&flagB != 0) // software BRK entry: B=1 despite the steal
	pcl := ram.Read(0x0100 + uint16(sp) + 2)
	pch := ram.Read(0x0100 + uint16(sp) + 3)
	require.Equal(t, uint16(0x0202), uint16(pch)<<8|uint16(pcl))
}

func TestScenarioRMWWastedWriteObservability(t *testing.T) {
	c, _ := newTestCPU(t)
	ram, err := bus.NewRAM(65536)
	require.NoError(t, err)

	load(t, ram, 0x0200, 0xE6, 0x40) // INC $40
	load(t, ram, 0x0040, 0x00)
	prime(c, ram, 0x0200)

	cb := bus.NewCountingBus(ram)
	startCycle := c.cycle
	require.NoError(t, c.Step(cb, 1))
	require.Equal(t, uint64(5), c.cycle-startCycle)
	require.Equal(t, []uint8{0x00, 0x01}, cb.Writes[0x0040])
	require.Equal(t, uint8(0x01), ram.Read(0x0040))
}

func TestScenarioResetEntry(t *testing.T) {
	c, ram := newTestCPU(t)
	load(t, ram, VectorReset, 0x00)
	load(t, ram, VectorReset+1, 0x80)
	load(t, ram, 0x8000, 0xEA) // NOP, whatever byte ends up latched as op

	c.Reset(ram)

	require.Equal(t, uint16(0x8001), c.PC)
	require.Equal(t, uint8(0xFD), c.S)
	require.True(t, c.P.I)
	require.Equal(t, uint8(0xEA), c.op)
	require.Equal(t, uint64(8), c.cycle)
}

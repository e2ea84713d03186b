package cpu

// Flags is the 6502 status register. Bit 5 has no storage of its own —
// it always reads as 1 — and B is a pseudo-flag: it is never present on
// the physical chip, only in copies of P pushed to the stack.
type Flags struct {
	N, V, B, D, I, Z, C bool
}

const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagR uint8 = 1 << 5 // reserved, always reads 1
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

// Pack emits N,V,1,B,D,I,Z,C from MSB to LSB.
func (f Flags) Pack() uint8 {
	var v uint8
	if f.N {
		v |= flagN
	}
	if f.V {
		v |= flagV
	}
	v |= flagR
	if f.B {
		v |= flagB
	}
	if f.D {
		v |= flagD
	}
	if f.I {
		v |= flagI
	}
	if f.Z {
		v |= flagZ
	}
	if f.C {
		v |= flagC
	}
	return v
}

// Unpack assigns N,V,D,I,Z,C from v; bit 5 always reads as 1 on Pack
// regardless of v. B is left untouched, matching PLP and RTI, both of
// which restore every flag except the pseudo-flag B.
func (f *Flags) Unpack(v uint8) {
	f.N = v&flagN != 0
	f.V = v&flagV != 0
	f.D = v&flagD != 0
	f.I = v&flagI != 0
	f.Z = v&flagZ != 0
	f.C = v&flagC != 0
}

// UnpackIncludingB is Unpack plus B, for callers that need a literal,
// full restore of a previously-pushed P byte (a test harness replaying a
// saved snapshot, for instance). Neither PLP nor RTI call this — both
// are defined to preserve the running B value — it exists to satisfy the
// pack/unpack contract in full.
func (f *Flags) UnpackIncludingB(v uint8) {
	f.Unpack(v)
	f.B = v&flagB != 0
}

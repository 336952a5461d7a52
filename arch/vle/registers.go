// Package vle encodes the PowerPC Variable Length Encoding instructions
// of the e200 cores.
//
// VLE mixes 16-bit and 32-bit instructions. Both are stored big-endian,
// and bit 0 is the most significant bit as in the Power ISA manuals.
package vle

import (
	"fmt"
)

// Reg is a general purpose register number.
type Reg int

const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	R16
	R17
	R18
	R19
	R20
	R21
	R22
	R23
	R24
	R25
	R26
	R27
	R28
	R29
	R30
	R31

	// SP is the stack pointer by ABI convention.
	SP = R1
)

func (r Reg) Name() string {
	return fmt.Sprintf("r%d", int(r))
}

func (r Reg) Val() int {
	return int(r)
}

func (r Reg) String() string {
	return r.Name()
}

// SPR is a special purpose register number as used by mtspr and mfspr.
type SPR int

const (
	XER   SPR = 1
	LR    SPR = 8
	CTR   SPR = 9
	DEC   SPR = 22
	SRR0  SPR = 26
	SRR1  SPR = 27
	PID   SPR = 48
	DECAR SPR = 54
	CSRR0 SPR = 58
	CSRR1 SPR = 59
	DEAR  SPR = 61
	ESR   SPR = 62
	IVPR  SPR = 63
	SPRG0 SPR = 272
	SPRG1 SPR = 273
	SPRG2 SPR = 274
	SPRG3 SPR = 275
	PIR   SPR = 286
	PVR   SPR = 287
	TCR   SPR = 340
	TSR   SPR = 336
	MCSR  SPR = 572
	HID0  SPR = 1008
	HID1  SPR = 1009
	SVR   SPR = 1023
)

var sprNames = map[SPR]string{
	XER:   "xer",
	LR:    "lr",
	CTR:   "ctr",
	DEC:   "dec",
	SRR0:  "srr0",
	SRR1:  "srr1",
	PID:   "pid",
	DECAR: "decar",
	CSRR0: "csrr0",
	CSRR1: "csrr1",
	DEAR:  "dear",
	ESR:   "esr",
	IVPR:  "ivpr",
	SPRG0: "sprg0",
	SPRG1: "sprg1",
	SPRG2: "sprg2",
	SPRG3: "sprg3",
	PIR:   "pir",
	PVR:   "pvr",
	TCR:   "tcr",
	TSR:   "tsr",
	MCSR:  "mcsr",
	HID0:  "hid0",
	HID1:  "hid1",
	SVR:   "svr",
}

func (s SPR) Name() string {
	if n, ok := sprNames[s]; ok {
		return n
	}
	return fmt.Sprintf("spr%d", int(s))
}

func (s SPR) Val() int {
	return int(s)
}

func (s SPR) String() string {
	return s.Name()
}

// BO selects how a conditional branch tests its condition register bit.
// The 16-bit branches only support IfFalse and IfTrue.
type BO int

const (
	IfFalse BO = iota
	IfTrue
	// DecNonZero decrements CTR and branches while it is not zero.
	DecNonZero
	// DecZero decrements CTR and branches once it is zero.
	DecZero
)

// CRBit is a bit of condition register field 0, as tested by the
// conditional branches.
type CRBit int

const (
	LT CRBit = iota
	GT
	EQ
	SO
)

var crBitNames = [...]string{"lt", "gt", "eq", "so"}

func (b CRBit) String() string {
	if b >= 0 && int(b) < len(crBitNames) {
		return crBitNames[b]
	}
	return fmt.Sprintf("crbit(%d)", int(b))
}

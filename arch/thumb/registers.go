// Package thumb encodes ARMv7-M Thumb and Thumb-2 instructions.
//
// Sixteen-bit encodings are one halfword and 32-bit encodings are two;
// each halfword is serialized little-endian, first halfword first.
package thumb

import (
	"fmt"

	"github.com/apparentlymart/isaenc/arch"
)

// Reg is a core register number.
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

	SP = R13
	LR = R14
	PC = R15
)

func (r Reg) Name() string {
	switch r {
	case SP:
		return "sp"
	case LR:
		return "lr"
	case PC:
		return "pc"
	}
	return fmt.Sprintf("r%d", int(r))
}

func (r Reg) Val() int {
	return int(r)
}

func (r Reg) String() string {
	return r.Name()
}

// Cond is a condition code.
type Cond int

const (
	EQ Cond = iota
	NE
	CS
	CC
	MI
	PL
	VS
	VC
	HI
	LS
	GE
	LT
	GT
	LE
	AL
)

var condNames = [...]string{"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc", "hi", "ls", "ge", "lt", "gt", "le", "al"}

func (c Cond) String() string {
	if c >= 0 && int(c) < len(condNames) {
		return condNames[c]
	}
	return fmt.Sprintf("cond(%d)", int(c))
}

// checkRegs fails unless every register is below limit.
func checkRegs(limit int, regs ...Reg) error {
	for _, r := range regs {
		if r < 0 || int(r) >= limit {
			return arch.Rangef("register %s is not encodable here (r0 to r%d)", r, limit-1)
		}
	}
	return nil
}

// EncodeRegisterList returns the register list bitmap with bit n set for
// register rn.
func EncodeRegisterList(regs []Reg) int {
	ret := 0
	for _, r := range regs {
		ret |= 1 << uint(r)
	}
	return ret
}

func hasReg(regs []Reg, want Reg) bool {
	for _, r := range regs {
		if r == want {
			return true
		}
	}
	return false
}

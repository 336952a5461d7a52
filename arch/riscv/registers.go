// Package riscv encodes the RV32I base instructions and the compressed
// (RVC) instructions that extend them.
//
// Instructions are described by the encoding tables of the RISC-V
// manual, written left to right from bit 31 (or bit 15) down to bit 0.
// The bits are stored most significant first and written out in
// little-endian byte order.
package riscv

import (
	"fmt"

	"github.com/apparentlymart/isaenc/arch"
)

// Reg is an integer register x0 to x31.
type Reg int

const (
	X0 Reg = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
	X29
	X30
	X31
)

// Names from the standard calling convention.
const (
	Zero = X0
	RA   = X1
	SP   = X2
	GP   = X3
	TP   = X4
	T0   = X5
	T1   = X6
	T2   = X7
	S0   = X8
	FP   = X8
	S1   = X9
	A0   = X10
	A1   = X11
	A2   = X12
	A3   = X13
	A4   = X14
	A5   = X15
	A6   = X16
	A7   = X17
	S2   = X18
	S3   = X19
	S4   = X20
	S5   = X21
	S6   = X22
	S7   = X23
	S8   = X24
	S9   = X25
	S10  = X26
	S11  = X27
	T3   = X28
	T4   = X29
	T5   = X30
	T6   = X31
)

var abiNames = [...]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Name returns the calling convention name of the register.
func (r Reg) Name() string {
	if r < 0 || int(r) >= len(abiNames) {
		return fmt.Sprintf("x%d", int(r))
	}
	return abiNames[r]
}

func (r Reg) Val() int {
	return int(r)
}

func (r Reg) String() string {
	return r.Name()
}

var _ arch.Register = X0

// CompactReg returns the 3-bit encoding the compressed instructions use
// for x8 to x15.
func CompactReg(r Reg) (int, error) {
	if r < X8 || r > X15 {
		return 0, arch.Rangef("register %s is not encodeable in compact format (x8 to x15)", r)
	}
	return int(r - X8), nil
}

// CSR is a control and status register number.
type CSR int

const (
	Sstatus  CSR = 0x100
	Sie      CSR = 0x104
	Stvec    CSR = 0x105
	Sip      CSR = 0x144
	Mstatus  CSR = 0x300
	Medeleg  CSR = 0x302
	Mideleg  CSR = 0x303
	Mie      CSR = 0x304
	Mtvec    CSR = 0x305
	Mscratch CSR = 0x340
	Mepc     CSR = 0x341
	Mcause   CSR = 0x342
	Mtval    CSR = 0x343
	Mip      CSR = 0x344
	Cycle    CSR = 0xc00
	Time     CSR = 0xc01
	Instret  CSR = 0xc02
	Mhartid  CSR = 0xf14
)

var csrNames = map[CSR]string{
	Sstatus:  "sstatus",
	Sie:      "sie",
	Stvec:    "stvec",
	Sip:      "sip",
	Mstatus:  "mstatus",
	Medeleg:  "medeleg",
	Mideleg:  "mideleg",
	Mie:      "mie",
	Mtvec:    "mtvec",
	Mscratch: "mscratch",
	Mepc:     "mepc",
	Mcause:   "mcause",
	Mtval:    "mtval",
	Mip:      "mip",
	Cycle:    "cycle",
	Time:     "time",
	Instret:  "instret",
	Mhartid:  "mhartid",
}

func (c CSR) String() string {
	if name, ok := csrNames[c]; ok {
		return name
	}
	return fmt.Sprintf("csr%#x", int(c))
}

// Ordering is a set of the accesses a fence orders.
type Ordering int

const (
	MemWrite Ordering = 1 << iota
	MemRead
	DevOutput
	DevInput

	MemRW = MemRead | MemWrite
	All   = DevInput | DevOutput | MemRead | MemWrite
)

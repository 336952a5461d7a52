// Package ia32 encodes a subset of the IA-32 and x86-64 instruction set.
//
// Unlike the fixed-width architectures, an instruction here is a sequence
// of independently encoded components: prefixes, an optional REX byte, the
// opcode, ModRM, SIB, displacement and immediate. ModRM, SIB and a
// register encoded in the opcode all extend their 3-bit register fields
// through a REX context that the components of one instruction share.
package ia32

import (
	"fmt"

	"github.com/apparentlymart/isaenc/arch"
)

// Mode is the processor mode the instructions are encoded for. Its value
// is the default address width in bits.
type Mode int

const (
	Protected Mode = 32
	Long      Mode = 64
)

func (m Mode) String() string {
	switch m {
	case Protected:
		return "protected"
	case Long:
		return "long"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) check() error {
	if m != Protected && m != Long {
		return arch.InvalidArgumentf("unsupported processor mode %d", int(m))
	}
	return nil
}

// RegKind separates the general purpose registers from the others.
type RegKind int

const (
	GeneralPurpose RegKind = iota
	Segment
)

// Register is one view of an architectural register: its number, its
// operand size and whether it names the high byte of a 16-bit register.
type Register struct {
	name string
	num  int
	Bits int
	Kind RegKind
	high bool
}

func gp(name string, num, bits int) Register {
	return Register{name: name, num: num, Bits: bits}
}

func highByte(name string, num int) Register {
	return Register{name: name, num: num, Bits: 8, high: true}
}

func seg(name string, num int) Register {
	return Register{name: name, num: num, Bits: 16, Kind: Segment}
}

var (
	AL   = gp("al", 0, 8)
	CL   = gp("cl", 1, 8)
	DL   = gp("dl", 2, 8)
	BL   = gp("bl", 3, 8)
	AH   = highByte("ah", 0)
	CH   = highByte("ch", 1)
	DH   = highByte("dh", 2)
	BH   = highByte("bh", 3)
	SPL  = gp("spl", 4, 8)
	BPL  = gp("bpl", 5, 8)
	SIL  = gp("sil", 6, 8)
	DIL  = gp("dil", 7, 8)
	R8B  = gp("r8b", 8, 8)
	R9B  = gp("r9b", 9, 8)
	R10B = gp("r10b", 10, 8)
	R11B = gp("r11b", 11, 8)
	R12B = gp("r12b", 12, 8)
	R13B = gp("r13b", 13, 8)
	R14B = gp("r14b", 14, 8)
	R15B = gp("r15b", 15, 8)

	AX   = gp("ax", 0, 16)
	CX   = gp("cx", 1, 16)
	DX   = gp("dx", 2, 16)
	BX   = gp("bx", 3, 16)
	SP   = gp("sp", 4, 16)
	BP   = gp("bp", 5, 16)
	SI   = gp("si", 6, 16)
	DI   = gp("di", 7, 16)
	R8W  = gp("r8w", 8, 16)
	R9W  = gp("r9w", 9, 16)
	R10W = gp("r10w", 10, 16)
	R11W = gp("r11w", 11, 16)
	R12W = gp("r12w", 12, 16)
	R13W = gp("r13w", 13, 16)
	R14W = gp("r14w", 14, 16)
	R15W = gp("r15w", 15, 16)

	EAX  = gp("eax", 0, 32)
	ECX  = gp("ecx", 1, 32)
	EDX  = gp("edx", 2, 32)
	EBX  = gp("ebx", 3, 32)
	ESP  = gp("esp", 4, 32)
	EBP  = gp("ebp", 5, 32)
	ESI  = gp("esi", 6, 32)
	EDI  = gp("edi", 7, 32)
	R8D  = gp("r8d", 8, 32)
	R9D  = gp("r9d", 9, 32)
	R10D = gp("r10d", 10, 32)
	R11D = gp("r11d", 11, 32)
	R12D = gp("r12d", 12, 32)
	R13D = gp("r13d", 13, 32)
	R14D = gp("r14d", 14, 32)
	R15D = gp("r15d", 15, 32)

	RAX = gp("rax", 0, 64)
	RCX = gp("rcx", 1, 64)
	RDX = gp("rdx", 2, 64)
	RBX = gp("rbx", 3, 64)
	RSP = gp("rsp", 4, 64)
	RBP = gp("rbp", 5, 64)
	RSI = gp("rsi", 6, 64)
	RDI = gp("rdi", 7, 64)
	R8  = gp("r8", 8, 64)
	R9  = gp("r9", 9, 64)
	R10 = gp("r10", 10, 64)
	R11 = gp("r11", 11, 64)
	R12 = gp("r12", 12, 64)
	R13 = gp("r13", 13, 64)
	R14 = gp("r14", 14, 64)
	R15 = gp("r15", 15, 64)

	CS = seg("cs", 0)
	SS = seg("ss", 1)
	DS = seg("ds", 2)
	ES = seg("es", 3)
	FS = seg("fs", 4)
	GS = seg("gs", 5)
)

func (r Register) Name() string {
	return r.name
}

// Val is the number encoded for the register. The high byte registers
// share their numbers with spl, bpl, sil and dil.
func (r Register) Val() int {
	if r.high {
		return r.num + 4
	}
	return r.num
}

func (r Register) String() string {
	return r.name
}

func (r Register) IsHigh() bool {
	return r.high
}

// RequiresRex reports whether the register can only be encoded with a REX
// prefix present, which is what tells spl..dil apart from ah..bh.
func (r Register) RequiresRex() bool {
	return r.Bits == 8 && !r.high && r.num >= 4 && r.num < 8
}

func (r Register) isZero() bool {
	return r.name == ""
}

func (Register) rm() {}

// check verifies that r is a general purpose register that exists in the
// given mode.
func (m Mode) checkReg(r Register) error {
	switch {
	case r.isZero():
		return arch.InvalidArgumentf("missing register")
	case r.Kind != GeneralPurpose:
		return arch.InvalidArgumentf("%s is not a general purpose register", r)
	case m == Protected && (r.Bits == 64 || r.num >= 8 || r.RequiresRex()):
		return arch.InvalidArgumentf("%s does not exist in %s mode", r, m)
	}
	return nil
}

// Cond is the condition of a conditional jump. Several mnemonics share
// each value.
type Cond int

const (
	O  Cond = 0x0
	NO Cond = 0x1
	B  Cond = 0x2
	AE Cond = 0x3
	E  Cond = 0x4
	NE Cond = 0x5
	BE Cond = 0x6
	A  Cond = 0x7
	S  Cond = 0x8
	NS Cond = 0x9
	P  Cond = 0xa
	NP Cond = 0xb
	L  Cond = 0xc
	GE Cond = 0xd
	LE Cond = 0xe
	G  Cond = 0xf

	C   = B
	NAE = B
	NB  = AE
	NC  = AE
	Z   = E
	NZ  = NE
	NA  = BE
	NBE = A
	PE  = P
	PO  = NP
	NGE = L
	NL  = GE
	NG  = LE
	NLE = G

	// RCXZ jumps when rcx (ecx in protected mode) is zero. It only has a
	// short form.
	RCXZ Cond = 0x10
)

var condNames = [...]string{"o", "no", "b", "ae", "e", "ne", "be", "a", "s", "ns", "p", "np", "l", "ge", "le", "g", "rcxz"}

func (c Cond) String() string {
	if c < 0 || int(c) >= len(condNames) {
		return fmt.Sprintf("Cond(%d)", int(c))
	}
	return condNames[c]
}

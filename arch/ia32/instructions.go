package ia32

import (
	"github.com/apparentlymart/isaenc/arch"
)

func (m Mode) regToRM(mnemonic string, code8, code int, dst RM, src Register) (*Instruction, error) {
	b := m.build(mnemonic)
	b.use(src)
	b.fail(sameSize(mnemonic, dst, src))
	b.opcode(pick(src.Bits, code8, code), src.Bits)
	b.modrm(src.Val(), dst)
	return b.done()
}

func (m Mode) rmToReg(mnemonic string, code8, code int, dst Register, src RM) (*Instruction, error) {
	b := m.build(mnemonic)
	b.use(dst)
	b.fail(sameSize(mnemonic, dst, src))
	b.opcode(pick(dst.Bits, code8, code), dst.Bits)
	b.modrm(dst.Val(), src)
	return b.done()
}

// immToRM is the group 1 "op r/m, imm" form, opcode 80 or 81 with the
// operation in the reg field.
func (m Mode) immToRM(mnemonic string, digit int, dst RM, imm int64) (*Instruction, error) {
	size := sizeOf(dst)
	b := m.build(mnemonic)
	b.opcode(pick(size, 0x80, 0x81), size)
	b.extension(digit, dst)
	b.imm(imm, immSize(size))
	return b.done()
}

// MovRegToReg copies src to dst.
func (m Mode) MovRegToReg(dst, src Register) (*Instruction, error) {
	return m.regToRM("mov", 0x88, 0x89, dst, src)
}

func (m Mode) MovRegToMem(dst Mem, src Register) (*Instruction, error) {
	return m.regToRM("mov", 0x88, 0x89, dst, src)
}

func (m Mode) MovMemToReg(dst Register, src Mem) (*Instruction, error) {
	return m.rmToReg("mov", 0x8a, 0x8b, dst, src)
}

// MovImmToReg loads a constant with the register encoded in the opcode.
// The immediate has the full width of the register, 64-bit ones included.
func (m Mode) MovImmToReg(dst Register, imm int64) (*Instruction, error) {
	b := m.build("mov")
	b.use(dst)
	b.opcode(pick(dst.Bits, 0xb0, 0xb8), dst.Bits)
	if b.err == nil {
		b.fail(b.in.Opcode.SetRegister(dst.Val()))
	}
	b.imm(imm, dst.Bits/8)
	return b.done()
}

// MovImmToMem stores a constant. A 64-bit store takes a 32-bit immediate
// that the processor sign extends.
func (m Mode) MovImmToMem(dst Mem, imm int64) (*Instruction, error) {
	b := m.build("mov")
	b.opcode(pick(dst.Size, 0xc6, 0xc7), dst.Size)
	b.extension(0, dst)
	b.imm(imm, immSize(dst.Size))
	return b.done()
}

func (m Mode) AddImmToReg(dst Register, imm int64) (*Instruction, error) {
	return m.immToRM("add", 0, dst, imm)
}

func (m Mode) AddImmToMem(dst Mem, imm int64) (*Instruction, error) {
	return m.immToRM("add", 0, dst, imm)
}

func (m Mode) AddRegToReg(dst, src Register) (*Instruction, error) {
	return m.regToRM("add", 0x00, 0x01, dst, src)
}

func (m Mode) AddRegToMem(dst Mem, src Register) (*Instruction, error) {
	return m.regToRM("add", 0x00, 0x01, dst, src)
}

func (m Mode) AddMemToReg(dst Register, src Mem) (*Instruction, error) {
	return m.rmToReg("add", 0x02, 0x03, dst, src)
}

// LogicOp is a bitwise operation of the group 1 instructions. Its value is
// the opcode extension, and eight times it is the base of the register
// forms.
type LogicOp int

const (
	OpOr  LogicOp = 1
	OpAnd LogicOp = 4
	OpXor LogicOp = 6
)

func (op LogicOp) String() string {
	switch op {
	case OpOr:
		return "or"
	case OpAnd:
		return "and"
	case OpXor:
		return "xor"
	}
	return "logic"
}

func (op LogicOp) check() error {
	if op != OpOr && op != OpAnd && op != OpXor {
		return arch.InvalidArgumentf("%d is not a logic operation", int(op))
	}
	return nil
}

// LogicImm combines dst with a constant.
func (m Mode) LogicImm(op LogicOp, dst RM, imm int64) (*Instruction, error) {
	if err := op.check(); err != nil {
		return nil, err
	}
	return m.immToRM(op.String(), int(op), dst, imm)
}

// LogicRegToRM combines dst, a register or memory, with the register src.
func (m Mode) LogicRegToRM(op LogicOp, dst RM, src Register) (*Instruction, error) {
	if err := op.check(); err != nil {
		return nil, err
	}
	base := int(op) * 8
	return m.regToRM(op.String(), base, base+1, dst, src)
}

func (m Mode) LogicMemToReg(op LogicOp, dst Register, src Mem) (*Instruction, error) {
	if err := op.check(); err != nil {
		return nil, err
	}
	base := int(op) * 8
	return m.rmToReg(op.String(), base+2, base+3, dst, src)
}

// checkTarget verifies that a jump target has the address width of the
// mode.
func (m Mode) checkTarget(size int) error {
	if size != int(m) {
		return arch.InvalidArgumentf("jmp: target must be %d bits in %s mode, not %d", int(m), m, size)
	}
	return nil
}

// JmpToReg jumps to the address held in target.
func (m Mode) JmpToReg(target Register) (*Instruction, error) {
	b := m.build("jmp")
	b.fail(m.checkTarget(target.Bits))
	b.opcode(0xff, 0)
	b.extension(4, target)
	return b.done()
}

// JmpToMem jumps to the address stored at target.
func (m Mode) JmpToMem(target Mem) (*Instruction, error) {
	b := m.build("jmp")
	b.fail(m.checkTarget(target.Size))
	b.opcode(0xff, 0)
	b.extension(4, target)
	return b.done()
}

// JmpCond jumps by rel, relative to the end of the instruction, when cond
// holds. rel must fit in a byte.
func (m Mode) JmpCond(cond Cond, rel int64) (*Instruction, error) {
	b := m.build("j" + cond.String())
	switch {
	case cond == RCXZ:
		b.opcode(0xe3, 0)
	case cond >= O && cond <= G:
		b.opcode(0x70+int(cond), 0)
	default:
		b.fail(arch.InvalidArgumentf("%d is not a condition", int(cond)))
	}
	b.imm(rel, 1)
	return b.done()
}

// JmpCondNear is JmpCond with a 32-bit displacement.
func (m Mode) JmpCondNear(cond Cond, rel int64) (*Instruction, error) {
	b := m.build("j" + cond.String())
	switch {
	case cond == RCXZ:
		b.fail(arch.Rangef("jrcxz only takes an 8-bit displacement, not %d", rel))
	case cond >= O && cond <= G:
		b.opcode(0x0f80+int(cond), 0)
	default:
		b.fail(arch.InvalidArgumentf("%d is not a condition", int(cond)))
	}
	b.imm(rel, 4)
	return b.done()
}

// ShiftOp is a shift of the group 2 instructions, valued as its opcode
// extension.
type ShiftOp int

const (
	OpShl ShiftOp = 4
	OpShr ShiftOp = 5
	OpSar ShiftOp = 7

	// OpSal is the same operation as OpShl.
	OpSal = OpShl
)

func (op ShiftOp) String() string {
	switch op {
	case OpShl:
		return "shl"
	case OpShr:
		return "shr"
	case OpSar:
		return "sar"
	}
	return "shift"
}

func (op ShiftOp) check() error {
	if op != OpShl && op != OpShr && op != OpSar {
		return arch.InvalidArgumentf("%d is not a shift operation", int(op))
	}
	return nil
}

func (m Mode) shift(op ShiftOp, code8, code int, target RM) *builder {
	size := sizeOf(target)
	b := m.build(op.String())
	b.fail(op.check())
	b.opcode(pick(size, code8, code), size)
	b.extension(int(op), target)
	return b
}

// ShiftByImm shifts target by a constant count. The count can reach 63
// for 64-bit operands and 31 otherwise.
func (m Mode) ShiftByImm(op ShiftOp, target RM, count int) (*Instruction, error) {
	limit := 32
	if sizeOf(target) == 64 {
		limit = 64
	}
	if count < 0 || count >= limit {
		return nil, arch.Rangef("%s: shift count %d outside 0 to %d", op, count, limit-1)
	}
	b := m.shift(op, 0xc0, 0xc1, target)
	b.imm(int64(count), 1)
	return b.done()
}

// ShiftByOne shifts target by one place, which has an encoding without an
// immediate.
func (m Mode) ShiftByOne(op ShiftOp, target RM) (*Instruction, error) {
	return m.shift(op, 0xd0, 0xd1, target).done()
}

// ShiftByCL shifts target by the count in cl.
func (m Mode) ShiftByCL(op ShiftOp, target RM) (*Instruction, error) {
	return m.shift(op, 0xd2, 0xd3, target).done()
}

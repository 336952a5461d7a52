package ia32

import (
	"fmt"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/apparentlymart/isaenc/bitvec"
)

// Instruction is an encoded instruction made of its components. Only the
// opcode is always present. The bytes are produced from the components on
// every call, so changes to a component show up in the next Bytes.
type Instruction struct {
	Mnemonic string
	Addr     uint64
	Mode     Mode

	Rex    *Rex
	Opcode *Opcode
	ModRM  *ModRM
	SIB    *SIB
	Disp   *Displacement
	Imm    *Immediate
}

type component interface {
	bits() (bits, mask *bitvec.Vector)
}

func (in *Instruction) components() []component {
	ret := []component{in.Opcode}
	if in.ModRM != nil {
		ret = append(ret, in.ModRM)
	}
	if in.SIB != nil {
		ret = append(ret, in.SIB)
	}
	if in.Disp != nil {
		ret = append(ret, in.Disp)
	}
	if in.Imm != nil {
		ret = append(ret, in.Imm)
	}
	return ret
}

func (in *Instruction) encode() (bits, mask *bitvec.Vector) {
	var bs, ms []*bitvec.Vector
	for _, c := range in.components() {
		b, m := c.bits()
		bs = append(bs, b)
		ms = append(ms, m)
	}
	return bitvec.Concat(bs...), bitvec.Concat(ms...)
}

// Bits returns the whole encoding, first byte first.
func (in *Instruction) Bits() *bitvec.Vector {
	bits, _ := in.encode()
	return bits
}

func (in *Instruction) Bytes() []byte {
	return in.Bits().Bytes()
}

func (in *Instruction) SizeBits() int {
	return in.Bits().Len()
}

func (in *Instruction) SizeBytes() int {
	return in.SizeBits() / 8
}

// Match returns the bits fixed by the opcode: prefixes, the REX nibble and
// W, the opcode bytes and any ModRM bits that extend the opcode.
func (in *Instruction) Match() (test, mask []byte) {
	bits, m := in.encode()
	test = bits.Bytes()
	mask = m.Bytes()
	for i := range test {
		test[i] &= mask[i]
	}
	return test, mask
}

func (in *Instruction) String() string {
	return fmt.Sprintf("%s %x", in.Mnemonic, in.Bytes())
}

// builder assembles an instruction, keeping the first error.
type builder struct {
	in   *Instruction
	regs []Register
	err  error
}

func (m Mode) build(mnemonic string) *builder {
	b := &builder{in: &Instruction{Mnemonic: mnemonic, Mode: m, Rex: &Rex{}}}
	b.err = m.check()
	return b
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// use records registers that take part in the instruction after checking
// that they exist in the mode.
func (b *builder) use(regs ...Register) {
	for _, r := range regs {
		if b.err != nil {
			return
		}
		b.fail(b.in.Mode.checkReg(r))
		b.regs = append(b.regs, r)
	}
}

func (b *builder) opcode(code, size int) {
	if b.err != nil {
		return
	}
	b.in.Opcode, b.err = NewOpcode(b.in.Rex, b.in.Mode, code, size)
}

// modrm addresses target through the rm field, with reg in the reg field.
func (b *builder) modrm(reg int, target RM) {
	if b.err != nil {
		return
	}
	switch t := target.(type) {
	case Register:
		b.use(t)
		if b.err != nil {
			return
		}
		b.in.ModRM, b.err = NewModRM(b.in.Rex, 3, reg, t.Val())
		if b.err == nil {
			b.in.ModRM.fixMod()
		}
	case Mem:
		b.in.ModRM, b.in.SIB, b.in.Disp, b.err = t.encode(b.in.Rex, b.in.Mode, reg)
	default:
		b.err = arch.InvalidArgumentf("%T is neither a register nor a memory operand", target)
	}
}

// extension puts an opcode extension in the reg field.
func (b *builder) extension(digit int, target RM) {
	b.modrm(digit, target)
	if b.err == nil {
		b.in.ModRM.fixReg()
	}
}

func (b *builder) imm(v int64, size int) {
	if b.err != nil {
		return
	}
	b.in.Imm, b.err = NewImmediate(v, size)
}

func (b *builder) done() (*Instruction, error) {
	if b.err != nil {
		return nil, b.err
	}
	high := false
	for _, r := range b.regs {
		if r.RequiresRex() {
			b.in.Rex.Force()
		}
		if r.IsHigh() {
			high = true
		}
	}
	if high && b.in.Rex.Present() {
		return nil, arch.InvalidArgumentf("%s: ah, ch, dh and bh cannot be used in an instruction that needs a REX prefix", b.in.Mnemonic)
	}
	if b.in.Mode == Protected && b.in.Rex.Present() {
		return nil, arch.InvalidArgumentf("%s: needs a REX prefix, which %s mode lacks", b.in.Mnemonic, b.in.Mode)
	}
	return b.in, nil
}

// sizeOf is the operand size of a register or memory operand.
func sizeOf(target RM) int {
	switch t := target.(type) {
	case Register:
		return t.Bits
	case Mem:
		return t.Size
	}
	return 0
}

func sameSize(mnemonic string, a, b RM) error {
	if sizeOf(a) != sizeOf(b) {
		return arch.InvalidArgumentf("%s: operand sizes %d and %d differ", mnemonic, sizeOf(a), sizeOf(b))
	}
	return nil
}

// pick returns code8 for byte operands and code otherwise.
func pick(size, code8, code int) int {
	if size == 8 {
		return code8
	}
	return code
}

// immSize is the immediate size for an operation of the given size. Only
// mov to a register has a 64-bit immediate; elsewhere it is sign extended
// from 32 bits.
func immSize(size int) int {
	if size == 64 {
		return 4
	}
	return size / 8
}

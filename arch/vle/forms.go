package vle

import (
	"strings"

	"github.com/apparentlymart/isaenc/arch"
)

// The form types below follow the instruction formats of the e200z VLE
// manual. A spec string spells the instruction the way the manual's
// encoding diagrams do: literal bits and field names, left to right.

// scanner walks a compacted spec, recording literal bits as fixed and
// checking that the named fields appear where the form expects them.
type scanner struct {
	b   *arch.Builder
	pos int
	bit int
	err error
}

func scan(b *arch.Builder) *scanner {
	return &scanner{b: b}
}

func (s *scanner) isLiteral(n int) bool {
	if s.pos+n > len(s.b.Spec) {
		return false
	}
	for i := s.pos; i < s.pos+n; i++ {
		if c := s.b.Spec[i]; c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// lit consumes n literal bits.
func (s *scanner) lit(n int) {
	if s.err != nil {
		return
	}
	s.err = s.b.Literal(s.bit, s.pos, s.pos+n)
	s.pos += n
	s.bit += n
}

// field consumes one of the given names, which stands for n bits.
func (s *scanner) field(n int, names ...string) {
	if s.err != nil {
		return
	}
	for _, name := range names {
		if strings.HasPrefix(s.b.Spec[s.pos:], name) {
			s.pos += len(name)
			s.bit += n
			return
		}
	}
	s.err = s.b.Require(false, "expected "+strings.Join(names, " or ")+" at "+s.b.Spec[s.pos:])
}

// either consumes n literal bits if they are there and the named field
// otherwise. It reports whether the bits were literal.
func (s *scanner) either(n int, names ...string) bool {
	if s.err == nil && s.isLiteral(n) {
		s.lit(n)
		return true
	}
	s.field(n, names...)
	return false
}

// zero records bits that the spec leaves out as fixed zero.
func (s *scanner) zero(n int) {
	if s.err != nil {
		return
	}
	s.b.Set(s.bit, s.bit+n, 0)
	s.bit += n
}

func (s *scanner) end() error {
	if s.err != nil {
		return s.err
	}
	if err := s.b.Require(s.pos == len(s.b.Spec), "unexpected "+s.b.Spec[s.pos:]); err != nil {
		return err
	}
	return s.b.Require(s.bit == s.b.Width, "does not cover the instruction")
}

func build(mnemonic, form string, width int, spec string, shape arch.Shape) (*arch.Instruction, error) {
	return arch.Build(mnemonic, form, width, arch.BigEndian, spec, shape)
}

// RR is the 16-bit two register form.
type RR struct {
	*arch.Instruction
	RY, RX arch.Operand
}

func newRR(mnemonic, spec string) (*RR, error) {
	in, err := build(mnemonic, "RR", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(8)
		s.field(4, "ARY", "RY")
		s.field(4, "ARX", "RX")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	compact := arch.Compact(spec)
	ret := &RR{Instruction: in}
	ret.RY = ShortReg{in.Field(8, 12)}
	if strings.Contains(compact, "ARY") {
		ret.RY = AltReg{in.Field(8, 12)}
	}
	ret.RX = ShortReg{in.Field(12, 16)}
	if strings.Contains(compact, "ARX") {
		ret.RX = AltReg{in.Field(12, 16)}
	}
	return ret, nil
}

// R is the 16-bit one register form.
type R struct {
	*arch.Instruction
	RX ShortReg
}

func newR(mnemonic, spec string) (*R, error) {
	in, err := build(mnemonic, "R", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(12)
		s.field(4, "RX")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &R{Instruction: in, RX: ShortReg{in.Field(12, 16)}}, nil
}

// IM5 is the 16-bit form with a 5-bit unsigned immediate.
type IM5 struct {
	*arch.Instruction
	UI5 *arch.Field
	RX  ShortReg
}

func newIM5(mnemonic, spec string) (*IM5, error) {
	in, err := build(mnemonic, "IM5", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(7)
		s.field(5, "UI5")
		s.field(4, "RX")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &IM5{Instruction: in, UI5: in.Field(7, 12), RX: ShortReg{in.Field(12, 16)}}, nil
}

// OIM5 is the 16-bit form with an immediate from 1 to 32.
type OIM5 struct {
	*arch.Instruction
	OIM5 Offset
	RX   ShortReg
}

func newOIM5(mnemonic, spec string) (*OIM5, error) {
	in, err := build(mnemonic, "OIM5", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(7)
		s.field(5, "OIM5")
		s.field(4, "RX")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &OIM5{Instruction: in, OIM5: Offset{in.Field(7, 12)}, RX: ShortReg{in.Field(12, 16)}}, nil
}

// IM7 is the 16-bit form of se_li.
type IM7 struct {
	*arch.Instruction
	UI7 *arch.Field
	RX  ShortReg
}

func newIM7(mnemonic, spec string) (*IM7, error) {
	in, err := build(mnemonic, "IM7", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(5)
		s.field(7, "UI7")
		s.field(4, "RX")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &IM7{Instruction: in, UI7: in.Field(5, 12), RX: ShortReg{in.Field(12, 16)}}, nil
}

// SD4 is the 16-bit load/store form. The 4-bit offset counts units of
// the access size, so SD4 takes byte offsets aligned to it.
type SD4 struct {
	*arch.Instruction
	SD4    Aligned
	RZ, RX ShortReg
}

func newSD4(mnemonic, spec string, size int) (*SD4, error) {
	in, err := build(mnemonic, "SD4", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(4)
		s.field(4, "SD4")
		s.field(4, "RZ")
		s.field(4, "RX")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	var shift uint
	for 1<<shift < size {
		shift++
	}
	return &SD4{
		Instruction: in,
		SD4:         Aligned{Operand: in.Field(4, 8, arch.Shift(shift)), Align: int64(size)},
		RZ:          ShortReg{in.Field(8, 12)},
		RX:          ShortReg{in.Field(12, 16)},
	}, nil
}

// BD8 is the 16-bit unconditional branch form.
type BD8 struct {
	*arch.Instruction
	LK  *arch.Field
	BD8 Aligned
}

func newBD8(mnemonic, spec string) (*BD8, error) {
	in, err := build(mnemonic, "BD8", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		if err := b.Expect(6, 7, "0"); err != nil {
			return err
		}
		s.lit(8)
		s.field(8, "BD8")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &BD8{Instruction: in, LK: in.Field(7, 8), BD8: displacement(in, 8, 16)}, nil
}

// SeBC is the 16-bit conditional branch form. BO16 and BI16 are either
// spelled out in the spec or left as operands.
type SeBC struct {
	*arch.Instruction
	BO16, BI16 *arch.Field
	BD8        Aligned
}

func newSeBC(mnemonic, spec string) (*SeBC, error) {
	in, err := build(mnemonic, "SeBC", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(5)
		s.either(1, "BO16")
		s.either(2, "BI16")
		s.field(8, "BD8")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &SeBC{
		Instruction: in,
		BO16:        in.Field(5, 6),
		BI16:        in.Field(6, 8),
		BD8:         displacement(in, 8, 16),
	}, nil
}

// C is the 16-bit form without operands, used by the branches to the
// link and count registers.
type C struct {
	*arch.Instruction
	LK *arch.Field
}

func newC(mnemonic, spec string) (*C, error) {
	in, err := build(mnemonic, "C", 16, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(15)
		s.lit(1)
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &C{Instruction: in, LK: in.Field(15, 16)}, nil
}

// BD24 is the 32-bit unconditional branch form.
type BD24 struct {
	*arch.Instruction
	BD24 Aligned
	LK   *arch.Field
}

func newBD24(mnemonic, spec string) (*BD24, error) {
	in, err := build(mnemonic, "BD24", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		if err := b.Expect(6, 7, "0"); err != nil {
			return err
		}
		s.lit(7)
		s.field(24, "BD24")
		s.lit(1)
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &BD24{Instruction: in, BD24: displacement(in, 7, 31), LK: in.Field(31, 32)}, nil
}

// BC is the 32-bit conditional branch form.
type BC struct {
	*arch.Instruction
	BO32, BI32 *arch.Field
	BD15       Aligned
	LK         *arch.Field
}

func newBC(mnemonic, spec string) (*BC, error) {
	in, err := build(mnemonic, "BC", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(10)
		s.either(2, "BO32")
		s.either(4, "BI32")
		s.field(15, "BD15")
		s.lit(1)
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &BC{
		Instruction: in,
		BO32:        in.Field(10, 12),
		BI32:        in.Field(12, 16),
		BD15:        displacement(in, 16, 31),
		LK:          in.Field(31, 32),
	}, nil
}

// D is the 32-bit form with two registers and a signed 16-bit value. The
// loads and stores use it with a displacement and are named D16 here.
type D struct {
	*arch.Instruction
	RD, RA *arch.Field
	SI     *arch.Field
}

func newD(mnemonic, form, spec string) (*D, error) {
	in, err := build(mnemonic, form, 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RD", "RS")
		s.field(5, "RA")
		s.field(16, "SI", "D")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &D{
		Instruction: in,
		RD:          in.Field(6, 11),
		RA:          in.Field(11, 16),
		SI:          in.Field(16, 32, arch.Signed()),
	}, nil
}

// D8 is the 32-bit form with an 8-bit signed displacement, used by the
// multiple word loads and stores.
type D8 struct {
	*arch.Instruction
	RS, RA *arch.Field
	D8     *arch.Field
}

func newD8(mnemonic, spec string) (*D8, error) {
	in, err := build(mnemonic, "D8", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RD", "RS")
		s.field(5, "RA")
		s.lit(8)
		s.field(8, "D8")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &D8{
		Instruction: in,
		RS:          in.Field(6, 11),
		RA:          in.Field(11, 16),
		D8:          in.Field(24, 32, arch.Signed()),
	}, nil
}

// I20 is the form of e_li.
type I20 struct {
	*arch.Instruction
	RD  *arch.Field
	I20 *arch.Combined
}

func newI20(mnemonic, spec string) (*I20, error) {
	in, err := build(mnemonic, "I20", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RD")
		s.field(5, "LI20[4:8]")
		s.lit(1)
		s.field(4, "LI20[0:3]")
		s.field(11, "LI20[9:19]")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &I20{Instruction: in, RD: in.Field(6, 11), I20: i20(in, 11)}, nil
}

// I16L is the form with a register and a 16-bit unsigned immediate.
type I16L struct {
	*arch.Instruction
	RD *arch.Field
	UI *arch.Combined
}

func newI16L(mnemonic, spec string) (*I16L, error) {
	in, err := build(mnemonic, "I16L", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RD")
		s.field(5, "UI[0:4]")
		s.lit(5)
		s.field(11, "UI[5:15]")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &I16L{Instruction: in, RD: in.Field(6, 11), UI: imm16(in, 11, 10)}, nil
}

// I16A is the form with a register and a 16-bit signed immediate whose
// top bits come before the register.
type I16A struct {
	*arch.Instruction
	RA *arch.Field
	SI *arch.Combined
}

func newI16A(mnemonic, spec string) (*I16A, error) {
	in, err := build(mnemonic, "I16A", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "SI[0:4]")
		s.field(5, "RA")
		s.lit(5)
		s.field(11, "SI[5:15]")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &I16A{Instruction: in, RA: in.Field(11, 16), SI: imm16(in, 6, 15, arch.Signed())}, nil
}

// SCI8 is the form with a scaled 8-bit immediate, see EncodeSCI8.
type SCI8 struct {
	*arch.Instruction
	RS, RA *arch.Field
	Rc, F  *arch.Field
	SCL    *arch.Field
	UI8    *arch.Field
}

func newSCI8(mnemonic, spec string) (*SCI8, error) {
	in, err := build(mnemonic, "SCI8", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RS")
		s.field(5, "RA")
		s.lit(4)
		s.either(1, "RC")
		s.field(1, "F")
		s.field(2, "SCL")
		s.field(8, "UI8")
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &SCI8{
		Instruction: in,
		RS:          in.Field(6, 11),
		RA:          in.Field(11, 16),
		Rc:          in.Field(20, 21),
		F:           in.Field(21, 22),
		SCL:         in.Field(22, 24),
		UI8:         in.Field(24, 32),
	}, nil
}

// XFX is the move to and from special purpose register form. mfcr uses it
// with the register number spelled out as zeros.
type XFX struct {
	*arch.Instruction
	RS   *arch.Field
	SPRN *arch.Combined
}

func newXFX(mnemonic, spec string) (*XFX, error) {
	in, err := build(mnemonic, "XFX", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RS", "RD")
		s.either(10, "SPRN[5:9]SPRN[0:4]")
		s.lit(11)
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &XFX{Instruction: in, RS: in.Field(6, 11), SPRN: sprn(in, 11)}, nil
}

// XFXCRM is the form of mtcrf.
type XFXCRM struct {
	*arch.Instruction
	RS  *arch.Field
	CRM *arch.Field
}

func newXFXCRM(mnemonic, spec string) (*XFXCRM, error) {
	in, err := build(mnemonic, "XFXCRM", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.field(5, "RS")
		s.lit(1)
		s.field(8, "CRM")
		s.lit(12)
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &XFXCRM{Instruction: in, RS: in.Field(6, 11), CRM: in.Field(12, 20)}, nil
}

// X is the form of wrteei: a single operand bit.
type X struct {
	*arch.Instruction
	E *arch.Field
}

func newX(mnemonic, spec string) (*X, error) {
	in, err := build(mnemonic, "X", 32, spec, func(b *arch.Builder) error {
		s := scan(b)
		s.lit(6)
		s.zero(10)
		s.field(1, "E")
		s.zero(4)
		s.lit(11)
		return s.end()
	})
	if err != nil {
		return nil, err
	}
	return &X{Instruction: in, E: in.Field(16, 17)}, nil
}

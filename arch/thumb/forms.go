package thumb

import (
	"strings"

	"github.com/apparentlymart/isaenc/arch"
)

// Each form type below is one encoding class from the ARMv7-M manual. The
// shape functions check a spec string copied from the manual and lay down
// its fixed bits; the structs name the operands at the form's positions.

func build(mnemonic, form string, width int, spec string, shape arch.Shape) (*arch.Instruction, error) {
	if width == 32 {
		inner := shape
		shape = func(b *arch.Builder) error {
			if !strings.HasPrefix(b.Spec, "11101") && !strings.HasPrefix(b.Spec, "1111") {
				return arch.FormMismatchf("%s: spec %q is not a 32-bit Thumb opcode", form, b.Spec)
			}
			return inner(b)
		}
	}
	return arch.Build(mnemonic, form, width, arch.Halfwords, spec, shape)
}

// ShiftMove is "shift by immediate, move register".
type ShiftMove struct {
	*arch.Instruction
	Imm5, Rm, Rd *arch.Field
}

func newShiftMove(mnemonic, spec string) (*ShiftMove, error) {
	in, err := build(mnemonic, "ShiftMove", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 3, "000"); err != nil {
			return err
		}
		if err := b.Require(b.Spec[3:5] != "11", "not a shift or move opcode"); err != nil {
			return err
		}
		return b.Literal(0, 0, 5)
	})
	if err != nil {
		return nil, err
	}
	return &ShiftMove{
		Instruction: in,
		Imm5:        in.Field(5, 10),
		Rm:          in.Field(10, 13),
		Rd:          in.Field(13, 16),
	}, nil
}

// ASR is "add/subtract register".
type ASR struct {
	*arch.Instruction
	Rm, Rn, Rd *arch.Field
}

func newASR(mnemonic, spec string) (*ASR, error) {
	in, err := build(mnemonic, "ASR", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 6, "000110"); err != nil {
			return err
		}
		return b.Literal(0, 0, 7)
	})
	if err != nil {
		return nil, err
	}
	return &ASR{
		Instruction: in,
		Rm:          in.Field(7, 10),
		Rn:          in.Field(10, 13),
		Rd:          in.Field(13, 16),
	}, nil
}

// ASI is "add/subtract 3-bit immediate".
type ASI struct {
	*arch.Instruction
	Imm3, Rn, Rd *arch.Field
}

func newASI(mnemonic, spec string) (*ASI, error) {
	in, err := build(mnemonic, "ASI", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 6, "000111"); err != nil {
			return err
		}
		return b.Literal(0, 0, 7)
	})
	if err != nil {
		return nil, err
	}
	return &ASI{
		Instruction: in,
		Imm3:        in.Field(7, 10),
		Rn:          in.Field(10, 13),
		Rd:          in.Field(13, 16),
	}, nil
}

// ASCMI is "add/subtract/compare/move 8-bit immediate".
type ASCMI struct {
	*arch.Instruction
	Rdn, Imm8 *arch.Field
}

func newASCMI(mnemonic, spec string) (*ASCMI, error) {
	in, err := build(mnemonic, "ASCMI", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 3, "001"); err != nil {
			return err
		}
		return b.Literal(0, 0, 5)
	})
	if err != nil {
		return nil, err
	}
	return &ASCMI{
		Instruction: in,
		Rdn:         in.Field(5, 8),
		Imm8:        in.Field(8, 16),
	}, nil
}

// DPR is "data processing, register".
type DPR struct {
	*arch.Instruction
	Rm, Rdn *arch.Field
}

func newDPR(mnemonic, spec string) (*DPR, error) {
	in, err := build(mnemonic, "DPR", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 6, "010000"); err != nil {
			return err
		}
		return b.Literal(0, 0, 10)
	})
	if err != nil {
		return nil, err
	}
	return &DPR{
		Instruction: in,
		Rm:          in.Field(10, 13),
		Rdn:         in.Field(13, 16),
	}, nil
}

// DPImm32 covers both 32-bit data processing forms with a 12-bit
// immediate split as i:imm3:imm8. In the modified-immediate form OP is
// four bits wide and S is present; in the plain form OP is a single bit and
// OP2 is present.
type DPImm32 struct {
	*arch.Instruction
	OP, OP2, S *arch.Field
	Rn, Rd     *arch.Field
	Imm        *arch.Combined
}

func dpImm(in *arch.Instruction) *DPImm32 {
	return &DPImm32{
		Instruction: in,
		Rn:          in.Field(12, 16),
		Rd:          in.Field(20, 24),
		Imm:         arch.MustCombine([]*arch.Field{in.Field(5, 6), in.Field(17, 20), in.Field(24, 32)}),
	}
}

func newDPMod12(mnemonic, spec string) (*DPImm32, error) {
	in, err := build(mnemonic, "DPMod12I32", 32, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 5, "11110"); err != nil {
			return err
		}
		if err := b.Literal(0, 0, 5); err != nil {
			return err
		}
		b.Set(6, 7, 0)
		b.Set(16, 17, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ret := dpImm(in)
	ret.OP = in.Field(7, 11)
	ret.S = in.Field(11, 12)
	return ret, nil
}

func newDPPlain12(mnemonic, spec string) (*DPImm32, error) {
	in, err := build(mnemonic, "DPPlain12I32", 32, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 5, "11110"); err != nil {
			return err
		}
		if err := b.Literal(0, 0, 5); err != nil {
			return err
		}
		b.Set(6, 7, 1)
		b.Set(7, 8, 0)
		b.Set(9, 10, 0)
		b.Set(16, 17, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ret := dpImm(in)
	ret.OP = in.Field(8, 9)
	ret.OP2 = in.Field(10, 12)
	return ret, nil
}

// SDP is "special data processing". Rdn is D:Rdn, split around Rm.
type SDP struct {
	*arch.Instruction
	Rm  *arch.Field
	Rdn *arch.Combined
}

func newSDP(mnemonic, spec string) (*SDP, error) {
	in, err := build(mnemonic, "SDP", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 6, "010001"); err != nil {
			return err
		}
		if err := b.Require(b.Spec[6:8] != "11", "branch/exchange opcodes are not special data processing"); err != nil {
			return err
		}
		return b.Literal(0, 0, 8)
	})
	if err != nil {
		return nil, err
	}
	return &SDP{
		Instruction: in,
		Rm:          in.Field(9, 13),
		Rdn:         arch.MustCombine([]*arch.Field{in.Field(8, 9), in.Field(13, 16)}),
	}, nil
}

func misc(b *arch.Builder) error {
	if err := b.Expect(0, 4, "1011"); err != nil {
		return err
	}
	return b.Literal(0, 0, 4)
}

// SZE is "sign or zero extend".
type SZE struct {
	*arch.Instruction
	Opc, Rm, Rd *arch.Field
}

func newSZE(mnemonic, spec string) (*SZE, error) {
	in, err := build(mnemonic, "SZE", 16, spec, func(b *arch.Builder) error {
		if err := misc(b); err != nil {
			return err
		}
		if err := b.Expect(4, 8, "0010"); err != nil {
			return err
		}
		return b.Literal(4, 4, 8)
	})
	if err != nil {
		return nil, err
	}
	return &SZE{
		Instruction: in,
		Opc:         in.Field(8, 10),
		Rm:          in.Field(10, 13),
		Rd:          in.Field(13, 16),
	}, nil
}

// PushPop is the 16-bit push and pop. R is the extra LR/PC bit.
type PushPop struct {
	*arch.Instruction
	L, R, RegisterList *arch.Field
}

func newPushPop(mnemonic, spec string) (*PushPop, error) {
	in, err := build(mnemonic, "PushPop", 16, spec, func(b *arch.Builder) error {
		if err := misc(b); err != nil {
			return err
		}
		if err := b.Expect(5, 7, "10"); err != nil {
			return err
		}
		return b.Literal(5, 5, 7)
	})
	if err != nil {
		return nil, err
	}
	return &PushPop{
		Instruction:  in,
		L:            in.Field(4, 5),
		R:            in.Field(7, 8),
		RegisterList: in.Field(8, 16),
	}, nil
}

// ITForm is the If-Then instruction.
type ITForm struct {
	*arch.Instruction
	Cond, Mask *arch.Field
}

func newIT(mnemonic, spec string) (*ITForm, error) {
	in, err := build(mnemonic, "IT", 16, spec, func(b *arch.Builder) error {
		if err := misc(b); err != nil {
			return err
		}
		if err := b.Expect(4, 8, "1111"); err != nil {
			return err
		}
		return b.Literal(0, 0, 8)
	})
	if err != nil {
		return nil, err
	}
	return &ITForm{
		Instruction: in,
		Cond:        in.Field(8, 12),
		Mask:        in.Field(12, 16),
	}, nil
}

// CB is the 16-bit conditional branch.
type CB struct {
	*arch.Instruction
	Cond, Imm8 *arch.Field
}

func newCB(mnemonic, spec string) (*CB, error) {
	in, err := build(mnemonic, "CB", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 4, "1101"); err != nil {
			return err
		}
		if err := b.Require(b.Spec[4:7] != "111", "condition 111x is not a conditional branch"); err != nil {
			return err
		}
		return b.Literal(0, 0, 4)
	})
	if err != nil {
		return nil, err
	}
	return &CB{
		Instruction: in,
		Cond:        in.Field(4, 8),
		Imm8:        in.Field(8, 16, arch.Signed()),
	}, nil
}

// Offset returns the branch offset relative to the instruction.
func (f *CB) Offset() int {
	return int(f.Imm8.Get())*2 + 4
}

// B is the 16-bit unconditional branch.
type B struct {
	*arch.Instruction
	Imm11 *arch.Field
}

func newB(mnemonic, spec string) (*B, error) {
	in, err := build(mnemonic, "B", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 5, "11100"); err != nil {
			return err
		}
		return b.Literal(0, 0, 5)
	})
	if err != nil {
		return nil, err
	}
	return &B{
		Instruction: in,
		Imm11:       in.Field(5, 16, arch.Signed()),
	}, nil
}

func (f *B) Offset() int {
	return int(f.Imm11.Get())*2 + 4
}

// CB32 is the 32-bit conditional branch. Encoding is S:J2:J1:imm6:imm11.
type CB32 struct {
	*arch.Instruction
	Cond     *arch.Field
	Encoding *arch.Combined
}

func newCB32(mnemonic, spec string) (*CB32, error) {
	in, err := build(mnemonic, "CB32", 32, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 5, "11110"); err != nil {
			return err
		}
		b.Set(0, 5, 0b11110)
		b.Set(16, 18, 0b10)
		b.Set(19, 20, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CB32{
		Instruction: in,
		Cond:        in.Field(6, 10),
		Encoding: arch.MustCombine([]*arch.Field{
			in.Field(5, 6), in.Field(20, 21), in.Field(18, 19), in.Field(10, 16), in.Field(21, 32),
		}, arch.Signed()),
	}, nil
}

func (f *CB32) Offset() int {
	return int(f.Encoding.Get())*2 + 4
}

// B32 is the 32-bit unconditional branch, with or without link. J1 and J2
// hold I1 and I2 inverted unless the offset is negative.
type B32 struct {
	*arch.Instruction
	Link     *arch.Field
	Encoding *arch.Combined
}

func newB32(mnemonic, spec string) (*B32, error) {
	in, err := build(mnemonic, "B32", 32, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 5, "11110"); err != nil {
			return err
		}
		b.Set(0, 5, 0b11110)
		b.Set(16, 17, 1)
		b.Set(19, 20, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &B32{
		Instruction: in,
		Link:        in.Field(17, 18),
		Encoding: arch.MustCombine([]*arch.Field{
			in.Field(5, 6), in.Field(18, 19), in.Field(20, 21), in.Field(6, 16), in.Field(21, 32),
		}, arch.Signed(), arch.InvertWhenPositive(1, 2)),
	}, nil
}

func (f *B32) Offset() int {
	return int(f.Encoding.Get())*2 + 4
}

// SLI is the 16-bit load/store with a 5-bit immediate offset.
type SLI struct {
	*arch.Instruction
	Imm5, Rn, Rt *arch.Field
	Bytemode     *arch.Field
}

func newSLI(mnemonic, spec string) (*SLI, error) {
	in, err := build(mnemonic, "SLI", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 3, "011"); err != nil {
			return err
		}
		return b.Literal(0, 0, 5)
	})
	if err != nil {
		return nil, err
	}
	return &SLI{
		Instruction: in,
		Imm5:        in.Field(5, 10),
		Rn:          in.Field(10, 13),
		Rt:          in.Field(13, 16),
		Bytemode:    in.Field(3, 4),
	}, nil
}

// SLIHW is the 16-bit halfword load/store with immediate offset.
type SLIHW struct {
	*arch.Instruction
	Imm5, Rn, Rt *arch.Field
}

func newSLIHW(mnemonic, spec string) (*SLIHW, error) {
	in, err := build(mnemonic, "SLIHW", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 4, "1000"); err != nil {
			return err
		}
		return b.Literal(0, 0, 5)
	})
	if err != nil {
		return nil, err
	}
	return &SLIHW{
		Instruction: in,
		Imm5:        in.Field(5, 10),
		Rn:          in.Field(10, 13),
		Rt:          in.Field(13, 16),
	}, nil
}

// StrLdr32 covers the 32-bit single register loads and stores. Which
// operands exist depends on the form: P, U, W and Imm8 for the 8-bit
// immediate form, Imm12 for the 12-bit immediate form, Shift and Rm for the
// register form. Wordmode selects byte (0), halfword (1) or word (2)
// access.
type StrLdr32 struct {
	*arch.Instruction
	Rn, Rt   *arch.Field
	Wordmode *arch.Field

	P, U, W *arch.Field
	Imm8    *arch.Field
	Imm12   *arch.Field
	Shift   *arch.Field
	Rm      *arch.Field
}

func strLdrPrefix(b *arch.Builder) error {
	if err := b.Expect(0, 5, "11111"); err != nil {
		return err
	}
	return b.Literal(0, 0, 12)
}

func strLdr(in *arch.Instruction) *StrLdr32 {
	return &StrLdr32{
		Instruction: in,
		Rn:          in.Field(12, 16),
		Rt:          in.Field(16, 20),
		Wordmode:    in.Field(9, 11),
	}
}

func newStrLdrImmT4(mnemonic, spec string) (*StrLdr32, error) {
	in, err := build(mnemonic, "StrLdrImmT4", 32, spec, func(b *arch.Builder) error {
		if err := strLdrPrefix(b); err != nil {
			return err
		}
		p := strings.IndexByte(b.Spec, 'P')
		if err := b.Require(p > 0, "no P bit"); err != nil {
			return err
		}
		return b.Literal(20, p-1, p)
	})
	if err != nil {
		return nil, err
	}
	ret := strLdr(in)
	ret.P = in.Field(21, 22)
	ret.U = in.Field(22, 23)
	ret.W = in.Field(23, 24)
	ret.Imm8 = in.Field(24, 32)
	return ret, nil
}

func newStrLdrRegT2(mnemonic, spec string) (*StrLdr32, error) {
	in, err := build(mnemonic, "StrLdrRegT2", 32, spec, func(b *arch.Builder) error {
		if err := strLdrPrefix(b); err != nil {
			return err
		}
		b.Set(20, 26, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ret := strLdr(in)
	ret.Shift = in.Field(26, 28)
	ret.Rm = in.Field(28, 32)
	return ret, nil
}

func newStrLdrT3(mnemonic, spec string) (*StrLdr32, error) {
	in, err := build(mnemonic, "StrLdrT3", 32, spec, strLdrPrefix)
	if err != nil {
		return nil, err
	}
	ret := strLdr(in)
	ret.Imm12 = in.Field(20, 32)
	return ret, nil
}

// LdrL32 is the 32-bit PC-relative literal load.
type LdrL32 struct {
	*arch.Instruction
	U, Rt, Imm12 *arch.Field
}

func newLdrL32(mnemonic, spec string) (*LdrL32, error) {
	in, err := build(mnemonic, "LdrL32", 32, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 5, "11111"); err != nil {
			return err
		}
		if err := b.Literal(0, 0, 8); err != nil {
			return err
		}
		return b.Literal(9, 9, 16)
	})
	if err != nil {
		return nil, err
	}
	return &LdrL32{
		Instruction: in,
		U:           in.Field(8, 9),
		Rt:          in.Field(16, 20),
		Imm12:       in.Field(20, 32),
	}, nil
}

// StmLdm covers the 16-bit and 32-bit increment-after multiple loads and
// stores. W only exists in the 32-bit form.
type StmLdm struct {
	*arch.Instruction
	Rn, RegisterList *arch.Field
	W                *arch.Field
}

func newStmLdm16(mnemonic, spec string) (*StmLdm, error) {
	in, err := build(mnemonic, "StmiaLdmia", 16, spec, func(b *arch.Builder) error {
		if err := b.Expect(0, 4, "1100"); err != nil {
			return err
		}
		return b.Literal(0, 0, 5)
	})
	if err != nil {
		return nil, err
	}
	return &StmLdm{
		Instruction:  in,
		Rn:           in.Field(5, 8),
		RegisterList: in.Field(8, 16),
	}, nil
}

func newStmLdm32(mnemonic, spec string) (*StmLdm, error) {
	in, err := build(mnemonic, "StmiaLdmiaW", 32, spec, func(b *arch.Builder) error {
		if err := b.Literal(0, 0, 10); err != nil {
			return err
		}
		if err := b.Literal(11, 11, 12); err != nil {
			return err
		}
		b.Set(18, 19, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &StmLdm{
		Instruction:  in,
		W:            in.Field(10, 11),
		Rn:           in.Field(12, 16),
		RegisterList: in.Field(16, 32),
	}, nil
}

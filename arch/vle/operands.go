package vle

import (
	"github.com/apparentlymart/isaenc/arch"
)

// ShortReg is the 4-bit register field of the 16-bit instructions. It
// reaches r0 to r7 and r24 to r31, the latter stored as 8 to 15.
type ShortReg struct {
	*arch.Field
}

func (o ShortReg) Set(v int64) error {
	switch {
	case v >= 0 && v <= 7:
		return o.Field.Set(v)
	case v >= 24 && v <= 31:
		return o.Field.Set(v - 16)
	}
	return arch.Rangef("register r%d is not encodable here (r0 to r7, r24 to r31)", v)
}

func (o ShortReg) Get() int64 {
	v := o.Field.Get()
	if v >= 8 {
		return v + 16
	}
	return v
}

// AltReg is the 4-bit field se_mtar and se_mfar use for r8 to r23.
type AltReg struct {
	*arch.Field
}

func (o AltReg) Set(v int64) error {
	if v < 8 || v > 23 {
		return arch.Rangef("register r%d is not encodable here (r8 to r23)", v)
	}
	return o.Field.Set(v - 8)
}

func (o AltReg) Get() int64 {
	return o.Field.Get() + 8
}

// Offset is a five bit immediate holding 1 to 32, stored minus one.
type Offset struct {
	*arch.Field
}

func (o Offset) Set(v int64) error {
	if v < 1 || v > 32 {
		return arch.Rangef("immediate %d is out of range (1 to 32)", v)
	}
	return o.Field.Set(v - 1)
}

func (o Offset) Get() int64 {
	return o.Field.Get() + 1
}

// Aligned is an operand whose low bits are implied and must be zero:
// branch displacements and the scaled load/store offsets.
type Aligned struct {
	arch.Operand
	Align int64
}

func (o Aligned) Set(v int64) error {
	if v%o.Align != 0 {
		return arch.Rangef("value %d is not a multiple of %d", v, o.Align)
	}
	return o.Operand.Set(v)
}

func displacement(in *arch.Instruction, start, end int) Aligned {
	return Aligned{Operand: in.Field(start, end, arch.Signed(), arch.Shift(1)), Align: 2}
}

func split(in *arch.Instruction, parts [][2]int, opts ...arch.OperandOption) *arch.Combined {
	fields := make([]*arch.Field, len(parts))
	for i, p := range parts {
		fields[i] = in.Field(p[0], p[1])
	}
	return arch.MustCombine(fields, opts...)
}

// i20 is the 20-bit signed immediate of e_li, stored as bits 4-8 of the
// value, one opcode bit, bits 0-3 and then bits 9-19.
func i20(in *arch.Instruction, start int) *arch.Combined {
	return split(in, [][2]int{
		{start + 6, start + 10},
		{start, start + 5},
		{start + 10, start + 21},
	}, arch.Signed())
}

// imm16 is a 16-bit immediate whose top five bits are at start and whose
// other eleven bits are gap bits further on.
func imm16(in *arch.Instruction, start, gap int, opts ...arch.OperandOption) *arch.Combined {
	return split(in, [][2]int{
		{start, start + 5},
		{start + gap, start + gap + 11},
	}, opts...)
}

// sprn is the split special purpose register number of mtspr and mfspr:
// the low five bits come first.
func sprn(in *arch.Instruction, start int) *arch.Combined {
	return split(in, [][2]int{
		{start + 5, start + 10},
		{start, start + 5},
	})
}

// EncodeSCI8 finds the SCI8 encoding of a 32-bit immediate: an 8-bit
// value shifted left by 8*scale bits, with every other bit equal to fill.
func EncodeSCI8(v uint32) (ui8, scale int, fill bool, err error) {
	for _, f := range []bool{false, true} {
		for sc := 0; sc < 4; sc++ {
			shift := uint(8 * sc)
			var rest uint32
			if f {
				rest = ^(uint32(0xff) << shift)
			}
			u := (v >> shift) & 0xff
			if u<<shift|rest == v {
				return int(u), sc, f, nil
			}
		}
	}
	return 0, 0, false, arch.Rangef("%#x is not a scaled 8-bit immediate", v)
}

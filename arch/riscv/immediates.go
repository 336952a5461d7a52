package riscv

import (
	"strconv"
	"strings"

	"github.com/apparentlymart/isaenc/arch"
)

// An immediate spec such as "[11|4|9:8|10|6|7|3:1|5]" lists, from the most
// significant bit of an instruction field down, which bits of the value
// are stored there.
type immSpec struct {
	steps []decodeStep
	width int
	top   int // one past the highest value bit
	low   int // lowest value bit
}

// decodeStep moves one run of bits between an instruction field and the
// value: (field & Mask) >> RightShift gives the value bits, and a negative
// RightShift shifts left instead.
type decodeStep struct {
	Mask       uint64
	RightShift int
	bits       uint64 // the value bits the step covers
}

func rangeMask(top, bottom uint) uint64 {
	return (1 << (top + 1)) - (1 << bottom)
}

func shiftRight(v uint64, n int) uint64 {
	if n < 0 {
		return v << uint(-n)
	}
	return v >> uint(n)
}

func parseImmSpec(raw string) (*immSpec, error) {
	if len(raw) < 3 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil, arch.InvalidArgumentf("invalid immediate spec %q", raw)
	}
	type run struct{ hi, lo int }
	var runs []run
	for _, part := range strings.Split(raw[1:len(raw)-1], "|") {
		rawHi, rawLo := part, ""
		if colon := strings.IndexByte(part, ':'); colon >= 0 {
			rawHi, rawLo = part[:colon], part[colon+1:]
		}
		hi, err := strconv.ParseUint(rawHi, 10, 6)
		if err != nil {
			return nil, arch.InvalidArgumentf("invalid immediate spec %q: bad bit %q", raw, rawHi)
		}
		lo := hi
		if rawLo != "" {
			lo, err = strconv.ParseUint(rawLo, 10, 6)
			if err != nil {
				return nil, arch.InvalidArgumentf("invalid immediate spec %q: bad bit %q", raw, rawLo)
			}
			if lo >= hi {
				return nil, arch.InvalidArgumentf("invalid immediate spec %q: slice %d:%d must run high to low", raw, hi, lo)
			}
		}
		runs = append(runs, run{int(hi), int(lo)})
	}

	ret := &immSpec{low: 64}
	for _, r := range runs {
		ret.width += r.hi - r.lo + 1
	}
	pos := ret.width - 1
	for _, r := range runs {
		n := r.hi - r.lo
		bottom := pos - n
		ret.steps = append(ret.steps, decodeStep{
			Mask:       rangeMask(uint(pos), uint(bottom)),
			RightShift: bottom - r.lo,
			bits:       rangeMask(uint(r.hi), uint(r.lo)),
		})
		if r.hi+1 > ret.top {
			ret.top = r.hi + 1
		}
		if r.lo < ret.low {
			ret.low = r.lo
		}
		pos = bottom - 1
	}
	return ret, nil
}

// encode picks the value bits that belong in the field.
func (s *immSpec) encode(v uint64) uint64 {
	var f uint64
	for _, st := range s.steps {
		f |= shiftRight(v&st.bits, -st.RightShift)
	}
	return f
}

// decode puts the field bits back where they belong in the value.
func (s *immSpec) decode(f uint64) uint64 {
	var v uint64
	for _, st := range s.steps {
		v |= shiftRight(f&st.Mask, st.RightShift)
	}
	return v
}

// BuildImmediates splits v into the instruction fields described by
// specs, returning one field value per spec.
func BuildImmediates(v int64, specs ...string) ([]uint64, error) {
	ret := make([]uint64, 0, len(specs))
	for _, raw := range specs {
		s, err := parseImmSpec(raw)
		if err != nil {
			return nil, err
		}
		ret = append(ret, s.encode(uint64(v)))
	}
	return ret, nil
}

// Imm is an immediate operand scattered over one or more fields of an
// instruction.
type Imm struct {
	parts  []*arch.Field
	specs  []*immSpec
	signed bool
	shift  int
	top    int
}

// immBounds checks that specs together name every bit from the lowest to
// the highest exactly once and returns those bounds.
func immBounds(specs []*immSpec) (shift, top int, err error) {
	shift = 64
	var seen uint64
	for _, s := range specs {
		for _, st := range s.steps {
			if seen&st.bits != 0 {
				return 0, 0, arch.InvalidArgumentf("immediate bits %#x appear twice", seen&st.bits)
			}
			seen |= st.bits
		}
		if s.low < shift {
			shift = s.low
		}
		if s.top > top {
			top = s.top
		}
	}
	if seen != rangeMask(uint(top-1), uint(shift)) {
		return 0, 0, arch.InvalidArgumentf("immediate bits %#x have gaps", seen)
	}
	return shift, top, nil
}

func newImm(parts []*arch.Field, specs []*immSpec, signed bool) (*Imm, error) {
	for i, s := range specs {
		if parts[i].Width() != s.width {
			return nil, arch.FormMismatchf("immediate field of %d bits cannot hold %d value bits", parts[i].Width(), s.width)
		}
	}
	shift, top, err := immBounds(specs)
	if err != nil {
		return nil, err
	}
	return &Imm{parts: parts, specs: specs, signed: signed, shift: shift, top: top}, nil
}

// Width is the number of value bits, not counting the implied low zero
// bits.
func (m *Imm) Width() int {
	return m.top - m.shift
}

// Shift is the number of implied low zero bits.
func (m *Imm) Shift() int {
	return m.shift
}

func (m *Imm) Signed() bool {
	return m.signed
}

func (m *Imm) Get() int64 {
	var v uint64
	for i, s := range m.specs {
		v |= s.decode(uint64(m.parts[i].Get()))
	}
	if m.signed && v>>uint(m.top-1)&1 != 0 {
		v |= ^uint64(0) << uint(m.top)
	}
	return int64(v)
}

func (m *Imm) Set(v int64) error {
	if !arch.Representable(v, m.Width(), m.signed, uint(m.shift)) {
		kind := "an unsigned"
		if m.signed {
			kind = "a signed"
		}
		if m.shift > 0 {
			return arch.Rangef("immediate %d is not %s %d-bit multiple of %d", v, kind, m.top, 1<<uint(m.shift))
		}
		return arch.Rangef("immediate %d does not fit in %s %d-bit field", v, kind, m.top)
	}
	for i, s := range m.specs {
		if err := m.parts[i].Set(int64(s.encode(uint64(v)))); err != nil {
			return err
		}
	}
	return nil
}

// CReg is a 3-bit register field of the compressed instructions, which
// can only name x8 to x15.
type CReg struct {
	*arch.Field
}

func (r CReg) Get() int64 {
	return r.Field.Get() + int64(X8)
}

func (r CReg) Set(v int64) error {
	enc, err := CompactReg(Reg(v))
	if err != nil {
		return err
	}
	return r.Field.Set(int64(enc))
}

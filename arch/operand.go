package arch

import (
	"fmt"

	"github.com/apparentlymart/isaenc/bitvec"
)

// Operand is a named value stored in some bits of an instruction. Get
// decodes the bits currently stored and Set validates and stores a new
// value.
type Operand interface {
	Get() int64
	Set(v int64) error
	Width() int
}

type operandConfig struct {
	signed bool
	shift  uint
	invert []int
}

type OperandOption func(*operandConfig)

// Signed makes an operand interpret its bits as two's complement.
func Signed() OperandOption {
	return func(c *operandConfig) {
		c.signed = true
	}
}

// Shift scales the operand: the stored bits hold the value shifted right
// by n.
func Shift(n uint) OperandOption {
	return func(c *operandConfig) {
		c.shift = n
	}
}

// InvertWhenPositive inverts the given bit positions of a combined
// operand's full pattern (bit 0 being the most significant) when the value
// is not negative. Thumb's 32-bit branch encodes J1 and J2 this way.
func InvertWhenPositive(bits ...int) OperandOption {
	return func(c *operandConfig) {
		c.invert = append(c.invert, bits...)
	}
}

func makeConfig(opts []OperandOption) operandConfig {
	var c operandConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Field is an operand occupying the contiguous bits [Start, End) of an
// instruction.
type Field struct {
	bits       *bitvec.Vector
	Start, End int
	signed     bool
	shift      uint
}

func NewField(bits *bitvec.Vector, start, end int, opts ...OperandOption) *Field {
	c := makeConfig(opts)
	return &Field{
		bits:   bits,
		Start:  start,
		End:    end,
		signed: c.signed,
		shift:  c.shift,
	}
}

func (f *Field) Width() int {
	return f.End - f.Start
}

func (f *Field) Get() int64 {
	var v int64
	if f.signed {
		v = f.bits.Int(f.Start, f.End)
	} else {
		v = int64(f.bits.Uint(f.Start, f.End))
	}
	return v << f.shift
}

func (f *Field) Set(v int64) error {
	eff := v >> f.shift
	if err := checkFits(eff, f.Width(), f.signed); err != nil {
		return err
	}
	f.bits.SetInt(f.Start, f.End, eff)
	return nil
}

// Combined is an operand whose bits are spread over several fields. The
// parts are listed most significant first.
type Combined struct {
	parts  []*Field
	width  int
	signed bool
	shift  uint
	invert []int
}

// NewCombined joins parts into one operand. Signedness and shift belong to
// the combined operand only, so the parts must be plain unsigned fields.
func NewCombined(parts []*Field, opts ...OperandOption) (*Combined, error) {
	c := makeConfig(opts)
	ret := &Combined{
		parts:  parts,
		signed: c.signed,
		shift:  c.shift,
		invert: c.invert,
	}
	for i, p := range parts {
		if p.signed || p.shift != 0 {
			return nil, InvalidArgumentf("part %d of a combined operand must be unsigned and unshifted", i)
		}
		ret.width += p.Width()
	}
	if ret.width > 64 {
		return nil, InvalidArgumentf("combined operand of %d bits is wider than 64 bits", ret.width)
	}
	for _, b := range ret.invert {
		if b < 0 || b >= ret.width {
			return nil, InvalidArgumentf("inverted bit %d outside %d-bit combined operand", b, ret.width)
		}
	}
	return ret, nil
}

// MustCombine is like NewCombined but panics on error. It is for the
// static layouts of instruction forms.
func MustCombine(parts []*Field, opts ...OperandOption) *Combined {
	ret, err := NewCombined(parts, opts...)
	if err != nil {
		panic(err)
	}
	return ret
}

func (c *Combined) Width() int {
	return c.width
}

func (c *Combined) flip(pattern uint64) uint64 {
	for _, b := range c.invert {
		pattern ^= 1 << uint(c.width-1-b)
	}
	return pattern
}

func (c *Combined) Get() int64 {
	var pattern uint64
	for _, p := range c.parts {
		pattern = pattern<<uint(p.Width()) | p.bits.Uint(p.Start, p.End)
	}
	if len(c.invert) > 0 && pattern>>uint(c.width-1)&1 == 0 {
		pattern = c.flip(pattern)
	}
	v := int64(pattern)
	if c.signed && c.width < 64 && pattern>>uint(c.width-1)&1 != 0 {
		v = int64(pattern | ^uint64(0)<<uint(c.width))
	}
	return v << c.shift
}

func (c *Combined) Set(v int64) error {
	eff := v >> c.shift
	if err := checkFits(eff, c.width, c.signed); err != nil {
		return err
	}
	pattern := uint64(eff) & widthMask(c.width)
	if len(c.invert) > 0 && eff >= 0 {
		pattern = c.flip(pattern)
	}
	remain := c.width
	for _, p := range c.parts {
		remain -= p.Width()
		p.bits.SetUint(p.Start, p.End, pattern>>uint(remain))
	}
	return nil
}

func widthMask(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}

func fits(v int64, w int, signed bool) bool {
	switch {
	case w >= 64:
		return signed || v >= 0
	case signed:
		return v >= -(1<<uint(w-1)) && v <= 1<<uint(w-1)-1
	default:
		return v >= 0 && v < 1<<uint(w)
	}
}

func checkFits(v int64, w int, signed bool) error {
	if fits(v, w, signed) {
		return nil
	}
	if w >= 64 {
		return Rangef("value %d does not fit in an unsigned %d-bit field", v, w)
	}
	if signed {
		return Rangef("value %d does not fit in a signed %d-bit field (%d to %d)", v, w, -(int64(1) << uint(w-1)), int64(1)<<uint(w-1)-1)
	}
	return Rangef("value %d does not fit in an unsigned %d-bit field (0 to %d)", v, w, int64(1)<<uint(w)-1)
}

// Representable reports whether v can be stored in a field of the given
// width after being shifted right by shift. Bits lost to the shift must
// be zero.
func Representable(v int64, bits int, signed bool, shift uint) bool {
	if v%(1<<shift) != 0 {
		return false
	}
	return fits(v>>shift, bits, signed)
}

func (f *Field) String() string {
	return fmt.Sprintf("[%d:%d]=%d", f.Start, f.End, f.Get())
}

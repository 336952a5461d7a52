package arch

import (
	"fmt"

	"github.com/apparentlymart/isaenc/bitvec"
)

// Instr is anything that can be serialized into machine code.
type Instr interface {
	Bytes() []byte
	SizeBits() int
	SizeBytes() int
}

// Matcher is implemented by instructions that know which of their bits are
// fixed by the opcode. Both results are in serialization order.
type Matcher interface {
	Match() (test, mask []byte)
}

// Order is the byte order an instruction's bits are serialized in.
type Order int

const (
	// BigEndian writes the bits as they are stored.
	BigEndian Order = iota
	// Halfwords swaps the two bytes of each 16-bit unit.
	Halfwords
	// LittleEndian reverses all of the bytes.
	LittleEndian
)

// Instruction is the storage shared by all fixed-layout encodings. Forms
// attach operands to its bits.
type Instruction struct {
	Mnemonic string
	Addr     uint64

	// Bits holds the encoding, bit 0 being the most significant.
	Bits *bitvec.Vector
	// Mask has a one for every bit the opcode fixes.
	Mask *bitvec.Vector

	Order Order
}

func NewInstruction(mnemonic string, width int, order Order) *Instruction {
	return &Instruction{
		Mnemonic: mnemonic,
		Bits:     bitvec.New(width),
		Mask:     bitvec.New(width),
		Order:    order,
	}
}

// Build creates an instruction whose fixed bits come from matching spec
// against a form.
func Build(mnemonic, form string, width int, order Order, spec string, shape Shape) (*Instruction, error) {
	l, err := ParseLayout(form, width, spec, shape)
	if err != nil {
		return nil, err
	}
	in := NewInstruction(mnemonic, width, order)
	in.Apply(l)
	return in, nil
}

// Apply writes the fixed bits of a layout.
func (in *Instruction) Apply(l *Layout) {
	for _, f := range l.Fixed {
		in.Bits.SetUint(f.Start, f.End, f.Value)
		in.Mask.SetUint(f.Start, f.End, ^uint64(0))
	}
}

// Field attaches an operand to bits [start, end).
func (in *Instruction) Field(start, end int, opts ...OperandOption) *Field {
	return NewField(in.Bits, start, end, opts...)
}

// Fix stores an unsigned constant in bits [start, end) and marks them as
// part of the opcode.
func (in *Instruction) Fix(start, end int, v int64) error {
	if err := in.Field(start, end).Set(v); err != nil {
		return err
	}
	in.Mask.SetUint(start, end, ^uint64(0))
	return nil
}

func (in *Instruction) serialize(v *bitvec.Vector) []byte {
	switch in.Order {
	case Halfwords:
		return v.SwapHalfwords().Bytes()
	case LittleEndian:
		return v.ByteSwap().Bytes()
	default:
		return v.Bytes()
	}
}

func (in *Instruction) Bytes() []byte {
	return in.serialize(in.Bits)
}

func (in *Instruction) SizeBits() int {
	return in.Bits.Len()
}

func (in *Instruction) SizeBytes() int {
	return (in.Bits.Len() + 7) / 8
}

// Opcode returns the instruction bits with every operand bit cleared.
func (in *Instruction) Opcode() uint64 {
	return in.Bits.Uint(0, in.Bits.Len()) & in.Mask.Uint(0, in.Mask.Len())
}

// OpcodeBits returns only the fixed bits, in order, with the operand bits
// squeezed out.
func (in *Instruction) OpcodeBits() *bitvec.Vector {
	var picked []*bitvec.Vector
	for i := 0; i < in.Bits.Len(); i++ {
		if in.Mask.Bit(i) {
			picked = append(picked, in.Bits.Slice(i, i+1))
		}
	}
	return bitvec.Concat(picked...)
}

func (in *Instruction) Match() (test, mask []byte) {
	mask = in.serialize(in.Mask)
	test = in.Bytes()
	for i := range test {
		test[i] &= mask[i]
	}
	return test, mask
}

func (in *Instruction) String() string {
	return fmt.Sprintf("%s %x", in.Mnemonic, in.Bytes())
}

// Raw is an instruction made of arbitrary bytes, for data and encodings
// that have no constructor.
type Raw struct {
	Data []byte
	Addr uint64
}

func (r *Raw) Bytes() []byte {
	ret := make([]byte, len(r.Data))
	copy(ret, r.Data)
	return ret
}

func (r *Raw) SizeBits() int {
	return len(r.Data) * 8
}

func (r *Raw) SizeBytes() int {
	return len(r.Data)
}

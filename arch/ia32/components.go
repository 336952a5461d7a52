package ia32

import (
	"github.com/apparentlymart/isaenc/arch"
	"github.com/apparentlymart/isaenc/bitvec"
)

// Opcode is the opcode of an instruction together with everything that
// goes before it: the operand size prefix, a mandatory prefix and the REX
// byte.
type Opcode struct {
	// Code is the base opcode, one byte or two for the 0F escape.
	Code int
	// Size is the operand size in bits, or zero when the opcode implies
	// it.
	Size int
	// Mandatory is a prefix that is part of the opcode.
	Mandatory []byte

	mode       Mode
	rex        *Rex
	sizePrefix bool
	reg        *regField
}

// NewOpcode returns an opcode for operands of the given size. 16-bit
// operands get the 0x66 prefix and 64-bit ones set REX.W.
func NewOpcode(rex *Rex, mode Mode, code, size int) (*Opcode, error) {
	if err := mode.check(); err != nil {
		return nil, err
	}
	if code < 0 || code > 0xffff {
		return nil, arch.InvalidArgumentf("opcode %#x is neither one nor two bytes", code)
	}
	o := &Opcode{Code: code, Size: size, mode: mode, rex: rex}
	switch {
	case size == 0 || size == 8 || size == 32:
	case size == 16:
		o.sizePrefix = true
	case size == 64 && mode == Long:
		rex.W = true
	default:
		return nil, arch.InvalidArgumentf("%d-bit operands are not available in %s mode", size, mode)
	}
	return o, nil
}

// SetRegister encodes a register in the low three bits of the opcode, its
// fourth bit going to REX.B.
func (o *Opcode) SetRegister(v int) error {
	if o.mode == Protected && v >= 8 {
		return arch.Rangef("register number %d needs REX, which %s mode lacks", v, o.mode)
	}
	if o.reg == nil {
		o.reg = newRegField(&o.rex.B)
	}
	return o.reg.Set(v)
}

// Register returns the register encoded in the opcode, if any.
func (o *Opcode) Register() (int, bool) {
	if o.reg == nil {
		return 0, false
	}
	return o.reg.Get(), true
}

// Effective is the opcode with the encoded register added in.
func (o *Opcode) Effective() int {
	if o.reg == nil {
		return o.Code
	}
	return o.Code + o.reg.Low()
}

func (o *Opcode) bits() (bits, mask *bitvec.Vector) {
	var prefix []byte
	if o.sizePrefix {
		prefix = append(prefix, 0x66)
	}
	prefix = append(prefix, o.Mandatory...)

	code := []byte{byte(o.Effective())}
	if o.Code > 0xff {
		code = []byte{byte(o.Effective() >> 8), byte(o.Effective())}
	}
	codeMask := make([]byte, len(code))
	for i := range codeMask {
		codeMask[i] = 0xff
	}
	if o.reg != nil {
		codeMask[len(codeMask)-1] = 0xf8
	}

	rex, rexMask := o.rex.bits()
	bits = bitvec.Concat(bitvec.FromBytes(prefix), rex, bitvec.FromBytes(code))
	mask = bitvec.Concat(bitvec.FromBytes(ones(len(prefix))), rexMask, bitvec.FromBytes(codeMask))
	return bits, mask
}

func ones(n int) []byte {
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = 0xff
	}
	return ret
}

// ModRM holds the addressing mode and two register fields. Mod 3 makes rm
// a register; the other modes address memory, rm 4 meaning a SIB byte
// follows.
type ModRM struct {
	Mod int

	reg, rm *regField
	fixed   byte
}

func NewModRM(rex *Rex, mod, reg, rm int) (*ModRM, error) {
	if mod < 0 || mod > 3 {
		return nil, arch.Rangef("ModRM mod %d outside 0 to 3", mod)
	}
	m := &ModRM{
		Mod: mod,
		reg: newRegField(&rex.R),
		rm:  newRegField(&rex.B),
	}
	if err := m.SetReg(reg); err != nil {
		return nil, err
	}
	if err := m.SetRM(rm); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ModRM) Reg() int {
	return m.reg.Get()
}

// SetReg stores a register number or opcode extension, maintaining REX.R.
func (m *ModRM) SetReg(v int) error {
	return m.reg.Set(v)
}

func (m *ModRM) RM() int {
	return m.rm.Get()
}

// SetRM stores a register number, maintaining REX.B.
func (m *ModRM) SetRM(v int) error {
	return m.rm.Set(v)
}

// Byte returns the byte as encoded, without the REX extensions.
func (m *ModRM) Byte() byte {
	return byte(m.Mod<<6 | m.reg.Low()<<3 | m.rm.Low())
}

// fixReg marks the reg field as an opcode extension.
func (m *ModRM) fixReg() {
	m.fixed |= 0x38
}

// fixMod marks the mod field as part of the opcode.
func (m *ModRM) fixMod() {
	m.fixed |= 0xc0
}

func (m *ModRM) bits() (bits, mask *bitvec.Vector) {
	bits = bitvec.New(8)
	bits.SetUint(0, 2, uint64(m.Mod))
	bits.SetUint(2, 5, uint64(m.reg.Low()))
	bits.SetUint(5, 8, uint64(m.rm.Low()))
	return bits, bitvec.FromUint(8, uint64(m.fixed))
}

// SIB is the scale, index and base byte of a memory operand.
type SIB struct {
	scale       int
	index, base *regField
}

func NewSIB(rex *Rex, scale, index, base int) (*SIB, error) {
	s := &SIB{
		index: newRegField(&rex.X),
		base:  newRegField(&rex.B),
	}
	if err := s.SetScale(scale); err != nil {
		return nil, err
	}
	if err := s.SetIndex(index); err != nil {
		return nil, err
	}
	if err := s.SetBase(base); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SIB) Scale() int {
	return s.scale
}

// SetScale stores the index multiplier, which must be 1, 2, 4 or 8.
func (s *SIB) SetScale(v int) error {
	if _, ok := scaleBits(v); !ok {
		return arch.InvalidArgumentf("scale %d is not 1, 2, 4 or 8", v)
	}
	s.scale = v
	return nil
}

func (s *SIB) Index() int {
	return s.index.Get()
}

func (s *SIB) SetIndex(v int) error {
	return s.index.Set(v)
}

func (s *SIB) Base() int {
	return s.base.Get()
}

func (s *SIB) SetBase(v int) error {
	return s.base.Set(v)
}

func scaleBits(scale int) (int, bool) {
	switch scale {
	case 1:
		return 0, true
	case 2:
		return 1, true
	case 4:
		return 2, true
	case 8:
		return 3, true
	}
	return 0, false
}

func (s *SIB) Byte() byte {
	ss, _ := scaleBits(s.scale)
	return byte(ss<<6 | s.index.Low()<<3 | s.base.Low())
}

func (s *SIB) bits() (bits, mask *bitvec.Vector) {
	return bitvec.FromUint(8, uint64(s.Byte())), bitvec.New(8)
}

// Displacement is the signed offset of a memory operand, one or four
// bytes long.
type Displacement struct {
	Value int64
	Size  int
}

func NewDisplacement(v int64, size int) (*Displacement, error) {
	if size != 1 && size != 4 {
		return nil, arch.InvalidArgumentf("displacement of %d bytes is not 1 or 4", size)
	}
	if !arch.Representable(v, size*8, true, 0) {
		return nil, arch.Rangef("displacement %d does not fit in %d signed bits", v, size*8)
	}
	return &Displacement{Value: v, Size: size}, nil
}

func (d *Displacement) bits() (bits, mask *bitvec.Vector) {
	return littleEndian(d.Value, d.Size), bitvec.New(d.Size * 8)
}

// Immediate is a signed constant operand of one, two, four or eight
// bytes.
type Immediate struct {
	Value int64
	Size  int
}

func NewImmediate(v int64, size int) (*Immediate, error) {
	switch size {
	case 1, 2, 4, 8:
	default:
		return nil, arch.InvalidArgumentf("immediate of %d bytes is not 1, 2, 4 or 8", size)
	}
	if !arch.Representable(v, size*8, true, 0) {
		return nil, arch.Rangef("immediate %d does not fit in %d signed bits", v, size*8)
	}
	return &Immediate{Value: v, Size: size}, nil
}

func (i *Immediate) bits() (bits, mask *bitvec.Vector) {
	return littleEndian(i.Value, i.Size), bitvec.New(i.Size * 8)
}

func littleEndian(v int64, size int) *bitvec.Vector {
	return bitvec.FromUint(size*8, uint64(v)).ByteSwap()
}

package ia32

import (
	"github.com/apparentlymart/isaenc/arch"
	"github.com/apparentlymart/isaenc/bitvec"
)

// Rex is the REX prefix of one instruction, 0100WRXB. The components of
// the instruction share a pointer to it: the opcode sets W for 64-bit
// operands and the register fields set R, X and B for registers r8 and
// above. The byte is emitted when a flag is set or it has been forced.
type Rex struct {
	W, R, X, B bool

	forced bool
}

// Force emits the prefix even with every flag clear, which selects spl,
// bpl, sil and dil over ah, ch, dh and bh.
func (r *Rex) Force() {
	r.forced = true
}

func (r *Rex) Present() bool {
	return r.forced || r.W || r.R || r.X || r.B
}

func (r *Rex) Byte() byte {
	b := byte(0x40)
	for i, on := range []bool{r.W, r.R, r.X, r.B} {
		if on {
			b |= 1 << uint(3-i)
		}
	}
	return b
}

func (r *Rex) bits() (bits, mask *bitvec.Vector) {
	if !r.Present() {
		return bitvec.New(0), bitvec.New(0)
	}
	// The fixed nibble and W, which follows from the operand size, belong
	// to the opcode.
	return bitvec.FromUint(8, uint64(r.Byte())), bitvec.FromUint(8, 0xf8)
}

// regField is a register field of three bits whose fourth bit lives in
// one of the REX flags.
type regField struct {
	low  int
	ext  bool
	flag *bool
}

func newRegField(flag *bool) *regField {
	return &regField{flag: flag}
}

// Set stores v, setting the REX flag when v is 8 or more. Storing a lower
// value clears the flag again if this field set it.
func (f *regField) Set(v int) error {
	if v < 0 || v > 15 {
		return arch.Rangef("register number %d outside 0 to 15", v)
	}
	if v >= 8 {
		f.low = v - 8
		f.ext = true
		*f.flag = true
		return nil
	}
	f.low = v
	if f.ext {
		f.ext = false
		*f.flag = false
	}
	return nil
}

// Get returns the full register number, REX extension included.
func (f *regField) Get() int {
	if f.ext {
		return f.low + 8
	}
	return f.low
}

// Low returns the three bits stored in the instruction byte.
func (f *regField) Low() int {
	return f.low
}

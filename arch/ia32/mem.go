package ia32

import (
	"github.com/apparentlymart/isaenc/arch"
)

// RM is an operand that can go in the rm field of ModRM: a Register or a
// Mem.
type RM interface {
	rm()
}

// Mem is a memory operand, [Base + Index*Scale + Disp], accessed with the
// given size in bits. Base or Index can be left as the zero Register, but
// not both. A zero Scale with an Index means 1.
type Mem struct {
	Size  int
	Base  Register
	Index Register
	Scale int
	Disp  int64
}

func (Mem) rm() {}

// Validate checks the parts of the expression that do not depend on the
// processor mode.
func (a Mem) Validate() error {
	switch a.Size {
	case 8, 16, 32, 64:
	default:
		return arch.InvalidArgumentf("memory operand size %d is not 8, 16, 32 or 64", a.Size)
	}
	if a.Base.isZero() && a.Index.isZero() {
		return arch.InvalidArgumentf("memory operand needs a base or an index register")
	}
	if a.Index.isZero() && a.Scale != 0 {
		return arch.InvalidArgumentf("memory operand has a scale but no index")
	}
	if !a.Index.isZero() && a.Scale != 0 {
		if _, ok := scaleBits(a.Scale); !ok {
			return arch.InvalidArgumentf("scale %d is not 1, 2, 4 or 8", a.Scale)
		}
	}
	if !arch.Representable(a.Disp, 32, true, 0) {
		return arch.Rangef("displacement %d does not fit in 32 signed bits", a.Disp)
	}
	return nil
}

func (a Mem) scale() int {
	if a.Scale == 0 {
		return 1
	}
	return a.Scale
}

// checkAddrReg verifies that r can form addresses in mode m, which means
// it has the width of the mode.
func (m Mode) checkAddrReg(r Register) error {
	if err := m.checkReg(r); err != nil {
		return err
	}
	if r.Bits != int(m) {
		return arch.InvalidArgumentf("%s cannot form an address in %s mode", r, m)
	}
	return nil
}

// encode returns the ModRM byte, SIB byte and displacement addressing a,
// with reg in the ModRM reg field.
func (a Mem) encode(rex *Rex, m Mode, reg int) (*ModRM, *SIB, *Displacement, error) {
	if err := a.Validate(); err != nil {
		return nil, nil, nil, err
	}
	for _, r := range []Register{a.Base, a.Index} {
		if r.isZero() {
			continue
		}
		if err := m.checkAddrReg(r); err != nil {
			return nil, nil, nil, err
		}
	}

	if a.Index.isZero() {
		base := a.Base.Val()
		if base&7 == 4 {
			return nil, nil, nil, arch.Unimplementedf("%s as a base without an index needs a SIB byte, which is not implemented", a.Base)
		}
		mod, disp, err := dispFor(a.Disp, base&7 == 5)
		if err != nil {
			return nil, nil, nil, err
		}
		modrm, err := NewModRM(rex, mod, reg, base)
		if err != nil {
			return nil, nil, nil, err
		}
		return modrm, nil, disp, nil
	}

	if a.Index.Val() == 4 {
		return nil, nil, nil, arch.Unimplementedf("%s cannot be an index register", a.Index)
	}
	modrm, err := NewModRM(rex, 0, reg, 4)
	if err != nil {
		return nil, nil, nil, err
	}

	if a.Base.isZero() {
		// Without a base, base 5 in mode 0 means a 32-bit displacement.
		sib, err := NewSIB(rex, a.scale(), a.Index.Val(), 5)
		if err != nil {
			return nil, nil, nil, err
		}
		disp, err := NewDisplacement(a.Disp, 4)
		if err != nil {
			return nil, nil, nil, err
		}
		return modrm, sib, disp, nil
	}

	base := a.Base.Val()
	if base&7 == 5 && a.Disp == 0 {
		return nil, nil, nil, arch.Unimplementedf("%s as a SIB base without a displacement is not implemented", a.Base)
	}
	mod, disp, err := dispFor(a.Disp, false)
	if err != nil {
		return nil, nil, nil, err
	}
	modrm.Mod = mod
	sib, err := NewSIB(rex, a.scale(), a.Index.Val(), base)
	if err != nil {
		return nil, nil, nil, err
	}
	return modrm, sib, disp, nil
}

// dispFor picks the ModRM mode for a displacement: none when it is zero,
// one byte when it fits and four otherwise. needsDisp forces a
// displacement for bases whose mode 0 encoding means something else.
func dispFor(v int64, needsDisp bool) (int, *Displacement, error) {
	switch {
	case v == 0 && !needsDisp:
		return 0, nil, nil
	case arch.Representable(v, 8, true, 0):
		d, err := NewDisplacement(v, 1)
		return 1, d, err
	default:
		d, err := NewDisplacement(v, 4)
		return 2, d, err
	}
}

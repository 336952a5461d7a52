package vle

import (
	"github.com/apparentlymart/isaenc/arch"
)

// AutoLoadI loads a 32-bit constant into rd with the fewest bytes:
// se_li for small values, e_li for 20-bit signed ones and otherwise e_lis
// followed by an add of the low half. Constants whose low half is 0x8000
// or more would need the upper half rounded up and are not supported.
func AutoLoadI(rd Reg, imm int64) (*arch.Auto, error) {
	if rd < R0 || rd > R31 {
		return nil, arch.Rangef("AutoLoadI: %s is not a general purpose register", rd)
	}
	if imm < -0x80000000 || imm > 0xffffffff {
		return nil, arch.Rangef("AutoLoadI: %#x does not fit in 32 bits", imm)
	}
	return arch.NewAuto("AutoLoadI", func() ([]arch.Instr, error) {
		in, err := arch.FirstFit(
			func() (arch.Instr, error) { return SeLi(rd, int(imm)) },
			func() (arch.Instr, error) { return ELi(rd, int(imm)) },
		)
		if err == nil {
			return []arch.Instr{in}, nil
		}

		u := uint32(imm)
		upper := u >> 16
		low := int(u & 0xffff)
		if low >= 0x8000 {
			return nil, arch.Unimplementedf("AutoLoadI: %#x needs a negative low half correction", u)
		}
		lis, err := ELis(rd, int(upper))
		if err != nil {
			return nil, err
		}
		if low == 0 {
			return []arch.Instr{lis}, nil
		}
		add, err := arch.FirstFit(
			func() (arch.Instr, error) { return SeAddi(rd, low) },
			func() (arch.Instr, error) { return EAdd16i(rd, rd, low) },
		)
		if err != nil {
			return nil, err
		}
		return []arch.Instr{lis, add}, nil
	}), nil
}

package thumb

import (
	"github.com/apparentlymart/isaenc/arch"
)

// autoArgs sorts the arguments of an Auto constructor by kind, keeping the
// order of the registers and integers.
type autoArgs struct {
	regs  []Reg
	ints  []int
	conds []Cond
	opts  []AccessOption

	// shape records the kind of each positional argument, 'r' for a
	// register and 'i' for an integer.
	shape string
}

func sortArgs(name string, args []interface{}) (autoArgs, error) {
	var ret autoArgs
	for _, a := range args {
		switch v := a.(type) {
		case Cond:
			ret.conds = append(ret.conds, v)
		case AccessOption:
			ret.opts = append(ret.opts, v)
		case arch.Register:
			ret.regs = append(ret.regs, Reg(v.Val()))
			ret.shape += "r"
		default:
			n, ok := arch.IntVal(a)
			if !ok {
				return ret, arch.InvalidArgumentf("%s: unsupported argument %v (%T)", name, a, a)
			}
			ret.ints = append(ret.ints, int(n))
			ret.shape += "i"
		}
	}
	return ret, nil
}

// AutoBranch branches by an offset, conditionally when a Cond is also
// given. It picks the 16-bit encoding when the offset is in its range and
// the 32-bit one otherwise.
func AutoBranch(args ...interface{}) (*arch.Auto, error) {
	a, err := sortArgs("AutoBranch", args)
	if err != nil {
		return nil, err
	}
	if len(a.ints) != 1 {
		return nil, arch.InvalidArgumentf("AutoBranch needs exactly one integer offset")
	}
	if len(args) > 2 || len(a.opts) > 0 || len(a.regs) > 0 {
		return nil, arch.InvalidArgumentf("AutoBranch takes an offset and an optional condition, not %d arguments", len(args))
	}
	if len(args) == 2 && len(a.conds) != 1 {
		return nil, arch.InvalidArgumentf("AutoBranch with two arguments needs a condition")
	}
	offset := a.ints[0]

	if len(a.conds) == 0 {
		return arch.NewAuto("AutoBranch", func() ([]arch.Instr, error) {
			in, err := arch.FirstFit(
				func() (arch.Instr, error) { return BT2(offset) },
				func() (arch.Instr, error) { return BT4(offset) },
			)
			return expanded(in, err)
		}), nil
	}
	cond := a.conds[0]
	return arch.NewAuto("AutoBranch", func() ([]arch.Instr, error) {
		in, err := arch.FirstFit(
			func() (arch.Instr, error) { return BT1(cond, offset) },
			func() (arch.Instr, error) { return BT3(cond, offset) },
		)
		return expanded(in, err)
	}), nil
}

func expanded(in arch.Instr, err error) ([]arch.Instr, error) {
	if err != nil {
		return nil, err
	}
	return []arch.Instr{in}, nil
}

// access is one of the load/store instruction families AutoStore and
// AutoLoad choose from.
type access struct {
	name             string
	word, half, byte func(rt, rn Reg, offset int) (arch.Instr, error)
	imm8, imm12      func(rt, rn Reg, offset int, opts ...AccessOption) (*StrLdr32, error)
	reg              func(rt, rn, rm Reg, opts ...AccessOption) (*StrLdr32, error)
	literal          func(rt Reg, offset int) (*LdrL32, error)
}

var storeAccess = access{
	name:  "AutoStore",
	word:  func(rt, rn Reg, off int) (arch.Instr, error) { return Str(rt, rn, off) },
	half:  func(rt, rn Reg, off int) (arch.Instr, error) { return Strh(rt, rn, off) },
	byte:  func(rt, rn Reg, off int) (arch.Instr, error) { return Strb(rt, rn, off) },
	imm8:  StrW,
	imm12: StrWImm12,
	reg:   StrWReg,
}

var loadAccess = access{
	name:    "AutoLoad",
	word:    func(rt, rn Reg, off int) (arch.Instr, error) { return Ldr(rt, rn, off) },
	half:    func(rt, rn Reg, off int) (arch.Instr, error) { return Ldrh(rt, rn, off) },
	byte:    func(rt, rn Reg, off int) (arch.Instr, error) { return Ldrb(rt, rn, off) },
	imm8:    LdrW,
	imm12:   LdrWImm12,
	reg:     LdrWReg,
	literal: LdrWLiteral,
}

// AutoStore stores rt at an address given either as (rt, rn, offset) or
// as (rt, rn, rm), followed by any AccessOption values. Positive offsets
// without write-back use the smallest encoding that fits.
func AutoStore(args ...interface{}) (*arch.Auto, error) {
	return autoAccess(storeAccess, args)
}

// AutoLoad is AutoStore for loads. It also accepts (rt, offset) for a
// PC-relative literal load.
func AutoLoad(args ...interface{}) (*arch.Auto, error) {
	return autoAccess(loadAccess, args)
}

func autoAccess(acc access, args []interface{}) (*arch.Auto, error) {
	a, err := sortArgs(acc.name, args)
	if err != nil {
		return nil, err
	}
	if len(a.conds) > 0 {
		return nil, arch.InvalidArgumentf("%s does not take a condition", acc.name)
	}
	cfg, err := accessFor(a.opts)
	if err != nil {
		return nil, err
	}

	switch {
	case a.shape == "rrr":
		rt, rn, rm := a.regs[0], a.regs[1], a.regs[2]
		return arch.NewAuto(acc.name, func() ([]arch.Instr, error) {
			return expanded(acc.reg(rt, rn, rm, a.opts...))
		}), nil

	case a.shape == "rri":
		mode, err := cfg.addressing()
		if err != nil {
			return nil, err
		}
		rt, rn, offset := a.regs[0], a.regs[1], a.ints[0]
		return arch.NewAuto(acc.name, func() ([]arch.Instr, error) {
			if mode != offsetMode || offset < 0 {
				return expanded(acc.imm8(rt, rn, offset, a.opts...))
			}
			short := acc.word
			switch {
			case cfg.byte:
				short = acc.byte
			case cfg.hword:
				short = acc.half
			}
			return expanded(arch.FirstFit(
				func() (arch.Instr, error) { return short(rt, rn, offset) },
				func() (arch.Instr, error) { return acc.imm12(rt, rn, offset, a.opts...) },
			))
		}), nil

	case a.shape == "ri" && acc.literal != nil && len(a.opts) == 0:
		rt, offset := a.regs[0], a.ints[0]
		return arch.NewAuto(acc.name, func() ([]arch.Instr, error) {
			return expanded(acc.literal(rt, offset))
		}), nil
	}
	return nil, arch.InvalidArgumentf("%s: unsupported argument kinds %q", acc.name, a.shape)
}

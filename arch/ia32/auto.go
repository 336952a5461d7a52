package ia32

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/isaenc/arch"
)

// eager builds the single instruction an Auto stands for right away, so
// that bad operands fail the Auto constructor.
func eager(name string, build func() (*Instruction, error)) (*arch.Auto, error) {
	in, err := build()
	if err != nil {
		return nil, err
	}
	return arch.NewAuto(name, func() ([]arch.Instr, error) {
		return []arch.Instr{in}, nil
	}), nil
}

func badArgs(name string, args ...interface{}) error {
	kinds := make([]string, len(args))
	for i, a := range args {
		kinds[i] = fmt.Sprintf("%T", a)
	}
	return arch.InvalidArgumentf("%s: unsupported operand types (%s)", name, strings.Join(kinds, ", "))
}

// Mov moves src into dst, each a Register, a Mem or (for src) an integer.
func (m Mode) Mov(dst, src interface{}) (*arch.Auto, error) {
	n, isInt := arch.IntVal(src)
	switch d := dst.(type) {
	case Register:
		switch s := src.(type) {
		case Register:
			return eager("Mov", func() (*Instruction, error) { return m.MovRegToReg(d, s) })
		case Mem:
			return eager("Mov", func() (*Instruction, error) { return m.MovMemToReg(d, s) })
		}
		if isInt {
			return eager("Mov", func() (*Instruction, error) { return m.MovImmToReg(d, n) })
		}
	case Mem:
		if s, ok := src.(Register); ok {
			return eager("Mov", func() (*Instruction, error) { return m.MovRegToMem(d, s) })
		}
		if isInt {
			return eager("Mov", func() (*Instruction, error) { return m.MovImmToMem(d, n) })
		}
	}
	return nil, badArgs("Mov", dst, src)
}

// Add adds src to dst.
func (m Mode) Add(dst, src interface{}) (*arch.Auto, error) {
	n, isInt := arch.IntVal(src)
	switch d := dst.(type) {
	case Register:
		switch s := src.(type) {
		case Register:
			return eager("Add", func() (*Instruction, error) { return m.AddRegToReg(d, s) })
		case Mem:
			return eager("Add", func() (*Instruction, error) { return m.AddMemToReg(d, s) })
		}
		if isInt {
			return eager("Add", func() (*Instruction, error) { return m.AddImmToReg(d, n) })
		}
	case Mem:
		if s, ok := src.(Register); ok {
			return eager("Add", func() (*Instruction, error) { return m.AddRegToMem(d, s) })
		}
		if isInt {
			return eager("Add", func() (*Instruction, error) { return m.AddImmToMem(d, n) })
		}
	}
	return nil, badArgs("Add", dst, src)
}

// Jmp jumps to an address held in a register or stored in memory.
func (m Mode) Jmp(target interface{}) (*arch.Auto, error) {
	switch t := target.(type) {
	case Register:
		return eager("Jmp", func() (*Instruction, error) { return m.JmpToReg(t) })
	case Mem:
		return eager("Jmp", func() (*Instruction, error) { return m.JmpToMem(t) })
	}
	return nil, badArgs("Jmp", target)
}

// Jcc jumps by rel when cond holds, with an 8-bit displacement when it
// fits and a 32-bit one otherwise.
func (m Mode) Jcc(cond Cond, rel int64) (*arch.Auto, error) {
	in, err := arch.FirstFit(
		func() (arch.Instr, error) { return m.JmpCond(cond, rel) },
		func() (arch.Instr, error) { return m.JmpCondNear(cond, rel) },
	)
	if err != nil {
		return nil, err
	}
	return arch.NewAuto("Jcc", func() ([]arch.Instr, error) {
		return []arch.Instr{in}, nil
	}), nil
}

func (m Mode) Shl(target, count interface{}) (*arch.Auto, error) {
	return m.autoShift("Shl", OpShl, target, count)
}

func (m Mode) Sal(target, count interface{}) (*arch.Auto, error) {
	return m.autoShift("Sal", OpSal, target, count)
}

func (m Mode) Shr(target, count interface{}) (*arch.Auto, error) {
	return m.autoShift("Shr", OpShr, target, count)
}

func (m Mode) Sar(target, count interface{}) (*arch.Auto, error) {
	return m.autoShift("Sar", OpSar, target, count)
}

// autoShift shifts by cl when count is a register, and otherwise by a
// constant, using the short form for a count of one.
func (m Mode) autoShift(name string, op ShiftOp, target, count interface{}) (*arch.Auto, error) {
	t, ok := target.(RM)
	if !ok {
		return nil, badArgs(name, target, count)
	}
	if r, ok := count.(Register); ok {
		if r != CL {
			return nil, arch.InvalidArgumentf("%s: a shift count register must be cl, not %s", name, r)
		}
		return eager(name, func() (*Instruction, error) { return m.ShiftByCL(op, t) })
	}
	n, ok := arch.IntVal(count)
	if !ok {
		return nil, badArgs(name, target, count)
	}
	if n == 1 {
		return eager(name, func() (*Instruction, error) { return m.ShiftByOne(op, t) })
	}
	return eager(name, func() (*Instruction, error) { return m.ShiftByImm(op, t, int(n)) })
}

func (m Mode) And(dst, src interface{}) (*arch.Auto, error) {
	return m.autoLogic("And", OpAnd, dst, src)
}

func (m Mode) Or(dst, src interface{}) (*arch.Auto, error) {
	return m.autoLogic("Or", OpOr, dst, src)
}

func (m Mode) Xor(dst, src interface{}) (*arch.Auto, error) {
	return m.autoLogic("Xor", OpXor, dst, src)
}

func (m Mode) autoLogic(name string, op LogicOp, dst, src interface{}) (*arch.Auto, error) {
	d, ok := dst.(RM)
	if !ok {
		return nil, badArgs(name, dst, src)
	}
	switch s := src.(type) {
	case Register:
		return eager(name, func() (*Instruction, error) { return m.LogicRegToRM(op, d, s) })
	case Mem:
		r, ok := d.(Register)
		if !ok {
			return nil, arch.InvalidArgumentf("%s: at most one operand can be in memory", name)
		}
		return eager(name, func() (*Instruction, error) { return m.LogicMemToReg(op, r, s) })
	}
	if n, ok := arch.IntVal(src); ok {
		return eager(name, func() (*Instruction, error) { return m.LogicImm(op, d, n) })
	}
	return nil, badArgs(name, dst, src)
}

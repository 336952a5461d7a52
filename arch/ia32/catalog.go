package ia32

import (
	"github.com/apparentlymart/isaenc/arch"
)

func entry(group, mnemonic string, build func() (*Instruction, error)) arch.Entry {
	return arch.Entry{
		Arch:     "ia32",
		Group:    group,
		Mnemonic: mnemonic,
		Build:    func() (arch.Instr, error) { return build() },
	}
}

// Catalog returns one long mode sample of every instruction in the
// package.
func Catalog() []arch.Entry {
	m := Long
	mem := Mem{Size: 64, Base: RAX}
	return []arch.Entry{
		entry("move", "MovRegToReg", func() (*Instruction, error) { return m.MovRegToReg(RAX, RAX) }),
		entry("move", "MovRegToMem", func() (*Instruction, error) { return m.MovRegToMem(mem, RAX) }),
		entry("move", "MovMemToReg", func() (*Instruction, error) { return m.MovMemToReg(RAX, mem) }),
		entry("move", "MovImmToReg", func() (*Instruction, error) { return m.MovImmToReg(RAX, 0) }),
		entry("move", "MovImmToMem", func() (*Instruction, error) { return m.MovImmToMem(mem, 0) }),

		entry("arithmetic", "AddImmToReg", func() (*Instruction, error) { return m.AddImmToReg(RAX, 0) }),
		entry("arithmetic", "AddImmToMem", func() (*Instruction, error) { return m.AddImmToMem(mem, 0) }),
		entry("arithmetic", "AddRegToReg", func() (*Instruction, error) { return m.AddRegToReg(RAX, RAX) }),
		entry("arithmetic", "AddRegToMem", func() (*Instruction, error) { return m.AddRegToMem(mem, RAX) }),
		entry("arithmetic", "AddMemToReg", func() (*Instruction, error) { return m.AddMemToReg(RAX, mem) }),

		entry("branch", "JmpToReg", func() (*Instruction, error) { return m.JmpToReg(RAX) }),
		entry("branch", "JmpToMem", func() (*Instruction, error) { return m.JmpToMem(mem) }),
		entry("branch", "JmpCond", func() (*Instruction, error) { return m.JmpCond(E, 0) }),
		entry("branch", "JmpCondNear", func() (*Instruction, error) { return m.JmpCondNear(E, 0) }),

		entry("shift", "ShiftByImm", func() (*Instruction, error) { return m.ShiftByImm(OpShl, RAX, 2) }),
		entry("shift", "ShiftByOne", func() (*Instruction, error) { return m.ShiftByOne(OpShl, RAX) }),
		entry("shift", "ShiftByCL", func() (*Instruction, error) { return m.ShiftByCL(OpShl, RAX) }),

		entry("logic", "LogicImm", func() (*Instruction, error) { return m.LogicImm(OpAnd, RAX, 0) }),
		entry("logic", "LogicRegToRM", func() (*Instruction, error) { return m.LogicRegToRM(OpAnd, RAX, RAX) }),
		entry("logic", "LogicMemToReg", func() (*Instruction, error) { return m.LogicMemToReg(OpAnd, RAX, mem) }),
	}
}

package thumb

import (
	"github.com/apparentlymart/isaenc/arch"
)

func entry(group, mnemonic string, build func() (arch.Instr, error)) arch.Entry {
	return arch.Entry{Arch: "thumb", Group: group, Mnemonic: mnemonic, Build: build}
}

// Catalog returns one sample of every instruction in the package.
func Catalog() []arch.Entry {
	return []arch.Entry{
		entry("arithmetic", "AddImmT1", func() (arch.Instr, error) { return AddImmT1(R0, R0, 0) }),
		entry("arithmetic", "AddImmT2", func() (arch.Instr, error) { return AddImmT2(R0, 0) }),
		entry("arithmetic", "AddImmT3", func() (arch.Instr, error) { return AddImmT3(R0, R0, 0, false) }),
		entry("arithmetic", "AddImmT4", func() (arch.Instr, error) { return AddImmT4(R0, R0, 0) }),
		entry("arithmetic", "SubImmT1", func() (arch.Instr, error) { return SubImmT1(R0, R0, 0) }),
		entry("arithmetic", "SubImmT2", func() (arch.Instr, error) { return SubImmT2(R0, 0) }),
		entry("arithmetic", "SubImmT3", func() (arch.Instr, error) { return SubImmT3(R0, R0, 0, false) }),
		entry("arithmetic", "SubImmT4", func() (arch.Instr, error) { return SubImmT4(R0, R0, 0) }),
		entry("arithmetic", "AddsReg", func() (arch.Instr, error) { return AddsReg(R0, R0, R0) }),
		entry("arithmetic", "SubsReg", func() (arch.Instr, error) { return SubsReg(R0, R0, R0) }),

		entry("move", "MovT1", func() (arch.Instr, error) { return MovT1(R0, R0) }),
		entry("move", "MovT2", func() (arch.Instr, error) { return MovT2(R0, R0) }),
		entry("move", "LslsImm", func() (arch.Instr, error) { return LslsImm(R0, R0, 1) }),
		entry("move", "LsrsImm", func() (arch.Instr, error) { return LsrsImm(R0, R0, 1) }),
		entry("move", "AsrImm", func() (arch.Instr, error) { return AsrImm(R0, R0, 1) }),

		entry("branch", "IT", func() (arch.Instr, error) { return IT(EQ, "") }),
		entry("branch", "BT1", func() (arch.Instr, error) { return BT1(EQ, 4) }),
		entry("branch", "BT2", func() (arch.Instr, error) { return BT2(4) }),
		entry("branch", "BT3", func() (arch.Instr, error) { return BT3(EQ, 4) }),
		entry("branch", "BT4", func() (arch.Instr, error) { return BT4(4) }),
		entry("branch", "BLT1", func() (arch.Instr, error) { return BLT1(4) }),

		entry("memory", "Str", func() (arch.Instr, error) { return Str(R0, R0, 0) }),
		entry("memory", "Strh", func() (arch.Instr, error) { return Strh(R0, R0, 0) }),
		entry("memory", "Strb", func() (arch.Instr, error) { return Strb(R0, R0, 0) }),
		entry("memory", "Ldr", func() (arch.Instr, error) { return Ldr(R0, R0, 0) }),
		entry("memory", "Ldrh", func() (arch.Instr, error) { return Ldrh(R0, R0, 0) }),
		entry("memory", "Ldrb", func() (arch.Instr, error) { return Ldrb(R0, R0, 0) }),
		entry("memory", "StrW", func() (arch.Instr, error) { return StrW(R0, R0, 0) }),
		entry("memory", "LdrW", func() (arch.Instr, error) { return LdrW(R0, R0, 0) }),
		entry("memory", "StrWImm12", func() (arch.Instr, error) { return StrWImm12(R0, R0, 0) }),
		entry("memory", "LdrWImm12", func() (arch.Instr, error) { return LdrWImm12(R0, R0, 0) }),
		entry("memory", "StrWReg", func() (arch.Instr, error) { return StrWReg(R0, R0, R0) }),
		entry("memory", "LdrWReg", func() (arch.Instr, error) { return LdrWReg(R0, R0, R0) }),
		entry("memory", "LdrWLiteral", func() (arch.Instr, error) { return LdrWLiteral(R0, 0) }),
		entry("memory", "Stmia", func() (arch.Instr, error) { return Stmia(R0, nil) }),
		entry("memory", "Ldmia", func() (arch.Instr, error) { return Ldmia(R0, nil) }),
		entry("memory", "StmiaW", func() (arch.Instr, error) { return StmiaW(R0, nil, false) }),
		entry("memory", "LdmiaW", func() (arch.Instr, error) { return LdmiaW(R0, nil, false) }),

		entry("logic", "Ands", func() (arch.Instr, error) { return Ands(R0, R0) }),
		entry("logic", "Orrs", func() (arch.Instr, error) { return Orrs(R0, R0) }),
		entry("logic", "Eors", func() (arch.Instr, error) { return Eors(R0, R0) }),
		entry("logic", "AndImm", func() (arch.Instr, error) { return AndImm(R0, R0, 0) }),
		entry("logic", "OrrImm", func() (arch.Instr, error) { return OrrImm(R0, R0, 0) }),
		entry("logic", "EorImm", func() (arch.Instr, error) { return EorImm(R0, R0, 0) }),

		entry("misc", "Uxtb", func() (arch.Instr, error) { return Uxtb(R0, R0) }),
		entry("misc", "Push", func() (arch.Instr, error) { return Push(nil) }),
		entry("misc", "Pop", func() (arch.Instr, error) { return Pop(nil) }),
	}
}

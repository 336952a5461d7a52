package vle

import (
	"github.com/apparentlymart/isaenc/arch"
)

func entry(group, mnemonic string, build func() (arch.Instr, error)) arch.Entry {
	return arch.Entry{Arch: "vle", Group: group, Mnemonic: mnemonic, Build: build}
}

// Catalog returns one sample of every instruction in the package. SeSubf
// has no encoding and is left out.
func Catalog() []arch.Entry {
	return []arch.Entry{
		entry("arithmetic", "SeAddi", func() (arch.Instr, error) { return SeAddi(R0, 1) }),
		entry("arithmetic", "SeSubi", func() (arch.Instr, error) { return SeSubi(R0, 1) }),
		entry("arithmetic", "SeSubiRC", func() (arch.Instr, error) { return SeSubiRC(R0, 1) }),
		entry("arithmetic", "SeAdd", func() (arch.Instr, error) { return SeAdd(R0, R0) }),
		entry("arithmetic", "SeSub", func() (arch.Instr, error) { return SeSub(R0, R0) }),
		entry("arithmetic", "SeMullw", func() (arch.Instr, error) { return SeMullw(R0, R0) }),
		entry("arithmetic", "SeNeg", func() (arch.Instr, error) { return SeNeg(R0) }),
		entry("arithmetic", "EAdd16i", func() (arch.Instr, error) { return EAdd16i(R0, R0, 0) }),
		entry("arithmetic", "EMull2i", func() (arch.Instr, error) { return EMull2i(R0, 0) }),
		entry("arithmetic", "EAdd2i", func() (arch.Instr, error) { return EAdd2i(R0, 0) }),
		entry("arithmetic", "EAdd2is", func() (arch.Instr, error) { return EAdd2is(R0, 0) }),

		entry("bitwise", "SeAndi", func() (arch.Instr, error) { return SeAndi(R0, 0) }),
		entry("bitwise", "SeSlwi", func() (arch.Instr, error) { return SeSlwi(R0, 0) }),
		entry("bitwise", "SeSrwi", func() (arch.Instr, error) { return SeSrwi(R0, 0) }),
		entry("bitwise", "SeSrawi", func() (arch.Instr, error) { return SeSrawi(R0, 0) }),
		entry("bitwise", "SeNot", func() (arch.Instr, error) { return SeNot(R0) }),
		entry("bitwise", "EAndi", func() (arch.Instr, error) { return EAndi(R0, R0, 0) }),
		entry("bitwise", "EAndiRC", func() (arch.Instr, error) { return EAndiRC(R0, R0, 0) }),
		entry("bitwise", "EOri", func() (arch.Instr, error) { return EOri(R0, R0, 0) }),
		entry("bitwise", "EXori", func() (arch.Instr, error) { return EXori(R0, R0, 0) }),
		entry("bitwise", "EAnd2i", func() (arch.Instr, error) { return EAnd2i(R0, 0) }),
		entry("bitwise", "EOr2i", func() (arch.Instr, error) { return EOr2i(R0, 0) }),

		entry("move", "SeMr", func() (arch.Instr, error) { return SeMr(R0, R0) }),
		entry("move", "SeMtar", func() (arch.Instr, error) { return SeMtar(R8, R0) }),
		entry("move", "SeMfar", func() (arch.Instr, error) { return SeMfar(R0, R8) }),
		entry("move", "SeMtctr", func() (arch.Instr, error) { return SeMtctr(R0) }),
		entry("move", "SeMfctr", func() (arch.Instr, error) { return SeMfctr(R0) }),
		entry("move", "SeMtlr", func() (arch.Instr, error) { return SeMtlr(R0) }),
		entry("move", "SeMflr", func() (arch.Instr, error) { return SeMflr(R0) }),
		entry("move", "Mtspr", func() (arch.Instr, error) { return Mtspr(0, R0) }),
		entry("move", "Mfspr", func() (arch.Instr, error) { return Mfspr(R0, 0) }),
		entry("move", "Mtcrf", func() (arch.Instr, error) { return Mtcrf(0, R0) }),
		entry("move", "Mfcr", func() (arch.Instr, error) { return Mfcr(R0) }),
		entry("move", "Wrteei", func() (arch.Instr, error) { return Wrteei(false) }),

		entry("compare", "SeCmp", func() (arch.Instr, error) { return SeCmp(R0, R0) }),
		entry("compare", "SeCmpl", func() (arch.Instr, error) { return SeCmpl(R0, R0) }),
		entry("compare", "SeCmph", func() (arch.Instr, error) { return SeCmph(R0, R0) }),
		entry("compare", "SeCmphl", func() (arch.Instr, error) { return SeCmphl(R0, R0) }),
		entry("compare", "SeCmpli", func() (arch.Instr, error) { return SeCmpli(R0, 1) }),
		entry("compare", "SeCmpi", func() (arch.Instr, error) { return SeCmpi(R0, 0) }),

		entry("branch", "EB", func() (arch.Instr, error) { return EB(0) }),
		entry("branch", "EBl", func() (arch.Instr, error) { return EBl(0) }),
		entry("branch", "EBc", func() (arch.Instr, error) { return EBc(IfTrue, EQ, 0) }),
		entry("branch", "EBeq", func() (arch.Instr, error) { return EBeq(0) }),
		entry("branch", "EBne", func() (arch.Instr, error) { return EBne(0) }),
		entry("branch", "EBgt", func() (arch.Instr, error) { return EBgt(0) }),
		entry("branch", "EBlt", func() (arch.Instr, error) { return EBlt(0) }),
		entry("branch", "SeB", func() (arch.Instr, error) { return SeB(0) }),
		entry("branch", "SeBl", func() (arch.Instr, error) { return SeBl(0) }),
		entry("branch", "SeBc", func() (arch.Instr, error) { return SeBc(IfTrue, EQ, 0) }),
		entry("branch", "SeBeq", func() (arch.Instr, error) { return SeBeq(0) }),
		entry("branch", "SeBne", func() (arch.Instr, error) { return SeBne(0) }),
		entry("branch", "SeBlt", func() (arch.Instr, error) { return SeBlt(0) }),
		entry("branch", "SeBgt", func() (arch.Instr, error) { return SeBgt(0) }),
		entry("branch", "SeBlr", func() (arch.Instr, error) { return SeBlr() }),
		entry("branch", "SeBlrl", func() (arch.Instr, error) { return SeBlrl() }),
		entry("branch", "SeBctr", func() (arch.Instr, error) { return SeBctr() }),
		entry("branch", "SeBctrl", func() (arch.Instr, error) { return SeBctrl() }),
		entry("system", "SeIsync", func() (arch.Instr, error) { return SeIsync() }),
		entry("system", "SeRfi", func() (arch.Instr, error) { return SeRfi() }),

		entry("memory", "EStw", func() (arch.Instr, error) { return EStw(R0, R0, 0) }),
		entry("memory", "ELwz", func() (arch.Instr, error) { return ELwz(R0, R0, 0) }),
		entry("memory", "EStb", func() (arch.Instr, error) { return EStb(R0, R0, 0) }),
		entry("memory", "ELbz", func() (arch.Instr, error) { return ELbz(R0, R0, 0) }),
		entry("memory", "SeStw", func() (arch.Instr, error) { return SeStw(R0, R0, 0) }),
		entry("memory", "SeSth", func() (arch.Instr, error) { return SeSth(R0, R0, 0) }),
		entry("memory", "SeStb", func() (arch.Instr, error) { return SeStb(R0, R0, 0) }),
		entry("memory", "SeLwz", func() (arch.Instr, error) { return SeLwz(R0, R0, 0) }),
		entry("memory", "SeLhz", func() (arch.Instr, error) { return SeLhz(R0, R0, 0) }),
		entry("memory", "SeLbz", func() (arch.Instr, error) { return SeLbz(R0, R0, 0) }),
		entry("memory", "EStmw", func() (arch.Instr, error) { return EStmw(R0, R0, 0) }),
		entry("memory", "ELmw", func() (arch.Instr, error) { return ELmw(R0, R0, 0) }),

		entry("immediate", "ELi", func() (arch.Instr, error) { return ELi(R0, 0) }),
		entry("immediate", "ELis", func() (arch.Instr, error) { return ELis(R0, 0) }),
		entry("immediate", "SeLi", func() (arch.Instr, error) { return SeLi(R0, 0) }),
	}
}

package riscv

import (
	"github.com/apparentlymart/isaenc/arch"
)

func entry(group, mnemonic string, build func() (arch.Instr, error)) arch.Entry {
	return arch.Entry{Arch: "riscv", Group: group, Mnemonic: mnemonic, Build: build}
}

// Catalog returns one sample of every RV32I and RVC instruction in the
// package.
func Catalog() []arch.Entry {
	return []arch.Entry{
		entry("immediate", "Addi", func() (arch.Instr, error) { return Addi(X1, X1, 0) }),
		entry("immediate", "Slti", func() (arch.Instr, error) { return Slti(X1, X1, 0) }),
		entry("immediate", "Sltiu", func() (arch.Instr, error) { return Sltiu(X1, X1, 0) }),
		entry("immediate", "Xori", func() (arch.Instr, error) { return Xori(X1, X1, 0) }),
		entry("immediate", "Ori", func() (arch.Instr, error) { return Ori(X1, X1, 0) }),
		entry("immediate", "Andi", func() (arch.Instr, error) { return Andi(X1, X1, 0) }),
		entry("immediate", "Slli", func() (arch.Instr, error) { return Slli(X1, X1, 0) }),
		entry("immediate", "Srli", func() (arch.Instr, error) { return Srli(X1, X1, 0) }),
		entry("immediate", "Srai", func() (arch.Instr, error) { return Srai(X1, X1, 0) }),
		entry("immediate", "Lui", func() (arch.Instr, error) { return Lui(X1, 0) }),
		entry("immediate", "Auipc", func() (arch.Instr, error) { return Auipc(X1, 0) }),

		entry("register", "Add", func() (arch.Instr, error) { return Add(X1, X1, X1) }),
		entry("register", "Sub", func() (arch.Instr, error) { return Sub(X1, X1, X1) }),
		entry("register", "Sll", func() (arch.Instr, error) { return Sll(X1, X1, X1) }),
		entry("register", "Slt", func() (arch.Instr, error) { return Slt(X1, X1, X1) }),
		entry("register", "Sltu", func() (arch.Instr, error) { return Sltu(X1, X1, X1) }),
		entry("register", "Xor", func() (arch.Instr, error) { return Xor(X1, X1, X1) }),
		entry("register", "Srl", func() (arch.Instr, error) { return Srl(X1, X1, X1) }),
		entry("register", "Sra", func() (arch.Instr, error) { return Sra(X1, X1, X1) }),
		entry("register", "Or", func() (arch.Instr, error) { return Or(X1, X1, X1) }),
		entry("register", "And", func() (arch.Instr, error) { return And(X1, X1, X1) }),

		entry("branch", "Jal", func() (arch.Instr, error) { return Jal(X1, 0) }),
		entry("branch", "Jalr", func() (arch.Instr, error) { return Jalr(X1, X1, 0) }),
		entry("branch", "Beq", func() (arch.Instr, error) { return Beq(X1, X1, 0) }),
		entry("branch", "Bne", func() (arch.Instr, error) { return Bne(X1, X1, 0) }),
		entry("branch", "Blt", func() (arch.Instr, error) { return Blt(X1, X1, 0) }),
		entry("branch", "Bge", func() (arch.Instr, error) { return Bge(X1, X1, 0) }),
		entry("branch", "Bltu", func() (arch.Instr, error) { return Bltu(X1, X1, 0) }),
		entry("branch", "Bgeu", func() (arch.Instr, error) { return Bgeu(X1, X1, 0) }),

		entry("memory", "Lb", func() (arch.Instr, error) { return Lb(X1, X1, 0) }),
		entry("memory", "Lh", func() (arch.Instr, error) { return Lh(X1, X1, 0) }),
		entry("memory", "Lw", func() (arch.Instr, error) { return Lw(X1, X1, 0) }),
		entry("memory", "Lbu", func() (arch.Instr, error) { return Lbu(X1, X1, 0) }),
		entry("memory", "Lhu", func() (arch.Instr, error) { return Lhu(X1, X1, 0) }),
		entry("memory", "Sb", func() (arch.Instr, error) { return Sb(X1, 0, X1) }),
		entry("memory", "Sh", func() (arch.Instr, error) { return Sh(X1, 0, X1) }),
		entry("memory", "Sw", func() (arch.Instr, error) { return Sw(X1, 0, X1) }),
		entry("memory", "Fence", func() (arch.Instr, error) { return Fence(All, All) }),
		entry("memory", "FenceI", func() (arch.Instr, error) { return FenceI() }),

		entry("system", "Csrrw", func() (arch.Instr, error) { return Csrrw(X1, Mstatus, X1) }),
		entry("system", "Csrrs", func() (arch.Instr, error) { return Csrrs(X1, Mstatus, X1) }),
		entry("system", "Csrrc", func() (arch.Instr, error) { return Csrrc(X1, Mstatus, X1) }),
		entry("system", "Csrrwi", func() (arch.Instr, error) { return Csrrwi(X1, Mstatus, 0) }),
		entry("system", "Csrrsi", func() (arch.Instr, error) { return Csrrsi(X1, Mstatus, 0) }),
		entry("system", "Csrrci", func() (arch.Instr, error) { return Csrrci(X1, Mstatus, 0) }),
		entry("system", "Ecall", func() (arch.Instr, error) { return Ecall() }),
		entry("system", "Ebreak", func() (arch.Instr, error) { return Ebreak() }),

		entry("compressed", "CLwsp", func() (arch.Instr, error) { return CLwsp(X1, 0) }),
		entry("compressed", "CSwsp", func() (arch.Instr, error) { return CSwsp(X1, 0) }),
		entry("compressed", "CLw", func() (arch.Instr, error) { return CLw(X8, X8, 0) }),
		entry("compressed", "CSw", func() (arch.Instr, error) { return CSw(X8, X8, 0) }),
		entry("compressed", "CJ", func() (arch.Instr, error) { return CJ(0) }),
		entry("compressed", "CJal", func() (arch.Instr, error) { return CJal(0) }),
		entry("compressed", "CJr", func() (arch.Instr, error) { return CJr(X1) }),
		entry("compressed", "CJalr", func() (arch.Instr, error) { return CJalr(X1) }),
		entry("compressed", "CBeqz", func() (arch.Instr, error) { return CBeqz(X8, 0) }),
		entry("compressed", "CBnez", func() (arch.Instr, error) { return CBnez(X8, 0) }),
		entry("compressed", "CLi", func() (arch.Instr, error) { return CLi(X1, 0) }),
		entry("compressed", "CLui", func() (arch.Instr, error) { return CLui(X1, 0x1000) }),
		entry("compressed", "CAddi", func() (arch.Instr, error) { return CAddi(X1, 1) }),
		entry("compressed", "CAddi16sp", func() (arch.Instr, error) { return CAddi16sp(16) }),
		entry("compressed", "CAddi4spn", func() (arch.Instr, error) { return CAddi4spn(X8, 4) }),
		entry("compressed", "CSlli", func() (arch.Instr, error) { return CSlli(X1, 0) }),
		entry("compressed", "CSrli", func() (arch.Instr, error) { return CSrli(X8, 0) }),
		entry("compressed", "CSrai", func() (arch.Instr, error) { return CSrai(X8, 0) }),
		entry("compressed", "CAndi", func() (arch.Instr, error) { return CAndi(X8, 0) }),
		entry("compressed", "CMv", func() (arch.Instr, error) { return CMv(X1, X1) }),
		entry("compressed", "CAdd", func() (arch.Instr, error) { return CAdd(X1, X1) }),
		entry("compressed", "CAnd", func() (arch.Instr, error) { return CAnd(X8, X8) }),
		entry("compressed", "COr", func() (arch.Instr, error) { return COr(X8, X8) }),
		entry("compressed", "CXor", func() (arch.Instr, error) { return CXor(X8, X8) }),
		entry("compressed", "CSub", func() (arch.Instr, error) { return CSub(X8, X8) }),
		entry("compressed", "CNop", func() (arch.Instr, error) { return CNop() }),
		entry("compressed", "CEbreak", func() (arch.Instr, error) { return CEbreak() }),
	}
}

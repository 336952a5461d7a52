package riscv

import (
	"github.com/apparentlymart/isaenc/arch"
)

func setReg(s *arch.Setter, op arch.Operand, r Reg) {
	s.Set(op, int(r))
}

// Integer register-immediate instructions

func Addi(rd, rs1 Reg, imm int) (*I, error) {
	return regImm("Addi", "IMM[11:0] RS1 000 RD 0010011", rd, rs1, imm)
}

func Slti(rd, rs1 Reg, imm int) (*I, error) {
	return regImm("Slti", "IMM[11:0] RS1 010 RD 0010011", rd, rs1, imm)
}

// Sltiu compares against the sign-extended immediate as unsigned numbers,
// so imm is still a signed 12-bit value.
func Sltiu(rd, rs1 Reg, imm int) (*I, error) {
	return regImm("Sltiu", "IMM[11:0] RS1 011 RD 0010011", rd, rs1, imm)
}

func Xori(rd, rs1 Reg, imm int) (*I, error) {
	return regImm("Xori", "IMM[11:0] RS1 100 RD 0010011", rd, rs1, imm)
}

func Ori(rd, rs1 Reg, imm int) (*I, error) {
	return regImm("Ori", "IMM[11:0] RS1 110 RD 0010011", rd, rs1, imm)
}

func Andi(rd, rs1 Reg, imm int) (*I, error) {
	return regImm("Andi", "IMM[11:0] RS1 111 RD 0010011", rd, rs1, imm)
}

func regImm(mnemonic, spec string, rd, rs1 Reg, imm int) (*I, error) {
	f, err := newI(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	setReg(&s, f.Rs1, rs1)
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

func Slli(rd, rs1 Reg, shamt int) (*Shift, error) {
	return shiftImm("Slli", "0000000 SHAMT RS1 001 RD 0010011", rd, rs1, shamt)
}

func Srli(rd, rs1 Reg, shamt int) (*Shift, error) {
	return shiftImm("Srli", "0000000 SHAMT RS1 101 RD 0010011", rd, rs1, shamt)
}

func Srai(rd, rs1 Reg, shamt int) (*Shift, error) {
	return shiftImm("Srai", "0100000 SHAMT RS1 101 RD 0010011", rd, rs1, shamt)
}

func shiftImm(mnemonic, spec string, rd, rs1 Reg, shamt int) (*Shift, error) {
	f, err := newShift(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	setReg(&s, f.Rs1, rs1)
	s.Set(f.Shamt, shamt)
	return arch.Result(f, s.Err())
}

// Lui loads imm, whose low 12 bits must be zero, into rd. The upper
// immediate is signed, so 0x80000000 is written -0x80000000.
func Lui(rd Reg, imm int) (*U, error) {
	return upper("Lui", "IMM[31:12] RD 0110111", rd, imm)
}

// Auipc adds imm, whose low 12 bits must be zero, to the address of the
// instruction.
func Auipc(rd Reg, imm int) (*U, error) {
	return upper("Auipc", "IMM[31:12] RD 0010111", rd, imm)
}

func upper(mnemonic, spec string, rd Reg, imm int) (*U, error) {
	f, err := newU(mnemonic, formU, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

// Integer register-register instructions

func Add(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Add", "0000000 RS2 RS1 000 RD 0110011", rd, rs1, rs2)
}

func Sub(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Sub", "0100000 RS2 RS1 000 RD 0110011", rd, rs1, rs2)
}

func Sll(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Sll", "0000000 RS2 RS1 001 RD 0110011", rd, rs1, rs2)
}

func Slt(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Slt", "0000000 RS2 RS1 010 RD 0110011", rd, rs1, rs2)
}

func Sltu(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Sltu", "0000000 RS2 RS1 011 RD 0110011", rd, rs1, rs2)
}

func Xor(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Xor", "0000000 RS2 RS1 100 RD 0110011", rd, rs1, rs2)
}

func Srl(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Srl", "0000000 RS2 RS1 101 RD 0110011", rd, rs1, rs2)
}

func Sra(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Sra", "0100000 RS2 RS1 101 RD 0110011", rd, rs1, rs2)
}

func Or(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("Or", "0000000 RS2 RS1 110 RD 0110011", rd, rs1, rs2)
}

func And(rd, rs1, rs2 Reg) (*R, error) {
	return regReg("And", "0000000 RS2 RS1 111 RD 0110011", rd, rs1, rs2)
}

func regReg(mnemonic, spec string, rd, rs1, rs2 Reg) (*R, error) {
	f, err := newR(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	setReg(&s, f.Rs1, rs1)
	setReg(&s, f.Rs2, rs2)
	return arch.Result(f, s.Err())
}

// Control transfer

// Jal jumps by offset, a multiple of two relative to the instruction, and
// writes the return address to rd.
func Jal(rd Reg, offset int) (*U, error) {
	f, err := newU("Jal", formJ, "IMM[20|10:1|11|19:12] RD 1101111")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	s.Set(f.Imm, offset)
	return arch.Result(f, s.Err())
}

func Jalr(rd, rs1 Reg, offset int) (*I, error) {
	return regImm("Jalr", "IMM[11:0] RS1 000 RD 1100111", rd, rs1, offset)
}

func Beq(rs1, rs2 Reg, offset int) (*S, error) {
	return branch("Beq", "IMM[12|10:5] RS2 RS1 000 IMM[4:1|11] 1100011", rs1, rs2, offset)
}

func Bne(rs1, rs2 Reg, offset int) (*S, error) {
	return branch("Bne", "IMM[12|10:5] RS2 RS1 001 IMM[4:1|11] 1100011", rs1, rs2, offset)
}

func Blt(rs1, rs2 Reg, offset int) (*S, error) {
	return branch("Blt", "IMM[12|10:5] RS2 RS1 100 IMM[4:1|11] 1100011", rs1, rs2, offset)
}

func Bge(rs1, rs2 Reg, offset int) (*S, error) {
	return branch("Bge", "IMM[12|10:5] RS2 RS1 101 IMM[4:1|11] 1100011", rs1, rs2, offset)
}

func Bltu(rs1, rs2 Reg, offset int) (*S, error) {
	return branch("Bltu", "IMM[12|10:5] RS2 RS1 110 IMM[4:1|11] 1100011", rs1, rs2, offset)
}

func Bgeu(rs1, rs2 Reg, offset int) (*S, error) {
	return branch("Bgeu", "IMM[12|10:5] RS2 RS1 111 IMM[4:1|11] 1100011", rs1, rs2, offset)
}

func branch(mnemonic, spec string, rs1, rs2 Reg, offset int) (*S, error) {
	f, err := newS(mnemonic, formB, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rs1, rs1)
	setReg(&s, f.Rs2, rs2)
	s.Set(f.Imm, offset)
	return arch.Result(f, s.Err())
}

// Loads and stores

func Lb(rd, base Reg, offset int) (*I, error) {
	return regImm("Lb", "IMM[11:0] RS1 000 RD 0000011", rd, base, offset)
}

func Lh(rd, base Reg, offset int) (*I, error) {
	return regImm("Lh", "IMM[11:0] RS1 001 RD 0000011", rd, base, offset)
}

func Lw(rd, base Reg, offset int) (*I, error) {
	return regImm("Lw", "IMM[11:0] RS1 010 RD 0000011", rd, base, offset)
}

func Lbu(rd, base Reg, offset int) (*I, error) {
	return regImm("Lbu", "IMM[11:0] RS1 100 RD 0000011", rd, base, offset)
}

func Lhu(rd, base Reg, offset int) (*I, error) {
	return regImm("Lhu", "IMM[11:0] RS1 101 RD 0000011", rd, base, offset)
}

// Sb stores the low byte of src at offset from base.
func Sb(src Reg, offset int, base Reg) (*S, error) {
	return store("Sb", "IMM[11:5] RS2 RS1 000 IMM[4:0] 0100011", src, offset, base)
}

func Sh(src Reg, offset int, base Reg) (*S, error) {
	return store("Sh", "IMM[11:5] RS2 RS1 001 IMM[4:0] 0100011", src, offset, base)
}

func Sw(src Reg, offset int, base Reg) (*S, error) {
	return store("Sw", "IMM[11:5] RS2 RS1 010 IMM[4:0] 0100011", src, offset, base)
}

func store(mnemonic, spec string, src Reg, offset int, base Reg) (*S, error) {
	f, err := newS(mnemonic, formS, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rs2, src)
	setReg(&s, f.Rs1, base)
	s.Set(f.Imm, offset)
	return arch.Result(f, s.Err())
}

// Memory ordering

// Fence orders the pred accesses of this hart before its succ accesses.
func Fence(pred, succ Ordering) (*FenceForm, error) {
	f, err := newFence("Fence", "0000 PRED SUCC 00000 000 00000 0001111")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Pred, int(pred))
	s.Set(f.Succ, int(succ))
	return arch.Result(f, s.Err())
}

func FenceI() (*Plain, error) {
	return newPlain("FenceI", formI, "000000000000 00000 001 00000 0001111")
}

// Control and status registers

func Csrrw(rd Reg, csr CSR, rs1 Reg) (*CSRAccess, error) {
	return csrOp("Csrrw", "CSR RS1 001 RD 1110011", rd, csr, int(rs1))
}

func Csrrs(rd Reg, csr CSR, rs1 Reg) (*CSRAccess, error) {
	return csrOp("Csrrs", "CSR RS1 010 RD 1110011", rd, csr, int(rs1))
}

func Csrrc(rd Reg, csr CSR, rs1 Reg) (*CSRAccess, error) {
	return csrOp("Csrrc", "CSR RS1 011 RD 1110011", rd, csr, int(rs1))
}

// Csrrwi writes the 5-bit unsigned uimm to the CSR.
func Csrrwi(rd Reg, csr CSR, uimm int) (*CSRAccess, error) {
	return csrOp("Csrrwi", "CSR UIMM 101 RD 1110011", rd, csr, uimm)
}

func Csrrsi(rd Reg, csr CSR, uimm int) (*CSRAccess, error) {
	return csrOp("Csrrsi", "CSR UIMM 110 RD 1110011", rd, csr, uimm)
}

func Csrrci(rd Reg, csr CSR, uimm int) (*CSRAccess, error) {
	return csrOp("Csrrci", "CSR UIMM 111 RD 1110011", rd, csr, uimm)
}

func csrOp(mnemonic, spec string, rd Reg, csr CSR, src int) (*CSRAccess, error) {
	f, err := newCSRAccess(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	s.Set(f.CSR, int(csr))
	s.Set(f.Src, src)
	return arch.Result(f, s.Err())
}

// Environment

func Ecall() (*Plain, error) {
	return newPlain("Ecall", formI, "000000000000 00000 000 00000 1110011")
}

func Ebreak() (*Plain, error) {
	return newPlain("Ebreak", formI, "000000000001 00000 000 00000 1110011")
}

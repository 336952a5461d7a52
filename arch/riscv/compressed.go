package riscv

import (
	"github.com/apparentlymart/isaenc/arch"
)

// The compressed instructions below extend RV32I. Registers written with a
// prime in the manual (rd', rs1', rs2') can only be x8 to x15.

func nonZero(mnemonic string, r Reg) error {
	if r == X0 {
		return arch.InvalidArgumentf("%s: register x0 is not allowed", mnemonic)
	}
	return nil
}

// Loads and stores

// CLwsp loads a word from offset bytes above sp. The offset is a multiple
// of four from 0 to 252.
func CLwsp(rd Reg, offset int) (*CI, error) {
	if err := nonZero("CLwsp", rd); err != nil {
		return nil, err
	}
	return ci("CLwsp", "010 UIMM[5] RD UIMM[4:2|7:6] 10", rd, offset)
}

func CSwsp(rs2 Reg, offset int) (*CSS, error) {
	f, err := newCSS("CSwsp", "110 UIMM[5:2|7:6] RS2 10")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rs2, rs2)
	s.Set(f.Imm, offset)
	return arch.Result(f, s.Err())
}

// CLw loads a word from offset bytes above base. The offset is a multiple
// of four from 0 to 124.
func CLw(rd, base Reg, offset int) (*CL, error) {
	return cl("CLw", formCL, "010 UIMM[5:3] RS1' UIMM[2|6] RD' 00", rd, base, offset)
}

func CSw(src, base Reg, offset int) (*CL, error) {
	return cl("CSw", formCS, "110 UIMM[5:3] RS1' UIMM[2|6] RS2' 00", src, base, offset)
}

func cl(mnemonic string, form *format, spec string, r, base Reg, offset int) (*CL, error) {
	f, err := newCL(mnemonic, form, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Reg, r)
	setReg(&s, f.Rs1, base)
	s.Set(f.Imm, offset)
	return arch.Result(f, s.Err())
}

// Control transfer

// CJ jumps by offset, an even number from -2048 to 2046.
func CJ(offset int) (*CJForm, error) {
	return cj("CJ", "101 OFFSET[11|4|9:8|10|6|7|3:1|5] 01", offset)
}

func CJal(offset int) (*CJForm, error) {
	return cj("CJal", "001 OFFSET[11|4|9:8|10|6|7|3:1|5] 01", offset)
}

func cj(mnemonic, spec string, offset int) (*CJForm, error) {
	f, err := newCJ(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Imm, offset)
	return arch.Result(f, s.Err())
}

func CJr(rs1 Reg) (*CR, error) {
	if err := nonZero("CJr", rs1); err != nil {
		return nil, err
	}
	return cr("CJr", "1000 RS1 00000 10", rs1, X0)
}

func CJalr(rs1 Reg) (*CR, error) {
	if err := nonZero("CJalr", rs1); err != nil {
		return nil, err
	}
	return cr("CJalr", "1001 RS1 00000 10", rs1, X0)
}

// CBeqz branches by offset, an even number from -256 to 254, when rs1 is
// zero.
func CBeqz(rs1 Reg, offset int) (*CB, error) {
	return cb("CBeqz", "110 OFFSET[8|4:3] RS1' OFFSET[7:6|2:1|5] 01", rs1, offset)
}

func CBnez(rs1 Reg, offset int) (*CB, error) {
	return cb("CBnez", "111 OFFSET[8|4:3] RS1' OFFSET[7:6|2:1|5] 01", rs1, offset)
}

func cb(mnemonic, spec string, rs1 Reg, imm int) (*CB, error) {
	f, err := newCB(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rs1, rs1)
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

// Constant generation

func CLi(rd Reg, imm int) (*CI, error) {
	if err := nonZero("CLi", rd); err != nil {
		return nil, err
	}
	return ci("CLi", "010 IMM[5] RD IMM[4:0] 01", rd, imm)
}

// CLui loads imm, a non-zero multiple of 0x1000 from -0x20000 to 0x1f000,
// into rd. rd cannot be x0 or sp.
func CLui(rd Reg, imm int) (*CI, error) {
	if err := nonZero("CLui", rd); err != nil {
		return nil, err
	}
	if rd == SP {
		return nil, arch.InvalidArgumentf("CLui: register sp is not allowed")
	}
	if imm == 0 {
		return nil, arch.InvalidArgumentf("CLui: immediate must not be zero")
	}
	return ci("CLui", "011 IMM[17] RD IMM[16:12] 01", rd, imm)
}

// Register-immediate operations

func CAddi(rd Reg, imm int) (*CI, error) {
	if imm == 0 {
		return nil, arch.InvalidArgumentf("CAddi: immediate must not be zero")
	}
	return ci("CAddi", "000 IMM[5] RD IMM[4:0] 01", rd, imm)
}

// CAddi16sp adds imm, a non-zero multiple of 16 from -512 to 496, to sp.
func CAddi16sp(imm int) (*CI, error) {
	if imm == 0 {
		return nil, arch.InvalidArgumentf("CAddi16sp: immediate must not be zero")
	}
	f, err := newCI("CAddi16sp", "011 IMM[9] 00010 IMM[4|6|8:7|5] 01")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

// CAddi4spn writes sp plus imm, a non-zero multiple of four below 1024, to
// rd.
func CAddi4spn(rd Reg, imm int) (*CIW, error) {
	if imm == 0 {
		return nil, arch.InvalidArgumentf("CAddi4spn: immediate must not be zero")
	}
	f, err := newCIW("CAddi4spn", "000 UIMM[5:4|9:6|2|3] RD' 00")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

// CSlli shifts rd left by shamt. RV32C leaves shift amounts of 32 and more
// to custom extensions, so shamt is limited to 0 to 31.
func CSlli(rd Reg, shamt int) (*CI, error) {
	if err := nonZero("CSlli", rd); err != nil {
		return nil, err
	}
	if err := rv32Shamt("CSlli", shamt); err != nil {
		return nil, err
	}
	return ci("CSlli", "000 SHAMT[5] RD SHAMT[4:0] 10", rd, shamt)
}

func CSrli(rd Reg, shamt int) (*CB, error) {
	if err := rv32Shamt("CSrli", shamt); err != nil {
		return nil, err
	}
	return cb("CSrli", "100 SHAMT[5] 00 RD' SHAMT[4:0] 01", rd, shamt)
}

func CSrai(rd Reg, shamt int) (*CB, error) {
	if err := rv32Shamt("CSrai", shamt); err != nil {
		return nil, err
	}
	return cb("CSrai", "100 SHAMT[5] 01 RD' SHAMT[4:0] 01", rd, shamt)
}

func rv32Shamt(mnemonic string, shamt int) error {
	if shamt < 0 || shamt > 31 {
		return arch.Rangef("%s: shift amount %d is not 0 to 31", mnemonic, shamt)
	}
	return nil
}

func CAndi(rd Reg, imm int) (*CB, error) {
	return cb("CAndi", "100 IMM[5] 10 RD' IMM[4:0] 01", rd, imm)
}

func ci(mnemonic, spec string, rd Reg, imm int) (*CI, error) {
	f, err := newCI(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

// Register-register operations

func CMv(rd, rs2 Reg) (*CR, error) {
	if err := nonZero("CMv", rd); err != nil {
		return nil, err
	}
	if err := nonZero("CMv", rs2); err != nil {
		return nil, err
	}
	return cr("CMv", "1000 RD RS2 10", rd, rs2)
}

func CAdd(rd, rs2 Reg) (*CR, error) {
	if err := nonZero("CAdd", rd); err != nil {
		return nil, err
	}
	if err := nonZero("CAdd", rs2); err != nil {
		return nil, err
	}
	return cr("CAdd", "1001 RD RS2 10", rd, rs2)
}

func cr(mnemonic, spec string, rd, rs2 Reg) (*CR, error) {
	f, err := newCR(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	if f.Rs2 != nil {
		setReg(&s, f.Rs2, rs2)
	}
	return arch.Result(f, s.Err())
}

func CAnd(rd, rs2 Reg) (*CA, error) {
	return ca("CAnd", "100011 RD' 11 RS2' 01", rd, rs2)
}

func COr(rd, rs2 Reg) (*CA, error) {
	return ca("COr", "100011 RD' 10 RS2' 01", rd, rs2)
}

func CXor(rd, rs2 Reg) (*CA, error) {
	return ca("CXor", "100011 RD' 01 RS2' 01", rd, rs2)
}

func CSub(rd, rs2 Reg) (*CA, error) {
	return ca("CSub", "100011 RD' 00 RS2' 01", rd, rs2)
}

func ca(mnemonic, spec string, rd, rs2 Reg) (*CA, error) {
	f, err := newCA(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rd, rd)
	setReg(&s, f.Rs2, rs2)
	return arch.Result(f, s.Err())
}

func CNop() (*Plain, error) {
	return newPlain("CNop", formCI, "000 0 00000 00000 01")
}

func CEbreak() (*Plain, error) {
	return newPlain("CEbreak", formCR, "1001 00000 00000 10")
}

package thumb

import (
	"regexp"

	"github.com/apparentlymart/isaenc/arch"
)

func setReg(s *arch.Setter, op arch.Operand, r Reg) {
	s.Set(op, int(r))
}

// Arithmetic

func AddImmT1(rd, rn Reg, imm int) (*ASI, error) {
	f, err := newASI("AddImmT1", "0 0 0 1 1 1 0 imm3 Rn Rd")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rn, rn)
	setReg(&s, f.Rd, rd)
	s.Set(f.Imm3, imm)
	return arch.Result(f, s.Err())
}

func AddImmT2(rdn Reg, imm int) (*ASCMI, error) {
	f, err := newASCMI("AddImmT2", "0 0 1 1 0 Rdn imm8")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rdn, rdn)
	s.Set(f.Imm8, imm)
	return arch.Result(f, s.Err())
}

// AddImmT3 adds a modified 12-bit immediate, see EncodeImm12.
func AddImmT3(rd, rn Reg, imm uint32, setFlags bool) (*DPImm32, error) {
	return dpMod12("AddImmT3", "1 1 1 1 0 i 0 1 0 0 0 S Rn 0 imm3 Rd imm8", 8, rd, rn, imm, setFlags)
}

// AddImmT4 adds a plain 12-bit immediate.
func AddImmT4(rd, rn Reg, imm int) (*DPImm32, error) {
	return dpPlain12("AddImmT4", "1 1 1 1 0 i 1 0 0 0 0 0 Rn 0 imm3 Rd imm8", 0, 0, rd, rn, imm)
}

func SubImmT1(rd, rn Reg, imm int) (*ASI, error) {
	f, err := newASI("SubImmT1", "0 0 0 1 1 1 1 imm3 Rn Rd")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rn, rn)
	setReg(&s, f.Rd, rd)
	s.Set(f.Imm3, imm)
	return arch.Result(f, s.Err())
}

func SubImmT2(rdn Reg, imm int) (*ASCMI, error) {
	f, err := newASCMI("SubImmT2", "0 0 1 1 1 Rdn imm8")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rdn, rdn)
	s.Set(f.Imm8, imm)
	return arch.Result(f, s.Err())
}

func SubImmT3(rd, rn Reg, imm uint32, setFlags bool) (*DPImm32, error) {
	return dpMod12("SubImmT3", "1 1 1 1 0 i 0 1 1 0 1 S Rn 0 imm3 Rd imm8", 13, rd, rn, imm, setFlags)
}

func SubImmT4(rd, rn Reg, imm int) (*DPImm32, error) {
	return dpPlain12("SubImmT4", "1 1 1 1 0 i 1 0 1 0 1 0 Rn 0 imm3 Rd imm8", 1, 2, rd, rn, imm)
}

func dpMod12(mnemonic, spec string, op int, rd, rn Reg, imm uint32, setFlags bool) (*DPImm32, error) {
	enc, err := EncodeImm12(int64(imm))
	if err != nil {
		return nil, err
	}
	f, err := newDPMod12(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Fix(f.Instruction, f.OP.Start, f.OP.End, op)
	s.SetBool(f.S, setFlags)
	setReg(&s, f.Rd, rd)
	setReg(&s, f.Rn, rn)
	s.Set(f.Imm, enc)
	return arch.Result(f, s.Err())
}

func dpPlain12(mnemonic, spec string, op, op2 int, rd, rn Reg, imm int) (*DPImm32, error) {
	f, err := newDPPlain12(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Fix(f.Instruction, f.OP.Start, f.OP.End, op)
	s.Fix(f.Instruction, f.OP2.Start, f.OP2.End, op2)
	setReg(&s, f.Rd, rd)
	setReg(&s, f.Rn, rn)
	s.Set(f.Imm, imm)
	return arch.Result(f, s.Err())
}

func AddsReg(rd, rn, rm Reg) (*ASR, error) {
	return asr("AddsReg", "0 0 0 1 1 0 0 Rm Rn Rd", rd, rn, rm)
}

func SubsReg(rd, rn, rm Reg) (*ASR, error) {
	return asr("SubsReg", "0 0 0 1 1 0 1 Rm Rn Rd", rd, rn, rm)
}

func asr(mnemonic, spec string, rd, rn, rm Reg) (*ASR, error) {
	f, err := newASR(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rm, rm)
	setReg(&s, f.Rn, rn)
	setReg(&s, f.Rd, rd)
	return arch.Result(f, s.Err())
}

// Moves and shifts

// MovT1 copies any register to any other.
func MovT1(rd, rm Reg) (*SDP, error) {
	f, err := newSDP("MovT1", "0 1 0 0 0 1 1 0 D Rm Rd")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rm, rm)
	setReg(&s, f.Rdn, rd)
	return arch.Result(f, s.Err())
}

// MovT2 copies between low registers and sets the flags.
func MovT2(rd, rm Reg) (*ShiftMove, error) {
	return shiftMove("MovT2", "0 0 0 0 0 0 0 0 0 0 Rm Rd", rd, rm, 0)
}

func LslsImm(rd, rm Reg, imm5 int) (*ShiftMove, error) {
	return shiftMove("LslsImm", "0 0 0 0 0 imm5 Rm Rd", rd, rm, imm5)
}

func LsrsImm(rd, rm Reg, imm5 int) (*ShiftMove, error) {
	return shiftMove("LsrsImm", "0 0 0 0 1 imm5 Rm Rd", rd, rm, imm5)
}

func AsrImm(rd, rm Reg, imm5 int) (*ShiftMove, error) {
	return shiftMove("AsrImm", "0 0 0 1 0 imm5 Rm Rd", rd, rm, imm5)
}

func shiftMove(mnemonic, spec string, rd, rm Reg, imm5 int) (*ShiftMove, error) {
	f, err := newShiftMove(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Imm5, imm5)
	setReg(&s, f.Rm, rm)
	setReg(&s, f.Rd, rd)
	return arch.Result(f, s.Err())
}

var itMaskPattern = regexp.MustCompile(`^[ET]{0,3}$`)

// IT starts an If-Then block. Each character of mask adds one more
// instruction to the block: T for then, E for else.
func IT(cond Cond, mask string) (*ITForm, error) {
	if !itMaskPattern.MatchString(mask) {
		return nil, arch.InvalidArgumentf("IT mask %q must be up to three of T and E", mask)
	}
	lsb := int(cond) & 1
	bits := 1 << uint(3-len(mask))
	for i, c := range mask {
		if c == 'T' {
			bits += lsb << uint(3-i)
		} else {
			bits += (1 - lsb) << uint(3-i)
		}
	}

	f, err := newIT("IT", "1 0 1 1 1 1 1 1 firstcond mask")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Cond, int(cond))
	s.Set(f.Mask, bits)
	return arch.Result(f, s.Err())
}

// Branches. Offsets are relative to the branch instruction itself, which
// sees the PC four bytes ahead.

func checkBranch(mnemonic string, offset, min, max int) error {
	if offset < min || offset > max {
		return arch.Rangef("%s: offset %d outside %d to %d", mnemonic, offset, min, max)
	}
	if offset%2 != 0 {
		return arch.Rangef("%s: offset %d is not halfword aligned", mnemonic, offset)
	}
	return nil
}

func BT1(cond Cond, offset int) (*CB, error) {
	if err := checkBranch("BT1", offset, -252, 258); err != nil {
		return nil, err
	}
	f, err := newCB("BT1", "1 1 0 1 cond imm8")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Cond, int(cond))
	s.Set(f.Imm8, (offset-4)>>1)
	return arch.Result(f, s.Err())
}

func BT2(offset int) (*B, error) {
	if err := checkBranch("BT2", offset, -2044, 2050); err != nil {
		return nil, err
	}
	f, err := newB("BT2", "1 1 1 0 0 imm11")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Imm11, (offset-4)>>1)
	return arch.Result(f, s.Err())
}

func BT3(cond Cond, offset int) (*CB32, error) {
	if err := checkBranch("BT3", offset, -1048572, 1048578); err != nil {
		return nil, err
	}
	f, err := newCB32("BT3", "1 1 1 1 0 S cond imm6 1 0 J1 0 J2 imm11")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.Cond, int(cond))
	s.Set(f.Encoding, (offset-4)>>1)
	return arch.Result(f, s.Err())
}

func BT4(offset int) (*B32, error) {
	return b32("BT4", "1 1 1 1 0 S imm10 1 0 J1 1 J2 imm11", offset, 0)
}

// BLT1 branches and stores the return address in LR.
func BLT1(offset int) (*B32, error) {
	return b32("BLT1", "1 1 1 1 0 S imm10 1 1 J1 1 J2 imm11", offset, 1)
}

func b32(mnemonic, spec string, offset, link int) (*B32, error) {
	if err := checkBranch(mnemonic, offset, -16777212, 16777218); err != nil {
		return nil, err
	}
	f, err := newB32(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Fix(f.Instruction, f.Link.Start, f.Link.End, link)
	s.Set(f.Encoding, (offset-4)>>1)
	return arch.Result(f, s.Err())
}

// Stores and loads

func checkOffset(mnemonic string, offset, align, max int) error {
	if offset < 0 || offset > max {
		return arch.Rangef("%s: offset %d outside 0 to %d", mnemonic, offset, max)
	}
	if offset%align != 0 {
		return arch.Rangef("%s: offset %d is not a multiple of %d", mnemonic, offset, align)
	}
	return nil
}

func sli(mnemonic, spec string, rt, rn Reg, offset, align, max int) (*SLI, error) {
	if err := checkOffset(mnemonic, offset, align, max); err != nil {
		return nil, err
	}
	if err := checkRegs(8, rt, rn); err != nil {
		return nil, err
	}
	f, err := newSLI(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rt, rt)
	setReg(&s, f.Rn, rn)
	s.Set(f.Imm5, offset/align)
	return arch.Result(f, s.Err())
}

func slihw(mnemonic, spec string, rt, rn Reg, offset int) (*SLIHW, error) {
	if err := checkOffset(mnemonic, offset, 2, 62); err != nil {
		return nil, err
	}
	if err := checkRegs(8, rt, rn); err != nil {
		return nil, err
	}
	f, err := newSLIHW(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rt, rt)
	setReg(&s, f.Rn, rn)
	s.Set(f.Imm5, offset>>1)
	return arch.Result(f, s.Err())
}

// Str stores a word from a low register at a word aligned offset.
func Str(rt, rn Reg, offset int) (*SLI, error) {
	return sli("Str", "0 1 1 0 0 imm5 Rn Rt", rt, rn, offset, 4, 124)
}

func Strh(rt, rn Reg, offset int) (*SLIHW, error) {
	return slihw("Strh", "1 0 0 0 0 imm5 Rn Rt", rt, rn, offset)
}

func Strb(rt, rn Reg, offset int) (*SLI, error) {
	return sli("Strb", "0 1 1 1 0 imm5 Rn Rt", rt, rn, offset, 1, 31)
}

func Ldr(rt, rn Reg, offset int) (*SLI, error) {
	return sli("Ldr", "0 1 1 0 1 imm5 Rn Rt", rt, rn, offset, 4, 124)
}

func Ldrh(rt, rn Reg, offset int) (*SLIHW, error) {
	return slihw("Ldrh", "1 0 0 0 1 imm5 Rn Rt", rt, rn, offset)
}

func Ldrb(rt, rn Reg, offset int) (*SLI, error) {
	return sli("Ldrb", "0 1 1 1 1 imm5 Rn Rt", rt, rn, offset, 1, 31)
}

// StrW stores with an 8-bit offset of either sign. The default addressing
// mode is offset; Index(false) with Writeback(true) is post-indexed and
// Writeback(true) alone is pre-indexed.
func StrW(rt, rn Reg, offset int, opts ...AccessOption) (*StrLdr32, error) {
	return strLdrImm8("StrW", "1 1 1 1 1 0 0 0 0 1 0 0 Rn Rt 1 P U W imm8", rt, rn, offset, opts)
}

func LdrW(rt, rn Reg, offset int, opts ...AccessOption) (*StrLdr32, error) {
	return strLdrImm8("LdrW", "1 1 1 1 1 0 0 0 0 1 0 1 Rn Rt 1 P U W imm8", rt, rn, offset, opts)
}

// StrWImm12 stores with an unsigned 12-bit offset.
func StrWImm12(rt, rn Reg, offset int, opts ...AccessOption) (*StrLdr32, error) {
	return strLdrImm12("StrWImm12", "1 1 1 1 1 0 0 0 1 1 0 0 Rn Rt imm12", rt, rn, offset, opts)
}

func LdrWImm12(rt, rn Reg, offset int, opts ...AccessOption) (*StrLdr32, error) {
	return strLdrImm12("LdrWImm12", "1 1 1 1 1 0 0 0 1 1 0 1 Rn Rt imm12", rt, rn, offset, opts)
}

// StrWReg stores at rn plus rm shifted left by ShiftBy.
func StrWReg(rt, rn, rm Reg, opts ...AccessOption) (*StrLdr32, error) {
	return strLdrReg("StrWReg", "1 1 1 1 1 0 0 0 0 1 0 0 Rn Rt 0 0 0 0 0 0 shift Rm", rt, rn, rm, opts)
}

func LdrWReg(rt, rn, rm Reg, opts ...AccessOption) (*StrLdr32, error) {
	return strLdrReg("LdrWReg", "1 1 1 1 1 0 0 0 0 1 0 1 Rn Rt 0 0 0 0 0 0 shift Rm", rt, rn, rm, opts)
}

func strLdrImm8(mnemonic, spec string, rt, rn Reg, offset int, opts []AccessOption) (*StrLdr32, error) {
	cfg, err := accessFor(opts)
	if err != nil {
		return nil, err
	}
	if offset < -255 || offset > 255 {
		return nil, arch.Rangef("%s: offset %d outside -255 to 255", mnemonic, offset)
	}
	if err := checkRegs(16, rt, rn); err != nil {
		return nil, err
	}
	f, err := newStrLdrImmT4(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	abs := offset
	if abs < 0 {
		abs = -abs
	}
	var s arch.Setter
	setReg(&s, f.Rt, rt)
	setReg(&s, f.Rn, rn)
	s.Set(f.Imm8, abs)
	s.SetBool(f.P, cfg.index)
	s.SetBool(f.U, offset >= 0)
	s.SetBool(f.W, cfg.wback)
	cfg.apply(&s, f)
	return arch.Result(f, s.Err())
}

func strLdrImm12(mnemonic, spec string, rt, rn Reg, offset int, opts []AccessOption) (*StrLdr32, error) {
	cfg, err := accessFor(opts)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset > 4095 {
		return nil, arch.Rangef("%s: offset %d outside 0 to 4095", mnemonic, offset)
	}
	if err := checkRegs(16, rt, rn); err != nil {
		return nil, err
	}
	f, err := newStrLdrT3(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rt, rt)
	setReg(&s, f.Rn, rn)
	s.Set(f.Imm12, offset)
	cfg.apply(&s, f)
	return arch.Result(f, s.Err())
}

func strLdrReg(mnemonic, spec string, rt, rn, rm Reg, opts []AccessOption) (*StrLdr32, error) {
	cfg, err := accessFor(opts)
	if err != nil {
		return nil, err
	}
	if err := checkRegs(16, rt, rn, rm); err != nil {
		return nil, err
	}
	if cfg.shift < 0 || cfg.shift > 3 {
		return nil, arch.Rangef("%s: shift %d outside 0 to 3", mnemonic, cfg.shift)
	}
	f, err := newStrLdrRegT2(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rt, rt)
	setReg(&s, f.Rn, rn)
	setReg(&s, f.Rm, rm)
	s.Set(f.Shift, cfg.shift)
	cfg.apply(&s, f)
	return arch.Result(f, s.Err())
}

// LdrWLiteral loads a word at an offset of up to 4095 bytes either side of
// the aligned PC.
func LdrWLiteral(rt Reg, offset int) (*LdrL32, error) {
	if offset < -4095 || offset > 4095 {
		return nil, arch.Rangef("LdrWLiteral: offset %d outside -4095 to 4095", offset)
	}
	if err := checkRegs(16, rt); err != nil {
		return nil, err
	}
	f, err := newLdrL32("LdrWLiteral", "1 1 1 1 1 0 0 0 U 1 0 1 1 1 1 1 Rt imm12")
	if err != nil {
		return nil, err
	}
	abs := offset
	if abs < 0 {
		abs = -abs
	}
	var s arch.Setter
	setReg(&s, f.Rt, rt)
	s.SetBool(f.U, offset >= 0)
	s.Set(f.Imm12, abs)
	return arch.Result(f, s.Err())
}

// Multiple loads and stores

func Stmia(rn Reg, regs []Reg) (*StmLdm, error) {
	return stmLdm16("Stmia", "1 1 0 0 0 Rn register_list", rn, regs)
}

func Ldmia(rn Reg, regs []Reg) (*StmLdm, error) {
	return stmLdm16("Ldmia", "1 1 0 0 1 Rn register_list", rn, regs)
}

func stmLdm16(mnemonic, spec string, rn Reg, regs []Reg) (*StmLdm, error) {
	if err := checkRegs(8, rn); err != nil {
		return nil, err
	}
	if err := checkRegs(8, regs...); err != nil {
		return nil, err
	}
	f, err := newStmLdm16(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rn, rn)
	s.Set(f.RegisterList, EncodeRegisterList(regs)&0xff)
	return arch.Result(f, s.Err())
}

// StmiaW stores any of r0 to r14 except sp.
func StmiaW(rn Reg, regs []Reg, wback bool) (*StmLdm, error) {
	return stmLdm32("StmiaW", "1 1 1 0 1 0 0 0 1 0 W 0 Rn (0) M (0) register_list", rn, regs, 15, wback)
}

// LdmiaW loads any register except sp.
func LdmiaW(rn Reg, regs []Reg, wback bool) (*StmLdm, error) {
	return stmLdm32("LdmiaW", "1 1 1 0 1 0 0 0 1 0 W 1 Rn P M (0) register_list", rn, regs, 16, wback)
}

func stmLdm32(mnemonic, spec string, rn Reg, regs []Reg, limit int, wback bool) (*StmLdm, error) {
	if err := checkRegs(15, rn); err != nil {
		return nil, err
	}
	if err := checkRegs(limit, regs...); err != nil {
		return nil, err
	}
	if hasReg(regs, SP) {
		return nil, arch.Rangef("%s: sp cannot be in the register list", mnemonic)
	}
	f, err := newStmLdm32(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rn, rn)
	s.Set(f.RegisterList, EncodeRegisterList(regs))
	s.SetBool(f.W, wback)
	return arch.Result(f, s.Err())
}

// Logic

func Ands(rdn, rm Reg) (*DPR, error) {
	return dpr("Ands", "0 1 0 0 0 0 0 0 0 0 Rm Rdn", rdn, rm)
}

func Orrs(rdn, rm Reg) (*DPR, error) {
	return dpr("Orrs", "0 1 0 0 0 0 1 1 0 0 Rm Rdn", rdn, rm)
}

func Eors(rdn, rm Reg) (*DPR, error) {
	return dpr("Eors", "0 1 0 0 0 0 0 0 0 1 Rm Rdn", rdn, rm)
}

func dpr(mnemonic, spec string, rdn, rm Reg) (*DPR, error) {
	if err := checkRegs(8, rdn, rm); err != nil {
		return nil, err
	}
	f, err := newDPR(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.Rdn, rdn)
	setReg(&s, f.Rm, rm)
	return arch.Result(f, s.Err())
}

func AndImm(rd, rn Reg, imm uint32) (*DPImm32, error) {
	return dpMod12("AndImm", "1 1 1 1 0 i 0 0 0 0 0 S Rn 0 imm3 Rd imm8", 0, rd, rn, imm, false)
}

func OrrImm(rd, rn Reg, imm uint32) (*DPImm32, error) {
	return dpMod12("OrrImm", "1 1 1 1 0 i 0 0 0 1 0 S Rn 0 imm3 Rd imm8", 2, rd, rn, imm, false)
}

func EorImm(rd, rn Reg, imm uint32) (*DPImm32, error) {
	return dpMod12("EorImm", "1 1 1 1 0 i 0 0 1 0 0 S Rn 0 imm3 Rd imm8", 4, rd, rn, imm, false)
}

// Miscellaneous

// Uxtb zero-extends the low byte of rm.
func Uxtb(rd, rm Reg) (*SZE, error) {
	f, err := newSZE("Uxtb", "1 0 1 1 0 0 1 0 1 1 Rm Rd")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Fix(f.Instruction, f.Opc.Start, f.Opc.End, 3)
	setReg(&s, f.Rm, rm)
	setReg(&s, f.Rd, rd)
	return arch.Result(f, s.Err())
}

// Push stores r0 to r7 and optionally lr.
func Push(regs []Reg) (*PushPop, error) {
	for _, r := range regs {
		if r < 0 || r > LR || (r >= R8 && r <= R13) {
			return nil, arch.Rangef("Push: %s cannot be pushed by the 16-bit encoding", r)
		}
	}
	return pushPop("Push", "1 0 1 1 0 1 0 M register_list", 0, regs, hasReg(regs, LR))
}

// Pop loads r0 to r7 and optionally pc.
func Pop(regs []Reg) (*PushPop, error) {
	for _, r := range regs {
		if r < 0 || r > PC || (r >= R8 && r <= R14) {
			return nil, arch.Rangef("Pop: %s cannot be popped by the 16-bit encoding", r)
		}
	}
	return pushPop("Pop", "1 0 1 1 1 1 0 P register_list", 1, regs, hasReg(regs, PC))
}

func pushPop(mnemonic, spec string, l int, regs []Reg, extra bool) (*PushPop, error) {
	f, err := newPushPop(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Fix(f.Instruction, f.L.Start, f.L.End, l)
	s.Set(f.RegisterList, EncodeRegisterList(regs)&0xff)
	s.SetBool(f.R, extra)
	return arch.Result(f, s.Err())
}

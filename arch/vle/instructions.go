package vle

import (
	"github.com/apparentlymart/isaenc/arch"
)

func setReg(s *arch.Setter, op arch.Operand, r Reg) {
	s.Set(op, int(r))
}

// Arithmetic

func SeAddi(rx Reg, oim5 int) (*OIM5, error) {
	return oim5Op("SeAddi", "0 0 1 0 0 0 0 OIM5 RX", rx, oim5)
}

func SeSubi(rx Reg, oim5 int) (*OIM5, error) {
	return oim5Op("SeSubi", "0 0 1 0 0 1 0 OIM5 RX", rx, oim5)
}

// SeSubiRC is se_subi. which also updates CR0.
func SeSubiRC(rx Reg, oim5 int) (*OIM5, error) {
	return oim5Op("SeSubiRC", "0 0 1 0 0 1 1 OIM5 RX", rx, oim5)
}

func oim5Op(mnemonic, spec string, rx Reg, v int) (*OIM5, error) {
	f, err := newOIM5(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RX, rx)
	s.Set(f.OIM5, v)
	return arch.Result(f, s.Err())
}

func SeAdd(rx, ry Reg) (*RR, error) {
	return rr("SeAdd", "0 0 0 0 0 1 0 0 RY RX", rx, ry)
}

func SeSub(rx, ry Reg) (*RR, error) {
	return rr("SeSub", "0 0 0 0 0 1 1 0 RY RX", rx, ry)
}

// SeSubf is se_subf, which has no encoder yet.
func SeSubf(rx, ry Reg) (*RR, error) {
	return nil, arch.Unimplementedf("SeSubf is not implemented")
}

func SeMullw(rx, ry Reg) (*RR, error) {
	return rr("SeMullw", "0 0 0 0 0 1 0 1 RY RX", rx, ry)
}

func rr(mnemonic, spec string, rx, ry Reg) (*RR, error) {
	f, err := newRR(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RX, rx)
	setReg(&s, f.RY, ry)
	return arch.Result(f, s.Err())
}

func EAdd16i(rd, ra Reg, si int) (*D, error) {
	f, err := newD("EAdd16i", "D", "0 0 0 1 1 1 RD RA SI")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RD, rd)
	setReg(&s, f.RA, ra)
	s.Set(f.SI, si)
	return arch.Result(f, s.Err())
}

func EMull2i(ra Reg, si int) (*I16A, error) {
	return i16a("EMull2i", "0 1 1 1 0 0 SI[0:4] RA 1 0 1 0 0 SI[5:15]", ra, si)
}

func EAdd2i(ra Reg, si int) (*I16A, error) {
	return i16a("EAdd2i", "0 1 1 1 0 0 SI[0:4] RA 1 0 0 0 1 SI[5:15]", ra, si)
}

// EAdd2is adds si shifted left by 16 bits.
func EAdd2is(ra Reg, si int) (*I16A, error) {
	return i16a("EAdd2is", "0 1 1 1 0 0 SI[0:4] RA 1 0 0 1 0 SI[5:15]", ra, si)
}

func i16a(mnemonic, spec string, ra Reg, si int) (*I16A, error) {
	f, err := newI16A(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RA, ra)
	s.Set(f.SI, si)
	return arch.Result(f, s.Err())
}

// Bitwise

func SeAndi(rx Reg, ui5 int) (*IM5, error) {
	return im5("SeAndi", "0 0 1 0 1 1 1 UI5 RX", rx, ui5)
}

func SeSlwi(rx Reg, ui5 int) (*IM5, error) {
	return im5("SeSlwi", "0 1 1 0 1 1 0 UI5 RX", rx, ui5)
}

func SeSrwi(rx Reg, ui5 int) (*IM5, error) {
	return im5("SeSrwi", "0 1 1 0 1 0 0 UI5 RX", rx, ui5)
}

func SeSrawi(rx Reg, ui5 int) (*IM5, error) {
	return im5("SeSrawi", "0 1 1 0 1 0 1 UI5 RX", rx, ui5)
}

func im5(mnemonic, spec string, rx Reg, ui5 int) (*IM5, error) {
	f, err := newIM5(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RX, rx)
	s.Set(f.UI5, ui5)
	return arch.Result(f, s.Err())
}

// EAndi ands rs with a scaled 8-bit immediate, see EncodeSCI8.
func EAndi(ra, rs Reg, ui uint32) (*SCI8, error) {
	return sci8("EAndi", "0 0 0 1 1 0 RS RA 1 1 0 0 0 F SCL UI8", ra, rs, ui)
}

// EAndiRC is e_andi., which also updates CR0.
func EAndiRC(ra, rs Reg, ui uint32) (*SCI8, error) {
	return sci8("EAndiRC", "0 0 0 1 1 0 RS RA 1 1 0 0 1 F SCL UI8", ra, rs, ui)
}

func EOri(ra, rs Reg, ui uint32) (*SCI8, error) {
	return sci8("EOri", "0 0 0 1 1 0 RS RA 1 1 0 1 0 F SCL UI8", ra, rs, ui)
}

func EXori(ra, rs Reg, ui uint32) (*SCI8, error) {
	return sci8("EXori", "0 0 0 1 1 0 RS RA 1 1 1 0 0 F SCL UI8", ra, rs, ui)
}

func sci8(mnemonic, spec string, ra, rs Reg, ui uint32) (*SCI8, error) {
	ui8, scale, fill, err := EncodeSCI8(ui)
	if err != nil {
		return nil, err
	}
	f, err := newSCI8(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RA, ra)
	setReg(&s, f.RS, rs)
	s.SetBool(f.F, fill)
	s.Set(f.SCL, scale)
	s.Set(f.UI8, ui8)
	return arch.Result(f, s.Err())
}

func EAnd2i(rd Reg, ui int) (*I16L, error) {
	return i16l("EAnd2i", "0 1 1 1 0 0 RD UI[0:4] 1 1 0 0 1 UI[5:15]", rd, ui)
}

func EOr2i(rd Reg, ui int) (*I16L, error) {
	return i16l("EOr2i", "0 1 1 1 0 0 RD UI[0:4] 1 1 0 0 0 UI[5:15]", rd, ui)
}

func i16l(mnemonic, spec string, rd Reg, ui int) (*I16L, error) {
	f, err := newI16L(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RD, rd)
	s.Set(f.UI, ui)
	return arch.Result(f, s.Err())
}

// Moves

func SeMr(rx, ry Reg) (*RR, error) {
	return rr("SeMr", "0 0 0 0 0 0 0 1 RY RX", rx, ry)
}

// SeMtar moves a register from r0-r7 or r24-r31 to one of r8-r23.
func SeMtar(arx, ry Reg) (*RR, error) {
	return rr("SeMtar", "0 0 0 0 0 0 1 0 RY ARX", arx, ry)
}

// SeMfar moves one of r8-r23 to a register from r0-r7 or r24-r31.
func SeMfar(rx, ary Reg) (*RR, error) {
	return rr("SeMfar", "0 0 0 0 0 0 1 1 ARY RX", rx, ary)
}

func SeMtctr(rx Reg) (*R, error) {
	return oneReg("SeMtctr", "0 0 0 0 0 0 0 0 1 0 1 1 RX", rx)
}

func SeMfctr(rx Reg) (*R, error) {
	return oneReg("SeMfctr", "0 0 0 0 0 0 0 0 1 0 1 0 RX", rx)
}

func SeMtlr(rx Reg) (*R, error) {
	return oneReg("SeMtlr", "0 0 0 0 0 0 0 0 1 0 0 1 RX", rx)
}

func SeMflr(rx Reg) (*R, error) {
	return oneReg("SeMflr", "0 0 0 0 0 0 0 0 1 0 0 0 RX", rx)
}

func SeNot(rx Reg) (*R, error) {
	return oneReg("SeNot", "0 0 0 0 0 0 0 0 0 0 1 0 RX", rx)
}

func SeNeg(rx Reg) (*R, error) {
	return oneReg("SeNeg", "0 0 0 0 0 0 0 0 0 0 1 1 RX", rx)
}

func oneReg(mnemonic, spec string, rx Reg) (*R, error) {
	f, err := newR(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RX, rx)
	return arch.Result(f, s.Err())
}

func Mtspr(spr SPR, rs Reg) (*XFX, error) {
	return xfx("Mtspr", "0 1 1 1 1 1 RS SPRN[5:9] SPRN[0:4] 0 1 1 1 0 1 0 0 1 1 0", spr, rs)
}

func Mfspr(rd Reg, spr SPR) (*XFX, error) {
	return xfx("Mfspr", "0 1 1 1 1 1 RD SPRN[5:9] SPRN[0:4] 0 1 0 1 0 1 0 0 1 1 0", spr, rd)
}

func xfx(mnemonic, spec string, spr SPR, rs Reg) (*XFX, error) {
	f, err := newXFX(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RS, rs)
	s.Set(f.SPRN, int(spr))
	return arch.Result(f, s.Err())
}

func Mfcr(rd Reg) (*XFX, error) {
	f, err := newXFX("Mfcr", "0 1 1 1 1 1 RD 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 1 0 0 1 1 0")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RS, rd)
	return arch.Result(f, s.Err())
}

// Mtcrf copies the fields of rs selected by the crm bit mask into the
// condition register.
func Mtcrf(crm int, rs Reg) (*XFXCRM, error) {
	f, err := newXFXCRM("Mtcrf", "0 1 1 1 1 1 RS 0 CRM 0 0 0 1 0 0 1 0 0 0 0 0")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RS, rs)
	s.Set(f.CRM, crm)
	return arch.Result(f, s.Err())
}

// Wrteei sets or clears MSR[EE].
func Wrteei(e bool) (*X, error) {
	f, err := newX("Wrteei", "0 1 1 1 1 1 E 0 0 1 0 1 0 0 0 1 1 0")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.SetBool(f.E, e)
	return arch.Result(f, s.Err())
}

// Compares

func SeCmp(rx, ry Reg) (*RR, error) {
	return rr("SeCmp", "0 0 0 0 1 1 0 0 RY RX", rx, ry)
}

func SeCmpl(rx, ry Reg) (*RR, error) {
	return rr("SeCmpl", "0 0 0 0 1 1 0 1 RY RX", rx, ry)
}

func SeCmph(rx, ry Reg) (*RR, error) {
	return rr("SeCmph", "0 0 0 0 1 1 1 0 RY RX", rx, ry)
}

func SeCmphl(rx, ry Reg) (*RR, error) {
	return rr("SeCmphl", "0 0 0 0 1 1 1 1 RY RX", rx, ry)
}

// SeCmpli compares rx with an unsigned value from 1 to 32.
func SeCmpli(rx Reg, oim5 int) (*OIM5, error) {
	return oim5Op("SeCmpli", "0 0 1 0 0 0 1 OIM5 RX", rx, oim5)
}

// SeCmpi compares rx, as a signed value, with 0 to 31.
func SeCmpi(rx Reg, ui5 int) (*IM5, error) {
	return im5("SeCmpi", "0 0 1 0 1 0 1 UI5 RX", rx, ui5)
}

// Branches. Displacements are relative to the branch and even.

func EB(bd24 int) (*BD24, error) {
	return bd24Op("EB", "0 1 1 1 1 0 0 BD24 0", bd24)
}

func EBl(bd24 int) (*BD24, error) {
	return bd24Op("EBl", "0 1 1 1 1 0 0 BD24 1", bd24)
}

func bd24Op(mnemonic, spec string, bd int) (*BD24, error) {
	f, err := newBD24(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.BD24, bd)
	return arch.Result(f, s.Err())
}

// EBc branches when condition register bit bi matches bo.
func EBc(bo BO, bi CRBit, bd15 int) (*BC, error) {
	f, err := newBC("EBc", "0 1 1 1 1 0 1 0 0 0 BO32 BI32 BD15 0")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.BO32, int(bo))
	s.Set(f.BI32, int(bi))
	s.Set(f.BD15, bd15)
	return arch.Result(f, s.Err())
}

func EBeq(bd15 int) (*BC, error) {
	return bc("EBeq", "0 1 1 1 1 0 1 0 0 0 0 1 0 0 1 0 BD15 0", bd15)
}

func EBne(bd15 int) (*BC, error) {
	return bc("EBne", "0 1 1 1 1 0 1 0 0 0 0 0 0 0 1 0 BD15 0", bd15)
}

func EBgt(bd15 int) (*BC, error) {
	return bc("EBgt", "0 1 1 1 1 0 1 0 0 0 0 1 0 0 0 1 BD15 0", bd15)
}

func EBlt(bd15 int) (*BC, error) {
	return bc("EBlt", "0 1 1 1 1 0 1 0 0 0 0 1 0 0 0 0 BD15 0", bd15)
}

func bc(mnemonic, spec string, bd int) (*BC, error) {
	f, err := newBC(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.BD15, bd)
	return arch.Result(f, s.Err())
}

func SeB(bd8 int) (*BD8, error) {
	return bd8Op("SeB", "1 1 1 0 1 0 0 0 BD8", bd8)
}

func SeBl(bd8 int) (*BD8, error) {
	return bd8Op("SeBl", "1 1 1 0 1 0 0 1 BD8", bd8)
}

func bd8Op(mnemonic, spec string, bd int) (*BD8, error) {
	f, err := newBD8(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.BD8, bd)
	return arch.Result(f, s.Err())
}

// SeBc is the 16-bit conditional branch. Only IfFalse and IfTrue can be
// encoded.
func SeBc(bo BO, bi CRBit, bd8 int) (*SeBC, error) {
	f, err := newSeBC("SeBc", "1 1 1 0 0 BO16 BI16 BD8")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.BO16, int(bo))
	s.Set(f.BI16, int(bi))
	s.Set(f.BD8, bd8)
	return arch.Result(f, s.Err())
}

func SeBeq(bd8 int) (*SeBC, error) {
	return sebc("SeBeq", "1 1 1 0 0 1 1 0 BD8", bd8)
}

func SeBne(bd8 int) (*SeBC, error) {
	return sebc("SeBne", "1 1 1 0 0 0 1 0 BD8", bd8)
}

func SeBlt(bd8 int) (*SeBC, error) {
	return sebc("SeBlt", "1 1 1 0 0 1 0 0 BD8", bd8)
}

func SeBgt(bd8 int) (*SeBC, error) {
	return sebc("SeBgt", "1 1 1 0 0 1 0 1 BD8", bd8)
}

func sebc(mnemonic, spec string, bd int) (*SeBC, error) {
	f, err := newSeBC(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	s.Set(f.BD8, bd)
	return arch.Result(f, s.Err())
}

func SeBlr() (*C, error) {
	return newC("SeBlr", "0 0 0 0 0 0 0 0 0 0 0 0 0 1 0 0")
}

func SeBlrl() (*C, error) {
	return newC("SeBlrl", "0 0 0 0 0 0 0 0 0 0 0 0 0 1 0 1")
}

func SeBctr() (*C, error) {
	return newC("SeBctr", "0 0 0 0 0 0 0 0 0 0 0 0 0 1 1 0")
}

func SeBctrl() (*C, error) {
	return newC("SeBctrl", "0 0 0 0 0 0 0 0 0 0 0 0 0 1 1 1")
}

func SeIsync() (*C, error) {
	return newC("SeIsync", "0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 1")
}

func SeRfi() (*C, error) {
	return newC("SeRfi", "0 0 0 0 0 0 0 0 0 0 0 0 1 0 0 0")
}

// Loads and stores. The 16-bit forms take a byte offset that must be a
// multiple of the access size.

func EStw(rs, ra Reg, d int) (*D, error) {
	return d16("EStw", "0 1 0 1 0 1 RS RA D", rs, ra, d)
}

func ELwz(rd, ra Reg, d int) (*D, error) {
	return d16("ELwz", "0 1 0 1 0 0 RD RA D", rd, ra, d)
}

func EStb(rs, ra Reg, d int) (*D, error) {
	return d16("EStb", "0 0 1 1 0 1 RS RA D", rs, ra, d)
}

func ELbz(rd, ra Reg, d int) (*D, error) {
	return d16("ELbz", "0 0 1 1 0 0 RD RA D", rd, ra, d)
}

func d16(mnemonic, spec string, rd, ra Reg, d int) (*D, error) {
	f, err := newD(mnemonic, "D16", spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RD, rd)
	setReg(&s, f.RA, ra)
	s.Set(f.SI, d)
	return arch.Result(f, s.Err())
}

func SeStw(rz, rx Reg, offset int) (*SD4, error) {
	return sd4("SeStw", "1 1 0 1 SD4 RZ RX", 4, rz, rx, offset)
}

func SeSth(rz, rx Reg, offset int) (*SD4, error) {
	return sd4("SeSth", "1 0 1 1 SD4 RZ RX", 2, rz, rx, offset)
}

func SeStb(rz, rx Reg, offset int) (*SD4, error) {
	return sd4("SeStb", "1 0 0 1 SD4 RZ RX", 1, rz, rx, offset)
}

func SeLwz(rz, rx Reg, offset int) (*SD4, error) {
	return sd4("SeLwz", "1 1 0 0 SD4 RZ RX", 4, rz, rx, offset)
}

func SeLhz(rz, rx Reg, offset int) (*SD4, error) {
	return sd4("SeLhz", "1 0 1 0 SD4 RZ RX", 2, rz, rx, offset)
}

func SeLbz(rz, rx Reg, offset int) (*SD4, error) {
	return sd4("SeLbz", "1 0 0 0 SD4 RZ RX", 1, rz, rx, offset)
}

func sd4(mnemonic, spec string, size int, rz, rx Reg, offset int) (*SD4, error) {
	f, err := newSD4(mnemonic, spec, size)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RZ, rz)
	setReg(&s, f.RX, rx)
	s.Set(f.SD4, offset)
	return arch.Result(f, s.Err())
}

// EStmw stores rs to r31 at ra+d.
func EStmw(rs, ra Reg, d int) (*D8, error) {
	return d8("EStmw", "0 0 0 1 1 0 RS RA 0 0 0 0 1 0 0 1 D8", rs, ra, d)
}

// ELmw loads rd to r31 from ra+d.
func ELmw(rd, ra Reg, d int) (*D8, error) {
	return d8("ELmw", "0 0 0 1 1 0 RD RA 0 0 0 0 1 0 0 0 D8", rd, ra, d)
}

func d8(mnemonic, spec string, rs, ra Reg, d int) (*D8, error) {
	f, err := newD8(mnemonic, spec)
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RS, rs)
	setReg(&s, f.RA, ra)
	s.Set(f.D8, d)
	return arch.Result(f, s.Err())
}

// Immediate loads

func ELi(rd Reg, li20 int) (*I20, error) {
	f, err := newI20("ELi", "0 1 1 1 0 0 RD LI20[4:8] 0 LI20[0:3] LI20[9:19]")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RD, rd)
	s.Set(f.I20, li20)
	return arch.Result(f, s.Err())
}

// ELis loads ui shifted left by 16 bits.
func ELis(rd Reg, ui int) (*I16L, error) {
	return i16l("ELis", "0 1 1 1 0 0 RD UI[0:4] 1 1 1 0 0 UI[5:15]", rd, ui)
}

func SeLi(rx Reg, ui7 int) (*IM7, error) {
	f, err := newIM7("SeLi", "0 1 0 0 1 UI7 RX")
	if err != nil {
		return nil, err
	}
	var s arch.Setter
	setReg(&s, f.RX, rx)
	s.Set(f.UI7, ui7)
	return arch.Result(f, s.Err())
}

package riscv

import (
	"strings"
	"sync"

	"github.com/apparentlymart/isaenc/arch"
)

// format is one of the instruction formats of the manual. Named fields may
// only appear at their own position and immediate bits only inside the
// immediate regions. Everything else must be literal bits.
type format struct {
	name   string
	width  int
	fields map[string][2]int
	imms   [][2]int
}

var (
	formR = &format{name: "R", width: 32, fields: map[string][2]int{
		"RS2": {7, 12}, "RS1": {12, 17}, "RD": {20, 25},
	}}
	formI = &format{name: "I", width: 32, fields: map[string][2]int{
		"CSR": {0, 12}, "PRED": {4, 8}, "SUCC": {8, 12}, "SHAMT": {7, 12},
		"RS1": {12, 17}, "UIMM": {12, 17}, "RD": {20, 25},
	}, imms: [][2]int{{0, 12}}}
	formS = &format{name: "S", width: 32, fields: map[string][2]int{
		"RS2": {7, 12}, "RS1": {12, 17},
	}, imms: [][2]int{{0, 7}, {20, 25}}}
	formB = &format{name: "B", width: 32, fields: formS.fields, imms: formS.imms}
	formU = &format{name: "U", width: 32, fields: map[string][2]int{
		"RD": {20, 25},
	}, imms: [][2]int{{0, 20}}}
	formJ = &format{name: "J", width: 32, fields: formU.fields, imms: formU.imms}

	formCR = &format{name: "CR", width: 16, fields: map[string][2]int{
		"RD": {4, 9}, "RS1": {4, 9}, "RS2": {9, 14},
	}}
	formCI = &format{name: "CI", width: 16, fields: map[string][2]int{
		"RD": {4, 9}, "RS1": {4, 9},
	}, imms: [][2]int{{3, 4}, {9, 14}}}
	formCSS = &format{name: "CSS", width: 16, fields: map[string][2]int{
		"RS2": {9, 14},
	}, imms: [][2]int{{3, 9}}}
	formCIW = &format{name: "CIW", width: 16, fields: map[string][2]int{
		"RD'": {11, 14},
	}, imms: [][2]int{{3, 11}}}
	formCL = &format{name: "CL", width: 16, fields: map[string][2]int{
		"RS1'": {6, 9}, "RD'": {11, 14},
	}, imms: [][2]int{{3, 6}, {9, 11}}}
	formCS = &format{name: "CS", width: 16, fields: map[string][2]int{
		"RS1'": {6, 9}, "RS2'": {11, 14},
	}, imms: formCL.imms}
	formCA = &format{name: "CA", width: 16, fields: map[string][2]int{
		"RD'": {6, 9}, "RS1'": {6, 9}, "RS2'": {11, 14},
	}}
	formCB = &format{name: "CB", width: 16, fields: map[string][2]int{
		"RD'": {6, 9}, "RS1'": {6, 9},
	}, imms: [][2]int{{3, 6}, {9, 14}}}
	formCJ = &format{name: "CJ", width: 16, imms: [][2]int{{3, 14}}}
)

// Immediate groups are written as a name and a bit list, "IMM[11:5]".
// Unsigned immediates use the UIMM and SHAMT names.
var immPrefixes = []struct {
	prefix string
	signed bool
}{
	{"UIMM[", false},
	{"SHAMT[", false},
	{"IMM[", true},
	{"OFFSET[", true},
}

// Longer names first so that RS1' is not read as RS1.
var fieldNames = []string{"RS1'", "RS2'", "RD'", "SHAMT", "PRED", "SUCC", "UIMM", "RS1", "RS2", "CSR", "RD"}

type literal struct {
	at, from, to int
}

type immGroup struct {
	start, end int
	spec       *immSpec
}

// encoding is what a spec says about one instruction: its literal bits,
// which named fields it has and where its immediate lives.
type encoding struct {
	lits   []literal
	fields map[string]int
	imms   []immGroup
	signed bool
}

type encodingKey struct {
	form string
	spec string
}

var encodings sync.Map

func (f *format) parse(spec string) (*encoding, error) {
	key := encodingKey{f.name, spec}
	if cached, ok := encodings.Load(key); ok {
		return cached.(*encoding), nil
	}
	enc, err := f.walk(spec)
	if err != nil {
		return nil, err
	}
	encodings.Store(key, enc)
	return enc, nil
}

func (f *format) mismatch(spec, msg string, args ...interface{}) error {
	return arch.FormMismatchf("%s: spec %q: "+msg, append([]interface{}{f.name, spec}, args...)...)
}

func (f *format) walk(spec string) (*encoding, error) {
	enc := &encoding{fields: make(map[string]int)}
	pos, bit := 0, 0
	haveSign := false

next:
	for pos < len(spec) {
		if c := spec[pos]; c == '0' || c == '1' {
			start := pos
			for pos < len(spec) && (spec[pos] == '0' || spec[pos] == '1') {
				pos++
			}
			enc.lits = append(enc.lits, literal{at: bit, from: start, to: pos})
			bit += pos - start
			continue
		}

		for _, p := range immPrefixes {
			if !strings.HasPrefix(spec[pos:], p.prefix) {
				continue
			}
			end := strings.IndexByte(spec[pos:], ']')
			if end < 0 {
				return nil, f.mismatch(spec, "unterminated immediate at %s", spec[pos:])
			}
			raw := spec[pos+len(p.prefix)-1 : pos+end+1]
			s, err := parseImmSpec(raw)
			if err != nil {
				return nil, f.mismatch(spec, "%s", err)
			}
			if haveSign && enc.signed != p.signed {
				return nil, f.mismatch(spec, "mixes signed and unsigned immediates")
			}
			enc.signed, haveSign = p.signed, true
			if !f.immRegion(bit, bit+s.width) {
				return nil, f.mismatch(spec, "immediate %s cannot be at bit %d", raw, bit)
			}
			enc.imms = append(enc.imms, immGroup{start: bit, end: bit + s.width, spec: s})
			bit += s.width
			pos += end + 1
			continue next
		}

		for _, name := range fieldNames {
			if !strings.HasPrefix(spec[pos:], name) {
				continue
			}
			at, ok := f.fields[name]
			if !ok {
				return nil, f.mismatch(spec, "%s has no %s field", f.name, name)
			}
			if at[0] != bit {
				return nil, f.mismatch(spec, "%s must be at bit %d, not %d", name, at[0], bit)
			}
			enc.fields[name] = at[0]
			bit = at[1]
			pos += len(name)
			continue next
		}

		return nil, f.mismatch(spec, "unexpected %s", spec[pos:])
	}

	if bit != f.width {
		return nil, f.mismatch(spec, "covers %d of %d bits", bit, f.width)
	}
	if len(enc.imms) > 0 {
		specs := make([]*immSpec, len(enc.imms))
		for i, g := range enc.imms {
			specs[i] = g.spec
		}
		if _, _, err := immBounds(specs); err != nil {
			return nil, f.mismatch(spec, "%s", err)
		}
	}
	return enc, nil
}

func (f *format) immRegion(start, end int) bool {
	for _, r := range f.imms {
		if r[0] <= start && end <= r[1] {
			return true
		}
	}
	return false
}

func (f *format) shape(b *arch.Builder) error {
	enc, err := f.parse(b.Spec)
	if err != nil {
		return err
	}
	for _, l := range enc.lits {
		if err := b.Literal(l.at, l.from, l.to); err != nil {
			return err
		}
	}
	return nil
}

// build creates an instruction from a spec and reports what the spec
// contains so the form can attach its operands.
func build(mnemonic string, f *format, spec string) (*arch.Instruction, *encoding, error) {
	in, err := arch.Build(mnemonic, f.name, f.width, arch.LittleEndian, spec, f.shape)
	if err != nil {
		return nil, nil, err
	}
	enc, err := f.parse(arch.Compact(spec))
	if err != nil {
		return nil, nil, err
	}
	return in, enc, nil
}

// field returns the first of the named fields the spec has, or nil when
// the spec fixes those bits.
func (e *encoding) field(in *arch.Instruction, f *format, names ...string) *arch.Field {
	for _, name := range names {
		if start, ok := e.fields[name]; ok {
			return in.Field(start, f.fields[name][1])
		}
	}
	return nil
}

func (e *encoding) imm(in *arch.Instruction) (*Imm, error) {
	if len(e.imms) == 0 {
		return nil, nil
	}
	parts := make([]*arch.Field, len(e.imms))
	specs := make([]*immSpec, len(e.imms))
	for i, g := range e.imms {
		parts[i] = in.Field(g.start, g.end)
		specs[i] = g.spec
	}
	return newImm(parts, specs, e.signed)
}

// R is the register-register format.
type R struct {
	*arch.Instruction
	Rd, Rs1, Rs2 *arch.Field
}

func newR(mnemonic, spec string) (*R, error) {
	in, enc, err := build(mnemonic, formR, spec)
	if err != nil {
		return nil, err
	}
	return &R{
		Instruction: in,
		Rd:          enc.field(in, formR, "RD"),
		Rs1:         enc.field(in, formR, "RS1"),
		Rs2:         enc.field(in, formR, "RS2"),
	}, nil
}

// I is the register-immediate format used by the arithmetic immediates,
// loads and JALR.
type I struct {
	*arch.Instruction
	Rd, Rs1 *arch.Field
	Imm     *Imm
}

func newI(mnemonic, spec string) (*I, error) {
	in, enc, err := build(mnemonic, formI, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &I{
		Instruction: in,
		Rd:          enc.field(in, formI, "RD"),
		Rs1:         enc.field(in, formI, "RS1"),
		Imm:         imm,
	}, nil
}

// Shift is the I format with a shift amount in place of the immediate's
// low bits.
type Shift struct {
	*arch.Instruction
	Rd, Rs1, Shamt *arch.Field
}

func newShift(mnemonic, spec string) (*Shift, error) {
	in, enc, err := build(mnemonic, formI, spec)
	if err != nil {
		return nil, err
	}
	return &Shift{
		Instruction: in,
		Rd:          enc.field(in, formI, "RD"),
		Rs1:         enc.field(in, formI, "RS1"),
		Shamt:       enc.field(in, formI, "SHAMT"),
	}, nil
}

// CSRAccess is the I format with a CSR number in place of the immediate.
// Src is rs1 or, for the immediate variants, a 5-bit unsigned value.
type CSRAccess struct {
	*arch.Instruction
	Rd, Src, CSR *arch.Field
}

func newCSRAccess(mnemonic, spec string) (*CSRAccess, error) {
	in, enc, err := build(mnemonic, formI, spec)
	if err != nil {
		return nil, err
	}
	return &CSRAccess{
		Instruction: in,
		Rd:          enc.field(in, formI, "RD"),
		Src:         enc.field(in, formI, "RS1", "UIMM"),
		CSR:         enc.field(in, formI, "CSR"),
	}, nil
}

// FenceForm is the I format of FENCE.
type FenceForm struct {
	*arch.Instruction
	Pred, Succ *arch.Field
}

func newFence(mnemonic, spec string) (*FenceForm, error) {
	in, enc, err := build(mnemonic, formI, spec)
	if err != nil {
		return nil, err
	}
	return &FenceForm{
		Instruction: in,
		Pred:        enc.field(in, formI, "PRED"),
		Succ:        enc.field(in, formI, "SUCC"),
	}, nil
}

// S is the store format and B the conditional branch format. Both split
// the immediate around rs1 and rs2.
type S struct {
	*arch.Instruction
	Rs1, Rs2 *arch.Field
	Imm      *Imm
}

func newS(mnemonic string, f *format, spec string) (*S, error) {
	in, enc, err := build(mnemonic, f, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &S{
		Instruction: in,
		Rs1:         enc.field(in, f, "RS1"),
		Rs2:         enc.field(in, f, "RS2"),
		Imm:         imm,
	}, nil
}

// U is the upper immediate format and J the jump format.
type U struct {
	*arch.Instruction
	Rd  *arch.Field
	Imm *Imm
}

func newU(mnemonic string, f *format, spec string) (*U, error) {
	in, enc, err := build(mnemonic, f, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &U{Instruction: in, Rd: enc.field(in, f, "RD"), Imm: imm}, nil
}

// Plain is an instruction without operands.
type Plain struct {
	*arch.Instruction
}

func newPlain(mnemonic string, f *format, spec string) (*Plain, error) {
	in, _, err := build(mnemonic, f, spec)
	if err != nil {
		return nil, err
	}
	return &Plain{in}, nil
}

// CR is the compressed register format.
type CR struct {
	*arch.Instruction
	Rd, Rs2 *arch.Field
}

func newCR(mnemonic, spec string) (*CR, error) {
	in, enc, err := build(mnemonic, formCR, spec)
	if err != nil {
		return nil, err
	}
	return &CR{
		Instruction: in,
		Rd:          enc.field(in, formCR, "RD", "RS1"),
		Rs2:         enc.field(in, formCR, "RS2"),
	}, nil
}

// CI is the compressed immediate format, and CSS its stack-relative store
// counterpart.
type CI struct {
	*arch.Instruction
	Rd  *arch.Field
	Imm *Imm
}

func newCI(mnemonic, spec string) (*CI, error) {
	in, enc, err := build(mnemonic, formCI, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &CI{Instruction: in, Rd: enc.field(in, formCI, "RD", "RS1"), Imm: imm}, nil
}

type CSS struct {
	*arch.Instruction
	Rs2 *arch.Field
	Imm *Imm
}

func newCSS(mnemonic, spec string) (*CSS, error) {
	in, enc, err := build(mnemonic, formCSS, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &CSS{Instruction: in, Rs2: enc.field(in, formCSS, "RS2"), Imm: imm}, nil
}

// CIW is the compressed wide immediate format of C.ADDI4SPN.
type CIW struct {
	*arch.Instruction
	Rd  CReg
	Imm *Imm
}

func newCIW(mnemonic, spec string) (*CIW, error) {
	in, enc, err := build(mnemonic, formCIW, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &CIW{Instruction: in, Rd: CReg{enc.field(in, formCIW, "RD'")}, Imm: imm}, nil
}

// CL and CS are the compressed load and store formats. Reg is rd' for
// loads and rs2' for stores.
type CL struct {
	*arch.Instruction
	Reg, Rs1 CReg
	Imm      *Imm
}

func newCL(mnemonic string, f *format, spec string) (*CL, error) {
	in, enc, err := build(mnemonic, f, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &CL{
		Instruction: in,
		Reg:         CReg{enc.field(in, f, "RD'", "RS2'")},
		Rs1:         CReg{enc.field(in, f, "RS1'")},
		Imm:         imm,
	}, nil
}

// CA is the compressed arithmetic format.
type CA struct {
	*arch.Instruction
	Rd, Rs2 CReg
}

func newCA(mnemonic, spec string) (*CA, error) {
	in, enc, err := build(mnemonic, formCA, spec)
	if err != nil {
		return nil, err
	}
	return &CA{
		Instruction: in,
		Rd:          CReg{enc.field(in, formCA, "RD'", "RS1'")},
		Rs2:         CReg{enc.field(in, formCA, "RS2'")},
	}, nil
}

// CB is the compressed branch format, also used by the compressed shifts
// and C.ANDI.
type CB struct {
	*arch.Instruction
	Rs1 CReg
	Imm *Imm
}

func newCB(mnemonic, spec string) (*CB, error) {
	in, enc, err := build(mnemonic, formCB, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &CB{Instruction: in, Rs1: CReg{enc.field(in, formCB, "RS1'", "RD'")}, Imm: imm}, nil
}

// CJForm is the compressed jump format.
type CJForm struct {
	*arch.Instruction
	Imm *Imm
}

func newCJ(mnemonic, spec string) (*CJForm, error) {
	in, enc, err := build(mnemonic, formCJ, spec)
	if err != nil {
		return nil, err
	}
	imm, err := enc.imm(in)
	if err != nil {
		return nil, err
	}
	return &CJForm{Instruction: in, Imm: imm}, nil
}

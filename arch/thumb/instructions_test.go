package thumb

import (
	"errors"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/apparentlymart/isaenc/internal/archtest"
	"github.com/apparentlymart/isaenc/bitvec"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
)

type opcodeBitser interface {
	OpcodeBits() *bitvec.Vector
}

func opcodeOf(t *testing.T, in arch.Instr) string {
	t.Helper()
	o, ok := in.(opcodeBitser)
	if !ok {
		t.Fatalf("%T has no opcode bits", in)
	}
	return o.OpcodeBits().String()
}

func TestEncodings(t *testing.T) {
	tests := []struct {
		name   string
		build  func() (arch.Instr, error)
		want   []byte
		opcode string
	}{
		// Arithmetic
		{"AddImmT1", func() (arch.Instr, error) { return AddImmT1(R6, R3, 1) }, []byte{0x5e, 0x1c}, "0001110"},
		{"AddImmT3 setflags", func() (arch.Instr, error) { return AddImmT3(R4, R4, 0x400000, true) }, []byte{0x14, 0xf5, 0x80, 0x04}, ""},
		{"AddImmT3", func() (arch.Instr, error) { return AddImmT3(R4, R4, 0x32, false) }, []byte{0x04, 0xf1, 0x32, 0x04}, ""},
		{"AddsReg", func() (arch.Instr, error) { return AddsReg(3, 4, 1) }, []byte{0x63, 0x18}, "0001100"},
		{"SubsReg", func() (arch.Instr, error) { return SubsReg(4, 2, 1) }, []byte{0x54, 0x1a}, "0001101"},
		{"SubImmT1", func() (arch.Instr, error) { return SubImmT1(2, 3, 1) }, []byte{0x5a, 0x1e}, "0001111"},
		{"SubImmT3", func() (arch.Instr, error) { return SubImmT3(R4, R1, 0x1000, false) }, []byte{0xa1, 0xf5, 0x80, 0x54}, ""},

		// Moves and shifts
		{"MovT1", func() (arch.Instr, error) { return MovT1(5, 1) }, []byte{0x0d, 0x46}, "01000110"},
		{"LslsImm", func() (arch.Instr, error) { return LslsImm(2, 2, 0x1b) }, []byte{0xd2, 0x06}, "00000"},
		{"LsrsImm", func() (arch.Instr, error) { return LsrsImm(3, 1, 0x10) }, []byte{0x0b, 0x0c}, "00001"},

		// Branches
		{"BT1 cc", func() (arch.Instr, error) { return BT1(CC, -28) }, []byte{0xf0, 0xd3}, "1101"},
		{"BT1 hi", func() (arch.Instr, error) { return BT1(HI, -8) }, []byte{0xfa, 0xd8}, "1101"},
		{"BT2 zero", func() (arch.Instr, error) { return BT2(0) }, []byte{0xfe, 0xe7}, "11100"},
		{"BT2 back", func() (arch.Instr, error) { return BT2(-10) }, []byte{0xf9, 0xe7}, "11100"},
		{"BT3", func() (arch.Instr, error) { return BT3(CC, -0x176) }, []byte{0xff, 0xf4, 0x43, 0xaf}, "11110100"},
		{"BT4 back", func() (arch.Instr, error) { return BT4(-0x40) }, []byte{0xff, 0xf7, 0xde, 0xbf}, "11110101"},
		{"BT4 forward", func() (arch.Instr, error) { return BT4(0x18e0 - 0xf10) }, []byte{0x00, 0xf0, 0xe6, 0xbc}, "11110101"},
		{"BLT1", func() (arch.Instr, error) { return BLT1(0x13f6) }, []byte{0x01, 0xf0, 0xf9, 0xf9}, "11110111"},

		// If-Then
		{"IT ne", func() (arch.Instr, error) { return IT(NE, "") }, []byte{0x18, 0xbf}, "10111111"},
		{"IT eq TTT", func() (arch.Instr, error) { return IT(EQ, "TTT") }, []byte{0x01, 0xbf}, "10111111"},
		{"IT cc E", func() (arch.Instr, error) { return IT(CC, "E") }, []byte{0x34, 0xbf}, "10111111"},

		// Stores and loads
		{"Str", func() (arch.Instr, error) { return Str(5, 0, 0x28) }, []byte{0x85, 0x62}, "01100"},
		{"Ldr", func() (arch.Instr, error) { return Ldr(3, 7, 4) }, []byte{0x7b, 0x68}, "01101"},
		{"StrW", func() (arch.Instr, error) { return StrW(7, 2, 4, Index(true), Writeback(true)) }, []byte{0x42, 0xf8, 0x04, 0x7f}, "1111100001001"},
		{"LdrWImm12", func() (arch.Instr, error) { return LdrWImm12(3, 4, 0x10c) }, []byte{0xd4, 0xf8, 0x0c, 0x31}, "111110001101"},
		{"LdrWLiteral", func() (arch.Instr, error) { return LdrWLiteral(12, 8) }, []byte{0xdf, 0xf8, 0x08, 0xc0}, "111110001011111"},
		{"StrWReg", func() (arch.Instr, error) { return StrWReg(3, 10, 7) }, []byte{0x4a, 0xf8, 0x07, 0x30}, ""},
		{"LdrWReg", func() (arch.Instr, error) { return LdrWReg(0, 3, 0, ShiftBy(2)) }, []byte{0x53, 0xf8, 0x20, 0x00}, ""},

		// Multiple
		{"Stmia", func() (arch.Instr, error) { return Stmia(5, []Reg{0, 1, 2, 3}) }, []byte{0x0f, 0xc5}, "11000"},
		{"Ldmia", func() (arch.Instr, error) { return Ldmia(3, []Reg{1, 2, 3}) }, []byte{0x0e, 0xcb}, "11001"},
		{"StmiaW", func() (arch.Instr, error) { return StmiaW(4, []Reg{0, 1, 2, 3}, false) }, []byte{0x84, 0xe8, 0x0f, 0x00}, "111010001000"},
		{"LdmiaW", func() (arch.Instr, error) {
			return LdmiaW(0, []Reg{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, false)
		}, []byte{0x90, 0xe8, 0xff, 0x0f}, ""},

		// Logic
		{"Ands", func() (arch.Instr, error) { return Ands(3, 2) }, []byte{0x13, 0x40}, ""},
		{"Orrs", func() (arch.Instr, error) { return Orrs(2, 3) }, []byte{0x1a, 0x43}, ""},
		{"Eors", func() (arch.Instr, error) { return Eors(2, 1) }, []byte{0x4a, 0x40}, ""},
		{"AndImm", func() (arch.Instr, error) { return AndImm(3, 3, 0x10000000) }, []byte{0x03, 0xf0, 0x80, 0x53}, ""},
		{"OrrImm", func() (arch.Instr, error) { return OrrImm(3, 3, 0x5f80000) }, []byte{0x43, 0xf0, 0xbf, 0x63}, ""},
		{"EorImm", func() (arch.Instr, error) { return EorImm(3, 3, 0x100000) }, []byte{0x83, 0xf4, 0x80, 0x13}, ""},

		// Miscellaneous
		{"Uxtb", func() (arch.Instr, error) { return Uxtb(3, 3) }, []byte{0xdb, 0xb2}, ""},
		{"Pop", func() (arch.Instr, error) { return Pop([]Reg{R7, PC}) }, []byte{0x80, 0xbd}, ""},
		{"Push", func() (arch.Instr, error) { return Push([]Reg{R7, LR}) }, []byte{0x80, 0xb5}, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in, err := test.build()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, in.Bytes()); diff != "" {
				t.Errorf("wrong bytes\n%s\n%s", diff, spew.Sdump(in))
			}
			if got, want := in.SizeBytes(), len(test.want); got != want {
				t.Errorf("SizeBytes() = %d, want %d", got, want)
			}
			archtest.RoundTrip(t, in)
			if test.opcode == "" {
				return
			}
			got := opcodeOf(t, in)
			if want := "0b" + test.opcode; got != want {
				t.Errorf("wrong opcode bits\ngot:  %s\nwant: %s", got, want)
			}
		})
	}
}

func TestOperandReadBack(t *testing.T) {
	cb, err := BT1(CC, -28)
	if err != nil {
		t.Fatal(err)
	}
	if got := cb.Imm8.Get(); got != -16 {
		t.Errorf("imm8 = %d, want -16", got)
	}
	if got := cb.Cond.Get(); got != int64(CC) {
		t.Errorf("cond = %d, want %d", got, CC)
	}
	if got := cb.Offset(); got != -28 {
		t.Errorf("offset = %d, want -28", got)
	}

	bw, err := BT4(2512)
	if err != nil {
		t.Fatal(err)
	}
	if got := bw.Offset(); got != 2512 {
		t.Errorf("offset = %d, want 2512", got)
	}
	if got, want := bw.Encoding.Get(), int64(0b000000000000010011100110); got != want {
		t.Errorf("encoding = %#b, want %#b", got, want)
	}

	ccw, err := BT3(CC, -0x176)
	if err != nil {
		t.Fatal(err)
	}
	if got := ccw.Offset(); got != -0x176 {
		t.Errorf("offset = %d, want %d", got, -0x176)
	}

	lit, err := LdrWLiteral(12, -8)
	if err != nil {
		t.Fatal(err)
	}
	if lit.U.Get() != 0 || lit.Imm12.Get() != 8 || lit.Rt.Get() != 12 {
		t.Errorf("wrong fields: U=%d imm12=%d Rt=%d", lit.U.Get(), lit.Imm12.Get(), lit.Rt.Get())
	}
}

func TestBranchRanges(t *testing.T) {
	tests := []struct {
		name  string
		build func(offset int) error
		min   int
		max   int
	}{
		{"BT1", func(o int) error { _, err := BT1(EQ, o); return err }, -252, 258},
		{"BT2", func(o int) error { _, err := BT2(o); return err }, -2044, 2050},
		{"BT3", func(o int) error { _, err := BT3(EQ, o); return err }, -1048572, 1048578},
		{"BT4", func(o int) error { _, err := BT4(o); return err }, -16777212, 16777218},
		{"BLT1", func(o int) error { _, err := BLT1(o); return err }, -16777212, 16777218},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, o := range []int{test.min, test.max, 0} {
				if err := test.build(o); err != nil {
					t.Errorf("offset %d: unexpected error: %s", o, err)
				}
			}
			for _, o := range []int{test.min - 2, test.max + 2, 3} {
				if err := test.build(o); !errors.Is(err, arch.ErrRange) {
					t.Errorf("offset %d: expected a range error, got %v", o, err)
				}
			}
		})
	}
}

func TestStoreLoadChecks(t *testing.T) {
	rangeErr := []struct {
		name string
		err  error
	}{
		{"Str unaligned", second(Str(R0, R1, 1))},
		{"Str too far", second(Str(R0, R1, 128))},
		{"Str high register", second(Str(R8, R1, 4))},
		{"Strh unaligned", second(Strh(R0, R1, 3))},
		{"Strb too far", second(Strb(R0, R1, 32))},
		{"Ldr negative", second(Ldr(R0, R1, -4))},
		{"StrW too far", second(StrW(R0, R1, 256))},
		{"LdrW too far back", second(LdrW(R0, R1, -256))},
		{"StrWImm12 negative", second(StrWImm12(R0, R1, -1))},
		{"LdrWImm12 too far", second(LdrWImm12(R0, R1, 4096))},
		{"LdrWLiteral too far", second(LdrWLiteral(R0, 4096))},
		{"StrWReg shift", second(StrWReg(R0, R1, R2, ShiftBy(4)))},
		{"Stmia high register", second(Stmia(R0, []Reg{R8}))},
		{"StmiaW sp", second(StmiaW(R0, []Reg{SP}, false))},
		{"StmiaW pc", second(StmiaW(R0, []Reg{PC}, false))},
		{"LdmiaW base pc", second(LdmiaW(PC, []Reg{R0}, false))},
		{"Ands high register", second(Ands(R8, R0))},
		{"Push r8", second(Push([]Reg{R8}))},
		{"Pop lr", second(Pop([]Reg{LR}))},
		{"AddImmT1 imm3", second(AddImmT1(R0, R0, 8))},
		{"AndImm unencodable", second(AndImm(R0, R0, 0xaa0f0000))},
	}
	for _, test := range rangeErr {
		if !errors.Is(test.err, arch.ErrRange) {
			t.Errorf("%s: expected a range error, got %v", test.name, test.err)
		}
	}

	if _, err := StrW(R0, R1, 4, Byte(), Halfword()); !errors.Is(err, arch.ErrFlagConflict) {
		t.Errorf("expected a flag conflict, got %v", err)
	}
	if _, err := LdrWImm12(R0, R1, 4, Byte(), Halfword()); !errors.Is(err, arch.ErrFlagConflict) {
		t.Errorf("expected a flag conflict, got %v", err)
	}
	if _, err := IT(EQ, "TX"); !errors.Is(err, arch.ErrInvalidArgument) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
	if _, err := IT(EQ, "TTTT"); !errors.Is(err, arch.ErrInvalidArgument) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}

	if _, err := Str(R0, R1, 4); err != nil {
		t.Errorf("aligned word store failed: %s", err)
	}
	if _, err := LdmiaW(R0, []Reg{PC}, true); err != nil {
		t.Errorf("loading pc failed: %s", err)
	}
}

func TestAccessSize(t *testing.T) {
	tests := []struct {
		opts []AccessOption
		want int64
	}{
		{nil, 2},
		{[]AccessOption{Byte()}, 0},
		{[]AccessOption{Halfword()}, 1},
	}
	for _, test := range tests {
		in, err := StrWImm12(R0, R1, 0x10, test.opts...)
		if err != nil {
			t.Fatal(err)
		}
		if got := in.Wordmode.Get(); got != test.want {
			t.Errorf("wordmode = %d, want %d", got, test.want)
		}
	}
}

func TestPostIndexed(t *testing.T) {
	in, err := LdrW(R1, R2, -4, Index(false), Writeback(true))
	if err != nil {
		t.Fatal(err)
	}
	if in.P.Get() != 0 || in.U.Get() != 0 || in.W.Get() != 1 || in.Imm8.Get() != 4 {
		t.Errorf("wrong fields: P=%d U=%d W=%d imm8=%d", in.P.Get(), in.U.Get(), in.W.Get(), in.Imm8.Get())
	}
}

func second(_ interface{}, err error) error {
	return err
}

// Reading every operand and writing the value back must leave the
// encoding unchanged.
func TestCatalogRoundTrip(t *testing.T) {
	for _, e := range Catalog() {
		t.Run(e.Mnemonic, func(t *testing.T) {
			in, err := e.Build()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			m, ok := in.(arch.Matcher)
			if !ok {
				t.Fatalf("%T is not a Matcher", in)
			}
			before := in.Bytes()
			test, mask := m.Match()
			for i := range before {
				if before[i]&mask[i] != test[i] {
					t.Fatalf("byte %d: %#x masked by %#x is not %#x", i, before[i], mask[i], test[i])
				}
			}
			archtest.RoundTrip(t, in)
		})
	}
}

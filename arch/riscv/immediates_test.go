package riscv

import (
	"errors"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/google/go-cmp/cmp"
)

func TestBuildImmediates(t *testing.T) {
	tests := []struct {
		name  string
		v     int64
		specs []string
		want  []uint64
	}{
		{"jump target and slice", 0xf1c, []string{"[11|4|9:8|10|6|7|3:1|5]", "[5:3]"}, []uint64{1996, 3}},
		{"negative", -0x30, []string{"[9]", "[4|6|8:7|5]"}, []uint64{1, 30}},
		{"wide", 0x24, []string{"[5:4|9:6|2|3]"}, []uint64{130}},
		{"single bits", 0b101, []string{"[0]", "[1]", "[2]"}, []uint64{1, 0, 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := BuildImmediates(test.v, test.specs...)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("wrong fields\n%s", diff)
			}
		})
	}
}

func TestBuildImmediatesInvalid(t *testing.T) {
	for _, spec := range []string{"11|4", "[]", "[4:9]", "[a]", "[3:3]", "[1|]", "[64]"} {
		t.Run(spec, func(t *testing.T) {
			_, err := BuildImmediates(0, spec)
			if !errors.Is(err, arch.ErrInvalidArgument) {
				t.Errorf("expected an invalid argument error, got %v", err)
			}
		})
	}
}

func TestImmDecodeInvertsEncode(t *testing.T) {
	s, err := parseImmSpec("[11|4|9:8|10|6|7|3:1|5]")
	if err != nil {
		t.Fatal(err)
	}
	for v := uint64(0); v < 1<<12; v += 2 {
		if got := s.decode(s.encode(v)); got != v {
			t.Fatalf("decode(encode(%#x)) = %#x", v, got)
		}
	}
}

func TestCompactReg(t *testing.T) {
	for r := X8; r <= X15; r++ {
		got, err := CompactReg(r)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", r, err)
		}
		if got != int(r-X8) {
			t.Errorf("CompactReg(%s) = %d, want %d", r, got, r-X8)
		}
	}
	for _, r := range []Reg{X0, X7, X16, X31} {
		if _, err := CompactReg(r); !errors.Is(err, arch.ErrRange) {
			t.Errorf("CompactReg(%s): expected a range error, got %v", r, err)
		}
	}
}

func TestNames(t *testing.T) {
	if got := A0.Name(); got != "a0" {
		t.Errorf("A0.Name() = %q", got)
	}
	if got := Reg(40).Name(); got != "x40" {
		t.Errorf("Reg(40).Name() = %q", got)
	}
	if got := Mtvec.String(); got != "mtvec" {
		t.Errorf("Mtvec.String() = %q", got)
	}
	if got := CSR(0x7c0).String(); got != "csr0x7c0" {
		t.Errorf("CSR(0x7c0).String() = %q", got)
	}
}

package vle

import (
	"errors"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/google/go-cmp/cmp"
)

func mnemonicOf(in arch.Instr) string {
	switch in := in.(type) {
	case *IM7:
		return in.Mnemonic
	case *I20:
		return in.Mnemonic
	case *I16L:
		return in.Mnemonic
	case *OIM5:
		return in.Mnemonic
	case *D:
		return in.Mnemonic
	}
	return ""
}

func TestAutoLoadI(t *testing.T) {
	tests := []struct {
		name      string
		rd        Reg
		imm       int64
		mnemonics []string
	}{
		{"short", R1, 3, []string{"SeLi"}},
		{"short limit", R1, 0x7f, []string{"SeLi"}},
		{"high register", R10, 3, []string{"ELi"}},
		{"negative", R3, -0x7ff00, []string{"ELi"}},
		{"20 bits", R3, 0x7ffff, []string{"ELi"}},
		{"split short add", R3, 0x40020001, []string{"ELis", "SeAddi"}},
		{"split short add limit", R3, 0x40020020, []string{"ELis", "SeAddi"}},
		{"split past short add", R3, 0x40020021, []string{"ELis", "EAdd16i"}},
		{"split long add", R31, 0x40027fff, []string{"ELis", "EAdd16i"}},
		{"split high register", R12, 0x40020001, []string{"ELis", "EAdd16i"}},
		{"upper half only", R3, 0x40020000, []string{"ELis"}},
		{"negative upper half", R3, -0x100000, []string{"ELis"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := AutoLoadI(test.rd, test.imm)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			ins, err := a.Expand()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			var got []string
			for _, in := range ins {
				got = append(got, mnemonicOf(in))
			}
			if diff := cmp.Diff(test.mnemonics, got); diff != "" {
				t.Errorf("wrong instructions\n%s", diff)
			}
		})
	}
}

func TestAutoLoadIBytes(t *testing.T) {
	a, err := AutoLoadI(R31, 0x40027fff)
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	// e_lis r31,0x4002; e_add16i r31,r31,0x7fff
	want := []byte{0x73, 0xe8, 0xe0, 0x02, 0x1f, 0xff, 0x7f, 0xff}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong bytes\n%s", diff)
	}
	if n, _ := a.SizeBytes(); n != 8 {
		t.Errorf("SizeBytes() = %d, want 8", n)
	}

	a, err = AutoLoadI(R3, 0x40020001)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := a.SizeBytes(); n != 6 {
		t.Errorf("SizeBytes() = %d, want 6", n)
	}
}

func TestAutoLoadIErrors(t *testing.T) {
	a, err := AutoLoadI(R3, 0x40028000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Bytes(); !errors.Is(err, arch.ErrUnimplemented) {
		t.Errorf("low half 0x8000: expected an unimplemented error, got %v", err)
	}

	if _, err := AutoLoadI(R3, 0x100000000); !errors.Is(err, arch.ErrRange) {
		t.Errorf("33 bits: expected a range error, got %v", err)
	}
	if _, err := AutoLoadI(32, 0); !errors.Is(err, arch.ErrRange) {
		t.Errorf("r32: expected a range error, got %v", err)
	}
}

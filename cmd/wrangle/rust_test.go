package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func addiArch() *Arch {
	test := bitString{0x13, 0x00, 0x00, 0x00}
	mask := bitString{0x7f, 0x70, 0x00, 0x00}
	return &Arch{
		Name:     "riscv",
		TypeName: "Riscv",
		Groups:   Groups{"immediate": {}},
		Ops: []*Operation{
			{
				Arch:     "riscv",
				Group:    "immediate",
				Mnemonic: "Addi",
				FuncName: "addi",
				TypeName: "Addi",
				Size:     4,
				Encoding: bitString{0x93, 0x80, 0x00, 0x00},
				Test:     test,
				Mask:     mask,
				Steps:    ParseMatchSteps(test, mask),
			},
		},
	}
}

func TestGenerateRustOperations(t *testing.T) {
	var b strings.Builder
	if err := generateRustOperations(&b, addiArch()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := `/// Enumeration of the riscv operations with known encodings.
pub enum OperationRiscv {

    // immediate

    /// Addi (4 bytes)
    Addi,
}

impl OperationRiscv {
    /// Returns the operation at the start of raw and its length in bytes.
    pub fn decode_raw(raw: &[u8]) -> Option<(Self, usize)> {
        if match_addi(raw) {
            return Some((Self::Addi, 4));
        }
        None
    }
}

/// Addi: 13000000 under mask 7f700000.
fn match_addi(raw: &[u8]) -> bool {
    raw.len() >= 4
        && (raw[0] & 0b01111111) == 0b00010011
        && (raw[1] & 0b01110000) == 0b00000000
}
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("wrong output\n%s", diff)
	}
}

func TestGenerateRustFragments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rust")
	isa := &ISA{Archs: []*Arch{addiArch()}}
	if err := generateRustFragments(dir, isa); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	mod, err := os.ReadFile(filepath.Join(dir, "mod.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("pub mod riscv;\n", string(mod)); diff != "" {
		t.Errorf("wrong mod.rs\n%s", diff)
	}
	src, err := os.ReadFile(filepath.Join(dir, "riscv.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "pub enum OperationRiscv {") {
		t.Errorf("riscv.rs has no operation enum:\n%s", src)
	}
}

func TestGenerateRustWholeCatalog(t *testing.T) {
	isa, err := loadISA(nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, a := range isa.Archs {
		var b strings.Builder
		if err := generateRustOperations(&b, a); err != nil {
			t.Fatalf("%s: unexpected error: %s", a.Name, err)
		}
		if got, want := strings.Count(b.String(), "\nfn match_"), len(a.Ops); got != want {
			t.Errorf("%s: %d match functions, want %d", a.Name, got, want)
		}
	}
}

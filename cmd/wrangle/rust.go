package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func generateRustFragments(dir string, isa *ISA) error {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return err
	}

	for _, a := range isa.Archs {
		err := writeFile(filepath.Join(dir, a.Name+".rs"), func(w io.Writer) error {
			return generateRustOperations(w, a)
		})
		if err != nil {
			return err
		}
	}
	return writeFile(filepath.Join(dir, "mod.rs"), func(w io.Writer) error {
		return generateRustModule(w, isa)
	})
}

func writeFile(filename string, gen func(w io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := gen(w); err != nil {
		f.Close()
		return fmt.Errorf("failed to generate %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func generateRustModule(w io.Writer, isa *ISA) error {
	for _, a := range isa.Archs {
		if _, err := fmt.Fprintf(w, "pub mod %s;\n", makeIdentUnderscores(a.Name)); err != nil {
			return err
		}
	}
	return nil
}

// generateRustOperations writes the operation enumeration of one
// architecture along with a decoder that recognizes each operation by its
// fixed bits.
func generateRustOperations(w io.Writer, a *Arch) error {
	p := &printer{w: w}

	p.printf("/// Enumeration of the %s operations with known encodings.\n", a.Name)
	p.printf("pub enum Operation%s {\n", a.TypeName)
	for _, group := range a.Groups.Sorted() {
		p.printf("\n    // %s\n\n", group)
		for _, op := range a.Ops {
			if op.Group != group {
				continue
			}
			p.printf("    /// %s (%d bytes)\n", op.Mnemonic, op.Size)
			p.printf("    %s,\n", op.TypeName)
		}
	}
	p.printf("}\n\n")

	ordered := decodeOrder(a.Ops)

	p.printf("impl Operation%s {\n", a.TypeName)
	p.printf("    /// Returns the operation at the start of raw and its length in bytes.\n")
	p.printf("    pub fn decode_raw(raw: &[u8]) -> Option<(Self, usize)> {\n")
	for _, op := range ordered {
		p.printf("        if match_%s(raw) {\n", op.FuncName)
		p.printf("            return Some((Self::%s, %d));\n", op.TypeName, op.Size)
		p.printf("        }\n")
	}
	p.printf("        None\n")
	p.printf("    }\n")
	p.printf("}\n")

	for _, op := range ordered {
		p.printf("\n/// %s: %s under mask %s.\n", op.Mnemonic, op.Test.Hex(), op.Mask.Hex())
		p.printf("fn match_%s(raw: &[u8]) -> bool {\n", op.FuncName)
		p.printf("    raw.len() >= %d", op.Size)
		for _, step := range op.Steps {
			p.printf("\n        && %s", step)
		}
		p.printf("\n}\n")
	}
	return p.err
}

// printer remembers the first write error so that generators can print
// unconditionally and check once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Command wrangle builds a sample of every encoding in the catalogues of
// the architecture packages and writes the fixed bits of each as Rust
// decoder fragments and as a text report.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
)

func main() {
	cfg := loadConfig()

	sel, err := loadSelection(cfg.Select)
	if err != nil {
		log.Fatal(err)
	}
	isa, err := loadISA(sel)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Dump {
		spew.Dump(isa)
	}

	err = generateRustFragments(filepath.Join(cfg.Out, "rust"), isa)
	if err != nil {
		log.Fatal(err)
	}
	// The saved report is not tied to the current terminal.
	err = writeReportFile(filepath.Join(cfg.Out, "report.txt"), isa, defaultWidth)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeReport(os.Stdout, isa, reportWidth(cfg.Width)); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d operations from %d architectures to %s", isa.Count(), len(isa.Archs), cfg.Out)
}

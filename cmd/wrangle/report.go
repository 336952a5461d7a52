package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const defaultWidth = 80

// reportWidth prefers an explicit override, then the width of the
// terminal on stdout.
func reportWidth(override int) int {
	if override > 0 {
		return override
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// writeReport lists each architecture's groups and then one line per
// operation with its size and match pattern. The binary form of the
// mask is included only when it fits the width.
func writeReport(w io.Writer, isa *ISA, width int) error {
	p := &printer{w: w}
	for i, a := range isa.Archs {
		if i > 0 {
			p.printf("\n")
		}
		p.printf("%s: %d operations\n", a.Name, len(a.Ops))
		for _, group := range a.Groups.Sorted() {
			var names []string
			for _, op := range a.Ops {
				if op.Group == group {
					names = append(names, op.Mnemonic)
				}
			}
			for _, line := range wrapWords("  "+group+": ", names, width) {
				p.printf("%s\n", line)
			}
		}
		p.printf("\n")
		for _, op := range a.Ops {
			line := fmt.Sprintf("  %-16s %2d  %s/%s", op.Mnemonic, op.Size, op.Test.Hex(), op.Mask.Hex())
			if bin := op.Mask.String(); len(line)+2+len(bin) <= width {
				line += "  " + bin
			}
			p.printf("%s\n", line)
		}
	}
	return p.err
}

// wrapWords joins words after prefix, starting a new line indented to the
// prefix's width whenever the next word would pass width. A word longer
// than the remaining space still gets a line of its own.
func wrapWords(prefix string, words []string, width int) []string {
	indent := strings.Repeat(" ", len(prefix))
	var lines []string
	var b strings.Builder
	b.WriteString(prefix)
	empty := true
	for _, word := range words {
		if !empty && b.Len()+1+len(word) > width {
			lines = append(lines, b.String())
			b.Reset()
			b.WriteString(indent)
			empty = true
		}
		if !empty {
			b.WriteByte(' ')
		}
		b.WriteString(word)
		empty = false
	}
	return append(lines, b.String())
}

func writeReportFile(filename string, isa *ISA, width int) error {
	return writeFile(filename, func(w io.Writer) error {
		return writeReport(w, isa, width)
	})
}

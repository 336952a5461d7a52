package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/apparentlymart/isaenc/arch/ia32"
	"github.com/apparentlymart/isaenc/arch/riscv"
	"github.com/apparentlymart/isaenc/arch/thumb"
	"github.com/apparentlymart/isaenc/arch/vle"
)

var catalogs = []struct {
	name    string
	entries func() []arch.Entry
}{
	{"thumb", thumb.Catalog},
	{"ia32", ia32.Catalog},
	{"vle", vle.Catalog},
	{"riscv", riscv.Catalog},
}

func knownArch(name string) bool {
	for _, c := range catalogs {
		if c.name == name {
			return true
		}
	}
	return false
}

func loadISA(sel Selection) (*ISA, error) {
	isa := &ISA{}
	for _, c := range catalogs {
		a := &Arch{
			Name:     c.name,
			TypeName: makeIdentTitle(c.name),
			Groups:   make(Groups),
		}
		seen := make(map[string]bool)
		for _, e := range c.entries() {
			if !sel.Includes(e) {
				continue
			}
			op, err := loadOperation(e)
			if err != nil {
				return nil, fmt.Errorf("failed to build %s %s: %w", e.Arch, e.Mnemonic, err)
			}
			if seen[op.TypeName] {
				return nil, fmt.Errorf("duplicate %s operation %s", c.name, op.TypeName)
			}
			seen[op.TypeName] = true
			a.Groups.Add(e.Group)
			a.Ops = append(a.Ops, op)
		}
		if len(a.Ops) == 0 {
			continue
		}
		isa.Archs = append(isa.Archs, a)
	}
	return isa, nil
}

func loadOperation(e arch.Entry) (*Operation, error) {
	in, err := e.Build()
	if err != nil {
		return nil, err
	}

	op := &Operation{
		Arch:     e.Arch,
		Group:    e.Group,
		Mnemonic: e.Mnemonic,
		FuncName: makeIdentUnderscores(e.Mnemonic),
		TypeName: makeIdentTitle(e.Mnemonic),
		Size:     in.SizeBytes(),
		Encoding: in.Bytes(),
	}

	if m, ok := in.(arch.Matcher); ok {
		op.Test, op.Mask = m.Match()
	} else {
		// Without layout information every bit is taken as fixed.
		op.Test = in.Bytes()
		op.Mask = make(bitString, len(op.Test))
		for i := range op.Mask {
			op.Mask[i] = 0xff
		}
	}
	op.Steps = ParseMatchSteps(op.Test, op.Mask)
	return op, nil
}

// Selection limits which catalogue entries are loaded. A nil Selection
// includes everything.
type Selection []selector

// selector matches entries by architecture and then optionally by group
// or mnemonic. Empty fields match anything.
type selector struct {
	arch     string
	group    string
	mnemonic string
}

func (s Selection) Includes(e arch.Entry) bool {
	if s == nil {
		return true
	}
	for _, sel := range s {
		if sel.arch != e.Arch {
			continue
		}
		if sel.group != "" && sel.group != e.Group {
			continue
		}
		if sel.mnemonic != "" && sel.mnemonic != e.Mnemonic {
			continue
		}
		return true
	}
	return false
}

// loadSelection reads a selection file. Each line names an architecture
// followed by "*", "group=NAME" or a mnemonic.
func loadSelection(filename string) (Selection, error) {
	if filename == "" {
		return nil, nil
	}
	r, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	defer r.Close()

	ret := Selection{}
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(trimComments(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		sel, err := parseSelector(fields)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}
		ret = append(ret, sel)
	}
	return ret, sc.Err()
}

func parseSelector(fields []string) (selector, error) {
	sel := selector{arch: fields[0]}
	if !knownArch(sel.arch) {
		return sel, fmt.Errorf("unknown architecture %q", sel.arch)
	}
	switch len(fields) {
	case 1:
		return sel, nil
	case 2:
	default:
		return sel, fmt.Errorf("too many fields")
	}

	raw := fields[1]
	if raw == "*" {
		return sel, nil
	}
	k, v := partition(raw, "=")
	switch {
	case v == "":
		sel.mnemonic = k
	case k == "group":
		sel.group = v
	default:
		return sel, fmt.Errorf("unknown selector key %q", k)
	}
	return sel, nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

package main

type Operation struct {
	Arch     string
	Group    string
	Mnemonic string
	FuncName string
	TypeName string

	// Size is the encoding length in bytes.
	Size     int
	Encoding bitString
	Test     bitString
	Mask     bitString
	Steps    []MatchStep
}

type Arch struct {
	Name     string
	TypeName string
	Groups   Groups
	Ops      []*Operation
}

type ISA struct {
	Archs []*Arch
}

func (isa *ISA) Count() int {
	n := 0
	for _, a := range isa.Archs {
		n += len(a.Ops)
	}
	return n
}

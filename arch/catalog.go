package arch

// Entry is a sample construction of one mnemonic. Architecture packages
// list one per supported encoding so that tools can build every encoding
// and inspect its fixed bits.
type Entry struct {
	Arch     string
	Group    string
	Mnemonic string
	Build    func() (Instr, error)
}

package arch

import (
	"errors"
)

// Candidate builds one possible encoding of an operation.
type Candidate func() (Instr, error)

// FirstFit returns the first candidate that can encode its operands.
// Candidates are listed smallest first. A candidate failing with a range
// error passes the decision on to the next one; any other error is
// returned immediately.
func FirstFit(cands ...Candidate) (Instr, error) {
	var lastErr error
	for _, cand := range cands {
		in, err := cand()
		if err == nil {
			return in, nil
		}
		if !errors.Is(err, ErrRange) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = InvalidArgumentf("no candidate encodings")
	}
	return nil, lastErr
}

// Auto is an operation that expands into one or more concrete
// instructions chosen from its operand values. It contributes no bits of
// its own.
type Auto struct {
	Name string

	expand   func() ([]Instr, error)
	done     bool
	expanded []Instr
	err      error
}

func NewAuto(name string, expand func() ([]Instr, error)) *Auto {
	return &Auto{Name: name, expand: expand}
}

// Expand returns the selected instructions. The selection runs once and
// the result is reused.
func (a *Auto) Expand() ([]Instr, error) {
	if !a.done {
		a.expanded, a.err = a.expand()
		a.done = true
	}
	return a.expanded, a.err
}

func (a *Auto) Bytes() ([]byte, error) {
	ins, err := a.Expand()
	if err != nil {
		return nil, err
	}
	var ret []byte
	for _, in := range ins {
		ret = append(ret, in.Bytes()...)
	}
	return ret, nil
}

func (a *Auto) SizeBytes() (int, error) {
	ins, err := a.Expand()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, in := range ins {
		n += in.SizeBytes()
	}
	return n, nil
}

func (a *Auto) SizeBits() (int, error) {
	n, err := a.SizeBytes()
	return n * 8, err
}

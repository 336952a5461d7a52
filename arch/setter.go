package arch

// Setter assigns operand values one after another and remembers the first
// failure, so a constructor can set all of its fields and check once.
type Setter struct {
	err error
}

func (s *Setter) Set(op Operand, v int) {
	if s.err != nil {
		return
	}
	s.err = op.Set(int64(v))
}

// SetBool stores 1 for true and 0 for false.
func (s *Setter) SetBool(op Operand, b bool) {
	v := 0
	if b {
		v = 1
	}
	s.Set(op, v)
}

// Fix stores a value that belongs to the opcode of in.
func (s *Setter) Fix(in *Instruction, start, end int, v int) {
	if s.err != nil {
		return
	}
	s.err = in.Fix(start, end, int64(v))
}

func (s *Setter) Err() error {
	return s.err
}

// Result returns in unless err is set, in which case it returns the zero
// value. Constructors end with it so that a failed one never hands out a
// partly built instruction.
func Result[T any](in T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return in, nil
}

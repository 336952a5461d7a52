package thumb

import (
	"github.com/apparentlymart/isaenc/arch"
)

// AccessOption adjusts a 32-bit load or store: its addressing mode, its
// access size or the shift applied to an index register.
type AccessOption func(*accessConfig)

type accessConfig struct {
	index bool
	wback bool
	byte  bool
	hword bool
	shift int
}

// Index selects whether the offset applies before the access (true, the
// default) or only to the written-back base afterwards.
func Index(on bool) AccessOption {
	return func(c *accessConfig) {
		c.index = on
	}
}

// Writeback stores the computed address back into the base register.
func Writeback(on bool) AccessOption {
	return func(c *accessConfig) {
		c.wback = on
	}
}

// Byte makes the access a single byte.
func Byte() AccessOption {
	return func(c *accessConfig) {
		c.byte = true
	}
}

// Halfword makes the access sixteen bits.
func Halfword() AccessOption {
	return func(c *accessConfig) {
		c.hword = true
	}
}

// ShiftBy shifts the index register left by n (0 to 3) in the register
// offset forms.
func ShiftBy(n int) AccessOption {
	return func(c *accessConfig) {
		c.shift = n
	}
}

func accessFor(opts []AccessOption) (accessConfig, error) {
	c := accessConfig{index: true}
	for _, opt := range opts {
		opt(&c)
	}
	if c.byte && c.hword {
		return c, arch.FlagConflictf("an access cannot be both byte and halfword sized")
	}
	return c, nil
}

// apply sets the access size. Word access leaves the opcode bits as they
// are.
func (c accessConfig) apply(s *arch.Setter, f *StrLdr32) {
	switch {
	case c.byte:
		s.Set(f.Wordmode, 0)
	case c.hword:
		s.Set(f.Wordmode, 1)
	}
}

type addressing int

const (
	offsetMode addressing = iota
	preIndexed
	postIndexed
)

func (c accessConfig) addressing() (addressing, error) {
	switch {
	case !c.index && !c.wback:
		return 0, arch.InvalidArgumentf("post-indexed access needs write-back")
	case !c.index:
		return postIndexed, nil
	case c.wback:
		return preIndexed, nil
	default:
		return offsetMode, nil
	}
}

package arch

import (
	"strings"
	"sync"
)

// Compact normalizes an encoding spec copied from an architecture manual
// by removing the spaces between tokens and upper-casing it. Forms index
// the compacted string by character position.
func Compact(spec string) string {
	return strings.ToUpper(strings.ReplaceAll(spec, " ", ""))
}

// Fixed is a run of instruction bits that a form sets to a constant.
type Fixed struct {
	Start, End int
	Value      uint64
}

// Layout is the result of matching one spec string against one form: the
// fixed bits the spec implies. Layouts are computed once and cached.
type Layout struct {
	Form  string
	Spec  string
	Width int
	Fixed []Fixed
}

// Builder collects the fixed bits of a Layout while a form's shape
// function checks the spec.
type Builder struct {
	Form  string
	Spec  string
	Width int
	fixed []Fixed
}

// Shape checks a compacted spec against one instruction form and records
// the fixed bits it implies.
type Shape func(b *Builder) error

func (b *Builder) mismatch(format string, args ...interface{}) error {
	return FormMismatchf("%s: spec %q: "+format, append([]interface{}{b.Form, b.Spec}, args...)...)
}

// Char returns the spec character at i, or zero past the end.
func (b *Builder) Char(i int) byte {
	if i < 0 || i >= len(b.Spec) {
		return 0
	}
	return b.Spec[i]
}

// Expect fails unless spec[from:to] is exactly want.
func (b *Builder) Expect(from, to int, want string) error {
	if to > len(b.Spec) || b.Spec[from:to] != want {
		return b.mismatch("characters %d to %d must be %q", from, to, want)
	}
	return nil
}

// Require fails with msg unless cond holds.
func (b *Builder) Require(cond bool, msg string) error {
	if !cond {
		return b.mismatch("%s", msg)
	}
	return nil
}

// Literal copies the literal bits spec[from:to] into the instruction bits
// starting at position at.
func (b *Builder) Literal(at, from, to int) error {
	if to > len(b.Spec) || from > to {
		return b.mismatch("too short for literal bits %d to %d", from, to)
	}
	var v uint64
	for i := from; i < to; i++ {
		v <<= 1
		switch b.Spec[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return b.mismatch("character %d must be a literal bit, not %q", i, b.Spec[i])
		}
	}
	b.Set(at, at+to-from, v)
	return nil
}

// Set records bits [start, end) as fixed to v.
func (b *Builder) Set(start, end int, v uint64) {
	b.fixed = append(b.fixed, Fixed{Start: start, End: end, Value: v})
}

type layoutKey struct {
	form string
	spec string
}

type layoutResult struct {
	layout *Layout
	err    error
}

var layouts sync.Map

// ParseLayout matches spec against the form described by shape, caching
// the outcome for the (form, spec) pair.
func ParseLayout(form string, width int, spec string, shape Shape) (*Layout, error) {
	key := layoutKey{form: form, spec: spec}
	if cached, ok := layouts.Load(key); ok {
		r := cached.(layoutResult)
		return r.layout, r.err
	}

	b := &Builder{Form: form, Spec: Compact(spec), Width: width}
	var r layoutResult
	if err := shape(b); err != nil {
		r.err = err
	} else {
		r.layout = &Layout{Form: form, Spec: b.Spec, Width: width, Fixed: b.fixed}
	}
	layouts.Store(key, r)
	return r.layout, r.err
}

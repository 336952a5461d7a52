// Package archtest holds checks shared by the tests of the architecture
// packages.
package archtest

import (
	"reflect"
	"sort"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/google/go-cmp/cmp"
)

var (
	operandType     = reflect.TypeOf((*arch.Operand)(nil)).Elem()
	instructionType = reflect.TypeOf((*arch.Instruction)(nil))
)

// Operands returns every operand a form exposes, keyed by field name.
// Fields of embedded structs are included under their own names, and
// operands a form leaves out (nil fields, or wrappers around nil) are not.
func Operands(form interface{}) map[string]arch.Operand {
	ret := make(map[string]arch.Operand)
	collectOperands(reflect.ValueOf(form), ret)
	return ret
}

func collectOperands(v reflect.Value, into map[string]arch.Operand) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if (!sf.IsExported() && !sf.Anonymous) || sf.Type == instructionType {
			continue
		}
		fv := v.Field(i)
		if absent(fv) {
			continue
		}
		if sf.IsExported() && sf.Type.Implements(operandType) {
			into[sf.Name] = fv.Interface().(arch.Operand)
			continue
		}
		if sf.Anonymous {
			collectOperands(fv, into)
		}
	}
}

// absent reports whether v is nil or a struct wrapping a nil operand.
func absent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Anonymous && absent(v.Field(i)) {
				return true
			}
		}
	}
	return false
}

// RoundTrip writes the value of every operand of in back to it, and fails
// the test if that is refused or the encoding changes.
func RoundTrip(t testing.TB, in arch.Instr) {
	t.Helper()
	ops := Operands(in)
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	before := in.Bytes()
	for _, name := range names {
		op := ops[name]
		v := op.Get()
		if err := op.Set(v); err != nil {
			t.Errorf("%T.%s: cannot write back %d: %s", in, name, v, err)
			continue
		}
		if got := op.Get(); got != v {
			t.Errorf("%T.%s: wrote %d, read back %d", in, name, v, got)
		}
		if diff := cmp.Diff(before, in.Bytes()); diff != "" {
			t.Errorf("%T.%s: writing back %d changed the encoding\n%s", in, name, v, diff)
			return
		}
	}
}

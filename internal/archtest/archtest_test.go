package archtest

import (
	"sort"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/google/go-cmp/cmp"
)

// wrapped stands in for the register wrappers of the architecture
// packages, which embed the field they translate.
type wrapped struct {
	*arch.Field
}

type inner struct {
	Low *arch.Field
}

type form struct {
	*arch.Instruction
	inner
	Rd    *arch.Field
	Imm   *arch.Combined
	Short wrapped
	Gone  *arch.Field
	Hole  wrapped
	Any   arch.Operand
	Name  string
}

func newForm() *form {
	in := arch.NewInstruction("test", 16, arch.BigEndian)
	f := &form{
		Instruction: in,
		inner:       inner{Low: in.Field(14, 15)},
		Rd:          in.Field(0, 3),
		Imm:         arch.MustCombine([]*arch.Field{in.Field(4, 5), in.Field(10, 13)}),
		Short:       wrapped{in.Field(6, 9)},
		Name:        "test",
	}
	f.Rd.Set(9)
	f.Imm.Set(0x2b)
	f.Short.Set(5)
	f.Low.Set(2)
	return f
}

func TestOperands(t *testing.T) {
	ops := Operands(newForm())
	var got []string
	for name := range ops {
		got = append(got, name)
	}
	sort.Strings(got)
	want := []string{"Imm", "Low", "Rd", "Short"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong operands\n%s", diff)
	}
	if got, want := ops["Imm"].Get(), int64(0x2b); got != want {
		t.Errorf("Imm is %#x, want %#x", got, want)
	}
}

func TestOperandsNil(t *testing.T) {
	var f *form
	if got := Operands(f); len(got) != 0 {
		t.Errorf("nil form has operands %v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	f := newForm()
	before := f.Bytes()
	RoundTrip(t, f)
	if diff := cmp.Diff(before, f.Bytes()); diff != "" {
		t.Errorf("bytes changed\n%s", diff)
	}
}

package arch

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/apparentlymart/isaenc/bitvec"
	"github.com/google/go-cmp/cmp"
)

func TestFieldReferencesInstructionBits(t *testing.T) {
	in := NewInstruction("test", 32, BigEndian)
	op := in.Field(8, 13)
	if err := op.Set(31); err != nil {
		t.Fatal(err)
	}
	if got := in.Bits.Uint(8, 13); got != 31 {
		t.Errorf("bits hold %d, want 31", got)
	}
	if got := op.Get(); got != 31 {
		t.Errorf("Get returned %d, want 31", got)
	}
}

func TestFieldRangeBoundaries(t *testing.T) {
	tests := []struct {
		opts   []OperandOption
		width  int
		v      int64
		wantOK bool
	}{
		{nil, 5, 0, true},
		{nil, 5, 31, true},
		{nil, 5, 32, false},
		{nil, 5, -1, false},
		{[]OperandOption{Signed()}, 8, 127, true},
		{[]OperandOption{Signed()}, 8, -128, true},
		{[]OperandOption{Signed()}, 8, 128, false},
		{[]OperandOption{Signed()}, 8, -129, false},
		{[]OperandOption{Signed(), Shift(1)}, 8, 254, true},
		{[]OperandOption{Signed(), Shift(1)}, 8, -256, true},
		{[]OperandOption{Signed(), Shift(1)}, 8, 256, false},
		{[]OperandOption{Shift(12)}, 20, 0xfffff000, true},
		{[]OperandOption{Shift(12)}, 20, 0x100000000, false},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d bits %d", test.width, test.v), func(t *testing.T) {
			f := NewField(bitvec.New(32), 0, test.width, test.opts...)
			err := f.Set(test.v)
			if test.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				if got := f.Get(); got != test.v {
					t.Errorf("read back %d, want %d", got, test.v)
				}
				return
			}
			if !errors.Is(err, ErrRange) {
				t.Fatalf("expected a range error, got %v", err)
			}
		})
	}
}

func TestFieldRoundTrip(t *testing.T) {
	bits := bitvec.FromUint(32, 0xdeadbeef)
	before := bits.Clone()
	for _, f := range []*Field{
		NewField(bits, 0, 12, Signed()),
		NewField(bits, 12, 20),
		NewField(bits, 20, 32, Signed(), Shift(2)),
	} {
		if err := f.Set(f.Get()); err != nil {
			t.Fatalf("%s: %s", f, err)
		}
	}
	if !bits.Equal(before) {
		t.Errorf("bits changed\ngot:  %s\nwant: %s", bits, before)
	}
}

func TestCombined(t *testing.T) {
	in := NewInstruction("test", 32, BigEndian)
	c := MustCombine([]*Field{in.Field(0, 1), in.Field(24, 25), in.Field(1, 7), in.Field(20, 24)}, Signed(), Shift(1))

	if got, want := c.Width(), 12; got != want {
		t.Fatalf("width %d, want %d", got, want)
	}
	if err := c.Set(-4); err != nil {
		t.Fatal(err)
	}
	// -4 >> 1 is 0b111111111110 across the four parts.
	if got, want := in.Bits.String(), "0b11111110000000000000111010000000"; got != want {
		t.Errorf("wrong bits\ngot:  %s\nwant: %s", got, want)
	}
	if got := c.Get(); got != -4 {
		t.Errorf("Get returned %d, want -4", got)
	}

	if err := c.Set(4096); !errors.Is(err, ErrRange) {
		t.Errorf("expected a range error for 4096, got %v", err)
	}
	if err := c.Set(4094); err != nil {
		t.Errorf("unexpected error for the largest value: %s", err)
	}
	if err := c.Set(-4096); err != nil {
		t.Errorf("unexpected error for the smallest value: %s", err)
	}
}

func TestCombinedRejectsSignedParts(t *testing.T) {
	bits := bitvec.New(16)
	_, err := NewCombined([]*Field{NewField(bits, 0, 4, Signed()), NewField(bits, 8, 12)})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
	_, err = NewCombined([]*Field{NewField(bits, 0, 4), NewField(bits, 8, 12, Shift(1))})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
}

func TestCombinedInvertWhenPositive(t *testing.T) {
	bits := bitvec.New(8)
	c := MustCombine([]*Field{NewField(bits, 0, 1), NewField(bits, 1, 2), NewField(bits, 2, 3), NewField(bits, 3, 8)}, Signed(), InvertWhenPositive(1, 2))

	if err := c.Set(5); err != nil {
		t.Fatal(err)
	}
	if got, want := bits.String(), "0b01100101"; got != want {
		t.Errorf("positive value bits\ngot:  %s\nwant: %s", got, want)
	}
	if got := c.Get(); got != 5 {
		t.Errorf("Get returned %d, want 5", got)
	}

	if err := c.Set(-5); err != nil {
		t.Fatal(err)
	}
	if got, want := bits.String(), "0b11111011"; got != want {
		t.Errorf("negative value bits\ngot:  %s\nwant: %s", got, want)
	}
	if got := c.Get(); got != -5 {
		t.Errorf("Get returned %d, want -5", got)
	}
}

func TestRepresentable(t *testing.T) {
	tests := []struct {
		v      int64
		bits   int
		signed bool
		shift  uint
		want   bool
	}{
		{12, 5, false, 2, true},
		{-2, 3, true, 0, true},
		{2, 1, true, 0, false},
		{13, 5, false, 2, false},
		{-3, 8, true, 1, false},
		{-0x30, 6, true, 4, true},
	}
	for _, test := range tests {
		got := Representable(test.v, test.bits, test.signed, test.shift)
		if got != test.want {
			t.Errorf("Representable(%d, %d, %t, %d) = %t, want %t", test.v, test.bits, test.signed, test.shift, got, test.want)
		}
	}
}

func TestLayoutCache(t *testing.T) {
	calls := 0
	shape := func(b *Builder) error {
		calls++
		if err := b.Expect(0, 3, "101"); err != nil {
			return err
		}
		return b.Literal(0, 0, 3)
	}

	for i := 0; i < 3; i++ {
		l, err := ParseLayout("cache-test", 8, "1 0 1 Rd", shape)
		if err != nil {
			t.Fatal(err)
		}
		want := &Layout{Form: "cache-test", Spec: "101RD", Width: 8, Fixed: []Fixed{{Start: 0, End: 3, Value: 0b101}}}
		if diff := cmp.Diff(want, l); diff != "" {
			t.Fatalf("wrong layout\n%s", diff)
		}
	}
	if calls != 1 {
		t.Errorf("shape ran %d times, want 1", calls)
	}

	_, err := ParseLayout("cache-test", 8, "1 1 1 Rd", shape)
	if !errors.Is(err, ErrFormMismatch) {
		t.Errorf("expected a form mismatch, got %v", err)
	}
}

func TestInstructionMatch(t *testing.T) {
	in := NewInstruction("test", 16, Halfwords)
	if err := in.Fix(0, 4, 0b1101); err != nil {
		t.Fatal(err)
	}
	if err := in.Field(8, 16).Set(0xab); err != nil {
		t.Fatal(err)
	}
	test, mask := in.Match()
	if diff := cmp.Diff([]byte{0x00, 0xd0}, test); diff != "" {
		t.Errorf("wrong test bytes\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x00, 0xf0}, mask); diff != "" {
		t.Errorf("wrong mask bytes\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0xab, 0xd0}, in.Bytes()); diff != "" {
		t.Errorf("wrong bytes\n%s", diff)
	}
	if got, want := in.Opcode(), uint64(0xd000); got != want {
		t.Errorf("Opcode() = %#x, want %#x", got, want)
	}
}

func TestFirstFit(t *testing.T) {
	small := func() (Instr, error) { return nil, Rangef("too big") }
	big := func() (Instr, error) { return &Raw{Data: []byte{1, 2, 3, 4}}, nil }
	broken := func() (Instr, error) { return nil, InvalidArgumentf("bad") }

	in, err := FirstFit(small, big)
	if err != nil {
		t.Fatal(err)
	}
	if in.SizeBytes() != 4 {
		t.Errorf("picked the wrong candidate: %d bytes", in.SizeBytes())
	}

	if _, err := FirstFit(broken, big); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected the invalid argument error to stop selection, got %v", err)
	}
	if _, err := FirstFit(small, small); !errors.Is(err, ErrRange) {
		t.Errorf("expected a range error when nothing fits, got %v", err)
	}
}

func TestAutoExpandsOnce(t *testing.T) {
	calls := 0
	a := NewAuto("test", func() ([]Instr, error) {
		calls++
		return []Instr{&Raw{Data: []byte{0xaa}}, &Raw{Data: []byte{0xbb, 0xcc}}}, nil
	})
	got, err := a.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0xaa, 0xbb, 0xcc}, got); diff != "" {
		t.Errorf("wrong bytes\n%s", diff)
	}
	if n, _ := a.SizeBits(); n != 24 {
		t.Errorf("SizeBits() = %d, want 24", n)
	}
	if calls != 1 {
		t.Errorf("expansion ran %d times, want 1", calls)
	}
}

type testReg int

func (r testReg) Name() string { return fmt.Sprintf("t%d", int(r)) }
func (r testReg) Val() int     { return int(r) }

func TestRegVal(t *testing.T) {
	if v, err := RegVal(testReg(7)); err != nil || v != 7 {
		t.Errorf("RegVal(register) = %d, %v", v, err)
	}
	if v, err := RegVal(uint8(3)); err != nil || v != 3 {
		t.Errorf("RegVal(uint8) = %d, %v", v, err)
	}
	if _, err := RegVal("r1"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected an invalid argument error, got %v", err)
	}
	if _, ok := IntVal(testReg(1)); ok {
		t.Errorf("a register must not count as an integer")
	}
}

func TestUnsignedVals(t *testing.T) {
	if v, err := RegVal(uint64(12)); err != nil || v != 12 {
		t.Errorf("RegVal(uint64) = %d, %v", v, err)
	}
	if v, err := RegVal(uint(5)); err != nil || v != 5 {
		t.Errorf("RegVal(uint) = %d, %v", v, err)
	}
	if _, err := RegVal(uint64(math.MaxUint64)); !errors.Is(err, ErrRange) {
		t.Errorf("expected a range error, got %v", err)
	}

	tests := []struct {
		v    interface{}
		want int64
		ok   bool
	}{
		{uint64(0x7fffffffffffffff), math.MaxInt64, true},
		{uint64(0x8000000000000000), 0, false},
		{uint64(0), 0, true},
		{uint(0x1234), 0x1234, true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%T %v", test.v, test.v), func(t *testing.T) {
			got, ok := IntVal(test.v)
			if got != test.want || ok != test.ok {
				t.Errorf("IntVal(%v) = %d, %t; want %d, %t", test.v, got, ok, test.want, test.ok)
			}
		})
	}
}

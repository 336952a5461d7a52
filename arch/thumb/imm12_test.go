package thumb

import (
	"errors"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
)

func TestEncodeImm12(t *testing.T) {
	tests := []struct {
		v    int64
		want int
	}{
		{8, 8},
		{0x01100000, 0b011110001000},
		{0x10000000, 0b010110000000},
		{0x00120012, 0x112},
		{0xab00ab00, 0x2ab},
		{0xfefefefe, 0x3fe},
		{0x400000, 0x880},
	}
	for _, test := range tests {
		got, err := EncodeImm12(test.v)
		if err != nil {
			t.Errorf("EncodeImm12(%#x): unexpected error: %s", test.v, err)
			continue
		}
		if got != test.want {
			t.Errorf("EncodeImm12(%#x) = %#x, want %#x", test.v, got, test.want)
		}
		if back := DecodeImm12(got); int64(back) != test.v {
			t.Errorf("DecodeImm12(%#x) = %#x, want %#x", got, back, test.v)
		}
	}
}

func TestEncodeImm12Unencodable(t *testing.T) {
	for _, v := range []int64{0x1ffffffff, 0xaa0f0000, 0x00a1b000, -1} {
		if _, err := EncodeImm12(v); !errors.Is(err, arch.ErrRange) {
			t.Errorf("EncodeImm12(%#x): expected a range error, got %v", v, err)
		}
	}
}

func TestDecodeImm12(t *testing.T) {
	if got := DecodeImm12(0x007); got != 7 {
		t.Errorf("DecodeImm12(7) = %d", got)
	}
	// Every rotated form decodes to something that encodes back to itself.
	for enc := 0x400; enc < 0x1000; enc++ {
		v := DecodeImm12(enc)
		got, err := EncodeImm12(int64(v))
		if err != nil {
			t.Fatalf("%#x decoded to %#x which does not encode: %s", enc, v, err)
		}
		if DecodeImm12(got) != v {
			t.Fatalf("%#x decoded to %#x but re-encoded as %#x", enc, v, got)
		}
	}
}

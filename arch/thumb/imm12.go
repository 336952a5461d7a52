package thumb

import (
	"github.com/apparentlymart/isaenc/arch"
)

// EncodeImm12 converts a 32-bit constant into the 12-bit modified
// immediate used by the data processing instructions. A constant is
// encodable if it is a byte, one of the repeating byte patterns 0x00XY00XY,
// 0xXY00XY00 and 0xXYXYXYXY, or an 8-bit value with its top bit set
// rotated right by 8 to 31 places.
func EncodeImm12(v int64) (int, error) {
	if v < 0 || v > 0xffffffff {
		return 0, arch.Rangef("%#x is not a 32-bit value", v)
	}
	lo := v & 0xff
	switch {
	case v < 0x100:
		return int(v), nil
	case v&0xff00ff00 == 0 && lo == (v>>16)&0xff:
		return 0x100 | int(lo), nil
	case v&0x00ff00ff == 0 && (v>>8)&0xff == (v>>24)&0xff:
		return 0x200 | int((v>>8)&0xff), nil
	case (v>>24)&0xff == lo && (v>>16)&0xff == lo && (v>>8)&0xff == lo:
		return 0x300 | int(lo), nil
	}

	// Shift the value up until its lowest set bit passes bit 24. If the
	// eight bits above that hold all of it, it is a rotated byte.
	u := uint64(v)
	shifts := 0
	for u&0xffffff != 0 {
		u <<= 1
		shifts++
	}
	if u&0xffffff00ffffff != 0 {
		return 0, arch.Rangef("%#x cannot be encoded as a modified immediate", v)
	}
	b := (u >> 24) & 0xff
	shifts += 8
	for b>>7 != 1 {
		b <<= 1
		shifts++
	}
	return shifts<<7 | int(b&0x7f), nil
}

// DecodeImm12 is the inverse of EncodeImm12.
func DecodeImm12(enc int) uint32 {
	enc &= 0xfff
	if enc>>10 == 0 {
		b := uint32(enc & 0xff)
		switch enc >> 8 {
		case 0:
			return b
		case 1:
			return b<<16 | b
		case 2:
			return b<<24 | b<<8
		default:
			return b<<24 | b<<16 | b<<8 | b
		}
	}
	rot := uint(enc>>7) - 8
	return uint32(uint64(enc&0x7f|0x80) << 24 >> rot)
}

// Package bitvec implements a fixed-length bit vector whose bit 0 is the
// most significant bit, so that bit positions quoted from architecture
// manuals that count from the left can be used directly.
package bitvec

import (
	"fmt"
	"strings"
)

// Vector is a sequence of bits of fixed length. The zero value is an empty
// vector.
type Vector struct {
	n   int
	buf []byte
}

// New returns a vector of n zero bits.
func New(n int) *Vector {
	if n < 0 {
		panic("bitvec: negative length")
	}
	return &Vector{n: n, buf: make([]byte, (n+7)/8)}
}

// FromUint returns an n-bit vector holding the low n bits of v.
func FromUint(n int, v uint64) *Vector {
	ret := New(n)
	if n > 0 {
		lo := 0
		if n > 64 {
			lo = n - 64
		}
		ret.SetUint(lo, n, v)
	}
	return ret
}

// FromBytes returns a vector holding the given bytes, first byte first.
func FromBytes(b []byte) *Vector {
	ret := New(len(b) * 8)
	copy(ret.buf, b)
	return ret
}

func (v *Vector) Len() int {
	return v.n
}

func (v *Vector) checkRange(start, end int) {
	if start < 0 || end > v.n || start > end {
		panic(fmt.Sprintf("bitvec: range [%d, %d) out of bounds for %d bits", start, end, v.n))
	}
}

func (v *Vector) Bit(i int) bool {
	v.checkRange(i, i+1)
	return v.buf[i/8]&(0x80>>uint(i%8)) != 0
}

func (v *Vector) SetBit(i int, b bool) {
	v.checkRange(i, i+1)
	if b {
		v.buf[i/8] |= 0x80 >> uint(i%8)
	} else {
		v.buf[i/8] &^= 0x80 >> uint(i%8)
	}
}

// Invert flips bit i.
func (v *Vector) Invert(i int) {
	v.SetBit(i, !v.Bit(i))
}

// Uint interprets bits [start, end) as an unsigned integer. The range can
// be at most 64 bits wide.
func (v *Vector) Uint(start, end int) uint64 {
	v.checkRange(start, end)
	if end-start > 64 {
		panic("bitvec: slice wider than 64 bits")
	}
	var ret uint64
	for i := start; i < end; i++ {
		ret <<= 1
		if v.Bit(i) {
			ret |= 1
		}
	}
	return ret
}

// Int interprets bits [start, end) as a two's complement integer.
func (v *Vector) Int(start, end int) int64 {
	w := end - start
	u := v.Uint(start, end)
	if w == 0 {
		return 0
	}
	if w < 64 && u&(1<<uint(w-1)) != 0 {
		u |= ^uint64(0) << uint(w)
	}
	return int64(u)
}

// SetUint writes the low end-start bits of x into bits [start, end).
func (v *Vector) SetUint(start, end int, x uint64) {
	v.checkRange(start, end)
	if end-start > 64 {
		panic("bitvec: slice wider than 64 bits")
	}
	for i := end - 1; i >= start; i-- {
		v.SetBit(i, x&1 != 0)
		x >>= 1
	}
}

// SetInt writes the two's complement pattern of x into bits [start, end).
func (v *Vector) SetInt(start, end int, x int64) {
	v.SetUint(start, end, uint64(x))
}

// Slice returns a copy of bits [start, end).
func (v *Vector) Slice(start, end int) *Vector {
	v.checkRange(start, end)
	ret := New(end - start)
	for i := start; i < end; i++ {
		ret.SetBit(i-start, v.Bit(i))
	}
	return ret
}

// Concat returns a new vector holding the given vectors one after another.
func Concat(vs ...*Vector) *Vector {
	n := 0
	for _, v := range vs {
		n += v.n
	}
	ret := New(n)
	pos := 0
	for _, v := range vs {
		if pos%8 == 0 && v.n%8 == 0 {
			copy(ret.buf[pos/8:], v.buf)
			pos += v.n
			continue
		}
		for i := 0; i < v.n; i++ {
			ret.SetBit(pos, v.Bit(i))
			pos++
		}
	}
	return ret
}

// SignExtend returns an n-bit copy of v with the top bit of v repeated
// into the new leading bits.
func (v *Vector) SignExtend(n int) *Vector {
	return v.extend(n, v.n > 0 && v.Bit(0))
}

// ZeroExtend returns an n-bit copy of v with zero leading bits.
func (v *Vector) ZeroExtend(n int) *Vector {
	return v.extend(n, false)
}

func (v *Vector) extend(n int, fill bool) *Vector {
	if n < v.n {
		panic(fmt.Sprintf("bitvec: cannot extend %d bits to %d", v.n, n))
	}
	ret := New(n)
	pad := n - v.n
	for i := 0; i < pad; i++ {
		ret.SetBit(i, fill)
	}
	for i := 0; i < v.n; i++ {
		ret.SetBit(pad+i, v.Bit(i))
	}
	return ret
}

// Bytes returns the vector as bytes, most significant byte first. The
// length must be a whole number of bytes.
func (v *Vector) Bytes() []byte {
	if v.n%8 != 0 {
		panic(fmt.Sprintf("bitvec: %d bits is not a whole number of bytes", v.n))
	}
	ret := make([]byte, len(v.buf))
	copy(ret, v.buf)
	return ret
}

// ByteSwap returns a copy with the byte order reversed.
func (v *Vector) ByteSwap() *Vector {
	b := v.Bytes()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return FromBytes(b)
}

// SwapHalfwords returns a copy with the two bytes of each 16-bit group
// exchanged. The length must be a whole number of halfwords.
func (v *Vector) SwapHalfwords() *Vector {
	if v.n%16 != 0 {
		panic(fmt.Sprintf("bitvec: %d bits is not a whole number of halfwords", v.n))
	}
	b := v.Bytes()
	for i := 0; i < len(b); i += 2 {
		b[i], b[i+1] = b[i+1], b[i]
	}
	return FromBytes(b)
}

func (v *Vector) Clone() *Vector {
	ret := New(v.n)
	copy(ret.buf, v.buf)
	return ret
}

func (v *Vector) Equal(o *Vector) bool {
	if v.n != o.n {
		return false
	}
	for i := range v.buf {
		if v.buf[i] != o.buf[i] {
			return false
		}
	}
	return true
}

func (v *Vector) String() string {
	var b strings.Builder
	b.WriteString("0b")
	for i := 0; i < v.n; i++ {
		if v.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

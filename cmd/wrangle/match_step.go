package main

import (
	"fmt"
	"math/bits"
	"sort"
)

// MatchStep compares one byte of a raw encoding against the bits its
// opcode fixes.
type MatchStep struct {
	Index int
	Mask  bits8
	Test  bits8
}

func (s MatchStep) String() string {
	return fmt.Sprintf("(raw[%d] & %s) == %s", s.Index, s.Mask, s.Test)
}

// ParseMatchSteps normalizes a test and mask pair into the byte
// comparisons that must all succeed for an encoding to match. Bytes
// without fixed bits are skipped.
func ParseMatchSteps(test, mask []byte) []MatchStep {
	var ret []MatchStep
	for i, m := range mask {
		if m == 0 {
			continue
		}
		var t byte
		if i < len(test) {
			t = test[i] & m
		}
		ret = append(ret, MatchStep{
			Index: i,
			Mask:  bits8(m),
			Test:  bits8(t),
		})
	}
	return ret
}

func fixedBits(steps []MatchStep) int {
	n := 0
	for _, s := range steps {
		n += bits.OnesCount8(uint8(s.Mask))
	}
	return n
}

// decodeOrder returns ops with the most constrained encodings first, so
// that an encoding which is a special case of another (C.NOP within
// C.ADDI, say) is tested before the general one.
func decodeOrder(ops []*Operation) []*Operation {
	ret := make([]*Operation, len(ops))
	copy(ret, ops)
	sort.SliceStable(ret, func(i, j int) bool {
		fi, fj := fixedBits(ret[i].Steps), fixedBits(ret[j].Steps)
		if fi != fj {
			return fi > fj
		}
		return ret[i].Size > ret[j].Size
	})
	return ret
}

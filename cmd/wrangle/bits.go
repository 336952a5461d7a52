package main

import (
	"fmt"
	"strings"
)

type bits8 uint8

// bitString is a run of serialized instruction bytes.
type bitString []byte

func (v bits8) String() string {
	return fmt.Sprintf("0b%08b", uint8(v))
}

func (v bitString) String() string {
	var b strings.Builder
	b.WriteString("0b")
	for i, c := range v {
		if i > 0 {
			b.WriteByte('_')
		}
		fmt.Fprintf(&b, "%08b", c)
	}
	return b.String()
}

func (v bitString) Hex() string {
	return fmt.Sprintf("%x", []byte(v))
}

package main

import (
	"strings"
	"unicode"
)

// makeIdentUnderscores turns a mnemonic like "CAddi16sp" or "c.addi16sp"
// into "c_addi16sp".
func makeIdentUnderscores(inp string) string {
	rs := []rune(inp)
	var b strings.Builder
	for i, r := range rs {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			if i > 0 && unicode.IsUpper(r) && wordStart(rs, i) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// wordStart reports whether the upper case letter at i begins a new word
// of a camel-case identifier. The last letter of an acronym followed by a
// lower case letter starts the next word.
func wordStart(rs []rune, i int) bool {
	prev := rs[i-1]
	switch {
	case unicode.IsLower(prev), unicode.IsDigit(prev):
		return true
	case unicode.IsUpper(prev):
		return i+1 < len(rs) && unicode.IsLower(rs[i+1])
	}
	return false
}

func makeIdentTitle(inp string) string {
	var b strings.Builder
	nextUpper := true
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			nextUpper = true
		case unicode.IsLetter(r):
			if nextUpper {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(r)
			}
			nextUpper = false
		default:
			nextUpper = true
		}
	}
	return b.String()
}

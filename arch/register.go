package arch

import (
	"math"
)

// Register is an architectural register as seen by the encoders: a name
// and the value that goes into the instruction.
type Register interface {
	Name() string
	Val() int
}

// RegVal normalizes an operand given either as a Register or as a plain
// integer register number.
func RegVal(v interface{}) (int, error) {
	switch v := v.(type) {
	case Register:
		return v.Val(), nil
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return RegVal(uint64(v))
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, Rangef("register number %d is out of range", v)
		}
		return int(v), nil
	default:
		return 0, InvalidArgumentf("%v (%T) is neither a register nor a register number", v, v)
	}
}

// IntVal returns v as an integer when it is a plain integer and not a
// register. Unsigned values above math.MaxInt64 do not count.
func IntVal(v interface{}) (int64, bool) {
	if _, isReg := v.(Register); isReg {
		return 0, false
	}
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return IntVal(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

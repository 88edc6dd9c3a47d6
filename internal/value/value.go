// Package value implements the runtime values of the BASIC dialect: 16-bit
// integers, 32-bit floats and strings, together with the coercion and
// operator rules shared by the evaluator and the variable store.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	IntKind Kind = iota
	FloatKind
	StringKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ErrType is wrapped by every error caused by an operand of the wrong kind.
var ErrType = errors.New("type error")

func typeErrorf(mess string, args ...interface{}) error {
	return fmt.Errorf("%w: %v", ErrType, fmt.Sprintf(mess, args...))
}

// Value is an immutable int16, float32 or string. The zero Value is the
// integer 0.
type Value struct {
	kind Kind
	i    int16
	f    float32
	s    string
}

// Int returns an integer Value.
func Int(i int16) Value { return Value{kind: IntKind, i: i} }

// Float returns a float Value.
func Float(f float32) Value { return Value{kind: FloatKind, f: f} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: StringKind, s: s} }

// Bool returns the integer 1 for true and 0 for false.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Default returns the value an unset variable of the given kind reads as.
func Default(k Kind) Value {
	switch k {
	case StringKind:
		return Str("")
	case FloatKind:
		return Float(0)
	}
	return Int(0)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.kind == StringKind }

// Equal reports whether v and o hold the same variant with the same payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case IntKind:
		return v.i == o.i
	case FloatKind:
		return v.f == o.f
	default:
		return v.s == o.s
	}
}

// AsFloat widens integers, passes floats through, and rejects strings.
func (v Value) AsFloat() (float32, error) {
	switch v.kind {
	case IntKind:
		return float32(v.i), nil
	case FloatKind:
		return v.f, nil
	}
	return 0, typeErrorf("expected a number, got string %q", v.s)
}

// AsInt truncates floats toward zero into 16 bits, passes integers through,
// and rejects strings.
func (v Value) AsInt() (int16, error) {
	switch v.kind {
	case IntKind:
		return v.i, nil
	case FloatKind:
		return Truncate(v.f), nil
	}
	return 0, typeErrorf("expected a number, got string %q", v.s)
}

// AsString returns the payload of a string value and rejects numbers.
func (v Value) AsString() (string, error) {
	if v.kind == StringKind {
		return v.s, nil
	}
	return "", typeErrorf("expected a string, got %v", v.kind)
}

// Truth is the condition value used by IF: non-zero numbers and non-empty
// strings are true.
func (v Value) Truth() bool {
	switch v.kind {
	case IntKind:
		return v.i != 0
	case FloatKind:
		return v.f != 0
	}
	return v.s != ""
}

// Truncate converts f toward zero and wraps the result into 16 bits.
func Truncate(f float32) int16 {
	t := math.Trunc(float64(f))
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return int16(int64(math.Mod(t, 1<<16)))
}

// Display renders v the way PRINT shows it: strings verbatim, integers in
// decimal, floats with six significant digits.
func (v Value) Display() string {
	switch v.kind {
	case IntKind:
		return strconv.Itoa(int(v.i))
	case FloatKind:
		return FormatFloat(v.f)
	}
	return v.s
}

// FormatFloat formats f with six significant digits, dropping trailing zeros.
func FormatFloat(f float32) string {
	switch {
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	case math.IsNaN(float64(f)):
		return "nan"
	}
	return strconv.FormatFloat(float64(f), 'g', 6, 32)
}

// String is a debugging representation that keeps the variant visible.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.Itoa(int(v.i)) + "%"
	case FloatKind:
		s := FormatFloat(v.f)
		if !strings.ContainsAny(s, ".ein") {
			s += ".0"
		}
		return s
	}
	return strconv.Quote(v.s)
}

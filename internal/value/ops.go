package value

import (
	"math"
	"strings"
)

// Add concatenates two strings or sums two numbers as floats.
func Add(a, b Value) (Value, error) {
	if a.kind == StringKind || b.kind == StringKind {
		if a.kind != b.kind {
			return Value{}, typeErrorf("cannot add %v and %v", a.kind, b.kind)
		}
		return Str(a.s + b.s), nil
	}
	return arith(a, b, func(x, y float32) float32 { return x + y })
}

// Sub subtracts as floats.
func Sub(a, b Value) (Value, error) {
	return arith(a, b, func(x, y float32) float32 { return x - y })
}

// Mul multiplies as floats.
func Mul(a, b Value) (Value, error) {
	return arith(a, b, func(x, y float32) float32 { return x * y })
}

// Div divides as floats; division by zero follows IEEE rules.
func Div(a, b Value) (Value, error) {
	return arith(a, b, func(x, y float32) float32 { return x / y })
}

// Pow raises a to the power b as floats.
func Pow(a, b Value) (Value, error) {
	return arith(a, b, func(x, y float32) float32 {
		return float32(math.Pow(float64(x), float64(y)))
	})
}

func arith(a, b Value, op func(x, y float32) float32) (Value, error) {
	x, err := a.AsFloat()
	if err != nil {
		return Value{}, err
	}
	y, err := b.AsFloat()
	if err != nil {
		return Value{}, err
	}
	return Float(op(x, y)), nil
}

// Neg negates as a float.
func Neg(a Value) (Value, error) {
	x, err := a.AsFloat()
	if err != nil {
		return Value{}, err
	}
	return Float(-x), nil
}

// Not is the logical complement of the integer view of a.
func Not(a Value) (Value, error) {
	x, err := a.AsInt()
	if err != nil {
		return Value{}, err
	}
	return Bool(x == 0), nil
}

// And is the logical conjunction of the integer views of a and b.
func And(a, b Value) (Value, error) {
	return logic(a, b, func(x, y bool) bool { return x && y })
}

// Or is the logical disjunction of the integer views of a and b.
func Or(a, b Value) (Value, error) {
	return logic(a, b, func(x, y bool) bool { return x || y })
}

func logic(a, b Value, op func(x, y bool) bool) (Value, error) {
	x, err := a.AsInt()
	if err != nil {
		return Value{}, err
	}
	y, err := b.AsInt()
	if err != nil {
		return Value{}, err
	}
	return Bool(op(x != 0, y != 0)), nil
}

// Comparison operators. Two strings compare lexically, anything else
// compares as floats; mixing a string with a number is a type error.
func Eq(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c == 0 }) }
func Ne(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c != 0 }) }
func Lt(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c < 0 }) }
func Gt(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c > 0 }) }
func Le(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c <= 0 }) }
func Ge(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c >= 0 }) }

func compare(a, b Value, test func(c int) bool) (Value, error) {
	if a.kind == StringKind && b.kind == StringKind {
		return Bool(test(strings.Compare(a.s, b.s))), nil
	}
	x, err := a.AsFloat()
	if err != nil {
		return Value{}, err
	}
	y, err := b.AsFloat()
	if err != nil {
		return Value{}, err
	}
	switch {
	case x < y:
		return Bool(test(-1)), nil
	case x > y:
		return Bool(test(1)), nil
	case x == y:
		return Bool(test(0)), nil
	}
	// NaN is unordered, only <> holds
	return Bool(test(-1) && test(1)), nil
}

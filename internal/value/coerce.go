package value

// KindOf returns the kind a variable name holds, judged by its sigil: "$" is
// a string, "%" an integer, and anything else a float. Only the base name is
// considered, so "a$(1)" is a string element and "a(1)" a float one.
func KindOf(name string) Kind {
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '$':
			return StringKind
		case '%':
			return IntKind
		case '(':
			return FloatKind
		}
	}
	return FloatKind
}

// Coerce converts v for assignment into a variable of kind k: strings only
// into strings, numbers truncate into integers or widen into floats.
func Coerce(k Kind, v Value) (Value, error) {
	switch k {
	case StringKind:
		if v.kind != StringKind {
			return Value{}, typeErrorf("cannot assign %v to a string variable", v.kind)
		}
		return v, nil
	case IntKind:
		i, err := v.AsInt()
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	default:
		f, err := v.AsFloat()
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	}
}

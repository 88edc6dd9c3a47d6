package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jcorbin/gobasic/internal/value"
)

// varStore maps lowercase variable names, array elements included under
// keys like "a(1,2)", to their values.
type varStore struct {
	vars  map[string]value.Value
	limit int
}

type varLimitError struct {
	limit int
	name  string
}

func (err varLimitError) Error() string {
	return fmt.Sprintf("out of memory storing %v, limit %v variables", err.name, err.limit)
}

func (err varLimitError) Unwrap() error { return ErrRange }

func (vs *varStore) reset() { vs.vars = nil }

func (vs *varStore) get(name string) (value.Value, bool) {
	v, ok := vs.vars[name]
	return v, ok
}

func (vs *varStore) set(name string, v value.Value) error {
	if vs.vars == nil {
		vs.vars = make(map[string]value.Value)
	}
	if _, had := vs.vars[name]; !had && vs.limit > 0 && len(vs.vars) >= vs.limit {
		return varLimitError{vs.limit, name}
	}
	vs.vars[name] = v
	return nil
}

func (vs *varStore) names() []string {
	names := make([]string, 0, len(vs.vars))
	for name := range vs.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// load reads a variable; an unset one reads as its kind's default, which is
// then stored so the warning is only given once.
func (in *Interp) load(name string) value.Value {
	if v, ok := in.vars.get(name); ok {
		return v
	}
	in.warnf("access var before init: %v", name)
	v := value.Default(value.KindOf(name))
	if err := in.vars.set(name, v); err != nil {
		in.halt(err)
	}
	return v
}

// lookup resolves names for the root evaluator.
func (in *Interp) lookup(name string) (value.Value, error) {
	return in.load(name), nil
}

func (in *Interp) store(name string, v value.Value) {
	cv, err := value.Coerce(value.KindOf(name), v)
	if err != nil {
		in.halt(fmt.Errorf("%v: %w", name, err))
	}
	if strings.IndexByte(name, '(') >= 0 {
		if _, ok := in.vars.get(name); !ok {
			in.warnf("array element %v not dimensioned", name)
		}
	}
	if err := in.vars.set(name, cv); err != nil {
		in.halt(err)
	}
}

// dim materializes every element of an array, each index running from 0 to
// its bound inclusive. Without bounds the scalar is reset to its default.
func (in *Interp) dim(name string, bounds []int16) {
	zero := value.Default(value.KindOf(name))
	if bounds == nil {
		if err := in.vars.set(name, zero); err != nil {
			in.halt(err)
		}
		return
	}
	for _, b := range bounds {
		if b < 0 {
			in.halt(errorf(ErrRange, "DIM %v: negative bound %v", name, b))
		}
	}
	idx := make([]int16, len(bounds))
	for {
		if err := in.vars.set(elementKey(name, idx), zero); err != nil {
			in.halt(err)
		}

		// odometer increment, last index fastest
		i := len(idx) - 1
		for ; i >= 0; i-- {
			if idx[i] < bounds[i] {
				idx[i]++
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

func elementKey(name string, idx []int16) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, x := range idx {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(x)))
	}
	sb.WriteByte(')')
	return sb.String()
}

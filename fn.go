package main

import (
	"fmt"

	"github.com/jcorbin/gobasic/internal/value"
)

// function is a DEF FN definition; its body is parsed anew on every call.
type function struct {
	param string
	body  string
}

func (in *Interp) define(name string, fn function) {
	if in.fns == nil {
		in.fns = make(map[string]function)
	}
	in.fns[name] = fn
	in.logf("=", "FN %v(%v) = %v", name, fn.param, fn.body)
}

// fnEnv binds only a function's parameter; its body cannot see any other
// variable.
type fnEnv struct {
	param string
	arg   value.Value
}

func (env fnEnv) lookup(name string) (value.Value, error) {
	if name == env.param {
		return env.arg, nil
	}
	return value.Value{}, errorf(ErrName, "%v is not the function parameter %v", name, env.param)
}

func (in *Interp) call(name string, arg value.Value) value.Value {
	fn, ok := in.fns[name]
	if !ok {
		in.halt(errorf(ErrName, "undefined function FN %v", name))
	}
	if in.maxCallDepth > 0 && in.callDepth >= in.maxCallDepth {
		in.halt(errorf(ErrState, "FN %v: call depth exceeds %v", name, in.maxCallDepth))
	}
	in.callDepth++
	defer func() { in.callDepth-- }()
	defer in.withLogPrefix(fmt.Sprintf("FN %v: ", name))()

	arg, err := value.Coerce(value.KindOf(fn.param), arg)
	if err != nil {
		in.halt(fmt.Errorf("FN %v(%v): %w", name, fn.param, err))
	}
	p := &parser{
		scanner: scanner{text: fn.body},
		in:      in,
		env:     fnEnv{param: fn.param, arg: arg},
		line:    in.cur.line,
	}
	v, ok := p.expr()
	if !ok || !p.atEnd() {
		in.halt(errorf(ErrParse, "FN %v: bad body %q", name, fn.body))
	}
	in.logf("=", "%v(%v) = %v", name, arg, v)
	return v
}

package main

import (
	"math"
	"strings"

	"github.com/jcorbin/gobasic/internal/value"
)

type builtin struct {
	name  string
	arity int
	call  func(in *Interp, args []value.Value) value.Value
}

// builtins lists the built-in functions in match order. Names are matched as
// keywords, so one that prefixes another must come after it.
var builtins = []builtin{
	{"sqr", 1, builtinSqr},
	{"int", 1, builtinInt},
	{"abs", 1, floatFunc(func(x float64) float64 { return math.Abs(x) })},
	{"left$", 2, builtinLeft},
	{"mid$", 3, builtinMid},
	{"right$", 2, builtinRight},
	{"len", 1, builtinLen},
	{"asc", 1, builtinAsc},
	{"chr$", 1, builtinChr},
	{"val", 1, builtinVal},
	{"str$", 1, builtinStr},
	{"rnd", 1, builtinRnd},
	{"inkey$", 0, builtinInkey},
	{"sgn", 1, builtinSgn},
	{"sin", 1, floatFunc(math.Sin)},
	{"cos", 1, floatFunc(math.Cos)},
	{"tan", 1, floatFunc(math.Tan)},
	{"atn", 1, floatFunc(math.Atan)},
	{"log", 1, builtinLog},
	{"exp", 1, floatFunc(math.Exp)},
}

// builtin matches a built-in function call. A name not followed by its
// argument list is left for the other term alternatives, so that "sqrt" can
// still be a variable; once the list opens the call form is committed to.
func (p *parser) builtin() (v value.Value, ok, matched bool) {
	start := p.pos
	for _, bi := range builtins {
		p.pos = start
		if !p.keyword(bi.name) {
			continue
		}
		var args []value.Value
		if bi.arity > 0 {
			if p.peek() != '(' {
				continue
			}
			args, ok = p.exprList(bi.arity)
			if !ok {
				return v, false, true
			}
		}
		if p.dry {
			return v, true, true
		}
		return bi.call(p.in, args), true, true
	}
	p.pos = start
	return v, false, false
}

func floatFunc(f func(x float64) float64) func(in *Interp, args []value.Value) value.Value {
	return func(in *Interp, args []value.Value) value.Value {
		x := in.mustFloat(args[0])
		return value.Float(float32(f(float64(x))))
	}
}

func builtinSqr(in *Interp, args []value.Value) value.Value {
	x := in.mustFloat(args[0])
	if x < 0 {
		in.halt(errorf(ErrRange, "SQR of negative %v", value.FormatFloat(x)))
	}
	return value.Float(float32(math.Sqrt(float64(x))))
}

// builtinInt floors non-negative numbers, but rounds negative ones by
// truncating x-0.5: INT(-2.2) is -2 while INT(-2.5) is -3.
func builtinInt(in *Interp, args []value.Value) value.Value {
	x := in.mustFloat(args[0])
	if x < 0 {
		x -= 0.5
	}
	return value.Int(value.Truncate(x))
}

func builtinSgn(in *Interp, args []value.Value) value.Value {
	x := in.mustFloat(args[0])
	switch {
	case x > 0:
		return value.Int(1)
	case x < 0:
		return value.Int(-1)
	}
	return value.Int(0)
}

func builtinLog(in *Interp, args []value.Value) value.Value {
	x := in.mustFloat(args[0])
	if x <= 0 {
		in.halt(errorf(ErrRange, "LOG of non-positive %v", value.FormatFloat(x)))
	}
	return value.Float(float32(math.Log(float64(x))))
}

func builtinLeft(in *Interp, args []value.Value) value.Value {
	s := in.mustString(args[0])
	n := clampLen(int(in.mustInt(args[1])), len(s))
	return value.Str(s[:n])
}

func builtinRight(in *Interp, args []value.Value) value.Value {
	s := in.mustString(args[0])
	n := clampLen(int(in.mustInt(args[1])), len(s))
	return value.Str(mid(s, len(s)-n+1, n))
}

func builtinMid(in *Interp, args []value.Value) value.Value {
	s := in.mustString(args[0])
	return value.Str(mid(s, int(in.mustInt(args[1])), int(in.mustInt(args[2]))))
}

// mid returns up to n characters of s from the 1-based position pos; a
// position outside s yields the empty string.
func mid(s string, pos, n int) string {
	if pos < 1 || pos > len(s) || n <= 0 {
		return ""
	}
	i := pos - 1
	return s[i : i+clampLen(n, len(s)-i)]
}

func clampLen(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

func builtinLen(in *Interp, args []value.Value) value.Value {
	return value.Int(int16(len(in.mustString(args[0]))))
}

func builtinAsc(in *Interp, args []value.Value) value.Value {
	s := in.mustString(args[0])
	if s == "" {
		in.halt(errorf(ErrRange, "ASC of empty string"))
	}
	return value.Int(int16(s[0]))
}

func builtinChr(in *Interp, args []value.Value) value.Value {
	n := in.mustInt(args[0])
	if n < 0 || n > 255 {
		in.halt(errorf(ErrRange, "CHR$ of %v", n))
	}
	return value.Str(string([]byte{byte(n)}))
}

// builtinVal reads the longest numeric literal at the start of its argument,
// or 0 when there is none.
func builtinVal(in *Interp, args []value.Value) value.Value {
	s := in.mustString(args[0])
	sc := scanner{text: strings.TrimLeft(s, " ")}
	v, ok := sc.number()
	if !ok {
		return value.Float(0)
	}
	return value.Float(in.mustFloat(v))
}

func builtinStr(in *Interp, args []value.Value) value.Value {
	x := args[0]
	in.mustFloat(x)
	return value.Str(x.Display())
}

const epsilon = 1.1920929e-07

func builtinRnd(in *Interp, args []value.Value) value.Value {
	x := in.mustFloat(args[0])
	if x <= epsilon {
		in.halt(errorf(ErrRange, "RND only supports positive arguments, got %v", value.FormatFloat(x)))
	}
	return value.Float(x * in.rng.Float32())
}

func builtinInkey(in *Interp, _ []value.Value) value.Value {
	return value.Str(in.inkey())
}

package main

import (
	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

// parser evaluates program text as it parses it. In dry mode the same grammar
// is matched without any effect: no variable is read, no operator applied and
// no action taken. Dry parses decide which grammar alternative applies before
// a live parse commits to it.
type parser struct {
	scanner
	in   *Interp
	env  env
	line lines.Number
	dry  bool
	mode parseMode
}

// env resolves variable names for an evaluator.
type env interface {
	lookup(name string) (value.Value, error)
}

// here is the position just after the statement parsed so far, as a resume
// point for RETURN and NEXT.
func (p *parser) here() pc {
	return pc{line: p.line, offset: p.pos, resume: true}
}

func (p *parser) unexpected(what string) error {
	p.skipSpace()
	if p.pos >= len(p.text) {
		return errorf(ErrParse, "expected %v, got end of line", what)
	}
	return errorf(ErrParse, "expected %v", what)
}

type binaryOp func(a, b value.Value) (value.Value, error)

func (p *parser) binary(op binaryOp, a, b value.Value) value.Value {
	if p.dry {
		return value.Value{}
	}
	return p.in.must(op(a, b))
}

func (p *parser) unary(op func(a value.Value) (value.Value, error), a value.Value) value.Value {
	if p.dry {
		return value.Value{}
	}
	return p.in.must(op(a))
}

func (p *parser) expr() (value.Value, bool) {
	return p.chain(p.logAnd, func() (binaryOp, bool) {
		return value.Or, p.keyword("or")
	})
}

func (p *parser) logAnd() (value.Value, bool) {
	return p.chain(p.relational, func() (binaryOp, bool) {
		return value.And, p.keyword("and")
	})
}

var relationalOps = []struct {
	first, second byte
	op            binaryOp
}{
	{'<', '>', value.Ne},
	{'<', '=', value.Le},
	{'>', '=', value.Ge},
	{'=', '=', value.Eq},
	{'=', 0, value.Eq},
	{'<', 0, value.Lt},
	{'>', 0, value.Gt},
}

func (p *parser) relational() (value.Value, bool) {
	return p.chain(p.additive, func() (binaryOp, bool) {
		save := p.pos
		for _, rel := range relationalOps {
			if p.char(rel.first) && (rel.second == 0 || p.char(rel.second)) {
				return rel.op, true
			}
			p.pos = save
		}
		return nil, false
	})
}

func (p *parser) additive() (value.Value, bool) {
	return p.chain(p.multiplicative, func() (binaryOp, bool) {
		switch {
		case p.char('+'):
			return value.Add, true
		case p.char('-'):
			return value.Sub, true
		}
		return nil, false
	})
}

func (p *parser) multiplicative() (value.Value, bool) {
	return p.chain(p.power, func() (binaryOp, bool) {
		switch {
		case p.char('*'):
			return value.Mul, true
		case p.char('/'):
			return value.Div, true
		}
		return nil, false
	})
}

// power is left associative: 2^3^2 is 64.
func (p *parser) power() (value.Value, bool) {
	return p.chain(p.term, func() (binaryOp, bool) {
		return value.Pow, p.char('^')
	})
}

// chain parses a left associative sequence of operands joined by operators.
// An operator not followed by an operand ends the sequence before it.
func (p *parser) chain(operand func() (value.Value, bool), operator func() (binaryOp, bool)) (value.Value, bool) {
	v, ok := operand()
	if !ok {
		return v, false
	}
	for {
		save := p.pos
		op, ok := operator()
		if !ok {
			p.pos = save
			return v, true
		}
		w, ok := operand()
		if !ok {
			p.pos = save
			return v, true
		}
		v = p.binary(op, v, w)
	}
}

func (p *parser) term() (value.Value, bool) {
	start := p.pos
	if v, ok := p.number(); ok {
		return v, true
	}
	if s, ok := p.stringLit(); ok {
		return value.Str(s), true
	}

	if p.char('(') {
		if v, ok := p.expr(); ok && p.char(')') {
			return v, true
		}
		p.pos = start
		return value.Value{}, false
	}

	if p.char('-') {
		if v, ok := p.term(); ok {
			return p.unary(value.Neg, v), true
		}
		p.pos = start
		return value.Value{}, false
	}

	if p.char('+') {
		if v, ok := p.term(); ok {
			return v, true
		}
		p.pos = start
		return value.Value{}, false
	}

	if p.keyword("not") {
		if v, ok := p.term(); ok {
			return p.unary(value.Not, v), true
		}
		p.pos = start
	}

	if v, ok, matched := p.builtin(); matched {
		if !ok {
			p.pos = start
		}
		return v, ok
	}

	if v, ok, matched := p.fnCall(); matched {
		if !ok {
			p.pos = start
		}
		return v, ok
	}

	name, ok := p.varRef()
	if !ok {
		p.pos = start
		return value.Value{}, false
	}
	if p.dry {
		return value.Value{}, true
	}
	v, err := p.env.lookup(name)
	if err != nil {
		p.in.halt(err)
	}
	return v, true
}

// varRef matches a variable reference and returns its store key, with array
// indices evaluated into the key as in "a(1,2)". Once an opening parenthesis
// follows the name, the reference must be a well formed element.
func (p *parser) varRef() (string, bool) {
	start := p.pos
	name, ok := p.ident()
	if !ok {
		return "", false
	}
	if !p.char('(') {
		return name, true
	}
	var idx []int16
	for {
		v, ok := p.expr()
		if !ok {
			p.pos = start
			return "", false
		}
		if !p.dry {
			idx = append(idx, p.in.mustInt(v))
		}
		if !p.char(',') {
			break
		}
	}
	if !p.char(')') {
		p.pos = start
		return "", false
	}
	if p.dry {
		return name + "()", true
	}
	return elementKey(name, idx), true
}

// exprList matches n comma separated expressions within parentheses.
func (p *parser) exprList(n int) ([]value.Value, bool) {
	if !p.char('(') {
		return nil, false
	}
	args := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && !p.char(',') {
			return nil, false
		}
		v, ok := p.expr()
		if !ok {
			return nil, false
		}
		args = append(args, v)
	}
	if !p.char(')') {
		return nil, false
	}
	return args, true
}

// fnCall matches FN name(arg). The returned matched flag is set once an
// opening parenthesis commits to the call form.
func (p *parser) fnCall() (v value.Value, ok, matched bool) {
	start := p.pos
	if !p.keyword("fn") {
		return v, false, false
	}
	name, ok := p.ident()
	if !ok || p.peek() != '(' {
		p.pos = start
		return v, false, false
	}
	args, ok := p.exprList(1)
	if !ok {
		return v, false, true
	}
	if p.dry {
		return v, true, true
	}
	return p.in.call(name, args[0]), true, true
}

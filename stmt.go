package main

import (
	"strings"

	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

// stmtParser parses one statement, returning the action that carries out its
// effects. Parsing itself evaluates expressions, but leaves all state changes
// to the action.
type stmtParser func(p *parser) (act func(), ok bool)

type stmtKind struct {
	name  string
	parse stmtParser

	// open statements lead into another statement on the same line
	open bool
}

// statements are tried in order; the first that matches up to a statement
// end is taken.
var statements = []stmtKind{
	{name: "TEXT", parse: noopStmt("text")},
	{name: "HOME", parse: noopStmt("home")},
	{name: "CLS", parse: noopStmt("cls")},
	{name: "STOP", parse: (*parser).stopStmt},
	{name: "PRINT", parse: (*parser).printStmt},
	{name: "INPUT", parse: (*parser).inputStmt},
	{name: "IF", parse: (*parser).ifStmt, open: true},
	{name: "ON", parse: (*parser).onStmt},
	{name: "GOTO", parse: (*parser).gotoStmt},
	{name: "GOSUB", parse: (*parser).gosubStmt},
	{name: "RETURN", parse: (*parser).returnStmt},
	{name: "FOR", parse: (*parser).forStmt},
	{name: "NEXT", parse: (*parser).nextStmt},
	{name: "END", parse: (*parser).endStmt},
	{name: "DIM", parse: (*parser).dimStmt},
	{name: "RESTORE", parse: (*parser).restoreStmt},
	{name: "READ", parse: (*parser).readStmt},
	{name: "RANDOMIZE", parse: (*parser).randomizeStmt},
	{name: "REM", parse: (*parser).remStmt},
	{name: "DATA", parse: (*parser).dataStmt},
	{name: "DEF", parse: (*parser).defStmt},
	{name: "LET", parse: (*parser).letStmt},
}

// decide finds which statement matches at the current position without
// effect, leaving the position after it and any parse mode it set.
func (p *parser) decide() (int, bool) {
	start, dry := p.pos, p.dry
	p.dry = true
	defer func() { p.dry = dry }()
	for i, st := range statements {
		p.pos = start
		p.mode = modeNormal
		if _, ok := st.parse(p); ok && (st.open || p.atStatementEnd()) {
			return i, true
		}
	}
	p.pos = start
	p.mode = modeNormal
	return -1, false
}

// statement runs the statement at the current position.
func (p *parser) statement() error {
	start := p.pos
	i, ok := p.decide()
	if !ok {
		return p.unexpected("statement")
	}
	st := statements[i]

	p.pos = start
	p.mode = modeNormal
	act, ok := st.parse(p)
	if !ok {
		return errorf(ErrParse, "%v statement failed to reparse", st.name)
	}
	p.in.logf(">", "%v %v", st.name, strings.TrimSpace(p.text[start:p.pos]))
	p.in.jumped = false
	if act != nil {
		act()
	}
	return nil
}

// skipStatement passes over the statement at the current position.
func (p *parser) skipStatement() bool {
	start := p.pos
	i, ok := p.decide()
	if ok {
		p.in.logf("-", "%v %v", statements[i].name, strings.TrimSpace(p.text[start:p.pos]))
	}
	return ok
}

func noopStmt(kw string) stmtParser {
	return func(p *parser) (func(), bool) {
		return nil, p.keyword(kw)
	}
}

func (p *parser) stopStmt() (func(), bool) {
	if !p.keyword("stop") {
		return nil, false
	}
	return p.in.stop, true
}

func (p *parser) endStmt() (func(), bool) {
	if !p.keyword("end") {
		return nil, false
	}
	return p.in.end, true
}

func (p *parser) returnStmt() (func(), bool) {
	if !p.keyword("return") {
		return nil, false
	}
	return p.in.ret, true
}

func (p *parser) remStmt() (func(), bool) {
	if !p.keyword("rem") {
		return nil, false
	}
	p.pos = len(p.text)
	return nil, true
}

// dataStmt passes over DATA at run time; its values were taken when the
// program was loaded.
func (p *parser) dataStmt() (func(), bool) {
	if !p.keyword("data") {
		return nil, false
	}
	_, ok := p.dataItems()
	return nil, ok
}

// dataItems matches a comma separated list of number and string literals.
func (sc *scanner) dataItems() ([]value.Value, bool) {
	var vals []value.Value
	for {
		v, ok := sc.number()
		if !ok {
			s, isStr := sc.stringLit()
			if !isStr {
				return nil, false
			}
			v = value.Str(s)
		}
		vals = append(vals, v)
		if !sc.char(',') {
			return vals, true
		}
	}
}

// printStmt writes each item as soon as it is evaluated, so a failing item
// leaves the ones before it printed; only the final newline waits for the
// action.
func (p *parser) printStmt() (func(), bool) {
	if !p.keyword("print") && !p.char('?') {
		return nil, false
	}
	if p.atStatementEnd() {
		return func() { p.in.print("\n") }, true
	}

	if !p.printArg() {
		return nil, false
	}
	for {
		save := p.pos
		if !p.char(';') {
			break
		}
		if !p.printArg() {
			p.pos = save
			break
		}
	}
	if p.char(';') {
		return func() {}, true
	}
	if !p.atStatementEnd() {
		return nil, false
	}
	return func() { p.in.print("\n") }, true
}

// printArg matches a run of print items: commas, each printing a tab, TAB()
// calls and expressions.
func (p *parser) printArg() bool {
	n := 0
	for ; ; n++ {
		if p.char(',') {
			p.emit("\t")
			continue
		}
		if p.lookKeyword("else") {
			break
		}
		if s, ok := p.printTab(); ok {
			p.emit(s)
			continue
		}
		v, ok := p.expr()
		if !ok {
			break
		}
		p.emit(p.in.display(v))
	}
	return n > 0
}

func (p *parser) emit(s string) {
	if !p.dry {
		p.in.print(s)
	}
}

func (p *parser) printTab() (string, bool) {
	start := p.pos
	if !p.keyword("tab") || p.peek() != '(' {
		p.pos = start
		return "", false
	}
	args, ok := p.exprList(1)
	if !ok {
		p.pos = start
		return "", false
	}
	if p.dry {
		return "", true
	}
	n := p.in.mustInt(args[0])
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", int(n)), true
}

func (p *parser) inputStmt() (func(), bool) {
	if !p.keyword("input") {
		return nil, false
	}
	prompt := "?"
	save := p.pos
	if s, ok := p.stringLit(); ok && p.char(';') {
		prompt = s
	} else {
		p.pos = save
	}
	targets, ok := p.targets()
	if !ok {
		return nil, false
	}
	return func() {
		for i, at := range targets {
			if i > 0 {
				prompt = "??"
			}
			p.in.input(prompt, p.resolve(at))
		}
	}, true
}

func (p *parser) readStmt() (func(), bool) {
	if !p.keyword("read") {
		return nil, false
	}
	targets, ok := p.targets()
	if !ok {
		return nil, false
	}
	return func() {
		for _, at := range targets {
			p.in.store(p.resolve(at), p.in.read())
		}
	}, true
}

// targets matches a comma separated list of variable references, returning
// where each starts. Their array indices are only evaluated by resolve, one
// at a time, so that an index may use a value stored by an earlier target.
func (p *parser) targets() ([]int, bool) {
	dry := p.dry
	p.dry = true
	defer func() { p.dry = dry }()

	var at []int
	for {
		p.skipSpace()
		pos := p.pos
		if _, ok := p.varRef(); !ok {
			return nil, false
		}
		at = append(at, pos)
		if !p.char(',') {
			return at, true
		}
	}
}

func (p *parser) resolve(at int) string {
	sub := *p
	sub.pos, sub.dry = at, false
	name, _ := sub.varRef()
	return name
}

func (p *parser) ifStmt() (func(), bool) {
	if !p.keyword("if") {
		return nil, false
	}
	cond, ok := p.expr()
	if !ok {
		return nil, false
	}
	if p.keyword("then") {
		save := p.pos
		if line, ok := p.lineNum(); ok && p.atStatementEnd() {
			switch {
			case p.dry:
				p.mode = modeParseElse
				return nil, true
			case cond.Truth():
				return func() { p.in.jump(line) }, true
			}
			return func() { p.mode = modeParseElse }, true
		}
		p.pos = save
	}
	switch {
	case p.dry:
		p.mode = modeParseThenSkipElse
		return nil, true
	case cond.Truth():
		return func() { p.mode = modeParseThenSkipElse }, true
	}
	return func() { p.mode = modeSkipThenParseElse }, true
}

func (p *parser) onStmt() (func(), bool) {
	if !p.keyword("on") {
		return nil, false
	}
	v, ok := p.expr()
	if !ok {
		return nil, false
	}
	sub := false
	switch {
	case p.keyword("goto"):
	case p.keyword("gosub"):
		sub = true
	default:
		return nil, false
	}
	var targets []lines.Number
	for {
		line, ok := p.lineNum()
		if !ok {
			return nil, false
		}
		targets = append(targets, line)
		if !p.char(',') {
			break
		}
	}
	ret := p.here()
	return func() {
		n := p.in.mustInt(v)
		if n < 1 || int(n) > len(targets) {
			p.in.halt(errorf(ErrRange, "ON statement incorrect branch #%v", n))
		}
		if sub {
			p.in.gosub(targets[n-1], ret)
		} else {
			p.in.jump(targets[n-1])
		}
	}, true
}

func (p *parser) gotoStmt() (func(), bool) {
	if !p.keyword("goto") {
		return nil, false
	}
	line, ok := p.lineNum()
	if !ok {
		return nil, false
	}
	return func() { p.in.jump(line) }, true
}

func (p *parser) gosubStmt() (func(), bool) {
	if !p.keyword("gosub") {
		return nil, false
	}
	line, ok := p.lineNum()
	if !ok {
		return nil, false
	}
	ret := p.here()
	return func() { p.in.gosub(line, ret) }, true
}

func (p *parser) forStmt() (func(), bool) {
	if !p.keyword("for") {
		return nil, false
	}
	name, ok := p.ident()
	if !ok || !p.char('=') {
		return nil, false
	}
	from, ok := p.expr()
	if !ok || !p.keyword("to") {
		return nil, false
	}
	target, ok := p.expr()
	if !ok {
		return nil, false
	}
	step := value.Int(1)
	if p.keyword("step") {
		if step, ok = p.expr(); !ok {
			return nil, false
		}
	}
	body := p.here()
	return func() {
		p.in.store(name, from)
		p.in.pushFor(forFrame{name: name, target: target, step: step, body: body})
	}, true
}

func (p *parser) nextStmt() (func(), bool) {
	if !p.keyword("next") {
		return nil, false
	}
	var names []string
	if name, ok := p.ident(); ok {
		names = append(names, name)
		for p.char(',') {
			if name, ok = p.ident(); !ok {
				return nil, false
			}
			names = append(names, name)
		}
	}
	return func() { p.in.next(names) }, true
}

func (p *parser) dimStmt() (func(), bool) {
	if !p.keyword("dim") {
		return nil, false
	}
	type dimension struct {
		name   string
		bounds []int16
	}
	var dims []dimension
	for {
		name, ok := p.ident()
		if !ok {
			return nil, false
		}
		dim := dimension{name: name}
		if p.char('(') {
			for {
				v, ok := p.expr()
				if !ok {
					return nil, false
				}
				if !p.dry {
					dim.bounds = append(dim.bounds, p.in.mustInt(v))
				}
				if !p.char(',') {
					break
				}
			}
			if !p.char(')') {
				return nil, false
			}
			if dim.bounds == nil {
				dim.bounds = []int16{}
			}
		}
		dims = append(dims, dim)
		if !p.char(',') {
			break
		}
	}
	return func() {
		for _, dim := range dims {
			p.in.dim(dim.name, dim.bounds)
		}
	}, true
}

func (p *parser) restoreStmt() (func(), bool) {
	if !p.keyword("restore") {
		return nil, false
	}
	line, hasLine := p.lineNum()
	return func() { p.in.restore(line, hasLine) }, true
}

func (p *parser) randomizeStmt() (func(), bool) {
	if !p.keyword("randomize") {
		return nil, false
	}
	v, ok := p.expr()
	if !ok {
		return nil, false
	}
	return func() { p.in.randomize(p.in.mustInt(v)) }, true
}

// defStmt defines FN name(param) = body, keeping the body as text.
func (p *parser) defStmt() (func(), bool) {
	if !p.keyword("def") || !p.keyword("fn") {
		return nil, false
	}
	name, ok := p.ident()
	if !ok || !p.char('(') {
		return nil, false
	}
	param, ok := p.ident()
	if !ok || !p.char(')') || !p.char('=') {
		return nil, false
	}

	dry := p.dry
	p.dry = true
	p.skipSpace()
	start := p.pos
	_, ok = p.expr()
	p.dry = dry
	if !ok {
		return nil, false
	}
	fn := function{param: param, body: strings.TrimSpace(p.text[start:p.pos])}
	return func() { p.in.define(name, fn) }, true
}

// letStmt matches an assignment, with or without LET. A target that merely
// starts with "let" is taken as a name first.
func (p *parser) letStmt() (func(), bool) {
	start := p.pos
	if act, ok := p.assign(); ok {
		return act, true
	}
	p.pos = start
	if !p.keyword("let") {
		return nil, false
	}
	return p.assign()
}

func (p *parser) assign() (func(), bool) {
	name, ok := p.varRef()
	if !ok || !p.char('=') {
		return nil, false
	}
	v, ok := p.expr()
	if !ok {
		return nil, false
	}
	return func() { p.in.store(name, v) }, true
}

package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

// Interp is a BASIC interpreter: a program, the state it runs against, and
// the I/O it talks to.
type Interp struct {
	Core

	prog lines.Table
	pc   pc // next fetch
	cur  pc // line being executed

	jumped bool
	direct string // text being run by Exec

	vars   varStore
	fors   []forFrame
	gosubs []pc
	data   dataTape
	fns    map[string]function

	callDepth    int
	maxCallDepth int

	rng        *rand.Rand
	script     []string
	scripted   bool
	keys       KeyPoller
	padNumbers bool
}

// pc addresses an offset within a program line. Resume marks a position
// right after a completed statement, rather than the start of a line.
type pc struct {
	line   lines.Number
	offset int
	resume bool
}

func (at pc) String() string {
	s := "END"
	if at.line != lines.End {
		s = fmt.Sprint(at.line)
	}
	if at.offset != 0 || at.resume {
		s += fmt.Sprintf("+%v", at.offset)
	}
	if at.resume {
		s += "*"
	}
	return s
}

type forFrame struct {
	name   string
	target value.Value
	step   value.Value
	body   pc
}

func (in *Interp) start() {
	in.pc = pc{}
	in.cur = pc{}
	in.fors = in.fors[:0]
	in.gosubs = in.gosubs[:0]
	in.data.restore()
}

func (in *Interp) clear() {
	in.start()
	in.vars.reset()
	in.fns = nil
	in.callDepth = 0
}

func (in *Interp) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		at, text, ok := in.nextLine()
		if !ok {
			return nil
		}
		if err := in.execLine(at, text); err != nil {
			return err
		}
	}
}

// exec runs direct mode text, which lives at the END line number; control
// may come back to it from the program by RETURN or NEXT.
func (in *Interp) exec(ctx context.Context, text string) error {
	in.direct = text
	defer func() { in.direct = "" }()
	at := pc{line: lines.End}
	in.pc = at
	if err := in.execLine(at, text); err != nil {
		return err
	}
	return in.run(ctx)
}

func (in *Interp) eval(text string) (v value.Value, err error) {
	p := in.parser(pc{line: lines.End}, text)
	defer func() {
		if err != nil {
			err = &LineError{Line: lines.End, Text: text, Pos: p.pos, Err: err}
		}
	}()
	defer p.recoverHalt(&err)

	p.dry = true
	if _, ok := p.expr(); !ok || !p.atEnd() {
		return v, p.unexpected("expression")
	}
	p.dry = false
	p.pos = 0
	v, _ = p.expr()
	return v, nil
}

// nextLine finds the first line at or after the program counter that has
// anything left to run, and advances the counter past it.
func (in *Interp) nextLine() (at pc, text string, ok bool) {
	for {
		if in.pc.line == lines.End {
			return in.resumeDirect()
		}
		line, ok := in.prog.Seek(in.pc.line)
		if !ok {
			return at, "", false
		}
		at = pc{line: line.Num}
		if line.Num == in.pc.line {
			at.offset, at.resume = in.pc.offset, in.pc.resume
		}
		if at.offset > len(line.Text) {
			at.offset = len(line.Text)
		}
		for at.offset < len(line.Text) && isSpace(line.Text[at.offset]) {
			at.offset++
		}
		in.pc = pc{line: line.Num + 1}
		if at.offset < len(line.Text) {
			in.logf("@", "%v %v", at, line.Text[at.offset:])
			return at, line.Text, true
		}
	}
}

func (in *Interp) resumeDirect() (at pc, text string, ok bool) {
	at, text = in.pc, in.direct
	in.pc = pc{line: lines.End}
	if text == "" || !at.resume {
		return at, "", false
	}
	for at.offset < len(text) && isSpace(text[at.offset]) {
		at.offset++
	}
	if at.offset >= len(text) {
		return at, "", false
	}
	in.logf("@", "%v %v", at, text[at.offset:])
	return at, text, true
}

func (in *Interp) execLine(at pc, text string) (err error) {
	in.cur = at
	in.jumped = false
	p := in.parser(at, text)
	defer func() {
		if err != nil {
			err = &LineError{Line: at.line, Text: text, Pos: p.pos, Err: err}
		}
	}()
	defer p.recoverHalt(&err)
	return p.sequence(at.resume)
}

func (in *Interp) parser(at pc, text string) *parser {
	return &parser{
		scanner: scanner{text: text, pos: at.offset},
		in:      in,
		env:     in,
		line:    at.line,
	}
}

// recoverHalt turns a halt raised while parsing into an error return.
func (p *parser) recoverHalt(errp *error) {
	if e := recover(); e != nil {
		hs, ok := e.(haltSignal)
		if !ok {
			panic(e)
		}
		*errp = hs.err
	}
}

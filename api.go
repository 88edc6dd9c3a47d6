package main

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/jcorbin/gobasic/internal/fileinput"
	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/panicerr"
	"github.com/jcorbin/gobasic/internal/value"
)

// New creates an interpreter with an empty program.
func New(opts ...Option) *Interp {
	var in Interp
	defaultOptions.apply(&in)
	Options(opts...).apply(&in)
	if in.rng == nil {
		in.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &in
}

// Run executes the stored program from its lowest line until it ends, fails,
// or ctx is done.
func (in *Interp) Run(ctx context.Context) error {
	in.start()
	err := panicerr.Recover("basic", func() error {
		return in.run(ctx)
	})
	if ferr := in.flush(); err == nil {
		err = ferr
	}
	return err
}

// Exec runs text as a direct mode statement sequence. If it transfers control
// into the stored program (GOTO, GOSUB, ...) the program then runs from
// there as Run would.
func (in *Interp) Exec(ctx context.Context, text string) error {
	err := panicerr.Recover("basic", func() error {
		return in.exec(ctx, text)
	})
	if ferr := in.flush(); err == nil {
		err = ferr
	}
	return err
}

// Eval evaluates a single expression against the current program state.
func (in *Interp) Eval(text string) (value.Value, error) {
	var v value.Value
	err := panicerr.Recover("basic", func() (err error) {
		v, err = in.eval(text)
		return err
	})
	return v, err
}

// Load preparses program text, adding its numbered lines to the program and
// its DATA values to the data tape.
func (in *Interp) Load(r io.Reader) error { return in.loadSource(r) }

// LoadLines is Load over in-memory lines.
func (in *Interp) LoadLines(text ...string) error { return in.loadLines(text...) }

// Script queues more scripted input lines, consumed by INPUT and INKEY$
// before any real input.
func (in *Interp) Script(text ...string) { scriptOption(text).apply(in) }

// ReadScript reads every line of r, for use with WithScript or Script.
func ReadScript(r io.Reader) ([]string, error) {
	var script []string
	src := fileinput.Input{Queue: []io.Reader{r}}
	for {
		text, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return script, nil
		} else if err != nil {
			return script, err
		}
		script = append(script, text)
	}
}

// Clear resets variables, functions, stacks and the data cursor, keeping the
// program.
func (in *Interp) Clear() { in.clear() }

// Reset discards the program, its data and any scripted input, then clears.
func (in *Interp) Reset() {
	in.prog.Reset()
	in.data = dataTape{}
	in.script = nil
	in.clear()
}

// Program calls fn with each stored line in order.
func (in *Interp) Program(fn func(num lines.Number, text string)) {
	in.prog.Each(func(l lines.Line) bool {
		fn(l.Num, l.Text)
		return true
	})
}

// KeyPoller reports a pending key press, if any, without blocking.
type KeyPoller interface {
	PollKey() (string, bool)
}

func WithInput(r io.Reader) Option     { return withInput(r) }
func WithOutput(w io.Writer) Option    { return withOutput(w) }
func WithTee(w io.Writer) Option       { return withTee(w) }
func WithScript(text ...string) Option { return scriptOption(text) }
func WithSeed(seed int64) Option       { return seedOption(seed) }
func WithKeys(kp KeyPoller) Option     { return keysOption{kp} }
func WithVarLimit(limit int) Option    { return varLimitOption(limit) }
func WithNumberPadding(on bool) Option { return paddingOption(on) }
func WithCallDepth(depth int) Option   { return callDepthOption(depth) }

func WithLogf(logfn func(mess string, args ...interface{})) Option   { return withLogfn(logfn) }
func WithWarnf(warnfn func(mess string, args ...interface{})) Option { return withWarnfn(warnfn) }

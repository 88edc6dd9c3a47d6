package main

import (
	"io"
	"math/rand"

	"github.com/jcorbin/gobasic/internal/flushio"
)

// Option configures an Interp.
type Option interface{ apply(in *Interp) }

// Options combines any number of options into one, applied in order.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []Option

func (opts options) apply(in *Interp) {
	for _, opt := range opts {
		opt.apply(in)
	}
}

const defaultCallDepth = 64

var defaultOptions = Options(
	withOutput(io.Discard),
	callDepthOption(defaultCallDepth),
)

type withLogfn func(mess string, args ...interface{})
type withWarnfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(in *Interp)   { in.logfn = logfn }
func (warnfn withWarnfn) apply(in *Interp) { in.warnfn = warnfn }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type scriptOption []string
type seedOption int64
type keysOption struct{ KeyPoller }
type varLimitOption int
type paddingOption bool
type callDepthOption int

func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withTee(w io.Writer) teeOption       { return teeOption{w} }

func (i inputOption) apply(in *Interp) {
	in.Input.Queue = append(in.Input.Queue, i.Reader)
	if cl, ok := i.Reader.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

func (o outputOption) apply(in *Interp) {
	if in.out != nil {
		in.out.Flush()
	}
	in.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(in *Interp) {
	in.out = flushio.WriteFlushers(in.out, flushio.NewWriteFlusher(o.Writer))
}

func (lines scriptOption) apply(in *Interp) {
	in.script = append(in.script, lines...)
	in.scripted = true
}

func (seed seedOption) apply(in *Interp) {
	in.rng = rand.New(rand.NewSource(int64(seed)))
}

func (k keysOption) apply(in *Interp) { in.keys = k.KeyPoller }

func (lim varLimitOption) apply(in *Interp) { in.vars.limit = int(lim) }

func (pad paddingOption) apply(in *Interp) { in.padNumbers = bool(pad) }

func (depth callDepthOption) apply(in *Interp) { in.maxCallDepth = int(depth) }

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobasic/internal/fileinput"
	"github.com/jcorbin/gobasic/internal/flushio"
	"github.com/jcorbin/gobasic/internal/runeio"
)

// Core carries the interpreter's ambient plumbing: logging, the INPUT stream
// and the output sink.
type Core struct {
	logging
	fileinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer
}

// Close flushes output, then closes anything given to options that needs
// closing, most recent first. The first error wins.
func (core *Core) Close() error {
	err := core.flush()
	for len(core.closers) > 0 {
		last := len(core.closers) - 1
		cl := core.closers[last]
		core.closers = core.closers[:last]
		if cerr := cl.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt stops the interpreter with err, which recoverHalt returns from the
// current Run or Exec. Output is flushed first, so that anything printed
// before the failure shows.
func (core *Core) halt(err error) {
	if core.out != nil {
		if ferr := swallowPanic(core.out.Flush); err == nil {
			err = ferr
		}
	}
	swallowPanic(func() error {
		core.logf("#", "halt: %v", err)
		return nil
	})
	panic(haltSignal{err})
}

func swallowPanic(f func() error) (err error) {
	defer func() { recover() }()
	return f()
}

func (core *Core) writeString(s string) {
	if _, err := runeio.WriteANSIString(core.out, s); err != nil {
		core.halt(err)
	}
}

func (core *Core) flush() error {
	if core.out == nil {
		return nil
	}
	return core.out.Flush()
}

func (core *Core) readLine() (string, error) {
	if err := core.flush(); err != nil {
		return "", err
	}
	return core.Input.ReadLine()
}

// haltSignal is the panic value raised by halt.
type haltSignal struct{ err error }

type logging struct {
	logfn  func(mess string, args ...interface{})
	warnfn func(mess string, args ...interface{})

	markWidth int
}

// withLogPrefix prefixes every log message until the returned func is called.
func (log *logging) withLogPrefix(prefix string) (restore func()) {
	prior := log.logfn
	if prior != nil {
		log.logfn = func(mess string, args ...interface{}) { prior(prefix+mess, args...) }
	}
	return func() { log.logfn = prior }
}

// logf logs mess after a mark like "+" or ">"; shorter marks are padded out by
// repeating their first character, so that messages line up.
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	switch pad := log.markWidth - len(mark); {
	case pad < 0:
		log.markWidth = len(mark)
	case pad > 0 && mark != "":
		mark = strings.Repeat(mark[:1], pad) + mark
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

func (log *logging) warnf(mess string, args ...interface{}) {
	log.logf("!", mess, args...)
	if log.warnfn != nil {
		log.warnfn(mess, args...)
	}
}

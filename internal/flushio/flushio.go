// Package flushio provides writers that hold output until flushed.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself when it can already flush. In memory
// buffers and io.Discard get a no-op Flush; anything else is buffered through
// a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// WriteFlushers combines writers into one that writes to, and flushes, each
// of them in order. Nil writers are dropped.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all multiFlusher
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case multiFlusher:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type multiFlusher []WriteFlusher

func (mf multiFlusher) Write(p []byte) (int, error) {
	for _, wf := range mf {
		n, err := wf.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return n, err
		}
	}
	return len(p), nil
}

func (mf multiFlusher) Flush() (err error) {
	for _, wf := range mf {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

package runeio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that can also read runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader adds rune reading to r through a bufio.Reader, unless r already
// reads runes. A Name method on r carries over to the result.
func NewReader(r io.Reader) Reader {
	if rr, ok := r.(Reader); ok {
		return rr
	}
	br := bufio.NewReader(r)
	if nom, ok := r.(interface{ Name() string }); ok {
		return namedReader{br, nom.Name()}
	}
	return br
}

type namedReader struct {
	*bufio.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// Package fileinput reads lines from a queue of named input streams,
// remembering where each line came from.
package fileinput

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobasic/internal/runeio"
)

// Location names a line of an input stream, counting from 1.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Line is a line as it was read, carriage return included, with its Location.
type Line struct {
	Location
	Text string
}

func (ln Line) String() string { return fmt.Sprintf("%v %q", ln.Location, ln.Text) }

// Input reads the streams in its Queue one after another. Streams that are
// io.Closers get closed once exhausted.
type Input struct {
	Queue []io.Reader

	// Last is the line most recently returned by ReadLine.
	Last Line

	src  io.Reader
	cur  io.RuneReader
	name string
	line int
}

// ReadLine reads up to the next line feed, returning the line without it or
// any carriage return before it. A final line without a line feed is still
// returned, even when another queued stream follows it; io.EOF is only
// returned once every queued stream is exhausted.
func (in *Input) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		if in.cur == nil {
			if sb.Len() > 0 {
				return in.complete(sb.String()), nil
			}
			if !in.advance() {
				return "", io.EOF
			}
		}
		r, _, err := in.cur.ReadRune()
		switch {
		case err == io.EOF:
			in.release()
		case err != nil:
			return "", err
		case r == '\n':
			return in.complete(sb.String()), nil
		default:
			sb.WriteRune(r)
		}
	}
}

func (in *Input) complete(text string) string {
	in.line++
	in.Last = Line{Location{in.name, in.line}, text}
	return strings.TrimSuffix(text, "\r")
}

func (in *Input) advance() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.src, in.cur = r, runeio.NewReader(r)
	in.name, in.line = nameOf(r), 0
	return true
}

func (in *Input) release() {
	if cl, ok := in.src.(io.Closer); ok {
		cl.Close()
	}
	in.src, in.cur = nil, nil
}

// NamedReader attaches a name to r, used as the Location name of its lines.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(r io.Reader) string {
	if nom, ok := r.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", r)
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

// Every error raised while running a program wraps exactly one of these kinds.
var (
	ErrParse = errors.New("syntax error")
	ErrType  = value.ErrType
	ErrName  = errors.New("name error")
	ErrState = errors.New("state error")
	ErrRange = errors.New("range error")
)

// ErrStopped is returned by Run after a STOP statement.
var ErrStopped = errors.New("stopped")

func errorf(kind error, mess string, args ...interface{}) error {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	return fmt.Errorf("%w: %v", kind, mess)
}

// LineError locates an error within the line (or direct mode text) that was
// executing when it was raised.
type LineError struct {
	Line lines.Number // lines.End for direct mode
	Text string
	Pos  int
	Err  error
}

func (err *LineError) Unwrap() error { return err.Err }

// Remainder returns the unconsumed part of the line.
func (err *LineError) Remainder() string {
	return err.Text[err.pos():]
}

func (err *LineError) pos() int {
	switch {
	case err.Pos < 0:
		return 0
	case err.Pos > len(err.Text):
		return len(err.Text)
	}
	return err.Pos
}

// Error renders like `line 20: ERROR[...] "consumed><remainder"`; syntax
// errors are labeled UNEXPECTED instead.
func (err *LineError) Error() string {
	var sb strings.Builder
	if err.Line != lines.End {
		fmt.Fprintf(&sb, "line %v: ", err.Line)
	}
	if errors.Is(err.Err, ErrParse) {
		sb.WriteString("UNEXPECTED[")
	} else {
		sb.WriteString("ERROR[")
	}
	fmt.Fprintf(&sb, "%v] \"", err.Err)
	pos := err.pos()
	sb.WriteString(err.Text[:pos])
	sb.WriteString("><")
	sb.WriteString(err.Text[pos:])
	sb.WriteByte('"')
	return sb.String()
}

// LoadError locates a preparse failure within its source.
type LoadError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (err *LoadError) Unwrap() error { return err.Err }

func (err *LoadError) Error() string {
	return fmt.Sprintf("%v:%v: %v in %q", err.Source, err.Line, err.Err, err.Text)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobasic/internal/fileinput"
	"github.com/jcorbin/gobasic/internal/lines"
)

// loadSource preparses program source: numbered lines go into the line table, a
// line starting with a colon continues the one before it, and DATA values go
// onto the tape. Nothing else is run.
func (in *Interp) loadSource(r io.Reader) error {
	src := fileinput.Input{Queue: []io.Reader{r}}
	for {
		text, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err := in.preparse(text); err != nil {
			return &LoadError{
				Source: src.Last.Name,
				Line:   src.Last.Line,
				Text:   text,
				Err:    err,
			}
		}
	}
}

func (in *Interp) loadLines(text ...string) error {
	return in.loadSource(fileinput.NamedReader("<lines>", strings.NewReader(strings.Join(text, "\n"))))
}

// reload replaces the program and its data, keeping variables and any
// scripted input.
func (in *Interp) reload(text ...string) error {
	in.prog.Reset()
	in.data = dataTape{}
	return in.loadLines(text...)
}

func (in *Interp) preparse(text string) error {
	sc := scanner{text: text}
	if sc.atEnd() {
		return nil
	}

	if sc.char(':') {
		num, ok := in.prog.Last()
		if !ok {
			return errorf(ErrParse, "%v", lines.ErrNoPrior)
		}
		more := ":" + sc.rest()
		if err := in.prog.Append(more); err != nil {
			return fmt.Errorf("%w: %w", ErrParse, err)
		}
		in.logf("+", "%v %v", num, more)
		return in.scanData(num, more)
	}

	num, ok := sc.lineNum()
	if !ok {
		return errorf(ErrParse, "missing line number")
	}
	sc.skipSpace()
	body := sc.rest()
	if err := in.prog.Add(num, body); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	in.logf("+", "%v %v", num, body)
	return in.scanData(num, body)
}

// scanData adds the values of any DATA statements in text to the tape. A
// REM ends the scan, since the rest of its line is a comment.
func (in *Interp) scanData(num lines.Number, text string) error {
	for _, stmt := range splitStatements(text) {
		sc := scanner{text: stmt}
		if sc.keyword("rem") {
			return nil
		}
		if !sc.keyword("data") {
			continue
		}
		vals, ok := sc.dataItems()
		if !ok || !sc.atEnd() {
			return errorf(ErrParse, "malformed DATA %q", strings.TrimSpace(stmt))
		}
		for _, v := range vals {
			in.data.add(num, v)
		}
	}
	return nil
}

// splitStatements splits a line at the colons outside of string literals.
func splitStatements(text string) []string {
	var parts []string
	quoted, start := false, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			quoted = !quoted
		case ':':
			if !quoted {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}

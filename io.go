package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/gobasic/internal/runeio"
	"github.com/jcorbin/gobasic/internal/value"
)

func (in *Interp) print(parts ...string) {
	for _, s := range parts {
		in.writeString(s)
	}
}

// display renders a value as PRINT shows it. With number padding, numbers
// get a trailing space and non-negative ones a leading space too.
func (in *Interp) display(v value.Value) string {
	s := v.Display()
	if in.padNumbers && !v.IsString() {
		if !strings.HasPrefix(s, "-") {
			s = " " + s
		}
		s += " "
	}
	return s
}

// input prompts for and stores one value, asking again until the entered
// text parses as the variable's kind.
func (in *Interp) input(prompt, name string) {
	kind := value.KindOf(name)
	for {
		in.writeString(prompt)
		text := in.inputLine()
		if v, ok := parseInput(kind, text); ok {
			in.store(name, v)
			return
		}
		in.logf("?", "cannot read %q as %v", text, kind)
		in.writeString("?REENTER\n")
	}
}

// inputLine takes the next scripted line, echoing it as if typed, or else
// reads a line of real input.
func (in *Interp) inputLine() string {
	if len(in.script) > 0 {
		text := in.script[0]
		in.script = in.script[1:]
		in.writeString(text + "\n")
		return text
	}
	text, err := in.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			in.halt(fmt.Errorf("%w: reading input: %w", ErrState, err))
		}
		in.halt(err)
	}
	return text
}

func parseInput(kind value.Kind, text string) (value.Value, bool) {
	if kind == value.StringKind {
		return value.Str(text), true
	}
	text = strings.TrimLeft(text, " \t")
	if text == "" {
		return value.Default(kind), true
	}
	if kind == value.IntKind {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return value.Value{}, false
		}
		return value.Int(int16(n)), true
	}
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return value.Value{}, false
	}
	return value.Float(float32(f)), true
}

// inkey returns a pending key press: the next scripted line, with control
// mnemonics like <ESC> expanded, or else a polled key, or else nothing.
func (in *Interp) inkey() string {
	if len(in.script) > 0 {
		text := in.script[0]
		in.script = in.script[1:]
		return runeio.ExpandControls(text)
	}
	if in.keys == nil {
		return ""
	}
	if err := in.flush(); err != nil {
		in.halt(err)
	}
	if key, ok := in.keys.PollKey(); ok {
		in.logf("?", "key %q", key)
		return key
	}
	return ""
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goforj/godump"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jcorbin/gobasic/internal/lines"
)

// lineSource prompts for lines of REPL input.
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// plainSource prompts through the interpreter's own input when stdin is not
// a terminal.
type plainSource struct{ in *Interp }

func (ps plainSource) Prompt(prompt string) (string, error) {
	if err := ps.in.flush(); err != nil {
		return "", err
	}
	fmt.Print(prompt)
	return ps.in.ReadLine()
}

func (ps plainSource) AppendHistory(string) {}

func (c *cli) lineSource() (lineSource, func()) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return plainSource{c.in}, func() {}
	}
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return st, func() { st.Close() }
}

// session is the REPL's program: numbered lines as typed, in any order, only
// loaded into the interpreter when they are needed.
type session struct {
	lines map[lines.Number]string
	dirty bool
}

func (sess *session) set(num lines.Number, text string) {
	if sess.lines == nil {
		sess.lines = make(map[lines.Number]string)
	}
	if text == "" {
		delete(sess.lines, num)
	} else {
		sess.lines[num] = text
	}
	sess.dirty = true
}

func (sess *session) sorted() []string {
	nums := make([]lines.Number, 0, len(sess.lines))
	for num := range sess.lines {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	text := make([]string, len(nums))
	for i, num := range nums {
		text[i] = fmt.Sprintf("%v %v", num, sess.lines[num])
	}
	return text
}

func (c *cli) repl() {
	src, done := c.lineSource()
	defer done()

	var sess session
	c.in.Program(func(num lines.Number, text string) {
		sess.set(num, text)
	})
	sess.dirty = false

	fmt.Println("READY. Enter numbered lines, or RUN LIST NEW CLEAR DUMP LOAD <file> BYE")
	for {
		text, err := src.Prompt("] ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return
		case err != nil:
			c.log.Errorf("%v", err)
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		src.AppendHistory(text)
		if !c.command(&sess, text) {
			return
		}
	}
}

// command handles one line of REPL input, returning false to quit.
func (c *cli) command(sess *session, text string) bool {
	sc := scanner{text: text}
	if num, ok := sc.lineNum(); ok {
		sc.skipSpace()
		sess.set(num, sc.rest())
		return true
	}

	word, arg := text, ""
	if i := strings.IndexByte(text, ' '); i >= 0 {
		word, arg = text[:i], strings.TrimSpace(text[i+1:])
	}
	switch strings.ToUpper(word) {
	case "BYE", "QUIT":
		return false

	case "LIST":
		for _, line := range sess.sorted() {
			fmt.Println(line)
		}

	case "NEW":
		*sess = session{}
		c.in.Reset()

	case "CLEAR":
		c.in.Clear()

	case "DUMP":
		godump.Dump(c.in.Snapshot())

	case "LOAD":
		c.load(sess, arg)

	case "RUN":
		if c.sync(sess) {
			c.report(c.runProgram(c.in.Run))
		}

	default:
		if c.sync(sess) {
			c.report(c.runProgram(func(ctx context.Context) error {
				return c.in.Exec(ctx, text)
			}))
		}
	}
	c.stopped = false
	return true
}

// sync reloads the interpreter's program from the session if it changed.
func (c *cli) sync(sess *session) bool {
	if !sess.dirty {
		return true
	}
	if err := c.in.reload(sess.sorted()...); err != nil {
		c.log.Errorf("%v", err)
		return false
	}
	sess.dirty = false
	return true
}

func (c *cli) load(sess *session, name string) {
	f, err := os.Open(name)
	if err != nil {
		c.log.Errorf("%v", err)
		return
	}
	defer f.Close()
	c.in.Reset()
	*sess = session{}
	if err := c.in.Load(f); err != nil {
		c.log.Errorf("%v", err)
	}
	c.in.Program(func(num lines.Number, text string) {
		sess.set(num, text)
	})
	sess.dirty = false
}

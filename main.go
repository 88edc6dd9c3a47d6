package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jcorbin/gobasic/internal/fileinput"
	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/logio"
	"github.com/jcorbin/gobasic/internal/panicerr"
)

// exitStopped is the exit code after a program STOPs.
const exitStopped = 100

func main() {
	os.Exit(run())
}

type cli struct {
	in  *Interp
	log *logio.Logger

	timeout  time.Duration
	dump     bool
	keys     bool
	stopped  bool
	programs []string
}

func run() int {
	var (
		log      logio.Logger
		timeout  time.Duration
		trace    bool
		varLimit int
		seed     int64
		classic  bool
		dump     bool
		interact bool
		keys     bool
		scripts  []string
	)
	flag.Func("input", "read scripted INPUT lines from `file`; may be repeated", func(name string) error {
		scripts = append(scripts, name)
		return nil
	})
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit for each program run")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&varLimit, "var-limit", 0, "limit how many variables a program may create")
	flag.Int64Var(&seed, "seed", 0, "seed the random number generator")
	flag.BoolVar(&classic, "classic", false, "pad printed numbers with spaces")
	flag.BoolVar(&dump, "dump", false, "dump interpreter state after each program")
	flag.BoolVar(&interact, "i", false, "start an interactive session after running programs")
	flag.BoolVar(&keys, "keys", false, "read INKEY$ from the terminal in raw mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] [program.bas ...] [script.input ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetTrace(trace)

	opts := []Option{
		WithInput(fileinput.NamedReader("<stdin>", os.Stdin)),
		WithOutput(os.Stdout),
		WithWarnf(log.Leveledf("WARN")),
	}
	if trace {
		opts = append(opts, WithLogf(log.Tracef))
	}
	if varLimit != 0 {
		opts = append(opts, WithVarLimit(varLimit))
	}
	if seed != 0 {
		opts = append(opts, WithSeed(seed))
	}
	if classic {
		opts = append(opts, WithNumberPadding(true))
	}

	c := cli{
		log:     &log,
		timeout: timeout,
		dump:    dump,
		keys:    keys,
	}
	for _, arg := range flag.Args() {
		if strings.HasSuffix(arg, ".input") {
			scripts = append(scripts, arg)
		} else {
			c.programs = append(c.programs, arg)
		}
	}
	for _, name := range scripts {
		script, err := readScript(name)
		if err != nil {
			log.Errorf("%v", err)
			return log.ExitCode()
		}
		opts = append(opts, WithScript(script...))
	}

	c.in = New(opts...)
	defer func() {
		log.ErrorIf(c.in.Close())
	}()

	for _, name := range c.programs {
		c.runFile(name)
		if c.stopped {
			return exitStopped
		}
	}
	if len(c.programs) == 0 || interact {
		c.repl()
	}
	return log.ExitCode()
}

// readScript reads the lines of a scripted input file.
func readScript(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScript(f)
}

// runFile loads and runs one program, reporting how it went, then discards
// it.
func (c *cli) runFile(name string) {
	defer c.in.Reset()

	f, err := os.Open(name)
	if err != nil {
		c.log.Errorf("%v", err)
		return
	}
	err = c.in.Load(f)
	f.Close()
	if err != nil {
		c.log.Errorf("%v", err)
		fmt.Println("[FAIL]")
		return
	}

	err = c.runProgram(c.in.Run)
	if c.dump {
		interpDumper{in: c.in, out: os.Stderr}.dump()
	}
	if c.report(err) {
		fmt.Println("\n[SUCCESS]")
	} else if !c.stopped {
		fmt.Println("[FAIL]")
	}
}

// runProgram calls run under the time limit, with Ctrl-C interrupting it.
func (c *cli) runProgram(run func(ctx context.Context) error) error {
	ctx := context.Background()
	if c.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if c.keys {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		if restore, err := c.withKeys(cancel); err != nil {
			c.log.Printf("WARN", "-keys unavailable: %v", err)
		} else {
			defer restore()
		}
		return run(ctx)
	}
	return run(ctx)
}

// withKeys switches INPUT, INKEY$ and output over to a raw mode terminal
// until the returned restore func is called.
func (c *cli) withKeys(interrupt func()) (restore func(), err error) {
	tk, err := openKeys(os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	tk.setInterrupt(interrupt)

	in := c.in
	priorInput, priorKeys := in.Input, in.keys
	in.Input = fileinput.Input{Queue: []io.Reader{tk}}
	withOutput(crlfWriter{os.Stdout}).apply(in)
	in.keys = tk

	return func() {
		in.flush()
		tk.Close()
		in.Input, in.keys = priorInput, priorKeys
		withOutput(os.Stdout).apply(in)
	}, nil
}

// report logs a run error, returning true if there was none. A STOP is
// reported as a break at its line.
func (c *cli) report(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrStopped) {
		var le *LineError
		if errors.As(err, &le) && le.Line != lines.End {
			fmt.Printf("BREAK IN %v\n", le.Line)
		} else {
			fmt.Println("BREAK")
		}
		c.stopped = true
		return false
	}
	if panicerr.IsPanic(err) {
		c.log.Errorf("%+v", err)
	} else {
		c.log.Errorf("%v", err)
	}
	return false
}

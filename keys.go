package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

var errNotTerminal = errors.New("not a terminal")

// termKeys puts a terminal into raw mode and reads it from a single
// goroutine. Key presses can be polled for INKEY$, or read line-wise by
// INPUT through Read, which echoes what it delivers. Ctrl-C interrupts the
// running program rather than being delivered.
type termKeys struct {
	fd    int
	state *term.State
	echo  io.Writer
	keys  chan byte

	mu          sync.Mutex
	onInterrupt func()
}

func openKeys(f *os.File, echo io.Writer) (*termKeys, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	tk := &termKeys{
		fd:    fd,
		state: state,
		echo:  echo,
		keys:  make(chan byte, 256),
	}
	go tk.readLoop(f)
	return tk, nil
}

func (tk *termKeys) Name() string { return "<keys>" }

func (tk *termKeys) Close() error {
	return term.Restore(tk.fd, tk.state)
}

func (tk *termKeys) setInterrupt(fn func()) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.onInterrupt = fn
}

func (tk *termKeys) interrupt() {
	tk.mu.Lock()
	fn := tk.onInterrupt
	tk.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (tk *termKeys) readLoop(r io.Reader) {
	defer close(tk.keys)
	var buf [64]byte
	for {
		n, err := r.Read(buf[:])
		for _, b := range buf[:n] {
			if b == 0x03 {
				tk.interrupt()
				continue
			}
			select {
			case tk.keys <- b:
			default:
				// drop keys nobody is reading
			}
		}
		if err != nil {
			return
		}
	}
}

// PollKey returns a pending key press without blocking.
func (tk *termKeys) PollKey() (string, bool) {
	select {
	case b, ok := <-tk.keys:
		if !ok {
			return "", false
		}
		return string([]byte{b}), true
	default:
		return "", false
	}
}

// Read blocks for at least one key, delivering a carriage return as a line
// feed.
func (tk *termKeys) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, ok := <-tk.keys
	if !ok {
		return 0, io.EOF
	}
	if b == '\r' {
		b = '\n'
	}
	p[0] = b
	if tk.echo != nil {
		if b == '\n' {
			_, err = tk.echo.Write([]byte("\r\n"))
		} else {
			_, err = tk.echo.Write(p[:1])
		}
	}
	return 1, err
}

// crlfWriter translates line feeds for a terminal in raw mode.
type crlfWriter struct{ io.Writer }

func (w crlfWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return w.Writer.Write(p)
	}
	if _, err := w.Writer.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

package logio

import (
	"bytes"
	"sync"
)

// Writer calls Logf once for every line written to it; a final partial line
// is held until more is written, or until Sync.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Write logs each completed line; it never fails.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.partial = append(lw.partial, p...)
			return n, nil
		}
		lw.partial = append(lw.partial, p[:i]...)
		lw.emit()
		p = p[i+1:]
	}
}

// Sync logs any partial line.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.emit()
	}
	return nil
}

// Flush is Sync, making a Writer usable as interpreter output directly.
func (lw *Writer) Flush() error { return lw.Sync() }

// Close calls Sync.
func (lw *Writer) Close() error { return lw.Sync() }

func (lw *Writer) emit() {
	lw.Logf("%s", lw.partial)
	lw.partial = lw.partial[:0]
}

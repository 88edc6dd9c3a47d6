// Package logio provides leveled logging for the command line, and a writer
// that turns output into log lines.
package logio

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is a leveled logger that remembers whether any error was logged, so
// that the process can exit accordingly. The zero Logger discards everything
// until SetOutput is called.
type Logger struct {
	mu       sync.Mutex
	zl       zerolog.Logger
	ready    bool
	exitCode int
}

// SetOutput directs log lines like "WRN message" to out. Trace level lines
// are only written after SetTrace.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.zl = zerolog.New(zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(zerolog.DebugLevel)
	log.ready = true
}

// SetTrace enables trace level logging.
func (log *Logger) SetTrace(on bool) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if on {
		log.zl = log.zl.Level(zerolog.TraceLevel)
	} else {
		log.zl = log.zl.Level(zerolog.DebugLevel)
	}
}

// ExitCode returns a code to pass to os.Exit: non-zero if any error was
// logged.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function that logs at the named level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Tracef logs at trace level.
func (log *Logger) Tracef(mess string, args ...interface{}) {
	log.Printf("TRACE", mess, args...)
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like Printf("ERROR", ...) but also makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Printf("ERROR", mess, args...)
	log.mu.Lock()
	defer log.mu.Unlock()
	log.exitCode = 1
}

// Printf logs a message at a level named like "WARN" or "error"; unknown
// level names log without a level.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if !log.ready {
		return
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.NoLevel
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.zl.WithLevel(lvl).Msg(strings.TrimSuffix(mess, "\n"))
}

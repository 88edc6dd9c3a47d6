package logio

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	var got []string
	lw := Writer{Logf: func(mess string, args ...interface{}) {
		got = append(got, fmt.Sprintf(mess, args...))
	}}
	io.WriteString(&lw, "hello\nwor")
	assert.Equal(t, []string{"hello"}, got)
	io.WriteString(&lw, "ld\n\nend")
	assert.Equal(t, []string{"hello", "world", ""}, got)
	assert.NoError(t, lw.Close())
	assert.Equal(t, []string{"hello", "world", "", "end"}, got)
	assert.NoError(t, lw.Sync())
	assert.Len(t, got, 4, "nothing left to sync")
}

func TestLogger(t *testing.T) {
	var log Logger
	log.Errorf("dropped before output is set")

	var out strings.Builder
	log.SetOutput(&out)
	log.Printf("WARN", "careful %v", 1)
	log.Tracef("not shown")
	log.SetTrace(true)
	log.Leveledf("TRACE")("shown %v", "now")
	log.ErrorIf(nil)
	log.ErrorIf(fmt.Errorf("bad"))

	assert.Equal(t, strings.Join([]string{
		"WRN careful 1",
		"TRC shown now",
		"ERR bad",
		"",
	}, "\n"), out.String())
	assert.Equal(t, 1, log.ExitCode())
}

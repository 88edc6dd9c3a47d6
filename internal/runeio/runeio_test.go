package runeio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandControls(t *testing.T) {
	for in, want := range map[string]string{
		"plain":      "plain",
		"<ESC>":      "\x1b",
		"<esc>[A":    "\x1b[A",
		"^C":         "\x03",
		"^[[A":       "\x1b[A",
		"a<BOGUS>b":  "a<BOGUS>b",
		"<SP><DEL>":  " \x7f",
		"trailing ^": "trailing ^",
		"<":          "<",
		"<CSI>":      "\u009b",
	} {
		assert.Equal(t, want, ExpandControls(in), "expanding %q", in)
	}
}

func TestCaretForm(t *testing.T) {
	assert.Equal(t, "^@", CaretForm(0))
	assert.Equal(t, "^C", CaretForm(3))
	assert.Equal(t, "^?", CaretForm(0x7f))
	assert.Equal(t, "^[[", CaretForm(0x9b))
	assert.Equal(t, "", CaretForm('a'))
}

func TestWriteANSIString(t *testing.T) {
	for in, want := range map[string]string{
		"hello\n":     "hello\n",
		"\u009b2J":    "\x1b[2J",
		"a\u0085b":    "a\r\nb",
		"café":        "café",
		"raw\xc8byte": "raw\xc8byte",
		"──":          "──",
	} {
		var sb strings.Builder
		n, err := WriteANSIString(&sb, in)
		if assert.NoError(t, err) {
			assert.Equal(t, len(in), n, "written length of %q", in)
			assert.Equal(t, want, sb.String(), "writing %q", in)
		}
	}
}

func TestNewReader(t *testing.T) {
	named := struct {
		io.Reader
		namer
	}{strings.NewReader("hé"), namer("src")}
	rr := NewReader(named)
	r, _, err := rr.ReadRune()
	assert.NoError(t, err)
	assert.Equal(t, 'h', r)
	r, _, err = rr.ReadRune()
	assert.NoError(t, err)
	assert.Equal(t, 'é', r)
	if nom, ok := rr.(interface{ Name() string }); assert.True(t, ok, "expected name to carry over") {
		assert.Equal(t, "src", nom.Name())
	}

	sr := strings.NewReader("x")
	assert.Equal(t, Reader(sr), NewReader(sr), "rune readers pass through")
}

type namer string

func (n namer) Name() string { return string(n) }

package main

import (
	"strconv"
	"strings"

	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

// scanner matches tokens within one line of program text. Every match skips
// leading whitespace first; keywords match case-insensitively and need no
// word boundary, so "PRINTX" reads as PRINT X.
type scanner struct {
	text string
	pos  int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.text) && isSpace(sc.text[sc.pos]) {
		sc.pos++
	}
}

func (sc *scanner) atEnd() bool {
	sc.skipSpace()
	return sc.pos >= len(sc.text)
}

func (sc *scanner) peek() byte {
	sc.skipSpace()
	if sc.pos < len(sc.text) {
		return sc.text[sc.pos]
	}
	return 0
}

func (sc *scanner) rest() string {
	return sc.text[sc.pos:]
}

func (sc *scanner) char(c byte) bool {
	if sc.peek() == c && c != 0 {
		sc.pos++
		return true
	}
	return false
}

func (sc *scanner) keyword(kw string) bool {
	sc.skipSpace()
	end := sc.pos + len(kw)
	if end > len(sc.text) || !strings.EqualFold(sc.text[sc.pos:end], kw) {
		return false
	}
	sc.pos = end
	return true
}

// lookKeyword is keyword without consuming anything.
func (sc *scanner) lookKeyword(kw string) bool {
	save := sc.pos
	ok := sc.keyword(kw)
	sc.pos = save
	return ok
}

// ident matches a variable or function name: a letter or underscore, any
// letters, digits or underscores, and an optional $ or % sigil. Names are
// returned in lower case.
func (sc *scanner) ident() (string, bool) {
	sc.skipSpace()
	start, i := sc.pos, sc.pos
	if i >= len(sc.text) || !(isAlpha(sc.text[i]) || sc.text[i] == '_') {
		return "", false
	}
	for i++; i < len(sc.text); i++ {
		if c := sc.text[i]; !(isAlpha(c) || isDigit(c) || c == '_') {
			break
		}
	}
	if i < len(sc.text) && (sc.text[i] == '$' || sc.text[i] == '%') {
		i++
	}
	sc.pos = i
	return strings.ToLower(sc.text[start:i]), true
}

func (sc *scanner) lineNum() (lines.Number, bool) {
	sc.skipSpace()
	i := sc.pos
	for i < len(sc.text) && isDigit(sc.text[i]) {
		i++
	}
	if i == sc.pos {
		return 0, false
	}
	n, err := strconv.ParseUint(sc.text[sc.pos:i], 10, 64)
	if err != nil {
		return 0, false
	}
	sc.pos = i
	return n, true
}

func (sc *scanner) stringLit() (string, bool) {
	if sc.peek() != '"' {
		return "", false
	}
	end := strings.IndexByte(sc.text[sc.pos+1:], '"')
	if end < 0 {
		return "", false
	}
	s := sc.text[sc.pos+1 : sc.pos+1+end]
	sc.pos += end + 2
	return s, true
}

// number matches a signed numeric literal. Literals with a decimal point or
// exponent are floats; others are integers unless they overflow 16 bits.
func (sc *scanner) number() (value.Value, bool) {
	sc.skipSpace()
	start, i := sc.pos, sc.pos
	if i < len(sc.text) && (sc.text[i] == '-' || sc.text[i] == '+') {
		i++
	}
	digits, isFloat := 0, false
	for ; i < len(sc.text) && isDigit(sc.text[i]); i++ {
		digits++
	}
	if i < len(sc.text) && sc.text[i] == '.' {
		isFloat = true
		for i++; i < len(sc.text) && isDigit(sc.text[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return value.Value{}, false
	}
	if i < len(sc.text) && (sc.text[i] == 'e' || sc.text[i] == 'E') {
		j := i + 1
		if j < len(sc.text) && (sc.text[j] == '-' || sc.text[j] == '+') {
			j++
		}
		if j < len(sc.text) && isDigit(sc.text[j]) {
			for j < len(sc.text) && isDigit(sc.text[j]) {
				j++
			}
			i, isFloat = j, true
		}
	}
	lit := sc.text[start:i]
	if !isFloat {
		if n, err := strconv.ParseInt(lit, 10, 16); err == nil {
			sc.pos = i
			return value.Int(int16(n)), true
		}
	}
	f, err := strconv.ParseFloat(lit, 32)
	if ne, ok := err.(*strconv.NumError); err != nil && !(ok && ne.Err == strconv.ErrRange) {
		return value.Value{}, false
	}
	sc.pos = i
	return value.Float(float32(f)), true
}

// separators matches one or more statement separating colons.
func (sc *scanner) separators() bool {
	n := 0
	for sc.char(':') {
		n++
	}
	return n > 0
}

// atStatementEnd reports whether the current statement can end here: at the
// end of the line, a colon, or an ELSE.
func (sc *scanner) atStatementEnd() bool {
	switch sc.peek() {
	case 0, ':':
		return true
	}
	return sc.lookKeyword("else")
}

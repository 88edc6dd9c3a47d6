package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteANSIString writes s for a 7-bit terminal. C1 controls are written in
// their ESC form, so "\u009b" becomes "\x1b[", except for NEL which is written
// as "\r\n". Bytes that are not valid UTF-8, as CHR$ can produce, are written
// as is.
func WriteANSIString(w io.Writer, s string) (int, error) {
	i := 0
	for i < len(s) && s[i] < utf8.RuneSelf {
		i++
	}
	if i == len(s) {
		return io.WriteString(w, s)
	}

	buf := make([]byte, 0, len(s)+8)
	buf = append(buf, s[:i]...)
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf = append(buf, s[i])
		case r == 0x85:
			buf = append(buf, '\r', '\n')
		case 0x80 <= r && r <= 0x9f:
			buf = append(buf, 0x1b, byte(r^0xc0))
		default:
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	if _, err := w.Write(buf); err != nil {
		return 0, err
	}
	return len(s), nil
}

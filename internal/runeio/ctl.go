package runeio

import "strings"

// Mnemonic names of the C0 controls from NUL, and of the C1 controls from
// PAD, in code point order.
const (
	c0Names = "NUL SOH STX ETX EOT ENQ ACK BEL BS HT NL VT NP CR SO SI " +
		"DLE DC1 DC2 DC3 DC4 NAK SYN ETB CAN EM SUB ESC FS GS RS US"
	c1Names = "PAD HOP BPH NBH IND NEL SSA ESA HTS HTJ VTS PLD PLU RI SS2 SS3 " +
		"DCS PU1 PU2 STS CCH MW SPA EPA SOS SGCI SCI CSI ST OSC PM APC"
)

// controlWords maps "<NAME>" mnemonics, in upper or lower case, and caret
// forms like "^C" to the control runes they name. SP and DEL are included
// alongside the C0 and C1 sets.
var controlWords = make(map[string]rune, 200)

func init() {
	addControl := func(name string, r rune) {
		controlWords["<"+name+">"] = r
		controlWords["<"+strings.ToLower(name)+">"] = r
		if caret := CaretForm(r); caret != "" {
			controlWords[caret] = r
		}
	}
	for i, name := range strings.Fields(c0Names) {
		addControl(name, rune(i))
	}
	for i, name := range strings.Fields(c1Names) {
		addControl(name, 0x80+rune(i))
	}
	addControl("SP", ' ')
	addControl("DEL", 0x7f)
}

// CaretForm returns the caret notation of a control rune: "^C" for ETX,
// "^?" for DEL, and "^[" followed by a letter for the C1 controls. Other
// runes have none.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// ExpandControls replaces every control mnemonic in s, like "<ESC>" or "^C",
// with the rune it names. Only two character caret forms are recognized, so
// "^[[A" reads as ESC followed by "[A".
func ExpandControls(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if n, r := matchControl(s[i:]); n > 0 {
			sb.WriteRune(r)
			i += n
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

func matchControl(s string) (int, rune) {
	switch {
	case s[0] == '^' && len(s) > 1:
		if r, ok := controlWords[s[:2]]; ok {
			return 2, r
		}
	case s[0] == '<':
		if end := strings.IndexByte(s, '>'); end > 0 {
			if r, ok := controlWords[s[:end+1]]; ok {
				return end + 1, r
			}
		}
	}
	return 0, 0
}

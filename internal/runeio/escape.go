package runeio

import "strings"

// escapeReplacer covers the escape set spec §3.1/§4.3 gives for character
// and string literals: \n \r \t \' \" \\.
var escapeReplacer = strings.NewReplacer(
	"\\", `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\"", `\"`,
	"'", `\'`,
)

// WriteEscapedString writes s to w in the double-quoted, escaped form that
// spec §6 requires for `.` output: `"..."` with \n \r \t \" \\ escaped.
func WriteEscapedString(w *strings.Builder, s string) {
	w.WriteByte('"')
	w.WriteString(escapeReplacer.Replace(s))
	w.WriteByte('"')
}

// WriteEscapedChar writes r to w in the single-quoted form spec §6 requires
// for `.` output of a Character value: `'c'` with the same escape set.
func WriteEscapedChar(w *strings.Builder, r rune) {
	w.WriteByte('\'')
	w.WriteString(escapeReplacer.Replace(string(r)))
	w.WriteByte('\'')
}

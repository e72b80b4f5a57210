package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what should never reach a record or a log line: C0 controls
// other than tab and newline (so CRLF becomes LF), DEL, C1 controls and invalid
// UTF-8. Ideographic and no-break spaces become plain spaces.
// Clean input is returned as is.
func Sanitize(s string) string {
	if strings.IndexFunc(s, dirty) < 0 {
		return s
	}
	return strings.Map(clean, s)
}

func dirty(r rune) bool { return clean(r) != r }

func clean(r rune) rune {
	switch {
	case r == '\n', r == '\t':
		return r
	case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
		return -1
	case r == utf8.RuneError:
		// strings.Map reports invalid bytes as RuneError
		return -1
	case r == '\u3000', r == '\u00a0':
		return ' '
	}
	return r
}

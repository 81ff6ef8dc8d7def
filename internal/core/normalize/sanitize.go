package normalize

import (
	"strings"
	"unicode/utf8"
)

// dropControl maps C0 controls other than tab and newlines, DEL, C1
// controls and invalid bytes (seen as RuneError) to -1
func dropControl(r rune) rune {
	switch {
	case r == '\n', r == '\r', r == '\t':
		return r
	case r < 0x20, r >= 0x7F && r <= 0x9F, r == utf8.RuneError:
		return -1
	}
	return r
}

// Sanitize strips bytes that never carry language signal and would only
// pollute signatures and persisted examples: control characters except
// tab and newlines, and invalid UTF-8. Clean input is returned unchanged.
func Sanitize(s string) string {
	for _, r := range s {
		if dropControl(r) < 0 {
			return strings.Map(dropControl, s)
		}
	}
	return s
}

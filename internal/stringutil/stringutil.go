package stringutil

import (
	"strings"
	"unicode/utf8"
)

// NeedsQuotes reports whether s must be quoted before being used
// as a compound key in SNBT or in a path.
func NeedsQuotes(s string) bool {
	if s == "" {
		return true
	}

	for len(s) > 0 {
		r, wid := utf8.DecodeRuneInString(s)
		if wid > 1 {
			return true
		}

		if r == utf8.RuneError {
			return true
		}

		if ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_' || r == '-' || r == '+' {
			s = s[wid:]
			continue
		}

		return true
	}

	return false
}

// Quote wraps s around double quotes, escaping backslashes and quotes.
func Quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for len(s) > 0 {
		r, wid := utf8.DecodeRuneInString(s)

		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteString(s[:wid])
		s = s[wid:]
	}

	sb.WriteByte('"')

	return sb.String()
}

// NormalizeIdentifier quotes s if needed.
func NormalizeIdentifier(s string) string {
	if !NeedsQuotes(s) {
		return s
	}

	return Quote(s)
}

// Unquote reverses Quote. It returns false if s is not a valid quoted string.
func Unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}

	s = s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			if i == len(s) {
				return "", false
			}
		} else if s[i] == '"' {
			return "", false
		}
		sb.WriteByte(s[i])
	}

	return sb.String(), true
}

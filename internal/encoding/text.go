package encoding

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// EncodeModifiedUTF8 appends s to dst using Java's modified UTF-8:
// NUL is written as C0 80 and characters outside the BMP are written
// as a surrogate pair, each half encoded on three bytes.
func EncodeModifiedUTF8(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			dst = appendThreeBytes(dst, r)
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = appendThreeBytes(dst, hi)
			dst = appendThreeBytes(dst, lo)
		}
	}

	return dst
}

func appendThreeBytes(dst []byte, r rune) []byte {
	return append(dst, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
}

// DecodeModifiedUTF8 decodes b as Java modified UTF-8.
// It reports false on malformed input, four-byte sequences
// and unpaired surrogates.
func DecodeModifiedUTF8(b []byte) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(b))

	for i := 0; i < len(b); {
		r, n := decodeModifiedRune(b[i:])
		if n == 0 {
			return "", false
		}
		i += n

		if !utf16.IsSurrogate(r) {
			sb.WriteRune(r)
			continue
		}

		// a high surrogate must be followed by a low one
		lo, m := decodeModifiedRune(b[i:])
		if m == 0 {
			return "", false
		}
		full := utf16.DecodeRune(r, lo)
		if full == utf8.RuneError {
			return "", false
		}
		i += m
		sb.WriteRune(full)
	}

	return sb.String(), true
}

// decodeModifiedRune returns the rune at the start of b and its width,
// or a width of 0 if b doesn't start with a valid sequence.
func decodeModifiedRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}

	c := b[0]
	switch {
	case c == 0:
		// NUL must use the two-byte form
		return 0, 0
	case c < 0x80:
		return rune(c), 1
	case c&0xE0 == 0xC0:
		if len(b) < 2 || b[1]&0xC0 != 0x80 {
			return 0, 0
		}
		r := rune(c&0x1F)<<6 | rune(b[1]&0x3F)
		if r != 0 && r < 0x80 {
			return 0, 0
		}
		return r, 2
	case c&0xF0 == 0xE0:
		if len(b) < 3 || b[1]&0xC0 != 0x80 || b[2]&0xC0 != 0x80 {
			return 0, 0
		}
		r := rune(c&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
		if r < 0x800 {
			return 0, 0
		}
		return r, 3
	}

	return 0, 0
}

package token

import "unicode"

// IsSpace reports whether r is white space.  Non-breaking spaces are not.
func IsSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	}
	return unicode.IsSpace(r)
}

// IsKeyStart reports whether r may start an unquoted key.
func IsKeyStart(r rune) bool {
	return r == '_' || r == '¤' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsKeyChar reports whether r may continue an unquoted key.
func IsKeyChar(r rune) bool {
	return r == '-' || r == '.' || IsKeyStart(r)
}

func IsDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

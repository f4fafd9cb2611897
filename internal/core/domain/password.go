package domain

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// Account password constraints shared by the signup form and the edit gate.
const (
	MinAccountPasswordLength = 8
	MaxAccountPasswordLength = 16

	// PasswordSymbols lists the characters accepted as the required special character.
	PasswordSymbols = "@#$%^&+=!~`<>,./?;:'\"[]{}\\()|_-"
)

// IsAccountPassword reports whether password is 8 to 16 non-whitespace characters
// containing at least one ASCII letter, one digit and one symbol from PasswordSymbols.
// Length is measured in UTF-16 code units, as browsers count it, so a character
// outside the Basic Multilingual Plane counts twice.
func IsAccountPassword(password string) bool {
	n := len(utf16.Encode([]rune(password)))
	if n < MinAccountPasswordLength || n > MaxAccountPasswordLength {
		return false
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case isPasswordSpace(r):
			return false
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

// isPasswordSpace matches the browser's whitespace class, which adds the byte
// order mark and leaves out NEL.
func isPasswordSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

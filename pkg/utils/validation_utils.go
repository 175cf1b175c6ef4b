package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsAlphabeticName reports whether a client name, with inner spaces removed,
// is non-empty and consists of letters only.
func IsAlphabeticName(name string) bool {
	stripped := strings.ReplaceAll(name, " ", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// IsTenDigitPhone reports whether phone is exactly 10 ASCII digits.
func IsTenDigitPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidPasswordLength checks if password meets minimum length requirement.
func IsValidPasswordLength(password string, minLength int) bool {
	return len(password) >= minLength
}

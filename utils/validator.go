// utils/validator.go - Input validation
package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitExpr = regexp.MustCompile(`\D`)
)

// ValidateEmail checks for a local@domain.tld shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// DigitsOnly strips everything that is not 0-9
func DigitsOnly(value string) string {
	return nonDigitExpr.ReplaceAllString(value, "")
}

// ValidatePhone accepts numbers with 10 or 11 digits once separators are removed
func ValidatePhone(phone string) bool {
	n := len(DigitsOnly(phone))
	return n >= 10 && n <= 11
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// SanitizeFilename keeps the base name of an uploaded file so it cannot
// escape its storage folder.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(SanitizeInput(name), "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

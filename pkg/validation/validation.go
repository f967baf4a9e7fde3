package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	dateRegex  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsValidDate reports whether s is a lexically valid YYYY-MM-DD date string
func IsValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// CoerceCount converts an untyped JSON value to a non-negative integer.
// Numbers are truncated, numeric strings parsed; anything else becomes 0.
func CoerceCount(v any) int {
	var n int
	switch val := v.(type) {
	case float64:
		n = int(val)
	case int:
		n = val
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

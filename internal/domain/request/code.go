package request

import (
	"fmt"
	"regexp"
	"strings"
)

var codePattern = regexp.MustCompile(`^SA(\d{4})(\d{4})$`)

// FormatCode builds a request code: "SA", a 4 digit sequence and the year.
func FormatCode(seq, year int) string {
	return fmt.Sprintf("SA%04d%04d", seq, year)
}

// NormalizeCode upper-cases and validates a request code such as SA00012024.
func NormalizeCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(c) {
		return "", fmt.Errorf("%w: malformed request code %q", ErrInvalidInput, code)
	}
	return c, nil
}

// SplitCode returns the sequence and year parts of a normalized code.
func SplitCode(code string) (seq, year string, ok bool) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

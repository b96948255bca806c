package mask

import (
	"strings"
	"unicode/utf8"
)

// Placeholder marks a pattern position that accepts exactly one digit.
const Placeholder = '_'

// Matrix is a composed formatting template: "+" + prefix + " " + pattern.
// Matrix is an immutable value type.
type Matrix struct {
	prefix  string
	pattern string
	text    string
}

// Compose builds a matrix from prefix digits and a pattern.
// The prefix may be given with or without a leading '+'; only its digits are kept.
func Compose(prefix, pattern string) Matrix {
	p := Digits(prefix)
	return Matrix{
		prefix:  p,
		pattern: pattern,
		text:    "+" + p + " " + pattern,
	}
}

// ParseMatrix splits a composed matrix such as "+380 (__) ___ __ __"
// into its prefix and pattern.
func ParseMatrix(s string) (Matrix, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+") {
		return Matrix{}, &MatrixError{Matrix: s, Reason: "missing leading '+'", Err: ErrInvalidMatrix}
	}

	rest := s[1:]
	end := 0
	for end < len(rest) && isDigit(rest[end]) {
		end++
	}
	if end == 0 {
		return Matrix{}, &MatrixError{Matrix: s, Reason: "missing prefix digits", Err: ErrInvalidMatrix}
	}

	pattern := strings.TrimPrefix(rest[end:], " ")
	return Compose(rest[:end], pattern), nil
}

// String returns the composed matrix text.
func (m Matrix) String() string {
	return m.text
}

// Prefix returns the country prefix digits.
func (m Matrix) Prefix() string {
	return m.prefix
}

// Pattern returns the pattern part of the matrix.
func (m Matrix) Pattern() string {
	return m.pattern
}

// Lead returns the mandatory "+<prefix>" head of every formatted value.
func (m Matrix) Lead() string {
	return "+" + m.prefix
}

// Boundary returns the first caret offset a user may freely edit.
func (m Matrix) Boundary() int {
	return len(m.Lead()) + 1
}

// Len returns the matrix length in runes, the upper bound for formatted text.
func (m Matrix) Len() int {
	return utf8.RuneCountInString(m.text)
}

// Capacity returns the number of digits the pattern accepts.
func (m Matrix) Capacity() int {
	return strings.Count(m.pattern, string(Placeholder))
}

// Defaults returns the literal digit skeleton of the matrix.
func (m Matrix) Defaults() string {
	return Digits(m.text)
}

// IsZero reports whether m was never composed.
func (m Matrix) IsZero() bool {
	return m.text == ""
}

// Validate reports configuration errors that Format would silently absorb.
func (m Matrix) Validate() error {
	if m.prefix == "" {
		return &MatrixError{Matrix: m.text, Reason: "missing prefix digits", Err: ErrInvalidMatrix}
	}
	if m.Capacity() == 0 {
		return &MatrixError{Matrix: m.text, Reason: "no editable positions", Err: ErrNoPlaceholders}
	}
	return nil
}

// Equals returns true if two matrices produce identical formatting.
func (m Matrix) Equals(other Matrix) bool {
	return m.text == other.text
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// National returns the digits of text entered beyond the matrix prefix.
func National(text string, m Matrix) string {
	digits := Digits(text)
	if strings.HasPrefix(strings.TrimSpace(text), m.Lead()) {
		return digits[len(m.prefix):]
	}
	return digits
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

package mask

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind identifies what triggered a formatting pass.
type Kind uint8

const (
	// KindInput is a plain edit: keystroke, paste, or programmatic reformat.
	KindInput Kind = iota
	// KindFocus is the field gaining focus or being re-entered programmatically.
	KindFocus
	// KindBlur is the field losing focus.
	KindBlur
)

// String returns the event name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindFocus:
		return "focus"
	case KindBlur:
		return "blur"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ParseKind returns the Kind for an event name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "":
		return KindInput, nil
	case "focus":
		return KindFocus, nil
	case "blur":
		return KindBlur, nil
	default:
		return KindInput, fmt.Errorf("unknown event kind %q", s)
	}
}

// Result is the outcome of a formatting pass.
type Result struct {
	// Text is the formatted field value.
	Text string

	// Caret is the suggested caret offset in runes. Valid only if MoveCaret.
	Caret int

	// MoveCaret is false when the caret should be left alone (blur).
	MoveCaret bool
}

// Format reformats raw field text against m.
func Format(raw string, m Matrix, kind Kind) Result {
	val := Digits(raw)

	switch {
	case kind != KindInput && len(val) < len(m.prefix):
		// Field lost its prefix while unfocused.
		val = m.prefix + val
	case strings.HasPrefix(strings.TrimSpace(raw), m.Lead()):
	case !strings.HasPrefix(val, m.prefix):
		// Digits typed or pasted without the country code.
		val = m.prefix + dropDamagedPrefix(raw, val, m.prefix)
	}

	if def := m.Defaults(); len(def) >= len(val) {
		val = def
	}

	text := m.fill(val)

	if kind == KindBlur {
		if utf8.RuneCountInString(text) <= m.Boundary() {
			text = m.Lead()
		}
		return Result{Text: text}
	}

	return Result{
		Text:      text,
		Caret:     max(m.Boundary(), utf8.RuneCountInString(text)),
		MoveCaret: true,
	}
}

// FormatString is Format for a matrix given in composed text form.
func FormatString(raw, matrix string, kind Kind) (Result, error) {
	m, err := ParseMatrix(matrix)
	if err != nil {
		return Result{}, err
	}
	return Format(raw, m, kind), nil
}

// fill walks the matrix once, consuming one digit of val per placeholder or
// digit literal. Literals are copied only while digits remain.
func (m Matrix) fill(val string) string {
	var b strings.Builder
	b.Grow(len(m.text))

	i := 0
	for _, r := range m.text {
		if i >= len(val) {
			break
		}
		if r == Placeholder || (r < utf8.RuneSelf && isDigit(byte(r))) {
			b.WriteByte(val[i])
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dropDamagedPrefix removes what is left of a partially erased prefix from
// val. Only text that still begins with '+' is treated as carrying a prefix.
func dropDamagedPrefix(raw, val, prefix string) string {
	if !strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return val
	}
	n := 0
	for n < len(val) && n < len(prefix) && val[n] == prefix[n] {
		n++
	}
	return val[n:]
}

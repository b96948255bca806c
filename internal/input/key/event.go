package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable, unmodified character.
// Shift alone does not count as a modifier for characters.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// IsDigit returns true if this is an unmodified ASCII digit.
func (e Event) IsDigit() bool {
	return e.IsChar() && e.Rune >= '0' && e.Rune <= '9'
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns a canonical specification that Parse accepts.
// Examples: "5", "Backspace", "Ctrl+n".
func (e Event) String() string {
	var name string
	if e.Key == KeyRune {
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
	} else {
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.IsRune() && unicode.IsUpper(e.Rune) {
		// Shift is implied by the character.
		mods &^= ModShift
	}
	if mods == ModNone {
		return name
	}
	return strings.Join([]string{mods.String(), name}, "+")
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}

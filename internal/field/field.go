package field

import "errors"

// ErrCaretUnavailable is returned by fields that cannot position a caret,
// for example while detached from the screen.
var ErrCaretUnavailable = errors.New("caret unavailable")

// Field is the minimal handle over one editable text field.
type Field interface {
	// Text returns the current raw value.
	Text() string
	// SetText replaces the value.
	SetText(text string)
}

// Caret is implemented by fields that expose a selection API.
type Caret interface {
	// Selection returns the current selection.
	Selection() Selection
	// SetSelection moves the selection. Implementations clamp out of range
	// offsets and may return ErrCaretUnavailable.
	SetSelection(sel Selection) error
}

// Focuser is implemented by fields that can take input focus.
type Focuser interface {
	Focus()
	Focused() bool
}

// CaretOf returns the caret API of f, if it has one.
func CaretOf(f Field) (Caret, bool) {
	c, ok := f.(Caret)
	return c, ok
}

// Package field defines the handle a masked input field exposes to the
// controller.
//
// A Field is anything holding editable text: a terminal widget, a form
// value, or the in-memory Buffer. The controller reads the text, writes the
// formatted value back, and, when the field also implements Caret, moves
// the caret. Fields without a caret API still get formatted; caret
// placement is skipped.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current caret position (where typing would occur)
//
// Offsets count runes, not bytes. When Anchor == Head the selection is a
// plain caret.
//
// Thread Safety:
//
// Selection is an immutable value type. Buffer is not thread-safe; the
// controller serializes access to the fields it owns.
package field

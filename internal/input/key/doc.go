// Package key provides key event types and parsing for masked fields.
//
// This package defines the types the field controller and its front ends
// exchange for keyboard input:
//
//   - Key: Identifies a keyboard key (editing, navigation, or a rune)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers
//
// # Key Specifications
//
// Key specifications are used in configuration (locked keys, bindings) and
// can be written as:
//
//   - Simple keys: "5", "Backspace", "Home", "Left"
//   - With modifiers: "Ctrl+N", "Alt+Left"
//   - Angle-bracket style: "<C-n>", "<BS>", "<Home>"
package key

// Package mask formats phone numbers into fixed visual patterns.
//
// A Matrix combines a country prefix with a pattern of placeholders and
// literal decoration:
//
//	+380 (__) ___ __ __
//	 ^^^                  prefix digits, never editable
//	     ^^^^^^^^^^^^^^^  pattern, '_' accepts one digit
//
// Format is a pure function. It strips the raw field text to digits and
// walks the matrix once, emitting one digit per placeholder and copying
// literals only while digits remain. Running Format on its own output is a
// no-op, and the output is never longer than the matrix.
//
// Format also reports where the caret should go. Digits are always appended
// at the tail, so for every event except blur the caret lands at the end of
// the text, and never before the prefix boundary.
package mask

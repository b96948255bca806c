// Package terminal provides an interactive phone field on a tcell screen.
//
// A Session owns one field.Buffer bound to a controller.Controller. Terminal
// events are converted to field events: key presses are offered to the
// controller first and their default editing action runs only if it does
// not prevent it, after which the controller reformats the text. Mouse
// clicks place the caret and terminal focus changes map to focus and blur.
//
// The session is single threaded. Other goroutines talk to it by posting
// events, for example Reload after a catalog change.
package terminal

package controller

import (
	"fmt"

	"github.com/dshills/phonemask/internal/input/key"
	"github.com/dshills/phonemask/internal/mask"
)

// EventKind identifies a field event.
type EventKind uint8

const (
	// EventInput follows any change of the field text.
	EventInput EventKind = iota
	// EventFocus follows the field gaining focus.
	EventFocus
	// EventBlur follows the field losing focus.
	EventBlur
	// EventClick follows a pointer click that placed the caret.
	EventClick
	// EventSelect follows a selection change.
	EventSelect
	// EventKeyDown precedes a key's default action.
	EventKeyDown
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventInput:
		return "input"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventClick:
		return "click"
	case EventSelect:
		return "select"
	case EventKeyDown:
		return "keydown"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// formatKind maps formatting events to the mask pass they trigger.
func (k EventKind) formatKind() (mask.Kind, bool) {
	switch k {
	case EventInput:
		return mask.KindInput, true
	case EventFocus:
		return mask.KindFocus, true
	case EventBlur:
		return mask.KindBlur, true
	default:
		return 0, false
	}
}

// Event is one field event. Key is set for EventKeyDown only.
type Event struct {
	Kind EventKind
	Key  key.Event
}

// Outcome reports what the controller did with an event.
type Outcome struct {
	// PreventDefault asks the front end to skip the key's default action.
	PreventDefault bool

	// Text is the field text after handling.
	Text string

	// Caret is the caret offset the controller set. Valid only if CaretMoved.
	Caret int

	// CaretMoved is true when the controller repositioned the caret.
	CaretMoved bool
}

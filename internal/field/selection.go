package field

import "fmt"

// Selection represents a range of selected text in rune offsets.
// Anchor is where the selection started; Head is the caret position.
// When Anchor == Head, this represents a caret with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor int // Where selection started
	Head   int // Current caret position (where typing occurs)
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// CaretAt creates a selection representing just a caret (no extent).
func CaretAt(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent (just a caret).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the length of the selection in runes.
func (s Selection) Len() int {
	return s.End() - s.Start()
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	return max(s.Anchor, s.Head)
}

// Collapse collapses the selection to a caret at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// Clamp returns a selection clamped to the valid range [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	return Selection{
		Anchor: clamp(s.Anchor, maxOffset),
		Head:   clamp(s.Head, maxOffset),
	}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret(%d)", s.Head)
	}
	dir := "→"
	if s.Head < s.Anchor {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

package field

// Buffer is an in-memory Field with a caret. Front ends use its editing
// primitives as the default actions for keys the controller lets through.
type Buffer struct {
	text    []rune
	sel     Selection
	focused bool
}

// NewBuffer creates a buffer holding text with the caret at its end.
func NewBuffer(text string) *Buffer {
	r := []rune(text)
	return &Buffer{text: r, sel: CaretAt(len(r))}
}

// Text returns the current value.
func (b *Buffer) Text() string {
	return string(b.text)
}

// SetText replaces the value, clamping the selection into the new text.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.sel = b.sel.Clamp(len(b.text))
}

// Len returns the value length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Selection returns the current selection.
func (b *Buffer) Selection() Selection {
	return b.sel
}

// SetSelection moves the selection, clamped to the text.
func (b *Buffer) SetSelection(sel Selection) error {
	b.sel = sel.Clamp(len(b.text))
	return nil
}

// Focus gives the buffer input focus.
func (b *Buffer) Focus() {
	b.focused = true
}

// Blur removes input focus.
func (b *Buffer) Blur() {
	b.focused = false
}

// Focused reports whether the buffer has input focus.
func (b *Buffer) Focused() bool {
	return b.focused
}

// Insert replaces the selection with s and leaves the caret after it.
func (b *Buffer) Insert(s string) {
	start, end := b.sel.Start(), b.sel.End()
	ins := []rune(s)

	out := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	out = append(out, b.text[:start]...)
	out = append(out, ins...)
	out = append(out, b.text[end:]...)

	b.text = out
	b.sel = CaretAt(start + len(ins))
}

// DeleteBackward removes the selection, or the rune before the caret.
func (b *Buffer) DeleteBackward() {
	if !b.sel.IsEmpty() {
		b.Insert("")
		return
	}
	if b.sel.Head == 0 {
		return
	}
	b.sel = NewSelection(b.sel.Head-1, b.sel.Head)
	b.Insert("")
}

// DeleteForward removes the selection, or the rune after the caret.
func (b *Buffer) DeleteForward() {
	if !b.sel.IsEmpty() {
		b.Insert("")
		return
	}
	if b.sel.Head >= len(b.text) {
		return
	}
	b.sel = NewSelection(b.sel.Head, b.sel.Head+1)
	b.Insert("")
}

// MoveLeft moves the caret one rune left, collapsing any selection.
func (b *Buffer) MoveLeft() {
	if !b.sel.IsEmpty() {
		b.sel = CaretAt(b.sel.Start())
		return
	}
	b.sel = CaretAt(b.sel.Head - 1).Clamp(len(b.text))
}

// MoveRight moves the caret one rune right, collapsing any selection.
func (b *Buffer) MoveRight() {
	if !b.sel.IsEmpty() {
		b.sel = CaretAt(b.sel.End())
		return
	}
	b.sel = CaretAt(b.sel.Head + 1).Clamp(len(b.text))
}

// MoveHome moves the caret to the start of the text.
func (b *Buffer) MoveHome() {
	b.sel = CaretAt(0)
}

// MoveEnd moves the caret to the end of the text.
func (b *Buffer) MoveEnd() {
	b.sel = CaretAt(len(b.text))
}

// SelectAll selects the whole value.
func (b *Buffer) SelectAll() {
	b.sel = NewSelection(0, len(b.text))
}

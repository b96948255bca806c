package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen layout.
const (
	titleRow = 0
	labelRow = 1
	fieldRow = 2
	helpRow  = 4
	fieldCol = 2
)

var (
	titleStyle = tcell.StyleDefault.Bold(true)
	fieldStyle = tcell.StyleDefault.Underline(true)
	hintStyle  = tcell.StyleDefault.Dim(true)
)

// Draw renders the session.
func (s *Session) Draw() {
	s.screen.Clear()

	st := s.ctl.State()
	drawText(s.screen, 0, titleRow, titleStyle, s.title)
	drawText(s.screen, fieldCol, labelRow, tcell.StyleDefault, fmt.Sprintf("%s (%s)", st.Country.Name, st.Country))

	text := s.buf.Text()
	n := drawText(s.screen, fieldCol, fieldRow, fieldStyle, text)
	drawText(s.screen, fieldCol+n, fieldRow, hintStyle, remainder(st.Matrix.String(), text))

	help := fmt.Sprintf("Enter accept  Esc cancel  %s next country", s.cycle)
	drawText(s.screen, 0, helpRow, hintStyle, help)

	if s.buf.Focused() {
		s.screen.ShowCursor(fieldCol+s.buf.Selection().Head, fieldRow)
	} else {
		s.screen.HideCursor()
	}
	s.screen.Show()
}

// drawText writes text from (x, y) and returns the number of cells used.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	n := 0
	for _, r := range text {
		screen.SetContent(x+n, y, r, nil, style)
		n++
	}
	return n
}

// remainder returns the part of the template not yet covered by text.
func remainder(template, text string) string {
	t := []rune(template)
	n := len([]rune(text))
	if n >= len(t) {
		return ""
	}
	return string(t[n:])
}

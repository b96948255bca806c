package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/phonemask/internal/input/key"
)

// KeyEvent converts a tcell key event. Control letters become the letter
// with ModCtrl, so "Ctrl+N" bindings match.
func KeyEvent(ev *tcell.EventKey) key.Event {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return key.NewRuneEvent(r, mods)
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case k == tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case k == tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case k == tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
	}

	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods)
	}
	return key.Event{}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

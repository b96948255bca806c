package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/field"
	"github.com/dshills/phonemask/internal/input/key"
	"github.com/dshills/phonemask/internal/logging"
)

var (
	ukraine = country.Country{Code: "UA", Name: "Ukraine", Prefix: "380", Pattern: "(__) ___ __ __"}
	usa     = country.Country{Code: "US", Name: "United States", Prefix: "1", Pattern: "(___) ___-____"}
)

// textField is a field without a caret API.
type textField struct {
	text string
}

func (f *textField) Text() string        { return f.text }
func (f *textField) SetText(text string) { f.text = text }

// brokenCaret fails every caret move.
type brokenCaret struct {
	*field.Buffer
}

func (b brokenCaret) SetSelection(field.Selection) error {
	return field.ErrCaretUnavailable
}

func newController(t *testing.T, text string, c country.Country, opts ...Option) (*Controller, *field.Buffer) {
	t.Helper()
	buf := field.NewBuffer(text)
	ctl, err := New(buf, c, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ctl, buf
}

func TestNewValidatesCountry(t *testing.T) {
	bad := country.Country{Code: "UA", Name: "Ukraine", Prefix: "380", Pattern: "(xx) xxx"}
	if _, err := New(field.NewBuffer(""), bad); !errors.Is(err, country.ErrInvalidCountry) {
		t.Errorf("expected ErrInvalidCountry, got %v", err)
	}
	if _, err := New(nil, ukraine); !errors.Is(err, ErrNilField) {
		t.Errorf("expected ErrNilField, got %v", err)
	}
}

func TestNewLeavesFieldUntouched(t *testing.T) {
	_, buf := newController(t, "hello", ukraine)
	if buf.Text() != "hello" {
		t.Errorf("binding should not format, got %q", buf.Text())
	}
}

func TestStateBoundary(t *testing.T) {
	ctl, _ := newController(t, "", ukraine)
	if got := ctl.State().Boundary(); got != 5 {
		t.Errorf("UA boundary = %d, want 5", got)
	}
}

func TestInputFormats(t *testing.T) {
	ctl, buf := newController(t, "abc123", ukraine)
	out := ctl.Input()

	if out.Text != "+380 (12) 3" || buf.Text() != out.Text {
		t.Errorf("unexpected text %q (field %q)", out.Text, buf.Text())
	}
	if !out.CaretMoved || out.Caret != 11 {
		t.Errorf("caret should move to the end, got %+v", out)
	}
	if buf.Selection() != field.CaretAt(11) {
		t.Errorf("field caret = %v", buf.Selection())
	}
}

func TestTypingDigitByDigit(t *testing.T) {
	ctl, buf := newController(t, "", usa)
	ctl.Focus()
	if buf.Text() != "+1" {
		t.Fatalf("focus on empty field should show the prefix, got %q", buf.Text())
	}

	for _, r := range "5551234567" {
		if out := ctl.KeyDown(key.NewRuneEvent(r, key.ModNone)); out.PreventDefault {
			t.Fatalf("digit %q should not be prevented", r)
		}
		buf.Insert(string(r))
		ctl.Input()
	}

	if buf.Text() != "+1 (555) 123-4567" {
		t.Errorf("unexpected text %q", buf.Text())
	}
	if buf.Selection() != field.CaretAt(17) {
		t.Errorf("caret should be at the end, got %v", buf.Selection())
	}

	// The mask is full; further digits are dropped.
	buf.Insert("8")
	ctl.Input()
	if buf.Text() != "+1 (555) 123-4567" {
		t.Errorf("overflow should be truncated, got %q", buf.Text())
	}
}

func TestFocusRestoresPrefix(t *testing.T) {
	ctl, buf := newController(t, "12", ukraine)
	out := ctl.Focus()
	if buf.Text() != "+380 (12" {
		t.Errorf("unexpected text %q", buf.Text())
	}
	if !out.CaretMoved || out.Caret != 8 {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestBlurCollapsesUntouchedField(t *testing.T) {
	ctl, buf := newController(t, "", ukraine)
	ctl.Focus()
	_ = buf.SetSelection(field.CaretAt(2))

	out := ctl.Blur()
	if out.Text != "+380" || buf.Text() != "+380" {
		t.Errorf("blur should collapse to the prefix, got %q", buf.Text())
	}
	if out.CaretMoved || buf.Selection() != field.CaretAt(2) {
		t.Errorf("blur should not move the caret, got %+v %v", out, buf.Selection())
	}

	ctl2, buf2 := newController(t, "+380 (50) 1", ukraine)
	ctl2.Blur()
	if buf2.Text() != "+380 (50) 1" {
		t.Errorf("blur should keep entered digits, got %q", buf2.Text())
	}
}

func TestClickAndSelectLockCaret(t *testing.T) {
	tests := []struct {
		name  string
		kind  EventKind
		sel   field.Selection
		moved bool
		want  field.Selection
	}{
		{"click at start", EventClick, field.CaretAt(0), true, field.CaretAt(5)},
		{"click inside prefix", EventClick, field.CaretAt(3), true, field.CaretAt(5)},
		{"click at boundary", EventClick, field.CaretAt(5), false, field.CaretAt(5)},
		{"click in number", EventClick, field.CaretAt(9), false, field.CaretAt(9)},
		{"select across prefix", EventSelect, field.NewSelection(2, 9), true, field.CaretAt(5)},
		{"backward select into prefix", EventSelect, field.NewSelection(9, 1), true, field.CaretAt(5)},
		{"select in number", EventSelect, field.NewSelection(6, 9), false, field.NewSelection(6, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl, buf := newController(t, "+380 (12) 345", ukraine)
			_ = buf.SetSelection(tt.sel)

			out := ctl.Handle(Event{Kind: tt.kind})
			if out.CaretMoved != tt.moved {
				t.Errorf("CaretMoved = %v, want %v", out.CaretMoved, tt.moved)
			}
			if tt.moved && out.Caret != 5 {
				t.Errorf("Caret = %d, want 5", out.Caret)
			}
			if buf.Selection() != tt.want {
				t.Errorf("selection = %v, want %v", buf.Selection(), tt.want)
			}
		})
	}
}

func TestKeyDownPolicy(t *testing.T) {
	special := func(k key.Key) key.Event { return key.NewSpecialEvent(k, key.ModNone) }

	tests := []struct {
		name    string
		text    string
		sel     field.Selection
		key     key.Event
		prevent bool
		caret   field.Selection
	}{
		{"backspace at boundary", "+380 (1", field.CaretAt(5), special(key.KeyBackspace), true, field.CaretAt(5)},
		{"backspace inside prefix", "+380 (1", field.CaretAt(2), special(key.KeyBackspace), true, field.CaretAt(5)},
		{"backspace after boundary", "+380 (1", field.CaretAt(7), special(key.KeyBackspace), false, field.CaretAt(7)},
		{"backspace selection after boundary", "+380 (12) 3", field.NewSelection(5, 9), special(key.KeyBackspace), false, field.NewSelection(5, 9)},
		{"backspace selection into prefix", "+380 (12) 3", field.NewSelection(3, 9), special(key.KeyBackspace), true, field.CaretAt(5)},
		{"left at boundary", "+380 (1", field.CaretAt(5), special(key.KeyLeft), true, field.CaretAt(5)},
		{"left after boundary", "+380 (1", field.CaretAt(6), special(key.KeyLeft), false, field.CaretAt(6)},
		{"shift left at boundary", "+380 (1", field.CaretAt(5), key.NewSpecialEvent(key.KeyLeft, key.ModShift), true, field.CaretAt(5)},
		{"home anywhere", "+380 (12) 3", field.CaretAt(10), special(key.KeyHome), true, field.CaretAt(5)},
		{"up at boundary", "+380 (1", field.CaretAt(5), special(key.KeyUp), true, field.CaretAt(5)},
		{"up after boundary with one digit", "+380 (1", field.CaretAt(7), special(key.KeyUp), false, field.CaretAt(7)},
		{"up with several digits", "+380 (12) 3", field.CaretAt(10), special(key.KeyUp), true, field.CaretAt(10)},
		{"right is free", "+380 (1", field.CaretAt(2), special(key.KeyRight), false, field.CaretAt(2)},
		{"delete is free", "+380 (1", field.CaretAt(5), special(key.KeyDelete), false, field.CaretAt(5)},
		{"digit is free", "+380 (1", field.CaretAt(7), key.NewRuneEvent('4', key.ModNone), false, field.CaretAt(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl, buf := newController(t, tt.text, ukraine)
			_ = buf.SetSelection(tt.sel)

			out := ctl.KeyDown(tt.key)
			if out.PreventDefault != tt.prevent {
				t.Errorf("PreventDefault = %v, want %v", out.PreventDefault, tt.prevent)
			}
			if buf.Selection() != tt.caret {
				t.Errorf("selection = %v, want %v", buf.Selection(), tt.caret)
			}
			if buf.Text() != tt.text {
				t.Errorf("keydown must not edit text, got %q", buf.Text())
			}
		})
	}
}

func TestLockedKeysConfigurable(t *testing.T) {
	ctl, buf := newController(t, "+380 (1", ukraine, WithLockedKeys(key.NewSpecialEvent(key.KeyDelete, key.ModNone)))
	_ = buf.SetSelection(field.CaretAt(5))

	if out := ctl.KeyDown(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)); out.PreventDefault {
		t.Error("backspace is no longer locked")
	}
	if out := ctl.KeyDown(key.NewSpecialEvent(key.KeyDelete, key.ModNone)); !out.PreventDefault {
		t.Error("delete should be locked at the boundary")
	}
}

func TestFieldWithoutCaret(t *testing.T) {
	f := &textField{text: "12"}
	ctl, err := New(f, ukraine)
	if err != nil {
		t.Fatal(err)
	}

	out := ctl.Focus()
	if f.text != "+380 (12" {
		t.Errorf("formatting should still apply, got %q", f.text)
	}
	if out.CaretMoved {
		t.Error("caret cannot move without a caret API")
	}

	if out := ctl.Click(); out.CaretMoved {
		t.Error("click should be a no-op without a caret API")
	}
	if out := ctl.KeyDown(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)); out.PreventDefault {
		t.Error("caret-dependent locks are skipped without a caret API")
	}
	if out := ctl.KeyDown(key.NewSpecialEvent(key.KeyUp, key.ModNone)); !out.PreventDefault {
		t.Error("up with several digits is prevented regardless of caret")
	}
}

func TestCaretFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &logs})

	f := brokenCaret{field.NewBuffer("7")}
	ctl, err := New(f, ukraine, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}

	out := ctl.Input()
	if out.Text != "+380 (7" {
		t.Errorf("unexpected text %q", out.Text)
	}
	if out.CaretMoved {
		t.Error("failed caret move should not be reported as moved")
	}
	if !strings.Contains(logs.String(), "caret not moved") {
		t.Errorf("expected a debug line, got %q", logs.String())
	}
}

func TestSetCountryResetsToPrefix(t *testing.T) {
	ctl, buf := newController(t, "+380 (12) 345", ukraine)

	out, err := ctl.SetCountry(usa)
	if err != nil {
		t.Fatal(err)
	}
	if out.Text != "+1" || buf.Text() != "+1" {
		t.Errorf("switch should reset to the new prefix, got %q", buf.Text())
	}
	if got := ctl.State().Boundary(); got != 3 {
		t.Errorf("US boundary = %d, want 3", got)
	}
	if ctl.State().Country.Code != "US" {
		t.Errorf("state not updated: %v", ctl.State().Country)
	}
}

func TestSetCountryRetainDigits(t *testing.T) {
	ctl, buf := newController(t, "+380 (12) 345", ukraine, WithRetainDigits(true))

	if _, err := ctl.SetCountry(usa); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "+1 (123) 45" {
		t.Errorf("digits should be reformatted, got %q", buf.Text())
	}

	if _, err := ctl.SetCountry(ukraine); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "+380 (12) 345" {
		t.Errorf("switching back should restore the layout, got %q", buf.Text())
	}
}

func TestSetCountryRejectsInvalid(t *testing.T) {
	ctl, buf := newController(t, "+380 (1", ukraine)

	_, err := ctl.SetCountry(country.Country{Code: "ZZ", Name: "Nowhere", Prefix: "999", Pattern: "---"})
	if !errors.Is(err, country.ErrInvalidCountry) {
		t.Errorf("expected ErrInvalidCountry, got %v", err)
	}
	if buf.Text() != "+380 (1" || ctl.State().Country.Code != "UA" {
		t.Error("a rejected country must not change the field")
	}
}

func TestSetCountryCode(t *testing.T) {
	ctl, buf := newController(t, "", ukraine)

	ctl.SetCountryCode("us")
	if buf.Text() != "+1" {
		t.Errorf("expected US prefix, got %q", buf.Text())
	}

	ctl.SetCountryCode("+48")
	if ctl.State().Country.Code != "PL" {
		t.Errorf("dial code should resolve, got %v", ctl.State().Country)
	}

	ctl.SetCountryCode("Atlantis")
	if ctl.State().Country.Code != "UA" || buf.Text() != "+380" {
		t.Errorf("unknown code should fall back to the bound country, got %v %q", ctl.State().Country, buf.Text())
	}
}

func TestClose(t *testing.T) {
	ctl, buf := newController(t, "12", ukraine)
	ctl.Close()

	if !ctl.Closed() {
		t.Error("Closed should report true")
	}
	if out := ctl.Input(); out.Text != "12" || buf.Text() != "12" {
		t.Errorf("closed controller must not format, got %q", buf.Text())
	}
	if _, err := ctl.SetCountry(usa); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestEventKindString(t *testing.T) {
	kinds := map[EventKind]string{
		EventInput:    "input",
		EventFocus:    "focus",
		EventBlur:     "blur",
		EventClick:    "click",
		EventSelect:   "select",
		EventKeyDown:  "keydown",
		EventKind(42): "EventKind(42)",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}

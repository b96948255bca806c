package terminal

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/phonemask/internal/controller"
	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/field"
	"github.com/dshills/phonemask/internal/input/key"
	"github.com/dshills/phonemask/internal/logging"
)

// ErrAborted is returned by Run when the user cancels the field.
var ErrAborted = errors.New("terminal: input aborted")

// Session runs one phone field on a screen.
type Session struct {
	screen tcell.Screen
	ctl    *controller.Controller
	buf    *field.Buffer

	countries []country.Country
	cycle     key.Event
	title     string
	log       *logging.Logger

	done    bool
	aborted bool
}

// Option configures a Session.
type Option func(*Session)

// WithCountries sets the list the cycle key steps through.
func WithCountries(countries []country.Country) Option {
	return func(s *Session) {
		s.countries = countries
	}
}

// WithCycleKey sets the key that switches to the next country.
func WithCycleKey(k key.Event) Option {
	return func(s *Session) {
		s.cycle = k
	}
}

// WithTitle sets the heading drawn above the field.
func WithTitle(title string) Option {
	return func(s *Session) {
		s.title = title
	}
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession creates a session drawing on screen. The controller must be
// bound to buf. The screen is expected to be initialized.
func NewSession(screen tcell.Screen, ctl *controller.Controller, buf *field.Buffer, opts ...Option) *Session {
	s := &Session{
		screen: screen,
		ctl:    ctl,
		buf:    buf,
		cycle:  key.NewRuneEvent('n', key.ModCtrl),
		title:  "Phone number",
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("terminal")
	return s
}

// Run focuses the field and processes events until the user accepts or
// cancels it, or ctx ends. It returns the field text on accept.
func (s *Session) Run(ctx context.Context) (string, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(ctx))
	})
	defer stop()

	s.buf.Focus()
	s.ctl.Focus()
	s.Draw()

	for !s.done {
		ev := s.screen.PollEvent()
		if ev == nil {
			return "", ErrAborted
		}
		if ie, ok := ev.(*tcell.EventInterrupt); ok && ie.Data() == ctx {
			return "", ctx.Err()
		}
		s.HandleEvent(ev)
		s.Draw()
	}

	if s.aborted {
		return "", ErrAborted
	}
	return s.buf.Text(), nil
}

// Reload replaces the country list from another goroutine.
func (s *Session) Reload(countries []country.Country) {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(countries))
}

// Done reports whether the user accepted or cancelled the field.
func (s *Session) Done() bool {
	return s.done
}

// HandleEvent applies one terminal event.
func (s *Session) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(KeyEvent(e))

	case *tcell.EventMouse:
		s.handleMouse(e)

	case *tcell.EventFocus:
		if e.Focused {
			s.buf.Focus()
			s.ctl.Focus()
		} else {
			s.buf.Blur()
			s.ctl.Blur()
		}

	case *tcell.EventInterrupt:
		if countries, ok := e.Data().([]country.Country); ok {
			s.countries = countries
			s.log.Info("country list reloaded: %d entries", len(countries))
		}

	case *tcell.EventResize:
		s.screen.Sync()
	}
}

func (s *Session) handleKey(k key.Event) {
	switch {
	case k.Equals(s.cycle):
		s.nextCountry()
		return
	case k.Key == key.KeyEnter:
		s.buf.Blur()
		s.ctl.Blur()
		s.done = true
		return
	case k.Key == key.KeyEscape, k.Key == key.KeyRune && k.Rune == 'c' && k.Modifiers.HasCtrl():
		s.done = true
		s.aborted = true
		return
	}

	if out := s.ctl.KeyDown(k); out.PreventDefault {
		return
	}

	before := s.buf.Text()
	if !s.applyDefault(k) {
		return
	}
	if s.buf.Text() != before {
		s.ctl.Input()
	}
}

// applyDefault performs the buffer edit or movement for k and reports
// whether k had one.
func (s *Session) applyDefault(k key.Event) bool {
	switch {
	case k.IsChar():
		s.buf.Insert(string(k.Rune))
	case k.Key == key.KeyBackspace:
		s.buf.DeleteBackward()
	case k.Key == key.KeyDelete:
		s.buf.DeleteForward()
	case k.Key == key.KeyLeft:
		s.buf.MoveLeft()
	case k.Key == key.KeyRight:
		s.buf.MoveRight()
	case k.Key == key.KeyHome:
		s.buf.MoveHome()
	case k.Key == key.KeyEnd:
		s.buf.MoveEnd()
	case k.Key == key.KeyRune && k.Rune == 'a' && k.Modifiers.HasCtrl():
		s.buf.SelectAll()
		s.ctl.Select()
	default:
		return false
	}
	return true
}

func (s *Session) handleMouse(e *tcell.EventMouse) {
	if e.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := e.Position()
	if y != fieldRow {
		return
	}
	_ = s.buf.SetSelection(field.CaretAt(x - fieldCol))
	s.ctl.Click()
}

func (s *Session) nextCountry() {
	if len(s.countries) == 0 {
		return
	}

	current := s.ctl.State().Country.Code
	next := s.countries[0]
	for i, c := range s.countries {
		if c.Code == current {
			next = s.countries[(i+1)%len(s.countries)]
			break
		}
	}

	if _, err := s.ctl.SetCountry(next); err != nil {
		s.log.Warn("cannot switch to %s: %v", next, err)
	}
}

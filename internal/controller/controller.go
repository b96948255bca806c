package controller

import (
	"fmt"
	"sync"

	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/field"
	"github.com/dshills/phonemask/internal/input/key"
	"github.com/dshills/phonemask/internal/logging"
	"github.com/dshills/phonemask/internal/mask"
)

// State is the mask configuration of one bound field.
type State struct {
	Country country.Country
	Matrix  mask.Matrix
}

// Boundary returns the first caret offset after the protected prefix.
func (s State) Boundary() int {
	return s.Matrix.Boundary()
}

func newState(c country.Country) State {
	return State{Country: c, Matrix: c.Matrix()}
}

// Controller applies the phone mask to one field.
// All methods are safe for concurrent use; each event is handled atomically.
type Controller struct {
	mu sync.Mutex

	field    field.Field
	state    State
	locked   []key.Event
	retain   bool
	resolver *country.Resolver
	log      *logging.Logger
	closed   bool
}

// New binds a controller to f using country c.
// The field is left untouched until the first event.
func New(f field.Field, c country.Country, opts ...Option) (*Controller, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctl := &Controller{
		field:  f,
		state:  newState(c),
		locked: DefaultLockedKeys(),
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	ctl.log = ctl.log.WithComponent("controller")

	if ctl.resolver == nil {
		r, err := fallbackResolver(c, ctl.log)
		if err != nil {
			return nil, err
		}
		ctl.resolver = r
	}
	return ctl, nil
}

// fallbackResolver resolves against the built-in catalog and falls back to
// the bound country.
func fallbackResolver(c country.Country, log *logging.Logger) (*country.Resolver, error) {
	bound := country.LookupFunc(func(code string) (country.Country, bool) {
		if code == c.Code {
			return c, true
		}
		return country.Country{}, false
	})
	return country.NewResolver(country.Chain(bound, country.DefaultTable()), c.Code, country.WithLogger(log))
}

// State returns the current mask state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Field returns the bound field.
func (c *Controller) Field() field.Field {
	return c.field
}

// Handle processes one field event.
func (c *Controller) Handle(ev Event) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Outcome{Text: c.field.Text()}
	}

	if kind, ok := ev.Kind.formatKind(); ok {
		return c.format(kind)
	}

	switch ev.Kind {
	case EventClick, EventSelect:
		return c.guardSelection()
	case EventKeyDown:
		return c.keyDown(ev.Key)
	default:
		c.log.Debug("ignoring %s event", ev.Kind)
		return Outcome{Text: c.field.Text()}
	}
}

// Input handles a text change.
func (c *Controller) Input() Outcome {
	return c.Handle(Event{Kind: EventInput})
}

// Focus handles the field gaining focus.
func (c *Controller) Focus() Outcome {
	return c.Handle(Event{Kind: EventFocus})
}

// Blur handles the field losing focus.
func (c *Controller) Blur() Outcome {
	return c.Handle(Event{Kind: EventBlur})
}

// Click handles a pointer click.
func (c *Controller) Click() Outcome {
	return c.Handle(Event{Kind: EventClick})
}

// Select handles a selection change.
func (c *Controller) Select() Outcome {
	return c.Handle(Event{Kind: EventSelect})
}

// KeyDown handles a key press before its default action.
func (c *Controller) KeyDown(k key.Event) Outcome {
	return c.Handle(Event{Kind: EventKeyDown, Key: k})
}

// format runs the formatter over the field text and applies its result.
func (c *Controller) format(kind mask.Kind) Outcome {
	res := mask.Format(c.field.Text(), c.state.Matrix, kind)
	c.field.SetText(res.Text)

	out := Outcome{Text: res.Text}
	if res.MoveCaret {
		out.Caret = res.Caret
		out.CaretMoved = c.moveCaret(res.Caret)
	}
	return out
}

// guardSelection moves a selection that starts inside the prefix to the
// boundary.
func (c *Controller) guardSelection() Outcome {
	out := Outcome{Text: c.field.Text()}

	caret, ok := field.CaretOf(c.field)
	if !ok {
		return out
	}
	if caret.Selection().Start() < c.state.Boundary() {
		out.Caret = c.state.Boundary()
		out.CaretMoved = c.moveCaret(out.Caret)
	}
	return out
}

// keyDown decides whether a key may perform its default action.
func (c *Controller) keyDown(k key.Event) Outcome {
	out := Outcome{Text: c.field.Text()}
	if !c.isLocked(k) {
		return out
	}

	boundary := c.state.Boundary()

	if k.Key == key.KeyUp && len(mask.National(out.Text, c.state.Matrix)) > 1 {
		out.PreventDefault = true
		return out
	}

	caret, ok := field.CaretOf(c.field)
	if !ok {
		return out
	}
	sel := caret.Selection()

	switch {
	case k.Key == key.KeyHome:
	case k.Key == key.KeyBackspace && !sel.IsEmpty() && sel.Start() >= boundary:
		return out
	case sel.Start() > boundary:
		return out
	}

	out.PreventDefault = true
	out.Caret = boundary
	out.CaretMoved = c.moveCaret(boundary)
	return out
}

// isLocked reports whether k is one of the protected keys. Modifiers are
// ignored so that Shift+Left cannot extend a selection into the prefix.
func (c *Controller) isLocked(k key.Event) bool {
	for _, l := range c.locked {
		if l.Key != k.Key {
			continue
		}
		if k.Key != key.KeyRune || l.Rune == k.Rune {
			return true
		}
	}
	return false
}

// moveCaret collapses the selection at offset. Fields without a caret API
// are skipped; failures are logged and otherwise ignored.
func (c *Controller) moveCaret(offset int) bool {
	caret, ok := field.CaretOf(c.field)
	if !ok {
		return false
	}
	if err := caret.SetSelection(field.CaretAt(offset)); err != nil {
		c.log.Debug("caret not moved to %d: %v", offset, err)
		return false
	}
	return true
}

// SetCountry switches the field to country n and reformats it.
func (c *Controller) SetCountry(n country.Country) (Outcome, error) {
	if err := n.Validate(); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Outcome{}, ErrClosed
	}
	return c.switchTo(n), nil
}

// SetCountryCode switches to the country for code, falling back to the
// resolver's default when code is unknown.
func (c *Controller) SetCountryCode(code string) Outcome {
	n := c.resolver.Resolve(code)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Outcome{Text: c.field.Text()}
	}
	return c.switchTo(n)
}

func (c *Controller) switchTo(n country.Country) Outcome {
	prev := c.state
	national := mask.National(c.field.Text(), prev.Matrix)

	c.state = newState(n)

	text := c.state.Matrix.Lead()
	if c.retain && national != "" {
		text = fmt.Sprintf("%s %s", text, national)
	}
	c.field.SetText(text)

	c.log.Info("country changed from %s to %s", prev.Country, n)
	return c.format(mask.KindInput)
}

// Close detaches the controller. Later events leave the field untouched.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

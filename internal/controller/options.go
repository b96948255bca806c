package controller

import (
	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/input/key"
	"github.com/dshills/phonemask/internal/logging"
)

// DefaultLockedKeys are the keys kept out of the prefix unless configured
// otherwise.
func DefaultLockedKeys() []key.Event {
	return []key.Event{
		key.NewSpecialEvent(key.KeyBackspace, key.ModNone),
		key.NewSpecialEvent(key.KeyLeft, key.ModNone),
		key.NewSpecialEvent(key.KeyUp, key.ModNone),
		key.NewSpecialEvent(key.KeyHome, key.ModNone),
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRetainDigits makes SetCountry carry entered digits into the new
// pattern instead of resetting the field to the bare prefix.
func WithRetainDigits(retain bool) Option {
	return func(c *Controller) {
		c.retain = retain
	}
}

// WithLockedKeys replaces the set of keys that may not enter the prefix.
func WithLockedKeys(keys ...key.Event) Option {
	return func(c *Controller) {
		c.locked = append([]key.Event(nil), keys...)
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithResolver sets the resolver used by SetCountryCode.
func WithResolver(r *country.Resolver) Option {
	return func(c *Controller) {
		c.resolver = r
	}
}

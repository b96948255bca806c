package country

import (
	"fmt"

	"github.com/dshills/phonemask/internal/logging"
)

// Lookup resolves a region or dialing code to a Country.
type Lookup interface {
	Resolve(code string) (Country, bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(code string) (Country, bool)

// Resolve implements Lookup.
func (f LookupFunc) Resolve(code string) (Country, bool) {
	return f(code)
}

// Chain returns a Lookup that tries each lookup in order.
func Chain(lookups ...Lookup) Lookup {
	return LookupFunc(func(code string) (Country, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if c, ok := l.Resolve(code); ok {
				return c, true
			}
		}
		return Country{}, false
	})
}

// Resolver resolves codes with a fallback to a default country.
type Resolver struct {
	lookup Lookup
	def    Country
	log    *logging.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *logging.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// NewResolver creates a resolver whose default is defaultCode.
// The default itself must resolve and validate.
func NewResolver(lookup Lookup, defaultCode string, opts ...ResolverOption) (*Resolver, error) {
	r := &Resolver{lookup: lookup, log: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}

	def, ok := lookup.Resolve(defaultCode)
	if !ok {
		return nil, fmt.Errorf("default country %q: %w", defaultCode, ErrNotFound)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("default country: %w", err)
	}
	r.def = def
	return r, nil
}

// Lookup resolves code without falling back.
func (r *Resolver) Lookup(code string) (Country, bool) {
	c, ok := r.lookup.Resolve(code)
	if !ok {
		return Country{}, false
	}
	if err := c.Validate(); err != nil {
		r.log.Warn("ignoring unusable country: %v", err)
		return Country{}, false
	}
	return c, true
}

// Resolve resolves code, returning the default country when it is unknown.
func (r *Resolver) Resolve(code string) Country {
	if c, ok := r.Lookup(code); ok {
		return c
	}
	r.log.Debug("country %q not found, using default %s", code, r.def)
	return r.def
}

// Default returns the fallback country.
func (r *Resolver) Default() Country {
	return r.def
}

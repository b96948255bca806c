package controller

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/field"
	"github.com/dshills/phonemask/internal/logging"
)

// Registry tracks the controllers bound by an application.
type Registry struct {
	mu          sync.RWMutex
	controllers map[uuid.UUID]*Controller

	resolver *country.Resolver
	opts     []Option
	log      *logging.Logger
}

// NewRegistry creates a registry that resolves country codes with r and
// applies opts to every controller it binds.
func NewRegistry(r *country.Resolver, log *logging.Logger, opts ...Option) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		controllers: make(map[uuid.UUID]*Controller),
		resolver:    r,
		opts:        opts,
		log:         log,
	}
}

// Bind attaches a new controller to f. Unknown codes fall back to the
// resolver's default country.
func (r *Registry) Bind(f field.Field, code string) (uuid.UUID, *Controller, error) {
	id := uuid.New()
	log := r.log.WithField("field", id.String())

	opts := make([]Option, 0, len(r.opts)+2)
	opts = append(opts, r.opts...)
	opts = append(opts, WithResolver(r.resolver), WithLogger(log))

	ctl, err := New(f, r.resolver.Resolve(code), opts...)
	if err != nil {
		return uuid.Nil, nil, err
	}

	r.mu.Lock()
	r.controllers[id] = ctl
	r.mu.Unlock()

	log.Debug("bound field as %s", ctl.State().Country)
	return id, ctl, nil
}

// Unbind closes and forgets the controller for id.
func (r *Registry) Unbind(id uuid.UUID) bool {
	r.mu.Lock()
	ctl, ok := r.controllers[id]
	delete(r.controllers, id)
	r.mu.Unlock()

	if ok {
		ctl.Close()
	}
	return ok
}

// Get returns the controller bound under id.
func (r *Registry) Get(id uuid.UUID) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctl, ok := r.controllers[id]
	if !ok {
		return nil, ErrNotBound
	}
	return ctl, nil
}

// Len returns the number of bound fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}

// Each calls fn for every bound controller until fn returns false.
func (r *Registry) Each(fn func(id uuid.UUID, ctl *Controller) bool) {
	r.mu.RLock()
	snapshot := make(map[uuid.UUID]*Controller, len(r.controllers))
	for id, ctl := range r.controllers {
		snapshot[id] = ctl
	}
	r.mu.RUnlock()

	for id, ctl := range snapshot {
		if !fn(id, ctl) {
			return
		}
	}
}

// Close unbinds every field.
func (r *Registry) Close() {
	r.mu.Lock()
	controllers := r.controllers
	r.controllers = make(map[uuid.UUID]*Controller)
	r.mu.Unlock()

	for _, ctl := range controllers {
		ctl.Close()
	}
}

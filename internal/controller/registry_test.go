package controller

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/field"
)

func newRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := country.NewResolver(country.DefaultTable(), "UA")
	if err != nil {
		t.Fatal(err)
	}
	return NewRegistry(r, nil, opts...)
}

func TestRegistryBind(t *testing.T) {
	reg := newRegistry(t)

	buf := field.NewBuffer("")
	id, ctl, err := reg.Bind(buf, "US")
	if err != nil {
		t.Fatal(err)
	}
	if id == uuid.Nil {
		t.Error("bind should assign an id")
	}
	if ctl.State().Country.Code != "US" {
		t.Errorf("unexpected country %v", ctl.State().Country)
	}

	got, err := reg.Get(id)
	if err != nil || got != ctl {
		t.Errorf("Get returned %v, %v", got, err)
	}

	ctl.Focus()
	if buf.Text() != "+1" {
		t.Errorf("bound controller should format its own field, got %q", buf.Text())
	}
}

func TestRegistryBindFallsBack(t *testing.T) {
	reg := newRegistry(t)

	_, ctl, err := reg.Bind(field.NewBuffer(""), "+999")
	if err != nil {
		t.Fatal(err)
	}
	if ctl.State().Country.Code != "UA" {
		t.Errorf("unknown code should use the default, got %v", ctl.State().Country)
	}
}

func TestRegistryFieldsAreIndependent(t *testing.T) {
	reg := newRegistry(t, WithRetainDigits(true))

	a := field.NewBuffer("501")
	b := field.NewBuffer("501")
	_, ca, _ := reg.Bind(a, "UA")
	_, cb, _ := reg.Bind(b, "UA")

	ca.Input()
	cb.Input()
	cb.SetCountryCode("US")

	if a.Text() != "+380 (50) 1" {
		t.Errorf("first field changed: %q", a.Text())
	}
	if b.Text() != "+1 (501" {
		t.Errorf("second field should switch with its digits, got %q", b.Text())
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2", reg.Len())
	}
}

func TestRegistryUnbind(t *testing.T) {
	reg := newRegistry(t)
	id, ctl, _ := reg.Bind(field.NewBuffer(""), "UA")

	if !reg.Unbind(id) {
		t.Error("Unbind should report a bound id")
	}
	if reg.Unbind(id) {
		t.Error("second Unbind should report false")
	}
	if !ctl.Closed() {
		t.Error("unbound controller should be closed")
	}
	if _, err := reg.Get(id); !errors.Is(err, ErrNotBound) {
		t.Errorf("expected ErrNotBound, got %v", err)
	}
}

func TestRegistryEachAndClose(t *testing.T) {
	reg := newRegistry(t)
	for range 3 {
		if _, _, err := reg.Bind(field.NewBuffer(""), "UA"); err != nil {
			t.Fatal(err)
		}
	}

	seen := 0
	reg.Each(func(uuid.UUID, *Controller) bool {
		seen++
		return true
	})
	if seen != 3 {
		t.Errorf("Each visited %d controllers, want 3", seen)
	}

	seen = 0
	reg.Each(func(uuid.UUID, *Controller) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Each should stop when fn returns false, visited %d", seen)
	}

	var ctls []*Controller
	reg.Each(func(_ uuid.UUID, c *Controller) bool {
		ctls = append(ctls, c)
		return true
	})
	reg.Close()

	if reg.Len() != 0 {
		t.Errorf("Len after Close = %d", reg.Len())
	}
	for _, c := range ctls {
		if !c.Closed() {
			t.Error("Close should close every controller")
		}
	}
}

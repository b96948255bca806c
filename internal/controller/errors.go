package controller

import "errors"

// Controller errors.
var (
	// ErrClosed indicates the controller has been detached from its field.
	ErrClosed = errors.New("controller: closed")

	// ErrNilField indicates New was called without a field.
	ErrNilField = errors.New("controller: nil field")

	// ErrNotBound indicates a registry ID that has no controller.
	ErrNotBound = errors.New("controller: field not bound")
)

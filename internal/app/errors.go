package app

import "errors"

// ErrWatchDisabled indicates WatchCatalog was called without a catalog
// file configured for watching.
var ErrWatchDisabled = errors.New("catalog watching not enabled")

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

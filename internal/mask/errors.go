package mask

import (
	"errors"
	"fmt"
)

// Errors returned by matrix construction and validation.
var (
	// ErrInvalidMatrix indicates a matrix that does not start with "+<digits>".
	ErrInvalidMatrix = errors.New("invalid matrix")

	// ErrNoPlaceholders indicates a pattern without any editable position.
	ErrNoPlaceholders = errors.New("pattern has no placeholders")
)

// MatrixError describes why a matrix was rejected.
type MatrixError struct {
	// Matrix is the offending matrix text.
	Matrix string
	// Reason describes the problem.
	Reason string
	// Err is the sentinel the error matches.
	Err error
}

// Error implements the error interface.
func (e *MatrixError) Error() string {
	return fmt.Sprintf("matrix %q: %s", e.Matrix, e.Reason)
}

// Unwrap returns the underlying sentinel error.
func (e *MatrixError) Unwrap() error {
	return e.Err
}

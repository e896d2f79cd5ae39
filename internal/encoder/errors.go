package encoder

import "fmt"

// EncodeError covers unsupported operand combinations, operand-size
// mismatches, and register-size constraint violations.
type EncodeError struct {
	Message string
}

func (e *EncodeError) Error() string { return e.Message }

func encodeErrorf(format string, args ...any) error {
	return &EncodeError{Message: fmt.Sprintf(format, args...)}
}

// ResolveError covers undefined labels and duplicate label definitions.
type ResolveError struct {
	Message string
}

func (e *ResolveError) Error() string { return e.Message }

func resolveErrorf(format string, args ...any) error {
	return &ResolveError{Message: fmt.Sprintf(format, args...)}
}

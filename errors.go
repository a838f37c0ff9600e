package networth

import (
	"fmt"
)

// ValidationError reports a user input that prevents an operation. The
// operation has no partial effect when it is returned.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ParseWarning reports an imported row that was skipped. Imports collect
// them and carry on.
type ParseWarning struct {
	Row   int    // 1-based data row number
	Field string // offending field
	Value string // offending raw value
	Err   error
}

func (w ParseWarning) Error() string {
	if w.Err != nil {
		return fmt.Sprintf("row %d: invalid %s %q: %v", w.Row, w.Field, w.Value, w.Err)
	}
	return fmt.Sprintf("row %d: invalid %s %q", w.Row, w.Field, w.Value)
}

func (w ParseWarning) Unwrap() error { return w.Err }

// FormatError reports a bundle that does not have the expected shape. Nothing
// has been replaced when it is returned.
type FormatError struct {
	Bundle string
	Msg    string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s file format: %s: %v", e.Bundle, e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid %s file format: %s", e.Bundle, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

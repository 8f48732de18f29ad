package diag

import (
	"errors"
	"fmt"
)

// Error carries a Diagnostic through APIs that return plain Go errors.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
}

// Is matches another *Error with the same code, so callers can write
// errors.Is(err, &diag.Error{Diag: diag.Diagnostic{Code: diag.SemaMethodNotFound}}).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Diag.Code == e.Diag.Code
}

// CodeOf extracts the diagnostic code from err, or UnknownCode.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag.Code
	}
	return UnknownCode
}

// IsSyntax reports whether err is a structural error raised while parsing.
func IsSyntax(err error) bool {
	return CodeOf(err).Phase() == PhaseSyntax
}

// IsSemantic reports whether err was raised by the semantic validator.
func IsSemantic(err error) bool {
	return CodeOf(err).Phase() == PhaseSemantic
}

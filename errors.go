package vecscore

import (
	"errors"
	"strings"
)

// Error is the vecscore error domain type.
//
// Errors coming out of vecscore packages should be inspectable as
// ([errors.As]) an *Error somewhere in the error chain. Packages create an
// Error at their boundary and intermediate layers use [fmt.Errorf] with a "%w"
// verb rather than nesting another Error, unless they are adding [ErrorKind]
// information.
type Error struct {
	Inner   error
	Kind    ErrorKind
	Message string
	Op      string
}

var (
	_ error                       = (*Error)(nil)
	_ interface{ Is(error) bool } = (*Error)(nil)
	_ interface{ Unwrap() error } = (*Error)(nil)
)

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteByte(' ')
	}
	b.WriteByte('[')
	switch e.Kind {
	case ErrInvalid,
		ErrUnresolvable,
		ErrInternal,
		ErrPrecondition:
		b.WriteString(string(e.Kind))
	default:
		b.WriteString("???")
	}
	b.WriteString("]: ")
	b.WriteString(e.Message)
	if e.Message != "" && e.Inner != nil {
		b.WriteString(": ")
	}
	if e.Op == "" && e.Message == "" {
		b.Reset()
	}
	if e.Inner != nil {
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Is enables [errors.Is].
//
// It compares the error kind. Callers should compare against a declared
// [ErrorKind] rather than a specific error value.
func (e *Error) Is(kind error) bool {
	return errors.Is(e.Kind, kind)
}

// Unwrap enables [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Inner
}

// ErrorKind represents classes of errors to be checked against.
//
// If unsure which kind to use, ErrInternal should be used.
type ErrorKind string

// Defined error kinds.
var (
	ErrInvalid      = ErrorKind("invalid")      // malformed vector or metric value
	ErrUnresolvable = ErrorKind("unresolvable") // no vector anywhere in the input
	ErrInternal     = ErrorKind("internal")     // unexpected failure during computation
	ErrPrecondition = ErrorKind("precondition") // bad options or configuration
)

// Error implements error.
func (e ErrorKind) Error() string {
	return string(e)
}

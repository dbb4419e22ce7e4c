// Package limerrors provides typed error handling for the interception core.
//
// It mirrors the taxonomy in the design notes: parse errors, symbol
// resolution errors, prologue-shape errors, and memory-protection errors
// are distinguished so callers can tell a bad rule string from a hostile
// environment without string-matching messages.
package limerrors

import (
	"errors"
	"fmt"
)

// Kind classifies the failure that produced an Error.
type Kind int

const (
	// KindParse indicates a malformed rule string.
	KindParse Kind = iota
	// KindResolution indicates a target symbol was not found in the loaded library.
	KindResolution
	// KindPrologueShape indicates a target function's prologue is not one of
	// the recognized hot-patchable shapes.
	KindPrologueShape
	// KindProtection indicates the platform refused a memory-protection change.
	KindProtection
	// KindFault indicates a guarded write faulted, typically because the
	// target library had already been unloaded.
	KindFault
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindResolution:
		return "symbol resolution error"
	case KindPrologueShape:
		return "unsupported prologue shape"
	case KindProtection:
		return "memory protection error"
	case KindFault:
		return "guarded fault"
	default:
		return "unknown error"
	}
}

// Error wraps an underlying error with a Kind and the operation that failed.
type Error struct {
	Op     string
	Target string
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.String()
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Target != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Kind, ignoring Op/Target/Err, the same way
// runc-go's ContainerError.Is does.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// New creates an Error of the given kind.
func New(kind Kind, op string, target string) *Error {
	return &Error{Op: op, Kind: kind, Target: target}
}

// Wrap attaches Kind and Op context to an underlying error.
func Wrap(err error, kind Kind, op string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// WrapTarget attaches Kind, Op, and Target context to an underlying error.
func WrapTarget(err error, kind Kind, op string, target string) *Error {
	return &Error{Op: op, Target: target, Err: err, Kind: kind}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Re-exported for convenience, matching the teacher's errors package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

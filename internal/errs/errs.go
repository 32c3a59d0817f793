// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package errs defines the closed error-code enumeration shared by every
// package in the engine.
package errs

import "fmt"

// Code is one of the engine's closed set of error codes.
type Code int

// Error codes.
const (
	Generic Code = iota
	Memory
	NotFound
	InvalidArg
	InvalidData
	InvalidUsage
	IO
	Unsupported
	External
	GraphicsUnsupported
	Limits
	Bug
	Timeout
)

func (c Code) String() string {
	switch c {
	case Generic:
		return "generic"
	case Memory:
		return "memory"
	case NotFound:
		return "not found"
	case InvalidArg:
		return "invalid argument"
	case InvalidData:
		return "invalid data"
	case InvalidUsage:
		return "invalid usage"
	case IO:
		return "i/o"
	case Unsupported:
		return "unsupported"
	case External:
		return "external"
	case GraphicsUnsupported:
		return "graphics unsupported"
	case Limits:
		return "limits exceeded"
	case Bug:
		return "bug"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error wraps a Code with a human-readable reason.
// error returns do not carry strings beyond this reason - the Code is
// the part callers are expected to switch on.
type Error struct {
	Code   Code
	Pkg    string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Pkg, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pkg, e.Code, e.Reason)
}

// New creates an *Error for the given package prefix.
func New(pkg string, code Code, reason string) error {
	return &Error{Code: code, Pkg: pkg, Reason: reason}
}

// Is reports whether err is an *Error carrying the given Code.
// Code itself does not implement error, so callers test codes with
// this function rather than errors.Is; a wrapped *Error is not
// unwrapped.
func Is(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}

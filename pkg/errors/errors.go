// Package errors provides structured error handling for the side-effect
// framework.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfiguration indicates an invalid factory or wrapper argument.
	KindConfiguration
	// KindUsage indicates an operation invoked in the wrong environment.
	KindUsage
	// KindBuild indicates a build-time widget error.
	KindBuild
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUsage:
		return "usage"
	case KindBuild:
		return "build"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ConfigurationError reports an argument that failed shape validation during
// factory or wrapper construction. The factory or wrapper is never produced.
//
// Message is the complete contract message; Error returns it verbatim so
// callers can match on it exactly.
type ConfigurationError struct {
	// Arg names the offending argument (e.g. "reducePropsToState").
	Arg string
	// Message is the complete, stable error message.
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Kind returns KindConfiguration.
func (e *ConfigurationError) Kind() ErrorKind {
	return KindConfiguration
}

// UsageError reports a server-only operation invoked in a client context.
// The call that produced it has no side effects.
//
// Error returns Message verbatim, like ConfigurationError.
type UsageError struct {
	// Op is the operation that was misused (e.g. "sideeffect.Rewind").
	Op string
	// Message is the complete, stable error message.
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Kind returns KindUsage.
func (e *UsageError) Kind() ErrorKind {
	return KindUsage
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g. "core.FlushBuild").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}

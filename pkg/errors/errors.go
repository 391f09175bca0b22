// Package errors provides structured error handling for the binding layer.
//
// Operations that detect a taxonomy violation return a *BindError synchronously.
// Failures that happen while delivering a native event into a Go handler cannot
// be returned to anyone, so they are sent to the global ErrorHandler instead.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors. Compare with Is; a *BindError unwraps to one of these.
var (
	// ErrCreationFailed is returned when a native creation call yields the null handle.
	ErrCreationFailed = stderrors.New("native creation failed")
	// ErrDuplicateHandle is returned when a handle is registered twice.
	ErrDuplicateHandle = stderrors.New("handle already registered")
	// ErrInvalidHandle is returned when operating on an unregistered or destroyed handle.
	ErrInvalidHandle = stderrors.New("invalid handle")
	// ErrBackendCreationFailed is returned when the native backend could not be initialized.
	ErrBackendCreationFailed = stderrors.New("backend creation failed")
	// ErrNotInitialized is returned when construction is attempted without a live backend.
	ErrNotInitialized = stderrors.New("backend not initialized")
	// ErrNotFound is returned by registry lookups for unknown handles.
	ErrNotFound = stderrors.New("handle not found")
	// ErrInvalidTree is returned for tree operations that would corrupt the element tree.
	ErrInvalidTree = stderrors.New("invalid tree operation")
	// ErrStaleToken is reported when native delivers an event for a released callback token.
	ErrStaleToken = stderrors.New("stale callback token")
	// ErrLoopRunning is returned when the event loop is entered twice.
	ErrLoopRunning = stderrors.New("event loop already running")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCreation indicates a failed native creation call.
	KindCreation
	// KindDuplicateHandle indicates a registry identity violation.
	KindDuplicateHandle
	// KindInvalidHandle indicates use of a destroyed or unregistered handle.
	KindInvalidHandle
	// KindBackend indicates a backend lifecycle failure.
	KindBackend
	// KindNotInitialized indicates construction without a backend.
	KindNotInitialized
	// KindTree indicates a rejected tree mutation.
	KindTree
	// KindCallback indicates a failure while delivering a native event.
	KindCallback
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindLibrary indicates a failure loading the native library.
	KindLibrary
)

func (k ErrorKind) String() string {
	switch k {
	case KindCreation:
		return "creation"
	case KindDuplicateHandle:
		return "duplicate-handle"
	case KindInvalidHandle:
		return "invalid-handle"
	case KindBackend:
		return "backend"
	case KindNotInitialized:
		return "not-initialized"
	case KindTree:
		return "tree"
	case KindCallback:
		return "callback"
	case KindPanic:
		return "panic"
	case KindLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// BindError represents a structured error raised by the binding layer.
type BindError struct {
	// Op is the operation that failed (e.g., "widgets.Button.SetLabel").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Handle is the native handle involved, or zero.
	Handle uint64
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindError) Error() string {
	if e.Handle != 0 {
		return fmt.Sprintf("%s [%s] handle=%#x: %v", e.Op, e.Kind, e.Handle, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// CreationError names the widget kind whose native creation call failed.
type CreationError struct {
	// Widget is the widget kind, e.g. "button" or "window".
	Widget string
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create %s", e.Widget)
}

// Is reports CreationError as ErrCreationFailed.
func (e *CreationError) Is(target error) bool {
	return target == ErrCreationFailed
}

// PanicError is a panic recovered at a native-to-Go boundary.
type PanicError struct {
	// Op is the boundary that stopped the panic (e.g., "platform.Bridge.Deliver").
	Op string
	// Handle is the native object whose event was being delivered, or zero.
	Handle uint64
	// Event is the kind of event being delivered, or empty.
	Event string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	where := e.Op
	if e.Event != "" {
		where += " (" + e.Event + " handler)"
	}
	if e.Handle != 0 {
		where += fmt.Sprintf(" handle=%#x", e.Handle)
	}
	if where != "" {
		return fmt.Sprintf("panic in %s: %v", strings.TrimSpace(where), e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors that cannot be returned to a caller.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *BindError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// New builds a BindError of the given kind.
func New(op string, kind ErrorKind, handle uint64, err error) *BindError {
	return &BindError{Op: op, Kind: kind, Handle: handle, Err: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

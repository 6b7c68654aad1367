package hostbridge

import (
	"errors"
	"fmt"
)

var (
	ErrReservedRequest    = errors.New("request id None cannot be registered")
	ErrDuplicateRequest   = errors.New("request id already registered")
	ErrNilCommand         = errors.New("command has no RunE")
	ErrEmptyCommandName   = errors.New("command name is empty")
	ErrRegistrationClosed = errors.New("handler table is sealed")

	ErrNilRequest   = errors.New("request is nil")
	ErrNilSignal    = errors.New("signal is nil")
	ErrNilSurface   = errors.New("surface is nil")
	ErrBridgeClosed = errors.New("bridge is closed")

	// ErrHandlerPanic is wrapped by HandlerError when a command panics.
	ErrHandlerPanic = errors.New("command panicked")

	ErrNoSignalFactory = errors.New("no signal factory set")
	ErrNoSurface       = errors.New("no surface opener given")
	ErrShutdown        = errors.New("application is shut down")
)

// HandlerError is reported when a dispatched command fails.
type HandlerError struct {
	Request RequestId
	Name    string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("command %s (%s) failed: %v", e.Name, e.Request, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// SignalError wraps a failure to acquire, raise or release the host wake primitive.
type SignalError struct {
	Op  string
	Err error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("signal %s: %v", e.Op, e.Err)
}

func (e *SignalError) Unwrap() error {
	return e.Err
}

package host

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveDocument = errors.New("no active document")
	ErrElementNotFound  = errors.New("element not found")
	ErrPickCancelled    = errors.New("pick cancelled")
	ErrDuplicateElement = errors.New("duplicate element id")

	ErrEventClosed = errors.New("external event already released")
	ErrQueueFull   = errors.New("host loop queue is full")
	ErrLoopClosed  = errors.New("host loop is closed")
	ErrLoopRunning = errors.New("host loop is already running")
	ErrNilHandler  = errors.New("event handler is nil")
)

// EventError describes a failure on a specific external event.
type EventError struct {
	Event string
	Op    string
	Err   error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("external event %s: %s: %v", e.Event, e.Op, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

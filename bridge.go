package hostbridge

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bridge is the only thing the UI goroutine and the host loop both touch.
// The UI posts requests through it, the host side reactivates the UI through it.
type Bridge struct {
	id      string
	request *Request
	signal  Signal

	// surfaceVal always holds a *surfaceSlot.
	surfaceVal atomic.Value
	enabled    atomic.Bool
	closed     atomic.Bool

	closeOnce sync.Once
	closeErr  error
}

type surfaceSlot struct{ s Surface }

// NewBridge wraps the request mailbox and the signal that wakes the host loop.
func NewBridge(request *Request, signal Signal) (*Bridge, error) {
	if request == nil {
		return nil, ErrNilRequest
	}
	if signal == nil {
		return nil, ErrNilSignal
	}
	b := &Bridge{
		id:      uuid.NewString(),
		request: request,
		signal:  signal,
	}
	b.enabled.Store(true)
	return b, nil
}

// ID identifies the bridge in logs.
func (b *Bridge) ID() string {
	return b.id
}

// Attach binds the UI surface once it exists.
func (b *Bridge) Attach(s Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	b.surfaceVal.Store(&surfaceSlot{s: s})
	return nil
}

func (b *Bridge) surface() Surface {
	v := b.surfaceVal.Load()
	if v == nil {
		return nil
	}
	return v.(*surfaceSlot).s
}

// Post hands id to the host loop. A pending id not yet taken is replaced.
func (b *Bridge) Post(id RequestId) error {
	if b.closed.Load() {
		return ErrBridgeClosed
	}
	b.request.Make(id)
	if err := b.signal.Raise(); err != nil {
		Log.WithField("bridge", b.id).WithError(err).Warn("raise failed")
		return &SignalError{Op: "raise", Err: err}
	}
	return nil
}

// Reactivate enables the surface and gives it focus. Called from the host loop.
func (b *Bridge) Reactivate() {
	b.enabled.Store(true)
	if s := b.surface(); s != nil {
		s.SetEnabled(true)
		s.Focus()
	}
}

// Deactivate disables input on the surface, e.g. before a long command.
func (b *Bridge) Deactivate() {
	b.enabled.Store(false)
	if s := b.surface(); s != nil {
		s.SetEnabled(false)
	}
}

// Enabled reports the activation state.
func (b *Bridge) Enabled() bool {
	return b.enabled.Load()
}

// Closed reports whether Close has been called.
func (b *Bridge) Closed() bool {
	return b.closed.Load()
}

// Close releases the signal. Only the first call does anything; later calls
// return the same result.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		if err := b.signal.Close(); err != nil {
			b.closeErr = &SignalError{Op: "close", Err: err}
			Log.WithField("bridge", b.id).WithError(err).Error("signal release failed")
			return
		}
		Log.WithField("bridge", b.id).Debug("signal released")
	})
	return b.closeErr
}

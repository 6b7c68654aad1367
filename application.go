package hostbridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// SurfaceFunc builds the UI surface for a freshly created bridge.
type SurfaceFunc func(b *Bridge) (Surface, error)

// Application owns the lifecycle of the UI surface and everything it needs to
// talk to the host loop. It is passed around explicitly; there is no global instance.
type Application[C any] struct {
	factory  SignalFactory[C]
	opts     []Option
	register func(d *Dispatcher[C]) error

	mu         sync.RWMutex
	bridge     *Bridge
	dispatcher *Dispatcher[C]

	// at most one ShowWindow creates a surface under contention
	sf       singleflight.Group
	shutdown atomic.Bool
}

// NewApplication creates an Application that acquires its signals from factory.
// opts are applied to every Dispatcher it creates.
func NewApplication[C any](factory SignalFactory[C], opts ...Option) *Application[C] {
	return &Application[C]{
		factory: factory,
		opts:    opts,
	}
}

// OnStartup records how commands get registered into each new Dispatcher.
func (a *Application[C]) OnStartup(register func(d *Dispatcher[C]) error) error {
	if a.factory == nil {
		return ErrNoSignalFactory
	}
	a.register = register
	a.shutdown.Store(false)
	Log.Debug("application started")
	return nil
}

// ShowWindow returns the live bridge, creating the dispatcher, the signal, the
// bridge and the surface if none is open yet.
func (a *Application[C]) ShowWindow(open SurfaceFunc) (*Bridge, error) {
	if a.shutdown.Load() {
		return nil, ErrShutdown
	}
	if a.factory == nil {
		return nil, ErrNoSignalFactory
	}
	if open == nil {
		return nil, ErrNoSurface
	}
	if b := a.Bridge(); b != nil && !b.Closed() {
		return b, nil
	}

	v, err, _ := a.sf.Do(windowKey, func() (interface{}, error) {
		if b := a.Bridge(); b != nil && !b.Closed() {
			return b, nil
		}
		return a.openWindow(open)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Bridge), nil
}

func (a *Application[C]) openWindow(open SurfaceFunc) (*Bridge, error) {
	d := NewDispatcher[C](a, a.opts...)
	if a.register != nil {
		if err := a.register(d); err != nil {
			return nil, fmt.Errorf("register commands: %w", err)
		}
	}
	d.Seal()

	sig, err := a.factory.NewSignal(d)
	if err != nil {
		return nil, &SignalError{Op: "create", Err: err}
	}
	b, err := NewBridge(d.Request(), sig)
	if err != nil {
		_ = sig.Close()
		return nil, err
	}

	s, err := open(b)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("open surface: %w", err)
	}
	if err := b.Attach(s); err != nil {
		_ = b.Close()
		return nil, err
	}

	a.mu.Lock()
	// OnShutdown may have run while the surface was being built; its
	// CloseWindow could not see this bridge, so release it here.
	if a.shutdown.Load() {
		a.mu.Unlock()
		_ = b.Close()
		return nil, ErrShutdown
	}
	a.bridge = b
	a.dispatcher = d
	a.mu.Unlock()

	Log.WithField("bridge", b.ID()).Info("window opened")
	return b, nil
}

// WakeWindowUp reactivates the open surface after a request.
func (a *Application[C]) WakeWindowUp() {
	if b := a.Bridge(); b != nil {
		b.Reactivate()
	}
}

// Bridge returns the live bridge or nil.
func (a *Application[C]) Bridge() *Bridge {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bridge
}

// Dispatcher returns the dispatcher behind the live bridge or nil.
func (a *Application[C]) Dispatcher() *Dispatcher[C] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dispatcher
}

// CloseWindow releases the signal first and only then lets go of the
// dispatcher, so nothing can dispatch against state being torn down.
func (a *Application[C]) CloseWindow() error {
	b := a.Bridge()
	if b == nil {
		return nil
	}
	err := b.Close()

	a.mu.Lock()
	if a.bridge == b {
		a.bridge = nil
		a.dispatcher = nil
	}
	a.mu.Unlock()

	Log.WithField("bridge", b.ID()).Info("window closed")
	return err
}

// OnShutdown closes the window and refuses to open new ones.
func (a *Application[C]) OnShutdown() error {
	a.mu.Lock()
	a.shutdown.Store(true)
	a.mu.Unlock()
	return a.CloseWindow()
}

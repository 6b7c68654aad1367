package host

import (
	"context"
	"runtime/debug"
	"sync/atomic"

	"github.com/dlsniper/debugger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/debugonly"
)

type job func(s *Session)

// Loop is a single-goroutine host: every raised event and every idle job runs
// on the goroutine that called Run, one at a time, against the same Session.
type Loop struct {
	session *Session
	queue   *SafeChannel[job]
	running atomic.Bool
	events  atomic.Int64
}

// NewLoop creates a loop owning session. queueSize <= 0 uses DefaultQueueSize.
func NewLoop(session *Session, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if session == nil {
		session = NewSession(nil)
	}
	return &Loop{
		session: session,
		queue:   NewSafeChannelGen[job](queueSize),
	}
}

// NewEvent registers handler and returns the event that wakes it.
func (l *Loop) NewEvent(h hostbridge.EventHandler[*Session]) (*ExternalEvent, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if l.queue.Closed() {
		return nil, ErrLoopClosed
	}
	e := &ExternalEvent{
		id:      uuid.NewString(),
		loop:    l,
		handler: h,
	}
	l.events.Add(1)
	Log.WithFields(logrus.Fields{"event": e.id, "handler": h.GetName()}).Debug("external event created")
	return e, nil
}

// NewSignal lets Loop act as a hostbridge.SignalFactory.
func (l *Loop) NewSignal(h hostbridge.EventHandler[*Session]) (hostbridge.Signal, error) {
	e, err := l.NewEvent(h)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Events returns how many external events are registered and not yet released.
func (l *Loop) Events() int64 {
	return l.events.Load()
}

// Do schedules fn to run on the loop goroutine.
func (l *Loop) Do(fn func(s *Session)) error {
	if fn == nil {
		return nil
	}
	return l.enqueue(fn)
}

func (l *Loop) enqueue(j job) error {
	if l.queue.Send(j) {
		return nil
	}
	if l.queue.Closed() {
		return ErrLoopClosed
	}
	return ErrQueueFull
}

// Run processes jobs until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	debugger.SetLabels(func() []string {
		return []string{
			"host", "loop",
			"session", l.session.ID,
		}
	})
	Log.WithField("session", l.session.ID).Info("host loop started")

	ch := l.queue.GetChannel()
	for {
		select {
		case <-ctx.Done():
			Log.WithField("session", l.session.ID).Info("host loop stopped")
			return ctx.Err()
		case j, ok := <-ch:
			if !ok {
				Log.WithField("session", l.session.ID).Info("host loop closed")
				return nil
			}
			l.run(j)
		}
	}
}

// run keeps the loop alive whatever a job does.
func (l *Loop) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			Log.WithField("panic", r).Errorf("host job panicked\n%s", debug.Stack())
			if debugonly.Enabled() {
				debugonly.BreakHere()
			}
		}
	}()
	j(l.session)
}

// Stop closes the queue; Run returns once it has drained what was queued.
func (l *Loop) Stop() error {
	if err := l.queue.Close(); err != nil {
		return ErrLoopClosed
	}
	return nil
}

// ExternalEvent is the host's wake primitive for one handler.
// Raising it while a previous raise is still pending does nothing.
type ExternalEvent struct {
	id      string
	loop    *Loop
	handler hostbridge.EventHandler[*Session]
	pending atomic.Bool
	closed  atomic.Bool
}

// ID identifies the event in logs.
func (e *ExternalEvent) ID() string {
	return e.id
}

// Pending reports whether a raise is waiting for the loop.
func (e *ExternalEvent) Pending() bool {
	return e.pending.Load()
}

// Raise asks the loop to call the handler.
func (e *ExternalEvent) Raise() error {
	if e.closed.Load() {
		return &EventError{Event: e.id, Op: "raise", Err: ErrEventClosed}
	}
	if !e.pending.CompareAndSwap(false, true) {
		return nil
	}
	if err := e.loop.enqueue(e.fire); err != nil {
		e.pending.Store(false)
		return &EventError{Event: e.id, Op: "raise", Err: err}
	}
	return nil
}

func (e *ExternalEvent) fire(s *Session) {
	e.pending.Store(false)
	if e.closed.Load() {
		return
	}
	e.handler.Execute(s)
}

// Close releases the event. A second Close is an error.
func (e *ExternalEvent) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return &EventError{Event: e.id, Op: "close", Err: ErrEventClosed}
	}
	e.loop.events.Add(-1)
	Log.WithField("event", e.id).Debug("external event released")
	return nil
}

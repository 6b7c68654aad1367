package hostbridge

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/seoyhaein/utils"
	"github.com/sirupsen/logrus"
)

// Dispatcher drains a Request and runs the Command registered for it.
// It is the EventHandler the host loop calls; calls are never concurrent,
// so the dispatch path takes no locks.
type Dispatcher[C any] struct {
	name      string
	request   *Request
	table     map[RequestId]*Command[C]
	sealed    atomic.Bool
	activator Activator
	reporter  Reporter
	recover   bool

	dispatched atomic.Int64
	stale      atomic.Int64
	unknown    atomic.Int64
	failed     atomic.Int64
}

// Stats counts what Execute has seen so far.
type Stats struct {
	Dispatched int64
	Stale      int64
	Unknown    int64
	Failed     int64
}

// Option configures a Dispatcher.
type Option func(*dispatcherOptions)

type dispatcherOptions struct {
	name     string
	reporter Reporter
	recover  bool
}

// WithName sets what GetName returns.
func WithName(name string) Option {
	return func(o *dispatcherOptions) {
		if !utils.IsEmptyString(name) {
			o.name = name
		}
	}
}

// WithReporter sets where unknown requests and command failures are shown.
func WithReporter(r Reporter) Option {
	return func(o *dispatcherOptions) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithRecover controls whether command panics are caught. It is on by default.
func WithRecover(on bool) Option {
	return func(o *dispatcherOptions) { o.recover = on }
}

// NewDispatcher creates a Dispatcher with an empty handler table.
// activator is called after every Execute, whatever happened.
func NewDispatcher[C any](activator Activator, opts ...Option) *Dispatcher[C] {
	o := dispatcherOptions{
		name:     DefaultHandlerName,
		reporter: LogReporter{},
		recover:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher[C]{
		name:      o.name,
		request:   new(Request),
		table:     make(map[RequestId]*Command[C]),
		activator: activator,
		reporter:  o.reporter,
		recover:   o.recover,
	}
}

// GetName identifies this handler to the host.
func (d *Dispatcher[C]) GetName() string {
	return d.name
}

// Request returns the mailbox this dispatcher drains.
func (d *Dispatcher[C]) Request() *Request {
	return d.request
}

// Register binds id to cmd. It must be called before the host loop starts
// delivering signals; it is not safe to call concurrently with Execute.
func (d *Dispatcher[C]) Register(id RequestId, cmd Command[C]) error {
	if d.sealed.Load() {
		return ErrRegistrationClosed
	}
	if id == None {
		return ErrReservedRequest
	}
	if cmd.RunE == nil {
		return ErrNilCommand
	}
	if utils.IsEmptyString(cmd.Name) {
		return ErrEmptyCommandName
	}
	if _, ok := d.table[id]; ok {
		return ErrDuplicateRequest
	}
	c := cmd
	d.table[id] = &c
	return nil
}

// RegisterFunc is Register for a bare function.
func (d *Dispatcher[C]) RegisterFunc(id RequestId, name string, fn func(hc C) error) error {
	return d.Register(id, Command[C]{Name: name, RunE: fn})
}

// Seal makes the handler table read-only. Execute seals it on first use.
func (d *Dispatcher[C]) Seal() {
	d.sealed.Store(true)
}

// Lookup returns the name registered for id.
func (d *Dispatcher[C]) Lookup(id RequestId) (string, bool) {
	c, ok := d.table[id]
	if !ok {
		return "", false
	}
	return c.Name, true
}

// Execute handles one host-loop signal.
func (d *Dispatcher[C]) Execute(hc C) {
	d.sealed.Store(true)
	defer d.finalize()

	id := d.request.Take()
	if id == None {
		d.stale.Add(1)
		return
	}

	cmd, ok := d.table[id]
	if !ok {
		d.unknown.Add(1)
		Log.WithField("request", id).Warn("unregistered request")
		d.reporter.Warn(warningTitle, noValidRequest)
		return
	}

	d.dispatched.Add(1)
	entry := Log.WithFields(logrus.Fields{
		"request": id,
		"command": cmd.Name,
		"trace":   uuid.NewString(),
	})
	entry.Debug("dispatching")

	var err error
	if d.recover {
		err = cmd.Execute(hc)
	} else {
		err = cmd.execute(hc)
	}
	if err != nil {
		d.failed.Add(1)
		herr := &HandlerError{Request: id, Name: cmd.Name, Err: err}
		entry.WithError(err).Error("command failed")
		d.reporter.Fail(errorTitle, herr)
		return
	}
	entry.Debug("done")
}

// finalize keeps the UI alive after a request, whatever the outcome.
func (d *Dispatcher[C]) finalize() {
	if d.activator != nil {
		d.activator.WakeWindowUp()
	}
}

// Stats returns a snapshot of the counters.
func (d *Dispatcher[C]) Stats() Stats {
	return Stats{
		Dispatched: d.dispatched.Load(),
		Stale:      d.stale.Load(),
		Unknown:    d.unknown.Load(),
		Failed:     d.failed.Load(),
	}
}

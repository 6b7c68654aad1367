package hostbridge

// Signal is the host's wake primitive. Raise asks the host loop to run the
// associated EventHandler on its own schedule; Close releases it.
type Signal interface {
	Raise() error
	Close() error
}

// EventHandler is what the host loop calls back into once a Signal is raised.
type EventHandler[C any] interface {
	Execute(hc C)
	GetName() string
}

// SignalFactory acquires a Signal bound to a handler.
type SignalFactory[C any] interface {
	NewSignal(h EventHandler[C]) (Signal, error)
}

// Surface is the UI side a Bridge controls.
type Surface interface {
	SetEnabled(enabled bool)
	Focus()
}

// Activator brings the UI back after a dispatch.
type Activator interface {
	WakeWindowUp()
}

// ActivatorFunc adapts a plain function to Activator.
type ActivatorFunc func()

func (f ActivatorFunc) WakeWindowUp() {
	if f != nil {
		f()
	}
}

// Reporter is the host-native way of telling the user something went wrong.
type Reporter interface {
	Warn(title, message string)
	Fail(title string, err error)
}

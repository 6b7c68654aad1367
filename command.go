package hostbridge

import (
	"fmt"
)

// Command is one operation a Dispatcher can run against the host context.
type Command[C any] struct {
	Name string
	RunE func(hc C) error
}

// Execute runs the command. A panic inside RunE is turned into an error
// wrapping ErrHandlerPanic.
func (c *Command[C]) Execute(hc C) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	err = c.execute(hc)
	return
}

func (c *Command[C]) execute(hc C) error {
	return c.RunE(hc)
}

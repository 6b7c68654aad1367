// Package cmd is the host-side entry command that opens the request window.
package cmd

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/seoyhaein/hostbridge"
)

// ErrNoLauncher means the command was bound before the application started.
var ErrNoLauncher = errors.New("entry command has no application")

// Result is what the host is told about an entry command.
type Result int

const (
	Succeeded Result = iota
	Failed
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	case Cancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// Launcher opens or reuses the request window.
type Launcher interface {
	ShowWindow(open hostbridge.SurfaceFunc) (*hostbridge.Bridge, error)
}

// ExternalCommand is bound to the host's ribbon button.
type ExternalCommand struct {
	Launcher Launcher
	Open     hostbridge.SurfaceFunc
	// Reporter shows launch failures to the user; nil only logs them.
	Reporter hostbridge.Reporter
}

// Execute opens the window. On failure the returned message is what the host
// shows next to the Failed result.
func (c *ExternalCommand) Execute() (Result, string) {
	if c.Launcher == nil {
		return c.fail(ErrNoLauncher)
	}
	b, err := c.Launcher.ShowWindow(c.Open)
	if err != nil {
		if errors.Is(err, hostbridge.ErrShutdown) {
			hostbridge.Log.WithError(err).Info("window not opened, application is shutting down")
			return Cancelled, err.Error()
		}
		return c.fail(err)
	}
	hostbridge.Log.WithField("bridge", b.ID()).Debug("window shown")
	return Succeeded, ""
}

func (c *ExternalCommand) fail(err error) (Result, string) {
	hostbridge.Log.WithFields(logrus.Fields{"result": Failed}).WithError(err).Error("entry command failed")
	if c.Reporter != nil {
		c.Reporter.Fail("Error!", err)
	}
	return Failed, err.Error()
}

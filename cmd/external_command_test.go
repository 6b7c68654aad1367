package cmd

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/commands"
	"github.com/seoyhaein/hostbridge/host"
)

func TestMain(m *testing.M) {
	hostbridge.Log.SetOutput(io.Discard)
	host.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type nopSurface struct{}

func (nopSurface) SetEnabled(bool) {}
func (nopSurface) Focus()          {}

type failReporter struct{ errs []error }

func (r *failReporter) Warn(string, string)      {}
func (r *failReporter) Fail(_ string, err error) { r.errs = append(r.errs, err) }

func newApp(t *testing.T) *hostbridge.Application[*host.Session] {
	t.Helper()
	loop := host.NewLoop(host.NewSession(host.SampleDocument()), 4)
	app := hostbridge.NewApplication[*host.Session](loop)
	require.NoError(t, app.OnStartup(commands.Register))
	return app
}

func open(*hostbridge.Bridge) (hostbridge.Surface, error) {
	return nopSurface{}, nil
}

func TestExternalCommand_Succeeds(t *testing.T) {
	app := newApp(t)
	c := &ExternalCommand{Launcher: app, Open: open}

	res, msg := c.Execute()
	require.Equal(t, Succeeded, res)
	require.Empty(t, msg)

	first := app.Bridge()
	res, _ = c.Execute()
	require.Equal(t, Succeeded, res)
	require.Same(t, first, app.Bridge())
}

func TestExternalCommand_SurfaceFailure(t *testing.T) {
	app := newApp(t)
	rep := &failReporter{}
	boom := errors.New("no display")
	c := &ExternalCommand{
		Launcher: app,
		Open:     func(*hostbridge.Bridge) (hostbridge.Surface, error) { return nil, boom },
		Reporter: rep,
	}

	res, msg := c.Execute()
	require.Equal(t, Failed, res)
	require.Contains(t, msg, "no display")
	require.Len(t, rep.errs, 1)
	require.ErrorIs(t, rep.errs[0], boom)
	require.Nil(t, app.Bridge())
}

func TestExternalCommand_AfterShutdown(t *testing.T) {
	app := newApp(t)
	require.NoError(t, app.OnShutdown())

	rep := &failReporter{}
	res, _ := (&ExternalCommand{Launcher: app, Open: open, Reporter: rep}).Execute()
	require.Equal(t, Cancelled, res)
	require.Empty(t, rep.errs)
}

func TestExternalCommand_NoLauncher(t *testing.T) {
	res, msg := (&ExternalCommand{}).Execute()
	require.Equal(t, Failed, res)
	require.Equal(t, ErrNoLauncher.Error(), msg)
	require.Equal(t, "Failed", res.String())
}

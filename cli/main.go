package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/cmd"
	"github.com/seoyhaein/hostbridge/commands"
	"github.com/seoyhaein/hostbridge/config"
	"github.com/seoyhaein/hostbridge/host"
	"github.com/seoyhaein/hostbridge/surface/fyneui"
	"github.com/seoyhaein/hostbridge/surface/tui"
)

const appID = "io.github.seoyhaein.hostbridge"

// window is what each surface looks like to main.
type window interface {
	hostbridge.Surface
	hostbridge.Reporter
	host.Dialogs
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	doc, err := openDocument(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.UI.Surface {
	case config.SurfaceFyne:
		return runFyne(ctx, cfg, doc)
	default:
		return runTUI(ctx, cfg, doc)
	}
}

func setupLogging(cfg config.Config) (func(), error) {
	loggers := []*logrus.Logger{hostbridge.Log, host.Log}
	if err := cfg.ApplyLogging(loggers...); err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	closeLog := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { _ = f.Close() }
	case cfg.UI.Surface == config.SurfaceTUI:
		// the terminal belongs to the window
		out = io.Discard
	}
	for _, l := range loggers {
		l.SetOutput(out)
	}
	return closeLog, nil
}

func openDocument(cfg config.Config) (*host.Document, error) {
	if cfg.Document.Path == "" {
		return host.SampleDocument(), nil
	}
	return host.LoadDocument(cfg.Document.Path)
}

// start wires the host loop, the application and the entry command around w,
// and opens the window the way the host's ribbon button would.
func start(cfg config.Config, doc *host.Document, w window, bind func(b *hostbridge.Bridge)) (*host.Loop, *hostbridge.Application[*host.Session], error) {
	session := host.NewSession(doc, host.WithDialogs(w))
	if len(cfg.Document.Selection) > 0 {
		if err := session.Select(cfg.Document.Selection...); err != nil {
			return nil, nil, fmt.Errorf("initial selection: %w", err)
		}
	}
	loop := host.NewLoop(session, cfg.Host.QueueSize)

	application := hostbridge.NewApplication[*host.Session](loop, hostbridge.WithReporter(w))
	if err := application.OnStartup(commands.Register); err != nil {
		return nil, nil, err
	}

	entry := &cmd.ExternalCommand{
		Launcher: application,
		Reporter: w,
		Open: func(b *hostbridge.Bridge) (hostbridge.Surface, error) {
			bind(b)
			return w, nil
		},
	}
	if res, msg := entry.Execute(); res != cmd.Succeeded {
		return nil, nil, fmt.Errorf("%s: %s", res, msg)
	}
	return loop, application, nil
}

// shutdown tears down in host order: the application lets go of its signal
// before the loop stops.
func shutdown(loop *host.Loop, application *hostbridge.Application[*host.Session]) {
	if err := application.OnShutdown(); err != nil {
		hostbridge.Log.WithError(err).Warn("application shutdown")
	}
	if err := loop.Stop(); err != nil && !errors.Is(err, host.ErrLoopClosed) {
		host.Log.WithError(err).Warn("host loop stop")
	}
}

func runTUI(ctx context.Context, cfg config.Config, doc *host.Document) error {
	view := tui.NewView()
	var prog *tea.Program
	loop, application, err := start(cfg, doc, view, func(b *hostbridge.Bridge) {
		m := tui.New(b, commands.Catalog(),
			tui.WithTitle(cfg.UI.Title),
			tui.WithDisableWhileBusy(cfg.UI.DisableWhileBusy),
		)
		prog = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		view.Attach(prog)
	})
	if err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := loop.Run(egCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		defer shutdown(loop, application)
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return eg.Wait()
}

func runFyne(ctx context.Context, cfg config.Config, doc *host.Document) error {
	a := app.NewWithID(appID)
	w := fyneui.New(a, cfg.UI.Title, commands.Catalog(), cfg.UI.DisableWhileBusy)
	loop, application, err := start(cfg, doc, w, func(b *hostbridge.Bridge) { w.Bind(b) })
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := loop.Run(egCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	stopped := make(chan struct{})
	eg.Go(func() error {
		quitOnCancel(egCtx, stopped, a.Quit)
		return nil
	})

	// fyne must own the main goroutine
	w.FyneWindow().ShowAndRun()
	close(stopped)
	shutdown(loop, application)
	cancel()
	return eg.Wait()
}

// quitOnCancel calls quit when ctx ends first. Once stopped is closed the app
// has already left its run loop and quit is skipped.
func quitOnCancel(ctx context.Context, stopped <-chan struct{}, quit func()) {
	select {
	case <-ctx.Done():
	case <-stopped:
		return
	}
	select {
	case <-stopped:
	default:
		quit()
	}
}

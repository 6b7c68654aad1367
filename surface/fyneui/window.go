// Package fyneui is a desktop window for posting requests to the host loop.
package fyneui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/commands"
)

// Poster is the side of the bridge the window drives.
type Poster interface {
	Post(id hostbridge.RequestId) error
	Deactivate()
	Reactivate()
}

// Window is a modeless command window. Calls coming from the host side are
// marshalled onto the fyne goroutine.
type Window struct {
	win        fyne.Window
	poster     Poster
	buttons    []*widget.Button
	status     *widget.Label
	deactivate bool
}

// New builds the window. Call Bind before showing it.
func New(a fyne.App, title string, items []commands.Info, deactivate bool) *Window {
	w := &Window{
		win:        a.NewWindow(title),
		status:     widget.NewLabel("Ready"),
		deactivate: deactivate,
	}

	box := container.NewVBox()
	for _, it := range items {
		id, label := it.ID, it.Title
		btn := widget.NewButton(fmt.Sprintf("%s: %s", it.Title, it.Label), func() {
			w.post(id, label)
		})
		w.buttons = append(w.buttons, btn)
		box.Add(btn)
	}
	box.Add(widget.NewSeparator())
	box.Add(w.status)

	w.win.SetContent(container.NewPadded(box))
	w.win.Resize(fyne.NewSize(360, 0))
	return w
}

// Bind connects the buttons to p.
func (w *Window) Bind(p Poster) {
	w.poster = p
}

// FyneWindow exposes the underlying window for ShowAndRun and close hooks.
func (w *Window) FyneWindow() fyne.Window {
	return w.win
}

func (w *Window) post(id hostbridge.RequestId, label string) {
	p := w.poster
	if p == nil {
		return
	}
	if w.deactivate {
		p.Deactivate()
	}
	if err := p.Post(id); err != nil {
		if w.deactivate {
			p.Reactivate()
		}
		w.setStatus(fmt.Sprintf("post %s failed: %v", label, err))
		return
	}
	w.setStatus("posted " + label)
}

func (w *Window) setStatus(text string) {
	fyne.Do(func() { w.status.SetText(text) })
}

func (w *Window) SetEnabled(enabled bool) {
	fyne.Do(func() {
		for _, b := range w.buttons {
			if enabled {
				b.Enable()
			} else {
				b.Disable()
			}
		}
	})
}

func (w *Window) Focus() {
	fyne.Do(func() { w.win.RequestFocus() })
}

// Show lets the host session use the window as its message box.
func (w *Window) Show(title, message string) {
	w.Warn(title, message)
}

func (w *Window) Warn(title, message string) {
	fyne.Do(func() { dialog.ShowInformation(title, message, w.win) })
}

func (w *Window) Fail(title string, err error) {
	fyne.Do(func() { dialog.ShowInformation(title, err.Error(), w.win) })
}

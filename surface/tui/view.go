package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// View forwards callbacks from the host side into a running program.
// Messages sent before Attach are dropped.
type View struct {
	prog atomic.Pointer[tea.Program]
}

func NewView() *View {
	return &View{}
}

// Attach sets the program messages go to.
func (v *View) Attach(p *tea.Program) {
	v.prog.Store(p)
}

func (v *View) send(msg tea.Msg) {
	if p := v.prog.Load(); p != nil {
		p.Send(msg)
	}
}

func (v *View) SetEnabled(enabled bool) {
	v.send(EnabledMsg{Enabled: enabled})
}

func (v *View) Focus() {
	v.send(FocusMsg{})
}

func (v *View) Warn(title, message string) {
	v.send(NoticeMsg{Title: title, Text: message})
}

func (v *View) Fail(title string, err error) {
	v.send(NoticeMsg{Title: title, Text: err.Error(), Err: true})
}

// Show lets the host session use the window as its message box.
func (v *View) Show(title, message string) {
	v.send(NoticeMsg{Title: title, Text: message})
}

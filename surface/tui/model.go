// Package tui is a terminal window for posting requests to the host loop.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/commands"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorMuted   = lipgloss.Color("#6c7086")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorWarn    = lipgloss.Color("#f9e2af")
	colorError   = lipgloss.Color("#f38ba8")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	itemStyle     = lipgloss.NewStyle().Foreground(colorText)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	disabledStyle = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle     = lipgloss.NewStyle().Foreground(colorSubtext)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// Poster is the side of the bridge the window drives.
type Poster interface {
	Post(id hostbridge.RequestId) error
	Deactivate()
	Reactivate()
}

// EnabledMsg turns command input on or off.
type EnabledMsg struct{ Enabled bool }

// FocusMsg brings the window forward.
type FocusMsg struct{}

// NoticeMsg is something the host wants the user to see.
type NoticeMsg struct {
	Title string
	Text  string
	Err   bool
}

type postedMsg struct {
	id  hostbridge.RequestId
	err error
}

// Model is the bubbletea model of the command window.
type Model struct {
	title      string
	items      []commands.Info
	poster     Poster
	deactivate bool

	cursor  int
	enabled bool
	focused int
	status  string
	notice  *NoticeMsg
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the window heading.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithDisableWhileBusy deactivates the window before every post; the host
// loop reactivates it when the request has run.
func WithDisableWhileBusy(on bool) Option {
	return func(m *Model) { m.deactivate = on }
}

// New creates a window listing items.
func New(p Poster, items []commands.Info, opts ...Option) Model {
	m := Model{
		title:   "Plugin Template",
		items:   items,
		poster:  p,
		enabled: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case EnabledMsg:
		m.enabled = msg.Enabled
	case FocusMsg:
		m.focused++
	case NoticeMsg:
		n := msg
		m.notice = &n
	case postedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("post %s failed: %v", m.label(msg.id), msg.err)
		} else {
			m.status = fmt.Sprintf("posted %s", m.label(msg.id))
		}
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil
	case "x":
		m.notice = nil
		return m, nil
	case "enter":
		if len(m.items) == 0 {
			return m, nil
		}
		return m.post(m.items[m.cursor].ID)
	}
	if len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r >= '1' && r <= '9' {
			i := int(r - '1')
			if i < len(m.items) {
				m.cursor = i
				return m.post(m.items[i].ID)
			}
		}
	}
	return m, nil
}

// post runs off the UI goroutine; the bridge sends messages back into the program.
func (m Model) post(id hostbridge.RequestId) (tea.Model, tea.Cmd) {
	if !m.enabled || m.poster == nil {
		return m, nil
	}
	m.notice = nil
	p, deactivate := m.poster, m.deactivate
	return m, func() tea.Msg {
		if deactivate {
			p.Deactivate()
		}
		err := p.Post(id)
		if err != nil && deactivate {
			p.Reactivate()
		}
		return postedMsg{id: id, err: err}
	}
}

func (m Model) label(id hostbridge.RequestId) string {
	for _, it := range m.items {
		if it.ID == id {
			return it.Title
		}
	}
	return id.String()
}

// Focused counts how often the host brought the window forward.
func (m Model) Focused() int {
	return m.focused
}

// Enabled reports whether the window accepts commands.
func (m Model) Enabled() bool {
	return m.enabled
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, it := range m.items {
		line := fmt.Sprintf("%d. %s  %s", i+1, it.Title, it.Label)
		switch {
		case !m.enabled:
			line = disabledStyle.Render("  " + line)
		case i == m.cursor:
			line = selectedStyle.Render("> " + line)
		default:
			line = itemStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.notice != nil {
		style := warnStyle
		if m.notice.Err {
			style = errorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.notice.Title + ": " + m.notice.Text))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if !m.enabled {
		b.WriteString(disabledStyle.Render("waiting for host..."))
	} else if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-9/enter: run  up/down: move  x: dismiss  q: quit"))
	return frameStyle.Render(b.String())
}

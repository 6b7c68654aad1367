package tui

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/commands"
)

type fakePoster struct {
	mu     sync.Mutex
	calls  []string
	posted []hostbridge.RequestId
	err    error
}

func (f *fakePoster) Post(id hostbridge.RequestId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "post")
	f.posted = append(f.posted, id)
	return f.err
}

func (f *fakePoster) Deactivate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "deactivate")
}

func (f *fakePoster) Reactivate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "reactivate")
}

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	for i := 0; cmd != nil && i < 8; i++ {
		out := cmd()
		if out == nil {
			break
		}
		next, cmd = got.Update(out)
		got = next.(Model)
	}
	return got
}

func TestModel_DigitPostsRequest(t *testing.T) {
	p := &fakePoster{}
	m := New(p, commands.Catalog())

	m = apply(t, m, key("3"))
	require.Equal(t, []hostbridge.RequestId{commands.HiddenCount}, p.posted)
	require.Equal(t, []string{"post"}, p.calls)
	require.Contains(t, m.View(), "posted Command 03")
}

func TestModel_EnterPostsCursor(t *testing.T) {
	p := &fakePoster{}
	m := New(p, commands.Catalog())

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []hostbridge.RequestId{commands.MonitoringCount}, p.posted)

	// out of range digits do nothing
	m = apply(t, m, key("9"))
	require.Len(t, p.posted, 1)
}

func TestModel_DisabledIgnoresInput(t *testing.T) {
	p := &fakePoster{}
	m := New(p, commands.Catalog())

	m = apply(t, m, EnabledMsg{Enabled: false})
	require.False(t, m.Enabled())
	m = apply(t, m, key("1"))
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, p.posted)
	require.Contains(t, m.View(), "waiting for host")

	m = apply(t, m, EnabledMsg{Enabled: true})
	m = apply(t, m, key("1"))
	require.Equal(t, []hostbridge.RequestId{commands.SelectionCount}, p.posted)
}

func TestModel_DisableWhileBusy(t *testing.T) {
	p := &fakePoster{}
	m := New(p, commands.Catalog(), WithDisableWhileBusy(true))

	apply(t, m, key("2"))
	require.Equal(t, []string{"deactivate", "post"}, p.calls)

	p = &fakePoster{err: hostbridge.ErrBridgeClosed}
	m = New(p, commands.Catalog(), WithDisableWhileBusy(true))
	m = apply(t, m, key("2"))
	require.Equal(t, []string{"deactivate", "post", "reactivate"}, p.calls)
	require.Contains(t, m.View(), "post Command 02 failed")
}

func TestModel_Notices(t *testing.T) {
	m := New(&fakePoster{}, commands.Catalog(), WithTitle("Sample"))
	require.Contains(t, m.View(), "Sample")

	m = apply(t, m, NoticeMsg{Title: "Warning", Text: "No valid request has been taken"})
	require.Contains(t, m.View(), "Warning: No valid request has been taken")

	m = apply(t, m, key("x"))
	require.NotContains(t, m.View(), "Warning")

	m = apply(t, m, NoticeMsg{Title: "Error!", Text: errors.New("boom").Error(), Err: true})
	require.Contains(t, m.View(), "Error!: boom")

	m = apply(t, m, FocusMsg{})
	require.Equal(t, 1, m.Focused())
}

func TestModel_Quit(t *testing.T) {
	m := New(&fakePoster{}, nil)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	// enter with no items is a no-op
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
}

func TestView_DropsBeforeAttach(t *testing.T) {
	v := NewView()
	var s hostbridge.Surface = v
	var r hostbridge.Reporter = v
	s.SetEnabled(false)
	s.Focus()
	r.Warn("Warning", "x")
	r.Fail("Error!", errors.New("y"))
}

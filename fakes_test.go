package hostbridge

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testHost struct {
	ran []RequestId
}

type fakeSignal struct {
	mu       sync.Mutex
	raised   int
	closed   int
	raiseErr error
	closeErr error
	handler  EventHandler[*testHost]
}

func (s *fakeSignal) Raise() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raiseErr != nil {
		return s.raiseErr
	}
	s.raised++
	return nil
}

func (s *fakeSignal) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return s.closeErr
}

func (s *fakeSignal) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raised, s.closed
}

type fakeFactory struct {
	signals []*fakeSignal
	err     error
}

func (f *fakeFactory) NewSignal(h EventHandler[*testHost]) (Signal, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeSignal{handler: h}
	f.signals = append(f.signals, s)
	return s, nil
}

type fakeSurface struct {
	mu      sync.Mutex
	enabled []bool
	focused int
}

func (s *fakeSurface) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = append(s.enabled, enabled)
}

func (s *fakeSurface) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused++
}

type fakeReporter struct {
	warnings []string
	failures []error
}

func (r *fakeReporter) Warn(_, message string) {
	r.warnings = append(r.warnings, message)
}

func (r *fakeReporter) Fail(_ string, err error) {
	r.failures = append(r.failures, err)
}

type countingActivator struct {
	n int
}

func (a *countingActivator) WakeWindowUp() { a.n++ }

var errBoom = errors.New("boom")

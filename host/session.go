package host

import (
	"fmt"

	"github.com/google/uuid"
)

// Dialogs is the host's message box.
type Dialogs interface {
	Show(title, message string)
}

// Picker lets the user pick one element interactively.
type Picker interface {
	PickElement(doc *Document, selection []int64) (int64, error)
}

// Session is the state the host loop owns and hands to every request.
// It must only be touched from the loop goroutine.
type Session struct {
	ID string

	doc       *Document
	selection []int64
	dialogs   Dialogs
	picker    Picker
}

// SessionOption configures a Session.
type SessionOption func(*Session)

func WithDialogs(d Dialogs) SessionOption {
	return func(s *Session) { s.dialogs = d }
}

func WithPicker(p Picker) SessionOption {
	return func(s *Session) { s.picker = p }
}

// NewSession creates a session with doc active. doc may be nil.
func NewSession(doc *Document, opts ...SessionOption) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		doc:     doc,
		dialogs: logDialogs{},
		picker:  SelectionPicker{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveDocument returns the open document.
func (s *Session) ActiveDocument() (*Document, error) {
	if s.doc == nil {
		return nil, ErrNoActiveDocument
	}
	return s.doc, nil
}

// Open replaces the active document and clears the selection.
func (s *Session) Open(doc *Document) {
	s.doc = doc
	s.selection = nil
}

// Select replaces the selection. Every id must exist in the active document.
func (s *Session) Select(ids ...int64) error {
	doc, err := s.ActiveDocument()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := doc.Element(id); !ok {
			return fmt.Errorf("%w: %d", ErrElementNotFound, id)
		}
	}
	s.selection = append([]int64(nil), ids...)
	return nil
}

// Selection returns a copy of the selected ids.
func (s *Session) Selection() []int64 {
	return append([]int64(nil), s.selection...)
}

// ShowDialog tells the user something through the host.
func (s *Session) ShowDialog(title, message string) {
	s.dialogs.Show(title, message)
}

// PickElement asks the user for one element of the active document.
func (s *Session) PickElement() (Element, error) {
	doc, err := s.ActiveDocument()
	if err != nil {
		return Element{}, err
	}
	id, err := s.picker.PickElement(doc, s.Selection())
	if err != nil {
		return Element{}, err
	}
	e, ok := doc.Element(id)
	if !ok {
		return Element{}, fmt.Errorf("%w: %d", ErrElementNotFound, id)
	}
	return e, nil
}

// SelectionPicker picks the first selected element, or cancels when nothing is selected.
type SelectionPicker struct{}

func (SelectionPicker) PickElement(_ *Document, selection []int64) (int64, error) {
	if len(selection) == 0 {
		return 0, ErrPickCancelled
	}
	return selection[0], nil
}

type logDialogs struct{}

func (logDialogs) Show(title, message string) {
	Log.WithField("title", title).Info(message)
}

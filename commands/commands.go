// Package commands holds the requests the sample window can post.
package commands

import (
	"fmt"

	"github.com/seoyhaein/hostbridge"
	"github.com/seoyhaein/hostbridge/host"
)

const (
	SelectionCount hostbridge.RequestId = iota + 1
	MonitoringCount
	HiddenCount
	MaterialCount
)

// Info describes a command for a UI surface.
type Info struct {
	ID    hostbridge.RequestId
	Title string
	Label string
}

var catalog = []Info{
	{SelectionCount, "Command 01", "Count selected elements"},
	{MonitoringCount, "Command 02", "Count elements monitoring others"},
	{HiddenCount, "Command 03", "Count elements hidden in view"},
	{MaterialCount, "Command 04", "Count materials of a picked element"},
}

// Catalog lists every command in request order.
func Catalog() []Info {
	return append([]Info(nil), catalog...)
}

// Register binds every command to d.
func Register(d *hostbridge.Dispatcher[*host.Session]) error {
	run := map[hostbridge.RequestId]func(*host.Session, string) error{
		SelectionCount:  countSelection,
		MonitoringCount: countMonitoring,
		HiddenCount:     countHidden,
		MaterialCount:   countMaterials,
	}
	for _, info := range catalog {
		info := info
		fn := run[info.ID]
		err := d.RegisterFunc(info.ID, info.Title, func(s *host.Session) error {
			return fn(s, info.Title)
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", info.Title, err)
		}
	}
	return nil
}

func countSelection(s *host.Session, title string) error {
	if _, err := s.ActiveDocument(); err != nil {
		return err
	}
	n := len(s.Selection())
	s.ShowDialog(title, fmt.Sprintf("There are %d elements selected in this project.", n))
	return nil
}

func countMonitoring(s *host.Session, title string) error {
	doc, err := s.ActiveDocument()
	if err != nil {
		return err
	}
	n := 0
	for _, e := range doc.Instances() {
		if doc.IsMonitoringLocalElement(e) {
			n++
		}
	}
	s.ShowDialog(title, fmt.Sprintf("There are %d elements monitoring other elements.", n))
	return nil
}

func countHidden(s *host.Session, title string) error {
	doc, err := s.ActiveDocument()
	if err != nil {
		return err
	}
	n := 0
	for _, e := range doc.Instances() {
		if e.IsHidden(doc.ActiveView) {
			n++
		}
	}
	s.ShowDialog(title, fmt.Sprintf("There are %d elements currently hidden in this view.", n))
	return nil
}

func countMaterials(s *host.Session, title string) error {
	s.ShowDialog(title, "Please, select one element in your model.")
	e, err := s.PickElement()
	if err != nil {
		return fmt.Errorf("pick element: %w", err)
	}
	s.ShowDialog(title, fmt.Sprintf("There are %d materials used in this element.", len(e.Materials)))
	return nil
}

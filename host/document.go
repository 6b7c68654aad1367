package host

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/seoyhaein/utils"
)

//go:embed sample.toml
var sampleDocument []byte

// Element is one object in a document.
type Element struct {
	ID        int64    `toml:"id"`
	Name      string   `toml:"name"`
	Category  string   `toml:"category"`
	IsType    bool     `toml:"is_type"`
	HiddenIn  []string `toml:"hidden_in"`
	Monitors  []int64  `toml:"monitors"`
	Materials []string `toml:"materials"`
}

// IsHidden reports whether the element is hidden in view.
func (e Element) IsHidden(view string) bool {
	for _, v := range e.HiddenIn {
		if v == view {
			return true
		}
	}
	return false
}

// Document is the host-owned model the commands read.
type Document struct {
	Title      string    `toml:"title"`
	ActiveView string    `toml:"active_view"`
	Elements   []Element `toml:"element"`

	index map[int64]int
}

// ParseDocument decodes a TOML document.
func ParseDocument(data []byte) (*Document, error) {
	doc := new(Document)
	if err := toml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if err := doc.build(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadDocument reads a TOML document from path.
func LoadDocument(path string) (*Document, error) {
	if utils.IsEmptyString(path) {
		return nil, fmt.Errorf("document path is empty")
	}
	doc := new(Document)
	if _, err := toml.DecodeFile(path, doc); err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	if err := doc.build(); err != nil {
		return nil, err
	}
	return doc, nil
}

// SampleDocument returns the built-in demo model.
func SampleDocument() *Document {
	doc, err := ParseDocument(sampleDocument)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d *Document) build() error {
	if utils.IsEmptyString(d.Title) {
		d.Title = "Untitled"
	}
	d.index = make(map[int64]int, len(d.Elements))
	for i, e := range d.Elements {
		if _, ok := d.index[e.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateElement, e.ID)
		}
		d.index[e.ID] = i
	}
	return nil
}

// Element looks an element up by id.
func (d *Document) Element(id int64) (Element, bool) {
	i, ok := d.index[id]
	if !ok {
		return Element{}, false
	}
	return d.Elements[i], true
}

// Instances returns every element that is not a type.
func (d *Document) Instances() []Element {
	return d.Filter(func(e Element) bool { return !e.IsType })
}

// Filter returns the elements pred accepts, in document order.
func (d *Document) Filter(pred func(Element) bool) []Element {
	var out []Element
	for _, e := range d.Elements {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// IsMonitoringLocalElement reports whether e monitors an element of this document.
func (d *Document) IsMonitoringLocalElement(e Element) bool {
	for _, id := range e.Monitors {
		if _, ok := d.index[id]; ok {
			return true
		}
	}
	return false
}

// Package board loads, edits and saves EAGLE board files (.brd). A board is a
// best-effort mirror of schematic edits keyed by element name.
package board

import (
	"io"

	"github.com/beevik/etree"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

// Section is the element that marks a board document.
const Section = "board"

// Board is a loaded board document. The zero value from New is empty.
type Board struct {
	Elements map[string]*Element

	doc *etree.Document
}

// New returns an empty board with no document.
func New() *Board {
	return &Board{Elements: make(map[string]*Element)}
}

// ParseFile reads and parses a board file
func ParseFile(filename string) (*Board, error) {
	b := New()
	if err := b.Load(filename); err != nil {
		return nil, err
	}
	return b, nil
}

// Parse reads and parses a board from an io.Reader
func Parse(r io.Reader) (*Board, error) {
	doc, err := eagle.ReadDocument(r, Section)
	if err != nil {
		return nil, &eagle.LoadError{Err: err}
	}
	b := New()
	if err := b.build(doc); err != nil {
		return nil, &eagle.LoadError{Err: err}
	}
	return b, nil
}

// Load replaces the board's contents with the file at filename. On error the
// previous contents are kept.
func (b *Board) Load(filename string) error {
	doc, err := eagle.ReadDocumentFile(filename, Section)
	if err != nil {
		return &eagle.LoadError{Path: filename, Err: err}
	}
	if err := b.build(doc); err != nil {
		return &eagle.LoadError{Path: filename, Err: err}
	}
	return nil
}

func (b *Board) build(doc *etree.Document) error {
	elements := make(map[string]*Element)
	for _, el := range doc.Root().FindElements(".//element") {
		e, err := newElement(el)
		if err != nil {
			return err
		}
		if _, exists := elements[e.Name]; exists {
			return eagle.Duplicate("board element %q", e.Name)
		}
		elements[e.Name] = e
	}

	b.doc = doc
	b.Elements = elements
	return nil
}

// Clear drops the document and all elements.
func (b *Board) Clear() {
	b.doc = nil
	b.Elements = make(map[string]*Element)
}

// IsEmpty reports whether the board has no elements. Callers check it before
// saving.
func (b *Board) IsEmpty() bool {
	return len(b.Elements) == 0
}

// Element returns the element with the given name, or nil.
func (b *Board) Element(name string) *Element {
	return b.Elements[name]
}

// SetAttribute mirrors an attribute write onto the named element. An unknown
// element is not an error: schematic-only parts have no board counterpart.
// ok reports whether the element exists.
func (b *Board) SetAttribute(elementName, name, value string) (outcome eagle.WriteOutcome, ok bool) {
	e, ok := b.Elements[elementName]
	if !ok {
		return eagle.WriteUnchanged, false
	}
	return e.SetAttribute(name, value), true
}

// Save writes the document, including all edits, to filename.
func (b *Board) Save(filename string) error {
	return eagle.WriteDocument(b.doc, filename)
}

// WriteTo writes the document to w.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	if b.doc == nil {
		return 0, eagle.ErrNoDocument
	}
	return b.doc.WriteTo(w)
}

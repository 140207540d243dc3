package eagle

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// RootTag is the root element of every EAGLE XML file.
const RootTag = "eagle"

// ReadDocument parses an EAGLE XML document and checks that its root is
// <eagle> and that it contains a <section> element (schematic or board).
func ReadDocument(r io.Reader, section string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.ValidateInput = true
	// EAGLE escapes only &, < and > in text content.
	doc.WriteSettings.CanonicalText = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, Malformed("%v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, Malformed("no root element")
	}
	if root.Tag != RootTag {
		return nil, Malformed("expected root <%s>, got <%s>", RootTag, root.Tag)
	}
	if root.FindElement(".//"+section) == nil {
		return nil, Malformed("missing <%s> section", section)
	}
	return doc, nil
}

// ReadDocumentFile opens path and parses it with ReadDocument.
func ReadDocumentFile(path, section string) (*etree.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadDocument(file, section)
}

// WriteDocument serialises doc to path. The XML declaration, DOCTYPE and all
// untouched nodes are written as they were read.
func WriteDocument(doc *etree.Document, path string) error {
	if doc == nil {
		return ErrNoDocument
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialise %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

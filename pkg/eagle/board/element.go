package board

import (
	"github.com/beevik/etree"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

// Presentation fields added to attribute children created on a board
// element. The board editor expects them; they do not affect resolution.
const (
	AttributeLayer   = "27" // tValues
	AttributeDisplay = "off"
)

// Element is a placed package on the board. Board elements have no
// inheritance: their attributes are only their own.
type Element struct {
	Name string

	attrs eagle.Attributes
	node  *etree.Element
}

func newElement(el *etree.Element) (*Element, error) {
	name := el.SelectAttr("name")
	if name == nil {
		return nil, eagle.Malformed("element without name")
	}
	attrs := eagle.ExtractAttributes(el)
	// mirrors the part's required "value" key
	if v := el.SelectAttr(eagle.ValueField); v != nil {
		attrs[eagle.ValueField] = v.Value
	}
	return &Element{
		Name:  name.Value,
		attrs: attrs,
		node:  el,
	}, nil
}

// Attributes returns a copy of the element's attributes.
func (e *Element) Attributes() eagle.Attributes {
	return e.attrs.Clone()
}

// Attribute returns one attribute, "" when absent.
func (e *Element) Attribute(name string) string {
	return e.attrs.Get(name)
}

// SetAttribute changes an attribute of the element and its XML node. "value"
// is an XML attribute of <element>; other names reuse an existing attribute
// child or get a new one. There is nothing to inherit, so nothing is pruned.
func (e *Element) SetAttribute(name, value string) eagle.WriteOutcome {
	e.attrs[name] = value

	if name == eagle.ValueField {
		return eagle.SetField(e.node, name, value)
	}

	return eagle.SetAttributeNode(e.node, name, value,
		etree.Attr{Key: "layer", Value: AttributeLayer},
		etree.Attr{Key: "display", Value: AttributeDisplay},
	)
}

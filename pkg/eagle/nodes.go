package eagle

import (
	"strings"

	"github.com/beevik/etree"
)

// ValueField is the attribute that EAGLE stores as an XML attribute of the
// part or element node itself rather than as an <attribute> child.
const ValueField = "value"

// WriteOutcome describes what an attribute write did to the XML tree.
type WriteOutcome int

const (
	// WriteField set an XML attribute directly on the node.
	WriteField WriteOutcome = iota
	// WriteUpdated overwrote the value of an existing attribute child.
	WriteUpdated
	// WriteCreated appended a new attribute child.
	WriteCreated
	// WritePruned removed attribute children whose value was redundant.
	WritePruned
	// WriteUnchanged left the tree alone: the value was redundant and no
	// attribute child existed.
	WriteUnchanged
)

func (o WriteOutcome) String() string {
	switch o {
	case WriteField:
		return "field"
	case WriteUpdated:
		return "updated"
	case WriteCreated:
		return "created"
	case WritePruned:
		return "pruned"
	case WriteUnchanged:
		return "unchanged"
	}
	return "unknown"
}

// FindAttributeNodes returns the <attribute> elements below el named name,
// in document order.
func FindAttributeNodes(el *etree.Element, name string) []*etree.Element {
	var nodes []*etree.Element
	walkAttributes(el, func(node *etree.Element) {
		if node.SelectAttrValue("name", "") == name {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// SetAttributeNode writes value into the first <attribute> element named name
// below el. If there is none, a new child is appended to el carrying name,
// value and then any extra XML attributes, in that order.
func SetAttributeNode(el *etree.Element, name, value string, extra ...etree.Attr) WriteOutcome {
	if nodes := FindAttributeNodes(el, name); len(nodes) > 0 {
		nodes[0].CreateAttr("value", value)
		return WriteUpdated
	}

	node := etree.NewElement(AttributeTag)
	node.CreateAttr("name", name)
	node.CreateAttr("value", value)
	for _, a := range extra {
		node.CreateAttr(a.Key, a.Value)
	}
	appendIndented(el, node)
	return WriteCreated
}

// RemoveAttributeNodes detaches every <attribute> element named name below el
// and reports how many were removed. The indentation in front of each removed
// node goes with it.
func RemoveAttributeNodes(el *etree.Element, name string) int {
	nodes := FindAttributeNodes(el, name)
	for _, node := range nodes {
		parent := node.Parent()
		idx := node.Index()
		parent.RemoveChildAt(idx)
		if idx > 0 && isWhitespace(parent.Child[idx-1]) {
			parent.RemoveChildAt(idx - 1)
		}
	}
	return len(nodes)
}

// SetField sets an XML attribute on el itself.
func SetField(el *etree.Element, key, value string) WriteOutcome {
	el.CreateAttr(key, value)
	return WriteField
}

// appendIndented adds node as the last child element of el. When el's
// children are indented, node gets the same indentation as its siblings and
// stays in front of the whitespace that precedes el's closing tag.
func appendIndented(el *etree.Element, node *etree.Element) {
	n := len(el.Child)
	if n == 0 || !isWhitespace(el.Child[n-1]) {
		el.AddChild(node)
		return
	}

	indent := el.Child[n-1].(*etree.CharData).Data
	for i, tok := range el.Child {
		if _, ok := tok.(*etree.Element); ok {
			if i > 0 && isWhitespace(el.Child[i-1]) {
				indent = el.Child[i-1].(*etree.CharData).Data
			}
			break
		}
	}
	el.InsertChildAt(n-1, etree.NewText(indent))
	el.InsertChildAt(n, node)
}

func isWhitespace(tok etree.Token) bool {
	cd, ok := tok.(*etree.CharData)
	return ok && !cd.IsCData() && strings.TrimSpace(cd.Data) == ""
}

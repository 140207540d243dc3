package eagle

import (
	"sort"

	"github.com/beevik/etree"
)

// AttributeTag is the tag of attribute child nodes.
const AttributeTag = "attribute"

// Attributes maps attribute names to their string values. Values are never
// interpreted: "YES" and "yes" are different values.
type Attributes map[string]string

// Get returns the value for name, or "" when it is absent.
func (a Attributes) Get(name string) string {
	return a[name]
}

// Lookup returns the value for name and whether it is present.
func (a Attributes) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Clone returns a copy of a. The copy of a nil map is an empty map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Keys returns the attribute names in ascending order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Overlay merges layers into a fresh map. Later layers win on conflict.
func Overlay(layers ...Attributes) Attributes {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Attributes, n)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// ExtractAttributes collects every <attribute> element below el that has a
// name into a map, in document order, last one wins.
func ExtractAttributes(el *etree.Element) Attributes {
	attrs := make(Attributes)
	if el == nil {
		return attrs
	}
	walkAttributes(el, func(node *etree.Element) {
		name := node.SelectAttr("name")
		if name == nil {
			return
		}
		attrs[name.Value] = node.SelectAttrValue("value", "")
	})
	return attrs
}

func walkAttributes(el *etree.Element, fn func(*etree.Element)) {
	for _, child := range el.ChildElements() {
		if child.Tag == AttributeTag {
			fn(child)
		}
		walkAttributes(child, fn)
	}
}

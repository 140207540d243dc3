package schematic

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

const (
	// ExcludeFromBOM is the attribute that removes a part from the BOM.
	ExcludeFromBOM = "EXCLUDE_FROM_BOM"
	// ExcludeValue is the only value of ExcludeFromBOM that excludes a part.
	// The comparison is exact and case sensitive.
	ExcludeValue = "YES"
)

// requiredKeys are copied from the <part> node's XML attributes into the
// part's own attributes. The node value wins over an attribute child.
var requiredKeys = []string{"name", "value", "library", "deviceset", "device"}

// Part is a placed component instance. Its own attributes are the highest
// precedence layer over its Device.
type Part struct {
	Name   string
	Device *Device

	attrs  eagle.Attributes
	sheets []int
	node   *etree.Element
}

type deviceResolver func(deviceset, device string) (*Device, error)

func newPart(el *etree.Element, resolve deviceResolver) (*Part, error) {
	if el.SelectAttr("name") == nil {
		return nil, eagle.Malformed("part without name")
	}

	attrs := eagle.ExtractAttributes(el)
	for _, k := range requiredKeys {
		attrs[k] = el.SelectAttrValue(k, "")
	}

	dev, err := resolve(attrs["deviceset"], attrs["device"])
	if err != nil {
		return nil, err
	}

	return &Part{
		Name:   attrs["name"],
		Device: dev,
		attrs:  attrs,
		node:   el,
	}, nil
}

// Attributes returns the effective attributes: device set, then device, then
// the part's own overrides. The map is freshly built on every call.
func (p *Part) Attributes() eagle.Attributes {
	return eagle.Overlay(p.Device.Attributes(), p.attrs)
}

// Attribute returns one effective attribute. A name defined on no layer
// yields "".
func (p *Part) Attribute(name string) string {
	return p.Attributes().Get(name)
}

// LookupAttribute returns one effective attribute and whether any layer
// defines it.
func (p *Part) LookupAttribute(name string) (string, bool) {
	return p.Attributes().Lookup(name)
}

// OwnAttributes returns a copy of the part's own overrides, including the
// required keys.
func (p *Part) OwnAttributes() eagle.Attributes {
	return p.attrs.Clone()
}

// IncludeInBOM reports whether the part belongs in the BOM. Only an effective
// EXCLUDE_FROM_BOM of exactly "YES" excludes it.
func (p *Part) IncludeInBOM() bool {
	v, ok := p.LookupAttribute(ExcludeFromBOM)
	return !(ok && v == ExcludeValue)
}

// SetAttribute changes an attribute of the part and its XML node.
//
// "value" is written as an XML attribute of the <part> node. Any other name
// is stored as an <attribute> child, unless value equals what the device
// already provides: then existing children for name are removed so the file
// never carries a redundant override. Calling SetAttribute again with the
// same arguments leaves the document unchanged.
func (p *Part) SetAttribute(name, value string) eagle.WriteOutcome {
	p.attrs[name] = value

	if name == eagle.ValueField {
		return eagle.SetField(p.node, name, value)
	}

	if inherited, ok := p.Device.Attributes().Lookup(name); ok && inherited == value {
		if eagle.RemoveAttributeNodes(p.node, name) > 0 {
			return eagle.WritePruned
		}
		return eagle.WriteUnchanged
	}

	return eagle.SetAttributeNode(p.node, name, value)
}

// AddSheet records that the part appears on sheet n. Sheets stay sorted and
// unique; adding a known sheet is a no-op.
func (p *Part) AddSheet(n int) {
	i := sort.SearchInts(p.sheets, n)
	if i < len(p.sheets) && p.sheets[i] == n {
		return
	}
	p.sheets = append(p.sheets, 0)
	copy(p.sheets[i+1:], p.sheets[i:])
	p.sheets[i] = n
}

// Sheets returns the sheet numbers the part appears on, ascending.
func (p *Part) Sheets() []int {
	out := make([]int, len(p.sheets))
	copy(out, p.sheets)
	return out
}

// SheetsString renders the sheets as "1, 2, 3".
func (p *Part) SheetsString() string {
	parts := make([]string, len(p.sheets))
	for i, n := range p.sheets {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func (p *Part) String() string {
	return p.Name + " " + p.attrs["value"]
}

package schematic

import (
	"github.com/beevik/etree"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

// DeviceSet is a library template shared by its devices. Its attributes are
// the lowest precedence layer. Names are unique across the whole document.
type DeviceSet struct {
	Name    string
	Library string // enclosing <library>, informational only
	Devices map[string]*Device
	attrs   eagle.Attributes
}

// Device is a named variant of a DeviceSet (package and technology choice).
type Device struct {
	Name      string
	DeviceSet *DeviceSet
	attrs     eagle.Attributes
}

// Attributes returns a copy of the device set's own attributes.
func (ds *DeviceSet) Attributes() eagle.Attributes {
	return ds.attrs.Clone()
}

// Device returns the device with the given name, or nil.
func (ds *DeviceSet) Device(name string) *Device {
	return ds.Devices[name]
}

// Attributes returns the device's effective attributes: the device set's
// attributes overlaid by the device's own.
func (d *Device) Attributes() eagle.Attributes {
	return eagle.Overlay(d.DeviceSet.attrs, d.attrs)
}

// Attribute returns one effective attribute, "" when absent.
func (d *Device) Attribute(name string) string {
	return d.Attributes().Get(name)
}

// OwnAttributes returns a copy of the attributes declared on the device itself.
func (d *Device) OwnAttributes() eagle.Attributes {
	return d.attrs.Clone()
}

func newDeviceSet(el *etree.Element, library string) (*DeviceSet, error) {
	name := el.SelectAttr("name")
	if name == nil {
		return nil, eagle.Malformed("deviceset without name in library %q", library)
	}

	ds := &DeviceSet{
		Name:    name.Value,
		Library: library,
		Devices: make(map[string]*Device),
		// includes every device's attributes
		attrs: eagle.ExtractAttributes(el),
	}

	for _, devEl := range el.FindElements(".//device") {
		d := &Device{
			Name:      devEl.SelectAttrValue("name", ""),
			DeviceSet: ds,
			attrs:     eagle.ExtractAttributes(devEl),
		}
		if _, exists := ds.Devices[d.Name]; exists {
			return nil, eagle.Duplicate("device %q in deviceset %q (library %q)", d.Name, ds.Name, library)
		}
		ds.Devices[d.Name] = d
	}

	return ds, nil
}

// enclosingLibrary returns the name of the nearest <library> ancestor of el.
func enclosingLibrary(el *etree.Element) string {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "library" {
			return p.SelectAttrValue("name", "")
		}
	}
	return ""
}

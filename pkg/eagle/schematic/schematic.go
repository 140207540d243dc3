// Package schematic loads, edits and saves EAGLE schematic files (.sch)
package schematic

import (
	"cmp"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

// Section is the element that marks a schematic document.
const Section = "schematic"

// Schematic is a loaded schematic document. It owns the XML tree that its
// parts point into.
type Schematic struct {
	DeviceSets map[string]*DeviceSet
	Parts      map[string]*Part

	doc *etree.Document
	bom []*Part
}

// New returns an empty schematic with no document.
func New() *Schematic {
	return &Schematic{
		DeviceSets: make(map[string]*DeviceSet),
		Parts:      make(map[string]*Part),
	}
}

// ParseFile reads and parses a schematic file
func ParseFile(filename string) (*Schematic, error) {
	s := New()
	if err := s.Load(filename); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse reads and parses a schematic from an io.Reader
func Parse(r io.Reader) (*Schematic, error) {
	doc, err := eagle.ReadDocument(r, Section)
	if err != nil {
		return nil, &eagle.LoadError{Err: err}
	}
	s := New()
	if err := s.build(doc); err != nil {
		return nil, &eagle.LoadError{Err: err}
	}
	return s, nil
}

// Load replaces the schematic's contents with the file at filename. On error
// the previous contents are kept.
func (s *Schematic) Load(filename string) error {
	doc, err := eagle.ReadDocumentFile(filename, Section)
	if err != nil {
		return &eagle.LoadError{Path: filename, Err: err}
	}
	if err := s.build(doc); err != nil {
		return &eagle.LoadError{Path: filename, Err: err}
	}
	return nil
}

// build constructs all tables from doc and only swaps them in when every
// step succeeded.
func (s *Schematic) build(doc *etree.Document) error {
	root := doc.Root()

	deviceSets := make(map[string]*DeviceSet)
	for _, el := range root.FindElements(".//deviceset") {
		ds, err := newDeviceSet(el, enclosingLibrary(el))
		if err != nil {
			return err
		}
		if prev, exists := deviceSets[ds.Name]; exists {
			return eagle.Duplicate("deviceset %q in libraries %q and %q", ds.Name, prev.Library, ds.Library)
		}
		deviceSets[ds.Name] = ds
	}

	resolve := func(deviceset, device string) (*Device, error) {
		ds, ok := deviceSets[deviceset]
		if !ok {
			return nil, eagle.Dangling("deviceset %q not found", deviceset)
		}
		d, ok := ds.Devices[device]
		if !ok {
			return nil, eagle.Dangling("device %q not found in deviceset %q", device, deviceset)
		}
		return d, nil
	}

	parts := make(map[string]*Part)
	for _, el := range root.FindElements(".//part") {
		p, err := newPart(el, resolve)
		if err != nil {
			return err
		}
		if _, exists := parts[p.Name]; exists {
			return eagle.Duplicate("part %q", p.Name)
		}
		parts[p.Name] = p
	}

	// Sheets are numbered from 1 in document order.
	for i, sheet := range root.FindElements(".//sheet") {
		for _, inst := range sheet.FindElements(".//instance") {
			name := inst.SelectAttrValue("part", "")
			p, ok := parts[name]
			if !ok {
				return eagle.Dangling("instance on sheet %d refers to unknown part %q", i+1, name)
			}
			p.AddSheet(i + 1)
		}
	}

	s.doc = doc
	s.DeviceSets = deviceSets
	s.Parts = parts
	s.bom = buildBOM(parts)
	return nil
}

type bomEntry struct {
	part *Part
	key  [4]string
}

// buildBOM filters parts by IncludeInBOM and orders them by device set,
// device, value and sheets.
func buildBOM(parts map[string]*Part) []*Part {
	entries := make([]bomEntry, 0, len(parts))
	for _, p := range parts {
		if !p.IncludeInBOM() {
			continue
		}
		entries = append(entries, bomEntry{
			part: p,
			key:  [4]string{p.attrs["deviceset"], p.Device.Name, p.Attribute("value"), p.SheetsString()},
		})
	}

	// Map iteration order is random; part name keeps fully equal keys stable
	// between runs.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].part.Name < entries[j].part.Name
	})
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].key, entries[j].key
		return cmp.Or(
			strings.Compare(a[0], b[0]),
			strings.Compare(a[1], b[1]),
			strings.Compare(a[2], b[2]),
			strings.Compare(a[3], b[3]),
		) < 0
	})

	bom := make([]*Part, len(entries))
	for i, e := range entries {
		bom[i] = e.part
	}
	return bom
}

// BOM returns the parts included in the bill of materials, in BOM order. The
// order is computed at load time.
func (s *Schematic) BOM() []*Part {
	out := make([]*Part, len(s.bom))
	copy(out, s.bom)
	return out
}

// Part returns the part with the given name, or nil.
func (s *Schematic) Part(name string) *Part {
	return s.Parts[name]
}

// DeviceSet returns the device set with the given name, or nil.
func (s *Schematic) DeviceSet(name string) *DeviceSet {
	return s.DeviceSets[name]
}

// IsLoaded reports whether a document has been loaded.
func (s *Schematic) IsLoaded() bool {
	return s.doc != nil
}

// Save writes the document, including all edits, to filename.
func (s *Schematic) Save(filename string) error {
	return eagle.WriteDocument(s.doc, filename)
}

// WriteTo writes the document to w.
func (s *Schematic) WriteTo(w io.Writer) (int64, error) {
	if s.doc == nil {
		return 0, eagle.ErrNoDocument
	}
	return s.doc.WriteTo(w)
}

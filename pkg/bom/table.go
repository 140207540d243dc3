// Package bom renders the bill of materials of a schematic as a table and
// exports it as text, CSV, CycloneDX JSON or an Arrow IPC stream.
package bom

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

// SheetsAttribute is the pseudo attribute that renders the sheets a part
// appears on.
const SheetsAttribute = "sheets"

// Column maps a table header to the attribute shown below it.
type Column struct {
	Header    string `yaml:"header"`
	Attribute string `yaml:"attribute"`
}

// DefaultColumns returns the standard BOM layout.
func DefaultColumns() []Column {
	return []Column{
		{Header: "Name", Attribute: "name"},
		{Header: "Value", Attribute: "value"},
		{Header: "Sheets", Attribute: SheetsAttribute},
		{Header: "Library", Attribute: "library"},
		{Header: "DeviceSet", Attribute: "deviceset"},
		{Header: "Device", Attribute: "device"},
		{Header: "Manufacturer", Attribute: "MANUFACTURER"},
		{Header: "MPN", Attribute: "MPN"},
		{Header: "OC_Farnell", Attribute: "OC_FARNELL"},
		{Header: "OC_Mouser", Attribute: "OC_MOUSER"},
		{Header: "OC_Digikey", Attribute: "OC_DIGIKEY"},
	}
}

// Source is a BOM line: a part with effective attributes and sheets.
type Source interface {
	Attribute(name string) string
	Attributes() eagle.Attributes
	SheetsString() string
}

// Row is one rendered BOM line.
type Row struct {
	Cells      []string
	Attributes eagle.Attributes
	Sheets     string
}

// Table is a rendered BOM.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Build renders parts in the given order.
func Build[S Source](parts []S, cols []Column) *Table {
	t := &Table{Columns: cols, Rows: make([]Row, 0, len(parts))}
	for _, p := range parts {
		row := Row{
			Cells:      make([]string, len(cols)),
			Attributes: p.Attributes(),
			Sheets:     p.SheetsString(),
		}
		for i, c := range cols {
			if c.Attribute == SheetsAttribute {
				row.Cells[i] = row.Sheets
				continue
			}
			row.Cells[i] = row.Attributes.Get(c.Attribute)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Headers returns the column headers.
func (t *Table) Headers() []string {
	h := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Header
	}
	return h
}

// Format selects a BOM writer.
type Format string

const (
	FormatText      Format = "text"
	FormatCSV       Format = "csv"
	FormatCycloneDX Format = "cyclonedx"
	FormatArrow     Format = "arrow"
)

// ParseFormat accepts a format name case-insensitively. "cdx" is an alias
// for cyclonedx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "cyclonedx", "cdx":
		return FormatCycloneDX, nil
	case "arrow":
		return FormatArrow, nil
	}
	return "", fmt.Errorf("bom: unknown format %q (want text, csv, cyclonedx or arrow)", s)
}

// Write renders t to w in format f.
func (t *Table) Write(w io.Writer, f Format, opts CycloneDXOptions) error {
	switch f {
	case FormatText:
		return t.WriteText(w)
	case FormatCSV:
		return t.WriteCSV(w)
	case FormatCycloneDX:
		return t.WriteCycloneDX(w, opts)
	case FormatArrow:
		return t.WriteArrow(w)
	}
	return fmt.Errorf("bom: unknown format %q", f)
}

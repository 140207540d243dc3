package bom

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ---- CycloneDX 1.4 JSON schema types ----

type cdxBOM struct {
	BOMFormat    string         `json:"bomFormat"`
	SpecVersion  string         `json:"specVersion"`
	Version      int            `json:"version"`
	SerialNumber string         `json:"serialNumber"`
	Metadata     cdxMetadata    `json:"metadata"`
	Components   []cdxComponent `json:"components"`
}

type cdxMetadata struct {
	Timestamp string    `json:"timestamp"`
	Tools     []cdxTool `json:"tools"`
}

type cdxTool struct {
	Vendor  string `json:"vendor"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type cdxComponent struct {
	BOMRef      string        `json:"bom-ref"`
	Type        string        `json:"type"`
	Supplier    *cdxSupplier  `json:"supplier,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Properties  []cdxProperty `json:"properties,omitempty"`
}

type cdxSupplier struct {
	Name string `json:"name"`
}

type cdxProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Property name prefixes used in the CycloneDX output.
const (
	propertyPrefix          = "eagle:"
	attributePropertyPrefix = "eagle:attribute:"
)

// CycloneDXOptions controls the document metadata. Zero values are filled
// with a random serial number and the current time.
type CycloneDXOptions struct {
	ToolVersion string
	Serial      uuid.UUID
	Timestamp   time.Time
}

// WriteCycloneDX writes the table as a CycloneDX 1.4 JSON BOM. Each row is a
// component of type "device" carrying every effective attribute as a
// property.
func (t *Table) WriteCycloneDX(w io.Writer, opts CycloneDXOptions) error {
	data, err := json.MarshalIndent(t.buildCycloneDX(opts), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal CycloneDX JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("bom: write CycloneDX: %w", err)
	}
	return nil
}

func (t *Table) buildCycloneDX(opts CycloneDXOptions) cdxBOM {
	serial := opts.Serial
	if serial == uuid.Nil {
		serial = uuid.New()
	}
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	comps := make([]cdxComponent, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := row.Attributes.Get("name")
		comp := cdxComponent{
			BOMRef:      name,
			Type:        "device",
			Name:        name,
			Description: row.Attributes.Get("value"),
		}
		if m := row.Attributes.Get("MANUFACTURER"); m != "" {
			comp.Supplier = &cdxSupplier{Name: m}
		}

		for _, key := range []string{"library", "deviceset", "device"} {
			comp.Properties = append(comp.Properties, cdxProperty{
				Name:  propertyPrefix + key,
				Value: row.Attributes.Get(key),
			})
		}
		comp.Properties = append(comp.Properties, cdxProperty{
			Name:  propertyPrefix + SheetsAttribute,
			Value: row.Sheets,
		})
		for _, key := range row.Attributes.Keys() {
			comp.Properties = append(comp.Properties, cdxProperty{
				Name:  attributePropertyPrefix + key,
				Value: row.Attributes[key],
			})
		}

		comps = append(comps, comp)
	}

	return cdxBOM{
		BOMFormat:    "CycloneDX",
		SpecVersion:  "1.4",
		Version:      1,
		SerialNumber: serial.URN(),
		Metadata: cdxMetadata{
			Timestamp: ts.UTC().Format(time.RFC3339),
			Tools: []cdxTool{
				{
					Vendor:  "OpenTraceLab",
					Name:    "otb",
					Version: opts.ToolVersion,
				},
			},
		},
		Components: comps,
	}
}

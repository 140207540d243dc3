package bom

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText writes the table as aligned columns with a header line.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(t.Headers(), "\t")); err != nil {
		return fmt.Errorf("bom: write header: %w", err)
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			// tabs and newlines would break the alignment
			cells[i] = strings.NewReplacer("\t", " ", "\n", " ").Replace(c)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("bom: write row: %w", err)
		}
	}
	return tw.Flush()
}

// WriteCSV writes the table as RFC 4180 CSV with a header record.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers()); err != nil {
		return fmt.Errorf("bom: write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row.Cells); err != nil {
			return fmt.Errorf("bom: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

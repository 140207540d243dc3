package bom

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// Schema returns the Arrow schema of the table: one non-nullable utf8 field
// per column, named by its header.
func (t *Table) Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.Columns))
	for i, c := range t.Columns {
		fields[i] = arrow.Field{
			Name:     c.Header,
			Type:     arrow.BinaryTypes.String,
			Nullable: false,
			Metadata: arrow.NewMetadata([]string{"attribute"}, []string{c.Attribute}),
		}
	}
	return arrow.NewSchema(fields, nil)
}

// Record builds the table as a single Arrow record. The caller releases it.
func (t *Table) Record(pool memory.Allocator) arrow.Record {
	b := array.NewRecordBuilder(pool, t.Schema())
	defer b.Release()

	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			b.Field(i).(*array.StringBuilder).Append(cell)
		}
	}
	return b.NewRecord()
}

// WriteArrow writes the table as an Arrow IPC stream holding one record.
func (t *Table) WriteArrow(w io.Writer) error {
	pool := memory.NewGoAllocator()
	rec := t.Record(pool)
	defer rec.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(pool))
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write Arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close Arrow stream: %w", err)
	}
	return nil
}

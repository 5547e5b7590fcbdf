package converter

import (
	"github.com/ginjaninja78/csv2json/internal/types"
	"go.uber.org/zap"
)

// =============================================================================
// RECORD BUILDER
// =============================================================================

// recordBuilder turns rows into records for one header. Slot positions for
// duplicate column names are resolved once so that a later column overwrites
// the value of the earlier one in place.
type recordBuilder struct {
	header types.Header
	slots  []int
	logger *zap.Logger
}

// newRecordBuilder prepares a builder for header.
func newRecordBuilder(header types.Header, logger *zap.Logger) *recordBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}

	first := make(map[string]int, len(header))
	slots := make([]int, len(header))
	for i, name := range header {
		slot, seen := first[name]
		if !seen {
			slot = len(first)
			first[name] = slot
		}
		slots[i] = slot
	}

	return &recordBuilder{header: header, slots: slots, logger: logger}
}

// build converts one row. Columns are assigned in header order until the row
// runs out of cells; the remaining columns are left out of the record.
// Empty cells become null.
func (b *recordBuilder) build(row types.Row) types.Record {
	width := len(b.header)
	if len(row) < width {
		width = len(row)
	}

	rec := types.Record{Fields: make([]types.Field, 0, width)}
	for i := 0; i < width; i++ {
		name := b.header[i]
		b.logger.Debug("header", zap.String("header", name))

		value := types.StringValue(row[i])
		if row[i] == "" {
			value = types.Null()
		}

		if slot := b.slots[i]; slot < len(rec.Fields) {
			rec.Fields[slot].Value = value
		} else {
			rec.Fields = append(rec.Fields, types.Field{Name: name, Value: value})
		}
	}

	return rec
}

// BuildRecord converts a single row against header.
func BuildRecord(header types.Header, row types.Row) types.Record {
	return newRecordBuilder(header, nil).build(row)
}

// Package step provides the seqgen example's batch components: a record
// reader over an in-memory source, a doubling processor and a writer that
// accumulates results into the execution context.
package step

import (
	"context"
	"strconv"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// RecordReader reads integer records from an in-memory list of raw strings.
// Records that fail to parse are skipped and reported through the wrapper's
// skip count. The cursor position survives across chunks; Open resets it.
type RecordReader struct {
	records []string
	cursor  int
}

// NewRecordReader creates a reader over the given raw records.
func NewRecordReader(records []string) *RecordReader {
	return &RecordReader{records: records}
}

// Open resets the cursor to the start of the source.
func (r *RecordReader) Open(ctx context.Context) error {
	r.cursor = 0
	logger.Debugf("RecordReader opened with %d record(s).", len(r.records))
	return nil
}

// Close releases the reader. The in-memory source holds no resources.
func (r *RecordReader) Close(ctx context.Context) error {
	return nil
}

// Read returns the next parsable record, or the end-of-source marker once
// the records are exhausted. Unparsable records are counted as skips.
func (r *RecordReader) Read(ctx context.Context) (model.ItemWrapper[int], error) {
	skipped := 0
	for r.cursor < len(r.records) {
		raw := r.records[r.cursor]
		r.cursor++
		value, err := strconv.Atoi(raw)
		if err != nil {
			logger.Debugf("RecordReader skipping malformed record %q.", raw)
			skipped++
			continue
		}
		return model.WrapItem(value, skipped), nil
	}
	return model.EndOfSource[int](skipped), nil
}

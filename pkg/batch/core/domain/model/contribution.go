package model

// Contribution accumulates the item counters of a single chunk attempt.
// It is applied to its Execution only after the attempt commits; a failed
// attempt's contribution is discarded, so aggregate counters never
// double-count work that is redone from a checkpoint.
type Contribution struct {
	execution     *Execution
	readCount     int
	writeCount    int
	filterCount   int
	readSkipCount int
}

// Execution returns the execution this contribution belongs to.
func (c *Contribution) Execution() *Execution {
	return c.execution
}

// IncrementReadCount records count successfully read items.
func (c *Contribution) IncrementReadCount(count int) {
	c.readCount += count
}

// IncrementWriteCount records count successfully written items.
func (c *Contribution) IncrementWriteCount(count int) {
	c.writeCount += count
}

// IncrementFilterCount records count items dropped by the processor.
func (c *Contribution) IncrementFilterCount(count int) {
	c.filterCount += count
}

// IncrementReadSkipCount records count malformed records skipped by the reader.
func (c *Contribution) IncrementReadSkipCount(count int) {
	c.readSkipCount += count
}

// ReadCount returns the number of items read during this attempt.
func (c *Contribution) ReadCount() int { return c.readCount }

// WriteCount returns the number of items written during this attempt.
func (c *Contribution) WriteCount() int { return c.writeCount }

// FilterCount returns the number of items filtered during this attempt.
func (c *Contribution) FilterCount() int { return c.filterCount }

// ReadSkipCount returns the number of records skipped by the reader during this attempt.
func (c *Contribution) ReadSkipCount() int { return c.readSkipCount }

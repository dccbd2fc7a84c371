package model

// Chunk is an ordered, in-flight batch of items accumulated between two
// checkpoint boundaries. It is not safe for concurrent use; a chunk is
// owned by the single goroutine driving the attempt.
type Chunk[T any] struct {
	items []T
}

// NewChunk creates an empty chunk.
func NewChunk[T any]() *Chunk[T] {
	return &Chunk[T]{items: make([]T, 0)}
}

// Add appends an item to the chunk, preserving insertion order.
func (c *Chunk[T]) Add(item T) {
	c.items = append(c.items, item)
}

// Items returns a copy of the chunk's items in insertion order.
func (c *Chunk[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Size returns the number of items currently in the chunk.
func (c *Chunk[T]) Size() int {
	return len(c.items)
}

// IsEmpty reports whether the chunk holds no items.
func (c *Chunk[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear removes all items from the chunk.
func (c *Chunk[T]) Clear() {
	c.items = c.items[:0]
}

// ItemWrapper is the unit returned by a reader: either one item together
// with the number of malformed records skipped before producing it, or the
// end-of-source marker (nil Item). End of input is a tagged result, never
// an error value.
type ItemWrapper[I any] struct {
	Item      *I
	SkipCount int
}

// WrapItem wraps a successfully read item.
func WrapItem[I any](item I, skipCount int) ItemWrapper[I] {
	return ItemWrapper[I]{Item: &item, SkipCount: skipCount}
}

// EndOfSource returns the end-of-source marker, carrying any records
// skipped while reaching the end.
func EndOfSource[I any](skipCount int) ItemWrapper[I] {
	return ItemWrapper[I]{SkipCount: skipCount}
}

// IsEnd reports whether this wrapper marks the end of the source.
func (w ItemWrapper[I]) IsEnd() bool {
	return w.Item == nil
}

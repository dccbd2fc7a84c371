package step

import "context"

// DoublingProcessor doubles each value and filters out results that are
// multiples of ten. A filtered item yields a nil result and no error.
type DoublingProcessor struct{}

// NewDoublingProcessor creates a new DoublingProcessor.
func NewDoublingProcessor() *DoublingProcessor {
	return &DoublingProcessor{}
}

// Process doubles item. Multiples of ten are dropped.
func (p *DoublingProcessor) Process(ctx context.Context, item int) (*int, error) {
	doubled := item * 2
	if doubled%10 == 0 {
		return nil, nil
	}
	return &doubled, nil
}

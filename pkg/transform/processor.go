package transform

import (
	"errors"
	"fmt"
)

// PayloadProcessor runs an ordered transform pipeline: stages are applied
// 0..N on the way out and reversed N..0 on the way back in.
type PayloadProcessor struct {
	transforms []Transform
}

// NewPayloadProcessor creates a processor with a defined pipeline.
// Requires at least one transform; use NewNoOpTransform() for an explicitly
// empty pipeline.
func NewPayloadProcessor(pipelineTransforms []Transform) (*PayloadProcessor, error) {
	if len(pipelineTransforms) == 0 {
		return nil, errors.New("payload processor requires at least one transform; use NewNoOpTransform() for an empty pipeline")
	}
	s := make([]Transform, len(pipelineTransforms))
	copy(s, pipelineTransforms)
	return &PayloadProcessor{transforms: s}, nil
}

// PrepareOutput applies the pipeline transformations in forward order.
func (p *PayloadProcessor) PrepareOutput(payload []byte) ([]byte, error) {
	var err error
	current := payload
	for i, tr := range p.transforms {
		current, err = tr.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("prepare output: transform %d (%T) Apply failed: %w", i, tr, err)
		}
	}
	return current, nil
}

// ParseInput applies the pipeline transformations in reverse order.
func (p *PayloadProcessor) ParseInput(payload []byte) ([]byte, error) {
	var err error
	current := payload
	for i := len(p.transforms) - 1; i >= 0; i-- {
		tr := p.transforms[i]
		current, err = tr.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("parse input: transform %d (%T) Reverse failed: %w", i, tr, err)
		}
	}
	return current, nil
}

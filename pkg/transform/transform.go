// Package transform provides reversible byte transforms and an ordered
// pipeline for composing them: encryption, transport encoding, compression.
package transform

// Transform is a reversible byte transformation. Reverse must undo Apply
// exactly: Reverse(Apply(data)) == data for every input the stage accepts.
type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

type noOpTransform struct{}

// NewNoOpTransform returns a transform that passes data through unchanged.
func NewNoOpTransform() Transform                            { return &noOpTransform{} }
func (n *noOpTransform) Apply(data []byte) ([]byte, error)   { return data, nil }
func (n *noOpTransform) Reverse(data []byte) ([]byte, error) { return data, nil }

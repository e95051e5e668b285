package nn

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/gradgraph/internal/autodiff"
)

// ErrCheckpoint is matched by checkpoints that do not fit the parameters
// they are loaded into.
var ErrCheckpoint = errors.New("checkpoint does not match parameters")

// Checkpoint is a snapshot of parameter values with training metadata.
//
// Example:
//
//	cp := nn.NewCheckpoint(model.Parameters(), step, loss)
//	err := cp.Save(f)
//
// To resume training:
//
//	cp, err := nn.LoadCheckpoint(f)
//	err = cp.Restore(model.Parameters())
type Checkpoint struct {
	Step       int          `yaml:"step"`
	Loss       float64      `yaml:"loss"`
	Parameters []ParamValue `yaml:"parameters"`
}

// ParamValue is one saved Variable.
type ParamValue struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// NewCheckpoint captures the current values of params.
func NewCheckpoint(params []*autodiff.Variable, step int, loss float64) *Checkpoint {
	cp := &Checkpoint{Step: step, Loss: loss, Parameters: make([]ParamValue, len(params))}
	for i, p := range params {
		cp.Parameters[i] = ParamValue{Name: p.Name(), Value: p.Value()}
	}
	return cp
}

// Save writes the checkpoint as YAML.
func (c *Checkpoint) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return enc.Close()
}

// LoadCheckpoint reads a checkpoint written by Save.
func LoadCheckpoint(r io.Reader) (*Checkpoint, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cp Checkpoint
	if err := dec.Decode(&cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	return &cp, nil
}

// Restore sets every parameter from the saved value with the same name.
// Nothing is changed unless every parameter has exactly one saved value and
// every saved value has a parameter.
func (c *Checkpoint) Restore(params []*autodiff.Variable) error {
	saved := make(map[string]float64, len(c.Parameters))
	for _, pv := range c.Parameters {
		if _, dup := saved[pv.Name]; dup {
			return fmt.Errorf("%w: %q saved twice", ErrCheckpoint, pv.Name)
		}
		saved[pv.Name] = pv.Value
	}
	if len(saved) != len(params) {
		return fmt.Errorf("%w: %d saved values for %d parameters", ErrCheckpoint, len(saved), len(params))
	}
	for _, p := range params {
		if _, ok := saved[p.Name()]; !ok {
			return fmt.Errorf("%w: no saved value for %q", ErrCheckpoint, p.Name())
		}
	}

	for _, p := range params {
		p.Set(saved[p.Name()])
	}
	return nil
}

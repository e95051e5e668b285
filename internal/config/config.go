// Package config loads problem files: a set of named inputs, an expression
// over them, and gradient check settings.
//
//	variables:
//	  x: 1
//	  y: 2
//	constants:
//	  three: 3
//	expression: (x + y) * (y + three)
//	check:
//	  epsilon: 1e-5
//	  tolerance: 1e-4
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"gopkg.in/yaml.v3"
)

// Defaults for the check section.
const (
	DefaultEpsilon   = 1e-5
	DefaultTolerance = 1e-4
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid problem")

// Problem is a parsed problem file.
type Problem struct {
	Variables  Bindings `yaml:"variables"`
	Constants  Bindings `yaml:"constants"`
	Expression string   `yaml:"expression"`
	Check      Check    `yaml:"check"`
}

// Check configures finite-difference comparison.
type Check struct {
	Epsilon   float64 `yaml:"epsilon,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Binding is one named number.
type Binding struct {
	Name  string
	Value float64
}

// Bindings keeps the declaration order of a YAML mapping.
type Bindings []Binding

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bindings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of names to numbers", value.Line)
	}

	out := make(Bindings, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var f float64
		if err := val.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
		}
		out = append(out, Binding{Name: key.Value, Value: f})
	}
	*b = out
	return nil
}

// New builds a validated Problem from parts, e.g. command-line flags.
func New(variables, constants Bindings, expression string) (*Problem, error) {
	p := &Problem{Variables: variables, Constants: constants, Expression: expression}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads and validates the problem file at path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a problem document. Unknown keys are rejected.
func Parse(data []byte) (*Problem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Problem
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("failed to parse problem: %w", err)
	}

	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Problem) applyDefaults() {
	p.Expression = strings.TrimSpace(p.Expression)
	if p.Check.Epsilon == 0 {
		p.Check.Epsilon = DefaultEpsilon
	}
	if p.Check.Tolerance == 0 {
		p.Check.Tolerance = DefaultTolerance
	}
}

// Validate reports the first problem with p.
func (p *Problem) Validate() error {
	if p.Expression == "" {
		return fmt.Errorf("%w: expression is required", ErrInvalid)
	}

	seen := make(map[string]string)
	for _, group := range []struct {
		kind     string
		bindings Bindings
	}{
		{"variable", p.Variables},
		{"constant", p.Constants},
	} {
		for _, b := range group.bindings {
			if !hclsyntax.ValidIdentifier(b.Name) {
				return fmt.Errorf("%w: %s name %q is not a valid identifier", ErrInvalid, group.kind, b.Name)
			}
			if prev, ok := seen[b.Name]; ok {
				return fmt.Errorf("%w: %s %q already declared as a %s", ErrInvalid, group.kind, b.Name, prev)
			}
			seen[b.Name] = group.kind
		}
	}

	if p.Check.Epsilon < 0 {
		return fmt.Errorf("%w: check.epsilon must be positive", ErrInvalid)
	}
	if p.Check.Tolerance < 0 {
		return fmt.Errorf("%w: check.tolerance must be positive", ErrInvalid)
	}
	return nil
}

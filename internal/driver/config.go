// Package driver turns a run configuration into a graph, evaluates it, and
// writes the value and derivative report.
package driver

import (
	"errors"
	"fmt"

	"github.com/born-ml/gradgraph/internal/config"
)

// Demo names accepted by Config.Demo.
const (
	DemoSimple = "simple"
	DemoMatMul = "matmul"
)

// Config describes one run. Exactly one of ProblemPath, Expression and Demo
// selects the graph.
type Config struct {
	ProblemPath string
	Expression  string
	Vars        config.Bindings
	Demo        string
	Check       bool
	LogLevel    string
	LogFormat   string
}

// ErrConfig is matched by every configuration validation failure.
var ErrConfig = errors.New("invalid run configuration")

// NewConfig validates c and fills defaults.
func NewConfig(c Config) (*Config, error) {
	sources := 0
	for _, set := range []bool{c.ProblemPath != "", c.Expression != "", c.Demo != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("%w: exactly one of a problem file, -e or -demo is required", ErrConfig)
	}
	if len(c.Vars) > 0 && c.Expression == "" {
		return nil, fmt.Errorf("%w: -var is only valid with -e", ErrConfig)
	}
	switch c.Demo {
	case "", DemoSimple, DemoMatMul:
	default:
		return nil, fmt.Errorf("%w: unknown demo %q (want %q or %q)", ErrConfig, c.Demo, DemoSimple, DemoMatMul)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	return &c, nil
}

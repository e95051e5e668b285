package driver

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/config"
	"github.com/born-ml/gradgraph/internal/expr"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Input is a named block of Variables reported after a run. Scalar inputs
// are 1x1.
type Input struct {
	Name  string
	Cells matrix.Matrix
}

// Scalar reports whether the input holds a single cell.
func (in Input) Scalar() bool {
	s, err := in.Cells.Shape()
	return err == nil && s.Rows == 1 && s.Cols == 1
}

// Graph is a root node with its inputs in declaration order.
type Graph struct {
	Root   autodiff.Node
	Inputs []Input
	Check  config.Check
}

// Build resolves cfg into a graph.
func Build(cfg *Config) (*Graph, error) {
	switch {
	case cfg.Demo == DemoSimple:
		return SimpleDemo(), nil
	case cfg.Demo == DemoMatMul:
		return MatMulDemo()
	case cfg.ProblemPath != "":
		p, err := config.Load(cfg.ProblemPath)
		if err != nil {
			return nil, err
		}
		return FromProblem(p)
	default:
		p, err := config.New(cfg.Vars, nil, cfg.Expression)
		if err != nil {
			return nil, err
		}
		return FromProblem(p)
	}
}

// FromProblem parses the problem expression over its declared names.
func FromProblem(p *config.Problem) (*Graph, error) {
	env := make(expr.Env, len(p.Variables)+len(p.Constants))
	g := &Graph{Check: p.Check}
	for _, b := range p.Variables {
		v := autodiff.NewVariable(b.Name, b.Value)
		env[b.Name] = v
		g.Inputs = append(g.Inputs, Input{Name: b.Name, Cells: matrix.Matrix{{v}}})
	}
	for _, b := range p.Constants {
		env[b.Name] = autodiff.NewConstant(b.Value)
	}

	root, err := expr.Parse(p.Expression, env)
	if err != nil {
		return nil, fmt.Errorf("expression: %w", err)
	}
	g.Root = root

	referenced := make(map[*autodiff.Variable]bool)
	for _, v := range autodiff.Variables(root) {
		referenced[v] = true
	}
	for _, in := range g.Inputs {
		if v := in.Cells[0][0].(*autodiff.Variable); !referenced[v] {
			slog.Warn("Variable is not referenced by the expression.", "name", in.Name)
		}
	}

	slog.Debug("Graph built.", "expression", p.Expression, "variables", len(g.Inputs))
	return g, nil
}

// SimpleDemo builds f(x, y) = (x + y) * (y + 3) at x = 1, y = 2.
func SimpleDemo() *Graph {
	x := autodiff.NewVariable("x", 1)
	y := autodiff.NewVariable("y", 2)
	f := autodiff.Mul(autodiff.Add(x, y), autodiff.Add(y, autodiff.NewConstant(3)))
	return &Graph{
		Root: f,
		Inputs: []Input{
			{Name: "x", Cells: matrix.Matrix{{x}}},
			{Name: "y", Cells: matrix.Matrix{{y}}},
		},
		Check: config.Check{Epsilon: config.DefaultEpsilon, Tolerance: config.DefaultTolerance},
	}
}

// MatMulDemo builds f = ReduceProd(W ⊙ ((W @ x) @ y)) with
//
//	x = [[1], [2]]
//	y = [[3, 4]]
//	W = [[1.1, 1.2], [1.3, 1.4]]
func MatMulDemo() (*Graph, error) {
	x, err := matrix.NewVariables("x", [][]float64{{1}, {2}})
	if err != nil {
		return nil, err
	}
	y, err := matrix.NewVariables("y", [][]float64{{3, 4}})
	if err != nil {
		return nil, err
	}
	w, err := matrix.NewVariables("W", [][]float64{{1.1, 1.2}, {1.3, 1.4}})
	if err != nil {
		return nil, err
	}

	wx, err := matrix.MatMul(w, x)
	if err != nil {
		return nil, err
	}
	wxy, err := matrix.MatMul(wx, y)
	if err != nil {
		return nil, err
	}
	prod, err := matrix.Mul(w, wxy)
	if err != nil {
		return nil, err
	}
	f, err := matrix.ReduceProd(prod)
	if err != nil {
		return nil, err
	}

	return &Graph{
		Root:   f,
		Inputs: []Input{{Name: "x", Cells: x}, {Name: "y", Cells: y}, {Name: "W", Cells: w}},
		Check:  config.Check{Epsilon: 1e-6, Tolerance: 1e-4},
	}, nil
}

package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// ErrCheckFailed is returned by Run when an analytic derivative disagrees
// with its finite difference estimate.
var ErrCheckFailed = errors.New("gradient check failed")

// Result is one evaluated graph.
type Result struct {
	Graph  *Graph
	Value  float64
	Checks []autodiff.GradientCheck
}

// Failed returns the checks outside the graph's tolerance.
func (r *Result) Failed() []autodiff.GradientCheck {
	var failed []autodiff.GradientCheck
	for _, c := range r.Checks {
		if !c.Within(r.Graph.Check.Tolerance) {
			failed = append(failed, c)
		}
	}
	return failed
}

// Evaluate runs a fresh forward and backward pass over g, followed by a
// gradient check when check is set.
func Evaluate(g *Graph, check bool) (*Result, error) {
	g.Root.Reset()
	value, err := g.Root.Forward()
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}
	if err := autodiff.Backward(g.Root); err != nil {
		return nil, fmt.Errorf("backward: %w", err)
	}
	slog.Debug("Passes finished.", "value", value)

	res := &Result{Graph: g, Value: value}
	if !check {
		return res, nil
	}

	res.Checks, err = autodiff.CheckGradients(g.Root, g.Check.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("gradient check: %w", err)
	}
	slog.Debug("Gradient check finished.", "variables", len(res.Checks), "failed", len(res.Failed()))
	return res, nil
}

// Run builds, evaluates and reports the graph cfg selects.
func Run(w io.Writer, cfg *Config) error {
	g, err := Build(cfg)
	if err != nil {
		return err
	}
	res, err := Evaluate(g, cfg.Check)
	if err != nil {
		return err
	}
	if err := res.Write(w); err != nil {
		return err
	}
	if failed := res.Failed(); len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d derivatives outside tolerance %g", ErrCheckFailed, len(failed), len(res.Checks), g.Check.Tolerance)
	}
	return nil
}

// Write prints the report:
//
//	f = 15
//	df/dx = 5
//	df/dy = 8
//
// Matrix inputs are printed before f and their derivatives as matrices.
func (r *Result) Write(w io.Writer) error {
	p := &printer{w: w}

	for _, in := range r.Graph.Inputs {
		if in.Scalar() {
			continue
		}
		p.matrix(in.Name, in.Cells, matrix.Values)
	}
	p.printf("f = %s\n", formatFloat(r.Value))
	for _, in := range r.Graph.Inputs {
		name := "df/d" + in.Name
		if in.Scalar() {
			d, err := matrix.Derivatives(in.Cells[0][0])
			if err != nil {
				return err
			}
			p.printf("%s = %s\n", name, formatFloat(d))
			continue
		}
		p.matrix(name, in.Cells, matrix.Derivatives)
	}

	if len(r.Checks) > 0 {
		p.printf("gradient check (epsilon %g, tolerance %g):\n", r.Graph.Check.Epsilon, r.Graph.Check.Tolerance)
		for _, c := range r.Checks {
			status := "ok"
			if !c.Within(r.Graph.Check.Tolerance) {
				status = "FAIL"
			}
			p.printf("  %-12s analytic %-14s numeric %-14s error %.2e %s\n",
				c.Variable, formatFloat(c.Analytic), formatFloat(c.Numeric), c.Error(), status)
		}
	}
	return p.err
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) matrix(name string, m matrix.Matrix, get matrix.Accessor) {
	if p.err != nil {
		return
	}
	text, err := matrix.Format(m, get)
	if err != nil {
		p.err = err
		return
	}
	p.printf("%s =\n%s\n", name, text)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

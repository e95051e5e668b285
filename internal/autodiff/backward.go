package autodiff

// Backward runs one backward pass from root with seed ∂root/∂root = 1.
//
// Before descending it checks that root has been evaluated and that no
// reachable Variable was Set after that evaluation, returning a
// *StaleStateError otherwise. Derivatives accumulate: call root.Reset before
// a second pass over the same graph.
//
// Example:
//
//	if _, err := f.Forward(); err != nil {
//	    return err
//	}
//	if err := autodiff.Backward(f); err != nil {
//	    return err
//	}
//	dx := x.Derivative()
func Backward(root Node) error {
	if e, ok := root.(*Expression); ok {
		if !e.cached {
			return &StaleStateError{Node: e.op.String(), Reason: reasonNotEvaluated}
		}
		for _, v := range Variables(root) {
			if v.version > e.stamp {
				return &StaleStateError{Node: v.String(), Reason: reasonLeafModified}
			}
		}
	}
	return root.Backward(1)
}

// Variables returns every Variable reachable from root, once each, in
// depth-first left-to-right order of first visit.
func Variables(root Node) []*Variable {
	var (
		vars []*Variable
		seen = make(map[Node]struct{})
	)

	var walk func(n Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}

		switch n := n.(type) {
		case *Variable:
			vars = append(vars, n)
		case *Expression:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(root)

	return vars
}

// Gradients returns the accumulated derivative of every Variable reachable
// from root, keyed by the Variable.
func Gradients(root Node) map[*Variable]float64 {
	vars := Variables(root)
	grads := make(map[*Variable]float64, len(vars))
	for _, v := range vars {
		grads[v] = v.derivative
	}
	return grads
}

// Package autodiff implements reverse-mode automatic differentiation over a
// computation graph stored in an arena.
//
// Architecture:
//   - Graph[V]: arena owning every node; parents are referenced by NodeID
//   - Variable[V]: cheap handle to a node (value, history, derivative)
//   - Function[V]: one differentiable operation (Forward + Backward)
//   - Context: write-once bag carrying values from Forward to Backward
//   - Backward: single reverse traversal in topological order, summing the
//     contributions of every consumer of a node before using its gradient
//
// The package is generic over the raw value type V: float64 for scalars
// (see package scalar) and *tensor.TensorData for tensors (see package ops).
//
// Usage:
//
//	g := scalar.NewGraph()
//	x := scalar.New(g, 2.0)
//	y := x.Mul(x).Add(x) // y = x² + x
//	_ = y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x + 1 = 5
package autodiff

import "github.com/gomlx/exceptions"

// Apply applies fn to args on the graph of the first Variable argument.
// It panics if no argument is a Variable.
func Apply[V any](fn Function[V], args ...Operand[V]) Variable[V] {
	for _, arg := range args {
		if v, ok := arg.variable(); ok {
			return v.graph.Apply(fn, args...)
		}
	}
	exceptions.Panicf("autodiff.Apply(%s): at least one argument must be a Variable (use Graph.Apply for constants)", fn.Name())
	return Variable[V]{}
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Computations are recorded in a Graph: every Function applied to
// Variables that require a gradient records a History. Backward walks the
// graph once from a root in topological order and accumulates derivatives
// on the leaves.
//
// Example:
//
//	import (
//	    "github.com/born-ml/minigrad/autodiff"
//	    "github.com/born-ml/minigrad/tensor"
//	)
//
//	func main() {
//	    g := autodiff.NewTensorGraph()
//	    x := autodiff.NewTensor(g, tensor.Ones(tensor.Shape{2, 3}))
//	    y := x.Mul(x).Sum(1)
//
//	    if err := y.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad()) // 2x
//	}
package autodiff

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/autodiff/ops"
	"github.com/born-ml/minigrad/internal/gradcheck"
	"github.com/born-ml/minigrad/internal/tensor"
)

// Graph is an arena owning every Variable of one computation.
type Graph[V any] = autodiff.Graph[V]

// Variable is a handle to a node of a Graph.
type Variable[V any] = autodiff.Variable[V]

// Function is a differentiable operation over raw values of type V.
type Function[V any] = autodiff.Function[V]

// Operand is an argument to Apply: a Variable or a raw constant.
type Operand[V any] = autodiff.Operand[V]

// Algebra sums gradients of type V and builds default seeds.
type Algebra[V any] = autodiff.Algebra[V]

// History records how a non-leaf Variable was produced.
type History[V any] = autodiff.History[V]

// VarGrad pairs a Variable with one gradient contribution.
type VarGrad[V any] = autodiff.VarGrad[V]

// Context carries values from Forward to Backward.
type Context = autodiff.Context

// NodeID indexes a node in its Graph.
type NodeID = autodiff.NodeID

// LeafOption configures a leaf.
type LeafOption = autodiff.LeafOption

// ErrIncompatibleGradient is returned by Backward when a seed or a ChainRule
// gradient does not match its variable's value.
var ErrIncompatibleGradient = autodiff.ErrIncompatibleGradient

// NewGraph creates an empty graph using algebra to sum gradients.
func NewGraph[V any](algebra Algebra[V]) *Graph[V] {
	return autodiff.NewGraph(algebra)
}

// Const wraps a raw value as a constant Operand.
func Const[V any](v V) Operand[V] {
	return autodiff.Const(v)
}

// Apply applies fn on the graph of the first Variable in args.
func Apply[V any](fn Function[V], args ...Operand[V]) Variable[V] {
	return autodiff.Apply(fn, args...)
}

// Saved returns the i-th value saved in ctx as a T.
func Saved[T any](ctx *Context, i int) T {
	return autodiff.Saved[T](ctx, i)
}

// WithName sets the label of a leaf.
func WithName(name string) LeafOption {
	return autodiff.WithName(name)
}

// WithRequiresGrad sets whether a leaf accumulates a derivative.
func WithRequiresGrad(requiresGrad bool) LeafOption {
	return autodiff.WithRequiresGrad(requiresGrad)
}

// Tensor is a differentiable tensor.
type Tensor = ops.Tensor

// TensorGraph is a graph over tensors.
type TensorGraph = ops.Graph

// NewTensorGraph creates an empty tensor graph.
func NewTensorGraph() *TensorGraph {
	return ops.NewGraph()
}

// NewTensor creates a leaf Tensor on g.
func NewTensor(g *TensorGraph, data *tensor.TensorData, opts ...LeafOption) Tensor {
	return ops.NewTensor(g, data, opts...)
}

// Raw wraps a tensor as a constant tensor Operand.
func Raw(t *tensor.TensorData) Operand[*tensor.TensorData] {
	return ops.Raw(t)
}

// GradCheck compares the gradients of f at inputs against central
// differences.
func GradCheck(f func(args ...Tensor) Tensor, inputs []*tensor.TensorData, opts ...gradcheck.Option) error {
	return ops.GradCheck(f, inputs, opts...)
}

// GradCheckOption configures GradCheck.
type GradCheckOption = gradcheck.Option

// WithEpsilon sets the central difference step of GradCheck.
func WithEpsilon(eps float64) GradCheckOption {
	return gradcheck.WithEpsilon(eps)
}

// WithTolerance sets the relative and absolute tolerances of GradCheck.
func WithTolerance(rtol, atol float64) GradCheckOption {
	return gradcheck.WithTolerance(rtol, atol)
}

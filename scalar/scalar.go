// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scalar provides differentiable float64 values.
//
// Example:
//
//	g := scalar.NewGraph()
//	x := scalar.New(g, 2)
//	y := x.Mul(x).Add(scalar.Float(1))
//	_ = y.Backward()
//	fmt.Println(x.Grad()) // 4
package scalar

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/gradcheck"
	"github.com/born-ml/minigrad/internal/scalar"
)

// Scalar is a differentiable float64.
type Scalar = scalar.Scalar

// Graph is a computation graph over float64 values.
type Graph = scalar.Graph

// Operand is a Scalar or a raw constant created with Float.
type Operand = scalar.Operand

// Func is a function of Scalars.
type Func = scalar.Func

// NewGraph creates an empty scalar graph.
func NewGraph() *Graph {
	return scalar.NewGraph()
}

// New creates a leaf Scalar on g.
func New(g *Graph, v float64, opts ...autodiff.LeafOption) Scalar {
	return scalar.New(g, v, opts...)
}

// Constant creates a Scalar on g that never receives a gradient.
func Constant(g *Graph, v float64) Scalar {
	return scalar.Constant(g, v)
}

// Wrap converts a float64 Variable, such as a bound optim.Parameter, into
// a Scalar.
func Wrap(v autodiff.Variable[float64]) Scalar {
	return scalar.Wrap(v)
}

// Float wraps a raw constant as an Operand.
func Float(v float64) Operand {
	return scalar.Float(v)
}

// CentralDifference approximates the partial derivative of f with respect
// to vals[arg].
func CentralDifference(f Func, vals []float64, arg int, eps float64) float64 {
	return scalar.CentralDifference(f, vals, arg, eps)
}

// DerivativeCheck compares the derivatives of f at vals against central
// differences.
func DerivativeCheck(f Func, vals []float64, opts ...gradcheck.Option) error {
	return scalar.DerivativeCheck(f, vals, opts...)
}

// Package ops defines the differentiable tensor functions and the Tensor
// wrapper built on the autodiff engine.
//
// Each function implements autodiff.Function[*tensor.TensorData]:
//   - Forward: computes the output from the raw input tensors
//   - Backward: computes the gradient of each input from the output gradient
//
// Supported operations:
//   - AddOp, SubOp, MulOp: element-wise with broadcasting (gradients are
//     summed back to the operand shapes)
//   - NegOp, InvOp, ExpOp, LogOp, SigmoidOp, ReLUOp: element-wise unary
//   - LTOp, EQOp: comparisons (zero gradient)
//   - SumOp, MeanOp: reductions along one dimension (rank is kept)
//   - PermuteOp, ViewOp: layout changes
package ops

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// Function is a differentiable tensor function.
type Function = autodiff.Function[*tensor.TensorData]

// Operand is a Tensor or a raw constant created with Raw or Float.
type Operand = autodiff.Operand[*tensor.TensorData]

// Graph is a computation graph over tensors.
type Graph = autodiff.Graph[*tensor.TensorData]

// Algebra sums tensor gradients and seeds backward passes with ones.
type Algebra struct{}

// Add returns a + b as a new tensor. Both gradients must have the same shape.
func (Algebra) Add(a, b *tensor.TensorData) *tensor.TensorData {
	if !a.Shape().Equal(b.Shape()) {
		exceptions.Panicf("cannot accumulate gradients of shapes %v and %v", a.Shape(), b.Shape())
	}
	return must.M1(tensor.Zip(operators.Add, a, b))
}

// OnesLike returns a tensor of ones with the shape of v.
func (Algebra) OnesLike(v *tensor.TensorData) *tensor.TensorData {
	return tensor.Ones(v.Shape())
}

// Compatible returns an error wrapping autodiff.ErrIncompatibleGradient
// unless grad has exactly the shape of value.
func (Algebra) Compatible(value, grad *tensor.TensorData) error {
	if grad == nil {
		return errors.Wrapf(autodiff.ErrIncompatibleGradient, "nil gradient for shape %v", value.Shape())
	}
	if !value.Shape().Equal(grad.Shape()) {
		return errors.Wrapf(autodiff.ErrIncompatibleGradient, "gradient of shape %v for value of shape %v",
			grad.Shape(), value.Shape())
	}
	return nil
}

// Descend returns value - lr·grad as a new tensor.
func (Algebra) Descend(value, grad *tensor.TensorData, lr float64) *tensor.TensorData {
	return must.M1(tensor.Zip(func(v, g float64) float64 { return v - lr*g }, value, grad))
}

// NewGraph creates an empty tensor graph.
func NewGraph() *Graph {
	return autodiff.NewGraph[*tensor.TensorData](Algebra{})
}

// Raw wraps a tensor as a constant Operand.
func Raw(t *tensor.TensorData) Operand {
	return autodiff.Const(t)
}

// Float wraps a value as a 0-dimensional constant Operand.
func Float(v float64) Operand {
	return autodiff.Const(tensor.Scalar(v))
}

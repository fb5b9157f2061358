package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// SubOp represents an element-wise subtraction operation: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct{}

// Name implements autodiff.Function.
func (SubOp) Name() string { return "Sub" }

// Forward computes a - b.
func (SubOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0], in[1])
	return zip(func(a, b float64) float64 { return a - b }, in[0], in[1])
}

// Backward computes input gradients for subtraction.
func (SubOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	aShape, bShape := autodiff.Saved[tensor.Shape](ctx, 0), autodiff.Saved[tensor.Shape](ctx, 1)
	return []*tensor.TensorData{
		reduceBroadcast(d, aShape),
		reduceBroadcast(tensor.Map(operators.Neg, d), bShape),
	}
}

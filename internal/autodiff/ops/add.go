package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If broadcasting was used in the forward pass, gradients are reduced
// (summed) along the broadcast dimensions to match input shapes.
type AddOp struct{}

// Name implements autodiff.Function.
func (AddOp) Name() string { return "Add" }

// Forward computes a + b.
func (AddOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0], in[1])
	return zip(operators.Add, in[0], in[1])
}

// Backward computes input gradients for addition.
func (AddOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	aShape, bShape := autodiff.Saved[tensor.Shape](ctx, 0), autodiff.Saved[tensor.Shape](ctx, 1)
	return []*tensor.TensorData{
		reduceBroadcast(d, aShape),
		reduceBroadcast(d, bShape),
	}
}

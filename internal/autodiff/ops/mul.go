package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Name implements autodiff.Function.
func (MulOp) Name() string { return "Mul" }

// Forward computes a * b.
func (MulOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	ctx.SaveForBackward(in[0], in[1])
	return zip(operators.Mul, in[0], in[1])
}

// Backward computes input gradients for multiplication.
func (MulOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	a, b := autodiff.Saved[*tensor.TensorData](ctx, 0), autodiff.Saved[*tensor.TensorData](ctx, 1)
	return []*tensor.TensorData{
		reduceBroadcast(zip(operators.Mul, d, b), a.Shape()),
		reduceBroadcast(zip(operators.Mul, d, a), b.Shape()),
	}
}

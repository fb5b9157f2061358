package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
//
// Backward pass:
//   - dσ/dx = σ(x) * (1 - σ(x)), computed from the saved output
type SigmoidOp struct{}

// Name implements autodiff.Function.
func (SigmoidOp) Name() string { return "Sigmoid" }

// Forward computes σ(x) and saves the output.
func (SigmoidOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	out := tensor.Map(operators.Sigmoid, in[0])
	ctx.SaveForBackward(out)
	return out
}

// Backward computes the input gradient for sigmoid.
func (SigmoidOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	out := autodiff.Saved[*tensor.TensorData](ctx, 0)
	return []*tensor.TensorData{zip(func(s, g float64) float64 { return s * (1 - s) * g }, out, d)}
}

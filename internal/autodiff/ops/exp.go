package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// ExpOp represents the exponential function: output = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x), so grad_x = outputGrad * output
type ExpOp struct{}

// Name implements autodiff.Function.
func (ExpOp) Name() string { return "Exp" }

// Forward computes exp(x) and saves the output.
func (ExpOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	out := tensor.Map(operators.Exp, in[0])
	ctx.SaveForBackward(out)
	return out
}

// Backward computes the input gradient for exp.
func (ExpOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	out := autodiff.Saved[*tensor.TensorData](ctx, 0)
	return []*tensor.TensorData{zip(operators.Mul, d, out)}
}

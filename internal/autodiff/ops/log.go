package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// LogOp represents the natural logarithm: output = log(x + EPS).
//
// Backward pass:
//   - d(log(x))/dx = 1/x, so grad_x = outputGrad / (x + EPS)
type LogOp struct{}

// Name implements autodiff.Function.
func (LogOp) Name() string { return "Log" }

// Forward computes log(x + EPS).
func (LogOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	ctx.SaveForBackward(in[0])
	return tensor.Map(operators.Log, in[0])
}

// Backward computes the input gradient for log.
func (LogOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	x := autodiff.Saved[*tensor.TensorData](ctx, 0)
	return []*tensor.TensorData{zip(operators.LogBack, x, d)}
}

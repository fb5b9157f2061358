package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// ReLUOp represents the rectified linear unit: output = max(x, 0).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct{}

// Name implements autodiff.Function.
func (ReLUOp) Name() string { return "ReLU" }

// Forward computes max(x, 0).
func (ReLUOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	ctx.SaveForBackward(in[0])
	return tensor.Map(operators.ReLU, in[0])
}

// Backward computes the input gradient for ReLU.
func (ReLUOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	x := autodiff.Saved[*tensor.TensorData](ctx, 0)
	return []*tensor.TensorData{zip(operators.ReLUBack, x, d)}
}

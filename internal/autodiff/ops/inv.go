package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// InvOp represents element-wise reciprocal: output = 1/x.
//
// Backward pass:
//   - d(1/x)/dx = -1/x², so grad_x = -outputGrad / x²
//
// Forward panics with operators.ErrDivisionByZero if any element is zero.
type InvOp struct{}

// Name implements autodiff.Function.
func (InvOp) Name() string { return "Inv" }

// Forward computes 1/x.
func (InvOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	ctx.SaveForBackward(in[0])
	return tensor.Map(operators.Inv, in[0])
}

// Backward computes the input gradient for the reciprocal.
func (InvOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	x := autodiff.Saved[*tensor.TensorData](ctx, 0)
	return []*tensor.TensorData{zip(operators.InvBack, x, d)}
}

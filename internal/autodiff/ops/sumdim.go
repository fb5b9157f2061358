package ops

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// SumOp represents a reduction sum along a dimension: output = sum(x, Dim).
// The reduced dimension is kept with size 1.
//
// Forward:
//
//	y = sum(x, dim)
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
type SumOp struct {
	Dim int
}

// Name implements autodiff.Function.
func (SumOp) Name() string { return "Sum" }

// Forward sums x along Dim.
func (op SumOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0])
	return must.M1(tensor.ReduceDim(operators.Add, 0, in[0], op.Dim))
}

// Backward broadcasts the output gradient back to the input shape: each
// input element contributes 1 to its sum.
func (SumOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	shape := autodiff.Saved[tensor.Shape](ctx, 0)
	return []*tensor.TensorData{must.M1(tensor.BroadcastTo(d, shape))}
}

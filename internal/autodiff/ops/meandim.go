package ops

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// MeanOp represents a reduction mean along a dimension: output = mean(x, Dim).
// The reduced dimension is kept with size 1.
//
// Forward:
//
//	y = sum(x, dim) / size[dim]
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape) / size[dim]
type MeanOp struct {
	Dim int
}

// Name implements autodiff.Function.
func (MeanOp) Name() string { return "Mean" }

// Forward averages x along Dim.
func (op MeanOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0])
	sum := must.M1(tensor.ReduceDim(operators.Add, 0, in[0], op.Dim))
	n := float64(in[0].Shape()[op.Dim])
	return tensor.Map(func(x float64) float64 { return x / n }, sum)
}

// Backward spreads the output gradient evenly over the reduced dimension.
func (op MeanOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	shape := autodiff.Saved[tensor.Shape](ctx, 0)
	n := float64(shape[op.Dim])
	grad := must.M1(tensor.BroadcastTo(d, shape))
	return []*tensor.TensorData{tensor.Map(func(x float64) float64 { return x / n }, grad)}
}

package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// LTOp computes element-wise a < b as 1 or 0. Its gradient is zero.
type LTOp struct{}

// Name implements autodiff.Function.
func (LTOp) Name() string { return "LT" }

// Forward computes a < b.
func (LTOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0], in[1])
	return zip(operators.LT, in[0], in[1])
}

// Backward returns zero gradients.
func (LTOp) Backward(ctx *autodiff.Context, _ *tensor.TensorData) []*tensor.TensorData {
	return zeroGrads(ctx)
}

// EQOp computes element-wise a == b as 1 or 0. Its gradient is zero.
type EQOp struct{}

// Name implements autodiff.Function.
func (EQOp) Name() string { return "EQ" }

// Forward computes a == b.
func (EQOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0], in[1])
	return zip(operators.EQ, in[0], in[1])
}

// Backward returns zero gradients.
func (EQOp) Backward(ctx *autodiff.Context, _ *tensor.TensorData) []*tensor.TensorData {
	return zeroGrads(ctx)
}

func zeroGrads(ctx *autodiff.Context) []*tensor.TensorData {
	return []*tensor.TensorData{
		tensor.Zeros(autodiff.Saved[tensor.Shape](ctx, 0)),
		tensor.Zeros(autodiff.Saved[tensor.Shape](ctx, 1)),
	}
}

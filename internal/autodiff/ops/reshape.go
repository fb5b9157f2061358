package ops

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/tensor"
)

// ViewOp reshapes x to Shape, which must have the same number of elements.
// Non-contiguous inputs are copied first.
//
// Backward: the output gradient is reshaped back to the input shape.
type ViewOp struct {
	Shape tensor.Shape
}

// Name implements autodiff.Function.
func (ViewOp) Name() string { return "View" }

// Forward reshapes x.
func (op ViewOp) Forward(ctx *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	saveShapes(ctx, in[0])
	return view(in[0], op.Shape)
}

// Backward reshapes the output gradient to the input shape.
func (ViewOp) Backward(ctx *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	return []*tensor.TensorData{view(d, autodiff.Saved[tensor.Shape](ctx, 0))}
}

func view(t *tensor.TensorData, shape tensor.Shape) *tensor.TensorData {
	if v, err := t.View(shape); err == nil {
		return v
	}
	return must.M1(t.Contiguous().View(shape))
}

package ops

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/tensor"
)

// zip applies fn element-wise with broadcasting, panicking on incompatible
// shapes. The panic is reported as an error by Graph.TryApply and
// Graph.Backward.
func zip(fn func(a, b float64) float64, a, b *tensor.TensorData) *tensor.TensorData {
	return must.M1(tensor.Zip(fn, a, b))
}

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.TensorData, target tensor.Shape) *tensor.TensorData {
	return must.M1(tensor.SumTo(grad, target))
}

// saveShapes saves the shapes of inputs for Backward.
func saveShapes(ctx *autodiff.Context, inputs ...*tensor.TensorData) {
	shapes := make([]any, len(inputs))
	for i, in := range inputs {
		shapes[i] = in.Shape()
	}
	ctx.SaveForBackward(shapes...)
}

// inversePermutation returns the order that undoes order.
func inversePermutation(order []int) []int {
	inverse := make([]int, len(order))
	for i, o := range order {
		inverse[o] = i
	}
	return inverse
}

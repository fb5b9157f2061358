package ops

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/tensor"
)

// PermuteOp reorders dimensions: dimension i of the output is dimension
// Order[i] of the input. The output is a view sharing the input's storage.
//
// Backward:
//
//	∂L/∂input = permute(∂L/∂output, inverse(Order))
type PermuteOp struct {
	Order []int
}

// Name implements autodiff.Function.
func (PermuteOp) Name() string { return "Permute" }

// Forward permutes x.
func (op PermuteOp) Forward(_ *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	return must.M1(in[0].Permute(op.Order...))
}

// Backward permutes the output gradient with the inverse order.
func (op PermuteOp) Backward(_ *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	return []*tensor.TensorData{must.M1(d.Permute(inversePermutation(op.Order)...))}
}

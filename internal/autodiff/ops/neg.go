package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// NegOp represents element-wise negation: output = -x.
type NegOp struct{}

// Name implements autodiff.Function.
func (NegOp) Name() string { return "Neg" }

// Forward computes -x.
func (NegOp) Forward(_ *autodiff.Context, in ...*tensor.TensorData) *tensor.TensorData {
	return tensor.Map(operators.Neg, in[0])
}

// Backward returns -outputGrad.
func (NegOp) Backward(_ *autodiff.Context, d *tensor.TensorData) []*tensor.TensorData {
	return []*tensor.TensorData{tensor.Map(operators.Neg, d)}
}
